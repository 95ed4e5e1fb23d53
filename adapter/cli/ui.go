package cli

import (
	"fmt"
	"io"
	"strings"
)

const logo = `  ___       _
 / _ \ _ __(_) ___  _ __
| | | | '__| |/ _ \| '_ \
| |_| | |  | | (_) | | | |
 \___/|_|  |_|\___/|_| |_|
`

const greeting = "Hello! I'm Orion\nWhat can I do for you?"

var separator = strings.Repeat("─", 60)

// printBlock writes msg followed by the separator line.
func printBlock(w io.Writer, msg string) {
	fmt.Fprintln(w, msg)
	fmt.Fprintln(w, separator)
}

func printWelcome(w io.Writer) {
	printBlock(w, "Hello from\n"+logo)
	printBlock(w, greeting)
}
