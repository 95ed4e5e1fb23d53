package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/felixgeelhaar/orion/pkg/observability"
	"github.com/spf13/cobra"
)

// maxLineBytes caps one input line. Longer lines are discarded and reported.
const maxLineBytes = 1 << 20

// ErrLineTooLong is reported for input lines over maxLineBytes.
var ErrLineTooLong = errors.New("that line is too long, please keep it under 1 MiB")

// REPL reads commands line by line until bye or end of input.
type REPL struct {
	app    *App
	in     *bufio.Reader
	out    io.Writer
	logger *slog.Logger
}

// NewREPL creates a REPL reading from in and writing to out.
func NewREPL(a *App, in io.Reader, out io.Writer, logger *slog.Logger) *REPL {
	if logger == nil {
		logger = slog.Default()
	}
	return &REPL{app: a, in: bufio.NewReader(in), out: out, logger: logger}
}

type readResult struct {
	line string
	err  error
}

// Run greets the user and processes input. It returns nil on bye or EOF and
// ctx.Err() as soon as ctx is canceled, even while waiting for input.
func (r *REPL) Run(ctx context.Context) error {
	printWelcome(r.out)
	if notice := r.app.TakeNotice(); notice != "" {
		printBlock(r.out, notice)
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		// A read left behind by cancellation finishes into the buffered
		// channel and exits.
		readDone := make(chan readResult, 1)
		go func() {
			line, err := readLine(r.in, maxLineBytes)
			readDone <- readResult{line: line, err: err}
		}()

		var res readResult
		select {
		case res = <-readDone:
		case <-ctx.Done():
			return ctx.Err()
		}

		switch {
		case errors.Is(res.err, ErrLineTooLong):
			r.logger.DebugContext(ctx, "input line discarded", observability.ErrorKey, res.err)
			printBlock(r.out, UserMessage(res.err))
			continue
		case errors.Is(res.err, io.EOF):
			return nil
		case res.err != nil:
			return res.err
		}

		if r.handle(ctx, res.line) {
			return nil
		}
	}
}

// readLine returns the next line without its line ending. A final line
// without a newline is returned as is; io.EOF follows it. A line longer
// than limit is consumed in full and reported as ErrLineTooLong.
func readLine(br *bufio.Reader, limit int) (string, error) {
	var (
		buf     []byte
		tooLong bool
	)
	for {
		chunk, err := br.ReadSlice('\n')
		if !tooLong {
			if len(buf)+len(chunk) > limit {
				tooLong, buf = true, nil
			} else {
				buf = append(buf, chunk...)
			}
		}

		switch {
		case errors.Is(err, bufio.ErrBufferFull):
			continue
		case errors.Is(err, io.EOF):
			if tooLong {
				return "", ErrLineTooLong
			}
			if len(buf) == 0 {
				return "", io.EOF
			}
		case err != nil:
			return "", err
		}

		if tooLong {
			return "", ErrLineTooLong
		}
		line := strings.TrimSuffix(string(buf), "\n")
		return strings.TrimSuffix(line, "\r"), nil
	}
}

// handle runs one line and reports whether the session should end.
func (r *REPL) handle(ctx context.Context, line string) bool {
	ctx = observability.WithCorrelationID(ctx, "")

	res, err := r.app.Run(ctx, line)
	if err != nil {
		r.logger.DebugContext(ctx, "command rejected", observability.ErrorKey, err)
		printBlock(r.out, UserMessage(err))
		return false
	}
	if res.Output != "" {
		printBlock(r.out, res.Output)
	}
	return res.Exit
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive session",
	Long: `Start an interactive session. Commands:

  list                                   show all tasks
  todo <description>                     add a todo
  deadline <description> /by <date>      add a deadline
  event <description> /from <date> /to <date>
                                         add an event
  mark <n> | unmark <n> | delete <n>     change task n
  find <text>                            search descriptions
  bye                                    end the session

Dates use the yyyy-mm-dd format.`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

func runChat(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return cmd.Help()
	}
	repl := NewREPL(GetApp(), cmd.InOrStdin(), cmd.OutOrStdout(), logger)
	return repl.Run(cmd.Context())
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
