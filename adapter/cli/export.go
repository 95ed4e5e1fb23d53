package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/felixgeelhaar/orion/internal/tasks/domain/task"
	"github.com/felixgeelhaar/orion/internal/tasks/infrastructure/persistence"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export tasks to various formats",
	Long: `Export your tasks to ICS (iCalendar), JSON or YAML.

ICS output imports into Google Calendar, Outlook, Apple Calendar and other
calendar apps: deadlines and events become all-day events, todos become
to-do items.

Examples:
  orion export --format ics               # Export to stdout
  orion export --format ics -o tasks.ics  # Export to file
  orion export --format yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := GetApp()
		if a == nil {
			return fmt.Errorf("application not initialized")
		}

		tasks := a.Tasks().List()
		content, err := renderExport(exportFormat, a.Tasks(), time.Now())
		if err != nil {
			return err
		}

		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, content, 0o600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d tasks to %s\n", len(tasks), exportOutput)
			return nil
		}

		_, err = cmd.OutOrStdout().Write(content)
		return err
	},
}

func renderExport(format string, m *task.Manager, now time.Time) ([]byte, error) {
	switch strings.ToLower(format) {
	case "ics", "ical":
		return []byte(generateICS(m.List(), now)), nil
	case "json":
		return persistence.EncodeJSON(persistence.NewDocument(m))
	case "yaml", "yml":
		return encodeYAML(persistence.NewDocument(m))
	default:
		return nil, fmt.Errorf("unsupported format: %s (supported: ics, json, yaml)", format)
	}
}

func encodeYAML(doc persistence.Document) ([]byte, error) {
	var sb strings.Builder
	enc := yaml.NewEncoder(&sb)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	return []byte(sb.String()), nil
}

func generateICS(tasks []task.Task, now time.Time) string {
	var sb strings.Builder

	// ICS header
	sb.WriteString("BEGIN:VCALENDAR\r\n")
	sb.WriteString("VERSION:2.0\r\n")
	sb.WriteString("PRODID:-//Orion//Orion CLI//EN\r\n")
	sb.WriteString("CALSCALE:GREGORIAN\r\n")
	sb.WriteString("METHOD:PUBLISH\r\n")
	sb.WriteString("X-WR-CALNAME:Orion Tasks\r\n")

	for _, t := range tasks {
		switch v := t.(type) {
		case *task.Deadline:
			writeAllDayEvent(&sb, t, now, v.By(), v.By(), "DEADLINE")
		case *task.Event:
			writeAllDayEvent(&sb, t, now, v.From(), v.To(), "EVENT")
		default:
			writeTodo(&sb, t, now)
		}
	}

	sb.WriteString("END:VCALENDAR\r\n")

	return sb.String()
}

// writeAllDayEvent spans first..last inclusive; DTEND is exclusive in ICS.
func writeAllDayEvent(w io.StringWriter, t task.Task, now time.Time, first, last task.Date, category string) {
	w.WriteString("BEGIN:VEVENT\r\n")
	w.WriteString(fmt.Sprintf("UID:%s@orion\r\n", t.ID().String()))
	w.WriteString(fmt.Sprintf("DTSTAMP:%s\r\n", formatICSTime(now)))
	w.WriteString(fmt.Sprintf("DTSTART;VALUE=DATE:%s\r\n", formatICSDate(first)))
	w.WriteString(fmt.Sprintf("DTEND;VALUE=DATE:%s\r\n", formatICSDate(last.AddDays(1))))
	w.WriteString(fmt.Sprintf("SUMMARY:%s\r\n", escapeICS(t.Description())))
	w.WriteString(fmt.Sprintf("CATEGORIES:%s\r\n", category))
	if t.IsDone() {
		w.WriteString("STATUS:CONFIRMED\r\n")
	} else {
		w.WriteString("STATUS:TENTATIVE\r\n")
	}
	w.WriteString("END:VEVENT\r\n")
}

func writeTodo(w io.StringWriter, t task.Task, now time.Time) {
	w.WriteString("BEGIN:VTODO\r\n")
	w.WriteString(fmt.Sprintf("UID:%s@orion\r\n", t.ID().String()))
	w.WriteString(fmt.Sprintf("DTSTAMP:%s\r\n", formatICSTime(now)))
	w.WriteString(fmt.Sprintf("SUMMARY:%s\r\n", escapeICS(t.Description())))
	if t.IsDone() {
		w.WriteString("STATUS:COMPLETED\r\n")
	} else {
		w.WriteString("STATUS:NEEDS-ACTION\r\n")
	}
	w.WriteString("END:VTODO\r\n")
}

func formatICSTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

func formatICSDate(d task.Date) string {
	return d.Time().Format("20060102")
}

func escapeICS(s string) string {
	// Escape special characters in ICS format
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "ics", "export format (ics, json, yaml)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")

	rootCmd.AddCommand(exportCmd)
}
