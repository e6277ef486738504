package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/gorewood/chatmd/internal/convert"
	"github.com/gorewood/chatmd/internal/inspect"
	"github.com/gorewood/chatmd/internal/output"
	"github.com/gorewood/chatmd/internal/transcript"
)

// inspectResult holds the data for inspect output.
type inspectResult struct {
	Total       int                     `json:"total"`
	Count       int                     `json:"count"`
	Query       string                  `json:"query,omitempty"`
	Matches     []inspect.Match         `json:"matches"`
	Diagnostics []transcript.Diagnostic `json:"diagnostics"`
}

// newInspectCmd creates the inspect command.
func newInspectCmd() *cobra.Command {
	var findFlag string
	var limitFlag int
	var widthFlag int
	var fullFlag bool

	cmd := &cobra.Command{
		Use:   "inspect <source>",
		Short: "List the linearized messages of an export",
		Long: `List the messages of a ChatGPT export in transcript order.

Shows one row per message with its position, creation time, role, and the
start of its content. --find filters messages by a fuzzy match on role and
content, best match first.

Examples:
  chatmd inspect conversations.json                 # List every message
  chatmd inspect conversations.json --find "docker" # Fuzzy-search messages
  chatmd inspect conversations.json --limit 5       # First five messages
  chatmd inspect conversations.json --full          # Whole messages, wrapped to --width
  chatmd inspect conversations.json --json          # Messages and diagnostics as JSON`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args, inspectOptions{find: findFlag, limit: limitFlag, width: widthFlag, full: fullFlag})
		},
	}

	cmd.Flags().StringVar(&findFlag, "find", "", "Fuzzy-filter messages by role and content")
	cmd.Flags().IntVarP(&limitFlag, "limit", "n", 0, "Show at most N messages (0 for all)")
	cmd.Flags().IntVar(&widthFlag, "width", inspect.DefaultContentWidth, "Width of the content column")
	cmd.Flags().BoolVar(&fullFlag, "full", false, "Print whole messages instead of a table")

	return cmd
}

// inspectOptions holds the inspect flags.
type inspectOptions struct {
	find  string
	limit int
	width int
	full  bool
}

// runInspect executes the inspect command.
func runInspect(cmd *cobra.Command, args []string, opts inspectOptions) error {
	printer := newCommandPrinter(cmd)

	if len(args) != 1 {
		err := output.NewUserError("please select a JSON export to inspect: chatmd inspect <source>")
		printer.Error(err)
		return err
	}
	if opts.limit < 0 {
		err := output.NewUserError("--limit must be zero or a positive integer")
		printer.Error(err)
		return err
	}

	streams := convert.Streams{In: cmd.InOrStdin(), Out: cmd.OutOrStdout()}
	data, err := streams.ReadInput(args[0])
	if err != nil {
		printer.Error(err)
		return err
	}

	linear, err := convert.Linearize(data)
	if err != nil {
		printer.Error(err)
		return err
	}

	matches := inspect.Find(linear.Messages, opts.find, opts.limit)

	if printer.IsJSON() {
		return printer.WriteJSON(inspectResult{
			Total:       len(linear.Messages),
			Count:       len(matches),
			Query:       opts.find,
			Matches:     matches,
			Diagnostics: diagnosticsOrEmpty(linear.Diagnostics),
		})
	}

	if !isQuiet(cmd) {
		printDiagnostics(printer, linear.Diagnostics)
	}

	switch {
	case len(matches) == 0:
		printer.Println("No matching messages")
	case opts.full:
		printFullMatches(printer, matches, opts.width)
	default:
		printer.Table(inspect.Headers, inspect.Rows(matches, opts.width))
		printer.Println()
	}

	printer.KeyValue("Messages", humanize.Comma(int64(len(linear.Messages))))
	if opts.find != "" {
		printer.KeyValue("Matches", humanize.Comma(int64(len(matches))))
	}
	return nil
}

// printFullMatches prints each match with its metadata and wrapped content.
func printFullMatches(printer *output.Printer, matches []inspect.Match, width int) {
	for _, m := range matches {
		printer.KeyValue(fmt.Sprintf("#%d", m.Index), fmt.Sprintf("%s  %s", m.Message.Role, inspect.FormatTime(m.Message)))
		printer.Println(inspect.Wrap(m.Message.Content, width))
		printer.Println()
	}
}
