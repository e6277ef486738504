package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/gorewood/chatmd/internal/convert"
	"github.com/gorewood/chatmd/internal/output"
	"github.com/gorewood/chatmd/internal/transcript"
)

// newConvertCmd creates the convert command.
func newConvertCmd() *cobra.Command {
	var formatFlag string

	cmd := &cobra.Command{
		Use:   "convert <source> <destination>",
		Short: "Convert an export into a Markdown transcript",
		Long: `Convert a ChatGPT conversation export into a Markdown transcript.

The source is the exported JSON; the destination is replaced atomically and
is only written when the conversion succeeds. Use - for stdin or stdout.

Problems recovered while walking the message tree (missing children,
malformed child lists, repeated references) are reported as warnings;
--quiet suppresses them.

Examples:
  chatmd convert conversations.json chat.md          # Write a Markdown transcript
  chatmd convert conversations.json - | less         # Print the transcript
  chatmd convert conversations.json msgs.json --format json  # Write the linearized messages
  chatmd convert conversations.json chat.md --json   # Report the result as JSON`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, args, formatFlag)
		},
	}

	cmd.Flags().StringVarP(&formatFlag, "format", "f", string(convert.FormatMarkdown), "Output format: md or json")

	return cmd
}

// runConvert executes the convert command.
func runConvert(cmd *cobra.Command, args []string, formatFlag string) error {
	printer := newConvertPrinter(cmd, args)

	if err := validateConvertArgs(printer, args); err != nil {
		return err
	}
	src, dst := args[0], args[1]

	format, err := convert.ParseFormat(formatFlag)
	if err != nil {
		printer.Error(err)
		return err
	}

	streams := convert.Streams{In: cmd.InOrStdin(), Out: cmd.OutOrStdout()}
	result, err := streams.File(src, dst, format)
	if err != nil {
		printer.Error(err)
		return err
	}

	return reportConvert(cmd, printer, dst, result)
}

// newConvertPrinter builds the printer for convert. When the transcript
// goes to stdout, notices move to stderr so they never mix with it.
func newConvertPrinter(cmd *cobra.Command, args []string) *output.Printer {
	if len(args) == 2 && args[1] == convert.StdioPath {
		return output.NewPrinter(cmd.ErrOrStderr(), isJSONMode(cmd), output.IsTTY(cmd.ErrOrStderr()))
	}
	return newCommandPrinter(cmd)
}

// validateConvertArgs checks that both paths are present.
func validateConvertArgs(printer *output.Printer, args []string) error {
	var err error
	switch {
	case len(args) == 0 || args[0] == "":
		err = output.NewUserError("please select a JSON export to convert: chatmd convert <source> <destination>")
	case len(args) == 1 || args[1] == "":
		err = output.NewUserError("please specify the output file: chatmd convert <source> <destination>")
	case len(args) > 2:
		err = output.NewUserError(fmt.Sprintf("convert takes 2 arguments, got %d", len(args)))
	}
	if err != nil {
		printer.Error(err)
	}
	return err
}

// reportConvert prints diagnostics and the success notice.
func reportConvert(cmd *cobra.Command, printer *output.Printer, dst string, result *convert.Result) error {
	if printer.IsJSON() {
		return printer.Success(map[string]any{
			"status":      "ok",
			"destination": dst,
			"messages":    len(result.Messages),
			"bytes":       len(result.Output),
			"digest":      result.Digest,
			"diagnostics": diagnosticsOrEmpty(result.Diagnostics),
		})
	}

	if !isQuiet(cmd) {
		printDiagnostics(printer, result.Diagnostics)
	}

	printer.Notify("Success", fmt.Sprintf("Saved %s messages (%s) to %s",
		humanize.Comma(int64(len(result.Messages))),
		humanize.Bytes(uint64(len(result.Output))),
		destinationName(dst),
	))
	return nil
}

// printDiagnostics writes each diagnostic as a warning.
func printDiagnostics(printer *output.Printer, diags []transcript.Diagnostic) {
	for _, d := range diags {
		printer.Warn("%s", d)
	}
}

func diagnosticsOrEmpty(diags []transcript.Diagnostic) []transcript.Diagnostic {
	if diags == nil {
		return []transcript.Diagnostic{}
	}
	return diags
}

func destinationName(dst string) string {
	if dst == convert.StdioPath {
		return "stdout"
	}
	return dst
}
