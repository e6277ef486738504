package main

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/gorewood/chatmd/internal/convert"
	"github.com/gorewood/chatmd/internal/output"
)

// Glamour style names with special handling.
const (
	styleAuto  = "auto"
	styleNoTTY = "notty"
)

// newPreviewCmd creates the preview command.
func newPreviewCmd() *cobra.Command {
	var styleFlag string
	var widthFlag int

	cmd := &cobra.Command{
		Use:   "preview <source>",
		Short: "Render the transcript in the terminal",
		Long: `Render the Markdown transcript of a ChatGPT export in the terminal.

The transcript is the same text convert writes, styled with glamour. Style
and wrap width default to the preview section of the config file.

Examples:
  chatmd preview conversations.json                  # Styled transcript
  chatmd preview conversations.json --style dracula  # Pick a glamour style
  chatmd preview conversations.json --width 100      # Wrap at 100 columns`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreview(cmd, args, styleFlag, widthFlag)
		},
	}

	cmd.Flags().StringVar(&styleFlag, "style", "", "Glamour style: auto, dark, light, dracula, notty, ... (default from config)")
	cmd.Flags().IntVar(&widthFlag, "width", 0, "Wrap width in columns (default from config)")

	return cmd
}

// runPreview executes the preview command.
func runPreview(cmd *cobra.Command, args []string, style string, width int) error {
	printer := newCommandPrinter(cmd)

	if len(args) != 1 {
		err := output.NewUserError("please select a JSON export to preview: chatmd preview <source>")
		printer.Error(err)
		return err
	}
	if width < 0 {
		err := output.NewUserError("--width must be zero or a positive integer")
		printer.Error(err)
		return err
	}

	streams := convert.Streams{In: cmd.InOrStdin(), Out: cmd.OutOrStdout()}
	data, err := streams.ReadInput(args[0])
	if err != nil {
		printer.Error(err)
		return err
	}

	result, err := convert.Bytes(data, convert.FormatMarkdown)
	if err != nil {
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{
			"markdown":    string(result.Output),
			"messages":    len(result.Messages),
			"digest":      result.Digest,
			"diagnostics": diagnosticsOrEmpty(result.Diagnostics),
		})
	}

	if !isQuiet(cmd) {
		printDiagnostics(printer, result.Diagnostics)
	}

	rendered, err := renderPreview(string(result.Output), previewOptions(cmd, style, width))
	if err != nil {
		printer.Error(err)
		return err
	}
	printer.Print("%s", rendered)
	return nil
}

// previewSettings are the resolved glamour options.
type previewSettings struct {
	Style string
	Width int
}

// previewOptions merges flags over the config file. Without color the
// auto style falls back to notty so piped output stays plain.
func previewOptions(cmd *cobra.Command, style string, width int) previewSettings {
	cfg := configFrom(cmd).Preview
	if style == "" {
		style = cfg.Style
	}
	if width == 0 {
		width = cfg.Width
	}
	if style == "" || style == styleAuto {
		style = styleAuto
		if !useColor(cmd) {
			style = styleNoTTY
		}
	}
	return previewSettings{Style: style, Width: width}
}

// renderPreview renders markdown with glamour.
func renderPreview(markdown string, settings previewSettings) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(settings.Width)}
	if settings.Style == styleAuto {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(settings.Style))
	}

	renderer, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", output.NewUserErrorWithCause(fmt.Sprintf("invalid preview style %q", settings.Style), err)
	}

	rendered, err := renderer.Render(markdown)
	if err != nil {
		return "", output.NewSystemErrorWithCause(fmt.Sprintf("failed to render preview: %v", err), err)
	}
	return rendered, nil
}
