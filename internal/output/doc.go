// Package output provides structured output handling for the chatmd CLI.
//
// This package handles both human-readable and JSON output formats so that
// every command works for people at a terminal and for scripts alike.
//
// # Printer
//
// The Printer is the primary interface for command output. It switches
// format based on the --json flag and TTY detection:
//
//	printer := output.NewPrinter(cmd.OutOrStdout(), jsonMode, output.IsTTY(cmd.OutOrStdout()))
//
//	// Success and notices
//	printer.Success(map[string]any{"message": "Transcript written", "messages": 12})
//	printer.Notify("Success", "Saved to: out.md")
//
//	// Soft problems and failures
//	printer.Warn("message %q not found in mapping", id)
//	printer.Error(err)
//
// # JSON Mode
//
// When JSON mode is enabled (via --json flag), all output is structured:
//
//	// Success: {"message": "...", ...}
//	// Notice:  {"title": "...", "message": "..."}
//	// Warning: {"warning": "..."}
//	// Error:   {"error": "message", "code": N}
//
// # Styling
//
// Human-readable output uses lipgloss styles that are cleared when output
// is piped or --color=never is given (see ResolveColorMode).
//
// # Exit Codes
//
//	output.ExitSuccess     // 0: Success
//	output.ExitUserError   // 1: User error (bad args, invalid or malformed export)
//	output.ExitSystemError // 2: System error (read or write failed)
//	output.ExitNoContent   // 3: The export held no non-empty messages
//
// Errors built with NewUserError, NewSystemError, NewNoContentError and
// their WithCause variants carry these codes; GetExitCode extracts them.
package output
