// Package main provides the entry point for the chatmd CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/gorewood/chatmd/internal/config"
	"github.com/gorewood/chatmd/internal/envfile"
	"github.com/gorewood/chatmd/internal/output"
)

// Build info set via ldflags at build time by goreleaser.
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123 -X main.date=2024-01-01"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// configKey is the context key holding the loaded config.Config.
type configKey struct{}

// isJSONMode reads the --json persistent flag from the command hierarchy.
func isJSONMode(cmd *cobra.Command) bool {
	return boolFlag(cmd, "json")
}

// isQuiet reports whether diagnostics should be suppressed.
// The --quiet flag wins over the config file.
func isQuiet(cmd *cobra.Command) bool {
	return boolFlag(cmd, "quiet") || configFrom(cmd).Quiet
}

// useColor resolves --color (or the configured color mode) against the
// command's output stream.
func useColor(cmd *cobra.Command) bool {
	mode := stringFlag(cmd, "color")
	if mode == "" {
		mode = configFrom(cmd).Color
	}
	return output.ResolveColorMode(mode, output.IsTTY(cmd.OutOrStdout()))
}

// configFrom returns the config loaded by the root pre-run, or defaults
// when the command runs without it.
func configFrom(cmd *cobra.Command) config.Config {
	if ctx := cmd.Context(); ctx != nil {
		if cfg, ok := ctx.Value(configKey{}).(config.Config); ok {
			return cfg
		}
	}
	return config.Default()
}

func lookupFlag(cmd *cobra.Command, name string) string {
	flag := cmd.Flags().Lookup(name)
	if flag == nil {
		// Walk up to root to find the persistent flag
		flag = cmd.Root().PersistentFlags().Lookup(name)
	}
	if flag == nil {
		return ""
	}
	return flag.Value.String()
}

func boolFlag(cmd *cobra.Command, name string) bool {
	return lookupFlag(cmd, name) == "true"
}

func stringFlag(cmd *cobra.Command, name string) string {
	return lookupFlag(cmd, name)
}

// buildVersion returns the full version string including commit and date.
func buildVersion() string {
	if commit == "none" && date == "unknown" {
		return version
	}
	shortCommit := commit
	if len(commit) > 7 {
		shortCommit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", version, shortCommit, date)
}

func main() {
	code := run()
	os.Exit(code)
}

func run() int {
	cmd := newRootCmd()
	err := fang.Execute(context.Background(), cmd, fang.WithVersion(buildVersion()))
	return output.GetExitCode(err)
}

// newRootCmd creates the root command for the chatmd CLI.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chatmd",
		Short: "Convert ChatGPT exports into Markdown transcripts",
		Long: `chatmd - Convert ChatGPT conversation exports into readable Markdown transcripts.

chatmd reads the JSON export of a conversation, walks its message tree
(including every edited or regenerated branch), orders the messages by
creation time, and renders them as a Markdown transcript:
  - User turns as blockquotes
  - Paired assistant replies in fenced code blocks
  - A horizontal rule after every exchange

All commands support --json for structured output.`,
		Version:       buildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// If --json flag is set but no subcommand, output JSON error
			if isJSONMode(cmd) {
				printer := output.NewPrinter(cmd.OutOrStdout(), true, false)
				err := output.NewUserError("no command specified. Run 'chatmd --help' for usage")
				printer.Error(err)
				return err
			}
			// Otherwise show help
			return cmd.Help()
		},
	}

	// Env files first so CHATMD_* values they hold reach the config.
	// Environment variables always take precedence over file values.
	cmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		loadEnvFiles()
		return loadConfig(cmd)
	}

	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().String("color", "", "Color output: auto, always, or never (default from config, else auto)")
	cmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress tree diagnostics")

	// Configure lipgloss for TTY detection
	lipgloss.SetHasDarkBackground(true)

	addCommandGroups(cmd)
	addCommands(cmd)

	return cmd
}

// loadEnvFiles loads env files in priority order. First match for each
// variable wins; environment variables already set always take precedence.
//
// Resolution order:
//  1. $CWD/.env.local   (per-directory override, gitignored)
//  2. $CWD/.env         (per-directory)
//  3. ~/.config/chatmd/env (global fallback)
func loadEnvFiles() {
	paths := []string{".env.local", ".env"}
	if dir := config.Dir(); dir != "" {
		paths = append(paths, filepath.Join(dir, "env"))
	}
	_ = envfile.LoadAll(paths...)
}

// loadConfig reads the config file, validates --color, and stores the
// result on the command context.
func loadConfig(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err == nil && !output.ValidColorMode(stringFlag(cmd, "color")) {
		err = output.NewUserError(fmt.Sprintf("invalid --color %q (use auto, always, or never)", stringFlag(cmd, "color")))
	}
	if err != nil {
		printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), false).WithStderr(cmd.ErrOrStderr())
		printer.Error(err)
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(context.WithValue(ctx, configKey{}, cfg))
	return nil
}

// addCommandGroups defines the command groups for help output.
func addCommandGroups(cmd *cobra.Command) {
	cmd.AddGroup(&cobra.Group{ID: "core", Title: "Core Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "view", Title: "View Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "agent", Title: "Agent Commands:"})
}

// addCommands adds all subcommands with their group assignments.
func addCommands(cmd *cobra.Command) {
	addGroupedCommand(cmd, newConvertCmd(), "core")

	addGroupedCommand(cmd, newInspectCmd(), "view")
	addGroupedCommand(cmd, newPreviewCmd(), "view")

	addGroupedCommand(cmd, newServeCmd(), "agent")
}

// addGroupedCommand adds a subcommand with a group assignment.
func addGroupedCommand(parent *cobra.Command, child *cobra.Command, groupID string) {
	child.GroupID = groupID
	parent.AddCommand(child)
}

// newCommandPrinter returns a printer on the command's streams with
// human-mode errors and warnings routed to stderr.
func newCommandPrinter(cmd *cobra.Command) *output.Printer {
	return output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd)).WithStderr(cmd.ErrOrStderr())
}
