package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorewood/chatmd/internal/output"
)

const testExport = `[{"mapping": {
  "root": {"parent": null, "children": ["u1", "ghost"], "message": null},
  "u1": {"parent": "root", "children": ["a1"], "message": {
    "author": {"role": "user"}, "content": {"parts": ["How do I list files?"]}, "create_time": 10}},
  "a1": {"parent": "u1", "children": [], "message": {
    "author": {"role": "assistant"}, "content": {"parts": ["Use ls."]}, "create_time": 20}}
}}]`

const testMarkdown = "> **User:** How do I list files?\n\n**ChatGPT:**\n\n```\nUse ls.\n```\n\n---\n\n"

// isolateConfig points the config directory at an empty temp dir and
// clears CHATMD_* overrides so tests see defaults.
func isolateConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("CHATMD_CONFIG_HOME", dir)
	for _, key := range []string{"CHATMD_COLOR", "CHATMD_QUIET", "CHATMD_PREVIEW_STYLE", "CHATMD_PREVIEW_WIDTH"} {
		t.Setenv(key, "")
	}
	return dir
}

// executeCommand runs the root command with args and returns stdout,
// stderr, and the error.
func executeCommand(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// writeTestExport writes content to a temp export file.
func writeTestExport(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "conversations.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRootCommand_Version(t *testing.T) {
	isolateConfig(t)
	version = "1.2.3"

	stdout, _, err := executeCommand(t, "", "--version")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if !strings.Contains(stdout, "1.2.3") {
		t.Errorf("--version output should contain version: %q", stdout)
	}
	if !strings.Contains(stdout, "chatmd") {
		t.Errorf("--version output should contain 'chatmd': %q", stdout)
	}
}

func TestRootCommand_Help(t *testing.T) {
	isolateConfig(t)

	stdout, _, err := executeCommand(t, "", "--help")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	for _, expected := range []string{"chatmd", "Usage:", "--json", "--color", "--quiet", "convert", "inspect", "preview", "serve"} {
		if !strings.Contains(stdout, expected) {
			t.Errorf("--help output should contain %q: %q", expected, stdout)
		}
	}
}

func TestRootCommand_JSONFlag_NoSubcommand(t *testing.T) {
	isolateConfig(t)

	stdout, _, err := executeCommand(t, "", "--json")
	if err == nil {
		t.Fatal("Expected error when running with --json but no subcommand")
	}

	var result map[string]any
	if err := json.Unmarshal([]byte(stdout), &result); err != nil {
		t.Fatalf("Output should be valid JSON: %v\nOutput: %s", err, stdout)
	}
	if _, ok := result["error"]; !ok {
		t.Errorf("JSON output should contain 'error' field: %s", stdout)
	}
	if _, ok := result["code"]; !ok {
		t.Errorf("JSON output should contain 'code' field: %s", stdout)
	}
}

func TestRootCommand_PersistentFlags(t *testing.T) {
	cmd := newRootCmd()

	for _, name := range []string{"json", "color", "quiet"} {
		if cmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("--%s should be a persistent flag", name)
		}
	}
}

func TestRootCommand_InvalidColor(t *testing.T) {
	isolateConfig(t)
	src := writeTestExport(t, testExport)

	_, stderr, err := executeCommand(t, "", "inspect", src, "--color", "rainbow")
	if output.GetExitCode(err) != output.ExitUserError {
		t.Fatalf("exit code = %d, want %d (err = %v)", output.GetExitCode(err), output.ExitUserError, err)
	}
	if !strings.Contains(stderr, "rainbow") {
		t.Errorf("stderr should name the bad value: %q", stderr)
	}
}

func TestRootCommand_InvalidConfigFile(t *testing.T) {
	dir := isolateConfig(t)
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("color: [\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	src := writeTestExport(t, testExport)

	_, _, err := executeCommand(t, "", "inspect", src)
	if output.GetExitCode(err) != output.ExitUserError {
		t.Errorf("exit code = %d, want %d (err = %v)", output.GetExitCode(err), output.ExitUserError, err)
	}
}

func TestRootCommand_ConfigQuiet(t *testing.T) {
	dir := isolateConfig(t)
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("quiet: true\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	src := writeTestExport(t, testExport)

	_, stderr, err := executeCommand(t, "", "convert", src, filepath.Join(t.TempDir(), "out.md"))
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if strings.Contains(stderr, "Warning") {
		t.Errorf("quiet config should suppress diagnostics: %q", stderr)
	}
}

func TestBuildVersion(t *testing.T) {
	defer func(v, c, d string) { version, commit, date = v, c, d }(version, commit, date)

	version, commit, date = "1.0.0", "none", "unknown"
	if got := buildVersion(); got != "1.0.0" {
		t.Errorf("buildVersion() = %q, want %q", got, "1.0.0")
	}

	version, commit, date = "1.0.0", "abcdef1234567", "2026-01-01"
	if got := buildVersion(); got != "1.0.0 (abcdef1, 2026-01-01)" {
		t.Errorf("buildVersion() = %q", got)
	}
}
