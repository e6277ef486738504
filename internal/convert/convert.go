// Package convert runs the export-to-transcript pipeline: read the source,
// linearize it, render the requested format, and write the destination.
//
// Errors leave this package as *output.ExitError values whose causes wrap
// the transcript sentinels or ErrEmptyResult and ErrIO, so both
// output.GetExitCode and errors.Is work on them.
package convert

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gorewood/chatmd/internal/export"
	"github.com/gorewood/chatmd/internal/output"
	"github.com/gorewood/chatmd/internal/transcript"
)

// StdioPath selects stdin as a source or stdout as a destination.
const StdioPath = "-"

var (
	// ErrEmptyResult indicates an export with no non-empty messages.
	ErrEmptyResult = errors.New("no valid messages were found to convert")

	// ErrIO indicates a failure reading the source or writing the destination.
	ErrIO = errors.New("i/o failure")
)

// Format selects the rendered output.
type Format string

// Output formats.
const (
	FormatMarkdown Format = "md"
	FormatJSON     Format = "json"
)

// ParseFormat validates a --format value. Empty selects Markdown.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatMarkdown:
		return FormatMarkdown, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", output.NewUserError(fmt.Sprintf("unknown format %q (use md or json)", s))
	}
}

// Result is the outcome of one conversion.
type Result struct {
	Messages    []transcript.Message    `json:"messages"`
	Diagnostics []transcript.Diagnostic `json:"diagnostics,omitempty"`
	Output      []byte                  `json:"-"`
	Digest      string                  `json:"digest"`
}

// Streams are the standard streams used for the "-" path.
type Streams struct {
	In  io.Reader
	Out io.Writer
}

// Stdio returns streams bound to the process stdin and stdout.
func Stdio() Streams {
	return Streams{In: os.Stdin, Out: os.Stdout}
}

// ReadInput reads the source export from path, or stdin for "-".
func ReadInput(path string) ([]byte, error) {
	return Stdio().ReadInput(path)
}

// WriteOutput writes data to path, or stdout for "-".
func WriteOutput(path string, data []byte) error {
	return Stdio().WriteOutput(path, data)
}

// File converts the export at src and writes the result to dst.
func File(src, dst string, format Format) (*Result, error) {
	return Stdio().File(src, dst, format)
}

// ReadInput reads the source export from path, or from s.In for "-".
func (s Streams) ReadInput(path string) ([]byte, error) {
	if path == "" {
		return nil, output.NewUserError("source path is required")
	}

	var (
		data []byte
		err  error
	)
	name := path
	if path == StdioPath {
		name = "stdin"
		data, err = io.ReadAll(s.In)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, ioError("failed to read "+name, err)
	}
	return data, nil
}

// WriteOutput writes data to path atomically, or to s.Out for "-".
func (s Streams) WriteOutput(path string, data []byte) error {
	if path == "" {
		return output.NewUserError("destination path is required")
	}

	var err error
	name := path
	if path == StdioPath {
		name = "stdout"
		_, err = s.Out.Write(data)
	} else {
		err = export.WriteFile(path, data)
	}
	if err != nil {
		return ioError("failed to write "+name, err)
	}
	return nil
}

// File converts the export at src and writes the result to dst.
// Nothing is written unless the conversion succeeds.
func (s Streams) File(src, dst string, format Format) (*Result, error) {
	if dst == "" {
		return nil, output.NewUserError("destination path is required")
	}

	data, err := s.ReadInput(src)
	if err != nil {
		return nil, err
	}

	result, err := Bytes(data, format)
	if err != nil {
		return nil, err
	}

	if err := s.WriteOutput(dst, result.Output); err != nil {
		return nil, err
	}
	return result, nil
}

// Bytes converts an export held in memory.
func Bytes(data []byte, format Format) (*Result, error) {
	linear, err := Linearize(data)
	if err != nil {
		return nil, err
	}
	if len(linear.Messages) == 0 {
		return nil, output.NewNoContentError(ErrEmptyResult.Error(), ErrEmptyResult)
	}

	rendered, err := Render(linear.Messages, format)
	if err != nil {
		return nil, err
	}

	return &Result{
		Messages:    linear.Messages,
		Diagnostics: linear.Diagnostics,
		Output:      rendered,
		Digest:      export.Digest(rendered),
	}, nil
}

// Linearize decodes and linearizes data, lifting decode failures to user errors.
func Linearize(data []byte) (*transcript.Result, error) {
	result, err := transcript.Linearize(data)
	if err != nil {
		return nil, output.NewUserErrorWithCause(err.Error(), err)
	}
	return result, nil
}

// Render formats messages in the given format.
func Render(messages []transcript.Message, format Format) ([]byte, error) {
	switch format {
	case "", FormatMarkdown:
		return []byte(export.FormatMarkdown(messages)), nil
	case FormatJSON:
		return export.MarshalJSON(messages)
	default:
		return nil, output.NewUserError(fmt.Sprintf("unknown format %q (use md or json)", format))
	}
}

func ioError(message string, err error) error {
	return output.NewSystemErrorWithCause(
		fmt.Sprintf("%s: %v", message, err),
		fmt.Errorf("%w: %w", ErrIO, err),
	)
}
