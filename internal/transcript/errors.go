package transcript

import (
	"errors"
	"fmt"
)

// Fatal error kinds. Returned errors wrap one of these.
var (
	// ErrMalformedInput indicates valid JSON that does not have the export shape.
	ErrMalformedInput = errors.New("malformed input")

	// ErrParse indicates bytes that are not valid JSON.
	ErrParse = errors.New("invalid JSON")
)

// DiagnosticKind classifies a soft condition found while walking the graph.
type DiagnosticKind string

// Diagnostic kinds.
const (
	DanglingReference DiagnosticKind = "dangling_reference"
	MalformedChildren DiagnosticKind = "malformed_children"
	MalformedContent  DiagnosticKind = "malformed_content"
	CycleDetected     DiagnosticKind = "cycle_detected"
)

// Diagnostic is a recovered problem in the message graph.
type Diagnostic struct {
	Kind    DiagnosticKind `json:"kind"`
	NodeID  string         `json:"node_id"`
	Message string         `json:"message"`
}

// String returns the human-readable diagnostic text.
func (d Diagnostic) String() string {
	return d.Message
}

// malformedf builds an ErrMalformedInput with an expected/found description.
func malformedf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedInput, fmt.Sprintf(format, args...))
}
