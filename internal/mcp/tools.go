package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/chatmd/internal/convert"
	"github.com/gorewood/chatmd/internal/transcript"
)

// --- Linearize tool ---

// LinearizeInput is the input for the linearize tool.
type LinearizeInput struct {
	Export string `json:"export,omitempty" jsonschema:"the export JSON text"`
	Path   string `json:"path,omitempty"   jsonschema:"path to an export JSON file (alternative to export)"`
}

// LinearizeOutput is the output for the linearize tool.
type LinearizeOutput struct {
	Count       int                     `json:"count"                 jsonschema:"number of messages"`
	Messages    []transcript.Message    `json:"messages"              jsonschema:"messages in chronological order"`
	Diagnostics []transcript.Diagnostic `json:"diagnostics,omitempty" jsonschema:"recovered problems in the message tree"`
}

func handleLinearize(
	_ context.Context, _ *mcp.CallToolRequest, input LinearizeInput,
) (*mcp.CallToolResult, LinearizeOutput, error) {
	data, err := readSource(input.Export, input.Path)
	if err != nil {
		return nil, LinearizeOutput{}, err
	}

	result, err := convert.Linearize(data)
	if err != nil {
		return nil, LinearizeOutput{}, err
	}

	return nil, LinearizeOutput{
		Count:       len(result.Messages),
		Messages:    result.Messages,
		Diagnostics: result.Diagnostics,
	}, nil
}

// --- Convert tool ---

// ConvertInput is the input for the convert tool.
type ConvertInput struct {
	Export string `json:"export,omitempty" jsonschema:"the export JSON text"`
	Path   string `json:"path,omitempty"   jsonschema:"path to an export JSON file (alternative to export)"`
	Format string `json:"format,omitempty" jsonschema:"output format: md (default) or json"`
}

// ConvertOutput is the output for the convert tool.
type ConvertOutput struct {
	Format       string                  `json:"format"                jsonschema:"format of the rendered output"`
	Output       string                  `json:"output"                jsonschema:"the rendered transcript"`
	MessageCount int                     `json:"message_count"         jsonschema:"number of messages rendered"`
	Digest       string                  `json:"digest"                jsonschema:"BLAKE3 hex digest of the output"`
	Diagnostics  []transcript.Diagnostic `json:"diagnostics,omitempty" jsonschema:"recovered problems in the message tree"`
}

func handleConvert(
	_ context.Context, _ *mcp.CallToolRequest, input ConvertInput,
) (*mcp.CallToolResult, ConvertOutput, error) {
	format, err := parseFormat(input.Format)
	if err != nil {
		return nil, ConvertOutput{}, err
	}

	data, err := readSource(input.Export, input.Path)
	if err != nil {
		return nil, ConvertOutput{}, err
	}

	result, err := convert.Bytes(data, format)
	if err != nil {
		return nil, ConvertOutput{}, err
	}

	return nil, ConvertOutput{
		Format:       string(format),
		Output:       string(result.Output),
		MessageCount: len(result.Messages),
		Digest:       result.Digest,
		Diagnostics:  result.Diagnostics,
	}, nil
}

// --- Convert file tool ---

// ConvertFileInput is the input for the convert_file tool.
type ConvertFileInput struct {
	Source      string `json:"source"           jsonschema:"path to the export JSON file (required)"`
	Destination string `json:"destination"      jsonschema:"path of the transcript to write (required)"`
	Format      string `json:"format,omitempty" jsonschema:"output format: md (default) or json"`
}

// ConvertFileOutput is the output for the convert_file tool.
type ConvertFileOutput struct {
	Destination  string                  `json:"destination"           jsonschema:"path that was written"`
	Bytes        int                     `json:"bytes"                 jsonschema:"size of the written transcript"`
	MessageCount int                     `json:"message_count"         jsonschema:"number of messages written"`
	Digest       string                  `json:"digest"                jsonschema:"BLAKE3 hex digest of the written file"`
	Diagnostics  []transcript.Diagnostic `json:"diagnostics,omitempty" jsonschema:"recovered problems in the message tree"`
}

func handleConvertFile(
	_ context.Context, _ *mcp.CallToolRequest, input ConvertFileInput,
) (*mcp.CallToolResult, ConvertFileOutput, error) {
	if err := validateConvertFileInput(input); err != nil {
		return nil, ConvertFileOutput{}, err
	}

	format, err := parseFormat(input.Format)
	if err != nil {
		return nil, ConvertFileOutput{}, err
	}

	result, err := convert.File(input.Source, input.Destination, format)
	if err != nil {
		return nil, ConvertFileOutput{}, err
	}

	return nil, ConvertFileOutput{
		Destination:  input.Destination,
		Bytes:        len(result.Output),
		MessageCount: len(result.Messages),
		Digest:       result.Digest,
		Diagnostics:  result.Diagnostics,
	}, nil
}

// validateConvertFileInput checks that required fields are present and
// name files. Stdin and stdout carry the MCP transport.
func validateConvertFileInput(input ConvertFileInput) error {
	if input.Source == "" {
		return errors.New("source is required")
	}
	if input.Destination == "" {
		return errors.New("destination is required")
	}
	if input.Source == convert.StdioPath {
		return errors.New("source must name a file")
	}
	if input.Destination == convert.StdioPath {
		return errors.New("destination must name a file")
	}
	return nil
}
