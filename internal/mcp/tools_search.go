package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/chatmd/internal/convert"
	"github.com/gorewood/chatmd/internal/inspect"
)

// defaultSearchLimit caps search results when no limit is given.
const defaultSearchLimit = 20

// SearchInput is the input for the search tool.
type SearchInput struct {
	Export string `json:"export,omitempty" jsonschema:"the export JSON text"`
	Path   string `json:"path,omitempty"   jsonschema:"path to an export JSON file (alternative to export)"`
	Query  string `json:"query"            jsonschema:"fuzzy query matched against role and content (required)"`
	Limit  int    `json:"limit,omitempty"  jsonschema:"maximum number of matches (default 20)"`
}

// SearchOutput is the output for the search tool.
type SearchOutput struct {
	Count   int             `json:"count"   jsonschema:"number of matches returned"`
	Matches []inspect.Match `json:"matches" jsonschema:"matching messages, best first"`
}

func handleSearch(
	_ context.Context, _ *mcp.CallToolRequest, input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	if input.Query == "" {
		return nil, SearchOutput{}, errors.New("query is required")
	}

	data, err := readSource(input.Export, input.Path)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	result, err := convert.Linearize(data)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	limit := input.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	matches := inspect.Find(result.Messages, input.Query, limit)
	return nil, SearchOutput{Count: len(matches), Matches: matches}, nil
}
