package mcp

import (
	"errors"

	"github.com/gorewood/chatmd/internal/convert"
)

// readSource returns the export given inline or read from path.
// Exactly one of the two must be set.
func readSource(export, path string) ([]byte, error) {
	switch {
	case export != "" && path != "":
		return nil, errors.New("set either export or path, not both")
	case export != "":
		return []byte(export), nil
	case path == convert.StdioPath:
		return nil, errors.New("path must name a file")
	case path != "":
		return convert.ReadInput(path)
	default:
		return nil, errors.New("export or path is required")
	}
}

// parseFormat maps an optional format name to a convert.Format.
func parseFormat(name string) (convert.Format, error) {
	format, err := convert.ParseFormat(name)
	if err != nil {
		return "", errors.New("format must be md or json")
	}
	return format, nil
}
