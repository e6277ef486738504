package export

import (
	"encoding/json"
	"fmt"

	"github.com/gorewood/chatmd/internal/output"
	"github.com/gorewood/chatmd/internal/transcript"
)

// MarshalJSON encodes the messages as an indented JSON array with a
// trailing newline.
func MarshalJSON(messages []transcript.Message) ([]byte, error) {
	if messages == nil {
		messages = []transcript.Message{}
	}
	data, err := json.MarshalIndent(messages, "", "  ")
	if err != nil {
		return nil, output.NewSystemErrorWithCause(fmt.Sprintf("failed to encode messages: %v", err), err)
	}
	return append(data, '\n'), nil
}
