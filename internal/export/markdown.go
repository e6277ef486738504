// Package export provides formatting and file output for linearized transcripts.
package export

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gorewood/chatmd/internal/transcript"
)

// Roles with special rendering.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// AssistantLabel is the label of an assistant reply paired with a user message.
const AssistantLabel = "ChatGPT"

// FormatMarkdown renders messages as a Markdown transcript.
// A user message immediately followed by an assistant message forms one
// exchange; every exchange ends with a horizontal rule.
func FormatMarkdown(messages []transcript.Message) string {
	var builder strings.Builder

	for i := 0; i < len(messages); i++ {
		msg := messages[i]
		if msg.Role == RoleUser {
			writeUser(&builder, msg)
			if i+1 < len(messages) && messages[i+1].Role == RoleAssistant {
				i++
				writeAssistant(&builder, messages[i])
			}
		} else {
			writeOther(&builder, msg)
		}
		builder.WriteString("---\n\n")
	}

	return builder.String()
}

// writeUser writes a user message as a blockquote.
func writeUser(builder *strings.Builder, msg transcript.Message) {
	fmt.Fprintf(builder, "> **User:** %s\n\n", msg.Content)
}

// writeAssistant writes a paired assistant reply inside a fenced code block.
func writeAssistant(builder *strings.Builder, msg transcript.Message) {
	fence := codeFence(msg.Content)
	fmt.Fprintf(builder, "**%s:**\n\n%s\n%s\n%s\n\n", AssistantLabel, fence, msg.Content, fence)
}

// writeOther writes any unpaired message with its role as the label.
func writeOther(builder *strings.Builder, msg transcript.Message) {
	fmt.Fprintf(builder, "**%s:** %s\n\n", RoleLabel(msg.Role), msg.Content)
}

// RoleLabel upper-cases the first letter of role and lower-cases the rest.
func RoleLabel(role string) string {
	first, size := utf8.DecodeRuneInString(role)
	if size == 0 {
		return ""
	}
	return string(unicode.ToUpper(first)) + strings.ToLower(role[size:])
}

// codeFence returns a backtick fence longer than any backtick run in content.
func codeFence(content string) string {
	longest, run := 0, 0
	for _, r := range content {
		if r == '`' {
			run++
			longest = max(longest, run)
			continue
		}
		run = 0
	}
	return strings.Repeat("`", max(3, longest+1))
}
