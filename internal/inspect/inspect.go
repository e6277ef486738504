// Package inspect searches and tabulates linearized messages.
package inspect

import (
	"strconv"
	"strings"

	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
	"github.com/sahilm/fuzzy"

	"github.com/gorewood/chatmd/internal/transcript"
)

// TimeLayout is the layout of the Time column.
const TimeLayout = "2006-01-02 15:04:05"

// DefaultContentWidth is the Content column width when none is given.
const DefaultContentWidth = 60

// Headers are the table column names.
var Headers = []string{"#", "Time", "Role", "Content"}

// Match is a message selected by Find. Index is its 1-based position in the
// linearized sequence.
type Match struct {
	Index   int                `json:"index"`
	Score   int                `json:"score,omitempty"`
	Message transcript.Message `json:"message"`
}

// All returns every message as a match, in order.
func All(messages []transcript.Message, limit int) []Match {
	n := clampLimit(len(messages), limit)
	matches := make([]Match, 0, n)
	for i := range n {
		matches = append(matches, Match{Index: i + 1, Message: messages[i]})
	}
	return matches
}

// Find returns the messages whose role and content fuzzily match query,
// best match first. An empty query returns All.
func Find(messages []transcript.Message, query string, limit int) []Match {
	if query == "" {
		return All(messages, limit)
	}

	candidates := make([]string, len(messages))
	for i, msg := range messages {
		candidates[i] = msg.Role + " " + msg.Content
	}

	found := fuzzy.Find(query, candidates)
	n := clampLimit(len(found), limit)
	matches := make([]Match, 0, n)
	for _, m := range found[:n] {
		matches = append(matches, Match{
			Index:   m.Index + 1,
			Score:   m.Score,
			Message: messages[m.Index],
		})
	}
	return matches
}

// Rows formats matches as table rows matching Headers. Content is folded
// onto one line and truncated to width cells.
func Rows(matches []Match, width int) [][]string {
	if width <= 0 {
		width = DefaultContentWidth
	}

	rows := make([][]string, 0, len(matches))
	for _, m := range matches {
		rows = append(rows, []string{
			strconv.Itoa(m.Index),
			FormatTime(m.Message),
			m.Message.Role,
			Snippet(m.Message.Content, width),
		})
	}
	return rows
}

// FormatTime returns the message time in TimeLayout, or "-" when unset.
func FormatTime(msg transcript.Message) string {
	t := msg.Time()
	if t.IsZero() {
		return "-"
	}
	return t.Format(TimeLayout)
}

// Snippet folds whitespace and truncates content to width cells.
func Snippet(content string, width int) string {
	folded := strings.Join(strings.Fields(content), " ")
	return truncate.StringWithTail(folded, uint(width), "…") //nolint:gosec // width is positive
}

// Wrap wraps content for detail views.
func Wrap(content string, width int) string {
	if width <= 0 {
		return content
	}
	return wordwrap.String(content, width)
}

func clampLimit(n, limit int) int {
	if limit > 0 && limit < n {
		return limit
	}
	return n
}
