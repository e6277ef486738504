package transcript

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"time"
)

// Message is a normalized chat message. Content is trimmed and non-empty.
type Message struct {
	ID        string  `json:"id"`
	Role      string  `json:"role"`
	Content   string  `json:"content"`
	Timestamp float64 `json:"timestamp"`
}

// Time returns the creation time, or the zero time for a zero timestamp.
func (m Message) Time() time.Time {
	if m.Timestamp == 0 {
		return time.Time{}
	}
	sec, frac := math.Modf(m.Timestamp)
	return time.Unix(int64(sec), int64(frac*float64(time.Second))).UTC()
}

// Result is the outcome of linearizing a conversation.
type Result struct {
	Messages    []Message    `json:"messages"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
}

// Linearize decodes data and linearizes the conversation it holds.
func Linearize(data []byte) (*Result, error) {
	conv, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return conv.Linearize(), nil
}

// Linearize walks every root in mapping order and returns the messages
// sorted by timestamp. Ties keep traversal order.
func (c *Conversation) Linearize() *Result {
	w := &walker{
		conv:     c,
		visited:  make(map[string]bool, len(c.nodes)),
		messages: make([]Message, 0, len(c.nodes)),
	}
	for _, root := range c.Roots() {
		w.walk(root)
	}

	slices.SortStableFunc(w.messages, func(a, b Message) int {
		return cmp.Compare(a.Timestamp, b.Timestamp)
	})

	return &Result{
		Messages:    w.messages,
		Diagnostics: w.diags,
	}
}

// walker holds the state of one linearization.
type walker struct {
	conv     *Conversation
	visited  map[string]bool
	messages []Message
	diags    []Diagnostic
}

// walk visits the subtree under rootID depth-first, pre-order.
// Children are pushed in reverse so they pop in the order given.
func (w *walker) walk(rootID string) {
	stack := []string{rootID}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if w.visited[id] {
			w.report(CycleDetected, id, fmt.Sprintf("message %q was already visited; skipping repeated reference", id))
			continue
		}
		n, ok := w.conv.nodes[id]
		if !ok {
			w.report(DanglingReference, id, fmt.Sprintf("message %q not found in mapping; skipping branch", id))
			continue
		}
		w.visited[id] = true

		children := w.visit(n)
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
}

// visit emits the node's message, if any, and returns its child ids.
func (w *walker) visit(n node) []string {
	msg, ok, diags := normalizeMessage(n.id, n.message)
	w.diags = append(w.diags, diags...)
	if ok && msg.Content != "" {
		w.messages = append(w.messages, msg)
	}

	children, diags := normalizeChildren(n.id, n.children)
	w.diags = append(w.diags, diags...)
	return children
}

func (w *walker) report(kind DiagnosticKind, id, message string) {
	w.diags = append(w.diags, Diagnostic{Kind: kind, NodeID: id, Message: message})
}
