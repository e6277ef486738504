package export

import (
	"strings"
	"testing"

	"github.com/gorewood/chatmd/internal/transcript"
)

func msg(role, content string, ts float64) transcript.Message {
	return transcript.Message{Role: role, Content: content, Timestamp: ts}
}

func TestFormatMarkdown(t *testing.T) {
	tests := []struct {
		name     string
		messages []transcript.Message
		want     string
	}{
		{
			name:     "no messages",
			messages: nil,
			want:     "",
		},
		{
			name:     "lone user message",
			messages: []transcript.Message{msg("user", "Hi", 1)},
			want:     "> **User:** Hi\n\n---\n\n",
		},
		{
			name: "user paired with assistant",
			messages: []transcript.Message{
				msg("user", "What is Go?", 1),
				msg("assistant", "A language.", 2),
			},
			want: "> **User:** What is Go?\n\n" +
				"**ChatGPT:**\n\n```\nA language.\n```\n\n" +
				"---\n\n",
		},
		{
			name: "assistant before user is not paired",
			messages: []transcript.Message{
				msg("assistant", "earlier", 1),
				msg("user", "later", 2),
			},
			want: "**Assistant:** earlier\n\n---\n\n" +
				"> **User:** later\n\n---\n\n",
		},
		{
			name: "only the next message pairs",
			messages: []transcript.Message{
				msg("user", "q", 1),
				msg("assistant", "a1", 2),
				msg("assistant", "a2", 3),
			},
			want: "> **User:** q\n\n**ChatGPT:**\n\n```\na1\n```\n\n---\n\n" +
				"**Assistant:** a2\n\n---\n\n",
		},
		{
			name: "user followed by another role",
			messages: []transcript.Message{
				msg("user", "run it", 1),
				msg("tool", "done", 2),
			},
			want: "> **User:** run it\n\n---\n\n**Tool:** done\n\n---\n\n",
		},
		{
			name:     "role label casing",
			messages: []transcript.Message{msg("SYSTEM", "boot", 0)},
			want:     "**System:** boot\n\n---\n\n",
		},
		{
			name:     "empty role has an empty label",
			messages: []transcript.Message{msg("", "who", 0)},
			want:     "**:** who\n\n---\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatMarkdown(tt.messages); got != tt.want {
				t.Errorf("FormatMarkdown() =\n%q\nwant\n%q", got, tt.want)
			}
		})
	}
}

func TestFormatMarkdown_EveryMessageOnce(t *testing.T) {
	messages := []transcript.Message{
		msg("system", "m0", 0),
		msg("user", "m1", 1),
		msg("assistant", "m2", 2),
		msg("user", "m3", 3),
		msg("user", "m4", 4),
		msg("assistant", "m5", 5),
		msg("assistant", "m6", 6),
		msg("unknown", "m7", 7),
	}

	result := FormatMarkdown(messages)

	last := -1
	for _, m := range messages {
		if count := strings.Count(result, m.Content+"\n"); count != 1 {
			t.Errorf("%s appears %d times, want 1", m.Content, count)
		}
		idx := strings.Index(result, m.Content+"\n")
		if idx <= last {
			t.Errorf("%s is out of order", m.Content)
		}
		last = idx
	}

	// m1+m2 and m4+m5 pair; m0, m3, m6, m7 stand alone.
	if got := strings.Count(result, "---\n\n"); got != 6 {
		t.Errorf("separator count = %d, want 6", got)
	}
	if got := strings.Count(result, "**ChatGPT:**"); got != 2 {
		t.Errorf("paired blocks = %d, want 2", got)
	}
}

func TestFormatMarkdown_Idempotent(t *testing.T) {
	messages := []transcript.Message{
		msg("user", "q", 1),
		msg("assistant", "a", 2),
		msg("system", "s", 3),
	}
	first := FormatMarkdown(messages)
	for range 5 {
		if got := FormatMarkdown(messages); got != first {
			t.Fatalf("FormatMarkdown() not deterministic:\n%q\n%q", first, got)
		}
	}
}

func TestFormatMarkdown_FenceOutgrowsContent(t *testing.T) {
	messages := []transcript.Message{
		msg("user", "show code", 1),
		msg("assistant", "```go\nfmt.Println()\n```", 2),
	}

	result := FormatMarkdown(messages)

	want := "**ChatGPT:**\n\n````\n```go\nfmt.Println()\n```\n````\n\n"
	if !strings.Contains(result, want) {
		t.Errorf("FormatMarkdown() =\n%q\nwant it to contain\n%q", result, want)
	}
}

func TestRoleLabel(t *testing.T) {
	tests := []struct {
		role string
		want string
	}{
		{role: "", want: ""},
		{role: "user", want: "User"},
		{role: "assistant", want: "Assistant"},
		{role: "sYsTeM", want: "System"},
		{role: "élan", want: "Élan"},
		{role: "tool_call", want: "Tool_call"},
	}
	for _, tt := range tests {
		if got := RoleLabel(tt.role); got != tt.want {
			t.Errorf("RoleLabel(%q) = %q, want %q", tt.role, got, tt.want)
		}
	}
}

func TestCodeFence(t *testing.T) {
	tests := []struct {
		content string
		want    string
	}{
		{content: "plain", want: "```"},
		{content: "`inline` and ``double``", want: "```"},
		{content: "```", want: "````"},
		{content: "a `````` b", want: "```````"},
	}
	for _, tt := range tests {
		if got := codeFence(tt.content); got != tt.want {
			t.Errorf("codeFence(%q) = %q, want %q", tt.content, got, tt.want)
		}
	}
}
