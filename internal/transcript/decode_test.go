package transcript

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantErr     error
		wantMessage string
	}{
		{
			name:        "not JSON",
			input:       `[{"mapping": `,
			wantErr:     ErrParse,
			wantMessage: "invalid JSON",
		},
		{
			name:        "empty input",
			input:       ``,
			wantErr:     ErrParse,
			wantMessage: "unexpected end of JSON input",
		},
		{
			name:        "top level object",
			input:       `{"mapping": {}}`,
			wantErr:     ErrMalformedInput,
			wantMessage: "expected a non-empty JSON array of conversations, found an object",
		},
		{
			name:        "empty array",
			input:       `[]`,
			wantErr:     ErrMalformedInput,
			wantMessage: "found an empty array",
		},
		{
			name:        "first element not an object",
			input:       `[42]`,
			wantErr:     ErrMalformedInput,
			wantMessage: "expected the first element to be a conversation object, found a number",
		},
		{
			name:        "missing mapping",
			input:       `[{"title": "x"}]`,
			wantErr:     ErrMalformedInput,
			wantMessage: `expected a non-empty "mapping" object in the first conversation, found none`,
		},
		{
			name:        "capitalized mapping key",
			input:       `[{"Mapping": {"r": {"parent": null}}}]`,
			wantErr:     ErrMalformedInput,
			wantMessage: `expected a non-empty "mapping" object in the first conversation, found none`,
		},
		{
			name:        "null mapping",
			input:       `[{"mapping": null}]`,
			wantErr:     ErrMalformedInput,
			wantMessage: "found none",
		},
		{
			name:        "empty mapping",
			input:       `[{"mapping": {}}]`,
			wantErr:     ErrMalformedInput,
			wantMessage: "found an empty object",
		},
		{
			name:        "mapping is a list",
			input:       `[{"mapping": ["a"]}]`,
			wantErr:     ErrMalformedInput,
			wantMessage: `expected "mapping" to be an object, found an array`,
		},
		{
			name:        "mapping entry not an object",
			input:       `[{"mapping": {"a": null}}]`,
			wantErr:     ErrMalformedInput,
			wantMessage: `expected mapping entry "a" to be an object, found null`,
		},
		{
			name:        "no root",
			input:       `[{"mapping": {"a": {"parent": "b"}, "b": {"parent": "a"}}}]`,
			wantErr:     ErrMalformedInput,
			wantMessage: "found none among 2 nodes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conv, err := Decode([]byte(tt.input))
			if err == nil {
				t.Fatalf("Decode() = %v, want error", conv)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Decode() error = %v, want %v", err, tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantMessage) {
				t.Errorf("Decode() error = %q, want it to contain %q", err.Error(), tt.wantMessage)
			}
		})
	}
}

func TestDecode_KeepsMappingOrder(t *testing.T) {
	input := `[{"mapping": {
		"zeta":  {"parent": null},
		"alpha": {"parent": "zeta"},
		"mid":   {}
	}}]`

	conv, err := Decode([]byte(input))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if got, want := conv.IDs(), []string{"zeta", "alpha", "mid"}; !slices.Equal(got, want) {
		t.Errorf("IDs() = %v, want %v", got, want)
	}
	if got, want := conv.Roots(), []string{"zeta", "mid"}; !slices.Equal(got, want) {
		t.Errorf("Roots() = %v, want %v", got, want)
	}
	if conv.Len() != 3 {
		t.Errorf("Len() = %d, want 3", conv.Len())
	}
	if !conv.Has("alpha") || conv.Has("missing") {
		t.Error("Has() does not reflect mapping membership")
	}
}

func TestDecode_DuplicateKeyKeepsFirstPosition(t *testing.T) {
	input := `[{"mapping": {
		"a": {"parent": "gone"},
		"b": {"parent": null},
		"a": {"parent": null}
	}}]`

	conv, err := Decode([]byte(input))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got, want := conv.Roots(), []string{"a", "b"}; !slices.Equal(got, want) {
		t.Errorf("Roots() = %v, want %v", got, want)
	}
}

func TestDecode_KeysMatchExactly(t *testing.T) {
	input := `[{
		"mapping": {
			"r": {"parent": null, "Parent": "x", "children": ["c"], "Children": ["ghost"]},
			"c": {"parent": "r", "Message": {"author": {"role": "user"}, "content": {"parts": ["hidden"]}}}
		},
		"MAPPING": null
	}]`

	conv, err := Decode([]byte(input))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got, want := conv.Roots(), []string{"r"}; !slices.Equal(got, want) {
		t.Errorf("Roots() = %v, want %v", got, want)
	}

	result := conv.Linearize()
	if len(result.Messages) != 0 {
		t.Errorf("Messages = %+v, want none (only \"message\" carries a payload)", result.Messages)
	}
	if len(result.Diagnostics) != 0 {
		t.Errorf("Diagnostics = %+v, want none (\"Children\" is not followed)", result.Diagnostics)
	}
}

func TestDecode_IgnoresLaterConversations(t *testing.T) {
	input := `[{"mapping": {"r": {"parent": null}}}, "anything", 3]`
	if _, err := Decode([]byte(input)); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
}

func TestJSONKind(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{raw: ``, want: kindMissing},
		{raw: `  null`, want: kindNull},
		{raw: `{}`, want: kindObject},
		{raw: "\n[1]", want: kindArray},
		{raw: `"x"`, want: kindString},
		{raw: `true`, want: kindBool},
		{raw: `false`, want: kindBool},
		{raw: `-1.5`, want: kindNumber},
	}
	for _, tt := range tests {
		if got := jsonKind([]byte(tt.raw)); got != tt.want {
			t.Errorf("jsonKind(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}
