package transcript

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DefaultRole is used when a payload carries no author role string.
// An empty role string is kept as is.
const DefaultRole = "unknown"

// normalizeChildren turns the children field into a list of ids.
// Absent children are an empty list; other non-list shapes are reported.
func normalizeChildren(id string, raw json.RawMessage) ([]string, []Diagnostic) {
	switch kind := jsonKind(raw); kind {
	case kindMissing:
		return nil, nil

	case kindNull:
		return nil, []Diagnostic{{
			Kind:    MalformedChildren,
			NodeID:  id,
			Message: fmt.Sprintf("children of %q is null; treating as empty list", id),
		}}

	case kindString:
		var child string
		if err := json.Unmarshal(raw, &child); err != nil {
			return nil, []Diagnostic{malformedChildren(id, kind)}
		}
		return []string{child}, []Diagnostic{{
			Kind:    MalformedChildren,
			NodeID:  id,
			Message: fmt.Sprintf("children of %q is a single id; converting to list", id),
		}}

	case kindArray:
		return childList(id, raw)

	default:
		return nil, []Diagnostic{malformedChildren(id, kind)}
	}
}

// childList decodes a children array, dropping entries that are not ids.
func childList(id string, raw json.RawMessage) ([]string, []Diagnostic) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, []Diagnostic{malformedChildren(id, kindArray)}
	}

	children := make([]string, 0, len(items))
	var diags []Diagnostic
	for i, item := range items {
		var child string
		if jsonKind(item) != kindString || json.Unmarshal(item, &child) != nil {
			diags = append(diags, Diagnostic{
				Kind:    MalformedChildren,
				NodeID:  id,
				Message: fmt.Sprintf("children of %q has %s at index %d, expected an id; skipping it", id, jsonKind(item), i),
			})
			continue
		}
		children = append(children, child)
	}
	return children, diags
}

func malformedChildren(id, kind string) Diagnostic {
	return Diagnostic{
		Kind:    MalformedChildren,
		NodeID:  id,
		Message: fmt.Sprintf("children of %q is %s, expected a list of ids; treating as empty list", id, kind),
	}
}

// normalizeMessage builds a fully populated Message from a payload.
// ok is false for placeholder nodes (no payload, null, or an empty object).
func normalizeMessage(id string, raw json.RawMessage) (msg Message, ok bool, diags []Diagnostic) {
	kind := jsonKind(raw)
	if kind == kindMissing || kind == kindNull {
		return Message{}, false, nil
	}

	fields, isObject := objectFields(raw)
	if !isObject {
		return Message{}, false, []Diagnostic{{
			Kind:    MalformedContent,
			NodeID:  id,
			Message: fmt.Sprintf("message of %q is %s, expected an object; skipping it", id, kind),
		}}
	}
	if len(fields) == 0 {
		return Message{}, false, nil
	}

	content, diag := firstPart(id, fields["content"])
	if diag != nil {
		diags = append(diags, *diag)
	}

	return Message{
		ID:        id,
		Role:      authorRole(fields["author"]),
		Content:   strings.TrimSpace(content),
		Timestamp: createTime(fields["create_time"]),
	}, true, diags
}

// authorRole extracts author.role, defaulting to DefaultRole when it is
// absent, null or not a string.
func authorRole(raw json.RawMessage) string {
	author, ok := objectFields(raw)
	if !ok {
		return DefaultRole
	}
	var role string
	if jsonKind(author["role"]) != kindString || json.Unmarshal(author["role"], &role) != nil {
		return DefaultRole
	}
	return role
}

// firstPart extracts content.parts[0]. Absent or empty parts yield "".
func firstPart(id string, raw json.RawMessage) (string, *Diagnostic) {
	content, ok := objectFields(raw)
	if !ok || jsonKind(content["parts"]) != kindArray {
		return "", nil
	}

	var parts []json.RawMessage
	if err := json.Unmarshal(content["parts"], &parts); err != nil || len(parts) == 0 {
		return "", nil
	}

	var text string
	if jsonKind(parts[0]) != kindString || json.Unmarshal(parts[0], &text) != nil {
		return "", &Diagnostic{
			Kind:    MalformedContent,
			NodeID:  id,
			Message: fmt.Sprintf("first content part of %q is %s, not text; treating as empty", id, jsonKind(parts[0])),
		}
	}
	return text, nil
}

// createTime extracts a numeric timestamp, defaulting to 0.
func createTime(raw json.RawMessage) float64 {
	var ts float64
	if jsonKind(raw) != kindNumber || json.Unmarshal(raw, &ts) != nil {
		return 0
	}
	return ts
}

// objectFields decodes a JSON object into its fields.
func objectFields(raw json.RawMessage) (map[string]json.RawMessage, bool) {
	if jsonKind(raw) != kindObject {
		return nil, false
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, false
	}
	return fields, true
}
