package transcript

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// node is a decoded mapping entry. Fields stay raw so that malformed
// shapes can be normalized (and reported) during the walk.
type node struct {
	id       string
	parent   json.RawMessage
	children json.RawMessage
	message  json.RawMessage
}

// isRoot reports whether the node has no parent reference.
func (n node) isRoot() bool {
	kind := jsonKind(n.parent)
	return kind == kindMissing || kind == kindNull
}

// Conversation is an immutable snapshot of a decoded message graph.
type Conversation struct {
	order []string
	nodes map[string]node
}

// Len returns the number of nodes in the mapping.
func (c *Conversation) Len() int {
	return len(c.order)
}

// IDs returns the node ids in mapping order.
func (c *Conversation) IDs() []string {
	return append([]string(nil), c.order...)
}

// Roots returns the ids of nodes without a parent, in mapping order.
func (c *Conversation) Roots() []string {
	var roots []string
	for _, id := range c.order {
		if c.nodes[id].isRoot() {
			roots = append(roots, id)
		}
	}
	return roots
}

// Has reports whether id is present in the mapping.
func (c *Conversation) Has(id string) bool {
	_, ok := c.nodes[id]
	return ok
}

// Decode parses an export document and validates its top-level shape.
func Decode(data []byte) (*Conversation, error) {
	var doc json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	mapping, err := conversationMapping(doc)
	if err != nil {
		return nil, err
	}

	order, values, err := decodeObject(mapping)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	if len(order) == 0 {
		return nil, malformedf(`expected a non-empty "mapping" object, found an empty object`)
	}

	conv := &Conversation{
		order: order,
		nodes: make(map[string]node, len(order)),
	}
	for _, id := range order {
		n, err := decodeNode(id, values[id])
		if err != nil {
			return nil, err
		}
		conv.nodes[id] = n
	}

	if len(conv.Roots()) == 0 {
		return nil, malformedf("expected at least one root node (parent absent or null), found none among %d nodes", len(order))
	}
	return conv, nil
}

// conversationMapping extracts the mapping of the first conversation.
func conversationMapping(doc json.RawMessage) (json.RawMessage, error) {
	if kind := jsonKind(doc); kind != kindArray {
		return nil, malformedf("expected a non-empty JSON array of conversations, found %s", kind)
	}

	var items []json.RawMessage
	if err := json.Unmarshal(doc, &items); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	if len(items) == 0 {
		return nil, malformedf("expected a non-empty JSON array of conversations, found an empty array")
	}

	first := items[0]
	if kind := jsonKind(first); kind != kindObject {
		return nil, malformedf("expected the first element to be a conversation object, found %s", kind)
	}

	head, ok := objectFields(first)
	if !ok {
		return nil, malformedf("expected the first element to be a conversation object, found %s", jsonKind(first))
	}

	// Keys match exactly; "Mapping" is not "mapping".
	mapping := head["mapping"]
	switch kind := jsonKind(mapping); kind {
	case kindObject:
		return mapping, nil
	case kindMissing, kindNull:
		return nil, malformedf(`expected a non-empty "mapping" object in the first conversation, found none`)
	default:
		return nil, malformedf(`expected "mapping" to be an object, found %s`, kind)
	}
}

// decodeNode decodes one mapping value.
func decodeNode(id string, raw json.RawMessage) (node, error) {
	if kind := jsonKind(raw); kind != kindObject {
		return node{}, malformedf("expected mapping entry %q to be an object, found %s", id, kind)
	}

	fields, ok := objectFields(raw)
	if !ok {
		return node{}, malformedf("expected mapping entry %q to be an object, found %s", id, jsonKind(raw))
	}

	return node{
		id:       id,
		parent:   fields["parent"],
		children: fields["children"],
		message:  fields["message"],
	}, nil
}

// decodeObject decodes a JSON object keeping its key order.
// A repeated key keeps its first position and its last value.
func decodeObject(raw json.RawMessage) ([]string, map[string]json.RawMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	if _, err := dec.Token(); err != nil {
		return nil, nil, fmt.Errorf("reading object start: %w", err)
	}

	var keys []string
	values := make(map[string]json.RawMessage)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, fmt.Errorf("reading object key: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, nil, fmt.Errorf("unexpected object key %v", tok)
		}

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, nil, fmt.Errorf("reading value of %q: %w", key, err)
		}
		if _, seen := values[key]; !seen {
			keys = append(keys, key)
		}
		values[key] = value
	}
	return keys, values, nil
}

// JSON value kinds as named in error messages.
const (
	kindMissing = "nothing"
	kindNull    = "null"
	kindObject  = "an object"
	kindArray   = "an array"
	kindString  = "a string"
	kindBool    = "a boolean"
	kindNumber  = "a number"
)

// jsonKind names the kind of a raw JSON value.
func jsonKind(raw json.RawMessage) string {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) == 0 {
		return kindMissing
	}
	switch trimmed[0] {
	case '{':
		return kindObject
	case '[':
		return kindArray
	case '"':
		return kindString
	case 't', 'f':
		return kindBool
	case 'n':
		return kindNull
	default:
		return kindNumber
	}
}
