// Package transcript decodes exported chat logs and linearizes their message
// trees into a chronological sequence.
//
// An export is a JSON array whose first element carries a "mapping" object
// from message id to node. Each node may point at a parent, list children,
// and carry a message payload:
//
//	[{"mapping": {
//	  "root": {"parent": null, "children": ["c1"], "message": null},
//	  "c1":   {"parent": "root", "children": [],
//	           "message": {"author": {"role": "user"},
//	                       "content": {"parts": ["Hi"]},
//	                       "create_time": 1}}
//	}}]
//
// # Decoding
//
// Decode validates the top-level shape and returns an immutable
// Conversation snapshot. Shape violations wrap ErrMalformedInput; invalid
// JSON wraps ErrParse.
//
//	conv, err := transcript.Decode(data)
//	result := conv.Linearize()
//
// # Linearization
//
// Linearize walks every root depth-first in mapping order, emitting one
// Message per node whose trimmed content is non-empty, then stable-sorts the
// messages by timestamp. Broken links never abort the walk; they are
// reported as Diagnostics alongside the messages:
//
//   - DanglingReference: a child id missing from the mapping
//   - MalformedChildren: children that are null, a bare id, or another shape
//   - MalformedContent: a first content part that is not text
//   - CycleDetected: a node reached a second time
package transcript
