// Package export provides formatting and file output for linearized transcripts.
//
// This package turns the ordered messages produced by the transcript package
// into text. It knows nothing about the message tree; the input order is
// the output order.
//
// # Markdown
//
// FormatMarkdown renders one block per exchange:
//
//	> **User:** How do I list files?
//
//	**ChatGPT:**
//
//	```
//	Use ls.
//	```
//
//	---
//
// A user message pairs with the assistant message that immediately follows
// it. Any other message renders on one line behind its role label
// ("**System:** ...", "**Assistant:** ...") followed by the same rule.
//
// # JSON
//
// MarshalJSON encodes the linearized messages as an indented JSON array for
// downstream tooling.
//
// # Files
//
// WriteFile replaces the destination atomically, and Digest fingerprints
// rendered output so repeated runs can be compared.
package export
