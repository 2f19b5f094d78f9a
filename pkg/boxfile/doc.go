// Package boxfile reads and writes box lists for the masonry CLI.
//
// # Format
//
// Box files are TOML or JSON, chosen by file extension. TOML files hold an
// array of [[box]] tables:
//
//	[[box]]
//	key = "intro"
//	span = 2
//	height = 180
//	title = "Introduction"
//	body = "Lorem ipsum dolor sit amet."
//
// JSON files hold the same entries under a "boxes" array:
//
//	{"boxes": [{"key": "intro", "span": 2, "height": 180}]}
//
// Required:
//   - key: unique, non-empty identifier
//
// Optional:
//   - span: declared column span (0 or missing means 1)
//   - height: natural height in layout units; the view command ignores it
//     and measures rendered text instead
//   - title, author, genre, body: card content
//
// # Generating samples
//
// [Generate] builds a random but reproducible sample set with the span mix
// of the demo application: about 70% single-column boxes, 20% two-column
// and 10% three-column.
package boxfile
