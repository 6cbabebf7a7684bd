// Package io reads and writes word lists.
//
// # Formats
//
// Four input formats are supported. [DetectFormat] picks one from a file
// extension.
//
// JSON, either a bare array or an object with a "words" array:
//
//	[{"name": "gopher", "value": 12}, {"name": "channel", "value": 7}]
//	{"words": [{"name": "gopher", "value": 12}]}
//
// CSV with a name column and an optional value column. A header row is
// detected and skipped when its value column is not numeric. Rows without a
// value count as 1, and repeated names are summed:
//
//	name,value
//	gopher,12
//	channel,7
//
// TOML with a [[words]] array of tables:
//
//	[[words]]
//	name = "gopher"
//	value = 12
//
// Plain text, where every token is counted. Tokens are runs of letters and
// digits (apostrophes inside a word are kept), folded to lower case. See
// [TextOptions] for stop-word removal, minimum length and a top-N cut.
//
// # Export
//
// [WriteJSON] and [WriteCSV] write word lists that [ReadJSON] and [ReadCSV]
// read back. Layout results are serialized by the JSON sink in
// [github.com/matzehuels/wordcloud/pkg/wordcloud/sink].
package io
