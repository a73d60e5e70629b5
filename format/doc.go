// Package format selects and implements the data formats of the ydoc
// command: YAML and JSON.
//
// # Usage
//
//	f, err := format.ParseFormat("yaml")
//	v, err := f.Decode(data) // host values: nil, bool, numbers, string, []any, map[string]any
//	out, err := f.Encode(v)
//
// Formats can also be guessed from file names with ForFile.
package format
