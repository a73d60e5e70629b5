// Package kpath provides kinded paths locating shared containers within a
// document.
//
// Kinded paths encode both navigation and structure type in the syntax:
//   - .field - Map entry (Key segment)
//   - [index] - Sequence element (Index segment)
//
// The first segment of a document path is the name of a root container.
//
// # Usage
//
//	// Parse a kinded path
//	kp, err := kpath.Parse("items[2].meta")
//
//	// Build one
//	kp = kpath.Field("items").Append(kpath.Index(2))
//
//	// Access path components
//	for seg := range kp.Segments() {
//	    if seg.Field != nil { ... }
//	}
//
// # Related Packages
//
//   - github.com/signadot/ydoc/ir - value representation
package kpath
