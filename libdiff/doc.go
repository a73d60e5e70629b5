// Package libdiff provides diff computation for document state.
//
// # Usage
//
//	// Diff two sequences of comparable keys
//	spans := libdiff.Sequence(oldIDs, newIDs)
//
//	// Diff two keyed snapshots
//	entries := libdiff.Entries(oldMap, newMap)
//
//	// JSON merge patch between two object snapshots
//	patch, err := libdiff.MergePatch(oldNode, newNode)
//
// Sequence diffs are computed with diff-match-patch over a rune encoding of
// the keys, so any comparable key type can be diffed.
//
// # Related Packages
//
//   - github.com/signadot/ydoc/ir - value representation
//   - github.com/signadot/ydoc/memdoc - computes change events with libdiff
package libdiff
