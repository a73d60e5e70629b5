package libdiff

import (
	"cmp"
	"maps"
	"slices"
)

// EntryOp tags an EntryDiff.
type EntryOp int

const (
	EntryAdded EntryOp = iota
	EntryUpdated
	EntryRemoved
)

// EntryDiff reports how the value under Key changed.
type EntryDiff[K cmp.Ordered] struct {
	Key K
	Op  EntryOp
}

// Entries returns the keys whose values differ between from and to, sorted
// by key.
func Entries[K cmp.Ordered, V comparable](from, to map[K]V) []EntryDiff[K] {
	keys := map[K]struct{}{}
	for k := range from {
		keys[k] = struct{}{}
	}
	for k := range to {
		keys[k] = struct{}{}
	}
	var res []EntryDiff[K]
	for _, k := range slices.Sorted(maps.Keys(keys)) {
		fv, inFrom := from[k]
		tv, inTo := to[k]
		switch {
		case inFrom && !inTo:
			res = append(res, EntryDiff[K]{Key: k, Op: EntryRemoved})
		case !inFrom && inTo:
			res = append(res, EntryDiff[K]{Key: k, Op: EntryAdded})
		case fv != tv:
			res = append(res, EntryDiff[K]{Key: k, Op: EntryUpdated})
		}
	}
	return res
}
