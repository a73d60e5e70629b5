package libdiff

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/ydoc/ir"
)

// applySpans replays spans over from, taking inserted elements from to.
func applySpans[T comparable](from, to []T, spans []Span) []T {
	var res []T
	fi, ti := 0, 0
	for _, s := range spans {
		switch s.Op {
		case Equal:
			res = append(res, from[fi:fi+s.Len]...)
			fi += s.Len
			ti += s.Len
		case Delete:
			fi += s.Len
		case Insert:
			res = append(res, to[ti:ti+s.Len]...)
			ti += s.Len
		}
	}
	return res
}

func TestSequence(t *testing.T) {
	tests := []struct {
		name     string
		from, to []int
		want     []Span
	}{
		{name: "empty"},
		{name: "insert all", to: []int{1, 2}, want: []Span{{Insert, 2}}},
		{name: "delete all", from: []int{1, 2}, want: []Span{{Delete, 2}}},
		{name: "same", from: []int{1, 2}, to: []int{1, 2}, want: []Span{{Equal, 2}}},
		{name: "delete middle", from: []int{10, 20, 30, 40}, to: []int{10, 40},
			want: []Span{{Equal, 1}, {Delete, 2}, {Equal, 1}}},
		{name: "insert middle", from: []int{1, 4}, to: []int{1, 2, 3, 4},
			want: []Span{{Equal, 1}, {Insert, 2}, {Equal, 1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sequence(tt.from, tt.to)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("spans mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.to, applySpans(tt.from, tt.to, got)); diff != "" {
				t.Errorf("replay mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSequenceManySymbols(t *testing.T) {
	// crosses the surrogate range of symbols
	n := 0xD800 + 100
	from := make([]int, n)
	to := make([]int, 0, n)
	for i := range from {
		from[i] = i
		if i%1000 != 0 {
			to = append(to, i)
		}
	}
	got := applySpans(from, to, Sequence(from, to))
	if diff := cmp.Diff(to, got); diff != "" {
		t.Errorf("replay mismatch (-want +got):\n%s", diff)
	}
}

func TestEntries(t *testing.T) {
	from := map[string]int{"a": 1, "b": 2, "c": 3}
	to := map[string]int{"b": 2, "c": 4, "d": 5}
	want := []EntryDiff[string]{
		{Key: "a", Op: EntryRemoved},
		{Key: "c", Op: EntryUpdated},
		{Key: "d", Op: EntryAdded},
	}
	if diff := cmp.Diff(want, Entries(from, to)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestMergePatch(t *testing.T) {
	from := ir.FromMap(map[string]*ir.Node{
		"keep": ir.FromInt(1),
		"drop": ir.FromString("x"),
		"list": ir.FromSlice([]*ir.Node{ir.FromInt(1)}),
	})
	to := ir.FromMap(map[string]*ir.Node{
		"keep": ir.FromInt(1),
		"list": ir.FromSlice([]*ir.Node{ir.FromInt(1), ir.FromInt(2)}),
		"new":  ir.FromBool(true),
	})
	patch, err := MergePatch(from, to)
	if err != nil {
		t.Fatal(err)
	}
	got, err := ApplyMergePatch(from, patch)
	if err != nil {
		t.Fatal(err)
	}
	if !ir.Equal(got, to) {
		d, _ := got.MarshalJSON()
		t.Errorf("patched document %s, patch %s", d, patch)
	}
	if _, err := MergePatch(ir.FromInt(1), to); err == nil {
		t.Errorf("expected error for non object")
	}
}
