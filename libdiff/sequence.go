package libdiff

import (
	"unicode/utf8"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Op tags a Span.
type Op int

const (
	Equal Op = iota
	Insert
	Delete
)

func (o Op) String() string {
	switch o {
	case Equal:
		return "equal"
	case Insert:
		return "insert"
	case Delete:
		return "delete"
	}
	return "<unknown op>"
}

// Span is a run of Len elements.  Equal spans consume elements of both
// sides, Delete spans of the old side and Insert spans of the new side.
type Span struct {
	Op  Op
	Len int
}

// maxSymbols is the number of distinct runes usable as symbols once
// surrogates are skipped.
const maxSymbols = utf8.MaxRune + 1 - 0x800

// Sequence returns the spans transforming from into to.
func Sequence[T comparable](from, to []T) []Span {
	symbols := map[T]rune{}
	fromRunes := mapKeysTo(symbols, from)
	toRunes := mapKeysTo(symbols, to)
	if len(symbols) > maxSymbols {
		return replaceAll(len(from), len(to))
	}
	diffCfg := diffpatch.New()
	diffCfg.DiffTimeout = 0
	diffs := diffCfg.DiffMainRunes(fromRunes, toRunes, false)
	var res []Span
	for i := range diffs {
		diff := &diffs[i]
		n := utf8.RuneCountInString(diff.Text)
		if n == 0 {
			continue
		}
		var op Op
		switch diff.Type {
		case diffpatch.DiffEqual:
			op = Equal
		case diffpatch.DiffInsert:
			op = Insert
		case diffpatch.DiffDelete:
			op = Delete
		}
		if k := len(res); k > 0 && res[k-1].Op == op {
			res[k-1].Len += n
			continue
		}
		res = append(res, Span{Op: op, Len: n})
	}
	return res
}

func replaceAll(from, to int) []Span {
	var res []Span
	if from > 0 {
		res = append(res, Span{Op: Delete, Len: from})
	}
	if to > 0 {
		res = append(res, Span{Op: Insert, Len: to})
	}
	return res
}

func mapKeysTo[T comparable](m map[T]rune, keys []T) []rune {
	rs := make([]rune, len(keys))
	for i, k := range keys {
		r, ok := m[k]
		if !ok {
			r = symbol(len(m))
			m[k] = r
		}
		rs[i] = r
	}
	return rs
}

// symbol returns the i'th valid rune, skipping surrogates, which would not
// survive the conversions to string inside diff-match-patch.
func symbol(i int) rune {
	r := rune(i)
	if r >= 0xD800 {
		r += 0x800
	}
	return r
}
