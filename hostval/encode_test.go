package hostval

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/ydoc/ir"
)

type opaqueHandle struct{ name string }

type label string

func TestEncode_BasicTypes(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  *ir.Node
	}{
		{"nil", nil, ir.Null()},
		{"bool", true, ir.FromBool(true)},
		{"string", "hello", ir.FromString("hello")},
		{"named string", label("x"), ir.FromString("x")},
		{"int", 42, ir.FromInt(42)},
		{"int8", int8(-8), ir.FromInt(-8)},
		{"uint32", uint32(99), ir.FromInt(99)},
		{"huge uint64", uint64(math.MaxUint64), ir.FromFloat(float64(uint64(math.MaxUint64)))},
		{"int64 above 2^53", int64(1<<53 + 1), ir.FromInt(1<<53 + 1)},
		{"float32", float32(0.5), ir.FromFloat(0.5)},
		{"float64", 3.25, ir.FromFloat(3.25)},
		{"json int", json.Number("12"), ir.FromInt(12)},
		{"json float", json.Number("1e3"), ir.FromFloat(1000)},
		{"bytes", []byte("ab"), ir.FromBytes([]byte("ab"))},
		{"byte array", [2]byte{1, 2}, ir.FromBytes([]byte{1, 2})},
		{"typed slice", []string{"a", "b"}, ir.FromSlice([]*ir.Node{ir.FromString("a"), ir.FromString("b")})},
		{"any slice", []any{1, "x", nil}, ir.FromSlice([]*ir.Node{ir.FromInt(1), ir.FromString("x"), ir.Null()})},
		{"nil slice", []any(nil), ir.FromSlice(nil)},
		{"typed map", map[label]int{"k": 1}, ir.FromMap(map[string]*ir.Node{"k": ir.FromInt(1)})},
		{"nested", map[string]any{"l": []any{map[string]any{"b": false}}},
			ir.FromMap(map[string]*ir.Node{
				"l": ir.FromSlice([]*ir.Node{ir.FromMap(map[string]*ir.Node{"b": ir.FromBool(false)})}),
			})},
		{"node", ir.FromInt(7), ir.FromInt(7)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Encode(tt.input)
			if !ok {
				t.Fatalf("Encode(%v) not encodable", tt.input)
			}
			if !ir.Equal(got, tt.want) {
				gd, _ := got.MarshalJSON()
				wd, _ := tt.want.MarshalJSON()
				t.Errorf("got %s (%s) want %s (%s)", gd, got.Type, wd, tt.want.Type)
			}
		})
	}
}

func TestEncode_NotEncodable(t *testing.T) {
	cyclic := []any{nil}
	cyclic[0] = cyclic
	cyclicMap := map[string]any{}
	cyclicMap["self"] = cyclicMap

	tests := []struct {
		name     string
		input    any
		wantPath string
	}{
		{"handle", &opaqueHandle{"h"}, ""},
		{"struct", opaqueHandle{"h"}, ""},
		{"chan", make(chan int), ""},
		{"func", func() {}, ""},
		{"pointer", new(int), ""},
		{"int keyed map", map[int]string{1: "a"}, ""},
		{"handle in slice", []any{1, &opaqueHandle{}}, "[1]"},
		{"handle in map", map[string]any{"a": []any{&opaqueHandle{}}}, "a[0]"},
		{"cyclic slice", cyclic, "[0]"},
		{"cyclic map", cyclicMap, "self"},
		{"bad json number", json.Number("x"), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := Encode(tt.input); ok {
				t.Fatalf("Encode(%T) unexpectedly succeeded", tt.input)
			}
			_, err := EncodeErr(tt.input)
			var te *TypeError
			if !errors.As(err, &te) {
				t.Fatalf("expected *TypeError, got %v", err)
			}
			if !errors.Is(err, ErrNotEncodable) {
				t.Errorf("error does not wrap ErrNotEncodable")
			}
			if te.FieldPath != tt.wantPath {
				t.Errorf("FieldPath = %q, want %q", te.FieldPath, tt.wantPath)
			}
		})
	}
}

func TestEncode_SharedSubvalueIsNotACycle(t *testing.T) {
	shared := []any{1, 2}
	v := []any{shared, shared}
	if _, err := EncodeErr(v); err != nil {
		t.Fatalf("shared non-cyclic subvalue rejected: %v", err)
	}
}

func TestRoundTrip(t *testing.T) {
	values := []any{
		nil,
		true,
		int64(-5),
		int64(math.MaxInt64),
		2.5,
		"",
		"héllo",
		[]byte{0, 1, 2},
		[]any{},
		[]any{int64(1), []any{"x", nil}, map[string]any{}},
		map[string]any{
			"a": map[string]any{"b": []any{true, false}},
			"n": 1.5,
			"s": []byte("buf"),
		},
	}
	for _, v := range values {
		n, ok := Encode(v)
		if !ok {
			t.Fatalf("Encode(%v) failed", v)
		}
		got := Decode(n)
		if diff := cmp.Diff(v, got); diff != "" {
			t.Errorf("round trip mismatch (-want +got):\n%s", diff)
		}
		again, ok := Encode(got)
		if !ok || !ir.Equal(n, again) {
			t.Errorf("node round trip mismatch for %v", v)
		}
	}
}

func TestDecode_IndependentStorage(t *testing.T) {
	n := ir.FromSlice([]*ir.Node{ir.FromBytes([]byte("abc"))})
	got := Decode(n).([]any)
	got[0].([]byte)[0] = 'z'
	if string(n.Values[0].Bytes) != "abc" {
		t.Errorf("decoded bytes alias node storage")
	}
}

func TestEncode_Copies(t *testing.T) {
	b := []byte("abc")
	n, _ := Encode(b)
	b[0] = 'z'
	if string(n.Bytes) != "abc" {
		t.Errorf("encoded bytes alias host storage")
	}
}
