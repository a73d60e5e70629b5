package ir

import (
	"errors"
	"math"
	"testing"
)

func TestMarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		in   *Node
		want string
	}{
		{"null", Null(), `null`},
		{"int", FromInt(-3), `-3`},
		{"float", FromFloat(2.5), `2.5`},
		{"string", FromString("a\"b"), `"a\"b"`},
		{"bytes", FromBytes([]byte("hi")), `"aGk="`},
		{"array", FromSlice([]*Node{FromBool(true), Null()}), `[true,null]`},
		{"object", FromMap(map[string]*Node{"b": FromInt(2), "a": FromInt(1)}), `{"a":1,"b":2}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := tt.in.MarshalJSON()
			if err != nil {
				t.Fatal(err)
			}
			if string(d) != tt.want {
				t.Errorf("got %s want %s", d, tt.want)
			}
		})
	}
}

func TestMarshalJSONNaN(t *testing.T) {
	_, err := FromFloat(math.NaN()).MarshalJSON()
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("expected ErrMalformed, got %v", err)
	}
}

func TestFromJSON(t *testing.T) {
	n, err := FromJSON([]byte(`{"i": 9007199254740993, "f": 1.5, "l": [1, "x", null]}`))
	if err != nil {
		t.Fatal(err)
	}
	i := Get(n, "i")
	if !i.IsInt() || *i.Int64 != 9007199254740993 {
		t.Errorf("integer lost precision: %v", i.Int64)
	}
	if f := Get(n, "f"); f.IsInt() || *f.Float64 != 1.5 {
		t.Errorf("bad float %v", f)
	}
	want := FromSlice([]*Node{FromInt(1), FromString("x"), Null()})
	if !Equal(Get(n, "l"), want) {
		t.Errorf("bad list")
	}
	if _, err := FromJSON([]byte(`{`)); !errors.Is(err, ErrParse) {
		t.Errorf("expected ErrParse, got %v", err)
	}
}
