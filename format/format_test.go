package format

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"y", "yaml", "yml", "j", "json"} {
		if _, err := ParseFormat(s); err != nil {
			t.Errorf("%s: %v", s, err)
		}
	}
	if _, err := ParseFormat("xml"); !errors.Is(err, ErrBadFormat) {
		t.Errorf("expected bad format, got %v", err)
	}
	if ForFile("x.json", YAMLFormat) != JSONFormat || ForFile("x", JSONFormat) != JSONFormat {
		t.Error("ForFile")
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		f    Format
		in   string
		want any
	}{
		{"json", JSONFormat, `{"a":[1,2.5,"x",null]}`, map[string]any{"a": []any{int64(1), 2.5, "x", nil}}},
		{"yaml", YAMLFormat, "a: [x, true]\n", map[string]any{"a": []any{"x", true}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.f.Decode([]byte(tc.in))
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestEncodeJSON(t *testing.T) {
	d, err := JSONFormat.Encode(map[string]any{"b": 1, "a": []any{true}})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(`{"a":[true],"b":1}`, string(d)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if _, err := JSONFormat.Encode(make(chan int)); err == nil {
		t.Error("expected error")
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	in := map[string]any{"k": []any{"v", true}}
	d, err := YAMLFormat.Encode(in)
	if err != nil {
		t.Fatal(err)
	}
	n, err := YAMLFormat.DecodeNode(d)
	if err != nil {
		t.Fatal(err)
	}
	got, err := JSONFormat.Encode(n)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(`{"k":["v",true]}`, string(got)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}
