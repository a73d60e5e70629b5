package ir

import (
	"maps"
	"slices"
)

type Node struct {
	Type   Type
	Fields []*Node
	Values []*Node

	String  string
	Bool    bool
	Bytes   []byte
	Float64 *float64
	Int64   *int64
}

func (y *Node) Clone() *Node {
	res := &Node{}
	return y.CloneTo(res)
}

func (y *Node) CloneTo(dst *Node) *Node {
	dst.Type = y.Type
	dst.Values = nil
	dst.Fields = nil
	if y.Values != nil {
		dst.Values = make([]*Node, len(y.Values))
		for i, yv := range y.Values {
			dst.Values[i] = yv.Clone()
		}
	}
	if y.Fields != nil {
		dst.Fields = make([]*Node, len(y.Fields))
		for i, yf := range y.Fields {
			dst.Fields[i] = yf.Clone()
		}
	}
	dst.String = y.String
	dst.Bool = y.Bool
	dst.Bytes = nil
	if y.Bytes != nil {
		dst.Bytes = slices.Clone(y.Bytes)
	}
	dst.Float64 = nil
	if y.Float64 != nil {
		f := *y.Float64
		dst.Float64 = &f
	}
	dst.Int64 = nil
	if y.Int64 != nil {
		i := *y.Int64
		dst.Int64 = &i
	}
	return dst
}

func FromString(v string) *Node {
	return &Node{
		Type:   StringType,
		String: v,
	}
}

func FromInt(v int64) *Node {
	return &Node{
		Type:  NumberType,
		Int64: &v,
	}
}

func FromFloat(f float64) *Node {
	return &Node{
		Type:    NumberType,
		Float64: &f,
	}
}

func FromBool(v bool) *Node {
	return &Node{
		Type: BoolType,
		Bool: v,
	}
}

// FromBytes copies v.
func FromBytes(v []byte) *Node {
	if v == nil {
		v = []byte{}
	}
	return &Node{
		Type:  BytesType,
		Bytes: slices.Clone(v),
	}
}

func Null() *Node {
	return &Node{Type: NullType}
}

// IsInt reports whether y is an Integer (as opposed to a floating point
// Number).
func (y *Node) IsInt() bool {
	return y.Type == NumberType && y.Int64 != nil
}

// FromMap builds an object whose fields are sorted by key.
func FromMap(yMap map[string]*Node) *Node {
	res := &Node{}
	res.Type = ObjectType
	res.Fields = make([]*Node, len(yMap))
	res.Values = make([]*Node, len(yMap))
	keys := slices.Sorted(maps.Keys(yMap))
	for i, key := range keys {
		res.Fields[i] = FromString(key)
		res.Values[i] = yMap[key]
	}
	return res
}

func FromSlice(ySlice []*Node) *Node {
	res := &Node{
		Type: ArrayType,
	}
	res.Values = make([]*Node, len(ySlice))
	copy(res.Values, ySlice)
	return res
}

func Get(y *Node, field string) *Node {
	if y.Type != ObjectType {
		return nil
	}
	i, found := slices.BinarySearchFunc(y.Fields, field, func(f *Node, key string) int {
		switch {
		case f.String < key:
			return -1
		case f.String > key:
			return 1
		}
		return 0
	})
	if !found {
		return nil
	}
	return y.Values[i]
}
