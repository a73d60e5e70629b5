package hostval

import (
	"slices"

	"github.com/signadot/ydoc/ir"
)

// Decode converts n to a host value.  A nil node decodes to nil.
func Decode(n *ir.Node) any {
	if n == nil {
		return nil
	}
	switch n.Type {
	case ir.NullType:
		return nil
	case ir.BoolType:
		return n.Bool
	case ir.NumberType:
		if n.Int64 != nil {
			return *n.Int64
		}
		if n.Float64 != nil {
			return *n.Float64
		}
		return nil
	case ir.StringType:
		return n.String
	case ir.BytesType:
		if n.Bytes == nil {
			return []byte{}
		}
		return slices.Clone(n.Bytes)
	case ir.ArrayType:
		res := make([]any, len(n.Values))
		for i, v := range n.Values {
			res[i] = Decode(v)
		}
		return res
	case ir.ObjectType:
		res := make(map[string]any, len(n.Fields))
		for i, f := range n.Fields {
			res[f.String] = Decode(n.Values[i])
		}
		return res
	}
	return nil
}

// DecodeMap decodes every value of m.
func DecodeMap(m map[string]*ir.Node) map[string]any {
	res := make(map[string]any, len(m))
	for k, v := range m {
		res[k] = Decode(v)
	}
	return res
}
