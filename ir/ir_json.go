package ir

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// MarshalJSON renders y as plain JSON.  Bytes are rendered as base64
// strings, as encoding/json does for []byte.
func (y *Node) MarshalJSON() ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := y.writeJSON(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (y *Node) writeJSON(buf *bytes.Buffer) error {
	if y == nil {
		buf.WriteString("null")
		return nil
	}
	switch y.Type {
	case NullType:
		buf.WriteString("null")
	case BoolType:
		buf.WriteString(strconv.FormatBool(y.Bool))
	case NumberType:
		switch {
		case y.Int64 != nil:
			buf.WriteString(strconv.FormatInt(*y.Int64, 10))
		case y.Float64 != nil:
			f := *y.Float64
			if math.IsNaN(f) || math.IsInf(f, 0) {
				return fmt.Errorf("%w: %v has no json representation", ErrMalformed, f)
			}
			buf.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
		default:
			return fmt.Errorf("%w: number without value", ErrMalformed)
		}
	case StringType:
		d, err := json.Marshal(y.String)
		if err != nil {
			return err
		}
		buf.Write(d)
	case BytesType:
		d, err := json.Marshal(y.Bytes)
		if err != nil {
			return err
		}
		buf.Write(d)
	case ArrayType:
		buf.WriteByte('[')
		for i, v := range y.Values {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := v.writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case ObjectType:
		if len(y.Fields) != len(y.Values) {
			return fmt.Errorf("%w: %d fields for %d values", ErrMalformed, len(y.Fields), len(y.Values))
		}
		buf.WriteByte('{')
		for i, f := range y.Fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			d, err := json.Marshal(f.String)
			if err != nil {
				return err
			}
			buf.Write(d)
			buf.WriteByte(':')
			if err := y.Values[i].writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("%w: unknown type %s", ErrMalformed, y.Type)
	}
	return nil
}

func (y *Node) UnmarshalJSON(d []byte) error {
	res, err := FromJSON(d)
	if err != nil {
		return err
	}
	*y = *res
	return nil
}

// FromJSON parses a JSON document.  Integral numbers which fit in 64 bits
// become Integers, all others become Numbers.
func FromJSON(d []byte) (*Node, error) {
	dec := json.NewDecoder(bytes.NewReader(d))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return fromJSONValue(v)
}

func fromJSONValue(v any) (*Node, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case bool:
		return FromBool(x), nil
	case string:
		return FromString(x), nil
	case json.Number:
		if i, err := strconv.ParseInt(string(x), 10, 64); err == nil {
			return FromInt(i), nil
		}
		f, err := strconv.ParseFloat(string(x), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParse, err)
		}
		return FromFloat(f), nil
	case []any:
		vals := make([]*Node, len(x))
		for i := range x {
			n, err := fromJSONValue(x[i])
			if err != nil {
				return nil, err
			}
			vals[i] = n
		}
		return FromSlice(vals), nil
	case map[string]any:
		m := make(map[string]*Node, len(x))
		for k, xv := range x {
			n, err := fromJSONValue(xv)
			if err != nil {
				return nil, err
			}
			m[k] = n
		}
		return FromMap(m), nil
	}
	return nil, fmt.Errorf("%w: unexpected %T", ErrParse, v)
}
