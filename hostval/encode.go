package hostval

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"

	"github.com/signadot/ydoc/ir"
)

// Encode converts v to a node.  It returns false if v, or any value nested
// in it, is outside the set of encodable values.
func Encode(v any) (*ir.Node, bool) {
	n, err := EncodeErr(v)
	if err != nil {
		return nil, false
	}
	return n, true
}

// EncodeErr is like Encode but returns a *TypeError describing the first
// value which could not be encoded.
func EncodeErr(v any) (*ir.Node, error) {
	if n, ok, err := encodeFast(v, ""); ok || err != nil {
		return n, err
	}
	visited := make(map[uintptr]string) // Track visited slices and maps by address and field path
	return encodeValue(reflect.ValueOf(v), "", visited)
}

// encodeFast handles the common dynamic types without reflection.  ok is
// false when v needs the reflective path.
func encodeFast(v any, fieldPath string) (*ir.Node, bool, error) {
	switch x := v.(type) {
	case nil:
		return ir.Null(), true, nil
	case bool:
		return ir.FromBool(x), true, nil
	case string:
		return ir.FromString(x), true, nil
	case int:
		return ir.FromInt(int64(x)), true, nil
	case int64:
		return ir.FromInt(x), true, nil
	case float64:
		return ir.FromFloat(x), true, nil
	case []byte:
		return ir.FromBytes(x), true, nil
	case json.Number:
		n, err := encodeJSONNumber(x, fieldPath)
		return n, true, err
	case *ir.Node:
		if x == nil {
			return ir.Null(), true, nil
		}
		return x.Clone(), true, nil
	}
	return nil, false, nil
}

func encodeJSONNumber(x json.Number, fieldPath string) (*ir.Node, error) {
	if i, err := strconv.ParseInt(string(x), 10, 64); err == nil {
		return ir.FromInt(i), nil
	}
	f, err := strconv.ParseFloat(string(x), 64)
	if err != nil {
		return nil, &TypeError{
			FieldPath: fieldPath,
			Type:      "json.Number",
			Message:   fmt.Sprintf("invalid number %q", string(x)),
		}
	}
	return ir.FromFloat(f), nil
}

// encodeValue converts a reflect.Value to a node.
// fieldPath is used for error reporting (e.g., "a.b[2]").
// visited tracks slice and map addresses to detect circular references.
func encodeValue(val reflect.Value, fieldPath string, visited map[uintptr]string) (*ir.Node, error) {
	if !val.IsValid() {
		return ir.Null(), nil
	}
	if val.CanInterface() {
		if n, ok, err := encodeFast(val.Interface(), fieldPath); ok || err != nil {
			return n, err
		}
	}
	typ := val.Type()

	switch typ.Kind() {
	case reflect.String:
		return ir.FromString(val.String()), nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return ir.FromInt(val.Int()), nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := val.Uint()
		if u > math.MaxInt64 {
			return ir.FromFloat(float64(u)), nil
		}
		return ir.FromInt(int64(u)), nil

	case reflect.Float32, reflect.Float64:
		return ir.FromFloat(val.Float()), nil

	case reflect.Bool:
		return ir.FromBool(val.Bool()), nil

	case reflect.Slice, reflect.Array:
		if typ.Elem().Kind() == reflect.Uint8 {
			return encodeBytes(val), nil
		}
		return encodeSlice(val, fieldPath, visited)

	case reflect.Map:
		return encodeMap(val, fieldPath, visited)

	case reflect.Interface:
		if val.IsNil() {
			return ir.Null(), nil
		}
		return encodeValue(val.Elem(), fieldPath, visited)
	}
	return nil, &TypeError{
		FieldPath: fieldPath,
		Type:      typ.String(),
	}
}

func encodeBytes(val reflect.Value) *ir.Node {
	d := make([]byte, val.Len())
	for i := range d {
		d[i] = byte(val.Index(i).Uint())
	}
	return &ir.Node{Type: ir.BytesType, Bytes: d}
}

func encodeSlice(val reflect.Value, fieldPath string, visited map[uintptr]string) (*ir.Node, error) {
	length := val.Len()
	elements := make([]*ir.Node, 0, length)

	if val.Kind() == reflect.Slice && length != 0 {
		slicePtr := val.Pointer()
		if prevPath, seen := visited[slicePtr]; seen {
			return nil, &TypeError{
				FieldPath: fieldPath,
				Type:      val.Type().String(),
				Message:   fmt.Sprintf("circular reference: %q contains itself at %q", prevPath, fieldPath),
			}
		}
		visited[slicePtr] = fieldPath
		defer delete(visited, slicePtr)
	}

	for i := 0; i < length; i++ {
		elemPath := fmt.Sprintf("%s[%d]", fieldPath, i)
		elemNode, err := encodeValue(val.Index(i), elemPath, visited)
		if err != nil {
			return nil, err
		}
		elements = append(elements, elemNode)
	}
	return ir.FromSlice(elements), nil
}

func encodeMap(val reflect.Value, fieldPath string, visited map[uintptr]string) (*ir.Node, error) {
	if val.Type().Key().Kind() != reflect.String {
		return nil, &TypeError{
			FieldPath: fieldPath,
			Type:      val.Type().String(),
			Message:   fmt.Sprintf("map keys must be strings, got %s", val.Type().Key()),
		}
	}
	if !val.IsNil() {
		mapPtr := val.Pointer()
		if prevPath, seen := visited[mapPtr]; seen {
			return nil, &TypeError{
				FieldPath: fieldPath,
				Type:      val.Type().String(),
				Message:   fmt.Sprintf("circular reference: %q contains itself at %q", prevPath, fieldPath),
			}
		}
		visited[mapPtr] = fieldPath
		defer delete(visited, mapPtr)
	}

	irMap := make(map[string]*ir.Node, val.Len())
	iter := val.MapRange()
	for iter.Next() {
		key := iter.Key().String()
		valuePath := key
		if fieldPath != "" {
			valuePath = fieldPath + "." + key
		}
		valueNode, err := encodeValue(iter.Value(), valuePath, visited)
		if err != nil {
			return nil, err
		}
		irMap[key] = valueNode
	}
	return ir.FromMap(irMap), nil
}
