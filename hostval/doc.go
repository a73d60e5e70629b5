// Package hostval converts between host Go values and ir.Node values.
//
// The set of host values the codec understands is closed:
//
//	nil                        → Null
//	bool                       → Bool
//	int*, uint* kinds          → Integer (uint values above MaxInt64 → Number)
//	float32, float64           → Number
//	json.Number                → Integer if integral, else Number
//	string kinds               → String
//	[]byte                     → Bytes (copied)
//	slices and arrays          → Array
//	maps with string kind keys → Map
//	*ir.Node                   → the node, cloned
//
// Anything else, including pointers, structs, channels, functions and shared
// container handles, is not encodable.  Encode reports that with a false
// result so callers can route such values elsewhere; EncodeErr reports where
// in a composite value the failure occurred.
//
// Decode is total and produces values with storage independent of the node:
//
//	Null → nil, Bool → bool, Integer → int64, Number → float64,
//	String → string, Bytes → []byte, Array → []any, Map → map[string]any
//
// For every value v in the image of Decode, Decode(Encode(v)) is equal to v.
package hostval
