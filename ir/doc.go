// Package ir provides the value representation exchanged with the document
// engine.
//
// # Overview
//
// An ir.Node is a closed, recursive tagged union which holds every value a
// document can store outside of its shared containers.  Nodes are fully self
// contained: they never reference a shared container, and they carry no
// position information.
//
// # Node Types
//
// The Type field indicates the node's type:
//
//   - NullType: null value
//   - BoolType: boolean (true/false)
//   - NumberType: Integer (Int64 set) or floating point Number (Float64 set)
//   - StringType: string value
//   - BytesType: byte buffer
//   - ArrayType: ordered list of nodes
//   - ObjectType: string keyed map (fields and values)
//
// # Creating Nodes
//
// Use constructor functions to create nodes:
//
//	node := ir.FromString("hello")
//	num := ir.FromInt(42)
//	flag := ir.FromBool(true)
//	obj := ir.FromMap(map[string]*ir.Node{
//	    "key": ir.FromString("value"),
//	})
//	arr := ir.FromSlice([]*ir.Node{
//	    ir.FromInt(1),
//	    ir.FromInt(2),
//	})
//
// # Structure Constraints
//
// For ObjectType nodes, Fields[i] is the StringType key for the value at
// Values[i], so there will always be the same number of fields as values.
// Fields are sorted and unique; the order in which entries were inserted is
// not part of the value.
//
// For NumberType nodes exactly one of Int64 and Float64 is non-nil.  An
// Integer and a Number are distinct values even when numerically equal.
//
// # JSON
//
// Nodes marshal to plain JSON with bytes rendered as base64 strings.
// FromJSON maps integral numbers to Integers.
package ir
