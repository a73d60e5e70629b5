// Package engine defines the document engine collaborator: the CRDT backed
// store which owns the document tree, orders operations and reports changes.
//
// The engine is opaque to the rest of this module.  Callers mutate it only
// through the primitive operations on the Array, Map, Text, XmlElement and
// XmlText interfaces, always within a Txn supplied by the engine, and read
// change notifications through Observable.
//
// Reads return a Value, which holds either a self contained ir.Node or a
// Ref to a nested shared container.
//
// # Related Packages
//
//   - github.com/signadot/ydoc/memdoc - in memory implementation
//   - github.com/signadot/ydoc/shared - host facing container handles
package engine
