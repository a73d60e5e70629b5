// Package memdoc is an in memory document engine.
//
// It implements the engine interfaces without replication: a Doc holds a
// tree of containers rooted at named root containers, mutated inside one
// transaction at a time.  When a transaction commits, memdoc diffs the state
// of every container the transaction touched against its state at first
// touch and reports the result to observers as engine.Event values.
//
// memdoc has no rollback: operations applied before an error stay applied.
//
// # Usage
//
//	doc := memdoc.New(memdoc.WithLogger(log))
//	items, err := doc.Array("items")
//	err = doc.Transact(func(tx *memdoc.Txn) error {
//	    return items.InsertRange(tx, 0, []*ir.Node{ir.FromInt(1)})
//	})
package memdoc
