package shared

import (
	"iter"

	"github.com/signadot/ydoc/engine"
)

// checkLive panics if tx has finished.
func checkLive(op string, tx engine.Txn) {
	if tx.Done() {
		panic(&Error{Op: op, Code: IteratorLifetimeViolation})
	}
}

// valueSeq lazily converts a snapshot of engine values.
func valueSeq(op string, tx engine.Txn, vals []engine.Value) iter.Seq[any] {
	return func(yield func(any) bool) {
		for _, v := range vals {
			checkLive(op, tx)
			if !yield(FromValue(v)) {
				return
			}
		}
	}
}

func prelimSeq(vals []any) iter.Seq[any] {
	return func(yield func(any) bool) {
		for _, v := range vals {
			if !yield(v) {
				return
			}
		}
	}
}
