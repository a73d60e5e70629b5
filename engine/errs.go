package engine

import "errors"

var (
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrTxnDone         = errors.New("transaction already finished")
	ErrTxnActive       = errors.New("another transaction is active")
	ErrKindMismatch    = errors.New("container kind mismatch")
	ErrDeleted         = errors.New("container was deleted")
	ErrForeignTxn      = errors.New("transaction belongs to another document")
)
