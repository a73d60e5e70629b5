// Package shared provides handles on the shared containers of a document:
// Array, Map, Text, XmlElement and XmlText.
//
// An Array, Map or Text handle created with NewArray, NewMap or NewText is
// preliminary: it holds its contents in a local buffer and may be used as
// a value when inserting into a document.  Inserting it creates a new
// container in the tree, replays the buffer into it and makes the handle
// integrated.  This happens at most once; inserting an integrated handle
// again fails with ErrAlreadyIntegrated.  Handles read from a document are
// integrated from the start.
//
// Inserting a batch of values into an array validates the whole batch
// first, then writes maximal runs of plain values with a single range
// insert each and every preliminary handle with its own container insert
// (see PlanInsert).
//
// Observers of integrated handles receive *Event values, whose contents
// are converted to host records by DeltaRecord, ChangeRecord, EntryRecord
// and PathRecord.
//
// All operations on integrated handles take the engine transaction they
// run in.  Handles are not safe for concurrent use.
package shared
