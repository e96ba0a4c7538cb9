// Package execution implements the pull-based query operators: SeqScan,
// Filter, Join, Aggregate, Insert, and Delete. Every operator implements
// DbIterator and can be composed as a child of another.
package execution

import (
	"storemy/pkg/dberrors"
	"storemy/pkg/tuple"
)

// DbIterator is the standard operator contract: open before hasNext, next
// after hasNext == false fails with NoSuchElement, rewind restarts from the
// beginning without a fresh open/close. The single-shot Insert and Delete
// operators are the exception: their Rewind returns a Db error.
type DbIterator interface {
	Open() error
	HasNext() (bool, error)
	Next() (*tuple.Tuple, error)
	Rewind() error
	Close() error
	GetTupleDesc() *tuple.TupleDescription
}

func errNotOpen(op, component string) error {
	return dberrors.NewDb(component, op, "iterator not open")
}
