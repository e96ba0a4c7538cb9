package execution

import (
	"storemy/pkg/dberrors"
	"storemy/pkg/primitives"
	"storemy/pkg/tuple"
	"storemy/pkg/types"
)

// mutator is the narrow slice of BufferPool a single-shot mutate operator
// needs, kept as an interface so this package does not import memory.
type mutator interface {
	InsertTuple(tid primitives.TransactionID, tableID primitives.TableID, t *tuple.Tuple) error
	DeleteTuple(tid primitives.TransactionID, tableID primitives.TableID, t *tuple.Tuple) error
}

var mutateDesc = func() *tuple.TupleDescription {
	desc, _ := tuple.NewTupleDescription([]types.Type{types.INT32}, []string{"count"})
	return desc
}()

// Insert is a single-shot operator: the first Next call drains the
// child, inserting every tuple into tableID through bp, then returns one
// row holding the count of successful inserts. Every later call signals
// end-of-stream.
type Insert struct {
	child   DbIterator
	bp      mutator
	tid     primitives.TransactionID
	tableID primitives.TableID

	open bool
	done bool
}

func NewInsert(child DbIterator, bp mutator, tid primitives.TransactionID, tableID primitives.TableID) *Insert {
	return &Insert{child: child, bp: bp, tid: tid, tableID: tableID}
}

func (ins *Insert) Open() error {
	if err := ins.child.Open(); err != nil {
		return err
	}
	ins.open = true
	ins.done = false
	return nil
}

func (ins *Insert) HasNext() (bool, error) {
	if !ins.open {
		return false, errNotOpen("HasNext", "Insert")
	}
	return !ins.done, nil
}

func (ins *Insert) Next() (*tuple.Tuple, error) {
	hasNext, err := ins.HasNext()
	if err != nil {
		return nil, err
	}
	if !hasNext {
		return nil, dberrors.NewNoSuchElement("Insert", "Next", "insert already reported")
	}
	ins.done = true

	var count int32
	for {
		more, err := ins.child.HasNext()
		if err != nil {
			return nil, err
		}
		if !more {
			break
		}
		t, err := ins.child.Next()
		if err != nil {
			return nil, err
		}
		if err := ins.bp.InsertTuple(ins.tid, ins.tableID, t); err != nil {
			return nil, err
		}
		count++
	}
	return tuple.NewTuple(mutateDesc, []types.Field{types.NewInt32Field(count)})
}

func (ins *Insert) Rewind() error {
	return dberrors.NewDb("Insert", "Rewind", "a single-shot operator cannot be rewound")
}

func (ins *Insert) Close() error {
	ins.open = false
	return ins.child.Close()
}

func (ins *Insert) GetTupleDesc() *tuple.TupleDescription { return mutateDesc }

// Delete mirrors Insert, routing each child tuple through bp.DeleteTuple.
type Delete struct {
	child   DbIterator
	bp      mutator
	tid     primitives.TransactionID
	tableID primitives.TableID

	open bool
	done bool
}

func NewDelete(child DbIterator, bp mutator, tid primitives.TransactionID, tableID primitives.TableID) *Delete {
	return &Delete{child: child, bp: bp, tid: tid, tableID: tableID}
}

func (del *Delete) Open() error {
	if err := del.child.Open(); err != nil {
		return err
	}
	del.open = true
	del.done = false
	return nil
}

func (del *Delete) HasNext() (bool, error) {
	if !del.open {
		return false, errNotOpen("HasNext", "Delete")
	}
	return !del.done, nil
}

func (del *Delete) Next() (*tuple.Tuple, error) {
	hasNext, err := del.HasNext()
	if err != nil {
		return nil, err
	}
	if !hasNext {
		return nil, dberrors.NewNoSuchElement("Delete", "Next", "delete already reported")
	}
	del.done = true

	var count int32
	for {
		more, err := del.child.HasNext()
		if err != nil {
			return nil, err
		}
		if !more {
			break
		}
		t, err := del.child.Next()
		if err != nil {
			return nil, err
		}
		if err := del.bp.DeleteTuple(del.tid, del.tableID, t); err != nil {
			return nil, err
		}
		count++
	}
	return tuple.NewTuple(mutateDesc, []types.Field{types.NewInt32Field(count)})
}

func (del *Delete) Rewind() error {
	return dberrors.NewDb("Delete", "Rewind", "a single-shot operator cannot be rewound")
}

func (del *Delete) Close() error {
	del.open = false
	return del.child.Close()
}

func (del *Delete) GetTupleDesc() *tuple.TupleDescription { return mutateDesc }
