package execution

import (
	"storemy/pkg/dberrors"
	"storemy/pkg/primitives"
	"storemy/pkg/storage/heap"
	"storemy/pkg/tuple"
)

// SeqScan reads every tuple of a heap file in page order under tid,
// wrapping a heap.Iterator.
type SeqScan struct {
	file *heap.File
	bp   heap.BufferPool
	tid  primitives.TransactionID
	it   *heap.Iterator
	open bool
}

func NewSeqScan(file *heap.File, bp heap.BufferPool, tid primitives.TransactionID) *SeqScan {
	return &SeqScan{file: file, bp: bp, tid: tid}
}

func (s *SeqScan) Open() error {
	s.it = s.file.Iterator(s.bp, s.tid)
	if err := s.it.Open(); err != nil {
		return err
	}
	s.open = true
	return nil
}

func (s *SeqScan) HasNext() (bool, error) {
	if !s.open {
		return false, errNotOpen("HasNext", "SeqScan")
	}
	return s.it.HasNext()
}

func (s *SeqScan) Next() (*tuple.Tuple, error) {
	if !s.open {
		return nil, errNotOpen("Next", "SeqScan")
	}
	hasNext, err := s.it.HasNext()
	if err != nil {
		return nil, err
	}
	if !hasNext {
		return nil, dberrors.NewNoSuchElement("SeqScan", "Next", "no more tuples")
	}
	return s.it.Next()
}

func (s *SeqScan) Rewind() error {
	if !s.open {
		return errNotOpen("Rewind", "SeqScan")
	}
	return s.it.Rewind()
}

func (s *SeqScan) Close() error {
	s.open = false
	if s.it != nil {
		return s.it.Close()
	}
	return nil
}

func (s *SeqScan) GetTupleDesc() *tuple.TupleDescription {
	return s.file.GetTupleDesc()
}
