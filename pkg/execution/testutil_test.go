package execution

import (
	"storemy/pkg/dberrors"
	"storemy/pkg/tuple"
)

// sliceIterator is a DbIterator over an in-memory slice, used to test
// operators without a real heap file.
type sliceIterator struct {
	desc   *tuple.TupleDescription
	tuples []*tuple.Tuple
	idx    int
	open   bool
}

func newSliceIterator(desc *tuple.TupleDescription, tuples []*tuple.Tuple) *sliceIterator {
	return &sliceIterator{desc: desc, tuples: tuples}
}

func (s *sliceIterator) Open() error {
	s.open = true
	s.idx = 0
	return nil
}

func (s *sliceIterator) HasNext() (bool, error) {
	if !s.open {
		return false, errNotOpen("HasNext", "sliceIterator")
	}
	return s.idx < len(s.tuples), nil
}

func (s *sliceIterator) Next() (*tuple.Tuple, error) {
	hasNext, err := s.HasNext()
	if err != nil {
		return nil, err
	}
	if !hasNext {
		return nil, dberrors.NewNoSuchElement("sliceIterator", "Next", "no more tuples")
	}
	t := s.tuples[s.idx]
	s.idx++
	return t, nil
}

func (s *sliceIterator) Rewind() error {
	s.idx = 0
	return nil
}

func (s *sliceIterator) Close() error {
	s.open = false
	return nil
}

func (s *sliceIterator) GetTupleDesc() *tuple.TupleDescription { return s.desc }
