package execution

import (
	"storemy/pkg/dberrors"
	"storemy/pkg/tuple"
)

// Filter propagates only the tuples of its child satisfying pred.
type Filter struct {
	pred   *Predicate
	child  DbIterator
	open   bool
	peeked *tuple.Tuple
}

func NewFilter(pred *Predicate, child DbIterator) *Filter {
	return &Filter{pred: pred, child: child}
}

func (f *Filter) Open() error {
	if err := f.child.Open(); err != nil {
		return err
	}
	f.open = true
	return nil
}

func (f *Filter) advance() (*tuple.Tuple, error) {
	for {
		hasNext, err := f.child.HasNext()
		if err != nil {
			return nil, err
		}
		if !hasNext {
			return nil, nil
		}
		t, err := f.child.Next()
		if err != nil {
			return nil, err
		}
		if f.pred.Filter(t) {
			return t, nil
		}
	}
}

// HasNext peeks the child until it finds a satisfying tuple or exhausts it.
// The tuple found is buffered until Next returns it, so repeated HasNext
// calls do not advance the child.
func (f *Filter) HasNext() (bool, error) {
	if !f.open {
		return false, errNotOpen("HasNext", "Filter")
	}
	t, err := f.peek()
	if err != nil {
		return false, err
	}
	return t != nil, nil
}

// peek pulls the next satisfying tuple from the child if none is buffered
// yet, so a HasNext call doesn't consume a tuple the following Next needs.
func (f *Filter) peek() (*tuple.Tuple, error) {
	if f.peeked != nil {
		return f.peeked, nil
	}
	t, err := f.advance()
	if err != nil {
		return nil, err
	}
	f.peeked = t
	return t, nil
}

func (f *Filter) Next() (*tuple.Tuple, error) {
	if !f.open {
		return nil, errNotOpen("Next", "Filter")
	}
	t, err := f.peek()
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, dberrors.NewNoSuchElement("Filter", "Next", "no more tuples")
	}
	f.peeked = nil
	return t, nil
}

func (f *Filter) Rewind() error {
	f.peeked = nil
	return f.child.Rewind()
}

func (f *Filter) Close() error {
	f.open = false
	f.peeked = nil
	return f.child.Close()
}

func (f *Filter) GetTupleDesc() *tuple.TupleDescription {
	return f.child.GetTupleDesc()
}
