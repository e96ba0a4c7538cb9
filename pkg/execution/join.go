package execution

import (
	"storemy/pkg/dberrors"
	"storemy/pkg/execution/join"
	"storemy/pkg/tuple"
	"storemy/pkg/types"
)

// Join is a nested-loops join: for each outer tuple, the inner child is
// rewound and scanned in full, emitting the concatenation of outer and
// inner wherever pred holds.
type Join struct {
	pred  *join.Predicate
	outer DbIterator
	inner DbIterator
	desc  *tuple.TupleDescription

	open      bool
	curOuter  *tuple.Tuple
	haveOuter bool
	next      *tuple.Tuple
}

func NewJoin(pred *join.Predicate, outer, inner DbIterator) *Join {
	return &Join{
		pred:  pred,
		outer: outer,
		inner: inner,
		desc:  tuple.Merge(outer.GetTupleDesc(), inner.GetTupleDesc()),
	}
}

func (j *Join) Open() error {
	if err := j.outer.Open(); err != nil {
		return err
	}
	if err := j.inner.Open(); err != nil {
		return err
	}
	j.open = true
	j.haveOuter = false
	return nil
}

func (j *Join) advanceOuter() (bool, error) {
	hasNext, err := j.outer.HasNext()
	if err != nil || !hasNext {
		return false, err
	}
	t, err := j.outer.Next()
	if err != nil {
		return false, err
	}
	j.curOuter = t
	j.haveOuter = true
	return true, j.inner.Rewind()
}

// advance scans forward from the current position until it finds a
// matching (outer, inner) pair, advancing the outer tuple and rewinding the
// inner child whenever the inner child is exhausted.
func (j *Join) advance() (*tuple.Tuple, error) {
	for {
		if !j.haveOuter {
			ok, err := j.advanceOuter()
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, nil
			}
		}

		for {
			hasNext, err := j.inner.HasNext()
			if err != nil {
				return nil, err
			}
			if !hasNext {
				j.haveOuter = false
				break
			}
			innerTuple, err := j.inner.Next()
			if err != nil {
				return nil, err
			}
			if j.pred.Filter(j.curOuter, innerTuple) {
				return combine(j.curOuter, innerTuple, j.desc), nil
			}
		}
	}
}

func combine(outer, inner *tuple.Tuple, desc *tuple.TupleDescription) *tuple.Tuple {
	fields := make([]types.Field, 0, len(outer.Fields)+len(inner.Fields))
	fields = append(fields, outer.Fields...)
	fields = append(fields, inner.Fields...)
	t, _ := tuple.NewTuple(desc, fields)
	return t
}

func (j *Join) HasNext() (bool, error) {
	if !j.open {
		return false, errNotOpen("HasNext", "Join")
	}
	if j.next != nil {
		return true, nil
	}
	t, err := j.advance()
	if err != nil {
		return false, err
	}
	j.next = t
	return t != nil, nil
}

func (j *Join) Next() (*tuple.Tuple, error) {
	hasNext, err := j.HasNext()
	if err != nil {
		return nil, err
	}
	if !hasNext {
		return nil, dberrors.NewNoSuchElement("Join", "Next", "no more tuples")
	}
	t := j.next
	j.next = nil
	return t, nil
}

func (j *Join) Rewind() error {
	j.next = nil
	j.haveOuter = false
	if err := j.outer.Rewind(); err != nil {
		return err
	}
	return j.inner.Rewind()
}

func (j *Join) Close() error {
	j.open = false
	j.next = nil
	if err := j.outer.Close(); err != nil {
		return err
	}
	return j.inner.Close()
}

func (j *Join) GetTupleDesc() *tuple.TupleDescription { return j.desc }
