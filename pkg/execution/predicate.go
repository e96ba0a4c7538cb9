package execution

import (
	"storemy/pkg/primitives"
	"storemy/pkg/tuple"
	"storemy/pkg/types"
)

// Predicate tests one field of a tuple against a constant.
type Predicate struct {
	Field    int
	Op       primitives.Op
	Constant types.Field
}

func NewPredicate(field int, op primitives.Op, constant types.Field) *Predicate {
	return &Predicate{Field: field, Op: op, Constant: constant}
}

// Filter evaluates t's field against the constant, returning false on any
// error (a field-index or type mismatch never satisfies a predicate).
func (p *Predicate) Filter(t *tuple.Tuple) bool {
	f, err := t.Field(p.Field)
	if err != nil {
		return false
	}
	ok, err := f.Compare(p.Op, p.Constant)
	if err != nil {
		return false
	}
	return ok
}
