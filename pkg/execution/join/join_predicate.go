// Package join holds the predicate the nested-loops Join operator in
// package execution evaluates on each (outer, inner) pair.
package join

import (
	"storemy/pkg/primitives"
	"storemy/pkg/tuple"
)

// Predicate compares one field of an outer tuple against one field of an
// inner tuple.
type Predicate struct {
	OuterField int
	Op         primitives.Op
	InnerField int
}

func NewPredicate(outerField int, op primitives.Op, innerField int) *Predicate {
	return &Predicate{OuterField: outerField, Op: op, InnerField: innerField}
}

// Filter reports whether outer.OuterField op inner.InnerField holds. A
// field-index or type mismatch never satisfies the predicate.
func (p *Predicate) Filter(outer, inner *tuple.Tuple) bool {
	of, err := outer.Field(p.OuterField)
	if err != nil {
		return false
	}
	inf, err := inner.Field(p.InnerField)
	if err != nil {
		return false
	}
	ok, err := of.Compare(p.Op, inf)
	if err != nil {
		return false
	}
	return ok
}
