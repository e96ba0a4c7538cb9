// Package aggregation implements the group-by accumulators backing the
// Aggregate operator: COUNT for STRING columns, MIN/MAX/SUM/AVG/COUNT for
// INT columns.
package aggregation

import (
	"storemy/pkg/dberrors"
	"storemy/pkg/types"
)

// Op identifies which accumulator to run.
type Op int

const (
	Count Op = iota
	Min
	Max
	Sum
	Avg
)

func (op Op) String() string {
	switch op {
	case Count:
		return "count"
	case Min:
		return "min"
	case Max:
		return "max"
	case Sum:
		return "sum"
	case Avg:
		return "avg"
	default:
		return "?"
	}
}

// state accumulates one group's running aggregate. avg carries sum and
// count separately so the average is only computed once, at read time.
type state struct {
	count int64
	sum   int64
	min   int32
	max   int32
	set   bool
}

func (s *state) merge(v int32) {
	s.count++
	s.sum += int64(v)
	if !s.set {
		s.min, s.max = v, v
		s.set = true
		return
	}
	if v < s.min {
		s.min = v
	}
	if v > s.max {
		s.max = v
	}
}

func (s *state) result(op Op) (int32, error) {
	switch op {
	case Count:
		return int32(s.count), nil
	case Min:
		return s.min, nil
	case Max:
		return s.max, nil
	case Sum:
		return int32(s.sum), nil
	case Avg:
		if s.count == 0 {
			return 0, nil
		}
		return int32(s.sum / s.count), nil
	default:
		return 0, dberrors.NewDb("Aggregator", "result", "unknown aggregate op")
	}
}

// Accumulator groups INT or STRING field values and computes op over each
// group. A STRING column only ever supports Count; INT supports all five
// ops.
type Accumulator struct {
	op         Op
	fieldType  types.Type
	groups     map[groupKey]*state
	groupOrder []groupKey
	noGrouping bool
}

// groupKey is the group identity: either the no-grouping sentinel or a
// concrete field value serialized to a comparable key.
type groupKey struct {
	isInt  bool
	intKey int32
	strKey string
}

func NewAccumulator(op Op, fieldType types.Type, grouped bool) *Accumulator {
	return &Accumulator{
		op:         op,
		fieldType:  fieldType,
		groups:     make(map[groupKey]*state),
		noGrouping: !grouped,
	}
}

// MergeInt32 folds v (the aggregated field) into groupVal's group. Pass a
// nil groupVal when there is no GROUP BY.
func (a *Accumulator) MergeInt32(groupVal types.Field, v int32) {
	key := a.keyFor(groupVal)
	s, ok := a.groups[key]
	if !ok {
		s = &state{}
		a.groups[key] = s
		a.groupOrder = append(a.groupOrder, key)
	}
	s.merge(v)
}

// MergeString folds a STRING-typed aggregated field into groupVal's group;
// only Count is meaningful over strings, so the value itself is not stored.
func (a *Accumulator) MergeString(groupVal types.Field) {
	key := a.keyFor(groupVal)
	s, ok := a.groups[key]
	if !ok {
		s = &state{}
		a.groups[key] = s
		a.groupOrder = append(a.groupOrder, key)
	}
	s.count++
}

func (a *Accumulator) keyFor(groupVal types.Field) groupKey {
	if a.noGrouping || groupVal == nil {
		return groupKey{}
	}
	switch v := groupVal.(type) {
	case *types.Int32Field:
		return groupKey{isInt: true, intKey: v.Value}
	case *types.StringField:
		return groupKey{strKey: v.Value}
	default:
		return groupKey{}
	}
}

// Group is one output row of the accumulator: the group's identifying
// value (nil when there is no grouping) and the aggregate result.
type Group struct {
	Value  types.Field
	Result int32
}

// Groups returns every accumulated group in first-seen order, materializing
// each group's final aggregate value.
func (a *Accumulator) Groups(groupType types.Type, hasGroup bool) ([]Group, error) {
	out := make([]Group, 0, len(a.groupOrder))
	for _, key := range a.groupOrder {
		s := a.groups[key]
		res, err := s.result(a.op)
		if err != nil {
			return nil, err
		}
		g := Group{Result: res}
		if hasGroup {
			if key.isInt {
				g.Value = types.NewInt32Field(key.intKey)
			} else {
				g.Value = types.NewStringField(key.strKey)
			}
		}
		out = append(out, g)
	}
	return out, nil
}
