package execution

import (
	"storemy/pkg/dberrors"
	"storemy/pkg/execution/aggregation"
	"storemy/pkg/tuple"
	"storemy/pkg/types"
)

// Aggregate drains its child entirely on Open, folding the aggregated
// field's values into per-group accumulators, then serves the resulting
// groups one at a time. Output schema is (groupField, aggregateResult) when
// grouped, or (aggregateResult) alone otherwise.
type Aggregate struct {
	child       DbIterator
	aggField    int
	groupField  int // -1 for no grouping
	op          aggregation.Op
	desc        *tuple.TupleDescription

	acc   *aggregation.Accumulator
	rows  []aggregation.Group
	idx   int
	open  bool
}

// NewAggregate builds an Aggregate over child. groupField may be -1 to
// aggregate the whole input into a single group.
func NewAggregate(child DbIterator, aggField, groupField int, op aggregation.Op) (*Aggregate, error) {
	childDesc := child.GetTupleDesc()
	aggType, err := childDesc.FieldType(aggField)
	if err != nil {
		return nil, err
	}
	if aggType == types.STRING && op != aggregation.Count {
		return nil, dberrors.NewDb("Aggregate", "New", "STRING columns only support COUNT")
	}

	var desc *tuple.TupleDescription
	if groupField >= 0 {
		groupType, err := childDesc.FieldType(groupField)
		if err != nil {
			return nil, err
		}
		desc, err = tuple.NewTupleDescription(
			[]types.Type{groupType, types.INT32},
			[]string{"groupVal", op.String()},
		)
		if err != nil {
			return nil, err
		}
	} else {
		desc, err = tuple.NewTupleDescription([]types.Type{types.INT32}, []string{op.String()})
		if err != nil {
			return nil, err
		}
	}

	return &Aggregate{
		child:      child,
		aggField:   aggField,
		groupField: groupField,
		op:         op,
		desc:       desc,
	}, nil
}

func (a *Aggregate) Open() error {
	if err := a.child.Open(); err != nil {
		return err
	}
	childDesc := a.child.GetTupleDesc()
	aggType, _ := childDesc.FieldType(a.aggField)
	a.acc = aggregation.NewAccumulator(a.op, aggType, a.groupField >= 0)

	for {
		hasNext, err := a.child.HasNext()
		if err != nil {
			return err
		}
		if !hasNext {
			break
		}
		t, err := a.child.Next()
		if err != nil {
			return err
		}
		var groupVal types.Field
		if a.groupField >= 0 {
			groupVal, _ = t.Field(a.groupField)
		}
		f, err := t.Field(a.aggField)
		if err != nil {
			return err
		}
		switch v := f.(type) {
		case *types.Int32Field:
			a.acc.MergeInt32(groupVal, v.Value)
		case *types.StringField:
			a.acc.MergeString(groupVal)
		}
	}

	var groupType types.Type
	if a.groupField >= 0 {
		groupType, _ = childDesc.FieldType(a.groupField)
	}
	rows, err := a.acc.Groups(groupType, a.groupField >= 0)
	if err != nil {
		return err
	}
	a.rows = rows
	a.idx = 0
	a.open = true
	return nil
}

func (a *Aggregate) HasNext() (bool, error) {
	if !a.open {
		return false, errNotOpen("HasNext", "Aggregate")
	}
	return a.idx < len(a.rows), nil
}

func (a *Aggregate) Next() (*tuple.Tuple, error) {
	hasNext, err := a.HasNext()
	if err != nil {
		return nil, err
	}
	if !hasNext {
		return nil, dberrors.NewNoSuchElement("Aggregate", "Next", "no more groups")
	}
	row := a.rows[a.idx]
	a.idx++

	var fields []types.Field
	if a.groupField >= 0 {
		fields = []types.Field{row.Value, types.NewInt32Field(row.Result)}
	} else {
		fields = []types.Field{types.NewInt32Field(row.Result)}
	}
	return tuple.NewTuple(a.desc, fields)
}

func (a *Aggregate) Rewind() error {
	a.idx = 0
	return nil
}

func (a *Aggregate) Close() error {
	a.open = false
	return a.child.Close()
}

func (a *Aggregate) GetTupleDesc() *tuple.TupleDescription { return a.desc }
