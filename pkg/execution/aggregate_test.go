package execution

import (
	"testing"

	"storemy/pkg/execution/aggregation"
	"storemy/pkg/tuple"
	"storemy/pkg/types"
)

// Scenario 6: AVG grouped by key. (1,10),(1,30),(2,20) -> {(1,20),(2,20)}.
func TestAggregateAvgGrouped(t *testing.T) {
	desc, _ := tuple.NewTupleDescription([]types.Type{types.INT32, types.INT32}, []string{"key", "val"})
	src := newSliceIterator(desc, []*tuple.Tuple{
		mustTuple(t, desc, 1, 10),
		mustTuple(t, desc, 1, 30),
		mustTuple(t, desc, 2, 20),
	})

	agg, err := NewAggregate(src, 1, 0, aggregation.Avg)
	if err != nil {
		t.Fatalf("NewAggregate: %v", err)
	}
	if err := agg.Open(); err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer agg.Close()

	got := map[int32]int32{}
	for {
		hasNext, err := agg.HasNext()
		if err != nil {
			t.Fatalf("HasNext: %v", err)
		}
		if !hasNext {
			break
		}
		tup, err := agg.Next()
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		key, _ := tup.Field(0)
		val, _ := tup.Field(1)
		got[key.(*types.Int32Field).Value] = val.(*types.Int32Field).Value
	}

	want := map[int32]int32{1: 20, 2: 20}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("group %d: got %d, want %d", k, got[k], v)
		}
	}
}

func TestAggregateCountNoGrouping(t *testing.T) {
	desc, _ := tuple.NewTupleDescription([]types.Type{types.STRING}, []string{"name"})
	src := newSliceIterator(desc, []*tuple.Tuple{
		mustStringTuple(t, desc, "a"),
		mustStringTuple(t, desc, "b"),
		mustStringTuple(t, desc, "c"),
	})

	agg, err := NewAggregate(src, 0, -1, aggregation.Count)
	if err != nil {
		t.Fatalf("NewAggregate: %v", err)
	}
	if err := agg.Open(); err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer agg.Close()

	hasNext, err := agg.HasNext()
	if err != nil || !hasNext {
		t.Fatalf("expected one result row, hasNext=%v err=%v", hasNext, err)
	}
	tup, err := agg.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	f, _ := tup.Field(0)
	if f.(*types.Int32Field).Value != 3 {
		t.Errorf("expected count 3, got %d", f.(*types.Int32Field).Value)
	}
}

func mustStringTuple(t *testing.T, desc *tuple.TupleDescription, s string) *tuple.Tuple {
	t.Helper()
	tup, err := tuple.NewTuple(desc, []types.Field{types.NewStringField(s)})
	if err != nil {
		t.Fatalf("NewTuple: %v", err)
	}
	return tup
}
