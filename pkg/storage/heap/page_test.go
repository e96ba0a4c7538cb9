package heap

import (
	"testing"

	"storemy/pkg/storage"
	"storemy/pkg/tuple"
	"storemy/pkg/types"
)

func twoIntSchema(t *testing.T) *tuple.TupleDescription {
	td, err := tuple.NewTupleDescription([]types.Type{types.INT32, types.INT32}, []string{"a", "b"})
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	return td
}

// Scenario 1 from the storage engine's testable properties: PAGE_SIZE=4096,
// schema (INT32,INT32) => tupleSize=8, N=504, header=63 bytes, pad=1.
func TestPageSizeSanity(t *testing.T) {
	restore := storage.SetPageSizeForTest(4096)
	defer restore()

	td := twoIntSchema(t)
	tupleSize := td.TupleSize()
	if tupleSize != 8 {
		t.Fatalf("expected tupleSize 8, got %d", tupleSize)
	}
	n := NumSlots(storage.PageSize, tupleSize)
	if n != 504 {
		t.Fatalf("expected N=504, got %d", n)
	}
	hdr := headerBytes(n)
	if hdr != 63 {
		t.Fatalf("expected header=63, got %d", hdr)
	}
	occupied := hdr + n*tupleSize
	if occupied != 4095 {
		t.Fatalf("expected occupied=4095, got %d", occupied)
	}
	if storage.PageSize-occupied != 1 {
		t.Fatalf("expected pad=1, got %d", storage.PageSize-occupied)
	}
}

func TestEmptyPageAllBitsClear(t *testing.T) {
	restore := storage.SetPageSizeForTest(4096)
	defer restore()

	td := twoIntSchema(t)
	pid := NewPageID(1, 0)
	p, err := NewPage(pid, make([]byte, storage.PageSize), td)
	if err != nil {
		t.Fatalf("new page: %v", err)
	}
	if p.NumEmptySlots() != p.numSlots {
		t.Fatalf("expected all %d slots empty, got %d used", p.numSlots, p.numSlots-p.NumEmptySlots())
	}
	if len(p.Tuples()) != 0 {
		t.Fatal("expected no tuples on an empty page")
	}
}

func TestInsertPicksLowestFreeSlot(t *testing.T) {
	restore := storage.SetPageSizeForTest(4096)
	defer restore()

	td := twoIntSchema(t)
	pid := NewPageID(1, 0)
	p, _ := NewPage(pid, make([]byte, storage.PageSize), td)

	mk := func(a, b int32) *tuple.Tuple {
		tup, _ := tuple.NewTuple(td, []types.Field{types.NewInt32Field(a), types.NewInt32Field(b)})
		return tup
	}

	t1 := mk(1, 2)
	if err := p.InsertTuple(t1); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if t1.RecordID == nil || t1.RecordID.Slot != 0 {
		t.Fatalf("expected first insert to land in slot 0, got %v", t1.RecordID)
	}

	t2 := mk(3, 4)
	if err := p.InsertTuple(t2); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if t2.RecordID.Slot != 1 {
		t.Fatalf("expected second insert to land in slot 1, got %v", t2.RecordID.Slot)
	}

	if err := p.DeleteTuple(t1); err != nil {
		t.Fatalf("delete: %v", err)
	}
	t3 := mk(5, 6)
	if err := p.InsertTuple(t3); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if t3.RecordID.Slot != 0 {
		t.Fatalf("expected insert to reuse freed slot 0, got %v", t3.RecordID.Slot)
	}
}

func TestPageRoundTrip(t *testing.T) {
	restore := storage.SetPageSizeForTest(4096)
	defer restore()

	td := twoIntSchema(t)
	pid := NewPageID(1, 0)
	p, _ := NewPage(pid, make([]byte, storage.PageSize), td)

	tup, _ := tuple.NewTuple(td, []types.Field{types.NewInt32Field(42), types.NewInt32Field(99)})
	if err := p.InsertTuple(tup); err != nil {
		t.Fatalf("insert: %v", err)
	}

	data := p.GetPageData()
	if len(data) != storage.PageSize {
		t.Fatalf("expected serialized page of %d bytes, got %d", storage.PageSize, len(data))
	}

	p2, err := NewPage(pid, data, td)
	if err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	got := p2.Tuples()
	if len(got) != 1 || !got[0].Equals(tup) {
		t.Fatalf("round trip mismatch: got %v", got)
	}
}

func TestDeleteRejectsWrongPage(t *testing.T) {
	restore := storage.SetPageSizeForTest(4096)
	defer restore()

	td := twoIntSchema(t)
	p1, _ := NewPage(NewPageID(1, 0), make([]byte, storage.PageSize), td)
	p2, _ := NewPage(NewPageID(1, 1), make([]byte, storage.PageSize), td)

	tup, _ := tuple.NewTuple(td, []types.Field{types.NewInt32Field(1), types.NewInt32Field(2)})
	if err := p1.InsertTuple(tup); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := p2.DeleteTuple(tup); err == nil {
		t.Fatal("expected delete from the wrong page to fail")
	}
}

func TestInsertFailsWhenPageFull(t *testing.T) {
	restore := storage.SetPageSizeForTest(128)
	defer restore()

	td, _ := tuple.NewTupleDescription([]types.Type{types.INT32}, []string{"a"})
	p, _ := NewPage(NewPageID(1, 0), make([]byte, storage.PageSize), td)

	var lastErr error
	for i := 0; i < p.numSlots+1; i++ {
		tup, _ := tuple.NewTuple(td, []types.Field{types.NewInt32Field(int32(i))})
		lastErr = p.InsertTuple(tup)
	}
	if lastErr == nil {
		t.Fatal("expected inserting past capacity to fail")
	}
}
