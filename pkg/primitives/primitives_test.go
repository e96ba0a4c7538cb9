package primitives

import "testing"

func TestFilepathHashDeterministic(t *testing.T) {
	a := Filepath("/data/users.dat")
	b := Filepath("/data/users.dat")
	if a.Hash() != b.Hash() {
		t.Fatal("expected identical paths to hash to the same TableID")
	}
}

func TestFilepathHashDistinct(t *testing.T) {
	a := Filepath("/data/users.dat")
	b := Filepath("/data/orders.dat")
	if a.Hash() == b.Hash() {
		t.Fatal("expected distinct paths to hash to distinct TableIDs (collision, retry with different fixture)")
	}
}

type fakePageID struct {
	table TableID
	page  PageNumber
}

func (f fakePageID) TableID() TableID     { return f.table }
func (f fakePageID) PageNo() PageNumber   { return f.page }
func (f fakePageID) HashCode() HashCode   { return HashCode(uint64(f.table)*1000 + uint64(f.page)) }
func (f fakePageID) String() string       { return "fake" }
func (f fakePageID) Equals(o PageID) bool {
	other, ok := o.(fakePageID)
	return ok && other.table == f.table && other.page == f.page
}

func TestRecordIDEquals(t *testing.T) {
	p1 := fakePageID{table: 1, page: 0}
	p2 := fakePageID{table: 1, page: 0}
	r1 := RecordID{PID: p1, Slot: 3}
	r2 := RecordID{PID: p2, Slot: 3}
	if !r1.Equals(r2) {
		t.Fatal("expected structurally equal RecordIDs to compare equal")
	}
	r3 := RecordID{PID: p2, Slot: 4}
	if r1.Equals(r3) {
		t.Fatal("expected different slot to break equality")
	}
}

func TestOpString(t *testing.T) {
	if Equals.String() != "=" || NotEqual.String() != "!=" {
		t.Fatal("unexpected Op string rendering")
	}
}
