// Package storage defines the Page and DbFile contracts that the buffer
// pool mediates access through, independent of any particular on-disk
// layout. heap is the only DbFile implementation in this repository.
package storage

import (
	"storemy/pkg/primitives"
)

// PageSize is the process-wide page size in bytes. It has a test-only
// setter (SetPageSizeForTest) because every HeapPage's slot count is
// derived from it; production code never varies it per file.
var PageSize = 4096

// SetPageSizeForTest overrides PageSize and returns a restore function.
// Only tests should call this.
func SetPageSizeForTest(n int) func() {
	prev := PageSize
	PageSize = n
	return func() { PageSize = prev }
}

// Page is one in-memory, fixed-size unit of storage and of locking.
type Page interface {
	GetID() primitives.PageID
	GetPageData() []byte
	IsDirty() bool
	DirtiedBy() primitives.TransactionID
	MarkDirty(dirty bool, tid primitives.TransactionID)
	GetBeforeImage() Page
	SetBeforeImage()
}

// DbFile is a table stored as a sequence of pages on disk: page-level read
// and write, page count, and table id. Scan and tuple insert/delete are
// methods of the concrete heap.File, not of this interface.
type DbFile interface {
	ReadPage(pid primitives.PageID) (Page, error)
	WritePage(p Page) error
	NumPages() int
	ID() primitives.TableID
}
