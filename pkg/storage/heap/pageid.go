package heap

import (
	"fmt"

	"storemy/pkg/primitives"
)

// PageID identifies a page within a HeapFile by (tableID, pageNumber).
type PageID struct {
	Table primitives.TableID
	Page  primitives.PageNumber
}

func NewPageID(table primitives.TableID, page primitives.PageNumber) PageID {
	return PageID{Table: table, Page: page}
}

func (p PageID) TableID() primitives.TableID   { return p.Table }
func (p PageID) PageNo() primitives.PageNumber { return p.Page }

func (p PageID) Equals(other primitives.PageID) bool {
	o, ok := other.(PageID)
	return ok && o.Table == p.Table && o.Page == p.Page
}

func (p PageID) HashCode() primitives.HashCode {
	return primitives.HashCode(uint64(p.Table)*1_000_003 + uint64(p.Page))
}

func (p PageID) String() string {
	return fmt.Sprintf("HeapPageID(table=%d, page=%d)", p.Table, p.Page)
}
