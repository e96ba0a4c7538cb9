// Package primitives holds the shared identifier vocabulary used across
// storage, concurrency, and execution: transaction/table/page identity and
// the comparison operators fields are tested against. It exists to break
// import cycles between those packages, exactly as it does in the
// teaching database this engine is patterned on.
package primitives

// TableID is a stable integer derived from a heap file's absolute path,
// used as the primary key of the catalog and as the leading component of
// every PageID.
type TableID uint64

// PageNumber is a page's zero-based offset within its table's file.
type PageNumber uint64

// SlotID identifies one tuple-sized slot within a page.
type SlotID uint32

// HashCode is a structural hash suitable for map keys built from PageID or
// RecordID values.
type HashCode uint64
