// Package catalog is the in-process tableId -> (DbFile, schema) registry
// the buffer pool consults on every cache miss. It holds no persisted
// state of its own; the catalog is reconstructed by the process that opens
// each heap file.
package catalog

import (
	"sync"

	"storemy/pkg/dberrors"
	"storemy/pkg/primitives"
	"storemy/pkg/storage"
	"storemy/pkg/tuple"
)

type entry struct {
	file storage.DbFile
	name string
	desc *tuple.TupleDescription
}

// Catalog maps table ids to their backing file and schema.
type Catalog struct {
	mu      sync.RWMutex
	entries map[primitives.TableID]entry
}

func New() *Catalog {
	return &Catalog{entries: make(map[primitives.TableID]entry)}
}

// AddTable registers a table under its file's own ID.
func (c *Catalog) AddTable(file storage.DbFile, name string, desc *tuple.TupleDescription) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[file.ID()] = entry{file: file, name: name, desc: desc}
}

// FileFor returns the DbFile backing tableId.
func (c *Catalog) FileFor(tableID primitives.TableID) (storage.DbFile, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[tableID]
	if !ok {
		return nil, dberrors.NewDb("Catalog", "FileFor", "no such table")
	}
	return e.file, nil
}

// TableName returns the human-readable name registered for tableId.
func (c *Catalog) TableName(tableID primitives.TableID) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[tableID]
	if !ok {
		return "", dberrors.NewDb("Catalog", "TableName", "no such table")
	}
	return e.name, nil
}

// TupleDesc returns the schema registered for tableId.
func (c *Catalog) TupleDesc(tableID primitives.TableID) (*tuple.TupleDescription, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[tableID]
	if !ok {
		return nil, dberrors.NewDb("Catalog", "TupleDesc", "no such table")
	}
	return e.desc, nil
}

// IterateTableIds returns every registered table id, in no particular order.
func (c *Catalog) IterateTableIds() []primitives.TableID {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ids := make([]primitives.TableID, 0, len(c.entries))
	for id := range c.entries {
		ids = append(ids, id)
	}
	return ids
}
