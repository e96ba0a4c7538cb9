package memory

import "storemy/pkg/primitives"
import "storemy/pkg/storage"

// pageCache is the buffer pool's page map plus the insertion-order queue
// eviction traverses. A systems-language implementation keeps an explicit
// FIFO alongside the map rather than relying on map iteration order, which
// Go (like most languages) leaves unspecified.
type pageCache struct {
	data  map[primitives.PageID]storage.Page
	order []primitives.PageID
}

func newPageCache() *pageCache {
	return &pageCache{data: make(map[primitives.PageID]storage.Page)}
}

func (c *pageCache) get(pid primitives.PageID) (storage.Page, bool) {
	p, ok := c.data[pid]
	return p, ok
}

func (c *pageCache) put(pid primitives.PageID, p storage.Page) {
	if _, exists := c.data[pid]; !exists {
		c.order = append(c.order, pid)
	}
	c.data[pid] = p
}

func (c *pageCache) delete(pid primitives.PageID) {
	if _, exists := c.data[pid]; !exists {
		return
	}
	delete(c.data, pid)
	for i, id := range c.order {
		if id == pid {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

func (c *pageCache) len() int { return len(c.data) }

// keys returns a snapshot of cached page ids, safe to range over while the
// caller subsequently mutates the cache.
func (c *pageCache) keys() []primitives.PageID {
	out := make([]primitives.PageID, len(c.order))
	copy(out, c.order)
	return out
}

// evictClean removes and returns the first clean page in insertion order.
// Dirty pages are never evicted (NO-STEAL); ok is false if every cached
// page is dirty.
func (c *pageCache) evictClean() (primitives.PageID, bool) {
	for _, pid := range c.order {
		if !c.data[pid].IsDirty() {
			c.delete(pid)
			return pid, true
		}
	}
	return nil, false
}
