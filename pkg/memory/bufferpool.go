// Package memory implements the buffer pool: the bounded page cache that
// mediates every page access, acquiring per-page locks (consulting the
// waits-for graph through pkg/concurrency/lock), loading pages from their
// heap file on a miss, evicting under NO-STEAL, and forcing dirty pages to
// disk on commit.
package memory

import (
	"sync"

	"go.uber.org/zap"

	"storemy/pkg/catalog"
	"storemy/pkg/concurrency/lock"
	"storemy/pkg/dberrors"
	"storemy/pkg/logging"
	"storemy/pkg/primitives"
	"storemy/pkg/storage"
	"storemy/pkg/storage/heap"
	"storemy/pkg/tuple"
)

type holding int

const (
	holdNone holding = iota
	holdRead
	holdWrite
)

// BufferPool is the single mediator of page access: a capacity-bounded
// cache, a lazily-created lock per page (via the lock.Manager), and a
// (tid, PageID) -> holding map supporting idempotent re-acquisition and
// upgrade, exactly as the concurrency model specifies.
type BufferPool struct {
	mu       sync.Mutex
	capacity int
	cache    *pageCache
	catalog  *catalog.Catalog
	locks    *lock.Manager
	holdings map[primitives.TransactionID]map[primitives.PageID]holding
	dirtyBy  map[primitives.TransactionID]map[primitives.PageID]bool

	logger  *zap.Logger
	metrics *Metrics
}

// New constructs a BufferPool with the given capacity (max cached pages)
// backed by cat. logger and metrics may be nil; a nil logger defaults to a
// no-op logger and a nil metrics set records nothing.
func New(capacity int, cat *catalog.Catalog, logger *zap.Logger, metrics *Metrics) *BufferPool {
	if logger == nil {
		logger = logging.Nop()
	}
	return &BufferPool{
		capacity: capacity,
		cache:    newPageCache(),
		catalog:  cat,
		locks:    lock.NewManagerWithLogger(logger),
		holdings: make(map[primitives.TransactionID]map[primitives.PageID]holding),
		dirtyBy:  make(map[primitives.TransactionID]map[primitives.PageID]bool),
		logger:   logger,
		metrics:  metrics,
	}
}

// GetPage returns the cached page for pid, loading it from its heap file on
// a miss (evicting a clean page first if the cache is full) and acquiring
// or upgrading tid's lock on it according to perm. It implements
// heap.BufferPool so HeapFile.InsertTuple/DeleteTuple/Iterator can route
// through it without importing this package.
func (bp *BufferPool) GetPage(tid primitives.TransactionID, pid primitives.PageID, perm heap.Permission) (storage.Page, error) {
	page, err := bp.fetchOrLoad(pid)
	if err != nil {
		return nil, err
	}

	action := bp.decideLockAction(tid, pid, perm)
	switch action {
	case holdNone:
		// no-op: already hold write, or already hold the read we need
	case holdRead:
		if err := bp.locks.LockRead(tid, pid); err != nil {
			return nil, err
		}
		bp.setHolding(tid, pid, holdRead)
	case holdWrite:
		prior := bp.priorHolding(tid, pid)
		if prior == holdRead {
			if err := bp.locks.Upgrade(tid, pid); err != nil {
				return nil, err
			}
		} else {
			if err := bp.locks.LockWrite(tid, pid); err != nil {
				return nil, err
			}
		}
		bp.setHolding(tid, pid, holdWrite)
	}
	return page, nil
}

func (bp *BufferPool) fetchOrLoad(pid primitives.PageID) (storage.Page, error) {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	if page, ok := bp.cache.get(pid); ok {
		if bp.metrics != nil {
			bp.metrics.CacheHits.Inc()
		}
		return page, nil
	}

	if bp.metrics != nil {
		bp.metrics.CacheMisses.Inc()
	}
	if bp.cache.len() >= bp.capacity {
		evicted, ok := bp.cache.evictClean()
		if !ok {
			return nil, dberrors.NewDb("BufferPool", "GetPage", "all pages dirty")
		}
		bp.logger.Debug("page evicted", zap.String("page", evicted.String()))
		if bp.metrics != nil {
			bp.metrics.Evictions.Inc()
		}
	}

	file, err := bp.catalog.FileFor(pid.TableID())
	if err != nil {
		return nil, err
	}
	page, err := file.ReadPage(pid)
	if err != nil {
		bp.logger.Error("page read failed", zap.String("page", pid.String()), zap.Error(err))
		return nil, err
	}
	bp.cache.put(pid, page)
	bp.logger.Debug("page loaded", zap.String("page", pid.String()))
	return page, nil
}

func (bp *BufferPool) priorHolding(tid primitives.TransactionID, pid primitives.PageID) holding {
	bp.mu.Lock()
	defer bp.mu.Unlock()
	return bp.holdings[tid][pid]
}

func (bp *BufferPool) setHolding(tid primitives.TransactionID, pid primitives.PageID, h holding) {
	bp.mu.Lock()
	defer bp.mu.Unlock()
	if bp.holdings[tid] == nil {
		bp.holdings[tid] = make(map[primitives.PageID]holding)
	}
	bp.holdings[tid][pid] = h
}

// decideLockAction implements the BufferPool's getPage acquisition table:
// no prior + read-only -> read; no prior + read-write -> write; prior read
// + read-write -> write (caller upgrades); prior write + anything -> no-op;
// prior read + read-only -> no-op.
func (bp *BufferPool) decideLockAction(tid primitives.TransactionID, pid primitives.PageID, perm heap.Permission) holding {
	prior := bp.priorHolding(tid, pid)
	switch {
	case prior == holdWrite:
		return holdNone
	case prior == holdRead && perm == heap.ReadOnly:
		return holdNone
	case prior == holdRead && perm == heap.ReadWrite:
		return holdWrite
	case perm == heap.ReadWrite:
		return holdWrite
	default:
		return holdRead
	}
}

func (bp *BufferPool) markDirty(tid primitives.TransactionID, pages []storage.Page) {
	bp.mu.Lock()
	defer bp.mu.Unlock()
	if bp.dirtyBy[tid] == nil {
		bp.dirtyBy[tid] = make(map[primitives.PageID]bool)
	}
	for _, p := range pages {
		p.MarkDirty(true, tid)
		bp.dirtyBy[tid][p.GetID()] = true
	}
}

// InsertTuple routes t through tableID's HeapFile, marking the pages it
// dirties with tid.
func (bp *BufferPool) InsertTuple(tid primitives.TransactionID, tableID primitives.TableID, t *tuple.Tuple) error {
	file, err := bp.catalog.FileFor(tableID)
	if err != nil {
		return err
	}
	hf, ok := file.(*heap.File)
	if !ok {
		return dberrors.NewDb("BufferPool", "InsertTuple", "table is not heap-backed")
	}
	dirtied, err := hf.InsertTuple(bp, tid, t)
	if err != nil {
		return err
	}
	bp.markDirty(tid, dirtied)
	return nil
}

// DeleteTuple routes t through its page's HeapFile, marking the page it
// dirties with tid.
func (bp *BufferPool) DeleteTuple(tid primitives.TransactionID, tableID primitives.TableID, t *tuple.Tuple) error {
	file, err := bp.catalog.FileFor(tableID)
	if err != nil {
		return err
	}
	hf, ok := file.(*heap.File)
	if !ok {
		return dberrors.NewDb("BufferPool", "DeleteTuple", "table is not heap-backed")
	}
	dirtied, err := hf.DeleteTuple(bp, tid, t)
	if err != nil {
		return err
	}
	bp.markDirty(tid, dirtied)
	return nil
}

// TransactionComplete ends tid: on commit, FORCEs every page it dirtied to
// disk before releasing its locks; on abort, discards its dirty cached
// pages without flushing. Read-only pages the transaction touched are left
// in cache either way -- they are clean and safe.
func (bp *BufferPool) TransactionComplete(tid primitives.TransactionID, commit bool) error {
	bp.mu.Lock()
	dirty := bp.dirtyBy[tid]
	pages := make([]primitives.PageID, 0, len(dirty))
	for pid := range dirty {
		pages = append(pages, pid)
	}
	bp.mu.Unlock()

	if commit {
		for _, pid := range pages {
			if err := bp.FlushPage(pid); err != nil {
				return err
			}
		}
	} else {
		bp.mu.Lock()
		for _, pid := range pages {
			bp.cache.delete(pid)
		}
		bp.mu.Unlock()
	}

	bp.mu.Lock()
	delete(bp.dirtyBy, tid)
	delete(bp.holdings, tid)
	bp.mu.Unlock()

	bp.locks.ReleaseAll(tid)
	return nil
}

// FlushPage writes pid's cached page to disk if it is present and dirty,
// clearing the dirty bit afterward. A clean or absent page is a no-op.
func (bp *BufferPool) FlushPage(pid primitives.PageID) error {
	bp.mu.Lock()
	page, ok := bp.cache.get(pid)
	bp.mu.Unlock()
	if !ok || !page.IsDirty() {
		return nil
	}

	file, err := bp.catalog.FileFor(pid.TableID())
	if err != nil {
		return err
	}
	if err := file.WritePage(page); err != nil {
		bp.logger.Error("page write failed", zap.String("page", pid.String()), zap.Error(err))
		return err
	}
	page.MarkDirty(false, primitives.TransactionID{})
	if bp.metrics != nil {
		bp.metrics.PagesFlushed.Inc()
	}
	bp.logger.Debug("page flushed", zap.String("page", pid.String()))
	return nil
}

// FlushAllPages flushes every currently cached page, iterating a snapshot
// of the cache's keys.
func (bp *BufferPool) FlushAllPages() error {
	bp.mu.Lock()
	keys := bp.cache.keys()
	bp.mu.Unlock()
	for _, pid := range keys {
		if err := bp.FlushPage(pid); err != nil {
			return err
		}
	}
	return nil
}
