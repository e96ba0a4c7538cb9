package lock

import (
	"sync"

	"storemy/pkg/primitives"
)

// WaitsForGraph has a node per transaction and per lock (one lock per
// PageID). Its wait/acquire/release operations are atomic with respect to
// each other under a single mutex, as the concurrency model requires.
type WaitsForGraph struct {
	mu sync.Mutex

	// pendingLock/pendingWrite record a transaction's one outstanding wait,
	// if any.
	pendingLock map[primitives.TransactionID]primitives.PageID
	pendingWrite map[primitives.TransactionID]bool

	// holders[lock] is the set of transactions currently holding lock;
	// holderWrite[lock][tid] is true if tid holds it in write mode.
	holders     map[primitives.PageID]map[primitives.TransactionID]bool
	holderWrite map[primitives.PageID]map[primitives.TransactionID]bool

	// upgrading[lock][tid] marks a transaction that holds a read lock and
	// is waiting to upgrade it; such a transaction counts as a writer for
	// cycle detection even though holderWrite is still false for it.
	upgrading map[primitives.PageID]map[primitives.TransactionID]bool
}

func NewWaitsForGraph() *WaitsForGraph {
	return &WaitsForGraph{
		pendingLock:  make(map[primitives.TransactionID]primitives.PageID),
		pendingWrite: make(map[primitives.TransactionID]bool),
		holders:      make(map[primitives.PageID]map[primitives.TransactionID]bool),
		holderWrite:  make(map[primitives.PageID]map[primitives.TransactionID]bool),
		upgrading:    make(map[primitives.PageID]map[primitives.TransactionID]bool),
	}
}

// MarkUpgrading records that tid, a current reader of lock, is about to
// wait to upgrade. Must be called before Wait so the upgrade counts as a
// writer edge for any concurrent transaction's cycle check.
func (g *WaitsForGraph) MarkUpgrading(tid primitives.TransactionID, lockID primitives.PageID) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.upgrading[lockID] == nil {
		g.upgrading[lockID] = make(map[primitives.TransactionID]bool)
	}
	g.upgrading[lockID][tid] = true
}

// ClearUpgrading removes the upgrading marker, whether the upgrade
// succeeded or the transaction aborted instead.
func (g *WaitsForGraph) ClearUpgrading(tid primitives.TransactionID, lockID primitives.PageID) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.upgrading[lockID], tid)
}

func (g *WaitsForGraph) isWriterHolder(lockID primitives.PageID, tid primitives.TransactionID) bool {
	if g.holderWrite[lockID][tid] {
		return true
	}
	return g.upgrading[lockID][tid]
}

// Wait records that tid is about to wait on lockID in the given mode, then
// runs a DFS from tid to see whether granting would eventually deadlock.
// Returns true (and removes the pending edge) iff a cycle back to tid is
// found; the caller must abort in that case rather than block.
func (g *WaitsForGraph) Wait(tid primitives.TransactionID, lockID primitives.PageID, writeMode bool) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.pendingLock[tid] = lockID
	g.pendingWrite[tid] = writeMode

	visited := map[primitives.TransactionID]bool{tid: true}
	if g.reaches(tid, tid, visited) {
		delete(g.pendingLock, tid)
		delete(g.pendingWrite, tid)
		return true
	}
	return false
}

// reaches follows current's pending wait edge to each blocking holder of
// its target lock (skipping reader-to-reader pairs), then recurses into
// each holder's own pending wait. Returns true if it ever reaches start.
func (g *WaitsForGraph) reaches(start, current primitives.TransactionID, visited map[primitives.TransactionID]bool) bool {
	lockID, waiting := g.pendingLock[current]
	if !waiting {
		return false
	}
	wantsWrite := g.pendingWrite[current]

	for holder := range g.holders[lockID] {
		if holder.Equals(current) {
			continue
		}
		if !wantsWrite && !g.isWriterHolder(lockID, holder) {
			continue // a read wait is not blocked by existing readers
		}
		if holder.Equals(start) {
			return true
		}
		if visited[holder] {
			continue
		}
		visited[holder] = true
		if g.reaches(start, holder, visited) {
			return true
		}
	}
	return false
}

// Acquire clears tid's pending wait on lockID and records it as a holder.
func (g *WaitsForGraph) Acquire(tid primitives.TransactionID, lockID primitives.PageID, writeMode bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.pendingLock, tid)
	delete(g.pendingWrite, tid)

	if g.holders[lockID] == nil {
		g.holders[lockID] = make(map[primitives.TransactionID]bool)
		g.holderWrite[lockID] = make(map[primitives.TransactionID]bool)
	}
	g.holders[lockID][tid] = true
	g.holderWrite[lockID][tid] = writeMode
}

// Release removes tid's held-by edge on lockID.
func (g *WaitsForGraph) Release(tid primitives.TransactionID, lockID primitives.PageID) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.holders[lockID], tid)
	delete(g.holderWrite[lockID], tid)
	delete(g.upgrading[lockID], tid)
}
