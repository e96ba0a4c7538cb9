package lock

import (
	"sync"

	"go.uber.org/zap"

	"storemy/pkg/dberrors"
	"storemy/pkg/logging"
	"storemy/pkg/primitives"
)

// Manager grants and releases per-page locks, consulting a WaitsForGraph
// before ever blocking a caller so deadlocks are prevented on entry instead
// of detected after the fact.
type Manager struct {
	mu    sync.Mutex
	locks map[primitives.PageID]*pageLock
	held  map[primitives.TransactionID]map[primitives.PageID]bool

	graph  *WaitsForGraph
	logger *zap.Logger
}

// NewManager builds a Manager with no logging (logs are discarded).
func NewManager() *Manager {
	return NewManagerWithLogger(nil)
}

// NewManagerWithLogger builds a Manager that logs retried lock waits to
// logger. A nil logger behaves like NewManager.
func NewManagerWithLogger(logger *zap.Logger) *Manager {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Manager{
		locks:  make(map[primitives.PageID]*pageLock),
		held:   make(map[primitives.TransactionID]map[primitives.PageID]bool),
		graph:  NewWaitsForGraph(),
		logger: logger,
	}
}

func (m *Manager) lockFor(pid primitives.PageID) *pageLock {
	m.mu.Lock()
	defer m.mu.Unlock()
	pl, ok := m.locks[pid]
	if !ok {
		pl = newPageLock()
		m.locks[pid] = pl
	}
	return pl
}

func (m *Manager) trackHeld(tid primitives.TransactionID, pid primitives.PageID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.held[tid] == nil {
		m.held[tid] = make(map[primitives.PageID]bool)
	}
	m.held[tid][pid] = true
}

func (m *Manager) untrackHeld(tid primitives.TransactionID, pid primitives.PageID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.held[tid], pid)
}

// acquire is the shared implementation behind LockRead/LockWrite/Upgrade:
// try an immediate grant; if that fails, consult the waits-for graph before
// blocking on the page's condition variable.
func (m *Manager) acquire(tid primitives.TransactionID, pid primitives.PageID, mo mode) error {
	pl := m.lockFor(pid)

	pl.mu.Lock()
	if pl.grantable(tid, mo) {
		pl.grant(tid, mo)
		pl.mu.Unlock()
		m.graph.Acquire(tid, pid, mo != modeRead)
		m.trackHeld(tid, pid)
		return nil
	}
	pl.mu.Unlock()

	if mo == modeUpgrade {
		m.graph.MarkUpgrading(tid, pid)
	}
	if m.graph.Wait(tid, pid, mo != modeRead) {
		if mo == modeUpgrade {
			m.graph.ClearUpgrading(tid, pid)
		}
		return dberrors.NewTransactionAborted("LockManager", "acquire", "waits-for graph detected a cycle")
	}

	pl.mu.Lock()
	for !pl.grantable(tid, mo) {
		m.logger.Warn("lock wait retried",
			zap.String("page", pid.String()),
			zap.String("transaction", tid.String()),
		)
		pl.cond.Wait()
	}
	pl.grant(tid, mo)
	pl.mu.Unlock()

	if mo == modeUpgrade {
		m.graph.ClearUpgrading(tid, pid)
	}
	m.graph.Acquire(tid, pid, mo != modeRead)
	m.trackHeld(tid, pid)
	return nil
}

func (m *Manager) LockRead(tid primitives.TransactionID, pid primitives.PageID) error {
	return m.acquire(tid, pid, modeRead)
}

func (m *Manager) LockWrite(tid primitives.TransactionID, pid primitives.PageID) error {
	return m.acquire(tid, pid, modeWrite)
}

// Upgrade promotes tid's existing read lock on pid to a write lock. Only one
// upgrade per lock may be in flight: a second concurrent upgrader still
// holds the read lock the first one waits on, so the waits-for check finds
// the cycle and the second upgrader fails with TransactionAborted.
func (m *Manager) Upgrade(tid primitives.TransactionID, pid primitives.PageID) error {
	return m.acquire(tid, pid, modeUpgrade)
}

// Release drops tid's hold on pid, in whatever mode it holds it.
func (m *Manager) Release(tid primitives.TransactionID, pid primitives.PageID) {
	pl := m.lockFor(pid)
	pl.release(tid)
	m.graph.Release(tid, pid)
	m.untrackHeld(tid, pid)
}

// ReleaseAll drops every lock tid currently holds, used at transaction
// commit/abort.
func (m *Manager) ReleaseAll(tid primitives.TransactionID) {
	m.mu.Lock()
	pages := make([]primitives.PageID, 0, len(m.held[tid]))
	for pid := range m.held[tid] {
		pages = append(pages, pid)
	}
	m.mu.Unlock()

	for _, pid := range pages {
		m.Release(tid, pid)
	}
}

// HoldsLock reports whether tid currently holds any lock on pid.
func (m *Manager) HoldsLock(tid primitives.TransactionID, pid primitives.PageID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.held[tid][pid]
}
