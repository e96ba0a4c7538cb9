// Package database ties the catalog, buffer pool, and table statistics
// into one handle that is constructed explicitly and passed into
// operators, replacing the global Database singleton a teaching database
// would otherwise reach for.
package database

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"storemy/pkg/catalog"
	"storemy/pkg/config"
	"storemy/pkg/dberrors"
	"storemy/pkg/logging"
	"storemy/pkg/memory"
	"storemy/pkg/optimizer/statistics"
	"storemy/pkg/primitives"
	"storemy/pkg/storage"
	"storemy/pkg/storage/heap"
	"storemy/pkg/tuple"
)

// Database is the top-level handle a process constructs once and threads
// through every operator and test fixture that needs storage access. It
// has no package-level state of its own.
type Database struct {
	catalog *catalog.Catalog
	pool    *memory.BufferPool

	statsMu sync.Mutex
	stats   map[primitives.TableID]*statistics.TableStats
}

// Config controls the buffer pool. IOCostPerPage is carried along but New
// does not store or use it; TableStats takes its I/O cost as an argument.
type Config struct {
	BufferPoolPages int
	IOCostPerPage   float64
}

// New constructs an empty Database: no tables registered, a buffer pool of
// cfg.BufferPoolPages capacity. logger and metrics may be nil.
func New(cfg Config, logger *zap.Logger, metrics *memory.Metrics) *Database {
	cat := catalog.New()
	return &Database{
		catalog: cat,
		pool:    memory.New(cfg.BufferPoolPages, cat, logger, metrics),
		stats:   make(map[primitives.TableID]*statistics.TableStats),
	}
}

// defaultIOCostPerPage is the IOCostPerPage Bootstrap puts in the Config it
// builds; the cost actually used for statistics is whatever the caller
// passes to TableStats.
const defaultIOCostPerPage = 1.0

// Bootstrap loads process configuration from configPath (pass "" to read
// only STOREMY_-prefixed environment variables) and constructs a Database
// from it. It sets storage.PageSize as a side effect, since page size is a
// process-wide value every HeapPage derives its slot count from, not a
// per-Database setting.
func Bootstrap(configPath string) (*Database, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	storage.PageSize = cfg.PageSize

	logger, err := logging.New(logging.Config{Level: cfg.LogLevel})
	if err != nil {
		return nil, err
	}
	metrics := memory.NewMetrics(prometheus.NewRegistry())

	return New(Config{
		BufferPoolPages: cfg.BufferPoolPages,
		IOCostPerPage:   defaultIOCostPerPage,
	}, logger, metrics), nil
}

// Catalog returns the table registry.
func (db *Database) Catalog() *catalog.Catalog { return db.catalog }

// BufferPool returns the shared buffer pool every transaction routes page
// access through.
func (db *Database) BufferPool() *memory.BufferPool { return db.pool }

// AddTable registers a heap file under name and invalidates any cached
// statistics for it.
func (db *Database) AddTable(file *heap.File, name string, desc *tuple.TupleDescription) {
	db.catalog.AddTable(file, name, desc)
	db.statsMu.Lock()
	delete(db.stats, file.ID())
	db.statsMu.Unlock()
}

// TableStats returns cached statistics for tableID, computing and caching
// them on first request by scanning the table's heap file directly.
func (db *Database) TableStats(tableID primitives.TableID, ioCostPerPage float64) (*statistics.TableStats, error) {
	db.statsMu.Lock()
	if s, ok := db.stats[tableID]; ok {
		db.statsMu.Unlock()
		return s, nil
	}
	db.statsMu.Unlock()

	file, err := db.catalog.FileFor(tableID)
	if err != nil {
		return nil, err
	}
	hf, ok := file.(*heap.File)
	if !ok {
		return nil, dberrors.NewDb("Database", "TableStats", "table is not heap-backed")
	}
	s, err := statistics.NewTableStats(hf, ioCostPerPage)
	if err != nil {
		return nil, err
	}

	db.statsMu.Lock()
	db.stats[tableID] = s
	db.statsMu.Unlock()
	return s, nil
}

// InvalidateStats drops any cached statistics for tableID, forcing the next
// TableStats call to recompute from disk.
func (db *Database) InvalidateStats(tableID primitives.TableID) {
	db.statsMu.Lock()
	delete(db.stats, tableID)
	db.statsMu.Unlock()
}
