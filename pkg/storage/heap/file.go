package heap

import (
	"io"
	"os"
	"sync"

	"storemy/pkg/dberrors"
	"storemy/pkg/primitives"
	"storemy/pkg/storage"
	"storemy/pkg/tuple"
)

// File is a DbFile backed by a regular OS file: a contiguous sequence of
// storage.PageSize-byte pages, page N at byte offset N*PageSize. Table
// identity is the hash of the file's path.
type File struct {
	mu   sync.Mutex
	f    *os.File
	path primitives.Filepath
	id   primitives.TableID
	desc *tuple.TupleDescription
}

// NewFile opens (creating if necessary) the heap file at path for the given
// schema.
func NewFile(path primitives.Filepath, desc *tuple.TupleDescription) (*File, error) {
	if path.IsEmpty() {
		return nil, dberrors.NewDb("HeapFile", "New", "path cannot be empty")
	}
	abs, err := path.Abs()
	if err != nil {
		abs = path
	}
	f, err := os.OpenFile(string(path), os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, dberrors.NewIO("HeapFile", "New", "open file", err)
	}
	return &File{f: f, path: path, id: abs.Hash(), desc: desc}, nil
}

func (hf *File) ID() primitives.TableID { return hf.id }

func (hf *File) GetTupleDesc() *tuple.TupleDescription { return hf.desc }

// NumPages returns fileLength / PageSize.
func (hf *File) NumPages() int {
	hf.mu.Lock()
	defer hf.mu.Unlock()
	info, err := hf.f.Stat()
	if err != nil {
		return 0
	}
	return int(info.Size() / int64(storage.PageSize))
}

// ReadPage reads the PageSize-byte page at pid's offset. Reading past EOF
// yields a blank page rather than failing, since a heap file's pages are
// only materialized on disk once something has been written to them.
func (hf *File) ReadPage(pid primitives.PageID) (storage.Page, error) {
	heapPid, ok := pid.(PageID)
	if !ok {
		return nil, dberrors.NewDb("HeapFile", "ReadPage", "page id is not a heap.PageID")
	}
	if heapPid.Table != hf.id {
		return nil, dberrors.NewDb("HeapFile", "ReadPage", "page id belongs to a different table")
	}

	hf.mu.Lock()
	defer hf.mu.Unlock()

	offset := int64(heapPid.Page) * int64(storage.PageSize)
	buf := make([]byte, storage.PageSize)
	n, err := hf.f.ReadAt(buf, offset)
	if err != nil && err != io.EOF {
		return nil, dberrors.NewIO("HeapFile", "ReadPage", "read failed", err)
	}
	if n < storage.PageSize {
		// Past end of file: return a fresh, empty page.
		buf = make([]byte, storage.PageSize)
	}
	return NewPage(heapPid, buf, hf.desc)
}

// WritePage writes p's bytes to its designated offset, extending the file
// if the page lies past the current end.
func (hf *File) WritePage(p storage.Page) error {
	if p == nil {
		return dberrors.NewDb("HeapFile", "WritePage", "page cannot be nil")
	}
	heapPid, ok := p.GetID().(PageID)
	if !ok {
		return dberrors.NewDb("HeapFile", "WritePage", "page id is not a heap.PageID")
	}

	hf.mu.Lock()
	defer hf.mu.Unlock()

	offset := int64(heapPid.Page) * int64(storage.PageSize)
	if _, err := hf.f.WriteAt(p.GetPageData(), offset); err != nil {
		return dberrors.NewIO("HeapFile", "WritePage", "write failed", err)
	}
	return nil
}

// Close releases the underlying file descriptor.
func (hf *File) Close() error { return hf.f.Close() }

// BufferPool is the narrow slice of the buffer pool's API the heap file
// needs to route page access through, kept as an interface here to avoid
// importing the memory package (which imports storage/heap in the other
// direction).
type BufferPool interface {
	GetPage(tid primitives.TransactionID, pid primitives.PageID, perm Permission) (storage.Page, error)
}

// Permission is READ_ONLY or READ_WRITE, the mode a BufferPool access is
// requested under.
type Permission int

const (
	ReadOnly Permission = iota
	ReadWrite
)

// InsertTuple scans pages in order for the first one with a free slot,
// acquiring READ_WRITE through bp; if none has room, allocates page
// NumPages(), flushes it to disk immediately so it is visible to
// subsequent NumPages() calls, then inserts into it. Returns the dirtied
// pages (length 1).
func (hf *File) InsertTuple(bp BufferPool, tid primitives.TransactionID, t *tuple.Tuple) ([]storage.Page, error) {
	numPages := hf.NumPages()
	for i := 0; i < numPages; i++ {
		pid := NewPageID(hf.id, primitives.PageNumber(i))
		pg, err := bp.GetPage(tid, pid, ReadWrite)
		if err != nil {
			return nil, err
		}
		hp := pg.(*Page)
		if hp.NumEmptySlots() == 0 {
			continue
		}
		if err := hp.InsertTuple(t); err != nil {
			return nil, err
		}
		return []storage.Page{hp}, nil
	}

	newPid := NewPageID(hf.id, primitives.PageNumber(numPages))
	blank, err := NewPage(newPid, make([]byte, storage.PageSize), hf.desc)
	if err != nil {
		return nil, err
	}
	if err := hf.WritePage(blank); err != nil {
		return nil, err
	}
	pg, err := bp.GetPage(tid, newPid, ReadWrite)
	if err != nil {
		return nil, err
	}
	hp := pg.(*Page)
	if err := hp.InsertTuple(t); err != nil {
		return nil, err
	}
	return []storage.Page{hp}, nil
}

// DeleteTuple acquires the page containing t's RecordID READ_WRITE and
// deletes t from it.
func (hf *File) DeleteTuple(bp BufferPool, tid primitives.TransactionID, t *tuple.Tuple) ([]storage.Page, error) {
	if t.RecordID == nil {
		return nil, dberrors.NewDb("HeapFile", "DeleteTuple", "tuple has no RecordID")
	}
	pg, err := bp.GetPage(tid, t.RecordID.PID, ReadWrite)
	if err != nil {
		return nil, err
	}
	hp := pg.(*Page)
	if err := hp.DeleteTuple(t); err != nil {
		return nil, err
	}
	return []storage.Page{hp}, nil
}

// Iterator yields every tuple on every page in page order, using READ_ONLY
// buffer-pool reads. It is restartable via Rewind but not isolated from
// concurrent structural change.
type Iterator struct {
	hf      *File
	bp      BufferPool
	tid     primitives.TransactionID
	open    bool
	pageNo  int
	pending []*tuple.Tuple
	idx     int
}

func (hf *File) Iterator(bp BufferPool, tid primitives.TransactionID) *Iterator {
	return &Iterator{hf: hf, bp: bp, tid: tid}
}

func (it *Iterator) Open() error {
	it.open = true
	it.pageNo = 0
	it.pending = nil
	it.idx = 0
	return it.loadPage()
}

func (it *Iterator) loadPage() error {
	for {
		if it.pageNo >= it.hf.NumPages() {
			it.pending = nil
			return nil
		}
		pid := NewPageID(it.hf.id, primitives.PageNumber(it.pageNo))
		pg, err := it.bp.GetPage(it.tid, pid, ReadOnly)
		if err != nil {
			return err
		}
		hp := pg.(*Page)
		it.pageNo++
		it.idx = 0
		it.pending = hp.Tuples()
		if len(it.pending) > 0 {
			return nil
		}
	}
}

func (it *Iterator) HasNext() (bool, error) {
	if !it.open {
		return false, dberrors.NewDb("HeapFileIterator", "HasNext", "iterator not open")
	}
	return it.idx < len(it.pending), nil
}

func (it *Iterator) Next() (*tuple.Tuple, error) {
	hasNext, err := it.HasNext()
	if err != nil {
		return nil, err
	}
	if !hasNext {
		return nil, dberrors.NewNoSuchElement("HeapFileIterator", "Next", "no more tuples")
	}
	t := it.pending[it.idx]
	it.idx++
	if it.idx >= len(it.pending) {
		if err := it.loadPage(); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (it *Iterator) Rewind() error { return it.Open() }

func (it *Iterator) Close() error {
	it.open = false
	it.pending = nil
	return nil
}
