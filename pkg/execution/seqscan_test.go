package execution

import (
	"os"
	"testing"

	"storemy/pkg/primitives"
	"storemy/pkg/storage"
	"storemy/pkg/storage/heap"
	"storemy/pkg/tuple"
	"storemy/pkg/types"
)

type directPool struct {
	hf *heap.File
}

func (p *directPool) GetPage(tid primitives.TransactionID, pid primitives.PageID, perm heap.Permission) (storage.Page, error) {
	return p.hf.ReadPage(pid)
}

// insert routes t through HeapFile.InsertTuple and writes every page it
// dirtied straight back to the file, since the stub has no cache to keep
// the modified page in.
func (p *directPool) insert(tid primitives.TransactionID, t *tuple.Tuple) error {
	dirtied, err := p.hf.InsertTuple(p, tid, t)
	if err != nil {
		return err
	}
	for _, pg := range dirtied {
		if err := p.hf.WritePage(pg); err != nil {
			return err
		}
	}
	return nil
}

func TestSeqScanYieldsEveryInsertedTuple(t *testing.T) {
	restore := storage.SetPageSizeForTest(4096)
	defer restore()

	f, err := os.CreateTemp(t.TempDir(), "seqscan-*.dat")
	if err != nil {
		t.Fatalf("tempfile: %v", err)
	}
	f.Close()

	td, _ := tuple.NewTupleDescription([]types.Type{types.INT32}, []string{"a"})
	hf, err := heap.NewFile(primitives.Filepath(f.Name()), td)
	if err != nil {
		t.Fatalf("new heap file: %v", err)
	}
	pool := &directPool{hf: hf}
	tid := primitives.NewTransactionID()
	for _, v := range []int32{1, 2, 3} {
		tup, _ := tuple.NewTuple(td, []types.Field{types.NewInt32Field(v)})
		if err := pool.insert(tid, tup); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	scan := NewSeqScan(hf, pool, tid)
	if err := scan.Open(); err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer scan.Close()

	var got []int32
	for {
		hasNext, err := scan.HasNext()
		if err != nil {
			t.Fatalf("HasNext: %v", err)
		}
		if !hasNext {
			break
		}
		tup, err := scan.Next()
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		f, _ := tup.Field(0)
		got = append(got, f.(*types.Int32Field).Value)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 tuples, got %v", got)
	}
}
