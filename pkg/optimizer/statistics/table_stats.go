package statistics

import (
	"math"

	"storemy/pkg/primitives"
	"storemy/pkg/storage/heap"
	"storemy/pkg/tuple"
	"storemy/pkg/types"
)

// NumHistogramBuckets is the bucket count every column histogram is built
// with. A teaching engine has no reason to tune this per column.
const NumHistogramBuckets = 10

// TableStats holds one table's scan cost and per-column selectivity model,
// built by scanning its heap file directly (outside any transaction, since
// statistics are a maintenance operation, not a query).
type TableStats struct {
	tableID       primitives.TableID
	ioCostPerPage float64
	numPages      int
	numTuples     int64

	intHist    map[int]*IntHistogram
	stringHist map[int]*StringHistogram
}

// NewTableStats computes statistics for file by scanning it twice: once to
// find each INT column's min/max, once to populate histograms built from
// those bounds.
func NewTableStats(file *heap.File, ioCostPerPage float64) (*TableStats, error) {
	desc := file.GetTupleDesc()
	numPages := file.NumPages()

	mins := make(map[int]int32)
	maxes := make(map[int]int32)
	seen := make(map[int]bool)
	var numTuples int64

	pageTuples := func(pageNo int) ([]*tuple.Tuple, error) {
		pid := heap.NewPageID(file.ID(), primitives.PageNumber(pageNo))
		raw, err := file.ReadPage(pid)
		if err != nil {
			return nil, err
		}
		return raw.(*heap.Page).Tuples(), nil
	}

	for pageNo := 0; pageNo < numPages; pageNo++ {
		tuples, err := pageTuples(pageNo)
		if err != nil {
			return nil, err
		}
		for _, t := range tuples {
			numTuples++
			for i := 0; i < desc.NumFields(); i++ {
				f, _ := t.Field(i)
				intField, ok := f.(*types.Int32Field)
				if !ok {
					continue
				}
				if !seen[i] {
					mins[i] = intField.Value
					maxes[i] = intField.Value
					seen[i] = true
					continue
				}
				if intField.Value < mins[i] {
					mins[i] = intField.Value
				}
				if intField.Value > maxes[i] {
					maxes[i] = intField.Value
				}
			}
		}
	}

	ts := &TableStats{
		tableID:       file.ID(),
		ioCostPerPage: ioCostPerPage,
		numPages:      numPages,
		intHist:       make(map[int]*IntHistogram),
		stringHist:    make(map[int]*StringHistogram),
	}
	for i := 0; i < desc.NumFields(); i++ {
		ft, _ := desc.FieldType(i)
		switch ft {
		case types.INT32:
			min, max := int32(0), int32(0)
			if seen[i] {
				min, max = mins[i], maxes[i]
			}
			ts.intHist[i] = NewIntHistogram(NumHistogramBuckets, min, max)
		case types.STRING:
			ts.stringHist[i] = NewStringHistogram(NumHistogramBuckets)
		}
	}

	for pageNo := 0; pageNo < numPages; pageNo++ {
		tuples, err := pageTuples(pageNo)
		if err != nil {
			return nil, err
		}
		for _, t := range tuples {
			for i := 0; i < desc.NumFields(); i++ {
				f, _ := t.Field(i)
				switch v := f.(type) {
				case *types.Int32Field:
					ts.intHist[i].AddValue(v.Value)
				case *types.StringField:
					ts.stringHist[i].AddValue(v.Value)
				}
			}
		}
	}
	ts.numTuples = numTuples
	return ts, nil
}

// EstimateScanCost is numPages * ioCostPerPage: a full sequential scan reads
// every page once.
func (ts *TableStats) EstimateScanCost() float64 {
	return float64(ts.numPages) * ts.ioCostPerPage
}

// EstimateCardinality rounds numTuples * sel to the nearest integer.
func (ts *TableStats) EstimateCardinality(sel float64) int64 {
	return int64(math.Round(float64(ts.numTuples) * sel))
}

// EstimateSelectivity dispatches to field i's histogram according to its
// column type.
func (ts *TableStats) EstimateSelectivity(field int, op primitives.Op, constant types.Field) float64 {
	switch c := constant.(type) {
	case *types.Int32Field:
		h, ok := ts.intHist[field]
		if !ok {
			return 1.0
		}
		return h.EstimateSelectivity(op, c.Value)
	case *types.StringField:
		h, ok := ts.stringHist[field]
		if !ok {
			return 1.0
		}
		return h.EstimateSelectivity(op, c.Value)
	default:
		return 1.0
	}
}

func (ts *TableStats) NumTuples() int64            { return ts.numTuples }
func (ts *TableStats) NumPages() int                { return ts.numPages }
func (ts *TableStats) TableID() primitives.TableID { return ts.tableID }
