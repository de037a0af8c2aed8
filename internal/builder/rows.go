package builder

import (
	sorted "github.com/tobshub/go-sortedmap"
)

// Rows holds a collection's records keyed and ordered by ingestion ordinal.
type Rows struct {
	Map *sorted.SortedMap[int, *Record]
}

func rowsComparisonFunc(a, b *Record) bool {
	return a.ordinal < b.ordinal
}

func NewRows(size int) *Rows {
	return &Rows{sorted.New[int, *Record](size, rowsComparisonFunc)}
}

func (r *Rows) Insert(ordinal int, rec *Record) bool {
	rec.ordinal = ordinal
	return r.Map.Insert(ordinal, rec)
}

func (r *Rows) Get(ordinal int) (*Record, bool) {
	return r.Map.Get(ordinal)
}

func (r *Rows) Len() int { return r.Map.Len() }

// All returns every record in ingestion order.
func (r *Rows) All() []*Record {
	records := make([]*Record, 0, r.Len())
	if r.Len() == 0 {
		return records
	}

	iterCh, err := r.Map.IterCh()
	if err != nil {
		return records
	}

	// drain fully so the iterator goroutine exits
	for row := range iterCh.Records() {
		records = append(records, row.Val)
	}
	return records
}
