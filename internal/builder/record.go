package builder

import "github.com/theographic/theodb/pkg"

// Record is one stored entity: its identifier plus the attribute bag.
// Records are never mutated after a collection is built.
type Record struct {
	ID     string
	Fields pkg.Map[string, any]

	ordinal int
}

func NewRecord(id string, fields map[string]any) *Record {
	if fields == nil {
		fields = map[string]any{}
	}
	return &Record{ID: id, Fields: fields}
}

// Get returns the raw attribute value, or nil when absent.
func (r *Record) Get(attr string) any {
	if r == nil {
		return nil
	}
	return r.Fields.Get(attr)
}

func (r *Record) Has(attr string) bool {
	if r == nil {
		return false
	}
	return r.Fields.Has(attr) && r.Fields.Get(attr) != nil
}

// Ordinal is the position of the record in its collection's ingestion order.
func (r *Record) Ordinal() int { return r.ordinal }

// Accessor extracts a raw value from a record.
type Accessor func(r *Record) any
