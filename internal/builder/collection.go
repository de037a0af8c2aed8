package builder

import (
	"github.com/theographic/theodb/pkg"
)

// PrimaryIndex is the index name that resolves record identifiers.
const PrimaryIndex = "id"

// Collection is the immutable set of records of one entity kind.
type Collection struct {
	Name string

	rows    *Rows
	records []*Record

	Primary *IndexMap
	// secondary index field name -> index
	Indexes pkg.Map[string, *IndexMap]
}

// NewCollection indexes records by id and by every named secondary field.
// Records missing a secondary field are left out of that index.
func NewCollection(name string, records []*Record, indexes ...string) *Collection {
	c := &Collection{
		Name:    name,
		rows:    NewRows(len(records)),
		Primary: NewIndexMap(PrimaryIndex),
		Indexes: pkg.Map[string, *IndexMap]{},
	}

	for _, field := range indexes {
		if field == PrimaryIndex || c.Indexes.Has(field) {
			continue
		}
		c.Indexes.Set(field, NewIndexMap(field))
	}

	duplicates := 0
	for i, rec := range records {
		c.rows.Insert(i, rec)
		if c.Primary.Has(rec.ID) {
			duplicates++
		}
		c.Primary.Set(rec.ID, i)

		for field, index := range c.Indexes {
			if !rec.Has(field) {
				continue
			}
			index.Set(rec.Get(field), i)
		}
	}

	if duplicates > 0 {
		pkg.WarnLog("collection", name, "has", duplicates, "duplicate ids; the last record wins")
	}

	c.records = c.rows.All()
	return c
}

// Records returns every record in ingestion order. Callers must not modify the slice.
func (c *Collection) Records() []*Record {
	if c == nil {
		return nil
	}
	return c.records
}

func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.records)
}

func (c *Collection) Row(ordinal int) (*Record, bool) {
	return c.rows.Get(ordinal)
}

// Find looks a record up by primary id.
func (c *Collection) Find(id string) (*Record, bool) {
	return c.Lookup(PrimaryIndex, id)
}

// Lookup resolves key through the named index; "id" is the primary index.
func (c *Collection) Lookup(index string, key any) (*Record, bool) {
	if c == nil || key == nil {
		return nil, false
	}

	idx := c.IndexMap(index)
	if idx == nil {
		return nil, false
	}

	ordinal, ok := idx.Get(key)
	if !ok {
		return nil, false
	}
	return c.rows.Get(ordinal)
}

func (c *Collection) IndexMap(index string) *IndexMap {
	if index == PrimaryIndex {
		return c.Primary
	}
	return c.Indexes.Get(index)
}
