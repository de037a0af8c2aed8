package query

import (
	"github.com/theographic/theodb/internal/builder"
	"github.com/theographic/theodb/internal/filter"
)

// Find returns the records of c matching every filter in where, in
// collection order, then skips offset records and keeps at most limit.
// Zero or negative limit and offset are ignored.
func Find(c *builder.Collection, where filter.Where, fields map[string]builder.Accessor, limit, offset int) []*builder.Record {
	var found []*builder.Record
	if where == nil {
		found = c.Records()
	} else {
		found = make([]*builder.Record, 0)
		for _, rec := range c.Records() {
			if matchAll(rec, where, fields) {
				found = append(found, rec)
			}
		}
	}
	return paginate(found, limit, offset)
}

func matchAll(rec *builder.Record, where filter.Where, fields map[string]builder.Accessor) bool {
	for name, f := range where {
		get, ok := fields[name]
		if !ok || f == nil || f.Empty() {
			continue
		}
		if !filter.Evaluate(f, get(rec)) {
			return false
		}
	}
	return true
}

func paginate(records []*builder.Record, limit, offset int) []*builder.Record {
	if offset > 0 {
		if offset >= len(records) {
			return []*builder.Record{}
		}
		records = records[offset:]
	}
	if limit > 0 && limit < len(records) {
		records = records[:limit]
	}
	// never hand out the collection's backing array
	out := make([]*builder.Record, len(records))
	copy(out, records)
	return out
}
