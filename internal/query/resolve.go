package query

import (
	"github.com/theographic/theodb/internal/builder"
	"github.com/theographic/theodb/internal/schema"
	"github.com/theographic/theodb/pkg"
)

// Resolve follows rel from r into the target collection. A scalar
// reference resolves like a one element list. References that match no
// record through any of the relation's indexes are dropped.
func Resolve(s *builder.Store, r *builder.Record, rel *schema.Relation) []*builder.Record {
	resolved := []*builder.Record{}

	raw := r.Get(rel.Source)
	if raw == nil {
		return resolved
	}
	refs, ok := raw.([]any)
	if !ok {
		refs = []any{raw}
	}

	target, err := s.Collection(rel.Target)
	if err != nil {
		pkg.DebugLog("cannot resolve", rel.Source, err)
		danglingReferencesCounter.WithLabelValues(rel.Target).Add(float64(len(refs)))
		return resolved
	}

	dangling := 0
	for _, ref := range refs {
		if rec, ok := lookup(target, rel.Indexes, ref); ok {
			resolved = append(resolved, rec)
		} else {
			dangling++
		}
	}

	if dangling > 0 {
		danglingReferencesCounter.WithLabelValues(rel.Target).Add(float64(dangling))
	}
	return resolved
}

func lookup(c *builder.Collection, indexes []string, ref any) (*builder.Record, bool) {
	for _, index := range indexes {
		if rec, ok := c.Lookup(index, ref); ok {
			return rec, true
		}
	}
	return nil, false
}
