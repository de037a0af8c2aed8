package query

import (
	"github.com/theographic/theodb/internal/builder"
	"github.com/theographic/theodb/internal/schema"
)

// ReferenceReport counts the references held by one relation field across
// its whole collection.
type ReferenceReport struct {
	Entity   string `json:"entity"`
	Field    string `json:"field"`
	Target   string `json:"target"`
	Refs     int    `json:"refs"`
	Dangling int    `json:"dangling"`
}

// CheckReferences resolves every declared relation of every record and
// reports the fields holding at least one reference, in declaration order.
func CheckReferences(s *builder.Store, reg *schema.Registry) []ReferenceReport {
	reports := []ReferenceReport{}
	for _, entity := range reg.All() {
		c, err := s.Collection(entity.Collection)
		if err != nil {
			continue
		}
		for _, f := range entity.Relations() {
			report := ReferenceReport{Entity: entity.Name, Field: f.Name, Target: f.Relation.Target}
			for _, r := range c.Records() {
				refs := countRefs(r.Get(f.Relation.Source))
				report.Refs += refs
				report.Dangling += refs - len(Resolve(s, r, f.Relation))
			}
			if report.Refs > 0 {
				reports = append(reports, report)
			}
		}
	}
	return reports
}

func countRefs(raw any) int {
	switch raw := raw.(type) {
	case nil:
		return 0
	case []any:
		return len(raw)
	default:
		return 1
	}
}
