package query_test

import (
	"testing"

	. "github.com/theographic/theodb/internal/query"
	"github.com/theographic/theodb/internal/schema"
	"gotest.tools/assert"
)

func TestCheckReferences(t *testing.T) {
	e := newTestEngine(t)
	reports := CheckReferences(e.Store, schema.Entities)

	find := func(entity, field string) (ReferenceReport, bool) {
		for _, r := range reports {
			if r.Entity == entity && r.Field == field {
				return r, true
			}
		}
		return ReferenceReport{}, false
	}

	t.Run("secondary index references resolve", func(t *testing.T) {
		r, ok := find("Book", "writers")
		assert.Assert(t, ok)
		assert.Equal(t, r.Target, "people")
		assert.Equal(t, r.Refs, 3)
		assert.Equal(t, r.Dangling, 1)
	})

	t.Run("dangling parent", func(t *testing.T) {
		r, ok := find("Person", "mother")
		assert.Assert(t, ok)
		assert.Equal(t, r.Refs, 2)
		assert.Equal(t, r.Dangling, 1)

		r, ok = find("Person", "father")
		assert.Assert(t, ok)
		assert.Equal(t, r.Dangling, 0)
	})

	t.Run("fields without references are omitted", func(t *testing.T) {
		for _, r := range reports {
			assert.Assert(t, r.Refs > 0, "%s.%s", r.Entity, r.Field)
		}
	})
}
