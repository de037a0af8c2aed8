package schema

import (
	"fmt"
	"slices"

	"github.com/theographic/theodb/internal/builder"
	"github.com/theographic/theodb/pkg"
)

// Registry holds every entity, keyed by collection name.
type Registry struct {
	entities *pkg.InsertSortMap[string, *Entity]
}

func NewRegistry(entities ...*Entity) *Registry {
	reg := &Registry{entities: pkg.NewInsertSortMap[string, *Entity]()}
	for _, e := range entities {
		reg.entities.Set(e.Collection, e)
	}
	return reg
}

// Entities is the registry of the eight dataset collections.
var Entities = NewRegistry(Book, Chapter, Verse, Person, Place, Event, PeopleGroup, Easton)

func (reg *Registry) All() []*Entity { return reg.entities.Values() }

func (reg *Registry) ByCollection(collection string) (*Entity, bool) {
	e := reg.entities.Get(collection)
	return e, e != nil
}

func (reg *Registry) ByName(name string) (*Entity, bool) {
	for _, e := range reg.entities.Values() {
		if e.Name == name {
			return e, true
		}
	}
	return nil, false
}

// BySearch finds the entity exposing the named search operation.
func (reg *Registry) BySearch(name string) (*Entity, bool) {
	for _, e := range reg.entities.Values() {
		if len(e.SearchName) > 0 && e.SearchName == name {
			return e, true
		}
	}
	return nil, false
}

func (reg *Registry) Searchable() []*Entity {
	return pkg.Filter(reg.entities.Values(), func(e *Entity) bool { return len(e.SearchName) > 0 })
}

// Target returns the entity a relation points to.
func (reg *Registry) Target(rel *Relation) (*Entity, bool) {
	return reg.ByCollection(rel.Target)
}

// CollectionSpecs lists the collections to load with the secondary indexes
// named by relation declarations.
func (reg *Registry) CollectionSpecs() []builder.CollectionSpec {
	indexes := map[string][]string{}
	for _, e := range reg.entities.Values() {
		for _, f := range e.Relations() {
			for _, idx := range f.Relation.Indexes {
				if idx == builder.PrimaryIndex || slices.Contains(indexes[f.Relation.Target], idx) {
					continue
				}
				indexes[f.Relation.Target] = append(indexes[f.Relation.Target], idx)
			}
		}
	}

	specs := make([]builder.CollectionSpec, 0, reg.entities.Len())
	for _, e := range reg.entities.Values() {
		specs = append(specs, builder.CollectionSpec{Name: e.Collection, Indexes: indexes[e.Collection]})
	}
	return specs
}

// Check verifies cross entity consistency: every relation targets a known
// collection and every secondary index names a declared field of the target.
func (reg *Registry) Check() error {
	names := map[string]bool{}
	for _, e := range reg.entities.Values() {
		if names[e.Name] {
			return fmt.Errorf("duplicate entity name %s", e.Name)
		}
		names[e.Name] = true

		if len(e.SearchName) > 0 && reg.entities.Has(e.SearchName) {
			return fmt.Errorf("search %s collides with a collection name", e.SearchName)
		}

		for _, f := range e.Relations() {
			target, ok := reg.Target(f.Relation)
			if !ok {
				return fmt.Errorf("%s.%s: unknown relation target %s", e.Name, f.Name, f.Relation.Target)
			}
			for _, idx := range f.Relation.Indexes {
				if idx == builder.PrimaryIndex {
					continue
				}
				if _, ok := target.Field(idx); !ok {
					return fmt.Errorf("%s.%s: %s has no field %s to index", e.Name, f.Name, target.Name, idx)
				}
			}
		}
	}
	return nil
}
