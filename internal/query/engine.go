package query

import (
	"fmt"
	"net/http"

	"github.com/theographic/theodb/internal/builder"
	"github.com/theographic/theodb/internal/filter"
	"github.com/theographic/theodb/internal/schema"
	"github.com/theographic/theodb/pkg"
)

// Engine answers queries against a loaded store using the entity declarations.
type Engine struct {
	Store  *builder.Store
	Schema *schema.Registry
}

func NewEngine(s *builder.Store, reg *schema.Registry) *Engine {
	return &Engine{Store: s, Schema: reg}
}

// Entity looks up the entity served by the named collection.
func (e *Engine) Entity(collection string) (*schema.Entity, error) {
	entity, ok := e.Schema.ByCollection(collection)
	if !ok {
		return nil, NewQueryError(http.StatusNotFound, fmt.Sprintf("Collection %s not found", collection))
	}
	return entity, nil
}

func (e *Engine) collection(entity *schema.Entity) (*builder.Collection, error) {
	c, err := e.Store.Collection(entity.Collection)
	if err != nil {
		return nil, NewQueryError(http.StatusNotFound, err.Error())
	}
	return c, nil
}

// FindMany decodes where against the entity's filterable fields and runs it.
func (e *Engine) FindMany(entity *schema.Entity, where map[string]any, limit, offset int) ([]*builder.Record, error) {
	c, err := e.collection(entity)
	if err != nil {
		return nil, err
	}
	queriesCounter.WithLabelValues(entity.Collection, "findMany").Inc()
	return Find(c, filter.Parse(entity.Kinds(), where), entity.Accessors(), limit, offset), nil
}

func (e *Engine) FindUnique(entity *schema.Entity, id string) (*builder.Record, error) {
	c, err := e.collection(entity)
	if err != nil {
		return nil, err
	}
	queriesCounter.WithLabelValues(entity.Collection, "findUnique").Inc()
	rec, ok := c.Find(id)
	if !ok {
		return nil, NewQueryError(http.StatusNotFound, fmt.Sprintf("No %s found with id %s", entity.Name, id))
	}
	return rec, nil
}

// Search runs the entity's declared free-text search.
func (e *Engine) Search(entity *schema.Entity, input string) ([]*builder.Record, error) {
	if len(entity.SearchName) == 0 {
		return nil, NewQueryError(http.StatusBadRequest, fmt.Sprintf("Collection %s is not searchable", entity.Collection))
	}
	c, err := e.collection(entity)
	if err != nil {
		return nil, err
	}
	queriesCounter.WithLabelValues(entity.Collection, "search").Inc()
	return Search(c, input, entity.SearchFields), nil
}

// Project builds the ordered output object of r for sel. Relation fields
// are resolved only when selected, one hop per nesting level.
func (e *Engine) Project(entity *schema.Entity, r *builder.Record, sel Selection) (*pkg.Object, error) {
	obj := pkg.NewObject()
	if sel == nil {
		for _, f := range entity.Scalars() {
			obj.Push(f.Name, f.Get(r))
		}
		return obj, nil
	}

	for _, s := range sel {
		if s.Name == TypenameField {
			obj.Set(s.Key(), entity.Name)
			continue
		}

		f, ok := entity.Field(s.Name)
		if !ok {
			return nil, NewQueryError(http.StatusBadRequest,
				fmt.Sprintf("Cannot query field %q on type %q", s.Name, entity.Name))
		}

		if !f.IsRelation() {
			if s.Selection != nil {
				return nil, NewQueryError(http.StatusBadRequest,
					fmt.Sprintf("Field %q of type %q must not have a selection", s.Name, entity.Name))
			}
			obj.Set(s.Key(), f.Get(r))
			continue
		}

		target, ok := e.Schema.Target(f.Relation)
		if !ok {
			return nil, NewQueryError(http.StatusInternalServerError,
				fmt.Sprintf("Unknown relation target %s", f.Relation.Target))
		}
		related, err := e.ProjectAll(target, Resolve(e.Store, r, f.Relation), s.Selection)
		if err != nil {
			return nil, err
		}
		obj.Set(s.Key(), related)
	}
	return obj, nil
}

func (e *Engine) ProjectAll(entity *schema.Entity, records []*builder.Record, sel Selection) ([]*pkg.Object, error) {
	out := make([]*pkg.Object, 0, len(records))
	for _, r := range records {
		obj, err := e.Project(entity, r, sel)
		if err != nil {
			return nil, err
		}
		out = append(out, obj)
	}
	return out, nil
}

// Stats reports the record count of every collection.
func (e *Engine) Stats() *pkg.Object { return e.Store.Stats() }

// Validate checks sel against the entity declarations without touching any record.
func (e *Engine) Validate(entity *schema.Entity, sel Selection) error {
	for _, s := range sel {
		if s.Name == TypenameField {
			continue
		}
		f, ok := entity.Field(s.Name)
		if !ok {
			return NewQueryError(http.StatusBadRequest,
				fmt.Sprintf("Cannot query field %q on type %q", s.Name, entity.Name))
		}
		if !f.IsRelation() {
			if s.Selection != nil {
				return NewQueryError(http.StatusBadRequest,
					fmt.Sprintf("Field %q of type %q must not have a selection", s.Name, entity.Name))
			}
			continue
		}
		target, ok := e.Schema.Target(f.Relation)
		if !ok {
			return NewQueryError(http.StatusInternalServerError,
				fmt.Sprintf("Unknown relation target %s", f.Relation.Target))
		}
		if err := e.Validate(target, s.Selection); err != nil {
			return err
		}
	}
	return nil
}
