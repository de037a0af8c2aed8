package schema

import (
	"fmt"

	"github.com/theographic/theodb/internal/builder"
	"github.com/theographic/theodb/internal/filter"
	"github.com/theographic/theodb/internal/props"
	"github.com/theographic/theodb/internal/types"
	"github.com/theographic/theodb/pkg"
)

// Entity is the public shape of one collection.
type Entity struct {
	Name       string
	Collection string
	// declaration order is output order
	Fields *pkg.InsertSortMap[string, *Field]

	// SearchName is the root search operation, empty when the entity is not searchable
	SearchName   string
	SearchFields []string
}

// NewEntity builds an entity from its field declarations.
// It panics when a declaration is invalid.
func NewEntity(name, collection string, fields ...*Field) *Entity {
	e := &Entity{
		Name:       name,
		Collection: collection,
		Fields:     pkg.NewInsertSortMap[string, *Field](),
	}

	for _, f := range fields {
		if e.Fields.Has(f.Name) {
			panic(fmt.Sprintf("%s: duplicate field %s", name, f.Name))
		}
		if err := CheckFieldRules(f); err != nil {
			panic(fmt.Sprintf("%s: %s", name, err))
		}

		if f.IsRelation() {
			target, indexes, _ := props.ParseRelationPropSafe(f.Properties.Get(props.FieldPropRelation))
			f.Relation = &Relation{Source: f.Source(), Target: target, Indexes: indexes}
		}
		f.Get = f.accessor()
		e.Fields.Push(f.Name, f)
	}

	if !e.Fields.Has("id") {
		panic(fmt.Sprintf("%s: missing id field", name))
	}
	return e
}

// Searchable declares the root search operation and the fields it matches.
func (e *Entity) Searchable(name string, fields ...string) *Entity {
	for _, field := range fields {
		f := e.Fields.Get(field)
		if f == nil || f.BuiltinType != types.FieldTypeString {
			panic(fmt.Sprintf("%s: search field %s must be a declared String field", e.Name, field))
		}
	}
	e.SearchName = name
	e.SearchFields = fields
	return e
}

func (e *Entity) Field(name string) (*Field, bool) {
	f := e.Fields.Get(name)
	return f, f != nil
}

// Kinds maps every filterable field to its filter kind.
func (e *Entity) Kinds() map[string]filter.Kind {
	kinds := map[string]filter.Kind{}
	for _, f := range e.Fields.Values() {
		if f.Filter != filter.KindNone {
			kinds[f.Name] = f.Filter
		}
	}
	return kinds
}

// Accessors maps every filterable field to the accessor its filter is evaluated against.
func (e *Entity) Accessors() map[string]builder.Accessor {
	accessors := map[string]builder.Accessor{}
	for _, f := range e.Fields.Values() {
		if f.Filter != filter.KindNone {
			accessors[f.Name] = f.Get
		}
	}
	return accessors
}

func (e *Entity) Relations() []*Field {
	return pkg.Filter(e.Fields.Values(), func(f *Field) bool { return f.IsRelation() })
}

// Scalars lists every non-relation field in declaration order.
func (e *Entity) Scalars() []*Field {
	return pkg.Filter(e.Fields.Values(), func(f *Field) bool { return !f.IsRelation() })
}

// CheckFieldRules validates a single field declaration.
func CheckFieldRules(f *Field) error {
	if len(f.Name) == 0 {
		return fmt.Errorf("field name cannot be empty")
	}
	if !f.BuiltinType.IsValid() {
		return fmt.Errorf("Invalid field type: %s", f.BuiltinType)
	}
	for prop := range f.Properties {
		if !prop.IsValid() {
			return fmt.Errorf("Invalid field prop: %s", prop)
		}
	}
	if len(f.Source()) == 0 {
		return fmt.Errorf("field %s has no source attribute", f.Name)
	}

	if f.BuiltinType == types.FieldTypeVector && !f.IsRelation() {
		if _, err := props.ParseVectorPropSafe(f.Properties.Get(props.FieldPropVector)); err != nil {
			return fmt.Errorf("field %s: %w", f.Name, err)
		}
	}

	if f.IsRelation() {
		if f.Filter != filter.KindNone {
			return fmt.Errorf("relation field %s cannot be filtered", f.Name)
		}
		if _, _, err := props.ParseRelationPropSafe(f.Properties.Get(props.FieldPropRelation)); err != nil {
			return fmt.Errorf("field %s: %w", f.Name, err)
		}
		return nil
	}

	if f.Properties.Has(props.FieldPropRelation) {
		return fmt.Errorf("field %s declares a relation prop but is not a relation", f.Name)
	}

	switch f.Filter {
	case filter.KindNone:
	case filter.KindString:
		if f.BuiltinType != types.FieldTypeString {
			return fmt.Errorf("field %s of type %s cannot use a String filter", f.Name, f.BuiltinType)
		}
	case filter.KindInt:
		if f.BuiltinType != types.FieldTypeInt && f.BuiltinType != types.FieldTypeFloat {
			return fmt.Errorf("field %s of type %s cannot use an Int filter", f.Name, f.BuiltinType)
		}
	case filter.KindBool:
		if f.BuiltinType != types.FieldTypeBool {
			return fmt.Errorf("field %s of type %s cannot use a Bool filter", f.Name, f.BuiltinType)
		}
	default:
		return fmt.Errorf("field %s has an unknown filter kind", f.Name)
	}
	return nil
}
