package schema

import (
	"math"
	"strconv"
	"strings"

	"github.com/theographic/theodb/internal/builder"
	"github.com/theographic/theodb/internal/filter"
	"github.com/theographic/theodb/internal/props"
	"github.com/theographic/theodb/internal/types"
	"github.com/theographic/theodb/pkg"
)

// Rule is how a public field value is derived from a stored record.
type Rule int

const (
	RulePassthrough Rule = iota
	RuleIdentifier
	RuleCountFallback
	RuleListDefault
	RuleListWrap
	RuleYear
	RuleRelation
)

func (r Rule) String() string {
	switch r {
	case RulePassthrough:
		return "passthrough"
	case RuleIdentifier:
		return "identifier"
	case RuleCountFallback:
		return "countFallback"
	case RuleListDefault:
		return "listDefault"
	case RuleListWrap:
		return "listWrap"
	case RuleYear:
		return "year"
	case RuleRelation:
		return "relation"
	}
	return "unknown"
}

type Field struct {
	Name        string
	BuiltinType types.FieldType
	Properties  pkg.Map[props.FieldProp, string]
	Rule        Rule
	// Filter is KindNone for fields that cannot be filtered on
	Filter filter.Kind
	// Relation is set once the owning entity is built
	Relation *Relation
	// Get extracts the public value; set once the owning entity is built
	Get builder.Accessor

	fallback string
}

// Relation is a declared single hop from a source attribute to a target collection.
// Indexes are tried in order; "id" is the primary index.
type Relation struct {
	Source  string
	Target  string
	Indexes []string
}

func newField(name string, t types.FieldType, rule Rule) *Field {
	return &Field{
		Name:        name,
		BuiltinType: t,
		Properties:  pkg.Map[props.FieldProp, string]{props.FieldPropSource: name},
		Rule:        rule,
	}
}

// ID declares the record identifier field.
func ID() *Field {
	f := newField("id", types.FieldTypeString, RuleIdentifier)
	f.Filter = filter.KindString
	return f
}

func String(name string) *Field  { return newField(name, types.FieldTypeString, RulePassthrough) }
func Int(name string) *Field     { return newField(name, types.FieldTypeInt, RulePassthrough) }
func Float(name string) *Field   { return newField(name, types.FieldTypeFloat, RulePassthrough) }
func Boolean(name string) *Field { return newField(name, types.FieldTypeBool, RulePassthrough) }

// List declares a list of strings that defaults to an empty list when absent.
func List(name string) *Field {
	f := newField(name, types.FieldTypeVector, RuleListDefault)
	f.Properties.Set(props.FieldPropVector, string(types.FieldTypeString))
	return f
}

// WrapList declares a scalar string that is exposed as a list of at most one entry.
func WrapList(name string) *Field {
	f := newField(name, types.FieldTypeVector, RuleListWrap)
	f.Properties.Set(props.FieldPropVector, string(types.FieldTypeString))
	return f
}

// Year declares an integer parsed leniently from year text.
func Year(name string) *Field { return newField(name, types.FieldTypeInt, RuleYear) }

// CountOr declares a count that falls back to the length of the list attribute.
func CountOr(name, list string) *Field {
	f := newField(name, types.FieldTypeInt, RuleCountFallback)
	f.fallback = list
	return f
}

// Rel declares a relationship, e.g. Rel("writers", "people.id|personLookup").
func Rel(name, relation string) *Field {
	f := newField(name, types.FieldTypeVector, RuleRelation)
	f.Properties.Set(props.FieldPropRelation, relation)
	return f
}

// From reads the field from a differently named stored attribute.
func (f *Field) From(source string) *Field {
	f.Properties.Set(props.FieldPropSource, source)
	return f
}

func (f *Field) Filterable(kind filter.Kind) *Field {
	f.Filter = kind
	return f
}

func (f *Field) Source() string { return f.Properties.Get(props.FieldPropSource) }

func (f *Field) IsRelation() bool { return f.Rule == RuleRelation }

// ElemType is the element type of a vector field.
func (f *Field) ElemType() types.FieldType {
	return types.FieldType(f.Properties.Get(props.FieldPropVector))
}

func (f *Field) accessor() builder.Accessor {
	source := f.Source()
	switch f.Rule {
	case RuleIdentifier:
		return func(r *builder.Record) any { return r.ID }
	case RuleCountFallback:
		list := f.fallback
		return func(r *builder.Record) any {
			if r.Has(source) {
				return r.Get(source)
			}
			if items, ok := r.Get(list).([]any); ok {
				return len(items)
			}
			return 0
		}
	case RuleListDefault:
		return func(r *builder.Record) any {
			if v := r.Get(source); v != nil {
				return v
			}
			return []any{}
		}
	case RuleListWrap:
		return func(r *builder.Record) any {
			v := r.Get(source)
			if !filter.Truthy(v) {
				return []any{}
			}
			if items, ok := v.([]any); ok {
				return items
			}
			return []any{v}
		}
	case RuleYear:
		return func(r *builder.Record) any { return ParseYear(r.Get(source)) }
	}
	return func(r *builder.Record) any { return r.Get(source) }
}

// ParseYear reads a leading base-10 signed integer, ignoring trailing text.
// It returns nil when v is absent, has no leading digits or does not fit in
// an int.
func ParseYear(v any) any {
	switch v := v.(type) {
	case nil:
		return nil
	case float64:
		t := math.Trunc(v)
		// -math.MinInt is 2^(IntSize-1), exact as a float64
		if math.IsNaN(t) || t < math.MinInt || t >= -math.MinInt {
			return nil
		}
		return int(t)
	case int:
		return v
	}

	s := strings.TrimSpace(filter.Stringify(v))
	end := 0
	if len(s) > 0 && (s[0] == '-' || s[0] == '+') {
		end = 1
	}
	digits := end
	for digits < len(s) && s[digits] >= '0' && s[digits] <= '9' {
		digits++
	}
	if digits == end {
		return nil
	}

	n, err := strconv.ParseInt(s[:digits], 10, strconv.IntSize)
	if err != nil {
		return nil
	}
	return int(n)
}
