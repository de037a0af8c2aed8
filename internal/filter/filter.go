// Package filter implements the per-field where constraints of a query.
//
// Every filterable field is declared with exactly one Kind, and the raw
// where object is decoded into the matching variant by Parse. Evaluation
// is a flat dispatch over the three variants.
package filter

import (
	"strings"

	"github.com/theographic/theodb/pkg"
)

type Kind int

const (
	KindNone Kind = iota
	KindString
	KindInt
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "String"
	case KindInt:
		return "Int"
	case KindBool:
		return "Bool"
	}
	return "None"
}

// Filter is one of StringFilter, IntFilter or BoolFilter.
type Filter interface {
	Kind() Kind
	Empty() bool
	Match(raw any) bool

	sealed()
}

// Where maps a declared field name to its filter. All entries AND-combine.
type Where map[string]Filter

type StringFilter struct {
	Eq       *string
	Contains *string
}

type IntFilter struct {
	Eq  *int
	Gte *int
	Lte *int
}

type BoolFilter struct {
	Eq *bool
}

func (StringFilter) Kind() Kind { return KindString }
func (IntFilter) Kind() Kind    { return KindInt }
func (BoolFilter) Kind() Kind   { return KindBool }

func (StringFilter) sealed() {}
func (IntFilter) sealed()    {}
func (BoolFilter) sealed()   {}

func (f StringFilter) Empty() bool { return f.Eq == nil && f.Contains == nil }
func (f IntFilter) Empty() bool    { return f.Eq == nil && f.Gte == nil && f.Lte == nil }
func (f BoolFilter) Empty() bool   { return f.Eq == nil }

func (f StringFilter) Match(raw any) bool {
	str := Stringify(raw)
	if f.Eq != nil && str != *f.Eq {
		return false
	}
	if f.Contains != nil && !strings.Contains(strings.ToLower(str), strings.ToLower(*f.Contains)) {
		return false
	}
	return true
}

// Match fails every present bound when raw is not numeric.
func (f IntFilter) Match(raw any) bool {
	num, ok := pkg.ToFloat(raw)
	if f.Eq != nil && (!ok || num != float64(*f.Eq)) {
		return false
	}
	if f.Gte != nil && (!ok || num < float64(*f.Gte)) {
		return false
	}
	if f.Lte != nil && (!ok || num > float64(*f.Lte)) {
		return false
	}
	return true
}

func (f BoolFilter) Match(raw any) bool {
	if f.Eq != nil && Truthy(raw) != *f.Eq {
		return false
	}
	return true
}

// Evaluate reports whether raw satisfies f. A nil or empty filter always passes.
func Evaluate(f Filter, raw any) bool {
	if f == nil || f.Empty() {
		return true
	}
	return f.Match(raw)
}
