package graphql

import (
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
)

// fieldGroup is every field of a selection set sharing one response key.
type fieldGroup struct {
	key    string
	fields []*ast.Field
}

func (g *fieldGroup) name() string { return g.fields[0].Name }

func (g *fieldGroup) first() *ast.Field { return g.fields[0] }

// subSelections concatenates the selection sets of every field in the group.
func (g *fieldGroup) subSelections() ast.SelectionSet {
	var set ast.SelectionSet
	for _, f := range g.fields {
		set = append(set, f.SelectionSet...)
	}
	return set
}

// collectFields flattens fragments and applies @skip/@include, grouping the
// remaining fields by response key in document order.
func (ex *execution) collectFields(typeName string, set ast.SelectionSet) ([]*fieldGroup, error) {
	groups := []*fieldGroup{}
	index := map[string]*fieldGroup{}
	visited := map[string]bool{}

	var collect func(set ast.SelectionSet) error
	collect = func(set ast.SelectionSet) error {
		for _, sel := range set {
			switch sel := sel.(type) {
			case *ast.Field:
				include, err := ex.shouldInclude(sel.Directives)
				if err != nil {
					return err
				}
				if !include {
					continue
				}

				key := sel.Alias
				if len(key) == 0 {
					key = sel.Name
				}
				if g, ok := index[key]; ok {
					if g.name() != sel.Name {
						return errorAt(sel.Position, "Fields %q conflict because %s and %s are different fields", key, g.name(), sel.Name)
					}
					g.fields = append(g.fields, sel)
					continue
				}
				g := &fieldGroup{key: key, fields: []*ast.Field{sel}}
				index[key] = g
				groups = append(groups, g)

			case *ast.FragmentSpread:
				include, err := ex.shouldInclude(sel.Directives)
				if err != nil {
					return err
				}
				if !include || visited[sel.Name] {
					continue
				}
				visited[sel.Name] = true

				frag := ex.doc.Fragments.ForName(sel.Name)
				if frag == nil {
					return errorAt(sel.Position, "Unknown fragment %q", sel.Name)
				}
				if frag.TypeCondition != typeName {
					continue
				}
				if err := collect(frag.SelectionSet); err != nil {
					return err
				}

			case *ast.InlineFragment:
				include, err := ex.shouldInclude(sel.Directives)
				if err != nil {
					return err
				}
				if !include || (len(sel.TypeCondition) > 0 && sel.TypeCondition != typeName) {
					continue
				}
				if err := collect(sel.SelectionSet); err != nil {
					return err
				}
			}
		}
		return nil
	}

	if err := collect(set); err != nil {
		return nil, err
	}
	return groups, nil
}

func (ex *execution) shouldInclude(directives ast.DirectiveList) (bool, error) {
	if skip := directives.ForName("skip"); skip != nil {
		v, err := ex.directiveIf(skip)
		if err != nil {
			return false, err
		}
		if v {
			return false, nil
		}
	}
	if include := directives.ForName("include"); include != nil {
		v, err := ex.directiveIf(include)
		if err != nil {
			return false, err
		}
		if !v {
			return false, nil
		}
	}
	return true, nil
}

func (ex *execution) directiveIf(d *ast.Directive) (bool, error) {
	arg := d.Arguments.ForName("if")
	if arg == nil {
		return false, errorAt(d.Position, "Directive %q argument \"if\" of type \"Boolean!\" is required", d.Name)
	}
	v, err := arg.Value.Value(ex.vars)
	if err != nil {
		return false, errorAt(d.Position, "%s", err)
	}
	b, ok := v.(bool)
	if !ok {
		return false, errorAt(d.Position, "Directive %q argument \"if\" must be a Boolean, got %s", d.Name, fmt.Sprint(v))
	}
	return b, nil
}

// checkFragmentCycles rejects fragments that spread themselves, directly or
// through other fragments, following the order gqlparser's NoFragmentCycles
// rule reports them in.
func checkFragmentCycles(doc *ast.QueryDocument) *gqlerror.Error {
	done := map[string]bool{}
	onPath := map[string]bool{}

	var walk func(frag *ast.FragmentDefinition) *gqlerror.Error
	walk = func(frag *ast.FragmentDefinition) *gqlerror.Error {
		if done[frag.Name] {
			return nil
		}
		onPath[frag.Name] = true
		defer func() {
			onPath[frag.Name] = false
			done[frag.Name] = true
		}()

		for _, spread := range fragmentSpreads(frag.SelectionSet) {
			if onPath[spread.Name] {
				return errorAt(spread.Position, "Cannot spread fragment %q within itself.", spread.Name)
			}
			next := doc.Fragments.ForName(spread.Name)
			if next == nil {
				continue
			}
			if err := walk(next); err != nil {
				return err
			}
		}
		return nil
	}

	for _, frag := range doc.Fragments {
		if err := walk(frag); err != nil {
			return err
		}
	}
	return nil
}

// fragmentSpreads lists every fragment spread in set, descending into fields
// and inline fragments but not into other fragment definitions.
func fragmentSpreads(set ast.SelectionSet) []*ast.FragmentSpread {
	var spreads []*ast.FragmentSpread
	for _, sel := range set {
		switch sel := sel.(type) {
		case *ast.FragmentSpread:
			spreads = append(spreads, sel)
		case *ast.Field:
			spreads = append(spreads, fragmentSpreads(sel.SelectionSet)...)
		case *ast.InlineFragment:
			spreads = append(spreads, fragmentSpreads(sel.SelectionSet)...)
		}
	}
	return spreads
}
