package schema

import "github.com/theographic/theodb/internal/filter"

// Easton is an entry of Easton's Bible Dictionary.
var Easton = NewEntity("Easton", "easton",
	ID(),
	String("dictLookup").Filterable(filter.KindString),
	String("termID"),
	String("termLabel").Filterable(filter.KindString),
	String("defId").From("def_id"),
	String("hasList").From("has_list"),
	Int("itemNum"),
	String("matchType").Filterable(filter.KindString),
	String("matchSlugs"),
	String("dictText").Filterable(filter.KindString),
	Rel("personLookup", "people.id"),
	Rel("placeLookup", "places.id"),
	Int("index"),
)
