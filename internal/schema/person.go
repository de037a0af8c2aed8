package schema

import "github.com/theographic/theodb/internal/filter"

// Person is a biblical person. Birth and death years use astronomical
// numbering: 0 is 1 BC, -1 is 2 BC.
var Person = NewEntity("Person", "people",
	ID(),
	String("personLookup").Filterable(filter.KindString),
	Int("personID"),
	String("name").Filterable(filter.KindString),
	String("surname"),
	Boolean("isProperName").Filterable(filter.KindBool),
	String("gender").Filterable(filter.KindString),
	Year("birthYear"),
	Year("deathYear"),
	Rel("memberOf", "peopleGroups.id"),
	Rel("birthPlace", "places.id"),
	Rel("deathPlace", "places.id"),
	String("dictionaryLink"),
	String("dictionaryText"),
	String("events"),
	CountOr("verseCount", "verses").Filterable(filter.KindInt),
	Rel("verses", "verses.id"),
	Rel("siblings", "people.id"),
	Rel("halfSiblingsSameMother", "people.id"),
	Rel("halfSiblingsSameFather", "people.id"),
	Rel("chaptersWritten", "chapters.id"),
	Rel("mother", "people.id"),
	Rel("father", "people.id"),
	Rel("children", "people.id"),
	Int("minYear").Filterable(filter.KindInt),
	Int("maxYear").Filterable(filter.KindInt),
	String("displayTitle").Filterable(filter.KindString),
	String("status").Filterable(filter.KindString),
	String("alphaGroup").Filterable(filter.KindString),
	String("slug").Filterable(filter.KindString),
	Rel("partners", "people.id"),
	String("alsoCalled").Filterable(filter.KindString),
	Boolean("ambiguous").Filterable(filter.KindBool),
	Rel("eastons", "easton.id"),
	WrapList("dictText"),
	String("modified"),
	Rel("timeline", "events.id"),
).Searchable("searchPeople", "name", "alsoCalled", "personLookup")
