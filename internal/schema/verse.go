package schema

import "github.com/theographic/theodb/internal/filter"

var Verse = NewEntity("Verse", "verses",
	ID(),
	String("osisRef").Filterable(filter.KindString),
	String("verseNum"),
	String("verseText").Filterable(filter.KindString),
	Rel("book", "books.id"),
	Rel("people", "people.id"),
	Int("peopleCount").Filterable(filter.KindInt),
	Rel("places", "places.id"),
	Int("placesCount"),
	Int("yearNum").Filterable(filter.KindInt),
	Rel("peopleGroups", "peopleGroups.id"),
	Rel("chapter", "chapters.id"),
	String("status").Filterable(filter.KindString),
	String("mdText"),
	String("richText"),
	String("verseID"),
	String("modified"),
	Rel("event", "events.id"),
).Searchable("searchVerses", "osisRef", "verseText")
