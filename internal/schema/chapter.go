package schema

import "github.com/theographic/theodb/internal/filter"

var Chapter = NewEntity("Chapter", "chapters",
	ID(),
	String("osisRef").Filterable(filter.KindString),
	Rel("book", "books.id"),
	Int("chapterNum").Filterable(filter.KindInt),
	Rel("writer", "people.id"),
	Rel("verses", "verses.id"),
	String("slug").Filterable(filter.KindString),
	Int("peopleCount").Filterable(filter.KindInt),
	Int("placesCount").Filterable(filter.KindInt),
	String("modified"),
	Int("writerCount").From("writer count").Filterable(filter.KindInt),
)
