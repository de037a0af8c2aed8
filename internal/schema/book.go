package schema

import "github.com/theographic/theodb/internal/filter"

// Book is a book of the Bible.
var Book = NewEntity("Book", "books",
	ID(),
	String("osisName").Filterable(filter.KindString),
	String("bookName").Filterable(filter.KindString),
	Int("chapterCount").Filterable(filter.KindInt),
	String("bookDiv").Filterable(filter.KindString),
	String("shortName").Filterable(filter.KindString),
	Int("bookOrder").Filterable(filter.KindInt),
	Rel("verses", "verses.id"),
	List("yearWritten"),
	Rel("placeWritten", "places.id"),
	Int("verseCount").Filterable(filter.KindInt),
	Rel("chapters", "chapters.id"),
	// writers hold either person ids or personLookup slugs
	Rel("writers", "people.id|personLookup"),
	String("testament").Filterable(filter.KindString),
	String("slug").Filterable(filter.KindString),
	Int("peopleCount"),
	Int("placeCount"),
)
