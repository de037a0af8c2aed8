package schema

import "github.com/theographic/theodb/internal/filter"

// Event is a narrative occurrence. sortKey approximates the year (negative
// is BC) and is range filtered with integer bounds.
var Event = NewEntity("Event", "events",
	ID(),
	String("title").Filterable(filter.KindString),
	String("startDate").Filterable(filter.KindString),
	String("duration").Filterable(filter.KindString),
	Rel("participants", "people.id"),
	Rel("locations", "places.id"),
	Rel("verses", "verses.id"),
	Rel("predecessor", "events.id"),
	String("lag"),
	Rel("partOf", "events.id"),
	String("notes").Filterable(filter.KindString),
	String("verseSort"),
	Rel("groups", "peopleGroups.id"),
	String("modified"),
	Float("sortKey").Filterable(filter.KindInt),
	Boolean("rangeFlag").Filterable(filter.KindBool),
	String("lagType").Filterable(filter.KindString),
	Int("eventID").Filterable(filter.KindInt),
)
