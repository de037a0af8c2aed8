package schema

import "github.com/theographic/theodb/internal/filter"

// PeopleGroup is a tribe, nation, sect or other collective.
var PeopleGroup = NewEntity("PeopleGroup", "peopleGroups",
	ID(),
	String("groupName").Filterable(filter.KindString),
	Rel("members", "people.id"),
	Rel("verses", "verses.id"),
	String("modified"),
	String("events"),
	Rel("eventsDev", "events.id").From("events_dev"),
	Rel("partOf", "peopleGroups.id"),
)
