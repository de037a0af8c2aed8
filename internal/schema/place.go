package schema

import "github.com/theographic/theodb/internal/filter"

var Place = NewEntity("Place", "places",
	ID(),
	String("placeLookup").Filterable(filter.KindString),
	String("openBibleLat"),
	String("openBibleLong"),
	String("kjvName").Filterable(filter.KindString),
	String("esvName").Filterable(filter.KindString),
	String("comment"),
	String("precision"),
	String("featureType").Filterable(filter.KindString),
	List("rootID"),
	String("aliases"),
	String("dictionaryLink"),
	String("dictionaryText"),
	CountOr("verseCount", "verses").Filterable(filter.KindInt),
	Int("placeID"),
	String("recogitoUri"),
	String("recogitoLat"),
	String("recogitoLon"),
	Rel("peopleBorn", "people.id"),
	Rel("peopleDied", "people.id"),
	Rel("booksWritten", "books.id"),
	Rel("verses", "verses.id"),
	String("recogitoStatus"),
	String("recogitoType"),
	String("recogitoComments"),
	String("recogitoLabel"),
	String("recogitoUID"),
	String("hasBeenHere"),
	String("latitude"),
	String("longitude"),
	String("status").Filterable(filter.KindString),
	String("displayTitle").Filterable(filter.KindString),
	String("alphaGroup").Filterable(filter.KindString),
	String("slug").Filterable(filter.KindString),
	Rel("duplicateOf", "places.id"),
	Boolean("ambiguous").Filterable(filter.KindBool),
	Rel("eastons", "easton.id"),
	WrapList("dictText"),
	String("modified"),
	Rel("eventsHere", "events.id"),
	String("featureSubType").Filterable(filter.KindString),
).Searchable("searchPlaces", "kjvName", "displayTitle", "placeLookup")
