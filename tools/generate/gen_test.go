package generate_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/theographic/theodb/internal/schema"
	"github.com/theographic/theodb/internal/types"
	gen "github.com/theographic/theodb/tools/generate"
	"gotest.tools/assert"
)

func TestSchemaToGraphQL(t *testing.T) {
	res, err := gen.SchemaToLang(schema.Entities, "graphql")
	assert.NilError(t, err)

	s, err := gqlparser.LoadSchema(&ast.Source{Name: "theodb.graphql", Input: string(res)})
	if err != nil {
		t.Fatal(err)
	}

	t.Run("query type", func(t *testing.T) {
		query := s.Types["Query"]
		assert.Assert(t, query != nil)
		for _, e := range schema.Entities.All() {
			assert.Assert(t, query.Fields.ForName(e.Collection) != nil, e.Collection)
		}

		books := query.Fields.ForName("books")
		assert.Equal(t, books.Type.String(), "[Book]")
		assert.Equal(t, books.Arguments.ForName("where").Type.Name(), "BookFilter")
		assert.Equal(t, books.Arguments.ForName("limit").Type.Name(), "Int")

		search := query.Fields.ForName("searchPlaces")
		assert.Equal(t, search.Type.String(), "[Place]")
		assert.Equal(t, search.Arguments.ForName("input").Type.String(), "String!")
	})

	t.Run("object types", func(t *testing.T) {
		book := s.Types["Book"]
		assert.Equal(t, book.Fields.ForName("id").Type.String(), "String!")
		assert.Equal(t, book.Fields.ForName("writers").Type.String(), "[Person]")
		assert.Equal(t, book.Fields.ForName("yearWritten").Type.String(), "[String]")
		assert.Equal(t, s.Types["Event"].Fields.ForName("sortKey").Type.String(), "Float")
		assert.Equal(t, s.Types["Person"].Fields.ForName("birthYear").Type.String(), "Int")
	})

	t.Run("filter inputs", func(t *testing.T) {
		assert.Equal(t, s.Types["BookFilter"].Fields.ForName("verseCount").Type.Name(), "IntFilter")
		assert.Equal(t, s.Types["EventFilter"].Fields.ForName("sortKey").Type.Name(), "IntFilter")
		assert.Equal(t, s.Types["PersonFilter"].Fields.ForName("ambiguous").Type.Name(), "BooleanFilter")
		assert.Assert(t, s.Types["PersonFilter"].Fields.ForName("father") == nil)
	})
}

func TestSchemaToTypescript(t *testing.T) {
	res, err := gen.SchemaToLang(schema.Entities, "ts")
	assert.NilError(t, err)
	out := string(res)

	assert.Assert(t, strings.HasPrefix(out, "export type Book = {\n\tid: string;\n\tosisName?: string | null;\n"), out)
	assert.Assert(t, strings.Contains(out, "\twriters: Person[];\n"))
	assert.Assert(t, strings.Contains(out, "\tyearWritten: string[];\n"))
	assert.Assert(t, strings.Contains(out, "\tverseCount?: number | null;\n"))
	assert.Assert(t, strings.HasSuffix(out, "\tpeopleGroups: PeopleGroup;\n\teaston: Easton;\n};\n"), out)
}

func TestSchemaToJson(t *testing.T) {
	res, err := gen.SchemaToLang(schema.Entities, "json")
	assert.NilError(t, err)

	var entities []gen.ParsedEntity
	assert.NilError(t, json.Unmarshal(res, &entities))
	assert.Equal(t, len(entities), 8)
	assert.Equal(t, entities[0].Name, "Book")

	field := func(e gen.ParsedEntity, name string) gen.ParsedField {
		for _, f := range e.Fields {
			if f.Name == name {
				return f
			}
		}
		t.Fatalf("no field %s on %s", name, e.Name)
		return gen.ParsedField{}
	}

	writers := field(entities[0], "writers")
	assert.Equal(t, writers.Rule, "relation")
	assert.Equal(t, writers.Relation.Target, "Person")
	assert.DeepEqual(t, writers.Relation.Indexes, []string{"id", "personLookup"})

	order := field(entities[0], "bookOrder")
	assert.Equal(t, order.Filter, "Int")
	assert.Equal(t, order.Source, "")

	count := field(entities[1], "writerCount")
	assert.Equal(t, count.Source, "writer count")

	year := field(entities[0], "yearWritten")
	assert.Equal(t, year.ElemType, types.FieldTypeString)

	for _, e := range entities {
		if e.Collection == "people" {
			assert.Equal(t, e.Search.Name, "searchPeople")
		}
	}
}

func TestUnsupportedLang(t *testing.T) {
	_, err := gen.SchemaToLang(schema.Entities, "rust")
	assert.ErrorContains(t, err, "Unsupported Language: rust")
}
