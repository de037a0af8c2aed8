package query_test

import (
	"encoding/json"
	"testing"

	"github.com/theographic/theodb/internal/builder"
	. "github.com/theographic/theodb/internal/query"
	"github.com/theographic/theodb/internal/schema"
	"github.com/theographic/theodb/pkg"
	"gotest.tools/assert"
)

func TestProject(t *testing.T) {
	e := newTestEngine(t)

	person := func(t *testing.T, id string) *builder.Record {
		t.Helper()
		rec, err := e.FindUnique(schema.Person, id)
		assert.NilError(t, err)
		return rec
	}

	t.Run("nested relation", func(t *testing.T) {
		sel := Selection{
			{Name: "name"},
			{Name: "father", Selection: Select("name")},
		}
		obj, err := e.Project(schema.Person, person(t, "recIsaac"), sel)
		assert.NilError(t, err)

		buf, err := json.Marshal(obj)
		assert.NilError(t, err)
		assert.Equal(t, string(buf), `{"name":"Isaac","father":[{"name":"Abraham"}]}`)
	})

	t.Run("nil selection projects scalars only", func(t *testing.T) {
		obj, err := e.Project(schema.Person, person(t, "recSarah"), nil)
		assert.NilError(t, err)

		assert.DeepEqual(t, obj.Sorted[:4], []string{"id", "personLookup", "personID", "name"})
		assert.Equal(t, obj.Len(), len(schema.Person.Scalars()))
		assert.Assert(t, !obj.Has("father"))
		assert.Assert(t, obj.Get("birthYear") == nil)
		assert.Assert(t, obj.Get("personID") == nil)
		assert.Equal(t, obj.Get("verseCount"), 2)
		assert.DeepEqual(t, obj.Get("dictText"), []any{})
	})

	t.Run("computed fields", func(t *testing.T) {
		obj, err := e.Project(schema.Person, person(t, "recAbraham"), Select("birthYear", "deathYear", "dictText", "verseCount"))
		assert.NilError(t, err)
		assert.Equal(t, obj.Get("birthYear"), -2166)
		assert.Equal(t, obj.Get("deathYear"), -1991)
		assert.DeepEqual(t, obj.Get("dictText"), []any{"Abraham, father of a multitude."})
		assert.Equal(t, obj.Get("verseCount"), 229.)
	})

	t.Run("aliases and typename", func(t *testing.T) {
		sel := Selection{
			{Name: "__typename"},
			{Alias: "kind", Name: "__typename"},
			{Alias: "fullName", Name: "name"},
		}
		obj, err := e.Project(schema.Person, person(t, "recMoses"), sel)
		assert.NilError(t, err)

		buf, err := json.Marshal(obj)
		assert.NilError(t, err)
		assert.Equal(t, string(buf), `{"__typename":"Person","kind":"Person","fullName":"Moses"}`)
	})

	t.Run("relation selected without subfields", func(t *testing.T) {
		sel, err := ParseSelect(json.RawMessage(`{"name": true, "father": true}`))
		assert.NilError(t, err)

		obj, err := e.Project(schema.Person, person(t, "recIsaac"), sel)
		assert.NilError(t, err)
		father := obj.Get("father").([]*pkg.Object)
		assert.Equal(t, len(father), 1)
		assert.Equal(t, father[0].Get("name"), "Abraham")
		assert.Equal(t, father[0].Len(), len(schema.Person.Scalars()))
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := e.Project(schema.Person, person(t, "recMoses"), Select("name", "wings"))
		assert.ErrorContains(t, err, `Cannot query field "wings" on type "Person"`)
		assert.Equal(t, ErrorStatus(err), 400)
	})

	t.Run("scalar with subselection", func(t *testing.T) {
		_, err := e.Project(schema.Person, person(t, "recMoses"), Selection{{Name: "name", Selection: Select("x")}})
		assert.ErrorContains(t, err, "must not have a selection")
	})

	t.Run("validate checks nested selections without records", func(t *testing.T) {
		sel := Selection{{Name: "father", Selection: Select("wings")}}
		err := e.Validate(schema.Person, sel)
		assert.ErrorContains(t, err, "wings")

		assert.NilError(t, e.Validate(schema.Person, Selection{{Name: "father", Selection: Select("name")}}))
	})

	t.Run("renamed sources project under public names", func(t *testing.T) {
		rec, err := e.FindUnique(schema.Easton, "recEaEgypt")
		assert.NilError(t, err)
		obj, err := e.Project(schema.Easton, rec, Selection{
			{Name: "defId"},
			{Name: "hasList"},
			{Name: "placeLookup", Selection: Select("kjvName")},
		})
		assert.NilError(t, err)

		buf, err := json.Marshal(obj)
		assert.NilError(t, err)
		assert.Equal(t, string(buf), `{"defId":"d2","hasList":"y","placeLookup":[{"kjvName":"Egypt"}]}`)
	})
}

func TestParseSelect(t *testing.T) {
	t.Run("keeps document order", func(t *testing.T) {
		sel, err := ParseSelect(json.RawMessage(`{"title": true, "eventID": true, "notes": false, "participants": {"name": true}}`))
		assert.NilError(t, err)
		assert.Equal(t, len(sel), 3)
		assert.Equal(t, sel[0].Name, "title")
		assert.Equal(t, sel[1].Name, "eventID")
		assert.Equal(t, sel[2].Name, "participants")
		assert.DeepEqual(t, sel[2].Selection, Select("name"))
	})

	t.Run("null selects everything", func(t *testing.T) {
		sel, err := ParseSelect(json.RawMessage(`null`))
		assert.NilError(t, err)
		assert.Assert(t, sel == nil)

		sel, err = ParseSelect(nil)
		assert.NilError(t, err)
		assert.Assert(t, sel == nil)
	})

	t.Run("invalid", func(t *testing.T) {
		for _, raw := range []string{`[]`, `{"name": 1}`, `{"name": [true]}`, `{"name": `} {
			_, err := ParseSelect(json.RawMessage(raw))
			assert.ErrorContains(t, err, "invalid select", raw)
			assert.Equal(t, ErrorStatus(err), 400)
		}
	})
}
