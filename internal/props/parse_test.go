package props_test

import (
	"testing"

	"github.com/theographic/theodb/internal/props"
	"github.com/theographic/theodb/internal/types"
	"gotest.tools/assert"
)

func TestParseRelationPropSafe(t *testing.T) {
	t.Run("simple", func(t *testing.T) {
		collection, indexes, err := props.ParseRelationPropSafe("people.id")
		assert.NilError(t, err)
		assert.Equal(t, "people", collection)
		assert.DeepEqual(t, indexes, []string{"id"})
	})

	t.Run("fallback indexes", func(t *testing.T) {
		collection, indexes, err := props.ParseRelationPropSafe("people.id | personLookup")
		assert.NilError(t, err)
		assert.Equal(t, "people", collection)
		assert.DeepEqual(t, indexes, []string{"id", "personLookup"})
	})

	t.Run("bad syntax", func(t *testing.T) {
		_, _, err := props.ParseRelationPropSafe("people:id")
		assert.ErrorContains(t, err, "Invalid syntax: relation(people:id)")
	})

	t.Run("missing index", func(t *testing.T) {
		_, _, err := props.ParseRelationPropSafe("people.")
		assert.ErrorContains(t, err, "Invalid syntax: relation(people.)")
	})

	t.Run("empty fallback", func(t *testing.T) {
		_, _, err := props.ParseRelationPropSafe("people.id|")
		assert.ErrorContains(t, err, "Invalid syntax: relation(people.id|)")
	})

	t.Run("missing collection", func(t *testing.T) {
		_, _, err := props.ParseRelationPropSafe(".id")
		assert.ErrorContains(t, err, "Invalid syntax: relation(.id)")
	})
}

func TestParseVectorPropSafe(t *testing.T) {
	t.Run("simple", func(t *testing.T) {
		v_type, err := props.ParseVectorPropSafe("String")
		assert.NilError(t, err)
		assert.Equal(t, v_type, types.FieldTypeString)
	})

	t.Run("invalid type", func(t *testing.T) {
		_, err := props.ParseVectorPropSafe("Number")
		assert.ErrorContains(t, err, "Number is not a valid type")
	})

	t.Run("nested", func(t *testing.T) {
		_, err := props.ParseVectorPropSafe("Vector")
		assert.ErrorContains(t, err, "nested vectors are not supported")
	})
}
