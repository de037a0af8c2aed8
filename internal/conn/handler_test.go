package conn_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	. "github.com/theographic/theodb/internal/conn"
	"github.com/theographic/theodb/internal/graphql"
	"github.com/theographic/theodb/pkg"
	"gotest.tools/assert"
)

func TestFindManyReqHandler(t *testing.T) {
	engine := newTestEngine()

	t.Run("where limit and offset", func(t *testing.T) {
		res := FindManyReqHandler(engine, reqEncode(map[string]any{
			"collection": "books",
			"where":      map[string]any{"testament": map[string]any{"eq": "New Testament"}},
			"limit":      2,
			"offset":     1,
			"select":     map[string]any{"bookName": true},
		}))
		assert.Equal(t, res.Status, http.StatusOK, res.Message)
		books := res.Data.([]*pkg.Object)
		assert.Equal(t, len(books), 2)
		assert.Equal(t, books[0].Get("bookName"), "Mark")
		assert.Equal(t, books[1].Get("bookName"), "Luke")
		assert.DeepEqual(t, books[0].Sorted, []string{"bookName"})
	})

	t.Run("no select projects scalars", func(t *testing.T) {
		res := FindManyReqHandler(engine, reqEncode(map[string]any{
			"collection": "people",
			"where":      map[string]any{"slug": map[string]any{"eq": "moses_2108"}},
		}))
		assert.Equal(t, res.Status, http.StatusOK, res.Message)
		people := res.Data.([]*pkg.Object)
		assert.Equal(t, len(people), 1)
		assert.Equal(t, people[0].Get("name"), "Moses")
		assert.Assert(t, !people[0].Has("father"))
	})

	t.Run("relation selection", func(t *testing.T) {
		res := FindManyReqHandler(engine, reqEncode(map[string]any{
			"collection": "people",
			"where":      map[string]any{"name": map[string]any{"eq": "Isaac"}},
			"select":     json.RawMessage(`{"name": true, "father": {"name": true}}`),
		}))
		assert.Equal(t, res.Status, http.StatusOK, res.Message)
		people := res.Data.([]*pkg.Object)
		assert.Equal(t, len(people), 1)
		fathers := people[0].Get("father").([]*pkg.Object)
		assert.Equal(t, len(fathers), 1)
		assert.Equal(t, fathers[0].Get("name"), "Abraham")
	})

	t.Run("relation selected with true", func(t *testing.T) {
		res := FindManyReqHandler(engine, reqEncode(map[string]any{
			"collection": "people",
			"where":      map[string]any{"name": map[string]any{"eq": "Isaac"}},
			"select":     json.RawMessage(`{"father": true}`),
		}))
		assert.Equal(t, res.Status, http.StatusOK, res.Message)
		fathers := res.Data.([]*pkg.Object)[0].Get("father").([]*pkg.Object)
		assert.Equal(t, fathers[0].Get("slug"), "abraham_58")
	})

	t.Run("unknown collection", func(t *testing.T) {
		res := FindManyReqHandler(engine, reqEncode(map[string]any{"collection": "angels"}))
		assert.Equal(t, res.Status, http.StatusNotFound, res.Message)
		assert.Equal(t, res.Message, "Collection angels not found")
	})

	t.Run("unknown selected field", func(t *testing.T) {
		res := FindManyReqHandler(engine, reqEncode(map[string]any{
			"collection": "books",
			"select":     map[string]any{"author": true},
		}))
		assert.Equal(t, res.Status, http.StatusBadRequest, res.Message)
		assert.Equal(t, res.Message, `Cannot query field "author" on type "Book"`)
	})

	t.Run("invalid select", func(t *testing.T) {
		res := FindManyReqHandler(engine, reqEncode(map[string]any{
			"collection": "books",
			"select":     []string{"bookName"},
		}))
		assert.Equal(t, res.Status, http.StatusBadRequest, res.Message)
		assert.ErrorContains(t, errorOf(res), "invalid select")
	})

	t.Run("bad json", func(t *testing.T) {
		res := FindManyReqHandler(engine, []byte(`{"collection":`))
		assert.Equal(t, res.Status, http.StatusBadRequest)
	})
}

type responseError struct{ msg string }

func (e responseError) Error() string { return e.msg }

func errorOf(res Response) error { return responseError{res.Message} }

func TestFindReqHandler(t *testing.T) {
	engine := newTestEngine()

	t.Run("found", func(t *testing.T) {
		res := FindReqHandler(engine, reqEncode(map[string]any{
			"collection": "places",
			"id":         "recSinai",
			"select":     map[string]any{"kjvName": true, "displayTitle": true},
		}))
		assert.Equal(t, res.Status, http.StatusOK, res.Message)
		place := res.Data.(*pkg.Object)
		assert.Equal(t, place.Get("kjvName"), "Sinai")
		assert.Equal(t, place.Get("displayTitle"), "Mount Sinai")
	})

	t.Run("missing id", func(t *testing.T) {
		res := FindReqHandler(engine, reqEncode(map[string]any{"collection": "places", "id": "recNowhere"}))
		assert.Equal(t, res.Status, http.StatusNotFound, res.Message)
		assert.Equal(t, res.Message, "No Place found with id recNowhere")
	})
}

func TestSearchReqHandler(t *testing.T) {
	engine := newTestEngine()

	t.Run("matches", func(t *testing.T) {
		res := SearchReqHandler(engine, reqEncode(map[string]any{
			"collection": "places",
			"input":      "egypt",
			"select":     map[string]any{"kjvName": true},
		}))
		assert.Equal(t, res.Status, http.StatusOK, res.Message)
		places := res.Data.([]*pkg.Object)
		assert.Equal(t, len(places), 2)
		assert.Equal(t, places[0].Get("kjvName"), "Egypt")
		assert.Equal(t, places[1].Get("kjvName"), "River of Egypt")
	})

	t.Run("blank input", func(t *testing.T) {
		res := SearchReqHandler(engine, reqEncode(map[string]any{"collection": "people", "input": "  "}))
		assert.Equal(t, res.Status, http.StatusOK, res.Message)
		assert.Equal(t, len(res.Data.([]*pkg.Object)), 0)
	})

	t.Run("not searchable", func(t *testing.T) {
		res := SearchReqHandler(engine, reqEncode(map[string]any{"collection": "books", "input": "Genesis"}))
		assert.Equal(t, res.Status, http.StatusBadRequest, res.Message)
		assert.Equal(t, res.Message, "Collection books is not searchable")
	})
}

func TestQueryReqHandler(t *testing.T) {
	executor := graphql.NewExecutor(newTestEngine())

	t.Run("ok", func(t *testing.T) {
		res := QueryReqHandler(context.Background(), executor, reqEncode(map[string]any{
			"query": `query Q($id: String) { people(where: {slug: {eq: $id}}) { name } }`,
			"variables": map[string]any{"id": "moses_2108"},
		}))
		assert.Equal(t, res.Status, http.StatusOK, res.Message)
		buf, err := json.Marshal(res.Data)
		assert.NilError(t, err)
		assert.Equal(t, string(buf), `{"data":{"people":[{"name":"Moses"}]}}`)
	})

	t.Run("syntax error", func(t *testing.T) {
		res := QueryReqHandler(context.Background(), executor, reqEncode(map[string]any{"query": `{ books {`}))
		assert.Equal(t, res.Status, http.StatusBadRequest, res.Message)
		assert.Assert(t, res.Data.(*graphql.Response).Data == nil)
	})

	t.Run("partial errors", func(t *testing.T) {
		res := QueryReqHandler(context.Background(), executor, reqEncode(map[string]any{
			"query": `{ books(limit: 1) { bookName } angels { name } }`,
		}))
		assert.Equal(t, res.Status, http.StatusOK, res.Message)
		data := res.Data.(*graphql.Response)
		assert.Equal(t, len(data.Errors), 1)
		assert.ErrorContains(t, errorOf(res), "angels")
	})
}

func TestDBStatReqHandler(t *testing.T) {
	res := DBStatReqHandler(newTestEngine())
	assert.Equal(t, res.Status, http.StatusOK)
	stats := res.Data.(*pkg.Object)
	assert.Equal(t, stats.Get("books"), 66)
	assert.Equal(t, stats.Get("events"), 12)
	assert.Equal(t, stats.Get("easton"), 3)
}

func TestActionHandler(t *testing.T) {
	engine := newTestEngine()
	executor := graphql.NewExecutor(engine)

	for _, action := range []RequestAction{
		RequestActionFind, RequestActionFindMany, RequestActionSearch,
		RequestActionQuery, RequestActionDBStat,
	} {
		assert.Assert(t, action.IsReadOnly(), action)
	}

	t.Run("unknown action", func(t *testing.T) {
		res := ActionHandler(engine, executor, RequestAction("create"), nil, []byte(`{}`))
		assert.Assert(t, !RequestAction("create").IsReadOnly())
		assert.Equal(t, res.Status, http.StatusBadRequest)
		assert.Equal(t, res.Message, "unknown action: create")
	})

	t.Run("stats", func(t *testing.T) {
		res := ActionHandler(engine, executor, RequestActionDBStat, nil, []byte(`{}`))
		assert.Equal(t, res.Status, http.StatusOK)
	})
}
