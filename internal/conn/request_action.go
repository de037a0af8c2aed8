package conn

import (
	"fmt"
	"net/http"

	"github.com/theographic/theodb/internal/graphql"
	"github.com/theographic/theodb/internal/query"
)

type RequestAction string

const (
	// record actions
	RequestActionFind     RequestAction = "findUnique"
	RequestActionFindMany RequestAction = "findMany"
	RequestActionSearch   RequestAction = "search"

	// document actions
	RequestActionQuery RequestAction = "query"

	// database actions
	RequestActionDBStat RequestAction = "databaseStats"
)

// IsReadOnly is true for every action the server knows about.
func (action RequestAction) IsReadOnly() bool {
	switch action {
	case RequestActionFind, RequestActionFindMany, RequestActionSearch,
		RequestActionQuery, RequestActionDBStat:
		return true
	}
	return false
}

func ActionHandler(engine *query.Engine, executor *graphql.Executor, action RequestAction, ctx *ConnCtx, raw []byte) Response {
	switch action {
	case RequestActionFind:
		return FindReqHandler(engine, raw)
	case RequestActionFindMany:
		return FindManyReqHandler(engine, raw)
	case RequestActionSearch:
		return SearchReqHandler(engine, raw)
	case RequestActionQuery:
		return QueryReqHandler(ctx.Context(), executor, raw)
	case RequestActionDBStat:
		return DBStatReqHandler(engine)
	default:
		return NewErrorResponse(http.StatusBadRequest, fmt.Sprintf("unknown action: %s", action))
	}
}
