package conn

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/theographic/theodb/internal/graphql"
	"github.com/theographic/theodb/internal/query"
	"github.com/theographic/theodb/internal/schema"
	"github.com/theographic/theodb/pkg"
)

type Response struct {
	Data    any    `json:"data"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	// don't manually set this. it comes from the client
	ReqId int `json:"__client_req_id__"`
}

func NewErrorResponse(status int, err string) Response {
	return Response{Message: err, Status: status}
}

func NewResponse(status int, message string, data any) Response {
	return Response{Data: data, Message: message, Status: status}
}

func errorResponse(err error) Response {
	return NewErrorResponse(query.ErrorStatus(err), err.Error())
}

func (r Response) Marshal() []byte {
	data, err := json.Marshal(r)
	if err != nil {
		pkg.ErrorLog("failed to marshal response:", err)
		data, _ = json.Marshal(NewErrorResponse(http.StatusInternalServerError, err.Error()))
	}
	return data
}

// prepare resolves the collection and checks sel against its declaration.
func prepare(engine *query.Engine, collection string, rawSelect json.RawMessage) (*schema.Entity, query.Selection, error) {
	entity, err := engine.Entity(collection)
	if err != nil {
		return nil, nil, err
	}
	sel, err := query.ParseSelect(rawSelect)
	if err != nil {
		return nil, nil, err
	}
	if err := engine.Validate(entity, sel); err != nil {
		return nil, nil, err
	}
	return entity, sel, nil
}

type FindRequest struct {
	Collection string          `json:"collection"`
	ID         string          `json:"id"`
	Select     json.RawMessage `json:"select"`
}

func FindReqHandler(engine *query.Engine, raw []byte) Response {
	var req FindRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return NewErrorResponse(http.StatusBadRequest, err.Error())
	}

	entity, sel, err := prepare(engine, req.Collection, req.Select)
	if err != nil {
		return errorResponse(err)
	}

	rec, err := engine.FindUnique(entity, req.ID)
	if err != nil {
		return errorResponse(err)
	}

	res, err := engine.Project(entity, rec, sel)
	if err != nil {
		return errorResponse(err)
	}

	return NewResponse(
		http.StatusOK,
		fmt.Sprintf("Found %s with id %s", entity.Name, rec.ID),
		res,
	)
}

type FindManyRequest struct {
	Collection string          `json:"collection"`
	Where      map[string]any  `json:"where"`
	Limit      int             `json:"limit"`
	Offset     int             `json:"offset"`
	Select     json.RawMessage `json:"select"`
}

func FindManyReqHandler(engine *query.Engine, raw []byte) Response {
	var req FindManyRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return NewErrorResponse(http.StatusBadRequest, err.Error())
	}

	entity, sel, err := prepare(engine, req.Collection, req.Select)
	if err != nil {
		return errorResponse(err)
	}

	records, err := engine.FindMany(entity, req.Where, req.Limit, req.Offset)
	if err != nil {
		return errorResponse(err)
	}

	res, err := engine.ProjectAll(entity, records, sel)
	if err != nil {
		return errorResponse(err)
	}

	return NewResponse(
		http.StatusOK,
		fmt.Sprintf("Found %d records in collection %s", len(res), entity.Collection),
		res,
	)
}

type SearchRequest struct {
	Collection string          `json:"collection"`
	Input      string          `json:"input"`
	Select     json.RawMessage `json:"select"`
}

func SearchReqHandler(engine *query.Engine, raw []byte) Response {
	var req SearchRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return NewErrorResponse(http.StatusBadRequest, err.Error())
	}

	entity, sel, err := prepare(engine, req.Collection, req.Select)
	if err != nil {
		return errorResponse(err)
	}

	records, err := engine.Search(entity, req.Input)
	if err != nil {
		return errorResponse(err)
	}

	res, err := engine.ProjectAll(entity, records, sel)
	if err != nil {
		return errorResponse(err)
	}

	return NewResponse(
		http.StatusOK,
		fmt.Sprintf("Found %d matches for %q in collection %s", len(res), req.Input, entity.Collection),
		res,
	)
}

// QueryReqHandler runs a GraphQL document. The response data is the
// GraphQL response itself, errors included.
func QueryReqHandler(ctx context.Context, executor *graphql.Executor, raw []byte) Response {
	var req graphql.Request
	if err := json.Unmarshal(raw, &req); err != nil {
		return NewErrorResponse(http.StatusBadRequest, err.Error())
	}

	res := executor.Execute(ctx, req)
	if res.Data == nil {
		return NewResponse(http.StatusBadRequest, res.Errors.Error(), res)
	}

	message := "Query executed"
	if len(res.Errors) > 0 {
		message = res.Errors.Error()
	}
	return NewResponse(http.StatusOK, message, res)
}

func DBStatReqHandler(engine *query.Engine) Response {
	return NewResponse(http.StatusOK, "Database stats", engine.Stats())
}
