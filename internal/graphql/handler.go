package graphql

import (
	"encoding/json"
	"net/http"

	"github.com/vektah/gqlparser/v2/gqlerror"

	"github.com/theographic/theodb/pkg"
)

type handler struct {
	executor *Executor
}

// NewHandler serves GraphQL over HTTP: POST with a JSON body, or GET with
// query, operationName and variables URL parameters.
func NewHandler(executor *Executor) http.Handler {
	return &handler{executor: executor}
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req Request
	switch r.Method {
	case http.MethodGet:
		params := r.URL.Query()
		req.Query = params.Get("query")
		req.OperationName = params.Get("operationName")
		if raw := params.Get("variables"); len(raw) > 0 {
			if err := json.Unmarshal([]byte(raw), &req.Variables); err != nil {
				writeResponse(w, http.StatusBadRequest, requestError(gqlerror.Errorf("Variables are invalid JSON: %s", err)))
				return
			}
		}
	case http.MethodPost:
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeResponse(w, http.StatusBadRequest, requestError(gqlerror.Errorf("Request body is invalid JSON: %s", err)))
			return
		}
	default:
		w.Header().Set("Allow", "GET, POST")
		writeResponse(w, http.StatusMethodNotAllowed, requestError(gqlerror.Errorf("Method %s is not allowed", r.Method)))
		return
	}

	resp := h.executor.Execute(r.Context(), req)
	status := http.StatusOK
	if resp.Data == nil {
		status = http.StatusBadRequest
	}
	writeResponse(w, status, resp)
}

func writeResponse(w http.ResponseWriter, status int, resp *Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		pkg.ErrorLog("failed to write graphql response:", err)
	}
}
