package conn

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/theographic/theodb/internal/graphql"
	"github.com/theographic/theodb/internal/query"
	"github.com/theographic/theodb/pkg"
)

type WsRequest struct {
	Action RequestAction `json:"action"`
	ReqId  int           `json:"__client_req_id__"` // used in theodb clients
}

// Server answers websocket and GraphQL requests against one engine.
type Server struct {
	Engine   *query.Engine
	Executor *graphql.Executor

	upgrader websocket.Upgrader
}

func NewServer(engine *query.Engine, bufferSize int) *Server {
	return &Server{
		Engine:   engine,
		Executor: graphql.NewExecutor(engine),
		upgrader: websocket.Upgrader{
			WriteBufferSize: bufferSize,
			ReadBufferSize:  bufferSize,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// HandleConnection upgrades the request and serves actions until the client
// goes away or the request context is cancelled.
func (s *Server) HandleConnection(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		pkg.DebugLog("websocket upgrade failed:", err)
		return
	}
	defer conn.Close()

	ctx := NewConnCtx(r.Context(), conn)
	stop := context.AfterFunc(ctx.Context(), func() {
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(time.Second))
		conn.Close()
	})
	defer stop()

	log := pkg.Logger().With(zap.String("conn_id", ctx.ID.String()), zap.String("remote_addr", r.RemoteAddr))
	log.Info("connection opened")
	defer log.Info("connection closed")

	connectionsGauge.Inc()
	defer connectionsGauge.Dec()

	for {
		buf, err := ctx.Read()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug("conn read error", zap.Error(err))
			}
			return
		}

		res := s.handleMessage(ctx, buf)
		if err := ctx.WriteResponse(res); err != nil {
			log.Debug("writing response", zap.Error(err))
			return
		}
	}
}

func (s *Server) handleMessage(ctx *ConnCtx, buf []byte) Response {
	var req WsRequest
	if err := json.Unmarshal(buf, &req); err != nil {
		pkg.DebugLog("parsing request", err)
		return NewErrorResponse(http.StatusBadRequest, err.Error())
	}

	res := ActionHandler(s.Engine, s.Executor, req.Action, ctx, buf)
	res.ReqId = req.ReqId
	requestsCounter.WithLabelValues(actionLabel(req.Action), strconv.Itoa(res.Status)).Inc()
	if res.Status >= http.StatusBadRequest {
		pkg.Logger().Debug("request failed",
			zap.String("conn_id", ctx.ID.String()),
			zap.String("action", string(req.Action)),
			zap.Int("status", res.Status),
			zap.String("message", res.Message))
	}
	return res
}
