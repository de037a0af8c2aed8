package conn

import (
	"context"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// ConnCtx is the per-connection state of a websocket client.
type ConnCtx struct {
	ID uuid.UUID

	conn *websocket.Conn
	ctx  context.Context
}

func NewConnCtx(ctx context.Context, c *websocket.Conn) *ConnCtx {
	return &ConnCtx{ID: uuid.New(), conn: c, ctx: ctx}
}

func (ctx *ConnCtx) Context() context.Context { return ctx.ctx }

// Read returns the next text message. Binary messages are skipped.
func (ctx *ConnCtx) Read() ([]byte, error) {
	for {
		kind, buf, err := ctx.conn.ReadMessage()
		if err != nil {
			return nil, err
		}
		if kind == websocket.TextMessage {
			return buf, nil
		}
	}
}

func (ctx *ConnCtx) Write(buf []byte) error {
	return ctx.conn.WriteMessage(websocket.TextMessage, buf)
}

func (ctx *ConnCtx) WriteResponse(r Response) error { return ctx.Write(r.Marshal()) }
