// Package client is a Go client for the theodb websocket endpoint.
//
// Usage:
//
//	c, err := client.New("ws://localhost:7085/ws")
//	if err != nil { ... }
//	defer c.Disconnect()
//
//	res, err := c.FindMany(client.FindManyArgs{
//		Collection: "people",
//		Where:      client.Where{"slug": {"eq": "moses_2108"}},
//		Select:     client.Select{"name": true, "father": client.Select{"name": true}},
//	})
//
//	var people []map[string]any
//	err = res.Decode(&people)
package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sync"

	ws "github.com/gorilla/websocket"

	"github.com/theographic/theodb/pkg"
)

var ErrNotConnected = errors.New("not connected")

type (
	// Client sends one request at a time over a single websocket connection.
	//
	// Unless you know what you're doing, you probably want to use
	// the `New` function instead.
	Client struct {
		// The formatted connection url of the theodb server
		Url *url.URL

		mu     sync.Mutex
		conn   *ws.Conn
		nextId int
	}

	Response struct {
		Status    int             `json:"status"`
		Message   string          `json:"message"`
		Data      json.RawMessage `json:"data"`
		RequestId int             `json:"__client_req_id__"`
	}

	// Where maps a field name to its filter, e.g. {"bookOrder": {"gte": 1}}.
	Where map[string]map[string]any

	// Select is a selection tree: true selects a field, a nested Select
	// selects fields of a relation. Being a map, its keys are sent and
	// projected in sorted order.
	Select map[string]any
)

// Decode unmarshals the response data into v.
func (r Response) Decode(v any) error { return json.Unmarshal(r.Data, v) }

func (r Response) Err() error {
	if r.Status >= 400 {
		return fmt.Errorf("theodb: %d %s", r.Status, r.Message)
	}
	return nil
}

func New(urlStr string) (*Client, error) {
	Url, err := url.Parse(urlStr)
	if err != nil {
		return nil, err
	}
	if Url.Scheme != "ws" && Url.Scheme != "wss" {
		return nil, fmt.Errorf("unsupported url scheme: %q", Url.Scheme)
	}
	return &Client{Url: Url}, nil
}

func (c *Client) Connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connect()
}

func (c *Client) connect() error {
	if c.conn != nil {
		return nil
	}
	conn, res, err := ws.DefaultDialer.Dial(c.Url.String(), nil)
	if err != nil {
		return err
	}
	res.Body.Close()

	pkg.InfoLog("Connected to theodb server", c.Url.Host)
	c.conn = conn
	return nil
}

func (c *Client) Disconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil
	}
	defer func() { c.conn = nil }()

	err := c.conn.WriteMessage(ws.CloseMessage,
		ws.FormatCloseMessage(ws.CloseNormalClosure, "Disconnect"))
	if err != nil {
		pkg.ErrorLog(err)
		c.conn.Close()
		return err
	}
	if err := c.conn.Close(); err != nil {
		pkg.ErrorLog(err)
		return err
	}

	pkg.InfoLog("Disconnected from theodb server")
	return nil
}

type requestAction string

const (
	requestActionFindUnique requestAction = "findUnique"
	requestActionFindMany   requestAction = "findMany"
	requestActionSearch     requestAction = "search"
	requestActionQuery      requestAction = "query"
	requestActionDBStat     requestAction = "databaseStats"
)

func (c *Client) request(action requestAction, args map[string]any) (Response, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.connect(); err != nil {
		return Response{}, fmt.Errorf("%w: %s", ErrNotConnected, err)
	}

	c.nextId++
	id := c.nextId

	req := map[string]any{"action": action, "__client_req_id__": id}
	for k, v := range args {
		req[k] = v
	}
	if err := c.conn.WriteJSON(req); err != nil {
		return Response{}, err
	}

	var res Response
	if err := c.conn.ReadJSON(&res); err != nil {
		return res, err
	}
	if res.RequestId != id {
		return res, fmt.Errorf("response for request %d, expected %d", res.RequestId, id)
	}
	return res, nil
}

type FindManyArgs struct {
	Collection string
	Where      Where
	Limit      int
	Offset     int
	Select     Select
}

func (c *Client) FindMany(args FindManyArgs) (Response, error) {
	return c.request(requestActionFindMany, map[string]any{
		"collection": args.Collection,
		"where":      args.Where,
		"limit":      args.Limit,
		"offset":     args.Offset,
		"select":     args.Select,
	})
}

func (c *Client) FindUnique(collection, id string, sel Select) (Response, error) {
	return c.request(requestActionFindUnique, map[string]any{
		"collection": collection,
		"id":         id,
		"select":     sel,
	})
}

func (c *Client) Search(collection, input string, sel Select) (Response, error) {
	return c.request(requestActionSearch, map[string]any{
		"collection": collection,
		"input":      input,
		"select":     sel,
	})
}

// Query runs a GraphQL document. The response data holds the GraphQL
// response, with its own data and errors members.
func (c *Client) Query(query string, variables map[string]any) (Response, error) {
	return c.request(requestActionQuery, map[string]any{
		"query":     query,
		"variables": variables,
	})
}

func (c *Client) Stats() (Response, error) {
	return c.request(requestActionDBStat, nil)
}
