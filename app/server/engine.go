package server

import (
	"context"

	"github.com/xavierroma/go-rakis/app/files"
	"github.com/xavierroma/go-rakis/app/log"
	"github.com/xavierroma/go-rakis/app/request"
	"github.com/xavierroma/go-rakis/app/response"
	"github.com/xavierroma/go-rakis/app/router"
	"github.com/xavierroma/go-rakis/app/types"
)

// Engine turns the bytes of one request into the bytes of one response.
// It keeps no state between calls; the filesystem below the store root is
// the only thing requests share.
type Engine struct {
	router router.Router
}

func NewEngine(store *files.Store) *Engine {
	r := router.New().
		Register(types.Get, "/*path", store.Get).
		Register(types.Post, "/*path", store.Post)
	return &Engine{router: r}
}

// Respond never fails: every parse, routing and file error becomes an error
// status line.
func (e *Engine) Respond(ctx context.Context, raw []byte) []byte {
	id := connID(ctx)
	req, err := request.Parse(raw)
	if err != nil {
		log.Debugf("[%s] rejecting request: %v", id, err)
		return response.Error(types.StatusFor(err))
	}
	log.Debugf("[%s] %s %s %s headers=%v body=%d bytes", id, req.Method, req.Target, req.Version, req.Headers, len(req.Body))

	res := e.router.HandleRequest(ctx, req)
	log.Infof("[%s] %s %s -> %s", id, req.Method, req.Target, res.Status.Line())
	return response.Format(res)
}

type connIDKey struct{}

func withConnID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, connIDKey{}, id)
}

func connID(ctx context.Context) string {
	if id, ok := ctx.Value(connIDKey{}).(string); ok {
		return id
	}
	return "-"
}
