package router

import (
	"context"

	"github.com/xavierroma/go-rakis/app/types"
)

// MaxBodySize is the largest POST body, in bytes, that reaches a handler.
const MaxBodySize = 10000

type Router interface {
	Register(method types.Method, path string, handler types.Handler) Router

	HandleRequest(ctx context.Context, req types.Request) types.Response
}

func New() Router {
	return newTreeRouter()
}

// ErrorResponse is the response for err: a bare status with no headers or body.
func ErrorResponse(err error) types.Response {
	return types.Response{Status: types.StatusFor(err)}
}
