package router

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/xavierroma/go-rakis/app/segmenttree"
	"github.com/xavierroma/go-rakis/app/types"
)

type treeRouter struct {
	tree *segmenttree.SegmentTree
}

func newTreeRouter() *treeRouter {
	return &treeRouter{
		tree: segmenttree.NewSegmentTree(),
	}
}

func (r *treeRouter) Register(method types.Method, path string, handler types.Handler) Router {
	r.tree.Insert(method, path, handler)
	return r
}

func (r *treeRouter) HandleRequest(ctx context.Context, req types.Request) types.Response {
	if !r.tree.HasMethod(req.Method) {
		return ErrorResponse(fmt.Errorf("%s: %w", req.Method, types.ErrUnsupportedMethod))
	}

	handler, params, ok := r.tree.Search(req.Method, req.Target)
	if !ok {
		return ErrorResponse(fmt.Errorf("no route for %s: %w", req.Target, types.ErrNotFound))
	}

	if req.Method == types.Post {
		if err := checkBody(req.Body); err != nil {
			return ErrorResponse(err)
		}
	}

	req.Params = params
	response := types.Response{
		Status: types.StatusOK,
	}

	handler(ctx, req, &response)
	return response
}

func checkBody(body []byte) error {
	if !utf8.Valid(body) {
		return types.NewParseError(types.InvalidEncoding, "%d byte body", len(body))
	}
	if len(body) > MaxBodySize {
		return fmt.Errorf("%d bytes: %w", len(body), types.ErrPayloadTooLarge)
	}
	return nil
}
