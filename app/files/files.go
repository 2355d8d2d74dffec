// Package files serves GET requests from, and stores POST bodies into, a
// directory on the local filesystem.
package files

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"strconv"

	"github.com/xavierroma/go-rakis/app/log"
	"github.com/xavierroma/go-rakis/app/response"
	"github.com/xavierroma/go-rakis/app/types"
)

// DefaultRoot is the serving directory, relative to the working directory.
const DefaultRoot = "public"

// Store maps request paths onto files below Root. The target is Root and the
// request path joined as strings: nothing is cleaned, so "/../x" escapes Root.
type Store struct {
	Root string
	// Now returns the Date header value. Nil means the wall clock in UTC.
	Now func() string
}

func NewStore(root string) *Store {
	return &Store{Root: root}
}

func (s *Store) Target(path string) string {
	return s.Root + path
}

// Get reads the whole target file into the response body.
func (s *Store) Get(ctx context.Context, req types.Request, res *types.Response) {
	name := s.Target(req.Target)
	contents, err := os.ReadFile(name)
	if err != nil {
		s.fail(res, classify("read", name, err))
		return
	}
	s.ok(res, name, contents)
}

// Post creates or truncates the target file, writes the body into it and echoes
// the body back. Missing parent directories are not created.
func (s *Store) Post(ctx context.Context, req types.Request, res *types.Response) {
	name := s.Target(req.Target)
	f, err := os.Create(name)
	if err != nil {
		s.fail(res, &types.IOError{Op: "open", Path: name, Err: err})
		return
	}
	_, werr := f.Write(req.Body)
	cerr := f.Close()
	if err := errors.Join(werr, cerr); err != nil {
		s.fail(res, &types.IOError{Op: "write", Path: name, Err: err})
		return
	}
	s.ok(res, name, req.Body)
}

func (s *Store) ok(res *types.Response, name string, body []byte) {
	now := s.Now
	if now == nil {
		now = response.Date
	}
	res.Status = types.StatusOK
	res.Headers = res.Headers[:0]
	res.SetHeader("Date", now())
	res.SetHeader("Content-Length", strconv.Itoa(len(body)))
	res.SetHeader("Content-Type", ContentType(name))
	res.Body = body
}

func (s *Store) fail(res *types.Response, err error) {
	var ioErr *types.IOError
	if errors.As(err, &ioErr) {
		log.Errorf("file access failed: %v", err)
	}
	res.Status = types.StatusFor(err)
	res.Headers = nil
	res.Body = nil
}

func classify(op, name string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return types.ErrNotFound
	}
	return &types.IOError{Op: op, Path: name, Err: err}
}
