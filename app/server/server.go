package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/xavierroma/go-rakis/app/files"
	"github.com/xavierroma/go-rakis/app/log"
)

const (
	DefaultAddr       = "127.0.0.1:8080"
	DefaultBufferSize = 1024
)

// Accept failures are retried after a delay that doubles from
// minAcceptDelay up to maxAcceptDelay.
const (
	minAcceptDelay = 5 * time.Millisecond
	maxAcceptDelay = time.Second
)

// ErrServerClosed is returned by the accept loop once the listener is closed.
var ErrServerClosed = errors.New("server closed")

type Config struct {
	Addr       string
	Root       string
	BufferSize int
}

func DefaultConfig() Config {
	return Config{
		Addr:       DefaultAddr,
		Root:       files.DefaultRoot,
		BufferSize: DefaultBufferSize,
	}
}

// Server accepts one connection at a time. Each connection gets exactly one
// read of at most BufferSize bytes, one write of the engine's response, and
// is then closed before the next connection is accepted.
type Server struct {
	cfg    Config
	engine *Engine
}

func NewServer(cfg Config) *Server {
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = DefaultBufferSize
	}
	return &Server{
		cfg:    cfg,
		engine: NewEngine(files.NewStore(cfg.Root)),
	}
}

func (s *Server) ListenAndServe(ctx context.Context) error {
	l, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Addr, err)
	}
	log.Infof("Server is listening on %s, serving %q", l.Addr(), s.cfg.Root)
	return s.Serve(ctx, l)
}

// Serve runs the accept loop on l until ctx is done or l is closed. It
// returns nil in both cases.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-gctx.Done()
		l.Close()
		return nil
	})
	g.Go(func() error {
		var delay time.Duration
		for {
			conn, err := l.Accept()
			if err != nil {
				if errors.Is(err, net.ErrClosed) {
					return ErrServerClosed
				}
				delay = acceptBackoff(delay)
				log.Errorf("Error accepting connection: %v; retrying in %v", err, delay)
				select {
				case <-time.After(delay):
				case <-gctx.Done():
				}
				continue
			}
			delay = 0
			s.handleConnection(gctx, conn)
		}
	})

	if err := g.Wait(); err != nil && !errors.Is(err, ErrServerClosed) {
		return err
	}
	return nil
}

func acceptBackoff(prev time.Duration) time.Duration {
	if prev == 0 {
		return minAcceptDelay
	}
	return min(prev*2, maxAcceptDelay)
}

func (s *Server) handleConnection(ctx context.Context, conn net.Conn) {
	id := uuid.NewString()
	ctx = withConnID(ctx, id)
	log.Debugf("[%s] connection accepted from %s", id, conn.RemoteAddr())
	defer func() {
		if err := conn.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			log.Errorf("[%s] Error closing connection: %v", id, err)
		}
	}()

	buf := make([]byte, s.cfg.BufferSize)
	n, err := conn.Read(buf)
	if err != nil && !errors.Is(err, io.EOF) {
		log.Errorf("[%s] Could not receive data from client: %v", id, err)
		return
	}

	out := s.engine.Respond(ctx, buf[:n])
	if _, err := conn.Write(out); err != nil {
		log.Errorf("[%s] Error sending response to client: %v", id, err)
	}
}
