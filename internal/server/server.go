// Package server implements the single-owner TCP server glue (component
// C11): it accepts connections serially, serialises every store-mutating
// operation through one mutex, and drives the request dispatcher per
// connection.
package server

import (
	"bufio"
	"context"
	"net"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"github.com/shockdb/stringspace/internal/protocol"
	"github.com/shockdb/stringspace/internal/store"
)

// Server owns the single *store.Store for the lifetime of the process and
// serialises every access to it through mu, per the design's single-writer
// invariant.
type Server struct {
	store *store.Store
	mu    sync.Mutex

	dispatcher *protocol.Dispatcher
	logger     *zap.SugaredLogger
}

// New returns a Server over s, dispatching requests via the given
// dispatcher (already wired to s). logger may be nil, in which case
// zap.NewNop().Sugar() is used.
func New(s *store.Store, dispatcher *protocol.Dispatcher, logger *zap.SugaredLogger) *Server {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	return &Server{store: s, dispatcher: dispatcher, logger: logger}
}

// ListenAndServe binds host:port and accepts connections until ctx is
// cancelled or Accept returns a permanent error. Connections are handled
// to completion serially, one at a time — the design makes no concurrency
// claims beyond what a caller serialises here.
func (s *Server) ListenAndServe(ctx context.Context, host string, port int) error {
	return s.ListenAndServeOn(ctx, net.JoinHostPort(host, strconv.Itoa(port)))
}

// ListenAndServeOn is ListenAndServe for a pre-formatted "host:port"
// address, useful for tests that bind an ephemeral port.
func (s *Server) ListenAndServeOn(ctx context.Context, addr string) error {
	lc := net.ListenConfig{}

	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return err
	}

	defer ln.Close()

	s.logger.Infow("listening", "addr", addr)

	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
				return err
			}
		}

		s.handleConn(conn)
	}
}

// handleConn services one connection to completion before Accept is
// called again, per the server's serial execution model.
func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()

	addr := conn.RemoteAddr().String()
	s.logger.Debugw("connection accepted", "remote", addr)

	reader := bufio.NewReader(conn)

	for {
		frame, ok, err := protocol.ReadFrame(reader)
		if err != nil {
			s.logger.Warnw("read error", "remote", addr, "error", err)

			return
		}

		if !ok {
			s.logger.Debugw("connection closed", "remote", addr)

			return
		}

		op, operands := protocol.SplitFields(frame)

		s.mu.Lock()
		response := s.dispatcher.Dispatch(op, operands)
		s.mu.Unlock()

		response = append(response, protocol.EOT)

		if _, err := conn.Write(response); err != nil {
			s.logger.Warnw("write error", "remote", addr, "error", err)

			return
		}
	}
}
