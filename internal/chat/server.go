package chat

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/andy6609/jim-relay-server/internal/directory"
)

const acceptBackoff = 10 * time.Millisecond

type Server struct {
	addr     string
	logger   *slog.Logger
	reactor  *Reactor
	listener net.Listener
	cancel   context.CancelFunc
	accepts  sync.WaitGroup
	stopOnce sync.Once
}

func NewServer(addr string, dir directory.Directory, opts Options, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		addr:    addr,
		logger:  logger,
		reactor: NewReactor(dir, opts, logger),
	}
}

// Start listens on the configured TCP address and serves in the background.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.Serve(ln)
	return nil
}

// Serve runs the reactor and the accept loop on ln in the background.
func (s *Server) Serve(ln net.Listener) {
	s.listener = ln
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	go s.reactor.Run(ctx)
	s.accepts.Add(1)
	go s.acceptLoop(ln)

	s.logger.Info("server started", "addr", ln.Addr().String())
}

// Subscribe exposes registry changes to observers such as the console.
func (s *Server) Subscribe(buffer int) <-chan RegistryChange {
	return s.reactor.Subscribe(buffer)
}

func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Stop closes the listener, logs out every live session and waits for all
// connections to finish flushing. Calling it again is a no-op.
func (s *Server) Stop() {
	s.stopOnce.Do(s.stop)
}

func (s *Server) stop() {
	s.logger.Info("shutting down")

	if s.listener != nil {
		_ = s.listener.Close()
	}
	s.accepts.Wait()
	if s.cancel != nil {
		s.cancel()
		s.reactor.Wait()
	}

	s.logger.Info("shutdown complete")
}

func (s *Server) acceptLoop(ln net.Listener) {
	defer s.accepts.Done()
	for {
		conn, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			s.logger.Debug("accept failed", "error", err)
			time.Sleep(acceptBackoff)
			continue
		}
		if !s.reactor.submit(Event{Type: EventAccept, Conn: conn}) {
			_ = conn.Close()
			return
		}
	}
}
