package socket

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"

	"github.com/rocketscienceinc/checkers-backend/internal/room"
	"github.com/rocketscienceinc/checkers-backend/internal/usecase"
)

type uGame interface {
	CreateRoom(ctx context.Context) (*usecase.CreatedRoom, error)
	JoinRoom(ctx context.Context, roomID, colorID string) error
	LeaveRoom(ctx context.Context, roomID, colorID string) error

	MakeMove(ctx context.Context, roomID, colorID string, coordinates []string) error
	RequestDraw(ctx context.Context, roomID, colorID string) error
	CancelDraw(ctx context.Context, roomID, colorID string) error

	GetSnapshot(ctx context.Context, roomID string) (room.Snapshot, error)
}

// Server accepts line protocol connections and runs one session per connection.
type Server struct {
	logger    *slog.Logger
	uGame     uGame
	tlsConfig *tls.Config

	mu       sync.Mutex
	conns    map[net.Conn]struct{}
	stopping bool
	wg       sync.WaitGroup
}

func New(logger *slog.Logger, uGame uGame) *Server {
	return &Server{
		logger: logger.With("component", "socket"),
		uGame:  uGame,
		conns:  make(map[net.Conn]struct{}),
	}
}

// WithTLS - wraps every accepted connection in TLS using the PEM certificate and key.
func (that *Server) WithTLS(certFile, keyFile string) error {
	cert, err := tls.LoadX509KeyPair(certFile, keyFile)
	if err != nil {
		return fmt.Errorf("failed to load tls key pair: %w", err)
	}

	that.tlsConfig = &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
	}

	return nil
}

// Start - listens on the port and serves until ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	listener, err := net.Listen("tcp", ":"+port)
	if err != nil {
		return fmt.Errorf("failed to listen on port %s: %w", port, err)
	}

	return that.Serve(ctx, listener)
}

// Serve - accepts connections from listener. Canceling ctx closes the listener and every live connection,
// then waits for the sessions to finish their cleanup.
func (that *Server) Serve(ctx context.Context, listener net.Listener) error {
	log := that.logger.With("method", "Serve")

	if that.tlsConfig != nil {
		listener = tls.NewListener(listener, that.tlsConfig)
	}

	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
		case <-done:
		}

		if err := listener.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			log.Error("failed to close listener", "error", err)
		}
		that.closeConnections()
	}()

	log.Info("socket server started", "addr", listener.Addr().String(), "tls", that.tlsConfig != nil)

	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				that.wg.Wait()
				log.Info("socket server stopped")
				return nil
			}

			return fmt.Errorf("failed to accept connection: %w", err)
		}

		if !that.track(conn) {
			_ = conn.Close()
			continue
		}

		that.wg.Add(1)
		go func() {
			defer that.wg.Done()
			defer that.untrack(conn)

			newSession(that.logger, that.uGame, conn).Run(ctx)
		}()
	}
}

// track - registers a live connection; false once shutdown has begun.
func (that *Server) track(conn net.Conn) bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.stopping {
		return false
	}

	that.conns[conn] = struct{}{}

	return true
}

func (that *Server) untrack(conn net.Conn) {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.conns, conn)
}

func (that *Server) closeConnections() {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.stopping = true
	for conn := range that.conns {
		_ = conn.Close()
	}
}
