// Package server hosts the chat endpoint: one fixed listen address, one
// websocket route, and at most one live dialogue session at a time.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/coder/websocket"
	"github.com/go-chi/chi/v5"

	"github.com/ryuvi/carchat/chat/catalog"
	"github.com/ryuvi/carchat/chat/dialogue"
	coreconfig "github.com/ryuvi/carchat/core/config"
	"github.com/ryuvi/carchat/core/logger"
)

// Server owns the HTTP listener and the record set shared by sessions.
type Server struct {
	cfg     coreconfig.ServerConfig
	catalog *catalog.Catalog

	// baseCtx outlives individual requests; websocket connections are
	// hijacked, so http.Server.Shutdown alone would never end them.
	baseCtx context.Context

	// busy enforces the single live session per process.
	busy atomic.Bool
}

// New builds a server over an already loaded catalog.
func New(cfg coreconfig.ServerConfig, cat *catalog.Catalog) *Server {
	return &Server{cfg: cfg, catalog: cat}
}

// Run binds the listen address and serves until ctx is cancelled, then
// shuts the listener down and waits for the active session to release its
// socket.
func (s *Server) Run(ctx context.Context) error {
	s.baseCtx = ctx

	router := chi.NewRouter()
	router.Get(s.cfg.WSPath, s.handleWS)

	httpSrv := &http.Server{
		Addr:    s.cfg.Listen,
		Handler: router,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- httpSrv.ListenAndServe()
	}()

	logger.SRV.Info("server listening",
		slog.String("event", "listen"),
		slog.String("addr", s.cfg.Listen),
		slog.String("path", s.cfg.WSPath),
		slog.Int("cars", s.catalog.Len()),
	)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	logger.SRV.Info("server shutting down", slog.String("event", "shutdown"))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		logger.SRV.Error("accept failed",
			slog.String("event", "accept"),
			slog.String("remote", r.RemoteAddr),
			slog.String("err", err.Error()),
		)
		return
	}

	if !s.busy.CompareAndSwap(false, true) {
		conn.Close(websocket.StatusPolicyViolation, "another session is active")
		return
	}
	defer s.busy.Store(false)

	logger.SRV.Info("session opened",
		slog.String("event", "session.open"),
		slog.String("remote", r.RemoteAddr),
	)

	conv := dialogue.NewConversation(s.catalog, s.catalog)
	session := NewSession(conn, conv, s.cfg.PollInterval())
	if err := session.Run(s.baseCtx); err != nil && !errors.Is(err, context.Canceled) {
		logger.SRV.Warn("session ended with error",
			slog.String("event", "session.close"),
			slog.String("remote", r.RemoteAddr),
			slog.String("err", err.Error()),
		)
		return
	}

	logger.SRV.Info("session closed",
		slog.String("event", "session.close"),
		slog.String("remote", r.RemoteAddr),
	)
}
