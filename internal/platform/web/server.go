// Package web serves the runner over WebSocket. Each connection owns a
// simulation driven on the server; the browser sends intents and draws the
// snapshots it receives.
package web

import (
	"context"
	"embed"
	"errors"
	"io"
	"io/fs"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/resume-run/internal/config"
	"github.com/vovakirdan/resume-run/internal/content"
	"github.com/vovakirdan/resume-run/internal/registry"
	"github.com/vovakirdan/resume-run/internal/storage"
	"github.com/vovakirdan/resume-run/internal/world"
)

//go:embed static
var staticFiles embed.FS

const maxPlayerName = 24

// Config holds configuration for the WebSocket server.
type Config struct {
	Address string

	// WorldID is the default world; clients may pick another with ?world=.
	WorldID string

	Tuning  config.Tuning
	Content content.Bundle
	Store   *storage.Store // nil disables run records

	TickRate int

	// SnapshotEvery sends one snapshot per this many frames.
	SnapshotEvery int

	Logger *log.Logger
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Address:       ":8080",
		WorldID:       world.DefaultID,
		Tuning:        config.DefaultTuning(),
		Content:       content.Default(),
		TickRate:      60,
		SnapshotEvery: 2,
	}
}

// Server accepts WebSocket sessions.
type Server struct {
	config   Config
	logger   *log.Logger
	upgrader websocket.Upgrader

	mu       sync.Mutex
	sessions map[uint64]*session
	nextID   atomic.Uint64
	wg       sync.WaitGroup
}

// NewServer creates a server. The default world must be registered.
func NewServer(cfg Config) (*Server, error) {
	if !registry.Exists(cfg.WorldID) {
		return nil, errors.New("web: unknown world " + cfg.WorldID)
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	if cfg.SnapshotEvery <= 0 {
		cfg.SnapshotEvery = 1
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Server{
		config: cfg,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		sessions: make(map[uint64]*session),
	}, nil
}

// Handler returns the HTTP routes: the client page, /ws and /healthz.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	static, err := fs.Sub(staticFiles, "static")
	if err == nil {
		mux.Handle("/", http.FileServer(http.FS(static)))
	}
	mux.HandleFunc("/ws", s.HandleWebSocket)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

// HandleWebSocket upgrades the request and runs a session until the client
// disconnects.
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	worldID := r.URL.Query().Get("world")
	if worldID == "" {
		worldID = s.config.WorldID
	}
	def, err := registry.Get(worldID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	id := s.nextID.Add(1)
	player := playerName(r.URL.Query().Get("name"))
	sess := newSession(s, id, conn, def, player)

	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()
	s.wg.Add(1)

	s.logger.Info("session started", "id", id, "player", player, "world", def.ID, "remote", r.RemoteAddr)
	sess.run(r.Context())
	s.logger.Info("session ended", "id", id, "player", player)

	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	s.wg.Done()
}

// Sessions returns the number of connected clients.
func (s *Server) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting web server", "address", s.config.Address, "world", s.config.WorldID)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	s.closeSessions()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.wg.Wait()
	return nil
}

func (s *Server) closeSessions() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sess := range s.sessions {
		sess.close(websocket.CloseGoingAway, "server shutting down")
	}
}

// playerName sanitizes the name a client asked for.
func playerName(raw string) string {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "guest"
	}
	runes := []rune(name)
	if len(runes) > maxPlayerName {
		name = string(runes[:maxPlayerName])
	}
	return name
}
