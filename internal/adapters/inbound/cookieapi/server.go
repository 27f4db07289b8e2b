package cookieapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/sufield/credjar/internal/ports"
)

const (
	// SecureDirectoryPermissions is the socket directory mode when the socket
	// grants no group or other access
	SecureDirectoryPermissions os.FileMode = 0700

	// DefaultSocketPermissions lets the owner and its group connect
	DefaultSocketPermissions os.FileMode = 0770
)

// Server is the cookie API (inbound adapter)
type Server struct {
	store      ports.CredentialStore
	socketPath string
	socketPerm os.FileMode
	logger     *slog.Logger
	httpServer *http.Server
	listener   net.Listener
	wg         sync.WaitGroup
}

// ServerOption configures the cookie API server
type ServerOption func(*Server)

// WithSocketPermissions sets the Unix socket file permissions
func WithSocketPermissions(perm os.FileMode) ServerOption {
	return func(s *Server) {
		s.socketPerm = perm
	}
}

// WithLogger sets a structured logger for the server.
// If logger is nil, uses io.Discard for silent operation
func WithLogger(logger *slog.Logger) ServerOption {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		} else {
			s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		}
	}
}

// NewServer creates a cookie API server for store listening on socketPath
func NewServer(store ports.CredentialStore, socketPath string, opts ...ServerOption) *Server {
	s := &Server{
		store:      store,
		socketPath: socketPath,
		socketPerm: DefaultSocketPermissions,
		logger: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the API router. Requests must carry peer credentials in
// their context, which Start arranges for every accepted connection.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/cookies", s.handleIssue)
		r.Delete("/cookies", s.handleRemoveOwn)
		r.Route("/cookies/{cookie}", func(r chi.Router) {
			r.Get("/", s.handleGet)
			r.Get("/{field}", s.handleField)
			r.Post("/check-group", s.handleCheckGroup)
		})
		r.Get("/lookup", s.handleLookup)
	})
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return r
}

// DirectoryPermissions returns the mode for the socket's parent directory.
// The owner keeps full access. Group and other get search permission, and
// nothing more, exactly when the socket grants them some access, so
// socketPerm alone decides who can connect.
func DirectoryPermissions(socketPerm os.FileMode) os.FileMode {
	perm := SecureDirectoryPermissions
	if socketPerm&0o070 != 0 {
		perm |= 0o010
	}
	if socketPerm&0o007 != 0 {
		perm |= 0o001
	}
	return perm
}

// Start listens on the socket and serves in the background
func (s *Server) Start(ctx context.Context) error {
	if err := checkPlatform(s.logger); err != nil {
		return err
	}

	socketDir := filepath.Dir(s.socketPath)
	dirPerm := DirectoryPermissions(s.socketPerm)
	if err := os.MkdirAll(socketDir, dirPerm); err != nil {
		return fmt.Errorf("failed to create socket directory %q: %w", socketDir, err)
	}
	info, err := os.Stat(socketDir)
	if err != nil {
		return fmt.Errorf("failed to stat socket directory %q: %w", socketDir, err)
	}
	if info.Mode().Perm() != dirPerm {
		if err := os.Chmod(socketDir, dirPerm); err != nil {
			return fmt.Errorf("failed to set directory permissions to %04o: %w", dirPerm, err)
		}
		s.logger.Info("updated socket directory permissions",
			"dir", socketDir,
			"old_perms", fmt.Sprintf("%04o", info.Mode().Perm()),
			"new_perms", fmt.Sprintf("%04o", dirPerm))
	}

	if err := os.RemoveAll(s.socketPath); err != nil {
		return fmt.Errorf("failed to remove existing socket: %w", err)
	}

	var lc net.ListenConfig
	listener, err := lc.Listen(ctx, "unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create Unix socket listener: %w", err)
	}
	if err := os.Chmod(s.socketPath, s.socketPerm); err != nil {
		listener.Close()
		return fmt.Errorf("failed to set socket permissions to %04o: %w", s.socketPerm, err)
	}
	s.listener = newPeerListener(listener, s.logger)

	s.httpServer = &http.Server{
		Handler:      s.Handler(),
		ConnContext:  peerConnContext,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  1 * time.Minute,
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.httpServer.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("cookie API server error", "error", err, "socket", s.socketPath)
		}
	}()

	s.logger.Info("cookie API listening",
		"socket", s.socketPath,
		"permissions", fmt.Sprintf("%04o", s.socketPerm))
	return nil
}

// Stop shuts the server down, waits for the serve goroutine and removes the socket
func (s *Server) Stop(ctx context.Context) error {
	var errs []error

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to shutdown server: %w", err))
		}
	}
	s.wg.Wait()

	if err := os.RemoveAll(s.socketPath); err != nil {
		s.logger.Error("failed to remove socket on stop", "socket", s.socketPath, "error", err)
		errs = append(errs, fmt.Errorf("failed to clean up socket: %w", err))
	}
	return errors.Join(errs...)
}
