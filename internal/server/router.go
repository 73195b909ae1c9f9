// Package server exposes the info and download API over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path"
	"path/filepath"

	"ytproxy/internal/blocking"
	"ytproxy/internal/domain/consts"
	"ytproxy/internal/downloads"
	"ytproxy/internal/models"
	"ytproxy/internal/utils/logging"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// InfoRunner fetches raw yt-dlp metadata for a URL.
type InfoRunner interface {
	Run(ctx context.Context, base models.ArgList, url string) ([]byte, error)
}

// Downloader streams a download into a sink.
type Downloader interface {
	Stream(ctx context.Context, req *models.DownloadRequest, sink downloads.Sink) error
}

// Options holds the server dependencies.
type Options struct {
	Base      *models.BaseConfig
	Info      InfoRunner
	Downloads Downloader
	Tracker   *downloads.Tracker
	Blocks    *blocking.Registry
	StaticDir string
}

// Server serves the API and the web UI.
type Server struct {
	base      *models.BaseConfig
	info      InfoRunner
	dl        Downloader
	tracker   *downloads.Tracker
	blocks    *blocking.Registry
	staticDir string
}

// New returns a server from opts.
func New(opts Options) *Server {
	if opts.Base == nil {
		opts.Base = &models.BaseConfig{}
	}
	if opts.Tracker == nil {
		opts.Tracker = downloads.NewTracker()
	}
	return &Server{
		base:      opts.Base,
		info:      opts.Info,
		dl:        opts.Downloads,
		tracker:   opts.Tracker,
		blocks:    opts.Blocks,
		staticDir: opts.StaticDir,
	}
}

// Handler returns the http Handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{Logger: logging.StdLogger(), NoColor: true}))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"Content-Disposition", "Content-Length"},
	}))

	// --- API Routes ---
	r.Route("/api", func(r chi.Router) {
		r.Post("/info", s.handleInfo)
		r.Post("/download", s.handleDownload)
		r.Get("/health", s.handleHealth)
	})

	// --- Static Frontend ---
	if s.staticDir != "" {
		r.Handle("/*", StaticHandler(s.staticDir))
	}

	return r
}

// ListenAndServe listens on addr and serves until ctx ends.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx ends.
//
// On shutdown running downloads are killed and in-flight request contexts are
// cancelled before waiting up to consts.ShutdownTimeout for handlers to return.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	reqCtx, cancelRequests := context.WithCancel(context.Background())
	defer cancelRequests()

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: consts.ReadHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return reqCtx },
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	logging.S("ytproxy server running on http://%s", ln.Addr())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logging.I("Shutting down server...")
	if n := s.tracker.KillAll(); n > 0 {
		logging.I("Killed %d running download(s)", n)
	}
	cancelRequests()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), consts.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		if !errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("server shutdown: %w", err)
		}
		logging.W("Handlers still running after %v, closing connections", consts.ShutdownTimeout)
		if err := srv.Close(); err != nil {
			logging.E("Failed to close server: %v", err)
		}
	}
	return nil
}

// StaticHandler serves the compiled web UI, answering unknown paths with index.html.
func StaticHandler(dir string) http.Handler {
	fs := http.FileServer(http.Dir(dir))
	index := filepath.Join(dir, consts.IndexFile)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := path.Clean("/" + r.URL.Path)
		if p != "/" {
			if fi, err := os.Stat(filepath.Join(dir, filepath.FromSlash(p))); err == nil && !fi.IsDir() {
				fs.ServeHTTP(w, r)
				return
			}
		}
		http.ServeFile(w, r, index)
	})
}
