package web

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/hpungsan/jotter/internal/config"
	"github.com/hpungsan/jotter/internal/logger"
	"github.com/hpungsan/jotter/internal/store"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

// NewServer creates and configures the HTTP server for the Jotter web UI.
func NewServer(st *store.Store, cfg *config.Config, log *logger.Logger, version string) (*http.Server, error) {
	log = log.With(zap.String("component", "web"))

	// Create sub-FS for templates (strip "templates/" prefix)
	templateSub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		return nil, fmt.Errorf("template sub-FS: %w", err)
	}

	// Create sub-FS for static files (strip "static/" prefix)
	staticSub, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("static sub-FS: %w", err)
	}

	h := &Handlers{
		st:       st,
		cfg:      cfg,
		renderer: NewRenderer(templateSub, version, log),
	}

	return &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.WebBind, cfg.WebPort),
		Handler:           requestLogger(log, appHandler(h, staticSub)),
		ReadHeaderTimeout: 10 * time.Second,
	}, nil
}

func routes(h *Handlers, staticSub fs.FS) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/notes", http.StatusFound)
	})
	mux.HandleFunc("GET /notes", h.HandleList)
	mux.HandleFunc("POST /notes", h.HandleCreate)
	mux.HandleFunc("GET /notes/new", h.HandleNew)
	mux.HandleFunc("GET /notes/{id}", h.HandleDetail)
	mux.HandleFunc("POST /notes/{id}", h.HandleUpdate)
	mux.HandleFunc("GET /notes/{id}/edit", h.HandleEdit)
	mux.HandleFunc("POST /notes/{id}/pin", h.HandlePin)
	mux.HandleFunc("DELETE /notes/{id}", h.HandleDelete)
	mux.HandleFunc("POST /notes/{id}/delete", h.HandleDelete)
	mux.HandleFunc("GET /notes/{id}/export", h.HandleExport)
	mux.HandleFunc("GET /categories", h.HandleCategories)
	mux.HandleFunc("POST /categories", h.HandleAddCategory)
	mux.HandleFunc("POST /theme", h.HandleTheme)

	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(staticSub)))

	return mux
}

// appHandler is the routed UI behind the browser-facing guards. Cross-origin
// POST and DELETE requests are refused with 403 so another site cannot submit
// the note forms on the user's behalf.
func appHandler(h *Handlers, staticSub fs.FS) http.Handler {
	return securityHeaders(http.NewCrossOriginProtection().Handler(routes(h, staticSub)))
}

// securityHeaders adds security-related HTTP headers to all responses.
// Note content may carry inline styles from the editor; scripts stay blocked.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Security-Policy", "default-src 'self'; script-src 'none'; style-src 'self' 'unsafe-inline'; img-src 'self' data:")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the response status for the access log.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// requestLogger tags each request with an id, carries the logger in the
// request context and writes one access log line per request.
func requestLogger(log *logger.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := ulid.Make().String()

		ctx := logger.NewContext(r.Context(), log)
		ctx = logger.WithFields(ctx, zap.String("request_id", requestID))
		w.Header().Set("X-Request-Id", requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r.WithContext(ctx))

		log.Info(ctx, "http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, srv *http.Server, log *logger.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	log.Info(ctx, "jotter UI running", zap.String("url", "http://"+srv.Addr))

	if strings.HasPrefix(srv.Addr, "0.0.0.0") || strings.Contains(srv.Addr, "::") {
		log.Warn(ctx, "server is binding to all interfaces and may be accessible from the network")
	}

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info(ctx, "shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
