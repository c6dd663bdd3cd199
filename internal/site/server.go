package site

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"runtime/debug"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BenedictTTM/qualipro/internal/config"
	"github.com/BenedictTTM/qualipro/internal/content"
	"github.com/BenedictTTM/qualipro/internal/livereload"
	"github.com/BenedictTTM/qualipro/internal/nav"
)

// LiveReloadPath is the development websocket endpoint.
const LiveReloadPath = "/__livereload"

type nonceKey struct{}

// Server serves the site over HTTP.
type Server struct {
	cfg        *config.Config
	store      *content.Store
	renderer   *Renderer
	assets     *Assets
	filter     *Filter
	hub        *livereload.Hub
	log        *zap.Logger
	router     chi.Router
	httpServer *http.Server

	version     atomic.Uint64
	unsubscribe func()
}

// New builds the router. In development mode content changes published to
// store are pushed to open tabs.
func New(cfg *config.Config, store *content.Store, log *zap.Logger) (*Server, error) {
	if log == nil {
		log = zap.NewNop()
	}
	assets, err := LoadAssets()
	if err != nil {
		return nil, err
	}
	renderer, err := NewRenderer(cfg, assets)
	if err != nil {
		return nil, err
	}
	s := &Server{
		cfg:      cfg,
		store:    store,
		renderer: renderer,
		assets:   assets,
		filter:   NewFilter(cfg.Include, cfg.Exclude),
		log:      log,
	}
	if cfg.Dev {
		s.hub = livereload.NewHub(log)
		s.unsubscribe = store.Subscribe(func(*content.Site) {
			s.hub.Broadcast(strconv.FormatUint(s.version.Add(1), 10))
		})
	}
	s.router = s.buildRouter()
	return s, nil
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(s.securityHeaders)
	r.Use(s.recoverer)
	r.Use(middleware.StripSlashes)
	r.Use(middleware.GetHead)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	if s.hub != nil {
		r.Get(LiveReloadPath, s.hub.ServeHTTP)
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(s.cfg.RequestTimeout))

		r.Group(func(r chi.Router) {
			r.Use(cors.Handler(s.corsOptions()))
			r.Get("/static/*", s.assets.ServeHTTP)
			// Preflight requests are answered by the CORS handler.
			r.Options("/static/*", func(http.ResponseWriter, *http.Request) {})
		})

		r.Get("/sitemap.xml", s.handleSitemap)
		r.Get("/robots.txt", s.handleRobots)

		for _, route := range nav.All() {
			r.Get(string(route), s.handlePage(route))
		}
	})

	r.NotFound(s.handleNotFound)
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		s.renderError(w, r, StatusError(http.StatusMethodNotAllowed))
	})

	return r
}

func (s *Server) corsOptions() cors.Options {
	opts := cors.Options{
		AllowedOrigins: s.cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "If-None-Match"},
		MaxAge:         300,
	}
	if s.cfg.CORS.AllowAll {
		opts.AllowedOrigins = []string{"*"}
	}
	return opts
}

// Router returns the configured handler.
func (s *Server) Router() chi.Router { return s.router }

// Start listens on the configured port until Shutdown.
func (s *Server) Start() error {
	addr := s.cfg.Addr()
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	s.log.Info("qualipro server listening", zap.String("addr", addr), zap.Bool("dev", s.cfg.Dev))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	return nil
}

// Shutdown closes live reload connections and drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
	if s.hub != nil {
		s.hub.Close()
	}
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

func (s *Server) options(r *http.Request) RenderOptions {
	opts := RenderOptions{}
	if n, ok := r.Context().Value(nonceKey{}).(string); ok {
		opts.Nonce = n
	}
	if s.hub != nil {
		opts.LiveReload = LiveReloadPath
	}
	return opts
}

func (s *Server) handlePage(route nav.Route) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		if err := s.renderer.Page(&buf, s.store.Site(), route, s.options(r)); err != nil {
			s.log.Error("rendering page", zap.String("route", string(route)), zap.Error(err))
			s.renderError(w, r, Internal(err, debug.Stack(), s.cfg.Dev))
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = buf.WriteTo(w)
	}
}

// handleNotFound serves a file from the public directory when one matches,
// otherwise the 404 page.
func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	if file, ok := s.publicFile(r.URL.Path); ok {
		http.ServeFile(w, r, file)
		return
	}
	s.renderError(w, r, NotFound())
}

func (s *Server) publicFile(urlPath string) (string, bool) {
	if s.cfg.PublicDir == "" {
		return "", false
	}
	rel := strings.TrimPrefix(path.Clean("/"+urlPath), "/")
	if rel == "" || !s.filter.Match(rel) {
		return "", false
	}
	file := filepath.Join(s.cfg.PublicDir, filepath.FromSlash(rel))
	info, err := os.Stat(file)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}
	return file, true
}

func (s *Server) handleSitemap(w http.ResponseWriter, r *http.Request) {
	data, err := s.renderer.SEO().Sitemap()
	if err != nil {
		s.log.Error("building sitemap", zap.Error(err))
		s.renderError(w, r, Internal(err, nil, s.cfg.Dev))
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write(data)
}

func (s *Server) handleRobots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write(s.renderer.SEO().Robots())
}

func (s *Server) renderError(w http.ResponseWriter, r *http.Request, v ErrorView) {
	var buf bytes.Buffer
	if err := s.renderer.Error(&buf, s.store.Site(), v, s.options(r)); err != nil {
		s.log.Error("rendering error page", zap.Int("status", v.Status), zap.Error(err))
		http.Error(w, v.Details, v.Status)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(v.Status)
	_, _ = buf.WriteTo(w)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			s.log.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			)
		}()
		next.ServeHTTP(ww, r)
	})
}

// securityHeaders issues a per-request script nonce and the matching
// Content-Security-Policy.
func (s *Server) securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nonce := uuid.NewString()
		h := w.Header()
		h.Set("Content-Security-Policy", contentSecurityPolicy(nonce))
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), nonceKey{}, nonce)))
	})
}

func contentSecurityPolicy(nonce string) string {
	return strings.Join([]string{
		"default-src 'self'",
		"script-src 'self' 'nonce-" + nonce + "'",
		"style-src 'self' 'unsafe-inline' https://fonts.googleapis.com",
		"font-src 'self' https://fonts.gstatic.com",
		"img-src 'self' data: https:",
		"media-src 'self' https:",
		"connect-src 'self' ws: wss:",
		"frame-ancestors 'none'",
	}, "; ")
}

// recoverer turns a handler panic into the 500 page. The panic value and
// stack are shown only in development.
func (s *Server) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rvr := recover()
			if rvr == nil {
				return
			}
			if rvr == http.ErrAbortHandler {
				panic(rvr)
			}
			stack := debug.Stack()
			err, ok := rvr.(error)
			if !ok {
				err = fmt.Errorf("%v", rvr)
			}
			s.log.Error("panic serving request",
				zap.String("path", r.URL.Path),
				zap.Error(err),
				zap.ByteString("stack", stack),
			)
			s.renderError(w, r, Internal(err, stack, s.cfg.Dev))
		}()
		next.ServeHTTP(w, r)
	})
}
