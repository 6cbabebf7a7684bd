package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/wordcloud/pkg/buildinfo"
	"github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/pipeline"
	"github.com/matzehuels/wordcloud/pkg/wordcloud"
)

const (
	// DefaultMaxBodyBytes limits request bodies.
	DefaultMaxBodyBytes = 4 << 20

	// DefaultTimeout bounds one request, including layout.
	DefaultTimeout = 60 * time.Second

	// DefaultMaxWords caps the words a request may lay out.
	DefaultMaxWords = 1000
)

// Server serves the HTTP API.
type Server struct {
	runner   *pipeline.Runner
	log      *log.Logger
	maxBody  int64
	timeout  time.Duration
	maxWords int
}

// Option configures a Server.
type Option func(*Server)

// WithMaxBodyBytes sets the request body limit.
func WithMaxBodyBytes(n int64) Option { return func(s *Server) { s.maxBody = n } }

// WithTimeout sets the per-request deadline.
func WithTimeout(d time.Duration) Option { return func(s *Server) { s.timeout = d } }

// WithMaxWords caps the number of words per request.
func WithMaxWords(n int) Option { return func(s *Server) { s.maxWords = n } }

// New creates a server around runner. A nil logger discards output.
func New(runner *pipeline.Runner, logger *log.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{
		runner:   runner,
		log:      logger,
		maxBody:  DefaultMaxBodyBytes,
		timeout:  DefaultTimeout,
		maxWords: DefaultMaxWords,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.instrument)
	r.Use(middleware.Recoverer)
	r.Use(s.deadline)

	r.Get("/healthz", s.health)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/layout", s.layout)
		r.Post("/render/{format}", s.render)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, r, errors.New(errors.ErrCodeNotFound, "no route for %s %s", r.Method, r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody(r, errors.ErrCodeInvalidInput, "method not allowed"))
	})
	return r
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully, letting in-flight requests finish.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.log.Info("listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.log.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Version: buildinfo.Get().Version})
}

// layoutResponse is the body of a successful layout request.
type layoutResponse struct {
	wordcloud.Cloud
	Stats layoutStats `json:"stats"`
}

type layoutStats struct {
	Words    int     `json:"words"`
	Placed   int     `json:"placed"`
	Unplaced int     `json:"unplaced"`
	Cached   bool    `json:"cached"`
	Millis   float64 `json:"duration_ms"`
}

func (s *Server) layout(w http.ResponseWriter, r *http.Request) {
	var req pipeline.Options
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	opts := s.options(req)

	start := time.Now()
	words, err := s.runner.Read(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	cloud, hit, err := s.runner.LayoutWithCacheInfo(r.Context(), words, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	unplaced := cloud.UnplacedCount()
	writeJSON(w, http.StatusOK, layoutResponse{
		Cloud: cloud,
		Stats: layoutStats{
			Words:    len(words),
			Placed:   len(cloud.Words) - unplaced,
			Unplaced: unplaced,
			Cached:   hit,
			Millis:   float64(time.Since(start).Microseconds()) / 1000,
		},
	})
}

// renderRequest is a layout request that may carry a finished layout.
type renderRequest struct {
	pipeline.Options
	Layout *wordcloud.Cloud `json:"layout,omitempty"`
}

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatJSON: "application/json",
}

func (s *Server) render(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}

	var req renderRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	opts := s.options(req.Options)
	opts.Formats = []string{format}

	var cloud wordcloud.Cloud
	if req.Layout != nil {
		if err := req.Layout.Canvas.Validate(); err != nil {
			s.writeError(w, r, err)
			return
		}
		cloud = *req.Layout
	} else {
		words, err := s.runner.Read(r.Context(), opts)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		if cloud, err = s.runner.Layout(r.Context(), words, opts); err != nil {
			s.writeError(w, r, err)
			return
		}
	}

	artifacts, err := s.runner.Render(r.Context(), cloud, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifacts[format])
}

// decode reads a JSON body into v, rejecting unknown fields.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body")
	}
	return nil
}

// options applies server-side limits to request options. Server paths are
// never taken from a request.
func (s *Server) options(o pipeline.Options) pipeline.Options {
	o.Input = ""
	o.Font = ""
	o.Logger = s.log
	if s.maxWords > 0 && (o.MaxWords == 0 || o.MaxWords > s.maxWords) {
		o.MaxWords = s.maxWords
	}
	return o
}
