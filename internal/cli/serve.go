package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/distviz/distviz/pkg/errors"
	"github.com/distviz/distviz/pkg/pipeline"
	"github.com/distviz/distviz/pkg/points"
)

// serveCommand creates the serve command exposing the pipeline over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve [points.csv|points.json]",
		Short: "Serve the rendering pipeline over HTTP",
		Long: `Serve the rendering pipeline over HTTP.

With a points file argument, an interactive distribution page is
pre-rendered and served at /.

Endpoints:

  GET  /          the interactive page (when a points file was given)
  POST /render    render figures from inline point data
  POST /outliers  report outliers for one axis of inline point data
  GET  /figures/{id}/{format}  fetch a rendered figure
  GET  /healthz   liveness probe

Rendered figures are held in memory and addressed by a generated UUID.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			srv := newServer(runner, c.Logger)

			if len(args) == 1 {
				opts := pipeline.Options{
					Input:   args[0],
					Formats: []string{pipeline.FormatHTML},
					Logger:  c.Logger,
				}
				result, err := runner.Execute(cmd.Context(), opts)
				if err != nil {
					return err
				}
				srv.home = result.Artifacts[pipeline.FormatHTML]
				printInfo("Serving %s at http://localhost%s/", args[0], addr)
			}

			return srv.listen(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// server holds the HTTP handlers and the in-memory figure store.
type server struct {
	runner  *pipeline.Runner
	logger  *log.Logger
	home    []byte
	mu      sync.RWMutex
	figures map[string]map[string][]byte
}

func newServer(runner *pipeline.Runner, logger *log.Logger) *server {
	return &server{
		runner:  runner,
		logger:  logger,
		figures: make(map[string]map[string][]byte),
	}
}

func (s *server) listen(ctx context.Context, addr string) error {
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestLogger)

	r.Get("/", s.handleHome)
	r.Get("/healthz", s.handleHealth)
	r.Post("/render", s.handleRender)
	r.Post("/outliers", s.handleOutliers)
	r.Get("/figures/{id}/{format}", s.handleFigure)

	return r
}

// requestLogger tags every request with a UUID, attaches a request-scoped
// logger to the context, and logs the outcome.
func (s *server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := uuid.NewString()
		w.Header().Set("X-Request-Id", id)

		logger := s.logger.With("request_id", id)
		next.ServeHTTP(w, r.WithContext(withLogger(r.Context(), logger)))

		logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start).Round(time.Millisecond))
	})
}

func (s *server) handleHome(w http.ResponseWriter, r *http.Request) {
	if len(s.home) == 0 {
		writeError(w, http.StatusNotFound, errors.New(errors.ErrCodeNotFound, "no points file was served"))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(s.home)
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// renderRequest is the body of POST /render.
type renderRequest struct {
	Points  points.Set       `json:"points"`
	Options pipeline.Options `json:"options"`
}

// renderResponse describes a stored figure.
type renderResponse struct {
	ID       string            `json:"id"`
	DataHash string            `json:"data_hash"`
	Cached   bool              `json:"cached"`
	Figures  map[string]string `json:"figures"`
}

func (s *server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errors.New(errors.ErrCodeInvalidInput, "malformed request body"))
		return
	}
	if err := req.Points.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	opts := req.Options
	opts.Logger = loggerFromContext(r.Context())
	if err := opts.ValidateForRender(); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	dataHash := pipeline.DataHash(req.Points)
	artifacts, cached, err := s.runner.RenderWithCacheInfo(r.Context(), req.Points, dataHash, opts)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	id := uuid.NewString()
	s.mu.Lock()
	s.figures[id] = artifacts
	s.mu.Unlock()
	loggerFromContext(r.Context()).Debug("stored figures",
		"figure_id", id, "formats", len(artifacts), "cached", cached)

	resp := renderResponse{
		ID:       id,
		DataHash: dataHash,
		Cached:   cached,
		Figures:  make(map[string]string, len(artifacts)),
	}
	for format := range artifacts {
		resp.Figures[format] = fmt.Sprintf("/figures/%s/%s", id, format)
	}
	writeJSON(w, http.StatusOK, resp)
}

// outliersRequest is the body of POST /outliers.
type outliersRequest struct {
	Points  points.Set `json:"points"`
	Axis    string     `json:"axis"`
	Refresh bool       `json:"refresh,omitempty"`
}

func (s *server) handleOutliers(w http.ResponseWriter, r *http.Request) {
	var req outliersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errors.New(errors.ErrCodeInvalidInput, "malformed request body"))
		return
	}
	if err := req.Points.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	axes, err := parseAxes(req.Axis)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	reports := make([]*pipeline.OutlierReport, 0, len(axes))
	for _, axis := range axes {
		report, err := s.runner.Outliers(r.Context(), req.Points, axis, req.Refresh)
		if err != nil {
			writeError(w, statusFor(err), err)
			return
		}
		reports = append(reports, report)
	}
	writeJSON(w, http.StatusOK, reports)
}

// figureContentTypes maps formats to response content types.
var figureContentTypes = map[string]string{
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatHTML: "text/html; charset=utf-8",
}

func (s *server) handleFigure(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	format := chi.URLParam(r, "format")

	s.mu.RLock()
	artifacts, ok := s.figures[id]
	s.mu.RUnlock()
	if !ok {
		writeError(w, http.StatusNotFound, errors.New(errors.ErrCodeNotFound, "unknown figure %q", id))
		return
	}
	data, ok := artifacts[format]
	if !ok {
		writeError(w, http.StatusNotFound, errors.New(errors.ErrCodeNotFound, "figure %q has no %s rendering", id, format))
		return
	}

	contentType := figureContentTypes[format]
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// statusFor maps error codes to HTTP status codes.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: errorBody{
		Code:    string(errors.GetCode(err)),
		Message: errors.UserMessage(err),
	}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
