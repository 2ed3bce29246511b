package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/presentation/graph"
	"github.com/aretw0/turing/internal/validator"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/loader"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/aretw0/turing/pkg/runner"
	"github.com/aretw0/turing/pkg/session"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// Engine defines what the server needs from the turing engine.
type Engine interface {
	Store() ports.ProgramStore
	Run(ctx context.Context, p *domain.Program, opts ...runner.Option) (runner.Result, error)
}

// Server serves the program store and runs programs over HTTP.
type Server struct {
	Engine Engine

	// MaxSteps caps the max_steps query parameter. Zero leaves the engine bound in charge.
	MaxSteps int

	logger   *slog.Logger
	gatherer prometheus.Gatherer
	sessions *session.Manager
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetrics exposes g on GET /metrics.
func WithMetrics(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// WithMaxSteps caps client requested step limits.
func WithMaxSteps(n int) Option {
	return func(s *Server) {
		s.MaxSteps = n
	}
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	s := &Server{Engine: engine}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	r := chi.NewRouter()
	r.Get("/healthz", s.GetHealth)
	r.Get("/info", s.GetInfo)
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	r.Post("/run", s.RunProgram)
	r.Route("/programs", func(r chi.Router) {
		r.Get("/", s.ListPrograms)
		r.Route("/{name}", func(r chi.Router) {
			r.Get("/", s.GetProgram)
			r.Put("/", s.PutProgram)
			r.Delete("/", s.DeleteProgram)
			r.Post("/run", s.RunStored)
			r.Get("/graph", s.GetGraph)
		})
	})
	if s.sessions != nil {
		r.Route("/sessions", s.sessionRoutes)
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RunResponse is the body returned by the run endpoints.
type RunResponse struct {
	Program  string             `json:"program"`
	Halted   bool               `json:"halted"`
	Steps    int                `json:"steps"`
	State    domain.State       `json:"state"`
	Position int                `json:"position"`
	Symbol   domain.Symbol      `json:"symbol"`
	Tape     string             `json:"tape"`
	Trace    []domain.StepEvent `json:"trace,omitempty"`
	Error    string             `json:"error,omitempty"`
}

// SaveResponse is returned by PUT /programs/{name}.
type SaveResponse struct {
	Name   string            `json:"name"`
	Issues []validator.Issue `json:"issues,omitempty"`
}

type errorResponse struct {
	Error  string            `json:"error"`
	Issues []validator.Issue `json:"issues,omitempty"`
}

// GetHealth handles GET /healthz.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"app":     "turing-http",
		"version": turing.Version,
	})
}

// RunProgram handles POST /run with a program document in the body.
func (s *Server) RunProgram(w http.ResponseWriter, r *http.Request) {
	p, err := decodeProgram(w, r)
	if err != nil {
		s.fail(w, http.StatusBadRequest, "invalid program", err)
		return
	}
	if p.Name == "" {
		p.Name = "anonymous"
	}
	s.run(w, r, p)
}

// RunStored handles POST /programs/{name}/run.
func (s *Server) RunStored(w http.ResponseWriter, r *http.Request) {
	p, ok := s.load(w, r)
	if !ok {
		return
	}
	s.run(w, r, p)
}

func (s *Server) run(w http.ResponseWriter, r *http.Request, p *domain.Program) {
	var opts []runner.Option
	limit, err := s.stepLimit(r)
	if err != nil {
		s.fail(w, http.StatusBadRequest, "invalid max_steps", err)
		return
	}
	if limit > 0 {
		opts = append(opts, runner.WithMaxSteps(limit))
	}

	var rec *runner.Recorder
	if r.URL.Query().Get("trace") == "true" {
		rec = &runner.Recorder{}
		opts = append(opts, runner.WithHandler(rec))
	}

	res, err := s.Engine.Run(r.Context(), p, opts...)
	if err != nil && res.Snapshot.Tape == nil {
		// The machine could not be built.
		s.fail(w, http.StatusBadRequest, "invalid program", err)
		return
	}

	resp := RunResponse{
		Program:  p.Name,
		Halted:   res.Halted,
		Steps:    res.Steps,
		State:    res.Snapshot.State,
		Position: res.Snapshot.Position,
		Symbol:   res.Snapshot.Symbol(),
		Tape:     domain.FormatTape(res.Snapshot.Tape),
	}
	if rec != nil {
		resp.Trace = rec.Events()
	}

	status := http.StatusOK
	if err != nil {
		resp.Error = err.Error()
		status = http.StatusUnprocessableEntity
		if !errors.Is(err, runner.ErrStepLimit) {
			status = http.StatusServiceUnavailable
		}
		s.logger.Warn("run stopped", "program", p.Name, "steps", res.Steps, "error", err)
	}
	writeJSON(w, status, resp)
}

// stepLimit reads max_steps, clamped to the server cap.
func (s *Server) stepLimit(r *http.Request) (int, error) {
	limit := s.MaxSteps
	raw := r.URL.Query().Get("max_steps")
	if raw == "" {
		return limit, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("max_steps must be a positive integer, got %q", raw)
	}
	if limit == 0 || n < limit {
		limit = n
	}
	return limit, nil
}

// ListPrograms handles GET /programs.
func (s *Server) ListPrograms(w http.ResponseWriter, r *http.Request) {
	names, err := s.Engine.Store().List(r.Context())
	if err != nil {
		s.fail(w, http.StatusInternalServerError, "list failed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"programs": names})
}

// GetProgram handles GET /programs/{name}.
func (s *Server) GetProgram(w http.ResponseWriter, r *http.Request) {
	p, ok := s.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// PutProgram handles PUT /programs/{name}. The name in the path wins over the body.
// Programs with error-level validation issues are rejected.
func (s *Server) PutProgram(w http.ResponseWriter, r *http.Request) {
	p, err := decodeProgram(w, r)
	if err != nil {
		s.fail(w, http.StatusBadRequest, "invalid program", err)
		return
	}
	p.Name = chi.URLParam(r, "name")
	if err := ports.ValidateName(p.Name); err != nil {
		s.fail(w, http.StatusBadRequest, "invalid name", err)
		return
	}

	report := validator.Validate(p)
	if err := report.Err(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid program", Issues: report.Issues})
		return
	}

	if err := s.Engine.Store().Save(r.Context(), p); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrInvalidProgram) {
			status = http.StatusBadRequest
		}
		s.fail(w, status, "save failed", err)
		return
	}
	s.logger.Info("program saved", "program", p.Name, "rules", len(p.Rules))
	writeJSON(w, http.StatusOK, SaveResponse{Name: p.Name, Issues: report.Issues})
}

// DeleteProgram handles DELETE /programs/{name}.
func (s *Server) DeleteProgram(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := s.Engine.Store().Delete(r.Context(), name); err != nil {
		if errors.Is(err, domain.ErrInvalidName) {
			s.fail(w, http.StatusBadRequest, "invalid name", err)
			return
		}
		s.fail(w, http.StatusInternalServerError, "delete failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetGraph handles GET /programs/{name}/graph and returns Mermaid source.
// implicit=true adds the undefined pairs as edges to Halt.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	p, ok := s.load(w, r)
	if !ok {
		return
	}
	out := graph.GenerateMermaid(p.Rules, graph.Options{
		Initial:       p.InitialState,
		ImplicitHalts: r.URL.Query().Get("implicit") == "true",
	})
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, out)
}

func (s *Server) load(w http.ResponseWriter, r *http.Request) (*domain.Program, bool) {
	name := chi.URLParam(r, "name")
	p, err := s.Engine.Store().Load(r.Context(), name)
	switch {
	case err == nil:
		return p, true
	case errors.Is(err, domain.ErrProgramNotFound):
		s.fail(w, http.StatusNotFound, "program not found", err)
	case errors.Is(err, domain.ErrInvalidName):
		s.fail(w, http.StatusBadRequest, "invalid name", err)
	default:
		s.fail(w, http.StatusInternalServerError, "load failed", err)
	}
	return nil, false
}

func (s *Server) fail(w http.ResponseWriter, status int, msg string, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.Error(msg, "error", err)
	} else {
		s.logger.Debug(msg, "error", err)
	}
	writeJSON(w, status, errorResponse{Error: fmt.Sprintf("%s: %v", msg, err)})
}

func decodeProgram(w http.ResponseWriter, r *http.Request) (*domain.Program, error) {
	raw := map[string]any{}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&raw); err != nil {
		return nil, err
	}
	return loader.DecodeProgram(raw)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
