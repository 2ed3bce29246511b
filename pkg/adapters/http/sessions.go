package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/session"
	"github.com/go-chi/chi/v5"
)

// maxStepsPerCall caps the n parameter of the step endpoint.
const maxStepsPerCall = 10_000

// WithSessions enables the /sessions endpoints backed by m.
func WithSessions(m *session.Manager) Option {
	return func(s *Server) {
		s.sessions = m
	}
}

// StepResponse is returned by POST /sessions/{id}/step.
type StepResponse struct {
	Steps   []domain.StepEvent `json:"steps"`
	Session session.Info       `json:"session"`
	Tape    string             `json:"tape"`
}

func (s *Server) sessionRoutes(r chi.Router) {
	r.Get("/", s.ListSessions)
	r.Post("/", s.StartSession)
	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", s.GetSession)
		r.Delete("/", s.DeleteSession)
		r.Post("/step", s.StepSession)
	})
}

// StartSession handles POST /sessions. With ?program=name the session runs a
// stored program, otherwise the body holds the program document.
func (s *Server) StartSession(w http.ResponseWriter, r *http.Request) {
	var (
		p   *domain.Program
		err error
	)
	if name := r.URL.Query().Get("program"); name != "" {
		p, err = s.Engine.Store().Load(r.Context(), name)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, domain.ErrProgramNotFound) {
				status = http.StatusNotFound
			}
			s.fail(w, status, "load failed", err)
			return
		}
	} else {
		p, err = decodeProgram(w, r)
		if err != nil {
			s.fail(w, http.StatusBadRequest, "invalid program", err)
			return
		}
		if p.Name == "" {
			p.Name = "anonymous"
		}
	}

	info, err := s.sessions.Start(r.Context(), p)
	switch {
	case err == nil:
	case errors.Is(err, session.ErrTooManySessions):
		s.fail(w, http.StatusTooManyRequests, "session limit reached", err)
		return
	default:
		s.fail(w, http.StatusBadRequest, "invalid program", err)
		return
	}
	s.logger.Info("session started", "session_id", info.ID, "program", p.Name)
	writeJSON(w, http.StatusCreated, info)
}

// ListSessions handles GET /sessions.
func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"sessions": s.sessions.List()})
}

// GetSession handles GET /sessions/{id}.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	info, err := s.sessions.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.sessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

// StepSession handles POST /sessions/{id}/step?n=N.
func (s *Server) StepSession(w http.ResponseWriter, r *http.Request) {
	n := 1
	if raw := r.URL.Query().Get("n"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 || v > maxStepsPerCall {
			s.fail(w, http.StatusBadRequest, "invalid n",
				fmt.Errorf("n must be between 1 and %d, got %q", maxStepsPerCall, raw))
			return
		}
		n = v
	}

	results, info, err := s.sessions.Step(r.Context(), chi.URLParam(r, "id"), n)
	if err != nil {
		s.sessionError(w, err)
		return
	}

	resp := StepResponse{
		Steps:   make([]domain.StepEvent, 0, len(results)),
		Session: info,
		Tape:    domain.FormatTape(info.Snapshot.Tape),
	}
	for _, res := range results {
		resp.Steps = append(resp.Steps, res.Event())
	}
	writeJSON(w, http.StatusOK, resp)
}

// DeleteSession handles DELETE /sessions/{id}.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.sessionError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) sessionError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrSessionNotFound) {
		s.fail(w, http.StatusNotFound, "session not found", err)
		return
	}
	s.fail(w, http.StatusInternalServerError, "session failed", err)
}
