// Package server exposes the supervisor over a loopback HTTP surface:
// status, on/off toggles, and the state indicator icon.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/unprompted/unprompted/internal/statusicon"
	"github.com/unprompted/unprompted/internal/supervisor"
)

// DefaultAddr is loopback-only; the control surface is not meant to be
// reachable off-machine.
const DefaultAddr = "127.0.0.1:7465"

// Controller is the slice of the supervisor the HTTP surface needs.
type Controller interface {
	Start() error
	Stop() error
	Status() supervisor.Status
	Running() bool
}

// Server routes control requests to a Controller.
type Server struct {
	ctrl Controller
	log  zerolog.Logger
	mux  *chi.Mux
}

// New builds the router.
func New(ctrl Controller, log zerolog.Logger) *Server {
	s := &Server{ctrl: ctrl, log: log}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/status", s.handleStatus)
	r.Post("/start", s.handleStart)
	r.Post("/stop", s.handleStop)
	r.Get("/icon.png", s.handleIcon)
	s.mux = r
	return s
}

// Handler returns the HTTP handler for the control surface.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// ListenAndServe serves until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}
	srv := &http.Server{Addr: addr, Handler: s.mux}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.log.Info().Str("addr", addr).Msg("control server listening")

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.ctrl.Status())
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	err := s.ctrl.Start()
	switch {
	case errors.Is(err, supervisor.ErrAlreadyRunning):
		writeJSON(w, http.StatusConflict, s.ctrl.Status())
	case err != nil:
		s.log.Warn().Err(err).Msg("start refused")
		writeJSON(w, http.StatusInternalServerError, s.ctrl.Status())
	default:
		writeJSON(w, http.StatusOK, s.ctrl.Status())
	}
}

func (s *Server) handleStop(w http.ResponseWriter, r *http.Request) {
	if err := s.ctrl.Stop(); err != nil {
		s.log.Warn().Err(err).Msg("stop failed")
		writeJSON(w, http.StatusInternalServerError, s.ctrl.Status())
		return
	}
	writeJSON(w, http.StatusOK, s.ctrl.Status())
}

func (s *Server) handleIcon(w http.ResponseWriter, r *http.Request) {
	size := 64
	if v := r.URL.Query().Get("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 8 || n > 256 {
			http.Error(w, "size must be between 8 and 256", http.StatusBadRequest)
			return
		}
		size = n
	}
	data, err := statusicon.Render(s.ctrl.Running(), size)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(data)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
