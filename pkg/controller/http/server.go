package http

import (
	"context"
	"net/http"

	"github.com/deskline-lab/vaani/pkg/domain/model/session"
	"github.com/deskline-lab/vaani/pkg/domain/types"
	"github.com/deskline-lab/vaani/pkg/usecase"
	"github.com/go-chi/chi/v5"
)

// UseCase is the slice of the dialog engine the HTTP surface needs.
type UseCase interface {
	HandleTurn(ctx context.Context, input usecase.TurnInput) (*usecase.TurnResult, error)
	GetSession(ctx context.Context, id types.SessionID) (*session.Session, error)
}

type Server struct {
	router *chi.Mux
}

func New(uc UseCase) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
	}

	r.Use(loggingMiddleware)
	r.Use(panicRecoveryMiddleware)

	r.Get("/health", healthHandler)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/turn", turnHandler(uc))
		r.Get("/sessions/{id}", getSessionHandler(uc))
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
