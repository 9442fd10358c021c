package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"decision-engine/internal/authz"
	"decision-engine/internal/domain/decision"
	"decision-engine/internal/domain/identity"
	jwtpkg "decision-engine/internal/platform/jwt"
	"decision-engine/internal/worker"
)

type Handler struct {
	decisionSvc *decision.Service
	identitySvc *identity.Service
	jwtMgr      *jwtpkg.Manager
	ballotCh    chan<- worker.BallotEvent
	db          *sql.DB
}

func NewRouter(
	decisionSvc *decision.Service,
	identitySvc *identity.Service,
	jwtMgr *jwtpkg.Manager,
	ballotCh chan<- worker.BallotEvent,
	db *sql.DB,
) http.Handler {
	h := &Handler{
		decisionSvc: decisionSvc,
		identitySvc: identitySvc,
		jwtMgr:      jwtMgr,
		ballotCh:    ballotCh,
		db:          db,
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(60 * time.Second))
	r.Use(RequestLogger)
	r.Use(CORSMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/ready", h.handleReady)
	r.Get("/swagger/*", httpSwagger.WrapHandler)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", h.handleRegister)
		r.Post("/auth/login", h.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(jwtMgr, identitySvc))

			// Who may create, vote on or see a decision is decided by the
			// policy table per decision level, not by router-level gates.
			r.Get("/decisions", h.handleListDecisions)
			r.Post("/decisions", h.handleCreateDecision)
			r.Get("/decisions/{id}", h.handleGetDecision)
			r.Post("/decisions/{id}/open", h.handleOpenDecision)
			r.Post("/decisions/{id}/close", h.handleCloseDecision)
			r.Post("/decisions/{id}/archive", h.handleArchiveDecision)
			r.With(RateLimitBallots(rate.Every(time.Minute/10), 3)).Post("/decisions/{id}/ballots", h.handleCastBallot)
			r.Get("/decisions/{id}/results", h.handleResults)

			r.Group(func(r chi.Router) {
				r.Use(RequireRole(authz.RoleAdmin))
				r.Get("/accounts", h.handleListAccounts)
				r.Patch("/accounts/{id}/role", h.handleUpdateAccountRole)
				r.Patch("/accounts/{id}/deactivate", h.handleDeactivateAccount)
			})
		})
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func parseIDParam(r *http.Request, name string) (int64, error) {
	idStr := chi.URLParam(r, name)
	return strconv.ParseInt(idStr, 10, 64)
}

func (h *Handler) handleReady(w http.ResponseWriter, r *http.Request) {
	if h.db == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error": "database not configured",
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error": "database not ready",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
