package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"decision-engine/internal/authz"
	"decision-engine/internal/domain/ballot"
	"decision-engine/internal/domain/decision"
	"decision-engine/internal/platform/apperr"
)

type optionRequest struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

type createDecisionRequest struct {
	Scope            decision.Scope  `json:"scope"`
	Level            string          `json:"level"`
	VotingMethod     string          `json:"voting_method"`
	Options          []optionRequest `json:"options"`
	MaxSelections    int             `json:"max_selections"`
	ResultVisibility string          `json:"result_visibility"`
	PreviewAt        *string         `json:"preview_at"`
	OpensAt          string          `json:"opens_at"`
	ClosesAt         string          `json:"closes_at"`
}

// @Summary     Create a decision
// @Tags        decisions
// @Security    BearerAuth
// @Accept      json
// @Param       request  body      createDecisionRequest  true  "Decision definition"
// @Success     201      {object}  map[string]int64
// @Failure     400      {object}  map[string]string  "invalid body"
// @Failure     403      {object}  map[string]string  "permission denied"
// @Router      /api/v1/decisions [post]
func (h *Handler) handleCreateDecision(w http.ResponseWriter, r *http.Request) {
	var req createDecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, apperr.BadRequest("validation failed", "invalid body", err))
		return
	}

	opensAt := parseTimePtr(&req.OpensAt)
	closesAt := parseTimePtr(&req.ClosesAt)
	if opensAt == nil || closesAt == nil {
		errorResponse(w, apperr.BadRequest("validation failed", "opens_at and closes_at must be RFC3339 timestamps", nil))
		return
	}

	opts := make([]decision.Option, 0, len(req.Options))
	for _, o := range req.Options {
		opts = append(opts, decision.Option{ID: o.ID, Label: o.Label})
	}

	in := decision.CreateInput{
		Scope:            req.Scope,
		Level:            authz.Level(req.Level),
		VotingMethod:     ballot.Method(req.VotingMethod),
		Options:          opts,
		MaxSelections:    req.MaxSelections,
		ResultVisibility: decision.Visibility(req.ResultVisibility),
		PreviewAt:        parseTimePtr(req.PreviewAt),
		OpensAt:          *opensAt,
		ClosesAt:         *closesAt,
	}

	d, err := h.decisionSvc.Create(r.Context(), callerFromCtx(r), in)
	if err != nil {
		errorResponse(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"id": d.ID})
}

func (h *Handler) handleListDecisions(w http.ResponseWriter, r *http.Request) {
	statusParam := r.URL.Query().Get("status")
	var status *decision.Status
	if statusParam != "" {
		s, ok := decision.ParseStatus(statusParam)
		if !ok {
			errorResponse(w, apperr.BadRequest("validation failed", "unknown status", nil))
			return
		}
		status = &s
	}
	decisions, err := h.decisionSvc.List(r.Context(), status)
	if err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, decisions)
}

func (h *Handler) handleGetDecision(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, apperr.BadRequest("validation failed", "invalid decision id", err))
		return
	}

	d, err := h.decisionSvc.Get(r.Context(), id)
	if err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (h *Handler) handleOpenDecision(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.decisionSvc.Open)
}

func (h *Handler) handleCloseDecision(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.decisionSvc.Close)
}

func (h *Handler) handleArchiveDecision(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.decisionSvc.Archive)
}

func (h *Handler) transition(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, caller decision.Caller, id int64) error) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, apperr.BadRequest("validation failed", "invalid decision id", err))
		return
	}
	if err := fn(r.Context(), callerFromCtx(r), id); err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// @Summary     Decision results
// @Tags        decisions
// @Security    BearerAuth
// @Produce     json
// @Param       id   path      int64  true  "Decision ID"
// @Success     200  {object}  tally.Result
// @Failure     403  {object}  map[string]string  "permission denied"
// @Failure     404  {object}  map[string]string  "not found"
// @Failure     409  {object}  map[string]string  "results not available"
// @Router      /api/v1/decisions/{id}/results [get]
func (h *Handler) handleResults(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, apperr.BadRequest("validation failed", "invalid decision id", err))
		return
	}

	res, err := h.decisionSvc.Results(r.Context(), callerFromCtx(r), id)
	if err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func parseTimePtr(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, *s)
	if err != nil {
		return nil
	}
	return &t
}
