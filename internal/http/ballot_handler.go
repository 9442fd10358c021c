package api

import (
	"encoding/json"
	"net/http"

	"decision-engine/internal/domain/ballot"
	"decision-engine/internal/domain/decision"
	"decision-engine/internal/platform/apperr"
	"decision-engine/internal/worker"
)

type castBallotRequest struct {
	// Optional; when present it must match the authenticated caller.
	VoterID int64           `json:"voter_id"`
	Payload json.RawMessage `json:"payload"`
}

// @Summary     Cast a ballot
// @Tags        ballots
// @Security    BearerAuth
// @Accept      json
// @Param       id       path      int64              true  "Decision ID"
// @Param       request  body      castBallotRequest  true  "Ballot payload"
// @Success     201      {object}  map[string]bool
// @Failure     400      {object}  map[string]string  "invalid payload"
// @Failure     403      {object}  map[string]string  "permission denied"
// @Failure     409      {object}  map[string]string  "already voted or decision closed"
// @Router      /api/v1/decisions/{id}/ballots [post]
func (h *Handler) handleCastBallot(w http.ResponseWriter, r *http.Request) {
	decisionID, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, apperr.BadRequest("validation failed", "invalid decision id", err))
		return
	}

	var req castBallotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, apperr.BadRequest("validation failed", "invalid body", err))
		return
	}
	if len(req.Payload) == 0 {
		errorResponse(w, apperr.BadRequest("validation failed", "payload is required", nil))
		return
	}

	caller := callerFromCtx(r)
	// A caller may only ever cast their own ballot.
	if req.VoterID != 0 && req.VoterID != caller.ID {
		errorResponse(w, decision.ErrPermissionDenied)
		return
	}

	d, err := h.decisionSvc.Get(r.Context(), decisionID)
	if err != nil {
		errorResponse(w, err)
		return
	}

	payload, err := ballot.DecodePayload(d.VotingMethod, req.Payload)
	if err != nil {
		errorResponse(w, err)
		return
	}

	if err := h.decisionSvc.CastBallot(r.Context(), caller, decisionID, payload); err != nil {
		errorResponse(w, err)
		return
	}

	select {
	case h.ballotCh <- worker.BallotEvent{DecisionID: decisionID, VotingMethod: string(d.VotingMethod)}:
	default:
	}

	writeJSON(w, http.StatusCreated, map[string]any{"ok": true})
}
