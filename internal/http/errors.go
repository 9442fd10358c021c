package api

import (
	"database/sql"
	"errors"
	"net/http"

	"decision-engine/internal/domain/ballot"
	"decision-engine/internal/domain/decision"
	"decision-engine/internal/domain/identity"
	"decision-engine/internal/platform/apperr"
)

func errorResponse(w http.ResponseWriter, err error) {
	appErr := mapError(err)
	body := map[string]string{"error": appErr.Code}
	if appErr.Message != "" {
		body["details"] = appErr.Message
	}
	writeJSON(w, appErr.StatusCode(), body)
}

func mapError(err error) *apperr.AppError {
	if err == nil {
		return apperr.Internal("internal error", "", nil)
	}

	var appErr *apperr.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var ve *ballot.ValidationError
	if errors.As(err, &ve) {
		return apperr.BadRequest("validation failed", ve.Error(), err)
	}

	switch {
	case errors.Is(err, decision.ErrPermissionDenied):
		// Exact body contract: {"error":"permission denied"}, no detail that
		// could leak whether the role was denied or simply unknown.
		return apperr.Forbidden("permission denied", "", err)
	case errors.Is(err, decision.ErrNotFound), errors.Is(err, sql.ErrNoRows):
		return apperr.NotFound("not found", "", err)
	case errors.Is(err, ballot.ErrAlreadyVoted):
		return apperr.Conflict("already voted", "", err)
	case errors.Is(err, decision.ErrClosed):
		return apperr.Conflict("decision closed", "", err)
	case errors.Is(err, decision.ErrResultsNotAvailable):
		return apperr.Conflict("results not available", "", err)
	case errors.Is(err, decision.ErrInvalidTransition):
		return apperr.Conflict("invalid transition", "", err)
	case errors.Is(err, identity.ErrInvalidCredentials):
		return apperr.Unauthorized("invalid credentials", "", err)
	case errors.Is(err, identity.ErrEmailTaken):
		return apperr.BadRequest("email already taken", "", err)
	case errors.Is(err, identity.ErrInvalidRole):
		return apperr.BadRequest("invalid role", "", err)
	default:
		return apperr.Internal("internal error", "", err)
	}
}
