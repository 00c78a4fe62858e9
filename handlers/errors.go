// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/onomate/agents"
	"github.com/danielhkuo/onomate/auth"
	"github.com/danielhkuo/onomate/db"
	"github.com/danielhkuo/onomate/facilitator"
	"github.com/danielhkuo/onomate/middleware"
	"github.com/danielhkuo/onomate/models"
	"github.com/danielhkuo/onomate/scoring"
)

// writeError maps domain errors onto HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	var unavailable *agents.UnavailableError
	switch {
	case errors.As(err, &unavailable):
		slog.Warn("collaborator unavailable", "agent", unavailable.Agent, "error", unavailable.Err)
		middleware.RetryableErrorResponse(w, http.StatusServiceUnavailable, unavailable.Agent+" is unavailable, please try again")
	case errors.Is(err, auth.ErrInvalidFounderToken):
		middleware.ErrorResponse(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, db.ErrSessionNotFound),
		errors.Is(err, facilitator.ErrUnknownSuggestion):
		middleware.ErrorResponse(w, http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrSessionCompleted),
		errors.Is(err, models.ErrPhaseRegression),
		errors.Is(err, facilitator.ErrNotConverging),
		errors.Is(err, facilitator.ErrNotVoting):
		middleware.ErrorResponse(w, http.StatusConflict, err.Error())
	case errors.Is(err, facilitator.ErrEmptyMessage),
		errors.Is(err, models.ErrInvalidFounder),
		errors.Is(err, models.ErrInvalidReaction),
		errors.Is(err, scoring.ErrEmptyName):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error("request failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal error")
	}
}
