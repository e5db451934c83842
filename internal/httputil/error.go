package httputil

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Shadowrun-FPS/tournament-service/internal/bracket"
)

func InternalServerError(w http.ResponseWriter, msg string, err error) {
	slog.Error(msg, "error", err)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

func BadRequest(w http.ResponseWriter, msg string, err error) {
	if err != nil {
		slog.Warn("bad request", "message", msg, "error", err)
	} else {
		slog.Warn("bad request", "message", msg)
	}
	http.Error(w, msg, http.StatusBadRequest)
}

func NotFound(w http.ResponseWriter, msg string, err error) {
	if err != nil {
		slog.Warn("not found", "message", msg, "error", err)
	} else {
		slog.Warn("not found", "message", msg)
	}
	http.Error(w, msg, http.StatusNotFound)
}

func Conflict(w http.ResponseWriter, msg string, err error) {
	slog.Warn("conflict", "message", msg, "error", err)
	http.Error(w, msg, http.StatusConflict)
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// DomainError maps the bracket error kinds onto HTTP statuses so handlers
// can pass service errors straight through.
func DomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, bracket.ErrTournamentNotFound),
		errors.Is(err, bracket.ErrMatchNotFound):
		NotFound(w, err.Error(), nil)
	case errors.Is(err, bracket.ErrVersionConflict),
		errors.Is(err, bracket.ErrSlotAlreadyResolved),
		errors.Is(err, bracket.ErrMapConfirmed):
		Conflict(w, err.Error(), nil)
	case errors.Is(err, bracket.ErrInvalidScore),
		errors.Is(err, bracket.ErrScoreTooHigh),
		errors.Is(err, bracket.ErrTiedScore),
		errors.Is(err, bracket.ErrNoWinner),
		errors.Is(err, bracket.ErrInvalidTeam),
		errors.Is(err, bracket.ErrDuplicateTeam),
		errors.Is(err, bracket.ErrWrongTeamCount),
		errors.Is(err, bracket.ErrNotPowerOfTwo),
		errors.Is(err, bracket.ErrMatchNotLive),
		errors.Is(err, bracket.ErrRoundNotComplete):
		BadRequest(w, err.Error(), nil)
	default:
		InternalServerError(w, "unexpected error", err)
	}
}
