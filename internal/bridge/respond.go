package bridge

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/qkariin/queendom/internal/domain"
	"github.com/qkariin/queendom/internal/repository"
	"github.com/qkariin/queendom/internal/service"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]any{
			"message": message,
			"type":    http.StatusText(status),
			"code":    status,
		},
	})
}

// writeServiceError maps use-case sentinels onto HTTP status codes.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", "path", r.URL.Path, "err", err)
		writeError(w, status, "internal error")
		return
	}
	writeError(w, status, err.Error())
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrKneelLocked),
		errors.Is(err, domain.ErrAlreadyReviewed),
		errors.Is(err, domain.ErrNothingToClaim),
		errors.Is(err, service.ErrAmbiguousMember),
		errors.Is(err, domain.ErrInsufficientCoins),
		errors.Is(err, domain.ErrTaskActive),
		errors.Is(err, domain.ErrNoActiveTask),
		errors.Is(err, domain.ErrNotAtonable):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrUnknownReward),
		errors.Is(err, domain.ErrEmptyTask):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// decode reads a JSON body, rejecting unknown fields. It writes the 400
// itself and reports whether the handler may continue.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}
