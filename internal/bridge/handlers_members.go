package bridge

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/qkariin/queendom/internal/domain"
)

// member resolves the {member} URL parameter, writing the error response
// itself when it fails.
func (h *Handler) member(w http.ResponseWriter, r *http.Request) (*domain.Member, bool) {
	m, err := h.svc.Members.Resolve(r.Context(), chi.URLParam(r, "member"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return nil, false
	}
	return m, true
}

// GetLadder handles GET /api/ladder.
func (h *Handler) GetLadder(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"tiers": h.svc.Promotion.Ladder()})
}

// ListMembers handles GET /api/members.
func (h *Handler) ListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.svc.Members.List(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	now := h.now()
	views := make([]memberView, 0, len(members))
	for _, m := range members {
		views = append(views, newMemberView(m, now))
	}
	writeJSON(w, http.StatusOK, map[string]any{"members": views})
}

// GetMember handles GET /api/members/{member}.
func (h *Handler) GetMember(w http.ResponseWriter, r *http.Request) {
	m, ok := h.member(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, newMemberView(m, h.now()))
}

// Touch handles POST /api/members/{member}/seen.
func (h *Handler) Touch(w http.ResponseWriter, r *http.Request) {
	m, ok := h.member(w, r)
	if !ok {
		return
	}
	if err := h.svc.Members.Touch(r.Context(), m.ID); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetPromotion handles GET /api/members/{member}/promotion.
func (h *Handler) GetPromotion(w http.ResponseWriter, r *http.Request) {
	m, ok := h.member(w, r)
	if !ok {
		return
	}
	report, err := h.svc.Promotion.GetPromotion(r.Context(), m.ID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// Promote handles POST /api/members/{member}/promote.
func (h *Handler) Promote(w http.ResponseWriter, r *http.Request) {
	m, ok := h.member(w, r)
	if !ok {
		return
	}
	report, err := h.svc.Promotion.Promote(r.Context(), m.ID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// GetStreak handles GET /api/members/{member}/streak.
func (h *Handler) GetStreak(w http.ResponseWriter, r *http.Request) {
	m, ok := h.member(w, r)
	if !ok {
		return
	}
	report, err := h.svc.Promotion.Streak(r.Context(), m.ID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
