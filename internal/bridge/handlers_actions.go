package bridge

import (
	"context"
	"net/http"

	"github.com/qkariin/queendom/internal/domain"
)

type adjustRequest struct {
	Delta int `json:"delta"`
}

type adjustFunc func(ctx context.Context, id string, delta int) (*domain.Member, error)

func (h *Handler) adjust(w http.ResponseWriter, r *http.Request, apply adjustFunc) {
	m, ok := h.member(w, r)
	if !ok {
		return
	}
	var req adjustRequest
	if !decode(w, r, &req) {
		return
	}
	updated, err := apply(r.Context(), m.ID, req.Delta)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newMemberView(updated, h.now()))
}

// AdjustPoints handles POST /api/members/{member}/points.
func (h *Handler) AdjustPoints(w http.ResponseWriter, r *http.Request) {
	h.adjust(w, r, h.svc.Members.AdjustPoints)
}

// AdjustCoins handles POST /api/members/{member}/coins.
func (h *Handler) AdjustCoins(w http.ResponseWriter, r *http.Request) {
	h.adjust(w, r, h.svc.Members.AdjustCoins)
}

// AdjustKneel handles POST /api/members/{member}/kneels.
func (h *Handler) AdjustKneel(w http.ResponseWriter, r *http.Request) {
	h.adjust(w, r, h.svc.Members.AdjustKneel)
}

// GetKneelStatus handles GET /api/members/{member}/kneel.
func (h *Handler) GetKneelStatus(w http.ResponseWriter, r *http.Request) {
	m, ok := h.member(w, r)
	if !ok {
		return
	}
	status, err := h.svc.Kneel.Status(r.Context(), m.ID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

// FinishKneel handles POST /api/members/{member}/kneel. The host calls it
// once the hold completes.
func (h *Handler) FinishKneel(w http.ResponseWriter, r *http.Request) {
	m, ok := h.member(w, r)
	if !ok {
		return
	}
	updated, err := h.svc.Kneel.Finish(r.Context(), m.ID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newMemberView(updated, h.now()))
}

type claimRequest struct {
	Choice string `json:"choice"`
}

// ClaimKneelReward handles POST /api/members/{member}/kneel/reward.
func (h *Handler) ClaimKneelReward(w http.ResponseWriter, r *http.Request) {
	m, ok := h.member(w, r)
	if !ok {
		return
	}
	var req claimRequest
	if !decode(w, r, &req) {
		return
	}
	updated, err := h.svc.Kneel.ClaimReward(r.Context(), m.ID, domain.RewardChoice(req.Choice))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newMemberView(updated, h.now()))
}
