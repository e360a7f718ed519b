package bridge

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/qkariin/queendom/internal/domain"
	"github.com/qkariin/queendom/internal/repository"
	"github.com/qkariin/queendom/internal/streak"
)

type submissionRequest struct {
	Kind     string `json:"kind"`
	ProofURL string `json:"proof_url"`
	Note     string `json:"note"`
	// SubmittedAt accepts any timestamp form a submission record may carry;
	// empty means now.
	SubmittedAt string `json:"submitted_at"`
}

// CreateSubmission handles POST /api/members/{member}/submissions.
func (h *Handler) CreateSubmission(w http.ResponseWriter, r *http.Request) {
	m, ok := h.member(w, r)
	if !ok {
		return
	}
	var req submissionRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Kind == "" {
		req.Kind = string(domain.SubmissionRoutine)
	}
	if !domain.ValidSubmissionKinds[req.Kind] {
		writeError(w, http.StatusUnprocessableEntity, "kind must be routine or task")
		return
	}

	sub := &domain.Submission{
		MemberID: m.ID,
		Kind:     domain.SubmissionKind(req.Kind),
		ProofURL: req.ProofURL,
		Note:     req.Note,
	}
	if req.SubmittedAt != "" {
		at, ok := streak.ParseTimestamp(req.SubmittedAt, h.loc)
		if !ok {
			writeError(w, http.StatusBadRequest, "unrecognized submitted_at")
			return
		}
		sub.SubmittedAt = at
	}

	if err := h.svc.Submissions.Record(r.Context(), sub); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newSubmissionView(sub))
}

// ListSubmissions handles GET /api/members/{member}/submissions?kind=&status=.
func (h *Handler) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	m, ok := h.member(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	subs, err := h.svc.Submissions.ListByMember(r.Context(), m.ID, repository.SubmissionFilter{
		Kind:   domain.SubmissionKind(q.Get("kind")),
		Status: domain.SubmissionStatus(q.Get("status")),
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"submissions": newSubmissionViews(subs)})
}

// ListPending handles GET /api/submissions/pending.
func (h *Handler) ListPending(w http.ResponseWriter, r *http.Request) {
	subs, err := h.svc.Submissions.ListPending(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"submissions": newSubmissionViews(subs)})
}

type reviewRequest struct {
	Status string `json:"status"`
}

// ReviewSubmission handles POST /api/submissions/{id}/review.
func (h *Handler) ReviewSubmission(w http.ResponseWriter, r *http.Request) {
	var req reviewRequest
	if !decode(w, r, &req) {
		return
	}
	if !domain.ValidReviewStatuses[req.Status] {
		writeError(w, http.StatusUnprocessableEntity, "status must be approve, reject or fail")
		return
	}
	sub, err := h.svc.Submissions.Review(r.Context(), chi.URLParam(r, "id"), domain.SubmissionStatus(req.Status))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newSubmissionView(sub))
}
