package bridge

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/qkariin/queendom/internal/service"
)

type purchaseRequest struct {
	Item string `json:"item"`
	Cost int    `json:"cost"`
}

// CreatePurchase handles POST /api/members/{member}/purchases.
func (h *Handler) CreatePurchase(w http.ResponseWriter, r *http.Request) {
	m, ok := h.member(w, r)
	if !ok {
		return
	}
	var req purchaseRequest
	if !decode(w, r, &req) {
		return
	}
	updated, err := h.svc.Members.Purchase(r.Context(), m.ID, req.Item, req.Cost)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newMemberView(updated, h.now()))
}

// ListPurchases handles GET /api/members/{member}/purchases.
func (h *Handler) ListPurchases(w http.ResponseWriter, r *http.Request) {
	m, ok := h.member(w, r)
	if !ok {
		return
	}
	purchases, err := h.svc.Members.Purchases(r.Context(), m.ID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	views := make([]purchaseView, 0, len(purchases))
	for _, p := range purchases {
		views = append(views, newPurchaseView(p))
	}
	writeJSON(w, http.StatusOK, map[string]any{"purchases": views})
}

// GetTask handles GET /api/members/{member}/task. A member without an
// active task gets a null task.
func (h *Handler) GetTask(w http.ResponseWriter, r *http.Request) {
	m, ok := h.member(w, r)
	if !ok {
		return
	}
	task, err := h.svc.Tasks.Current(r.Context(), m.ID)
	if errors.Is(err, service.ErrNoActiveTask) {
		writeJSON(w, http.StatusOK, map[string]any{"task": nil})
		return
	}
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"task": newTaskView(task, h.now())})
}

// DrawTask handles POST /api/members/{member}/task.
func (h *Handler) DrawTask(w http.ResponseWriter, r *http.Request) {
	m, ok := h.member(w, r)
	if !ok {
		return
	}
	task, err := h.svc.Tasks.Draw(r.Context(), m.ID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newTaskView(task, h.now()))
}

// SkipTask handles POST /api/members/{member}/task/skip.
func (h *Handler) SkipTask(w http.ResponseWriter, r *http.Request) {
	m, ok := h.member(w, r)
	if !ok {
		return
	}
	task, err := h.svc.Tasks.Skip(r.Context(), m.ID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newTaskView(task, h.now()))
}

type atoneRequest struct {
	TaskID string `json:"task_id"`
}

// AtoneTask handles POST /api/members/{member}/task/atone. An empty body or
// task_id atones the latest failure.
func (h *Handler) AtoneTask(w http.ResponseWriter, r *http.Request) {
	m, ok := h.member(w, r)
	if !ok {
		return
	}
	var req atoneRequest
	if r.ContentLength != 0 && !decode(w, r, &req) {
		return
	}
	task, err := h.svc.Tasks.Atone(r.Context(), m.ID, req.TaskID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newTaskView(task, h.now()))
}

// ListTasks handles GET /api/members/{member}/tasks.
func (h *Handler) ListTasks(w http.ResponseWriter, r *http.Request) {
	m, ok := h.member(w, r)
	if !ok {
		return
	}
	tasks, err := h.svc.Tasks.History(r.Context(), m.ID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	now := h.now()
	views := make([]taskView, 0, len(tasks))
	for _, t := range tasks {
		views = append(views, newTaskView(t, now))
	}
	writeJSON(w, http.StatusOK, map[string]any{"tasks": views})
}

// ExpireTasks handles POST /api/tasks/expire.
func (h *Handler) ExpireTasks(w http.ResponseWriter, r *http.Request) {
	expired, err := h.svc.Tasks.ExpireOverdue(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	now := h.now()
	views := make([]taskView, 0, len(expired))
	for _, t := range expired {
		views = append(views, newTaskView(t, now))
	}
	writeJSON(w, http.StatusOK, map[string]any{"expired": views})
}

// ListQueue handles GET /api/members/{member}/queue.
func (h *Handler) ListQueue(w http.ResponseWriter, r *http.Request) {
	m, ok := h.member(w, r)
	if !ok {
		return
	}
	items, err := h.svc.Tasks.Queue(r.Context(), m.ID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	views := make([]queueItemView, 0, len(items))
	for _, it := range items {
		views = append(views, newQueueItemView(it))
	}
	writeJSON(w, http.StatusOK, map[string]any{"queue": views})
}

type enqueueRequest struct {
	Text string `json:"text"`
}

// Enqueue handles POST /api/members/{member}/queue.
func (h *Handler) Enqueue(w http.ResponseWriter, r *http.Request) {
	m, ok := h.member(w, r)
	if !ok {
		return
	}
	var req enqueueRequest
	if !decode(w, r, &req) {
		return
	}
	item, err := h.svc.Tasks.Enqueue(r.Context(), m.ID, req.Text)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newQueueItemView(item))
}

// Dequeue handles DELETE /api/members/{member}/queue/{item}.
func (h *Handler) Dequeue(w http.ResponseWriter, r *http.Request) {
	m, ok := h.member(w, r)
	if !ok {
		return
	}
	if err := h.svc.Tasks.Dequeue(r.Context(), m.ID, chi.URLParam(r, "item")); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
