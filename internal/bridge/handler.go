// Package bridge exposes the member, kneeling, submission, promotion and task
// use cases as a small JSON API for the host page.
package bridge

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"github.com/qkariin/queendom/internal/app"
)

// Options tune the bridge. Zero values fall back to defaults.
type Options struct {
	Logger *slog.Logger
	// RateLimit is requests per second across all clients; 0 disables limiting.
	RateLimit float64
	// Location reads zone-less submission timestamps.
	Location *time.Location
	Now      func() time.Time
}

// Handler holds all API handler state.
type Handler struct {
	svc     app.Services
	logger  *slog.Logger
	limiter *rate.Limiter
	loc     *time.Location
	now     func() time.Time
}

func NewHandler(svc app.Services, opts Options) *Handler {
	h := &Handler{
		svc:    svc,
		logger: opts.Logger,
		loc:    opts.Location,
		now:    opts.Now,
	}
	if h.logger == nil {
		h.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if h.loc == nil {
		h.loc = time.Local
	}
	if h.now == nil {
		h.now = time.Now
	}
	if opts.RateLimit > 0 {
		burst := int(opts.RateLimit)
		if burst < 1 {
			burst = 1
		}
		h.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}
	return h
}

// Router builds a chi router with the common middleware and all routes mounted.
func (h *Handler) Router() *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(h.requestLog)
	r.Use(h.rateLimit)
	h.Routes(r)
	return r
}

// Routes mounts the API endpoints.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/ladder", h.GetLadder)

		r.Get("/members", h.ListMembers)
		r.Route("/members/{member}", func(r chi.Router) {
			r.Get("/", h.GetMember)
			r.Post("/seen", h.Touch)

			r.Get("/promotion", h.GetPromotion)
			r.Post("/promote", h.Promote)
			r.Get("/streak", h.GetStreak)

			r.Post("/points", h.AdjustPoints)
			r.Post("/coins", h.AdjustCoins)
			r.Post("/kneels", h.AdjustKneel)

			r.Get("/kneel", h.GetKneelStatus)
			r.Post("/kneel", h.FinishKneel)
			r.Post("/kneel/reward", h.ClaimKneelReward)

			r.Get("/submissions", h.ListSubmissions)
			r.Post("/submissions", h.CreateSubmission)

			r.Get("/purchases", h.ListPurchases)
			r.Post("/purchases", h.CreatePurchase)

			r.Get("/task", h.GetTask)
			r.Post("/task", h.DrawTask)
			r.Post("/task/skip", h.SkipTask)
			r.Post("/task/atone", h.AtoneTask)
			r.Get("/tasks", h.ListTasks)

			r.Get("/queue", h.ListQueue)
			r.Post("/queue", h.Enqueue)
			r.Delete("/queue/{item}", h.Dequeue)
		})

		r.Get("/submissions/pending", h.ListPending)
		r.Post("/submissions/{id}/review", h.ReviewSubmission)
		r.Post("/tasks/expire", h.ExpireTasks)
	})
}
