package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/qkariin/queendom/internal/db"
	"github.com/qkariin/queendom/internal/repository"
	"github.com/qkariin/queendom/internal/testutil"
)

// testNow is a Tuesday at 10:00 UTC, well past the 06:00 duty-day start.
var testNow = time.Date(2025, 6, 10, 10, 0, 0, 0, time.UTC)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingObserver) names() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]string, len(o.events))
	for i, e := range o.events {
		out[i] = e.Name
	}
	return out
}

type fixture struct {
	database    *sql.DB
	members     *repository.SQLiteMemberRepo
	submissions *repository.SQLiteSubmissionRepo
	purchases   *repository.SQLitePurchaseRepo
	tasks       *repository.SQLiteTaskRepo
	queue       *repository.SQLiteQueueRepo
	uow         db.UnitOfWork
	clock       *fakeClock
	settings    Settings
	observer    *recordingObserver
}

func setupFixture(t *testing.T) *fixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	clock := &fakeClock{t: testNow}
	settings := DefaultSettings()
	settings.Location = time.UTC
	settings.Now = clock.Now
	return &fixture{
		database:    database,
		members:     repository.NewSQLiteMemberRepo(database),
		submissions: repository.NewSQLiteSubmissionRepo(database),
		purchases:   repository.NewSQLitePurchaseRepo(database),
		tasks:       repository.NewSQLiteTaskRepo(database),
		queue:       repository.NewSQLiteQueueRepo(database),
		uow:         testutil.NewTestUoW(database),
		clock:       clock,
		settings:    settings,
		observer:    &recordingObserver{},
	}
}

func (f *fixture) memberService() MemberService {
	return NewMemberService(f.members, f.purchases, f.uow, f.settings, f.observer)
}

func (f *fixture) submissionService() SubmissionService {
	return NewSubmissionService(f.submissions, f.uow, f.settings, f.observer)
}

func (f *fixture) kneelService() KneelService {
	return NewKneelService(f.members, f.uow, f.settings, f.observer)
}

func (f *fixture) promotionService() PromotionService {
	return NewPromotionService(f.members, f.submissions, f.uow, f.settings, f.observer)
}

func (f *fixture) taskService() TaskService {
	return NewTaskService(f.tasks, f.queue, f.uow, f.settings, f.observer)
}
