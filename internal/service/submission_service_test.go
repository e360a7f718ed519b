package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qkariin/queendom/internal/domain"
	"github.com/qkariin/queendom/internal/repository"
	"github.com/qkariin/queendom/internal/testutil"
)

func TestSubmissionRecord_FillsDefaults(t *testing.T) {
	f := setupFixture(t)
	svc := f.submissionService()
	ctx := context.Background()

	m := testutil.NewTestMember("Proof")
	require.NoError(t, f.members.Create(ctx, m))

	sub := &domain.Submission{MemberID: m.ID, Kind: domain.SubmissionRoutine, ProofURL: "https://cdn/p.jpg"}
	require.NoError(t, svc.Record(ctx, sub))

	assert.NotEmpty(t, sub.ID)
	assert.Equal(t, domain.SubmissionPending, sub.Status)
	assert.True(t, testNow.Equal(sub.SubmittedAt))

	got, err := svc.GetByID(ctx, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn/p.jpg", got.ProofURL)
}

func TestSubmissionRecord_Validation(t *testing.T) {
	f := setupFixture(t)
	svc := f.submissionService()
	ctx := context.Background()

	err := svc.Record(ctx, &domain.Submission{MemberID: "x", Kind: "selfie"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid submission kind")

	err = svc.Record(ctx, &domain.Submission{MemberID: "ghost", Kind: domain.SubmissionTask})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSubmissionReview_ApprovedTaskCountsOnce(t *testing.T) {
	f := setupFixture(t)
	svc := f.submissionService()
	ctx := context.Background()

	m := testutil.NewTestMember("Worker", testutil.WithStats(4, 0, 0, 0))
	require.NoError(t, f.members.Create(ctx, m))
	task := testutil.NewTestSubmission(m.ID, testNow, testutil.WithKind(domain.SubmissionTask))
	require.NoError(t, f.submissions.Create(ctx, task))

	reviewed, err := svc.Review(ctx, task.ID, domain.SubmissionApproved)
	require.NoError(t, err)
	assert.Equal(t, domain.SubmissionApproved, reviewed.Status)

	got, err := f.members.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.CompletedTasks)

	_, err = svc.Review(ctx, task.ID, domain.SubmissionRejected)
	assert.ErrorIs(t, err, ErrAlreadyReviewed)

	got, err = f.members.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.CompletedTasks)
}

func TestSubmissionReview_RoutineAndRejectionsDoNotCountTasks(t *testing.T) {
	f := setupFixture(t)
	svc := f.submissionService()
	ctx := context.Background()

	m := testutil.NewTestMember("Routine")
	require.NoError(t, f.members.Create(ctx, m))
	routine := testutil.NewTestSubmission(m.ID, testNow)
	failed := testutil.NewTestSubmission(m.ID, testNow, testutil.WithKind(domain.SubmissionTask))
	require.NoError(t, f.submissions.Create(ctx, routine))
	require.NoError(t, f.submissions.Create(ctx, failed))

	_, err := svc.Review(ctx, routine.ID, domain.SubmissionApproved)
	require.NoError(t, err)
	_, err = svc.Review(ctx, failed.ID, domain.SubmissionFailed)
	require.NoError(t, err)

	got, err := f.members.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.CompletedTasks)

	pending, err := svc.ListPending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestSubmissionReview_InvalidStatus(t *testing.T) {
	f := setupFixture(t)
	svc := f.submissionService()
	ctx := context.Background()

	m := testutil.NewTestMember("Bad")
	require.NoError(t, f.members.Create(ctx, m))
	s := testutil.NewTestSubmission(m.ID, testNow)
	require.NoError(t, f.submissions.Create(ctx, s))

	_, err := svc.Review(ctx, s.ID, domain.SubmissionPending)
	assert.Error(t, err)
}

func TestSubmissionReview_RollsBackOnMemberWriteFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	members := repository.NewSQLiteMemberRepo(database)
	subs := repository.NewSQLiteSubmissionRepo(database)
	ctx := context.Background()

	m := testutil.NewTestMember("Rollback")
	require.NoError(t, members.Create(ctx, m))
	task := testutil.NewTestSubmission(m.ID, testNow, testutil.WithKind(domain.SubmissionTask))
	require.NoError(t, subs.Create(ctx, task))

	injected := errors.New("disk full")
	uow := &testutil.FailOnNthExecUoW{DB: database, FailOn: 2, Err: injected}
	settings := DefaultSettings()
	settings.Now = func() time.Time { return testNow }
	svc := NewSubmissionService(subs, uow, settings)

	_, err := svc.Review(ctx, task.ID, domain.SubmissionApproved)
	assert.ErrorIs(t, err, injected)

	got, err := subs.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SubmissionPending, got.Status, "review must roll back with the member update")
}

func TestSubmissionListByMember(t *testing.T) {
	f := setupFixture(t)
	svc := f.submissionService()
	ctx := context.Background()

	m := testutil.NewTestMember("Lister")
	require.NoError(t, f.members.Create(ctx, m))
	for i := 0; i < 3; i++ {
		require.NoError(t, f.submissions.Create(ctx, testutil.NewTestSubmission(m.ID, testNow.AddDate(0, 0, -i))))
	}

	list, err := svc.ListByMember(ctx, m.ID, repository.SubmissionFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 3)
}
