package repository

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qkariin/queendom/internal/testutil"
)

func newMemberRepo(t *testing.T) *SQLiteMemberRepo {
	t.Helper()
	return NewSQLiteMemberRepo(testutil.NewTestDB(t))
}

func TestMemberRepo_CreateAndGetByID(t *testing.T) {
	repo := newMemberRepo(t)
	ctx := context.Background()
	kneel := time.Date(2025, 6, 1, 8, 30, 0, 0, time.UTC)

	m := testutil.NewTestMember("Marcus",
		testutil.WithTitle("Pet"),
		testutil.WithProfilePicture("https://cdn/me.png"),
		testutil.WithDisclosures(),
		testutil.WithStats(3, 10, 500, 1200),
		testutil.WithCoins(75),
		testutil.WithStoredStreak(4),
		testutil.WithLastKneel(kneel),
	)
	m.Routine = "Morning Inspection"
	require.NoError(t, repo.Create(ctx, m))

	got, err := repo.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "Marcus", got.Name)
	assert.Equal(t, "Pet", got.Title)
	assert.Equal(t, "https://cdn/me.png", got.ProfilePicture)
	assert.Equal(t, "no marks", got.Limits)
	assert.Equal(t, "HALL BOY", got.Hierarchy)
	assert.Equal(t, "Morning Inspection", got.Routine)
	assert.Equal(t, 3, got.CompletedTasks)
	assert.Equal(t, 10, got.KneelCount)
	assert.Equal(t, 500, got.Points)
	assert.Equal(t, 1200, got.TotalSpent)
	assert.Equal(t, 75, got.Coins)
	assert.Equal(t, 4, got.RoutineStreak)
	require.NotNil(t, got.LastKneelAt)
	assert.True(t, kneel.Equal(*got.LastKneelAt))
	assert.Nil(t, got.LastSeenAt)
	assert.True(t, m.CreatedAt.Equal(got.CreatedAt))
	assert.True(t, m.JoinedAt.Equal(got.JoinedAt))
}

func TestMemberRepo_GetByID_NotFound(t *testing.T) {
	repo := newMemberRepo(t)

	_, err := repo.GetByID(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemberRepo_FindByIDPrefix(t *testing.T) {
	repo := newMemberRepo(t)
	ctx := context.Background()

	m := testutil.NewTestMember("Prefix")
	require.NoError(t, repo.Create(ctx, m))
	require.NoError(t, repo.Create(ctx, testutil.NewTestMember("Other")))

	found, err := repo.FindByIDPrefix(ctx, m.ID[:8])
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, m.ID, found[0].ID)
}

func TestMemberRepo_FindByIDPrefix_Literal(t *testing.T) {
	repo := newMemberRepo(t)
	ctx := context.Background()

	m := testutil.NewTestMember("Only")
	require.NoError(t, repo.Create(ctx, m))

	for _, ref := range []string{"%", "_", m.ID[:7] + "_", "", m.ID[:4] + "%"} {
		found, err := repo.FindByIDPrefix(ctx, ref)
		require.NoError(t, err)
		assert.Empty(t, found, "prefix %q", ref)
	}

	// The dash in a uuid still matches literally.
	found, err := repo.FindByIDPrefix(ctx, m.ID[:9])
	require.NoError(t, err)
	assert.Len(t, found, 1)
}

func TestMemberRepo_FindByName(t *testing.T) {
	repo := newMemberRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestMember("Marcus")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestMember("", testutil.WithTitle("Pet"))))

	found, err := repo.FindByName(ctx, "  MARCUS ")
	require.NoError(t, err)
	assert.Len(t, found, 1)

	found, err = repo.FindByName(ctx, "pet")
	require.NoError(t, err)
	assert.Len(t, found, 1)

	found, err = repo.FindByName(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestMemberRepo_ListOrdersByPoints(t *testing.T) {
	repo := newMemberRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestMember("Low", testutil.WithStats(0, 0, 10, 0))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestMember("High", testutil.WithStats(0, 0, 900, 0))))

	members, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, "High", members[0].Name)
	assert.Equal(t, "Low", members[1].Name)
}

func TestMemberRepo_Update(t *testing.T) {
	repo := newMemberRepo(t)
	ctx := context.Background()

	m := testutil.NewTestMember("Before")
	require.NoError(t, repo.Create(ctx, m))

	seen := time.Now().UTC().Truncate(time.Second)
	m.Name = "After"
	m.Hierarchy = "FOOTMAN"
	m.Points = 1234
	m.LastSeenAt = &seen
	m.UpdatedAt = seen
	require.NoError(t, repo.Update(ctx, m))

	got, err := repo.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "After", got.Name)
	assert.Equal(t, "FOOTMAN", got.Hierarchy)
	assert.Equal(t, 1234, got.Points)
	require.NotNil(t, got.LastSeenAt)
	assert.True(t, seen.Equal(*got.LastSeenAt))
}

func TestMemberRepo_Update_NotFound(t *testing.T) {
	repo := newMemberRepo(t)
	m := testutil.NewTestMember("Ghost")

	err := repo.Update(context.Background(), m)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemberRepo_Update_RejectsNegativeKneels(t *testing.T) {
	repo := newMemberRepo(t)
	ctx := context.Background()
	m := testutil.NewTestMember("Neg")
	require.NoError(t, repo.Create(ctx, m))

	m.KneelCount = -1
	err := repo.Update(ctx, m)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "updating member"))
}

func TestMemberRepo_Delete(t *testing.T) {
	repo := newMemberRepo(t)
	ctx := context.Background()
	m := testutil.NewTestMember("Doomed")
	require.NoError(t, repo.Create(ctx, m))

	require.NoError(t, repo.Delete(ctx, m.ID))
	_, err := repo.GetByID(ctx, m.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, m.ID), ErrNotFound)
}
