package cli

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qkariin/queendom/internal/app"
	"github.com/qkariin/queendom/internal/config"
	"github.com/qkariin/queendom/internal/domain"
	"github.com/qkariin/queendom/internal/repository"
	"github.com/qkariin/queendom/internal/service"
	"github.com/qkariin/queendom/internal/testutil"
)

var cmdNow = time.Date(2025, 6, 10, 10, 0, 0, 0, time.UTC)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// plain strips terminal styling so assertions see the text only.
func plain(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) *App {
	t.Helper()
	settings := service.DefaultSettings()
	settings.Location = time.UTC
	settings.Now = func() time.Time { return cmdNow }

	svc := app.NewServices(testutil.NewTestDB(t), settings)
	return &App{
		Members:     svc.Members,
		Submissions: svc.Submissions,
		Kneel:       svc.Kneel,
		Promotion:   svc.Promotion,
		Tasks:       svc.Tasks,
		Config: config.Config{
			KneelCooldownMin: 60,
			KneelHoldMS:      2000,
			RewardCoins:      10,
			RewardPoints:     50,
			RateLimitRPS:     100,
		},
		Location: time.UTC,
		Now:      func() time.Time { return cmdNow },
	}
}

func executeCmd(t *testing.T, a *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(a)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return plain(buf.String()), err
}

func seedMember(t *testing.T, a *App, name string, opts ...testutil.MemberOption) *domain.Member {
	t.Helper()
	m := testutil.NewTestMember(name, opts...)
	require.NoError(t, a.Members.Create(context.Background(), m))
	return m
}

func TestMemberAdd_WithFlags(t *testing.T) {
	a := testApp(t)

	out, err := executeCmd(t, a, "member", "add", "--name", "Alice", "--rank", "footman")
	require.NoError(t, err)
	assert.Contains(t, out, "Created member Alice")
	assert.Contains(t, out, "as FOOTMAN")

	members, err := a.Members.List(context.Background())
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "FOOTMAN", members[0].Hierarchy)
}

func TestMemberAdd_DefaultsToFirstTier(t *testing.T) {
	a := testApp(t)

	out, err := executeCmd(t, a, "member", "add", "--title", "Pet")
	require.NoError(t, err)
	assert.Contains(t, out, "as HALL BOY")
}

func TestMemberAdd_RequiresNameWhenNotInteractive(t *testing.T) {
	a := testApp(t)

	_, err := executeCmd(t, a, "member", "add")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--name or --title is required")
}

func TestMemberAdd_UnknownRank(t *testing.T) {
	a := testApp(t)

	_, err := executeCmd(t, a, "member", "add", "--name", "Alice", "--rank", "emperor")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown rank "emperor"`)
}

func TestMemberList(t *testing.T) {
	a := testApp(t)

	out, err := executeCmd(t, a, "member", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No members yet")

	seedMember(t, a, "Alice", testutil.WithStats(0, 0, 1500, 0))
	seedMember(t, a, "Bob")

	out, err = executeCmd(t, a, "members", "ls")
	require.NoError(t, err)
	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, "Bob")
	assert.Contains(t, out, "1,500")
}

func TestMemberShow_ByNameAndPrefix(t *testing.T) {
	a := testApp(t)
	m := seedMember(t, a, "Alice", testutil.WithStats(0, 8, 0, 0))

	out, err := executeCmd(t, a, "member", "show", "Alice")
	require.NoError(t, err)
	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, "TROPHY CASE")
	assert.Contains(t, out, "🔒")

	out, err = executeCmd(t, a, "m", "show", m.ID[:8])
	require.NoError(t, err)
	assert.Contains(t, out, "Alice")
}

func TestMemberShow_NotFound(t *testing.T) {
	a := testApp(t)

	_, err := executeCmd(t, a, "member", "show", "Nobody")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `member not found: "Nobody"`)
}

func TestMemberEdit_OnlyChangedFlags(t *testing.T) {
	a := testApp(t)
	m := seedMember(t, a, "Alice", testutil.WithTitle("Pet"))

	out, err := executeCmd(t, a, "member", "edit", "Alice", "--photo", "https://cdn.example/alice.jpg", "--rank", "silverman")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated member Alice")

	got, err := a.Members.GetByID(context.Background(), m.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pet", got.Title)
	assert.Equal(t, "https://cdn.example/alice.jpg", got.ProfilePicture)
	assert.Equal(t, "SILVERMAN", got.Hierarchy)
	assert.True(t, got.HasPhoto())
}

func TestMemberEdit_NothingToUpdate(t *testing.T) {
	a := testApp(t)
	seedMember(t, a, "Alice")

	_, err := executeCmd(t, a, "member", "edit", "Alice")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to update")
}

func TestMemberTouch(t *testing.T) {
	a := testApp(t)
	m := seedMember(t, a, "Alice")

	out, err := executeCmd(t, a, "member", "touch", "Alice")
	require.NoError(t, err)
	assert.Contains(t, out, "Alice is ONLINE")

	got, err := a.Members.GetByID(context.Background(), m.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LastSeenAt)
	assert.True(t, got.LastSeenAt.Equal(cmdNow))
}

func TestMemberRemove(t *testing.T) {
	a := testApp(t)
	m := seedMember(t, a, "Alice")

	_, err := executeCmd(t, a, "member", "rm", "Alice")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "without --yes")

	out, err := executeCmd(t, a, "member", "rm", "Alice", "-y")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed member Alice")

	_, err = a.Members.GetByID(context.Background(), m.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestAdjustCommands(t *testing.T) {
	a := testApp(t)
	seedMember(t, a, "Alice")

	_, err := executeCmd(t, a, "points", "Alice")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--by is required")

	out, err := executeCmd(t, a, "points", "Alice", "--by", "250")
	require.NoError(t, err)
	assert.Contains(t, out, "points 250")

	out, err = executeCmd(t, a, "points", "Alice", "--by", "-50")
	require.NoError(t, err)
	assert.Contains(t, out, "points 200")

	out, err = executeCmd(t, a, "coins", "Alice")
	require.NoError(t, err)
	assert.Contains(t, out, "coins 100")

	out, err = executeCmd(t, a, "coins", "Alice", "--remove")
	require.NoError(t, err)
	assert.Contains(t, out, "coins 0")

	out, err = executeCmd(t, a, "kneels", "Alice")
	require.NoError(t, err)
	assert.Contains(t, out, "kneels 4")
}

func TestAdjustCommands_ZeroAmount(t *testing.T) {
	a := testApp(t)
	seedMember(t, a, "Alice")

	_, err := executeCmd(t, a, "points", "Alice", "--by", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "amount must be non-zero")
}

func TestSubmitAndStreak(t *testing.T) {
	a := testApp(t)
	seedMember(t, a, "Alice")

	for _, at := range []string{"2025-06-08 07:00:00", "2025-06-09 21:30:00", "2025-06-10 05:59:59"} {
		out, err := executeCmd(t, a, "submit", "Alice", "--at", at, "--proof", "https://cdn.example/p.jpg")
		require.NoError(t, err)
		assert.Contains(t, out, "Recorded routine proof")
	}

	// 05:59:59 on the 10th belongs to the 9th, and no proof has landed on
	// the current duty day yet.
	out, err := executeCmd(t, a, "streak", "Alice")
	require.NoError(t, err)
	assert.Contains(t, out, "2 days")
	assert.Contains(t, out, "pending")

	_, err = executeCmd(t, a, "submit", "Alice")
	require.NoError(t, err)

	out, err = executeCmd(t, a, "streak", "Alice")
	require.NoError(t, err)
	assert.Contains(t, out, "3 days")
	assert.Contains(t, out, "submitted")
}

func TestSubmit_InvalidTimestamp(t *testing.T) {
	a := testApp(t)
	seedMember(t, a, "Alice")

	_, err := executeCmd(t, a, "submit", "Alice", "--at", "last tuesday")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unrecognized timestamp")
}

func TestSubmissionsAndReview(t *testing.T) {
	a := testApp(t)
	m := seedMember(t, a, "Alice")
	ctx := context.Background()

	_, err := executeCmd(t, a, "submit", "Alice", "--task", "--note", "floor scrubbed")
	require.NoError(t, err)

	pending, err := a.Submissions.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	id := pending[0].ID

	out, err := executeCmd(t, a, "submissions")
	require.NoError(t, err)
	assert.Contains(t, out, id[:8])
	assert.Contains(t, out, "task")

	out, err = executeCmd(t, a, "submissions", "Alice", "--kind", "routine")
	require.NoError(t, err)
	assert.NotContains(t, out, id[:8])

	out, err = executeCmd(t, a, "review", id[:8], "--status", "approved")
	require.NoError(t, err)
	assert.Contains(t, out, "Approved")

	got, err := a.Members.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.CompletedTasks)

	_, err = executeCmd(t, a, "review", id, "--status", "reject")
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrAlreadyReviewed)
}

func TestReview_StatusValidation(t *testing.T) {
	a := testApp(t)

	_, err := executeCmd(t, a, "review", "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"status" not set`)

	_, err = executeCmd(t, a, "review", "abc", "--status", "maybe")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be one of approve, reject, fail")
}

func TestPromotion_WorkedExample(t *testing.T) {
	a := testApp(t)
	seedMember(t, a, "Alice", testutil.WithStats(3, 12, 600, 0))

	out, err := executeCmd(t, a, "promotion", "Alice")
	require.NoError(t, err)
	assert.Contains(t, out, "NEXT:")
	assert.Contains(t, out, "👞 FOOTMAN")
	assert.Contains(t, out, "✔ VERIFIED")
	assert.Contains(t, out, "✖ MISSING")
	assert.Contains(t, out, "3 of 5 requirements met")
}

func TestPromotion_JSON(t *testing.T) {
	a := testApp(t)
	seedMember(t, a, "Alice", testutil.WithStats(3, 12, 600, 0))

	out, err := executeCmd(t, a, "status", "Alice", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"next_tier_index": 1`)
	assert.Contains(t, out, `"LABOR"`)
}

func TestPromote(t *testing.T) {
	a := testApp(t)
	m := seedMember(t, a, "Alice",
		testutil.WithStats(5, 12, 600, 0),
		testutil.WithProfilePicture("https://cdn.example/alice.jpg"),
	)

	out, err := executeCmd(t, a, "promote", "Alice")
	require.NoError(t, err)
	assert.Contains(t, out, "HALL BOY")
	assert.Contains(t, out, "→")
	assert.Contains(t, out, "FOOTMAN")

	got, err := a.Members.GetByID(context.Background(), m.ID)
	require.NoError(t, err)
	assert.Equal(t, "FOOTMAN", got.Hierarchy)

	out, err = executeCmd(t, a, "promote", "Alice")
	require.NoError(t, err)
	assert.Contains(t, out, "remains")
}

func TestLadder(t *testing.T) {
	a := testApp(t)
	seedMember(t, a, "Alice", testutil.WithHierarchy("FOOTMAN"))

	out, err := executeCmd(t, a, "ladder")
	require.NoError(t, err)
	assert.Contains(t, out, "HALL BOY")
	assert.Contains(t, out, "QUEEN'S CHAMPION")
	assert.NotContains(t, out, "▶")

	out, err = executeCmd(t, a, "ladder", "--member", "Alice")
	require.NoError(t, err)
	assert.Contains(t, out, "▶")

	out, err = executeCmd(t, a, "ladder", "--tier", "silver man")
	require.NoError(t, err)
	assert.Contains(t, out, "SILVERMAN")
	assert.Contains(t, out, "Permission to send Photos")

	_, err = executeCmd(t, a, "ladder", "--tier", "jester")
	require.Error(t, err)
}

func TestKneel_NonInteractiveFlow(t *testing.T) {
	a := testApp(t)
	seedMember(t, a, "Alice")

	out, err := executeCmd(t, a, "kneel", "status", "Alice")
	require.NoError(t, err)
	assert.Contains(t, out, "READY TO KNEEL")
	assert.Contains(t, out, "10472")

	out, err = executeCmd(t, a, "kneel", "Alice")
	require.NoError(t, err)
	assert.Contains(t, out, "Kneel recorded for Alice (1 kneels)")
	assert.Contains(t, out, "kneel claim")

	out, err = executeCmd(t, a, "kneel", "Alice")
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrKneelLocked)
	assert.Contains(t, out, "LOCKED")
	assert.Contains(t, out, "60 min left")

	out, err = executeCmd(t, a, "kneel", "claim", "Alice", "--reward", "points")
	require.NoError(t, err)
	assert.Contains(t, out, "Claimed 50 points")

	_, err = executeCmd(t, a, "kneel", "claim", "Alice", "--reward", "coins")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has no unclaimed kneel reward")
}

func TestKneel_ClaimRightAway(t *testing.T) {
	a := testApp(t)
	m := seedMember(t, a, "Alice")

	out, err := executeCmd(t, a, "kneel", "Alice", "--reward", "coins")
	require.NoError(t, err)
	assert.Contains(t, out, "Claimed 10 coins")

	got, err := a.Members.GetByID(context.Background(), m.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.Coins)
	assert.Equal(t, 1, got.KneelCount)
}

func TestKneelClaim_RequiresRewardWhenNotInteractive(t *testing.T) {
	a := testApp(t)
	seedMember(t, a, "Alice")

	_, err := executeCmd(t, a, "kneel", "claim", "Alice")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--reward is required")
}

func TestTimestampFlag(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*3600)
	f := newTimestampFlag(loc)
	assert.Equal(t, "", f.String())
	assert.Equal(t, "timestamp", f.Type())

	require.NoError(t, f.Set("2025-06-10 07:30:00"))
	assert.True(t, f.Time().Equal(time.Date(2025, 6, 10, 5, 30, 0, 0, time.UTC)))

	require.NoError(t, f.Set("2025-06-10T07:30:00Z"))
	assert.Equal(t, "2025-06-10T07:30:00Z", f.String())

	assert.Error(t, f.Set("yesterday"))
}

func TestReviewStatusFlag(t *testing.T) {
	var f reviewStatusFlag
	for in, want := range map[string]string{
		"approve": "approve", "approved": "approve",
		"rejected": "reject", "failed": "fail",
	} {
		require.NoError(t, f.Set(in))
		assert.Equal(t, want, f.String(), in)
	}
	assert.Error(t, f.Set("pending"))
}

func TestBridgeHandler_SharesServices(t *testing.T) {
	a := testApp(t)
	m := seedMember(t, a, "Alice")
	h := newBridgeHandler(a)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/members/"+m.ID, nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Alice")
}
