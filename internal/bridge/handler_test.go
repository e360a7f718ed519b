package bridge_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qkariin/queendom/internal/app"
	"github.com/qkariin/queendom/internal/bridge"
	"github.com/qkariin/queendom/internal/domain"
	"github.com/qkariin/queendom/internal/service"
	"github.com/qkariin/queendom/internal/testutil"
)

var testNow = time.Date(2025, 6, 10, 10, 0, 0, 0, time.UTC)

type env struct {
	svc    app.Services
	router http.Handler
}

func setup(t *testing.T, opts ...func(*bridge.Options)) *env {
	t.Helper()
	settings := service.DefaultSettings()
	settings.Location = time.UTC
	settings.Now = func() time.Time { return testNow }
	svc := app.NewServices(testutil.NewTestDB(t), settings)

	o := bridge.Options{Location: time.UTC, Now: settings.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &env{svc: svc, router: bridge.NewHandler(svc, o).Router()}
}

func (e *env) addMember(t *testing.T, name string, opts ...testutil.MemberOption) *domain.Member {
	t.Helper()
	m := testutil.NewTestMember(name, opts...)
	require.NoError(t, e.svc.Members.Create(context.Background(), m))
	return m
}

func (e *env) do(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	var out map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	}
	return rec, out
}

func errorMessage(t *testing.T, body map[string]any) string {
	t.Helper()
	e, ok := body["error"].(map[string]any)
	require.True(t, ok, "expected an error body, got %v", body)
	msg, _ := e["message"].(string)
	return msg
}

func TestHealthz(t *testing.T) {
	e := setup(t)
	rec, body := e.do(t, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])
}

func TestGetLadder(t *testing.T) {
	e := setup(t)
	rec, body := e.do(t, http.MethodGet, "/api/ladder", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	tiers := body["tiers"].([]any)
	assert.Len(t, tiers, 7)
	assert.Equal(t, "HALL BOY", tiers[0].(map[string]any)["name"])
}

func TestListAndGetMembers(t *testing.T) {
	e := setup(t)
	alice := e.addMember(t, "Alice", testutil.WithStats(0, 6, 0, 0))
	e.addMember(t, "Bob")

	rec, body := e.do(t, http.MethodGet, "/api/members", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, body["members"].([]any), 2)

	rec, body = e.do(t, http.MethodGet, "/api/members/"+alice.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Alice", body["display_name"])
	assert.Equal(t, 1.5, body["kneel_hours"])
	assert.Equal(t, "OFFLINE", body["presence"])

	// Names resolve as well as ids.
	rec, body = e.do(t, http.MethodGet, "/api/members/Alice", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, alice.ID, body["id"])
}

func TestGetMember_NotFound(t *testing.T) {
	e := setup(t)
	rec, body := e.do(t, http.MethodGet, "/api/members/nobody", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotEmpty(t, errorMessage(t, body))
}

func TestTouch_MarksOnline(t *testing.T) {
	e := setup(t)
	m := e.addMember(t, "Alice")

	rec, _ := e.do(t, http.MethodPost, "/api/members/"+m.ID+"/seen", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	_, body := e.do(t, http.MethodGet, "/api/members/"+m.ID, nil)
	assert.Equal(t, "ONLINE", body["presence"])
}

func TestAdjustCounters(t *testing.T) {
	e := setup(t)
	m := e.addMember(t, "Alice", testutil.WithCoins(50), testutil.WithStats(0, 2, 0, 0))
	base := "/api/members/" + m.ID

	rec, body := e.do(t, http.MethodPost, base+"/coins", map[string]int{"delta": 100})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(150), body["coins"])

	rec, body = e.do(t, http.MethodPost, base+"/points", map[string]int{"delta": -20})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(-20), body["points"])

	rec, body = e.do(t, http.MethodPost, base+"/kneels", map[string]int{"delta": -4})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(0), body["kneel_count"], "kneel counter clamps at zero")
}

func TestAdjust_RejectsZeroAndBadBodies(t *testing.T) {
	e := setup(t)
	m := e.addMember(t, "Alice")
	path := "/api/members/" + m.ID + "/coins"

	rec, _ := e.do(t, http.MethodPost, path, map[string]int{"delta": 0})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec, _ = e.do(t, http.MethodPost, path, "{not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = e.do(t, http.MethodPost, path, `{"amount": 5}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestKneel_FinishLockAndReward(t *testing.T) {
	e := setup(t)
	m := e.addMember(t, "Alice", testutil.WithCoins(0))
	base := "/api/members/" + m.ID

	rec, body := e.do(t, http.MethodGet, base+"/kneel", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, body["locked"])
	assert.Equal(t, "10472", body["daily_code"])

	rec, body = e.do(t, http.MethodPost, base+"/kneel", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), body["kneel_count"])

	rec, _ = e.do(t, http.MethodPost, base+"/kneel", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, body = e.do(t, http.MethodGet, base+"/kneel", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["locked"])
	assert.Equal(t, float64(60), body["minutes_left"])
	assert.Equal(t, true, body["reward_pending"])

	rec, _ = e.do(t, http.MethodPost, base+"/kneel/reward", map[string]string{"choice": "gems"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec, body = e.do(t, http.MethodPost, base+"/kneel/reward", map[string]string{"choice": "coins"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(10), body["coins"])

	rec, _ = e.do(t, http.MethodPost, base+"/kneel/reward", map[string]string{"choice": "points"})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestSubmissions_StreakFromUploads(t *testing.T) {
	e := setup(t)
	m := e.addMember(t, "Alice")
	base := "/api/members/" + m.ID

	for _, at := range []string{"2025-06-08 09:00:00", "2025-06-10T05:30:00Z", ""} {
		rec, body := e.do(t, http.MethodPost, base+"/submissions", map[string]string{
			"proof_url": "https://cdn.example/proof.jpg", "submitted_at": at,
		})
		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "routine", body["kind"])
		assert.Equal(t, "pending", body["status"])
	}

	// 05:30 on the 10th belongs to the 9th, so the 8th, 9th and 10th chain.
	rec, body := e.do(t, http.MethodGet, base+"/streak", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	current := body["current"].(map[string]any)
	assert.Equal(t, float64(3), current["days"])
	assert.Equal(t, "computed", current["source"])
	assert.Equal(t, true, body["done_today"])

	rec, body = e.do(t, http.MethodGet, base+"/submissions?kind=routine", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, body["submissions"].([]any), 3)
}

func TestCreateSubmission_Validation(t *testing.T) {
	e := setup(t)
	m := e.addMember(t, "Alice")
	path := "/api/members/" + m.ID + "/submissions"

	rec, _ := e.do(t, http.MethodPost, path, map[string]string{"kind": "photo"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec, _ = e.do(t, http.MethodPost, path, map[string]string{"submitted_at": "last tuesday"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReviewSubmission(t *testing.T) {
	e := setup(t)
	m := e.addMember(t, "Alice")

	rec, body := e.do(t, http.MethodPost, "/api/members/"+m.ID+"/submissions", map[string]string{"kind": "task"})
	require.Equal(t, http.StatusCreated, rec.Code)
	id := body["id"].(string)

	rec, body = e.do(t, http.MethodGet, "/api/submissions/pending", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, body["submissions"].([]any), 1)

	rec, _ = e.do(t, http.MethodPost, "/api/submissions/"+id+"/review", map[string]string{"status": "maybe"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec, body = e.do(t, http.MethodPost, "/api/submissions/"+id+"/review", map[string]string{"status": "approve"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "approve", body["status"])

	rec, _ = e.do(t, http.MethodPost, "/api/submissions/"+id+"/review", map[string]string{"status": "reject"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	_, body = e.do(t, http.MethodGet, "/api/members/"+m.ID, nil)
	assert.Equal(t, float64(1), body["completed_tasks"])

	rec, _ = e.do(t, http.MethodPost, "/api/submissions/missing/review", map[string]string{"status": "approve"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPromotionAndPromote(t *testing.T) {
	e := setup(t)
	m := e.addMember(t, "Alice",
		testutil.WithStats(5, 10, 500, 0),
		testutil.WithProfilePicture("https://cdn.example/alice.jpg"),
	)
	base := "/api/members/" + m.ID

	rec, body := e.do(t, http.MethodGet, base+"/promotion", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	status := body["status"].(map[string]any)
	assert.Equal(t, "FOOTMAN", status["next_tier"].(map[string]any)["name"])
	assert.Equal(t, float64(1), body["qualified_index"])

	rec, body = e.do(t, http.MethodPost, base+"/promote", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["promoted"])
	assert.Equal(t, "HALL BOY", body["previous_tier"])

	_, body = e.do(t, http.MethodGet, "/api/members/"+m.ID, nil)
	assert.Equal(t, "FOOTMAN", body["hierarchy"])
}

func TestRateLimit(t *testing.T) {
	e := setup(t, func(o *bridge.Options) { o.RateLimit = 1 })

	rec, _ := e.do(t, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, body := e.do(t, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "rate limit exceeded", errorMessage(t, body))
}
