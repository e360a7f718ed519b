package bridge_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qkariin/queendom/internal/testutil"
)

func TestPurchases(t *testing.T) {
	e := setup(t)
	m := e.addMember(t, "Alice", testutil.WithCoins(500), testutil.WithStats(0, 0, 0, 100))
	base := "/api/members/" + m.ID

	rec, body := e.do(t, http.MethodPost, base+"/purchases", map[string]any{"item": "Collar", "cost": 200})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, float64(300), body["coins"])
	assert.Equal(t, float64(300), body["total_spent"])

	rec, body = e.do(t, http.MethodPost, base+"/purchases", map[string]any{"item": "Throne", "cost": 301})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, errorMessage(t, body), "insufficient coins")

	rec, _ = e.do(t, http.MethodPost, base+"/purchases", map[string]any{"item": "Nothing", "cost": 0})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec, _ = e.do(t, http.MethodPost, base+"/purchases", `{"price": 5}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, body = e.do(t, http.MethodGet, base+"/purchases", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	purchases := body["purchases"].([]any)
	require.Len(t, purchases, 1)
	assert.Equal(t, "Collar", purchases[0].(map[string]any)["item"])

	rec, _ = e.do(t, http.MethodPost, "/api/members/nobody/purchases", map[string]any{"cost": 1})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestQueue(t *testing.T) {
	e := setup(t)
	m := e.addMember(t, "Alice")
	base := "/api/members/" + m.ID

	rec, body := e.do(t, http.MethodPost, base+"/queue", map[string]string{"text": " Polish boots "})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Polish boots", body["text"])
	assert.Equal(t, float64(1), body["position"])
	id := body["id"].(string)

	rec, _ = e.do(t, http.MethodPost, base+"/queue", map[string]string{"text": ""})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec, body = e.do(t, http.MethodGet, base+"/queue", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, body["queue"].([]any), 1)

	rec, _ = e.do(t, http.MethodDelete, base+"/queue/"+id, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec, _ = e.do(t, http.MethodDelete, base+"/queue/"+id, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTaskLifecycle(t *testing.T) {
	e := setup(t)
	m := e.addMember(t, "Alice", testutil.WithCoins(600))
	base := "/api/members/" + m.ID

	rec, body := e.do(t, http.MethodGet, base+"/task", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, body["task"])

	rec, _ = e.do(t, http.MethodPost, base+"/task/skip", nil)
	assert.Equal(t, http.StatusConflict, rec.Code, "nothing to skip")

	_, _ = e.do(t, http.MethodPost, base+"/queue", map[string]string{"text": "Polish boots"})
	rec, body = e.do(t, http.MethodPost, base+"/task", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Polish boots", body["text"])
	assert.Equal(t, "active", body["status"])
	assert.Equal(t, float64(24*60*60), body["seconds_left"])

	rec, _ = e.do(t, http.MethodPost, base+"/task", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, body = e.do(t, http.MethodPost, base+"/task/skip", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "failed", body["status"])
	assert.Equal(t, "skipped", body["fail_reason"])

	rec, body = e.do(t, http.MethodPost, base+"/task/atone", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "redemption", body["category"])
	assert.Equal(t, "Polish boots", body["text"])

	_, body = e.do(t, http.MethodGet, "/api/members/"+m.ID, nil)
	assert.Equal(t, float64(200), body["coins"])
	assert.Equal(t, float64(100), body["total_spent"])

	rec, body = e.do(t, http.MethodGet, base+"/tasks", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, body["tasks"].([]any), 2)

	// A task proof closes the retry.
	rec, _ = e.do(t, http.MethodPost, base+"/submissions", map[string]string{"kind": "task"})
	require.Equal(t, http.StatusCreated, rec.Code)
	_, body = e.do(t, http.MethodGet, base+"/task", nil)
	assert.Nil(t, body["task"])

	rec, _ = e.do(t, http.MethodPost, base+"/task", nil)
	assert.Equal(t, http.StatusConflict, rec.Code, "200 coins cannot cover a draw")

	rec, body = e.do(t, http.MethodPost, "/api/tasks/expire", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, body["expired"])
}

func TestAtoneTask_NamedTask(t *testing.T) {
	e := setup(t)
	m := e.addMember(t, "Alice", testutil.WithCoins(1000))
	base := "/api/members/" + m.ID

	_, body := e.do(t, http.MethodPost, base+"/task", nil)
	id := body["id"].(string)
	_, _ = e.do(t, http.MethodPost, base+"/task/skip", nil)

	rec, _ := e.do(t, http.MethodPost, base+"/task/atone", map[string]string{"task_id": "missing"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = e.do(t, http.MethodPost, base+"/task/atone", map[string]string{"task_id": id})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, _ = e.do(t, http.MethodPost, base+"/task/atone", map[string]string{"task_id": id})
	assert.Equal(t, http.StatusConflict, rec.Code)
}
