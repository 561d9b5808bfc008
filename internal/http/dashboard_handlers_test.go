package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rogercoleraus/dynamox-design/internal/refresh"
	"github.com/rogercoleraus/dynamox-design/internal/spots"
)

func newDashboardRouter(t *testing.T) (*Router, *refresh.Controller) {
	t.Helper()
	logger := zap.NewNop()
	engine := spots.NewEngine(spots.NewGenerator(0), 0, logger)
	// paused: these tests drive the controller through HTTP only
	ctrl := refresh.NewController(engine.Query, refresh.DefaultIntervalSeconds, true, logger)
	ctrl.Start()
	t.Cleanup(ctrl.Stop)

	router := NewRouter(logger)
	router.RegisterDashboardRoutes(NewDashboardHandler(ctrl, logger))
	return router, ctrl
}

func postJSON(router *Router, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

type dashboardResponse struct {
	Code   int              `json:"code"`
	Result refresh.Snapshot `json:"result"`
}

func TestDashboard_SnapshotRoundTrip(t *testing.T) {
	router, ctrl := newDashboardRouter(t)

	// wait for the initial query to commit
	require.Eventually(t, func() bool {
		return ctrl.Snapshot().Result.Total == 100
	}, 2*time.Second, 5*time.Millisecond)

	req := httptest.NewRequest(http.MethodGet, "/data/api/v1/dashboard", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp dashboardResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, ResultSuccess, resp.Code)
	require.Equal(t, 100, resp.Result.Result.Total)
	require.True(t, resp.Result.Paused)
	require.Equal(t, refresh.DefaultIntervalSeconds, resp.Result.Interval)
}

func TestDashboard_QueryEditResetsPageAndRequeries(t *testing.T) {
	router, ctrl := newDashboardRouter(t)

	w := postJSON(router, "/data/api/v1/dashboard/query", `{"page": 4}`)
	var resp dashboardResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 4, resp.Result.Request.Page)

	w = postJSON(router, "/data/api/v1/dashboard/query", `{"rota": "Rota José M."}`)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 0, resp.Result.Request.Page)
	require.Equal(t, "Rota José M.", resp.Result.Request.Rota)

	// the filtered result lands asynchronously
	require.Eventually(t, func() bool {
		return ctrl.Snapshot().Result.Total == 50
	}, 2*time.Second, 5*time.Millisecond)
}

func TestDashboard_RefreshControls(t *testing.T) {
	router, _ := newDashboardRouter(t)

	w := postJSON(router, "/data/api/v1/dashboard/refresh", `{"action": "resume", "interval": 3}`)
	var resp dashboardResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, ResultSuccess, resp.Code)
	require.False(t, resp.Result.Paused)
	// interval below the floor is clamped, not rejected
	require.Equal(t, refresh.MinIntervalSeconds, resp.Result.Interval)

	w = postJSON(router, "/data/api/v1/dashboard/refresh", `{"action": "pause"}`)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Result.Paused)

	w = postJSON(router, "/data/api/v1/dashboard/refresh", `{"action": "rewind"}`)
	var fail Result[any]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fail))
	require.Equal(t, ResultError, fail.Code)
}
