package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/rogercoleraus/dynamox-design/internal/spots"
)

func newTestRouter(t *testing.T) *Router {
	t.Helper()
	logger := zap.NewNop()
	engine := spots.NewEngine(spots.NewGenerator(0), 0, logger)
	router := NewRouter(logger)
	router.RegisterSpotRoutes(NewSpotsHandler(engine, logger))
	return router
}

type spotsResponse struct {
	Code   int `json:"code"`
	Result struct {
		Items      []map[string]any `json:"items"`
		Pagination struct {
			Page  int `json:"page"`
			Size  int `json:"size"`
			Total int `json:"total"`
		} `json:"pagination"`
	} `json:"result"`
}

func TestGetSpots_PaginatesAndWrapsResult(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/data/api/v1/spots?page=0&pageSize=10", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, w.Header().Get("X-Request-Id"))

	var resp spotsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, ResultSuccess, resp.Code)
	require.Len(t, resp.Result.Items, 10)
	require.Equal(t, 100, resp.Result.Pagination.Total)
	require.Equal(t, 0, resp.Result.Pagination.Page)
}

func TestGetSpots_RotaFilter(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/data/api/v1/spots?pageSize=10&rota=Rota+José+M.", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp spotsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 50, resp.Result.Pagination.Total)
	for _, item := range resp.Result.Items {
		require.Equal(t, "Rota José M.", item["rota"])
	}
}

func TestGetSpots_BadParamsFallBack(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/data/api/v1/spots?page=abc&pageSize=-2", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp spotsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, ResultSuccess, resp.Code)
	require.Len(t, resp.Result.Items, 10)
}

func TestGetSpots_MethodNotAllowed(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/data/api/v1/spots", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestGetColumns_ReturnsGridConfig(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/data/api/v1/spots/columns", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp struct {
		Code   int         `json:"code"`
		Result []ColumnDef `json:"result"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, ResultSuccess, resp.Code)
	require.Len(t, resp.Result, 13)

	numeric := 0
	for _, c := range resp.Result {
		if c.Numeric {
			numeric++
			require.Equal(t, 2, c.Decimals)
		}
	}
	require.Equal(t, 4, numeric)
}

func TestExportSpots_ProducesWorkbook(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/data/api/v1/spots/export?rota=Rota+José+M.", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Header().Get("Content-Type"), "spreadsheetml")
	require.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Spots")
	require.NoError(t, err)
	// header + 50 filtered records
	require.Len(t, rows, 51)
	require.Equal(t, SpotsExportHeader, rows[0])
}
