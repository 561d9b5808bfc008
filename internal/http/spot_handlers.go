package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/rogercoleraus/dynamox-design/internal/domain"
)

// Querier 查询引擎边界（真实后端接入时替换实现即可，handler 不用改）
type Querier interface {
	Query(ctx context.Context, req domain.QueryRequest) (domain.QueryResult, error)
}

// SpotsHandler 监测点查询 Handler
type SpotsHandler struct {
	engine Querier
	logger *zap.Logger
}

func NewSpotsHandler(engine Querier, logger *zap.Logger) *SpotsHandler {
	return &SpotsHandler{engine: engine, logger: logger}
}

// queryRequestFromParams 从 URL 参数组装查询请求；非法值回退默认
func queryRequestFromParams(r *http.Request) domain.QueryRequest {
	q := r.URL.Query()
	req := domain.QueryRequest{
		Page:     parseIntQuery(r, "page", 0),
		PageSize: parseIntQuery(r, "pageSize", domain.DefaultPageSize),
		Search:   q.Get("search"),
		SortKey:  q.Get("sortKey"),
		Rota:     q.Get("rota"),
	}
	if q.Get("sortDir") == "desc" {
		req.SortDir = domain.SortDesc
	}
	return req.Normalize()
}

// GetSpots 分页查询监测点
// GET /data/api/v1/spots?page=0&pageSize=10&search=&rota=&sortKey=&sortDir=asc
func (h *SpotsHandler) GetSpots(w http.ResponseWriter, r *http.Request) {
	req := queryRequestFromParams(r)

	resp, err := h.engine.Query(r.Context(), req)
	if err != nil {
		h.logger.Error("GetSpots failed",
			zap.Int("page", req.Page),
			zap.String("search", req.Search),
			zap.Error(err),
		)
		writeJSON(w, http.StatusOK, Fail(err.Error()))
		return
	}

	// 前端分页格式（items + pagination）
	result := map[string]any{
		"items": resp.Rows,
		"pagination": map[string]any{
			"page":      req.Page,
			"size":      req.PageSize,
			"total":     resp.Total,
			"sort":      req.SortKey,
			"direction": string(req.SortDir),
		},
	}
	writeJSON(w, http.StatusOK, Ok(result))
}

// GetColumns 返回 DataGrid 的列定义
// GET /data/api/v1/spots/columns
func (h *SpotsHandler) GetColumns(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Ok(SpotColumns))
}

// ExportSpots 导出当前过滤集为 xlsx（忽略分页，取全部匹配行）
// GET /data/api/v1/spots/export?search=&rota=&sortKey=&sortDir=
func (h *SpotsHandler) ExportSpots(w http.ResponseWriter, r *http.Request) {
	req := queryRequestFromParams(r)
	req.Page = 0

	// 第一次查询拿总数，第二次整页取回（引擎每次调用重新采样数值，
	// 成员集合不变，所以两次调用之间 total 不会漂移）
	probe, err := h.engine.Query(r.Context(), req)
	if err != nil {
		writeJSON(w, http.StatusOK, Fail(err.Error()))
		return
	}
	if probe.Total > req.PageSize {
		req.PageSize = probe.Total
		probe, err = h.engine.Query(r.Context(), req)
		if err != nil {
			writeJSON(w, http.StatusOK, Fail(err.Error()))
			return
		}
	}

	data, err := GenerateSpotsExport(probe.Rows)
	if err != nil {
		h.logger.Error("ExportSpots failed", zap.Error(err))
		writeJSON(w, http.StatusOK, Fail(err.Error()))
		return
	}

	filename := fmt.Sprintf("spots_%s.xlsx", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	_, _ = w.Write(data)
}
