package httpapi

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/rogercoleraus/dynamox-design/internal/domain"
	"github.com/rogercoleraus/dynamox-design/internal/refresh"
)

// DashboardHandler 仪表盘控制面：把表单控件的编辑事件转发给刷新控制器
type DashboardHandler struct {
	ctrl   *refresh.Controller
	logger *zap.Logger
}

func NewDashboardHandler(ctrl *refresh.Controller, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{ctrl: ctrl, logger: logger}
}

// GetDashboard 返回控制器当前状态（请求 + 最近提交的结果 + 刷新设置）
// GET /data/api/v1/dashboard
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Ok(h.ctrl.Snapshot()))
}

// queryEdit 局部编辑：指针区分“未提交该字段”和“提交了零值”
type queryEdit struct {
	Page     *int    `json:"page"`
	PageSize *int    `json:"page_size"`
	Search   *string `json:"search"`
	Rota     *string `json:"rota"`
	SortKey  *string `json:"sort_key"`
	SortDir  *string `json:"sort_dir"`
}

// UpdateQuery 应用一次表单编辑；每个被编辑的字段都会触发一次查询，
// search/rota/sort 的编辑会把页码重置到第一页（语义在控制器里）
// POST /data/api/v1/dashboard/query
func (h *DashboardHandler) UpdateQuery(w http.ResponseWriter, r *http.Request) {
	var edit queryEdit
	if err := readBodyJSON(r, 1<<20, &edit); err != nil {
		writeJSON(w, http.StatusOK, Fail("invalid body: "+err.Error()))
		return
	}

	if edit.Search != nil {
		h.ctrl.SetSearch(*edit.Search)
	}
	if edit.Rota != nil {
		h.ctrl.SetRota(*edit.Rota)
	}
	if edit.SortKey != nil {
		dir := domain.SortAsc
		if edit.SortDir != nil && *edit.SortDir == "desc" {
			dir = domain.SortDesc
		}
		h.ctrl.SetSort(*edit.SortKey, dir)
	}
	if edit.PageSize != nil {
		h.ctrl.SetPageSize(*edit.PageSize)
	}
	if edit.Page != nil {
		h.ctrl.SetPage(*edit.Page)
	}

	writeJSON(w, http.StatusOK, Ok(h.ctrl.Snapshot()))
}

// refreshEdit 刷新设置编辑
type refreshEdit struct {
	Action   string `json:"action"`   // "pause" | "resume" | "trigger" | ""
	Interval *int   `json:"interval"` // 秒；非法值夹到最小值
}

// UpdateRefresh 暂停/恢复/改周期/手动刷新
// POST /data/api/v1/dashboard/refresh
func (h *DashboardHandler) UpdateRefresh(w http.ResponseWriter, r *http.Request) {
	var edit refreshEdit
	if err := readBodyJSON(r, 1<<20, &edit); err != nil {
		writeJSON(w, http.StatusOK, Fail("invalid body: "+err.Error()))
		return
	}

	switch edit.Action {
	case "pause":
		h.ctrl.Pause()
	case "resume":
		h.ctrl.Resume()
	case "trigger":
		h.ctrl.Refresh()
	case "":
		// interval-only edit
	default:
		h.logger.Warn("unknown refresh action", zap.String("action", edit.Action))
		writeJSON(w, http.StatusOK, Fail("unknown action: "+edit.Action))
		return
	}
	if edit.Interval != nil {
		h.ctrl.SetIntervalSeconds(*edit.Interval)
	}

	writeJSON(w, http.StatusOK, Ok(h.ctrl.Snapshot()))
}
