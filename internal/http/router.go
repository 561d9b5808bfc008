package httpapi

import (
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Router 使用标准库 http.ServeMux（避免引入第三方路由依赖）
type Router struct {
	mux    *http.ServeMux
	logger *zap.Logger
}

func NewRouter(logger *zap.Logger) *Router {
	return &Router{
		mux:    http.NewServeMux(),
		logger: logger,
	}
}

func (r *Router) Handle(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	// 每个请求带一个 request id，便于把访问日志和引擎日志串起来
	reqID := req.Header.Get("X-Request-Id")
	if reqID == "" {
		reqID = uuid.NewString()
	}
	w.Header().Set("X-Request-Id", reqID)
	r.logger.Debug("http request",
		zap.String("request_id", reqID),
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
	)
	r.mux.ServeHTTP(w, req)
}

// RegisterSpotRoutes 注册与 dashboard 前端对齐的监测点路由
func (r *Router) RegisterSpotRoutes(s *SpotsHandler) {
	r.Handle("/data/api/v1/spots", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		s.GetSpots(w, req)
	})

	r.Handle("/data/api/v1/spots/columns", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		s.GetColumns(w, req)
	})

	r.Handle("/data/api/v1/spots/export", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		s.ExportSpots(w, req)
	})
}

// RegisterDashboardRoutes 注册刷新控制器的控制面路由
func (r *Router) RegisterDashboardRoutes(d *DashboardHandler) {
	r.Handle("/data/api/v1/dashboard", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		d.GetDashboard(w, req)
	})

	r.Handle("/data/api/v1/dashboard/query", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		d.UpdateQuery(w, req)
	})

	r.Handle("/data/api/v1/dashboard/refresh", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		d.UpdateRefresh(w, req)
	})
}
