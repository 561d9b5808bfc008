package domain

// Trend 趋势指示：最近一个测量窗口的变化方向
type Trend string

const (
	TrendUp   Trend = "up"
	TrendFlat Trend = "flat"
	TrendDown Trend = "down"
)

// SortDirection 排序方向（默认升序）
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SpotReading 监测点读数（对应前端 DataGrid 的一行）
// SpotID 对同一生成序号是稳定的；四个数值字段每次查询重新采样，
// 模拟在线遥测的抖动（见 spots.Generator）。
type SpotReading struct {
	SpotID         string  `json:"spot_id"`
	Status         string  `json:"status,omitempty"`
	Report         string  `json:"report,omitempty"`
	Machine        string  `json:"machine,omitempty"`
	Subassembly    string  `json:"subassembly,omitempty"`
	Component      string  `json:"component,omitempty"`
	SpotCode       string  `json:"spot_code,omitempty"`
	Trend          Trend   `json:"trend,omitempty"`
	AvgSpeed       float64 `json:"avg_speed"`
	AvgTemperature float64 `json:"avg_temperature"`
	AvgAccel1      float64 `json:"avg_accel_1"`
	AvgAccel2      float64 `json:"avg_accel_2"`
	Rota           string  `json:"rota,omitempty"`
}

// SearchableFields 参与模糊搜索的文本字段（空字段跳过，不参与匹配）
func (s *SpotReading) SearchableFields() []string {
	return []string{s.Status, s.Report, s.Machine, s.Subassembly, s.Component, s.SpotCode, s.Rota}
}

// Field 按字段名取排序键值。
// 返回 (value, true)；字段缺失或为空返回 (nil, false)，排序时空值排在最前。
// 数值字段返回 float64，其余返回 string。
func (s *SpotReading) Field(key string) (any, bool) {
	switch key {
	case "spot_id":
		return s.SpotID, s.SpotID != ""
	case "status":
		return s.Status, s.Status != ""
	case "report":
		return s.Report, s.Report != ""
	case "machine":
		return s.Machine, s.Machine != ""
	case "subassembly":
		return s.Subassembly, s.Subassembly != ""
	case "component":
		return s.Component, s.Component != ""
	case "spot_code":
		return s.SpotCode, s.SpotCode != ""
	case "trend":
		return string(s.Trend), s.Trend != ""
	case "avg_speed":
		return s.AvgSpeed, true
	case "avg_temperature":
		return s.AvgTemperature, true
	case "avg_accel_1":
		return s.AvgAccel1, true
	case "avg_accel_2":
		return s.AvgAccel2, true
	case "rota":
		return s.Rota, s.Rota != ""
	default:
		return nil, false
	}
}

// QueryRequest 分页查询请求（模拟后端分页接口的入参）
// 所有字段组合均合法；非法值由引擎归一化为安全默认值。
type QueryRequest struct {
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
	Search   string        `json:"search,omitempty"`
	SortKey  string        `json:"sort_key,omitempty"`
	SortDir  SortDirection `json:"sort_dir,omitempty"`
	Rota     string        `json:"rota,omitempty"`
}

// Normalize 把请求归一化为安全默认值（page>=0, pageSize>=1, 方向默认升序）
func (r QueryRequest) Normalize() QueryRequest {
	if r.Page < 0 {
		r.Page = 0
	}
	if r.PageSize < 1 {
		r.PageSize = DefaultPageSize
	}
	if r.SortDir != SortDesc {
		r.SortDir = SortAsc
	}
	return r
}

// DefaultPageSize 前端 DataGrid 的默认每页行数
const DefaultPageSize = 10

// QueryResult 一页查询结果。
// Total 是 search+rota 过滤后的总数，与分页参数无关；
// 恒有 0 <= len(Rows) <= PageSize。
type QueryResult struct {
	Rows  []SpotReading `json:"rows"`
	Total int           `json:"total"`
}
