package httpapi

// ColumnDef DataGrid 列定义（渲染组件是外部协作方，这里只下发配置）
type ColumnDef struct {
	Field      string `json:"field"`
	HeaderName string `json:"header_name"`
	Width      int    `json:"width,omitempty"`
	Flex       int    `json:"flex,omitempty"`
	Numeric    bool   `json:"numeric,omitempty"`
	Decimals   int    `json:"decimals,omitempty"`
	Sortable   bool   `json:"sortable"`
}

// SpotColumns 监测点表格的列配置；数值列固定两位小数
var SpotColumns = []ColumnDef{
	{Field: "spot_id", HeaderName: "ID", Width: 90, Sortable: true},
	{Field: "status", HeaderName: "Status", Width: 110, Sortable: true},
	{Field: "report", HeaderName: "Relatório", Flex: 1, Sortable: true},
	{Field: "machine", HeaderName: "Máquina", Flex: 1, Sortable: true},
	{Field: "subassembly", HeaderName: "Conjunto", Flex: 1, Sortable: true},
	{Field: "component", HeaderName: "Componente", Flex: 1, Sortable: true},
	{Field: "spot_code", HeaderName: "Ponto", Width: 110, Sortable: true},
	{Field: "trend", HeaderName: "Tendência", Width: 100, Sortable: true},
	{Field: "avg_speed", HeaderName: "Velocidade média", Width: 140, Numeric: true, Decimals: 2, Sortable: true},
	{Field: "avg_temperature", HeaderName: "Temperatura média", Width: 150, Numeric: true, Decimals: 2, Sortable: true},
	{Field: "avg_accel_1", HeaderName: "Aceleração média 1", Width: 150, Numeric: true, Decimals: 2, Sortable: true},
	{Field: "avg_accel_2", HeaderName: "Aceleração média 2", Width: 150, Numeric: true, Decimals: 2, Sortable: true},
	{Field: "rota", HeaderName: "Rota", Width: 140, Sortable: true},
}
