package httpapi

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/rogercoleraus/dynamox-design/internal/domain"
)

// SpotsExportHeader 导出表头（与 SpotColumns 顺序一致）
var SpotsExportHeader = []string{
	"ID",
	"Status",
	"Relatório",
	"Máquina",
	"Conjunto",
	"Componente",
	"Ponto",
	"Tendência",
	"Velocidade média",
	"Temperatura média",
	"Aceleração média 1",
	"Aceleração média 2",
	"Rota",
}

// GenerateSpotsExport 生成监测点导出 Excel 文件
// rows: 当前过滤集（忽略分页），为空则只生成表头
func GenerateSpotsExport(rows []domain.SpotReading) ([]byte, error) {
	f := excelize.NewFile()
	// Note: Don't defer Close() here, because WriteTo needs the file to be open

	sheetName := "Spots"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range SpotsExportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		_ = f.SetCellValue(sheetName, cell, header)
		_ = f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for i, r := range rows {
		row := i + 2
		values := []any{
			r.SpotID, r.Status, r.Report, r.Machine, r.Subassembly,
			r.Component, r.SpotCode, string(r.Trend),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			_ = f.SetCellValue(sheetName, cell, v)
		}
		// 数值列固定两位小数
		numeric := []float64{r.AvgSpeed, r.AvgTemperature, r.AvgAccel1, r.AvgAccel2}
		for j, v := range numeric {
			cell, _ := excelize.CoordinatesToCellName(len(values)+j+1, row)
			_ = f.SetCellFloat(sheetName, cell, v, 2, 64)
		}
		cell, _ := excelize.CoordinatesToCellName(len(values)+len(numeric)+1, row)
		_ = f.SetCellValue(sheetName, cell, r.Rota)
	}

	_ = f.SetColWidth(sheetName, "A", "M", 18)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write excel: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close excel: %w", err)
	}
	return buf.Bytes(), nil
}
