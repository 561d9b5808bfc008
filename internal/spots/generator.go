package spots

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/rogercoleraus/dynamox-design/internal/domain"
)

// DefaultUniverseSize 合成监测点总数
const DefaultUniverseSize = 100

// 生成用的固定枚举（与 FAB-PS04 产线的点位命名一致）
var (
	statuses      = []string{"Normal", "Alerta", "Crítico"}
	trends        = []domain.Trend{domain.TrendUp, domain.TrendFlat, domain.TrendDown}
	subassemblies = []string{"Motor", "Redutor", "Bomba", "Ventilador"}
	components    = []string{"Mancal LA", "Mancal LOA", "Eixo", "Rolamento"}
	rotas         = []string{"Rota Maria C.", "Rota José M."}
)

// 数值采样范围（min, max）
const (
	speedMin, speedMax = 10, 90
	tempMin, tempMax   = 35, 80
	accelMin, accelMax = 5, 50
)

// Generator 合成监测点数据源。
// 除四个数值字段外全部由序号决定（同一序号跨调用稳定）；
// 数值字段每次 Generate 重新均匀采样，模拟在线遥测抖动。
// 这是有意为之：前端每次轮询都会看到数值跳动，但过滤/排序的
// 成员集合保持稳定。不要改成“生成一次后缓存”。
type Generator struct {
	size int
}

func NewGenerator(size int) *Generator {
	if size <= 0 {
		size = DefaultUniverseSize
	}
	return &Generator{size: size}
}

func (g *Generator) Size() int { return g.size }

// Generate 重新合成全量监测点
func (g *Generator) Generate() []domain.SpotReading {
	out := make([]domain.SpotReading, 0, g.size)
	for i := 0; i < g.size; i++ {
		out = append(out, domain.SpotReading{
			SpotID:         fmt.Sprintf("spot-%d", i+1),
			Status:         statuses[i%len(statuses)],
			Report:         fmt.Sprintf("Relatório %02d", i/10+1),
			Machine:        "FAB-PS04",
			Subassembly:    subassemblies[i%len(subassemblies)],
			Component:      components[(i/len(subassemblies))%len(components)],
			SpotCode:       fmt.Sprintf("PS04-%03d", i+1),
			Trend:          trends[i%len(trends)],
			AvgSpeed:       uniform(speedMin, speedMax),
			AvgTemperature: uniform(tempMin, tempMax),
			AvgAccel1:      uniform(accelMin, accelMax),
			AvgAccel2:      uniform(accelMin, accelMax),
			Rota:           rotas[i%len(rotas)],
		})
	}
	return out
}

// uniform [min, max] 均匀采样，保留两位小数
func uniform(min, max float64) float64 {
	v := min + rand.Float64()*(max-min)
	return math.Round(v*100) / 100
}
