package spots

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/rogercoleraus/dynamox-design/internal/domain"
)

// DefaultQueryDelay 模拟远端接口的固定延迟（让前端的 loading 态可见）
const DefaultQueryDelay = 200 * time.Millisecond

// Engine 分页查询引擎：对合成监测点做 过滤 -> 排序 -> 切页。
// 这里是未来替换为真实后端 API 的接缝；刷新控制器只依赖
// refresh.QueryFunc 这个函数签名。
type Engine struct {
	gen    *Generator
	delay  time.Duration
	logger *zap.Logger
}

// NewEngine 创建查询引擎。delay<0 时使用 DefaultQueryDelay，0 表示不延迟（测试用）。
func NewEngine(gen *Generator, delay time.Duration, logger *zap.Logger) *Engine {
	if delay < 0 {
		delay = DefaultQueryDelay
	}
	return &Engine{gen: gen, delay: delay, logger: logger}
}

// Query 执行一次分页查询。
// 入参全部归一化为安全默认值，正常路径不会失败；
// 唯一的错误来源是 ctx 在模拟延迟期间被取消。
func (e *Engine) Query(ctx context.Context, req domain.QueryRequest) (domain.QueryResult, error) {
	req = req.Normalize()

	rows := e.gen.Generate()
	rows = filterSearch(rows, req.Search)
	rows = filterRota(rows, req.Rota)
	if req.SortKey != "" {
		sortRows(rows, req.SortKey, req.SortDir)
	}

	total := len(rows)
	start := req.Page * req.PageSize
	end := start + req.PageSize
	if end > total {
		end = total
	}
	page := []domain.SpotReading{}
	if start < total {
		page = rows[start:end]
	}

	if e.delay > 0 {
		select {
		case <-ctx.Done():
			return domain.QueryResult{}, ctx.Err()
		case <-time.After(e.delay):
		}
	}

	e.logger.Debug("spot query executed",
		zap.Int("page", req.Page),
		zap.Int("page_size", req.PageSize),
		zap.String("search", req.Search),
		zap.String("rota", req.Rota),
		zap.String("sort_key", req.SortKey),
		zap.Int("total", total),
		zap.Int("rows", len(page)),
	)
	return domain.QueryResult{Rows: page, Total: total}, nil
}

// filterSearch 大小写不敏感的子串匹配；任一文本字段命中即保留，空字段跳过
func filterSearch(rows []domain.SpotReading, search string) []domain.SpotReading {
	if search == "" {
		return rows
	}
	needle := strings.ToLower(search)
	out := rows[:0]
	for _, r := range rows {
		for _, f := range r.SearchableFields() {
			if f == "" {
				continue
			}
			if strings.Contains(strings.ToLower(f), needle) {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

// filterRota 精确匹配 rota（区分大小写）
func filterRota(rows []domain.SpotReading, rota string) []domain.SpotReading {
	if rota == "" {
		return rows
	}
	out := rows[:0]
	for _, r := range rows {
		if r.Rota == rota {
			out = append(out, r)
		}
	}
	return out
}

// sortRows 按 key 稳定排序。
// 空值排在有值之前（升序时）；数值字段按数值比较，
// 文本按 pt-BR collation 比较；desc 统一翻转所有比较结果。
func sortRows(rows []domain.SpotReading, key string, dir domain.SortDirection) {
	// collate.Collator 不是并发安全的，按调用新建
	coll := collate.New(language.BrazilianPortuguese)
	sign := 1
	if dir == domain.SortDesc {
		sign = -1
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return sign*compareField(coll, &rows[i], &rows[j], key) < 0
	})
}

func compareField(coll *collate.Collator, a, b *domain.SpotReading, key string) int {
	av, aok := a.Field(key)
	bv, bok := b.Field(key)
	switch {
	case !aok && !bok:
		return 0
	case !aok:
		return -1
	case !bok:
		return 1
	}
	if af, ok := av.(float64); ok {
		if bf, ok := bv.(float64); ok {
			switch {
			case af < bf:
				return -1
			case af > bf:
				return 1
			default:
				return 0
			}
		}
	}
	return coll.CompareString(toString(av), toString(bv))
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
