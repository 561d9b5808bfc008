package refresh

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/rogercoleraus/dynamox-design/internal/domain"
)

// QueryFunc 查询引擎的边界：spots.Engine 和 client.SpotsClient 都满足它
type QueryFunc func(ctx context.Context, req domain.QueryRequest) (domain.QueryResult, error)

const (
	// DefaultIntervalSeconds 自动刷新默认周期
	DefaultIntervalSeconds = 25
	// MinIntervalSeconds 自动刷新最小周期；非法输入一律夹到这里，不报错
	MinIntervalSeconds = 5
)

// Snapshot 控制器某一时刻的完整状态（给 HTTP 层/观察者用的只读拷贝）
type Snapshot struct {
	Request  domain.QueryRequest `json:"request"`
	Result   domain.QueryResult  `json:"result"`
	Interval int                 `json:"interval"`
	Paused   bool                `json:"paused"`
}

// Controller 自动刷新控制器。
// 把原来散落在页面里的“全局定时器 + 暂停标志 + 查询状态”收拢成一个
// 显式对象：Start/Stop 生命周期，永远只有一个活动的 timer 句柄，
// 每次重排前先停掉旧的。
//
// 两条触发路径共用同一个执行函数：
//   - 用户编辑（SetSearch/SetRota/SetSort/SetPage/SetPageSize）立即触发；
//   - 定时器按周期触发，且在触发时读取“当前”请求状态，而不是启动时的快照。
//
// 每次执行带单调递增的序号，提交时丢弃比已提交结果更旧的响应，
// 保证最终展示的是“最后发起”的那次查询（乱序到达不会回写旧数据）。
type Controller struct {
	query  QueryFunc
	logger *zap.Logger

	mu        sync.Mutex
	req       domain.QueryRequest
	result    domain.QueryResult
	interval  time.Duration
	paused    bool
	timer     *time.Timer
	running   bool
	issued    uint64
	committed uint64
	onUpdate  func(Snapshot)

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewController 创建控制器。intervalSeconds 会被夹到 [MinIntervalSeconds, ∞)。
func NewController(query QueryFunc, intervalSeconds int, paused bool, logger *zap.Logger) *Controller {
	return &Controller{
		query:    query,
		logger:   logger,
		interval: time.Duration(ClampIntervalSeconds(intervalSeconds)) * time.Second,
		paused:   paused,
		req:      domain.QueryRequest{Page: 0, PageSize: domain.DefaultPageSize}.Normalize(),
	}
}

// ClampIntervalSeconds 非法/越界的周期输入回退到最小值，永不报错
func ClampIntervalSeconds(seconds int) int {
	if seconds <= 0 {
		return DefaultIntervalSeconds
	}
	if seconds < MinIntervalSeconds {
		return MinIntervalSeconds
	}
	return seconds
}

// OnUpdate 注册结果提交后的回调（在查询 goroutine 上调用，不持锁）
func (c *Controller) OnUpdate(fn func(Snapshot)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUpdate = fn
}

// Start 发起首次查询并启动定时器。重复调用是幂等的。
func (c *Controller) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running {
		return
	}
	c.ctx, c.cancel = context.WithCancel(context.Background())
	c.running = true
	c.issueLocked()
	c.scheduleLocked()
	c.logger.Info("refresh controller started",
		zap.Duration("interval", c.interval),
		zap.Bool("paused", c.paused),
	)
}

// Stop 停止定时器并等待在途查询退出。之后的 Snapshot 仍可读。
func (c *Controller) Stop() {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return
	}
	c.running = false
	c.stopTimerLocked()
	c.cancel()
	c.mu.Unlock()
	c.wg.Wait()
	c.logger.Info("refresh controller stopped")
}

// Snapshot 返回当前状态的拷贝
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	return Snapshot{
		Request:  c.req,
		Result:   c.result,
		Interval: int(c.interval / time.Second),
		Paused:   c.paused,
	}
}

// Refresh 手动触发一次查询（不影响定时器节奏）
func (c *Controller) Refresh() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.issueLocked()
}

// SetPage 翻页：立即触发查询
func (c *Controller) SetPage(page int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if page < 0 {
		page = 0
	}
	c.req.Page = page
	c.issueLocked()
}

// SetPageSize 改每页行数：立即触发查询
func (c *Controller) SetPageSize(size int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if size < 1 {
		size = domain.DefaultPageSize
	}
	c.req.PageSize = size
	c.issueLocked()
}

// SetSearch 改搜索词：回到第一页并立即触发查询
func (c *Controller) SetSearch(search string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.req.Search = search
	c.req.Page = 0
	c.issueLocked()
}

// SetRota 改线路过滤：回到第一页并立即触发查询
func (c *Controller) SetRota(rota string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.req.Rota = rota
	c.req.Page = 0
	c.issueLocked()
}

// SetSort 改排序：回到第一页并立即触发查询。key 为空表示取消排序。
func (c *Controller) SetSort(key string, dir domain.SortDirection) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.req.SortKey = key
	if dir != domain.SortDesc {
		dir = domain.SortAsc
	}
	c.req.SortDir = dir
	c.req.Page = 0
	c.issueLocked()
}

// Pause 暂停自动刷新。不取消在途查询，只是不再有新的定时触发。
func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.paused {
		return
	}
	c.paused = true
	c.stopTimerLocked()
	c.logger.Info("auto refresh paused")
}

// Resume 恢复自动刷新，周期从零重新计时
func (c *Controller) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.paused {
		return
	}
	c.paused = false
	c.scheduleLocked()
	c.logger.Info("auto refresh resumed", zap.Duration("interval", c.interval))
}

// SetIntervalSeconds 改刷新周期：旧的待触发 timer 作废，新周期立即生效
func (c *Controller) SetIntervalSeconds(seconds int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.interval = time.Duration(ClampIntervalSeconds(seconds)) * time.Second
	c.scheduleLocked()
	c.logger.Info("refresh interval updated", zap.Duration("interval", c.interval))
}

// scheduleLocked 重排定时器。先停旧的再建新的，保证任一时刻至多一个句柄。
func (c *Controller) scheduleLocked() {
	c.stopTimerLocked()
	if !c.running || c.paused {
		return
	}
	c.timer = time.AfterFunc(c.interval, c.onTimer)
}

func (c *Controller) stopTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// onTimer 定时触发：用触发时刻的请求状态执行查询，然后排下一轮
func (c *Controller) onTimer() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.running || c.paused {
		return
	}
	c.issueLocked()
	c.scheduleLocked()
}

// issueLocked 发起一次带序号的查询执行。调用方必须持锁。
// 响应提交时丢弃比已提交结果更旧的序号（stale-result suppression）。
func (c *Controller) issueLocked() {
	if !c.running {
		return
	}
	c.issued++
	seq := c.issued
	req := c.req
	ctx := c.ctx

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		result, err := c.query(ctx, req)
		if err != nil {
			// Stop() 取消在途查询时会走到这里；保留上一次的结果
			c.logger.Debug("query execution dropped", zap.Uint64("seq", seq), zap.Error(err))
			return
		}

		c.mu.Lock()
		if seq <= c.committed {
			c.mu.Unlock()
			c.logger.Debug("stale query result discarded",
				zap.Uint64("seq", seq),
				zap.Uint64("committed", c.committed),
			)
			return
		}
		c.committed = seq
		c.result = result
		snap := c.snapshotLocked()
		fn := c.onUpdate
		c.mu.Unlock()

		if fn != nil {
			fn(snap)
		}
	}()
}
