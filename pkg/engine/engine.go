// Package engine 驱动检测-点击循环
//
// 引擎先把屏幕带到目标页面（初始化），然后循环执行: 点击心形，
// 找不到就滚动，点击或滚动次数达到阈值后刷新页面。
// 所有步骤在同一个 goroutine 中按顺序执行，中断通过 ctx 取消传递。
package engine

import (
	"context"
	"errors"
	"time"

	"github.com/zoeyai/heartclicker/internal/logger"
	"github.com/zoeyai/heartclicker/pkg/auto"
	"github.com/zoeyai/heartclicker/pkg/config"
	"github.com/zoeyai/heartclicker/pkg/strategy"
	"github.com/zoeyai/heartclicker/pkg/vision"
)

// ScrollAction 无返回值的滚动动作
type ScrollAction interface {
	Execute(ctx context.Context) error
}

// Counters 刷新相关计数
type Counters struct {
	// ClicksSinceRefresh 上次刷新后点击的心形数
	ClicksSinceRefresh int
	// ScrollsWithoutHearts 连续没有点到心形的滚动次数
	ScrollsWithoutHearts int
}

// Stats 运行统计，只用于日志
type Stats struct {
	Cycles          int
	HeartsClicked   int
	Scrolls         int
	Refreshes       int
	FailedRefreshes int
}

// Deps 引擎的外部依赖
type Deps struct {
	Device   auto.Device
	Locator  strategy.Locator
	Clock    auto.Clock
	Operator Operator
	// Probe 可选，用于在人工介入提示中说明浏览器进程状态
	Probe AppProbe
	Log   *logger.Logger
}

// Engine 检测-点击引擎
type Engine struct {
	cfg      *config.Config
	device   auto.Device
	locator  strategy.Locator
	clock    auto.Clock
	operator Operator
	probe    AppProbe
	log      *logger.Logger
	now      func() time.Time

	heart    strategy.ClickStrategy
	refresh  strategy.ClickStrategy
	scroller ScrollAction
	detector *StateDetector

	phase    Phase
	counters Counters
	stats    Stats
}

// Option 引擎选项
type Option func(*Engine)

// WithHeartStrategy 替换心形点击策略
func WithHeartStrategy(s strategy.ClickStrategy) Option {
	return func(e *Engine) {
		e.heart = s
	}
}

// WithRefreshStrategy 替换刷新策略
func WithRefreshStrategy(s strategy.ClickStrategy) Option {
	return func(e *Engine) {
		e.refresh = s
	}
}

// WithScrollAction 替换滚动动作
func WithScrollAction(s ScrollAction) Option {
	return func(e *Engine) {
		e.scroller = s
	}
}

// WithNow 替换周期日志使用的时间源
func WithNow(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// New 根据配置创建引擎
// cfg 在引擎生命周期内不应再修改。
func New(cfg *config.Config, deps Deps, opts ...Option) *Engine {
	e := &Engine{
		cfg:      cfg,
		device:   deps.Device,
		locator:  deps.Locator,
		clock:    deps.Clock,
		operator: deps.Operator,
		probe:    deps.Probe,
		log:      deps.Log,
		now:      time.Now,
		phase:    PhaseNotStarted,
	}
	if e.clock == nil {
		e.clock = auto.RealClock{}
	}
	if e.log == nil {
		e.log = logger.Default()
	}

	env := strategy.Env{Locator: e.locator, Device: e.device, Clock: e.clock, Log: e.log}

	var filter vision.ColorFilter
	if cfg.UseColorFilter {
		filter = vision.FilterFor(cfg.HeartColor)
	}
	e.heart = strategy.NewIconClicker(env, cfg.HeartTemplate(), cfg.HeartConfidence(), filter,
		strategy.WithNudge(cfg.ClickNudgeX),
		strategy.WithClickPause(cfg.ClickPause),
	)
	e.refresh = strategy.NewRefreshClicker(env, cfg.Path(cfg.Templates.Refresh), cfg.RefreshConfidence, cfg.MouseMoveDistance)
	e.scroller = strategy.NewScroller(env, cfg.ScrollAmount)
	e.detector = NewStateDetector(e.locator, cfg.Path(cfg.Templates.Homing), cfg.StateConfidence)

	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Counters 当前计数
func (e *Engine) Counters() Counters {
	return e.counters
}

// Stats 运行统计
func (e *Engine) Stats() Stats {
	return e.stats
}

// Phase 当前初始化阶段
func (e *Engine) Phase() Phase {
	return e.phase
}

// Run 初始化后无限循环，直到 ctx 被取消
// 用户中断返回 nil，模板无法加载等致命错误原样返回。
func (e *Engine) Run(ctx context.Context) error {
	e.log.Info("开始运行，只点击 %s 心形", e.cfg.HeartColor)

	if err := e.Initialize(ctx); err != nil {
		return e.stopped(err)
	}
	e.log.Info("初始化完成，进入主循环，按 Ctrl+C 停止")

	for {
		if err := ctx.Err(); err != nil {
			return e.stopped(err)
		}
		if err := e.ExecuteCycle(ctx); err != nil {
			return e.stopped(err)
		}
	}
}

func (e *Engine) stopped(err error) error {
	if !interrupted(err) {
		e.log.Error("运行出错: %v", err)
		return err
	}
	e.log.Info("已被用户终止")
	e.log.Info("共 %d 个周期，点击 %d 个心形，滚动 %d 次，刷新 %d 次（失败 %d 次）",
		e.stats.Cycles, e.stats.HeartsClicked, e.stats.Scrolls, e.stats.Refreshes, e.stats.FailedRefreshes)
	return nil
}

func interrupted(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ExecuteCycle 执行一个周期
//
// 点了心形就清零滚动计数，否则滚动一次并累加；
// 任一计数达到阈值时刷新。
func (e *Engine) ExecuteCycle(ctx context.Context) error {
	hearts, err := e.clickHearts(ctx)
	e.counters.ClicksSinceRefresh += hearts
	e.stats.HeartsClicked += hearts
	if err != nil {
		return err
	}

	if hearts == 0 {
		if err := e.scroller.Execute(ctx); err != nil {
			return err
		}
		e.counters.ScrollsWithoutHearts++
		e.stats.Scrolls++
		if err := e.clock.Sleep(ctx, e.cfg.ScrollPause); err != nil {
			return err
		}
	} else {
		e.counters.ScrollsWithoutHearts = 0
	}

	e.stats.Cycles++
	e.log.Info("周期完成 %s，刷新后点击: %d，无心形滚动: %d",
		e.now().Format("2006-01-02 15:04:05"), e.counters.ClicksSinceRefresh, e.counters.ScrollsWithoutHearts)

	if e.counters.ClicksSinceRefresh >= e.cfg.MaxClicksBeforeRefresh ||
		e.counters.ScrollsWithoutHearts >= e.cfg.MaxScrollsWithoutHearts {
		return e.PerformRefresh(ctx)
	}
	return nil
}

// clickHearts 最多尝试 HeartAttempts 次，某次没点到就提前结束
func (e *Engine) clickHearts(ctx context.Context) (int, error) {
	total := 0
	for attempt := 0; attempt < e.cfg.HeartAttempts; attempt++ {
		n, err := e.heart.Execute(ctx)
		total += n
		if err != nil {
			return total, err
		}
		if n == 0 {
			break
		}
		if err := e.clock.Sleep(ctx, e.cfg.AttemptPause); err != nil {
			return total, err
		}
	}
	return total, nil
}

// PerformRefresh 点击刷新按钮并清零计数
// 找不到刷新按钮时只记录日志，计数同样清零。
func (e *Engine) PerformRefresh(ctx context.Context) error {
	defer e.resetCounters()

	e.log.Info("刷新页面...")
	n, err := e.refresh.Execute(ctx)
	if err != nil {
		return err
	}
	if n == 0 {
		e.stats.FailedRefreshes++
		e.log.Warn("刷新失败，继续运行")
		return nil
	}

	e.stats.Refreshes++
	e.log.Info("等待页面加载 %.1f 秒", e.cfg.PageLoadTime.Seconds())
	return e.clock.Sleep(ctx, e.cfg.PageLoadTime)
}

func (e *Engine) resetCounters() {
	e.counters = Counters{}
}
