package engine

import (
	"context"
	"fmt"
	"time"
)

// Phase 初始化阶段
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseAtHome
	PhaseApplicationOpen
	PhaseOnTargetPage
	PhaseCycling
)

func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not-started"
	case PhaseAtHome:
		return "at-home"
	case PhaseApplicationOpen:
		return "application-open"
	case PhaseOnTargetPage:
		return "on-target-page"
	case PhaseCycling:
		return "cycling"
	default:
		return "unknown"
	}
}

const (
	homeAttempts    = 5
	homeInterval    = time.Second
	openAttempts    = 5
	addressPolls    = 10
	addressInterval = time.Second
)

// Initialize 回到主页 → 打开浏览器 → 打开目标页面
// 每一步自动失败后都交给操作者手动完成，然后继续下一步。
func (e *Engine) Initialize(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	state, err := e.detector.DetectState()
	if err != nil {
		return err
	}
	e.log.Info("当前状态: %s", state)

	if err := e.GoHome(ctx); err != nil {
		return err
	}
	if err := e.OpenApplication(ctx); err != nil {
		return err
	}
	if err := e.NavigateToTarget(ctx); err != nil {
		return err
	}
	e.phase = PhaseCycling
	return nil
}

// GoHome 点击主页锚点图标
func (e *Engine) GoHome(ctx context.Context) error {
	r := Retry{
		Name:     "回到主页",
		Attempts: homeAttempts,
		Interval: homeInterval,
		Fallback: "无法自动回到主页，请手动回到主页后按回车继续",
	}
	_, err := r.run(ctx, e, func(ctx context.Context) (bool, error) {
		pos, err := e.detector.Locate()
		if err != nil || pos == nil {
			return false, err
		}
		e.device.Click(*pos)
		e.log.Info("点击主页图标 %s", *pos)
		return true, e.clock.Sleep(ctx, e.cfg.HomingDelay)
	})
	if err != nil {
		return err
	}
	e.phase = PhaseAtHome
	return nil
}

// OpenApplication 点击浏览器图标并等待地址栏出现
func (e *Engine) OpenApplication(ctx context.Context) error {
	r := Retry{
		Name:     "打开浏览器",
		Attempts: openAttempts,
		Fallback: e.openFallback(),
	}
	_, err := r.run(ctx, e, func(ctx context.Context) (bool, error) {
		pos, err := e.locator.FindBest(e.cfg.Path(e.cfg.Templates.Browser), e.cfg.StateConfidence)
		if err != nil || pos == nil {
			return false, err
		}
		e.device.Click(*pos)
		e.log.Info("点击浏览器图标 %s", *pos)

		for i := 0; i < addressPolls; i++ {
			if err := e.clock.Sleep(ctx, addressInterval); err != nil {
				return false, err
			}
			bar, err := e.locator.FindBest(e.cfg.Path(e.cfg.Templates.AddressBar), e.cfg.StateConfidence)
			if err != nil {
				return false, err
			}
			if bar != nil {
				e.log.Info("浏览器已打开")
				return true, nil
			}
		}
		return false, nil
	})
	if err != nil {
		return err
	}
	e.phase = PhaseApplicationOpen
	return nil
}

func (e *Engine) openFallback() string {
	msg := "无法自动打开浏览器，请手动打开后按回车继续"
	name := e.cfg.BrowserProcess
	if e.probe == nil || name == "" {
		return msg
	}
	if e.probe.IsRunning(name) {
		return fmt.Sprintf("%s（进程 %s 正在运行，可能只是窗口不在前台）", msg, name)
	}
	return fmt.Sprintf("%s（进程 %s 未运行）", msg, name)
}

// NavigateToTarget 在地址栏输入目标地址并等待页面加载
func (e *Engine) NavigateToTarget(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	pos, err := e.locator.FindBest(e.cfg.Path(e.cfg.Templates.AddressBar), e.cfg.StateConfidence)
	if err != nil {
		return err
	}
	if pos == nil {
		if err := e.manual(ctx, fmt.Sprintf("未找到地址栏，请手动打开 %s 后按回车继续", e.cfg.TargetURL)); err != nil {
			return err
		}
		e.phase = PhaseOnTargetPage
		return nil
	}

	e.device.Click(*pos)
	e.device.TypeText(e.cfg.TargetURL)
	e.device.PressKey("enter")
	e.log.Info("打开 %s，等待页面加载 %.1f 秒", e.cfg.TargetURL, e.cfg.PageLoadTime.Seconds())
	if err := e.clock.Sleep(ctx, e.cfg.PageLoadTime); err != nil {
		return err
	}
	e.device.MoveBy(0, e.cfg.NavigateNudgeY)
	e.phase = PhaseOnTargetPage
	return nil
}

// manual 等待操作者；没有配置操作者时直接继续
func (e *Engine) manual(ctx context.Context, message string) error {
	e.log.Warn("%s", message)
	if e.operator == nil {
		return ctx.Err()
	}
	return e.operator.WaitForManual(ctx, message)
}
