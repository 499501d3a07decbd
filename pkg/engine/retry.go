package engine

import (
	"context"
	"time"
)

// Operator 人工介入
// 自动流程找不到界面元素时，阻塞等待操作者手动完成并确认。
type Operator interface {
	WaitForManual(ctx context.Context, message string) error
}

// AppProbe 检查应用进程是否在运行
type AppProbe interface {
	IsRunning(name string) bool
}

// Retry 有上限的重试，失败后交给操作者
type Retry struct {
	// Name 步骤名称，用于日志
	Name string
	// Attempts 最大尝试次数
	Attempts int
	// Interval 两次尝试之间的等待，0 表示立即重试
	Interval time.Duration
	// Fallback 重试耗尽后展示给操作者的提示
	Fallback string
}

// step 单次尝试，返回是否成功
type step func(ctx context.Context) (bool, error)

// run 执行重试
// 成功返回 true；重试耗尽后等待操作者确认并返回 false，调用方按成功继续。
func (r Retry) run(ctx context.Context, e *Engine, try step) (bool, error) {
	for attempt := 1; attempt <= r.Attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		ok, err := try(ctx)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}

		e.log.Warn("%s未成功，尝试 %d/%d", r.Name, attempt, r.Attempts)
		if r.Interval > 0 {
			if err := e.clock.Sleep(ctx, r.Interval); err != nil {
				return false, err
			}
		}
	}

	return false, e.manual(ctx, r.Fallback)
}
