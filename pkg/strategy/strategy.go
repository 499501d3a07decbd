// Package strategy 提供引擎使用的点击与滚动动作
package strategy

import (
	"context"

	"github.com/zoeyai/heartclicker/internal/logger"
	"github.com/zoeyai/heartclicker/pkg/auto"
	"github.com/zoeyai/heartclicker/pkg/vision"
)

// ClickStrategy 执行一次点击工作，返回完成的动作数
//
// 返回的错误只有两类: 模板无法加载，或 ctx 被取消。
type ClickStrategy interface {
	Execute(ctx context.Context) (int, error)
}

// Locator 策略需要的定位能力
type Locator interface {
	FindBest(templatePath string, confidence float64) (*auto.Point, error)
	FindAll(templatePath string, confidence float64, filter vision.ColorFilter) ([]auto.Point, error)
}

// Env 策略共享的外部依赖
type Env struct {
	Locator Locator
	Device  auto.Device
	Clock   auto.Clock
	Log     *logger.Logger
}

func (e Env) logger() *logger.Logger {
	if e.Log == nil {
		return logger.Default()
	}
	return e.Log
}
