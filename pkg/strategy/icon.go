package strategy

import (
	"context"
	"time"

	"github.com/zoeyai/heartclicker/pkg/vision"
)

// IconClicker 点击屏幕上所有匹配的图标
//
// 每次 Execute 只扫描一次，之后按扫描顺序逐个点击。点击前面的图标
// 可能让后面的图标移位，这里仍使用最初扫描得到的坐标。
type IconClicker struct {
	env        Env
	template   string
	confidence float64
	filter     vision.ColorFilter
	nudgeX     int
	pause      time.Duration
}

// IconOption IconClicker 选项
type IconOption func(*IconClicker)

// WithNudge 点击后鼠标水平偏移量，避免悬停高亮遮挡下一个图标
func WithNudge(dx int) IconOption {
	return func(c *IconClicker) {
		c.nudgeX = dx
	}
}

// WithClickPause 两次点击之间的等待
func WithClickPause(d time.Duration) IconOption {
	return func(c *IconClicker) {
		c.pause = d
	}
}

// NewIconClicker 创建多目标点击策略
func NewIconClicker(env Env, template string, confidence float64, filter vision.ColorFilter, opts ...IconOption) *IconClicker {
	c := &IconClicker{
		env:        env,
		template:   template,
		confidence: confidence,
		filter:     filter,
		nudgeX:     -30,
		pause:      1500 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Execute 点击本次扫描到的所有图标，返回处理的图标数
func (c *IconClicker) Execute(ctx context.Context) (int, error) {
	icons, err := c.env.Locator.FindAll(c.template, c.confidence, c.filter)
	if err != nil {
		return 0, err
	}

	clicked := 0
	for _, icon := range icons {
		c.env.Device.Click(icon)
		c.env.logger().Info("点击图标 %s", icon)
		clicked++

		c.env.Device.MoveBy(c.nudgeX, 0)
		if err := c.env.Clock.Sleep(ctx, c.pause); err != nil {
			return clicked, err
		}
	}
	return clicked, nil
}
