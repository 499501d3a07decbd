package strategy

import (
	"context"
)

// RefreshClicker 点击单个最佳匹配（刷新按钮）
// 找到并点击返回 1，未找到返回 0；不在内部重试。
type RefreshClicker struct {
	env          Env
	template     string
	confidence   float64
	moveDistance int
}

// NewRefreshClicker 创建刷新点击策略
// moveDistance 点击后鼠标下移的距离，让鼠标停在不影响页面的位置。
func NewRefreshClicker(env Env, template string, confidence float64, moveDistance int) *RefreshClicker {
	return &RefreshClicker{
		env:          env,
		template:     template,
		confidence:   confidence,
		moveDistance: moveDistance,
	}
}

// Execute 点击刷新按钮
func (r *RefreshClicker) Execute(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	pos, err := r.env.Locator.FindBest(r.template, r.confidence)
	if err != nil {
		return 0, err
	}
	if pos == nil {
		r.env.logger().Warn("未找到刷新按钮")
		return 0, nil
	}

	r.env.Device.Click(*pos)
	r.env.logger().Info("点击刷新按钮 %s", *pos)

	cur := r.env.Device.CursorPosition()
	r.env.Device.MoveTo(cur.Add(0, r.moveDistance))
	return 1, nil
}
