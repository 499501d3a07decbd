package strategy

import (
	"context"
)

// Scroller 向下滚动页面内容
type Scroller struct {
	env    Env
	amount int
}

// NewScroller 创建滚动动作
func NewScroller(env Env, amount int) *Scroller {
	return &Scroller{env: env, amount: amount}
}

// Execute 滚动一次，不检测是否已到底部
func (s *Scroller) Execute(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.env.Device.Scroll(-s.amount)
	s.env.logger().Info("滚动 %d 格", s.amount)
	return nil
}
