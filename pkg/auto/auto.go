// Package auto 提供屏幕与输入自动化的共享类型和实现。
// 引擎只依赖 Device 和 Clock 两个接口，具体实现基于 robotgo。
package auto

import (
	"context"
	"fmt"
	"image"
	"math"
	"time"
)

// Point 表示二维坐标点（输入坐标空间）
type Point struct {
	X int
	Y int
}

// String 返回 "(x, y)" 形式
func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// Add 返回偏移后的点
func (p Point) Add(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Device 屏幕与输入设备
//
// 所有方法都是同步的。截图返回物理像素图像，其余方法使用输入坐标。
type Device interface {
	// CaptureScreen 截取主屏幕
	CaptureScreen() (image.Image, error)
	// ScreenSize 输入坐标空间下的屏幕尺寸
	ScreenSize() (width, height int)
	// Click 移动到指定位置并左键单击
	Click(p Point)
	// MoveTo 移动鼠标到指定位置
	MoveTo(p Point)
	// MoveBy 相对当前位置移动鼠标
	MoveBy(dx, dy int)
	// Scroll 滚动，负数表示内容向下
	Scroll(amount int)
	// TypeText 输入文字
	TypeText(text string)
	// PressKey 按键
	PressKey(name string)
	// CursorPosition 当前鼠标位置
	CursorPosition() Point
}

// Clock 固定时长等待
type Clock interface {
	// Sleep 等待 d，ctx 取消时提前返回 ctx.Err()
	Sleep(ctx context.Context, d time.Duration) error
}

// RealClock 基于定时器的真实时钟
type RealClock struct{}

// Sleep 实现 Clock
func (RealClock) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// ScaleCoord 按比例缩放坐标值
func ScaleCoord(value int, scale float64) int {
	if scale <= 0 {
		return value
	}
	return int(math.Round(float64(value) / scale))
}
