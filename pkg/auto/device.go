package auto

import (
	"fmt"
	"image"
	"time"

	"github.com/go-vgo/robotgo"
)

// clickSettle 移动后点击前的短暂延迟，确保鼠标到位
const clickSettle = 50 * time.Millisecond

// RobotDevice 基于 robotgo 的 Device 实现
type RobotDevice struct{}

// NewRobotDevice 创建 robotgo 设备
func NewRobotDevice() *RobotDevice {
	return &RobotDevice{}
}

// CaptureScreen 截取全屏
func (d *RobotDevice) CaptureScreen() (image.Image, error) {
	img, err := robotgo.CaptureImg()
	if err != nil {
		return nil, fmt.Errorf("截屏失败: %w", err)
	}
	return img, nil
}

// ScreenSize 获取屏幕尺寸
func (d *RobotDevice) ScreenSize() (width, height int) {
	return robotgo.GetScreenSize()
}

// Click 在指定位置左键单击
func (d *RobotDevice) Click(p Point) {
	robotgo.Move(p.X, p.Y)
	robotgo.MilliSleep(int(clickSettle / time.Millisecond))
	robotgo.Click("left", false)
}

// MoveTo 移动鼠标到指定位置
func (d *RobotDevice) MoveTo(p Point) {
	robotgo.Move(p.X, p.Y)
}

// MoveBy 相对移动鼠标
func (d *RobotDevice) MoveBy(dx, dy int) {
	robotgo.MoveRelative(dx, dy)
}

// Scroll 滚动
// 正数向上，负数向下
func (d *RobotDevice) Scroll(amount int) {
	switch {
	case amount < 0:
		robotgo.ScrollDir(-amount, "down")
	case amount > 0:
		robotgo.ScrollDir(amount, "up")
	}
}

// TypeText 输入文字
func (d *RobotDevice) TypeText(text string) {
	robotgo.TypeStr(text)
}

// PressKey 按键
func (d *RobotDevice) PressKey(name string) {
	robotgo.KeyTap(name)
}

// CursorPosition 获取鼠标位置
func (d *RobotDevice) CursorPosition() Point {
	x, y := robotgo.Location()
	return Point{X: x, Y: y}
}
