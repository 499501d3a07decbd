// Package autotest 提供用于测试的 Device 和 Clock 实现
package autotest

import (
	"context"
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/zoeyai/heartclicker/pkg/auto"
)

// Device 记录所有输入事件的假设备
type Device struct {
	mu     sync.Mutex
	Screen image.Image
	Width  int
	Height int
	Cursor auto.Point
	Events []string
}

// NewDevice 创建 w*h 的假设备
func NewDevice(w, h int) *Device {
	return &Device{
		Screen: image.NewRGBA(image.Rect(0, 0, w, h)),
		Width:  w,
		Height: h,
	}
}

func (d *Device) record(format string, args ...interface{}) {
	d.Events = append(d.Events, fmt.Sprintf(format, args...))
}

// CaptureScreen 返回预设截图
func (d *Device) CaptureScreen() (image.Image, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.Screen, nil
}

// ScreenSize 返回预设尺寸
func (d *Device) ScreenSize() (int, int) {
	return d.Width, d.Height
}

// Click 记录 "click x,y"
func (d *Device) Click(p auto.Point) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Cursor = p
	d.record("click %d,%d", p.X, p.Y)
}

// MoveTo 记录 "move x,y"
func (d *Device) MoveTo(p auto.Point) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Cursor = p
	d.record("move %d,%d", p.X, p.Y)
}

// MoveBy 记录 "moveby dx,dy"
func (d *Device) MoveBy(dx, dy int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Cursor = d.Cursor.Add(dx, dy)
	d.record("moveby %d,%d", dx, dy)
}

// Scroll 记录 "scroll n"
func (d *Device) Scroll(amount int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("scroll %d", amount)
}

// TypeText 记录 "type text"
func (d *Device) TypeText(text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("type %s", text)
}

// PressKey 记录 "key name"
func (d *Device) PressKey(name string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("key %s", name)
}

// CursorPosition 返回当前鼠标位置
func (d *Device) CursorPosition() auto.Point {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.Cursor
}

// Count 统计以 prefix 开头的事件数
func (d *Device) Count(prefix string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for _, e := range d.Events {
		if len(e) >= len(prefix) && e[:len(prefix)] == prefix {
			n++
		}
	}
	return n
}

// Clock 不真正等待的时钟，记录每次等待时长
type Clock struct {
	mu     sync.Mutex
	Sleeps []time.Duration
	// CancelAfter 大于 0 时，第 CancelAfter 次等待调用 Cancel
	CancelAfter int
	Cancel      context.CancelFunc
}

// Sleep 实现 auto.Clock
func (c *Clock) Sleep(ctx context.Context, d time.Duration) error {
	c.mu.Lock()
	c.Sleeps = append(c.Sleeps, d)
	n := len(c.Sleeps)
	c.mu.Unlock()

	if c.CancelAfter > 0 && n == c.CancelAfter && c.Cancel != nil {
		c.Cancel()
	}
	return ctx.Err()
}

// Total 所有等待时长之和
func (c *Clock) Total() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	var total time.Duration
	for _, d := range c.Sleeps {
		total += d
	}
	return total
}
