package auto

import (
	"context"
	"errors"
	"image"
	"testing"
	"time"
)

// TestRealClockCancelled 已取消的 ctx 立即返回
func TestRealClockCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	err := RealClock{}.Sleep(ctx, time.Hour)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("应返回 context.Canceled, 实际 %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("取消后不应等待: %v", elapsed)
	}
}

// TestRealClockCancelDuringSleep 等待过程中取消
func TestRealClockCancelDuringSleep(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if err := (RealClock{}).Sleep(ctx, time.Hour); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("应返回 ctx 错误, 实际 %v", err)
	}
}

// TestRealClockNonPositive 非正时长直接返回 ctx.Err()
func TestRealClockNonPositive(t *testing.T) {
	if err := (RealClock{}).Sleep(context.Background(), 0); err != nil {
		t.Errorf("未取消时应返回 nil, 实际 %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := (RealClock{}).Sleep(ctx, -time.Second); !errors.Is(err, context.Canceled) {
		t.Errorf("已取消时应返回 context.Canceled, 实际 %v", err)
	}
}

// TestRealClockShortSleep 短时等待正常结束
func TestRealClockShortSleep(t *testing.T) {
	d := 5 * time.Millisecond
	start := time.Now()
	if err := (RealClock{}).Sleep(context.Background(), d); err != nil {
		t.Fatalf("等待失败: %v", err)
	}
	if elapsed := time.Since(start); elapsed < d {
		t.Errorf("等待时间不足: %v", elapsed)
	}
}

// TestAdjustPoint 截图坐标到输入坐标的缩放与四舍五入
func TestAdjustPoint(t *testing.T) {
	tests := []struct {
		name     string
		img      image.Rectangle
		screenW  int
		screenH  int
		in, want Point
	}{
		{"1x", image.Rect(0, 0, 1440, 900), 1440, 900, Point{X: 101, Y: 51}, Point{X: 101, Y: 51}},
		{"2x", image.Rect(0, 0, 2880, 1800), 1440, 900, Point{X: 101, Y: 51}, Point{X: 51, Y: 26}},
		{"2x 整除", image.Rect(0, 0, 2880, 1800), 1440, 900, Point{X: 100, Y: 40}, Point{X: 50, Y: 20}},
		{"1.5x", image.Rect(0, 0, 2160, 1350), 1440, 900, Point{X: 100, Y: 50}, Point{X: 67, Y: 33}},
		{"屏幕尺寸未知", image.Rect(0, 0, 2880, 1800), 0, 0, Point{X: 100, Y: 50}, Point{X: 100, Y: 50}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := BuildCaptureMeta(image.NewGray(tt.img), tt.screenW, tt.screenH)
			if got := AdjustPoint(tt.in, meta); got != tt.want {
				t.Errorf("AdjustPoint(%v) = %v, want %v (scale %.2f x %.2f)", tt.in, got, tt.want, meta.ScaleX, meta.ScaleY)
			}
		})
	}
}
