package engine

import (
	"github.com/zoeyai/heartclicker/pkg/auto"
	"github.com/zoeyai/heartclicker/pkg/strategy"
)

// State 粗粒度屏幕状态
type State string

const (
	// StateHome 屏幕上能看到主页锚点图标
	StateHome State = "home"
	// StateUnknown 其他情况
	StateUnknown State = "unknown"
)

// StateDetector 通过锚点图标判断是否处于主页
type StateDetector struct {
	locator    strategy.Locator
	anchor     string
	confidence float64
}

// NewStateDetector 创建状态检测器
func NewStateDetector(locator strategy.Locator, anchor string, confidence float64) *StateDetector {
	return &StateDetector{locator: locator, anchor: anchor, confidence: confidence}
}

// Locate 返回锚点图标位置，未找到返回 nil
func (d *StateDetector) Locate() (*auto.Point, error) {
	return d.locator.FindBest(d.anchor, d.confidence)
}

// DetectState 判断当前状态
// 与 Locate 相同，锚点得分必须严格大于阈值才算找到。
func (d *StateDetector) DetectState() (State, error) {
	pos, err := d.Locate()
	if err != nil {
		return StateUnknown, err
	}
	if pos != nil {
		return StateHome, nil
	}
	return StateUnknown, nil
}
