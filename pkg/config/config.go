// Package config 管理运行参数
//
// 参数来源按优先级从低到高: 默认值 → ~/.heartclicker/config.yaml →
// 环境变量 (HEARTCLICKER_*, 可由 .env 提供) → 命令行参数 → 控制台输入。
// 引擎创建之后配置不再修改。
package config

import (
	"fmt"
	"path/filepath"
	"time"
)

// 心形颜色
const (
	ColorGrey = "grey"
	ColorPink = "pink"
)

// Templates 模板文件名
type Templates struct {
	Homing     string `yaml:"homing"`
	Browser    string `yaml:"browser"`
	AddressBar string `yaml:"address_bar"`
	Refresh    string `yaml:"refresh"`
	GreyHeart  string `yaml:"grey_heart"`
	PinkHeart  string `yaml:"pink_heart"`
}

// Config 运行配置
type Config struct {
	// 匹配阈值
	RefreshConfidence   float64 `yaml:"refresh_confidence"`
	GreyHeartConfidence float64 `yaml:"grey_heart_confidence"`
	PinkHeartConfidence float64 `yaml:"pink_heart_confidence"`
	StateConfidence     float64 `yaml:"state_confidence"`

	// 动作参数
	ScrollAmount      int `yaml:"scroll_amount"`
	MouseMoveDistance int `yaml:"mouse_move_distance"`
	ClickNudgeX       int `yaml:"click_nudge_x"`
	NavigateNudgeY    int `yaml:"navigate_nudge_y"`
	HeartAttempts     int `yaml:"heart_attempts"`

	// 等待时长
	ScrollPause  time.Duration `yaml:"scroll_pause"`
	PageLoadTime time.Duration `yaml:"page_load_time"`
	HomingDelay  time.Duration `yaml:"homing_delay"`
	ClickPause   time.Duration `yaml:"click_pause"`
	AttemptPause time.Duration `yaml:"attempt_pause"`

	// 模板
	AssetDir  string    `yaml:"asset_dir"`
	Templates Templates `yaml:"templates"`

	// 运行目标
	TargetURL               string `yaml:"target_url"`
	HeartColor              string `yaml:"heart_color"`
	UseColorFilter          bool   `yaml:"use_color_filter"`
	MaxClicksBeforeRefresh  int    `yaml:"max_clicks_before_refresh"`
	MaxScrollsWithoutHearts int    `yaml:"max_scrolls_without_hearts"`

	// 诊断
	BrowserProcess string `yaml:"browser_process"`
	SnapshotDir    string `yaml:"snapshot_dir"`
	LogLevel       string `yaml:"log_level"`
	LogFile        string `yaml:"log_file"`
}

// Default 默认配置
func Default() *Config {
	return &Config{
		RefreshConfidence:   0.7,
		GreyHeartConfidence: 0.80,
		PinkHeartConfidence: 0.95,
		StateConfidence:     0.9,

		ScrollAmount:      4,
		MouseMoveDistance: 100,
		ClickNudgeX:       -30,
		NavigateNudgeY:    75,
		HeartAttempts:     2,

		ScrollPause:  1500 * time.Millisecond,
		PageLoadTime: 6100 * time.Millisecond,
		HomingDelay:  2 * time.Second,
		ClickPause:   1500 * time.Millisecond,
		AttemptPause: 500 * time.Millisecond,

		AssetDir: ".",
		Templates: Templates{
			Homing:     "homing_icon.png",
			Browser:    "browser_icon.png",
			AddressBar: "address_bar.png",
			Refresh:    "refresh.png",
			GreyHeart:  "grey_heart.png",
			PinkHeart:  "pink_heart.png",
		},

		MaxClicksBeforeRefresh:  100,
		MaxScrollsWithoutHearts: 5,

		LogLevel: "INFO",
	}
}

// Path 返回模板的完整路径
func (c *Config) Path(name string) string {
	if c.AssetDir == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.AssetDir, name)
}

// HeartTemplate 当前颜色对应的心形模板路径
func (c *Config) HeartTemplate() string {
	if c.HeartColor == ColorGrey {
		return c.Path(c.Templates.GreyHeart)
	}
	return c.Path(c.Templates.PinkHeart)
}

// HeartConfidence 当前颜色对应的匹配阈值
func (c *Config) HeartConfidence() float64 {
	if c.HeartColor == ColorGrey {
		return c.GreyHeartConfidence
	}
	return c.PinkHeartConfidence
}

// RequiredTemplates 启动前必须存在的全部模板（两种颜色都要求）
func (c *Config) RequiredTemplates() []string {
	t := c.Templates
	names := []string{t.Refresh, t.GreyHeart, t.PinkHeart, t.Homing, t.Browser, t.AddressBar}
	paths := make([]string, len(names))
	for i, n := range names {
		paths[i] = c.Path(n)
	}
	return paths
}

// Validate 检查配置
func (c *Config) Validate() error {
	if c.HeartColor != ColorGrey && c.HeartColor != ColorPink {
		return fmt.Errorf("无效的心形颜色: %q (可选 grey/pink)", c.HeartColor)
	}
	if c.MaxClicksBeforeRefresh <= 0 {
		return fmt.Errorf("刷新前最大点击数必须大于 0: %d", c.MaxClicksBeforeRefresh)
	}
	if c.MaxScrollsWithoutHearts <= 0 {
		return fmt.Errorf("无心形最大滚动数必须大于 0: %d", c.MaxScrollsWithoutHearts)
	}
	if c.HeartAttempts <= 0 {
		return fmt.Errorf("每周期点击尝试次数必须大于 0: %d", c.HeartAttempts)
	}

	confidences := map[string]float64{
		"refresh_confidence":    c.RefreshConfidence,
		"grey_heart_confidence": c.GreyHeartConfidence,
		"pink_heart_confidence": c.PinkHeartConfidence,
		"state_confidence":      c.StateConfidence,
	}
	for name, v := range confidences {
		if v < 0 || v > 1 {
			return fmt.Errorf("%s 必须在 [0, 1] 范围内: %.2f", name, v)
		}
	}
	return nil
}
