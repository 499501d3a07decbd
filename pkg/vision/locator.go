// Package vision 在当前屏幕上定位模板图像
//
// Locator 每次查询都重新截屏、重新读取模板，不缓存任何坐标。
// 未找到是正常结果（nil 或空切片）；只有模板无法加载才返回错误。
package vision

import (
	"errors"
	"fmt"
	"image"
	"path/filepath"

	"github.com/zoeyai/heartclicker/internal/logger"
	"github.com/zoeyai/heartclicker/pkg/auto"
	"github.com/zoeyai/heartclicker/pkg/vision/cv"
)

// Matcher 计算截图与模板的相关系数矩阵
type Matcher interface {
	Match(screen image.Image, templatePath string) (*cv.Match, error)
}

// Locator 模板定位器
type Locator struct {
	device    auto.Device
	matcher   Matcher
	log       *logger.Logger
	snapshots *Snapshotter
}

// Option 定位器选项
type Option func(*Locator)

// WithMatcher 替换匹配器
func WithMatcher(m Matcher) Option {
	return func(l *Locator) {
		l.matcher = m
	}
}

// WithLogger 设置日志记录器
func WithLogger(log *logger.Logger) Option {
	return func(l *Locator) {
		l.log = log
	}
}

// WithSnapshotDir 将命中的截图标注后保存到 dir（调试用）
func WithSnapshotDir(dir string) Option {
	return func(l *Locator) {
		if dir != "" {
			l.snapshots = NewSnapshotter(dir)
		}
	}
}

// NewLocator 创建定位器
func NewLocator(device auto.Device, opts ...Option) *Locator {
	l := &Locator{
		device:  device,
		matcher: cv.NewTemplateMatcher(),
		log:     logger.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// FindBest 查找最佳匹配
// 最大相关系数严格大于 confidence 时返回其中心点，否则返回 nil。
func (l *Locator) FindBest(templatePath string, confidence float64) (*auto.Point, error) {
	screen, meta, match, err := l.match(templatePath)
	if err != nil || match == nil {
		return nil, err
	}

	result := match.FindBestResult(confidence)
	l.log.LogEvent("BEST", result != nil, msOf(match), describe(templatePath, confidence, result))
	if result == nil {
		return nil, nil
	}

	l.snapshot(screen, templatePath, []*cv.MatchResult{result})

	pos := auto.AdjustPoint(auto.Point{X: result.Result.X, Y: result.Result.Y}, meta)
	return &pos, nil
}

// FindAll 查找所有匹配
// 每个得分 >= confidence 的单元格各产生一个中心点，按自上而下、自左而右的顺序，
// 不做去重。filter 不为 nil 时，只保留中心像素颜色通过判定的候选。
func (l *Locator) FindAll(templatePath string, confidence float64, filter ColorFilter) ([]auto.Point, error) {
	screen, meta, match, err := l.match(templatePath)
	if err != nil || match == nil {
		return nil, err
	}

	candidates := match.FindAllResults(confidence)
	kept := make([]*cv.MatchResult, 0, len(candidates))
	points := make([]auto.Point, 0, len(candidates))
	for _, c := range candidates {
		if filter != nil && !filter(sampleColor(screen, c.Result.X, c.Result.Y)) {
			continue
		}
		kept = append(kept, c)
		points = append(points, auto.AdjustPoint(auto.Point{X: c.Result.X, Y: c.Result.Y}, meta))
	}

	l.log.LogEvent("ALL", len(points) > 0, msOf(match),
		fmt.Sprintf("%s >= %.2f: %d 个候选, 保留 %d 个", filepath.Base(templatePath), confidence, len(candidates), len(points)))

	if len(kept) > 0 {
		l.snapshot(screen, templatePath, kept)
	}
	return points, nil
}

// match 截屏并计算相关系数矩阵
// 只有模板无法加载才返回错误；截屏失败、模板大于截图等其他失败
// 都按未找到处理，match 为 nil。
func (l *Locator) match(templatePath string) (image.Image, auto.CaptureMeta, *cv.Match, error) {
	screen, err := l.device.CaptureScreen()
	if err != nil {
		l.log.Warn("截屏失败: %v", err)
		return nil, auto.CaptureMeta{}, nil, nil
	}

	w, h := l.device.ScreenSize()
	meta := auto.BuildCaptureMeta(screen, w, h)

	match, err := l.matcher.Match(screen, templatePath)
	if err != nil {
		if errors.Is(err, cv.ErrTemplateLoad) {
			return nil, meta, nil, fmt.Errorf("匹配 %s 失败: %w", templatePath, err)
		}
		var sizeErr *cv.ImageSizeError
		if errors.As(err, &sizeErr) {
			l.log.Debug("%s: %v", filepath.Base(templatePath), err)
		} else {
			l.log.Warn("匹配 %s 失败: %v", filepath.Base(templatePath), err)
		}
		return screen, meta, nil, nil
	}
	return screen, meta, match, nil
}

func (l *Locator) snapshot(screen image.Image, templatePath string, results []*cv.MatchResult) {
	if l.snapshots == nil {
		return
	}
	path, err := l.snapshots.Save(screen, templatePath, results)
	if err != nil {
		l.log.Warn("保存调试截图失败: %v", err)
		return
	}
	l.log.Debug("调试截图已保存: %s", path)
}

func msOf(m *cv.Match) float64 {
	return float64(m.Elapsed.Microseconds()) / 1000
}

func describe(templatePath string, confidence float64, r *cv.MatchResult) string {
	name := filepath.Base(templatePath)
	if r == nil {
		return fmt.Sprintf("%s > %.2f: 未找到", name, confidence)
	}
	return fmt.Sprintf("%s > %.2f: (%d, %d) 置信度 %.3f", name, confidence, r.Result.X, r.Result.Y, r.Confidence)
}
