package cv

import (
	"errors"
	"fmt"
	"image"
	"time"

	"gocv.io/x/gocv"
)

// ErrTemplateLoad 模板文件无法加载
// 这是配置错误，与"未找到"严格区分。
var ErrTemplateLoad = errors.New("模板加载失败")

// TemplateLoadError 模板加载错误
type TemplateLoadError struct {
	Path string
}

func (e *TemplateLoadError) Error() string {
	return fmt.Sprintf("无法读取模板图像: %s", e.Path)
}

// Unwrap 使 errors.Is(err, ErrTemplateLoad) 成立
func (e *TemplateLoadError) Unwrap() error {
	return ErrTemplateLoad
}

// ImageSizeError 图像尺寸错误
type ImageSizeError struct {
	SourceSize [2]int
	SearchSize [2]int
}

func (e *ImageSizeError) Error() string {
	return fmt.Sprintf("搜索图像尺寸 %dx%d 大于源图像 %dx%d",
		e.SearchSize[0], e.SearchSize[1], e.SourceSize[0], e.SourceSize[1])
}

// Match 一次模板匹配的结果矩阵
type Match struct {
	Surface Surface
	// TemplateWidth/TemplateHeight 模板尺寸
	TemplateWidth  int
	TemplateHeight int
	// Elapsed 匹配耗时
	Elapsed time.Duration
}

// FindBestResult 返回最佳匹配，最大得分必须严格大于 threshold
func (m *Match) FindBestResult(threshold float64) *MatchResult {
	cell, score, ok := m.Surface.Best()
	if !ok || float64(score) <= threshold {
		return nil
	}
	return newMatchResult(cell, m.TemplateWidth, m.TemplateHeight, score)
}

// FindAllResults 返回所有得分 >= threshold 的匹配，按扫描顺序
func (m *Match) FindAllResults(threshold float64) []*MatchResult {
	cells := m.Surface.Scan(threshold)
	results := make([]*MatchResult, 0, len(cells))
	for _, cell := range cells {
		results = append(results, newMatchResult(cell, m.TemplateWidth, m.TemplateHeight, m.Surface.At(cell.X, cell.Y)))
	}
	return results
}

// TemplateMatcher 基于 gocv 的模板匹配器
//
// 每次调用都重新读取模板文件，不做跨周期缓存。
type TemplateMatcher struct{}

// NewTemplateMatcher 创建模板匹配器
func NewTemplateMatcher() *TemplateMatcher {
	return &TemplateMatcher{}
}

// Match 计算截图与模板的相关系数矩阵
func (t *TemplateMatcher) Match(screen image.Image, templatePath string) (*Match, error) {
	startTime := time.Now()

	search, err := ReadImageGray(templatePath)
	if err != nil {
		return nil, err
	}
	defer search.Close()

	source, err := ImageToMat(screen)
	if err != nil {
		return nil, err
	}
	defer source.Close()

	srcGray := ToGray(source)
	defer srcGray.Close()

	if err := checkSourceLargerThanSearch(srcGray, search); err != nil {
		return nil, err
	}

	result := gocv.NewMat()
	defer result.Close()
	mask := gocv.NewMat()
	defer mask.Close()

	gocv.MatchTemplate(srcGray, search, &result, gocv.TmCcoeffNormed, mask)

	surface, err := matToSurface(result)
	if err != nil {
		return nil, err
	}

	return &Match{
		Surface:        surface,
		TemplateWidth:  search.Cols(),
		TemplateHeight: search.Rows(),
		Elapsed:        time.Since(startTime),
	}, nil
}

// matToSurface 复制 CV_32F 结果矩阵
func matToSurface(result gocv.Mat) (Surface, error) {
	if !result.IsContinuous() {
		cloned := result.Clone()
		defer cloned.Close()
		result = cloned
	}

	data, err := result.DataPtrFloat32()
	if err != nil {
		return Surface{}, fmt.Errorf("读取匹配矩阵失败: %w", err)
	}

	scores := make([]float32, len(data))
	copy(scores, data)
	return Surface{Rows: result.Rows(), Cols: result.Cols(), Scores: scores}, nil
}

// checkSourceLargerThanSearch 检查源图像是否大于搜索图像
func checkSourceLargerThanSearch(source, search gocv.Mat) error {
	if source.Rows() < search.Rows() || source.Cols() < search.Cols() {
		return &ImageSizeError{
			SourceSize: [2]int{source.Cols(), source.Rows()},
			SearchSize: [2]int{search.Cols(), search.Rows()},
		}
	}
	return nil
}
