package vision

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/zoeyai/heartclicker/pkg/vision/cv"
)

const (
	// maxAnnotations 单张截图最多标注的匹配数
	maxAnnotations = 64
	labelFontSize  = 12
)

var (
	labelFont     *truetype.Font
	labelFontOnce sync.Once
)

// loadLabelFont 加载标注字体（Go 内置字体）
func loadLabelFont() *truetype.Font {
	labelFontOnce.Do(func() {
		f, err := freetype.ParseFont(goregular.TTF)
		if err == nil {
			labelFont = f
		}
	})
	return labelFont
}

// Snapshotter 保存带匹配框标注的截图
type Snapshotter struct {
	dir string
	now func() time.Time
}

// NewSnapshotter 创建截图保存器
func NewSnapshotter(dir string) *Snapshotter {
	return &Snapshotter{dir: dir, now: time.Now}
}

// Save 绘制匹配框和置信度并写入 PNG，返回文件路径
func (s *Snapshotter) Save(screen image.Image, templatePath string, results []*cv.MatchResult) (string, error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("创建目录失败: %w", err)
	}

	rgba := Annotate(screen, results)

	name := strings.TrimSuffix(filepath.Base(templatePath), filepath.Ext(templatePath))
	path := filepath.Join(s.dir, fmt.Sprintf("%s_%s.png", s.now().Format("20060102_150405.000"), name))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("创建文件失败: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, rgba); err != nil {
		return "", fmt.Errorf("PNG 编码失败: %w", err)
	}
	return path, nil
}

// Annotate 复制截图并画出匹配框
func Annotate(screen image.Image, results []*cv.MatchResult) *image.RGBA {
	bounds := screen.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), screen, bounds.Min, draw.Src)

	green := color.RGBA{0, 255, 0, 255}
	for i, r := range results {
		if i >= maxAnnotations {
			break
		}
		rect := image.Rect(r.Rectangle.TopLeft.X, r.Rectangle.TopLeft.Y,
			r.Rectangle.BottomRight.X, r.Rectangle.BottomRight.Y)
		drawRect(rgba, rect, green)
		drawLabel(rgba, rect.Min.X, rect.Min.Y-labelFontSize-2, fmt.Sprintf("%.2f", r.Confidence), green)
	}
	return rgba
}

// drawRect 画 1 像素矩形边框
func drawRect(img *image.RGBA, r image.Rectangle, col color.Color) {
	src := image.NewUniform(col)
	edges := []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1),
		image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y),
		image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y),
	}
	for _, e := range edges {
		draw.Draw(img, e.Intersect(img.Bounds()), src, image.Point{}, draw.Src)
	}
}

// drawLabel 在 (x, y) 处绘制文字，y 为文字顶部
func drawLabel(img *image.RGBA, x, y int, text string, col color.Color) {
	f := loadLabelFont()
	if f == nil {
		return
	}
	if y < 0 {
		y = 0
	}

	c := freetype.NewContext()
	c.SetDPI(72)
	c.SetFont(f)
	c.SetFontSize(labelFontSize)
	c.SetClip(img.Bounds())
	c.SetDst(img)
	c.SetSrc(image.NewUniform(col))
	c.SetHinting(font.HintingFull)

	pt := freetype.Pt(x, y+int(c.PointToFixed(labelFontSize)>>6))
	_, _ = c.DrawString(text, pt)
}
