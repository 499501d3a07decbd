package vision

import (
	"image"
	"image/color"
)

// ColorFilter 单像素颜色判定
// 用于剔除形状匹配但颜色不对的候选（例如粉色模板匹配到灰色心形）。
type ColorFilter func(c color.RGBA) bool

// PinkFilter 粉色: 红色通道高且明显高于绿色
func PinkFilter(c color.RGBA) bool {
	r, g, b := int(c.R), int(c.G), int(c.B)
	return r >= 180 && r-g >= 40 && b >= g
}

// GreyFilter 灰色: 三通道接近
func GreyFilter(c color.RGBA) bool {
	r, g, b := int(c.R), int(c.G), int(c.B)
	hi := max(r, g, b)
	lo := min(r, g, b)
	return hi-lo <= greySpread
}

// greySpread 灰色允许的通道最大差值
const greySpread = 24

// FilterFor 按颜色名称返回过滤器，未知颜色返回 nil
func FilterFor(name string) ColorFilter {
	switch name {
	case "pink":
		return PinkFilter
	case "grey", "gray":
		return GreyFilter
	default:
		return nil
	}
}

// sampleColor 读取截图中某一像素的颜色
func sampleColor(img image.Image, x, y int) color.RGBA {
	b := img.Bounds()
	return color.RGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.RGBA)
}
