package auto

import "image"

// CaptureMeta 截图元信息
//
// robotgo 截图始终是物理像素，而输入坐标在 HiDPI 屏幕上可能是逻辑坐标。
// ScaleX/ScaleY = 截图像素尺寸 / 输入坐标空间尺寸。
type CaptureMeta struct {
	ScaleX float64
	ScaleY float64
}

// BuildCaptureMeta 对比截图尺寸与屏幕尺寸，得到坐标缩放比例
func BuildCaptureMeta(img image.Image, screenW, screenH int) CaptureMeta {
	bounds := img.Bounds()
	imgW := bounds.Dx()
	imgH := bounds.Dy()

	scaleX := 1.0
	if screenW > 0 && imgW > 0 {
		scaleX = float64(imgW) / float64(screenW)
	}
	scaleY := 1.0
	if screenH > 0 && imgH > 0 {
		scaleY = float64(imgH) / float64(screenH)
	}

	return CaptureMeta{ScaleX: scaleX, ScaleY: scaleY}
}

// AdjustPoint 截图坐标 → 输入坐标
func AdjustPoint(p Point, meta CaptureMeta) Point {
	return Point{
		X: ScaleCoord(p.X, meta.ScaleX),
		Y: ScaleCoord(p.Y, meta.ScaleY),
	}
}
