package cv

// Point 表示二维坐标点（截图像素坐标）
type Point struct {
	X int
	Y int
}

// Rectangle 表示矩形区域（四个角点）
type Rectangle struct {
	TopLeft     Point
	BottomLeft  Point
	BottomRight Point
	TopRight    Point
}

// MatchResult 图像匹配结果
type MatchResult struct {
	// Result 匹配区域中心点
	Result Point
	// Rectangle 匹配区域的四个角点
	Rectangle Rectangle
	// Confidence 相关系数
	Confidence float64
}

// newMatchResult 由结果矩阵中的单元格构造匹配结果
// 中心点 = 左上角 + 模板尺寸的一半（整数除法）
func newMatchResult(cell Point, w, h int, score float32) *MatchResult {
	xMin, yMin := cell.X, cell.Y

	return &MatchResult{
		Result: Point{X: xMin + w/2, Y: yMin + h/2},
		// 四个角点: 左上 -> 左下 -> 右下 -> 右上
		Rectangle: Rectangle{
			TopLeft:     Point{X: xMin, Y: yMin},
			BottomLeft:  Point{X: xMin, Y: yMin + h},
			BottomRight: Point{X: xMin + w, Y: yMin + h},
			TopRight:    Point{X: xMin + w, Y: yMin},
		},
		Confidence: float64(score),
	}
}
