package cv

// Surface 相关系数矩阵
//
// Scores 按行优先存放，长度为 Rows*Cols。单元格 (x, y) 表示模板左上角
// 放在截图 (x, y) 处时的匹配得分。
type Surface struct {
	Rows   int
	Cols   int
	Scores []float32
}

// At 返回单元格 (x, y) 的得分
func (s Surface) At(x, y int) float32 {
	return s.Scores[y*s.Cols+x]
}

// Empty 是否为空矩阵
func (s Surface) Empty() bool {
	return s.Rows <= 0 || s.Cols <= 0 || len(s.Scores) < s.Rows*s.Cols
}

// Best 返回最大得分及其位置
// 多个相同最大值时取行优先顺序的第一个，与 minMaxLoc 一致。
func (s Surface) Best() (Point, float32, bool) {
	if s.Empty() {
		return Point{}, 0, false
	}

	best := 0
	for i := 1; i < s.Rows*s.Cols; i++ {
		if s.Scores[i] > s.Scores[best] {
			best = i
		}
	}
	return Point{X: best % s.Cols, Y: best / s.Cols}, s.Scores[best], true
}

// Scan 返回所有得分 >= threshold 的单元格，自上而下、自左而右
// 不做去重，相邻单元格会各自产生一个结果。
func (s Surface) Scan(threshold float64) []Point {
	if s.Empty() {
		return nil
	}

	var cells []Point
	for y := 0; y < s.Rows; y++ {
		row := s.Scores[y*s.Cols : (y+1)*s.Cols]
		for x, score := range row {
			if float64(score) >= threshold {
				cells = append(cells, Point{X: x, Y: y})
			}
		}
	}
	return cells
}
