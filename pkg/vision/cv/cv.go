// Package cv 提供单尺度模板匹配
//
// 匹配方法固定为灰度图上的归一化相关系数 (TM_CCOEFF_NORMED)，
// 结果矩阵被复制为 Surface，之后的阈值判断全部是纯 Go 代码。
//
// 基本用法:
//
//	m := cv.NewTemplateMatcher()
//	match, err := m.Match(screen, "pink_heart.png")
//	if err != nil {
//	    return err
//	}
//	for _, r := range match.FindAllResults(0.95) {
//	    fmt.Printf("找到位置: (%d, %d)\n", r.Result.X, r.Result.Y)
//	}
package cv
