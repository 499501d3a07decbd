// Package permissions 检查截屏和模拟输入所需的系统权限
package permissions

import "strings"

// Status 权限状态
type Status struct {
	Accessibility   bool
	ScreenRecording bool
}

// AllGranted 是否全部授权
func (s Status) AllGranted() bool {
	return s.Accessibility && s.ScreenRecording
}

// Missing 缺少的权限说明，全部授权时为空
func (s Status) Missing() []string {
	var missing []string
	if !s.Accessibility {
		missing = append(missing, "辅助功能 (用于控制鼠标和键盘)")
	}
	if !s.ScreenRecording {
		missing = append(missing, "屏幕录制 (用于截屏)")
	}
	return missing
}

// Instructions 授权指引，全部授权时为空字符串
func Instructions(s Status) string {
	missing := s.Missing()
	if len(missing) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("缺少以下权限:\n")
	for _, m := range missing {
		b.WriteString("  - ")
		b.WriteString(m)
		b.WriteString("\n")
	}
	b.WriteString("请在 系统设置 > 隐私与安全性 中授权，授权后需要重启程序")
	return b.String()
}
