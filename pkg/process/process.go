// Package process 查询本机进程，用于判断目标应用是否已在运行
package process

import (
	"fmt"
	"strings"

	"github.com/shirou/gopsutil/v4/process"
)

// ProcessInfo 进程信息
type ProcessInfo struct {
	PID  int
	Name string
	Path string
}

// FindProcess 按名称查找进程 (不区分大小写，支持部分匹配)
func FindProcess(name string) ([]ProcessInfo, error) {
	pids, err := process.Pids()
	if err != nil {
		return nil, fmt.Errorf("获取进程列表失败: %w", err)
	}

	name = strings.ToLower(name)
	var matches []ProcessInfo

	for _, pid := range pids {
		proc, err := process.NewProcess(pid)
		if err != nil {
			continue
		}

		procName, err := proc.Name()
		if err != nil {
			continue
		}

		if strings.Contains(strings.ToLower(procName), name) {
			exe, _ := proc.Exe()
			matches = append(matches, ProcessInfo{
				PID:  int(pid),
				Name: procName,
				Path: exe,
			})
		}
	}

	return matches, nil
}

// Probe 进程探测器
type Probe struct{}

// IsRunning 是否存在名称包含 name 的进程
// name 为空或查询失败时返回 false。
func (Probe) IsRunning(name string) bool {
	if strings.TrimSpace(name) == "" {
		return false
	}
	matches, err := FindProcess(name)
	return err == nil && len(matches) > 0
}
