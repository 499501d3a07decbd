package process

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFindProcessSelf(t *testing.T) {
	exe, err := os.Executable()
	if err != nil {
		t.Skipf("跳过测试：无法获取可执行文件: %v", err)
	}
	name := filepath.Base(exe)
	if len(name) > 15 {
		// Linux comm 最多 15 个字符
		name = name[:15]
	}

	matches, err := FindProcess(name)
	if err != nil {
		t.Fatalf("查找进程失败: %v", err)
	}

	pid := os.Getpid()
	found := false
	for _, m := range matches {
		if m.PID == pid {
			found = true
		}
	}
	if !found {
		t.Errorf("应找到当前进程 PID=%d: %+v", pid, matches)
	}
	if !(Probe{}).IsRunning(name) {
		t.Errorf("IsRunning(%q) 应为 true", name)
	}
}

func TestProbeEmptyName(t *testing.T) {
	if (Probe{}).IsRunning("  ") {
		t.Error("空名称不应匹配任何进程")
	}
}
