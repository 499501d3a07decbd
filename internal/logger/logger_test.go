package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newTestLogger() (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf)
	l.now = func() time.Time { return time.Date(2026, 10, 16, 9, 30, 5, 0, time.Local) }
	return l, &buf
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   DEBUG,
		"INFO":    INFO,
		"warning": WARN,
		"error":   ERROR,
		"verbose": INFO,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestLevelFilter(t *testing.T) {
	l, buf := newTestLogger()
	l.SetLevel(WARN)

	l.Info("不应输出")
	l.Warn("滚动 %d 次", 3)

	out := buf.String()
	if strings.Contains(out, "不应输出") {
		t.Errorf("INFO 日志不应输出: %q", out)
	}
	if out != "09:30:05 | WARN  | 滚动 3 次\n" {
		t.Errorf("日志格式错误: %q", out)
	}
}

func TestLogEventIsDebug(t *testing.T) {
	l, buf := newTestLogger()

	l.LogEvent("BEST", false, 12.3, "refresh.png")
	if buf.Len() != 0 {
		t.Errorf("INFO 级别下不应输出匹配事件: %q", buf.String())
	}

	l.SetLevel(DEBUG)
	l.LogEvent("BEST", true, 12.3, "refresh.png")
	if !strings.Contains(buf.String(), "BEST | OK |   12.3ms | refresh.png") {
		t.Errorf("匹配事件格式错误: %q", buf.String())
	}
}

func TestSetFile(t *testing.T) {
	l, buf := newTestLogger()
	path := filepath.Join(t.TempDir(), "run.log")

	if err := l.SetFile(path); err != nil {
		t.Fatalf("打开日志文件失败: %v", err)
	}
	l.Info("写入文件")
	if err := l.Close(); err != nil {
		t.Fatalf("关闭日志文件失败: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("读取日志文件失败: %v", err)
	}
	if !strings.Contains(string(data), "写入文件") {
		t.Errorf("日志文件内容错误: %q", data)
	}
	if !strings.Contains(buf.String(), "写入文件") {
		t.Errorf("控制台也应输出: %q", buf.String())
	}
}
