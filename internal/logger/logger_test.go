package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newTestLogger(buf *bytes.Buffer) *Logger {
	l := New()
	l.SetOutput(buf)
	l.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }
	return l
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", DEBUG},
		{"INFO", INFO},
		{"warning", WARN},
		{"error", ERROR},
		{"bogus", INFO},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, 期望 %v", tt.in, got, tt.want)
		}
	}
}

func TestLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf)
	l.SetLevel(WARN)

	l.Info("不应输出")
	l.Warn("应输出 %d", 1)

	out := buf.String()
	if strings.Contains(out, "不应输出") {
		t.Errorf("INFO 日志不应在 WARN 级别输出: %q", out)
	}
	if !strings.Contains(out, "03:04:05 | WARN  | 应输出 1") {
		t.Errorf("日志格式不正确: %q", out)
	}
}

func TestLogEvent(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf)

	l.LogEvent(CatWindow, true, 12.34, "激活 Notepad")
	l.LogEvent(CatCapture, false, 1, "截图失败")

	out := buf.String()
	if !strings.Contains(out, "INFO  | WIN  | OK |   12.3ms | 激活 Notepad") {
		t.Errorf("成功事件格式不正确: %q", out)
	}
	if !strings.Contains(out, "ERROR | CAP  | NG |") {
		t.Errorf("失败事件应以 ERROR 输出: %q", out)
	}
}

func TestDisabled(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf)
	l.SetEnabled(false)
	l.Error("x")
	if buf.Len() != 0 {
		t.Errorf("禁用后不应输出: %q", buf.String())
	}
}

func TestConfigureFile(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf)
	path := filepath.Join(t.TempDir(), "app.log")

	if err := l.Configure("debug", path); err != nil {
		t.Fatalf("Configure 失败: %v", err)
	}
	l.Debug("写入文件")
	if err := l.Close(); err != nil {
		t.Fatalf("Close 失败: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("读取日志文件失败: %v", err)
	}
	if !strings.Contains(string(data), "写入文件") {
		t.Errorf("日志文件内容不正确: %q", data)
	}
	if !strings.Contains(buf.String(), "写入文件") {
		t.Error("控制台也应输出")
	}
}
