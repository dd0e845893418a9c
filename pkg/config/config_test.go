package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/zoeyai/desktopapi/pkg/auto"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if err := config.Validate(); err != nil {
		t.Fatalf("默认配置应有效: %v", err)
	}
	if config.WindowBackend != WindowBackendAuto {
		t.Errorf("默认 WindowBackend 应为 auto, 实际为 %s", config.WindowBackend)
	}
	if !config.FailSafe {
		t.Error("默认应开启 FailSafe")
	}
	if config.ActivateDelay() != 100*time.Millisecond {
		t.Errorf("默认激活等待应为 100ms, 实际为 %v", config.ActivateDelay())
	}
	if config.Clicker.FailSafe {
		t.Error("连点器默认应关闭 FailSafe")
	}
	if config.Clicker.CPS != 10 || config.Clicker.HoldHotkey != "shift" {
		t.Errorf("默认连点器配置不正确: %+v", config.Clicker)
	}

	t.Logf("默认配置: %+v", config)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"window_backend", func(c *Config) { c.WindowBackend = "wayland" }},
		{"capture_backend", func(c *Config) { c.CaptureBackend = "gdi" }},
		{"pause_ms", func(c *Config) { c.PauseMs = -1 }},
		{"activate_delay_ms", func(c *Config) { c.ActivateDelayMs = -5 }},
		{"padding", func(c *Config) { c.Capture.Padding = -1 }},
		{"format", func(c *Config) { c.Capture.Format = "gif" }},
		{"cps", func(c *Config) { c.Clicker.CPS = 0 }},
		{"button", func(c *Config) { c.Clicker.Button = "side" }},
		{"hold_hotkey", func(c *Config) { c.Clicker.HoldHotkey = " " }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(config)
			if err := config.Validate(); !errors.Is(err, auto.ErrInvalidArgument) {
				t.Errorf("应返回 ErrInvalidArgument, 实际 %v", err)
			}
		})
	}
}

func TestManagerSaveAndLoad(t *testing.T) {
	// 使用临时目录
	tempDir := t.TempDir()
	manager := NewManagerWithDir(tempDir)

	// 检查初始状态
	if manager.Exists() {
		t.Error("初始时配置文件不应存在")
	}

	config := DefaultConfig()
	config.LogLevel = "debug"
	config.WindowBackend = WindowBackendRobotgo
	config.PauseMs = 50
	config.Capture.Padding = 8
	config.Clicker.ToggleHotkey = "t"

	if err := manager.Save(config); err != nil {
		t.Fatalf("保存配置失败: %v", err)
	}

	if !manager.Exists() {
		t.Error("保存后配置文件应存在")
	}
	if filepath.Base(manager.GetConfigFile()) != "config.yaml" {
		t.Errorf("配置文件名应为 config.yaml, 实际为 %s", manager.GetConfigFile())
	}

	loaded, err := manager.Load()
	if err != nil {
		t.Fatalf("加载配置失败: %v", err)
	}
	if *loaded != *config {
		t.Errorf("配置不匹配: 期望 %+v, 实际 %+v", config, loaded)
	}
	if loaded.Pause() != 50*time.Millisecond {
		t.Errorf("Pause 不匹配: %v", loaded.Pause())
	}
}

func TestManagerLoadPartialFile(t *testing.T) {
	tempDir := t.TempDir()
	manager := NewManagerWithDir(tempDir)

	data := []byte("window_backend: memory\ncapture:\n  padding: 4\n")
	if err := os.WriteFile(manager.GetConfigFile(), data, 0600); err != nil {
		t.Fatalf("写入配置失败: %v", err)
	}

	config, err := manager.Load()
	if err != nil {
		t.Fatalf("加载配置失败: %v", err)
	}
	if config.WindowBackend != WindowBackendMemory || config.Capture.Padding != 4 {
		t.Errorf("文件中的值未生效: %+v", config)
	}
	if config.Capture.Format != "png" || config.Clicker.CPS != 10 {
		t.Errorf("缺失字段应保持默认值: %+v", config)
	}
}

func TestManagerLoadInvalid(t *testing.T) {
	tempDir := t.TempDir()
	manager := NewManagerWithDir(tempDir)

	if err := os.WriteFile(manager.GetConfigFile(), []byte("clicker:\n  cps: -1\n"), 0600); err != nil {
		t.Fatalf("写入配置失败: %v", err)
	}
	if _, err := manager.Load(); !errors.Is(err, auto.ErrInvalidArgument) {
		t.Errorf("无效配置应返回 ErrInvalidArgument, 实际 %v", err)
	}

	if err := os.WriteFile(manager.GetConfigFile(), []byte("pause_ms: not-a-number\n"), 0600); err != nil {
		t.Fatalf("写入配置失败: %v", err)
	}
	if _, err := manager.Load(); err == nil {
		t.Error("无法解析的配置应返回错误")
	}

	if err := manager.Save(&Config{}); !errors.Is(err, auto.ErrInvalidArgument) {
		t.Errorf("保存无效配置应返回 ErrInvalidArgument, 实际 %v", err)
	}
}

func TestManagerClear(t *testing.T) {
	tempDir := t.TempDir()
	manager := NewManagerWithDir(tempDir)

	// 先保存一个配置
	if err := manager.Save(DefaultConfig()); err != nil {
		t.Fatalf("保存配置失败: %v", err)
	}

	if !manager.Exists() {
		t.Fatal("保存后配置文件应存在")
	}

	// 清除配置
	if err := manager.Clear(); err != nil {
		t.Fatalf("清除配置失败: %v", err)
	}

	if manager.Exists() {
		t.Error("清除后配置文件不应存在")
	}

	// 清除不存在的文件不应报错
	if err := manager.Clear(); err != nil {
		t.Errorf("清除不存在的配置不应报错: %v", err)
	}
}

func TestManagerLoadNonExistent(t *testing.T) {
	tempDir := t.TempDir()
	manager := NewManagerWithDir(filepath.Join(tempDir, "missing"))

	// 加载不存在的配置应返回默认值
	config, err := manager.Load()
	if err != nil {
		t.Fatalf("加载不存在的配置不应报错: %v", err)
	}
	if *config != *DefaultConfig() {
		t.Errorf("应返回默认配置: %+v", config)
	}
}
