// Package config 管理本地 YAML 配置文件
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/zoeyai/desktopapi/pkg/auto"
)

// 窗口来源
const (
	WindowBackendAuto    = "auto"
	WindowBackendRobotgo = "robotgo"
	WindowBackendMemory  = "memory"
)

// 截图来源
const (
	CaptureBackendScreenshot = "screenshot"
	CaptureBackendRobotgo    = "robotgo"
)

// CaptureConfig 截图配置
type CaptureConfig struct {
	Dir     string `yaml:"dir"`
	Format  string `yaml:"format"`
	Padding int    `yaml:"padding"`
	Stamp   bool   `yaml:"stamp"`
}

// ClickLogConfig 点击记录配置
type ClickLogConfig struct {
	CSVPath string `yaml:"csv_path"`
	Dir     string `yaml:"dir"`
}

// ClickerConfig 连点器配置
type ClickerConfig struct {
	CPS          float64 `yaml:"cps"`
	Button       string  `yaml:"button"`
	HoldHotkey   string  `yaml:"hold_hotkey"`
	ToggleHotkey string  `yaml:"toggle_hotkey,omitempty"`
	// FailSafe 连点时是否启用左上角保护，默认关闭，与全局 fail_safe 无关
	FailSafe bool `yaml:"fail_safe"`
}

// Config 应用配置
type Config struct {
	LogLevel        string         `yaml:"log_level"`
	LogFile         string         `yaml:"log_file,omitempty"`
	WindowBackend   string         `yaml:"window_backend"`
	CaptureBackend  string         `yaml:"capture_backend"`
	FailSafe        bool           `yaml:"fail_safe"`
	PauseMs         int            `yaml:"pause_ms"`
	MinTitleLength  int            `yaml:"min_title_length"`
	ActivateDelayMs int            `yaml:"activate_delay_ms"`
	Capture         CaptureConfig  `yaml:"capture"`
	ClickLog        ClickLogConfig `yaml:"click_log"`
	Clicker         ClickerConfig  `yaml:"clicker"`
}

// DefaultConfig 默认配置
func DefaultConfig() *Config {
	return &Config{
		LogLevel:        "info",
		WindowBackend:   WindowBackendAuto,
		CaptureBackend:  CaptureBackendScreenshot,
		FailSafe:        true,
		PauseMs:         0,
		MinTitleLength:  1,
		ActivateDelayMs: 100,
		Capture: CaptureConfig{
			Dir:    "captures",
			Format: "png",
		},
		ClickLog: ClickLogConfig{
			CSVPath: "captures.csv",
			Dir:     "captures",
		},
		Clicker: ClickerConfig{
			CPS:        10,
			Button:     "left",
			HoldHotkey: "shift",
		},
	}
}

// Pause 每次合成操作后的等待时间
func (c *Config) Pause() time.Duration {
	return time.Duration(c.PauseMs) * time.Millisecond
}

// ActivateDelay 激活窗口后的等待时间
func (c *Config) ActivateDelay() time.Duration {
	return time.Duration(c.ActivateDelayMs) * time.Millisecond
}

// Validate 校验配置，错误包装 auto.ErrInvalidArgument
func (c *Config) Validate() error {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{auto.ErrInvalidArgument}, args...)...))
	}

	if !slices.Contains([]string{WindowBackendAuto, WindowBackendRobotgo, WindowBackendMemory}, c.WindowBackend) {
		invalid("未知的 window_backend %q", c.WindowBackend)
	}
	if !slices.Contains([]string{CaptureBackendScreenshot, CaptureBackendRobotgo}, c.CaptureBackend) {
		invalid("未知的 capture_backend %q", c.CaptureBackend)
	}
	if c.PauseMs < 0 {
		invalid("pause_ms 不能为负数: %d", c.PauseMs)
	}
	if c.ActivateDelayMs < 0 {
		invalid("activate_delay_ms 不能为负数: %d", c.ActivateDelayMs)
	}
	if c.Capture.Padding < 0 {
		invalid("capture.padding 不能为负数: %d", c.Capture.Padding)
	}
	if !slices.Contains([]string{"png", "jpg", "jpeg", "bmp"}, strings.ToLower(c.Capture.Format)) {
		invalid("不支持的 capture.format %q", c.Capture.Format)
	}
	if c.Clicker.CPS <= 0 {
		invalid("clicker.cps 必须为正数: %v", c.Clicker.CPS)
	}
	if _, err := auto.ParseButton(c.Clicker.Button); err != nil {
		errs = append(errs, err)
	}
	if strings.TrimSpace(c.Clicker.HoldHotkey) == "" {
		invalid("clicker.hold_hotkey 不能为空")
	}

	return errors.Join(errs...)
}

// Manager 配置管理器
type Manager struct {
	configDir  string
	configFile string
	mu         sync.RWMutex
}

// NewManager 创建配置管理器，配置位于 ~/.desktop-api/config.yaml
func NewManager() *Manager {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	return NewManagerWithDir(filepath.Join(homeDir, ".desktop-api"))
}

// NewManagerWithDir 使用指定目录创建配置管理器
func NewManagerWithDir(configDir string) *Manager {
	return &Manager{
		configDir:  configDir,
		configFile: filepath.Join(configDir, "config.yaml"),
	}
}

// NewManagerWithFile 使用指定配置文件创建配置管理器
func NewManagerWithFile(path string) *Manager {
	return &Manager{
		configDir:  filepath.Dir(path),
		configFile: path,
	}
}

// ensureDir 确保配置目录存在
func (m *Manager) ensureDir() error {
	return os.MkdirAll(m.configDir, 0755)
}

// Load 加载配置，文件不存在时返回默认配置；文件中缺失的字段保持默认值
func (m *Manager) Load() (*Config, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, err := os.ReadFile(m.configFile)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return DefaultConfig(), fmt.Errorf("读取配置文件失败: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return DefaultConfig(), fmt.Errorf("解析配置文件失败: %w", err)
	}

	if err := config.Validate(); err != nil {
		return config, fmt.Errorf("配置文件 %s 无效: %w", m.configFile, err)
	}
	return config, nil
}

// Save 校验并保存配置
func (m *Manager) Save(config *Config) error {
	if err := config.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.ensureDir(); err != nil {
		return fmt.Errorf("创建配置目录失败: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("序列化配置失败: %w", err)
	}

	if err := os.WriteFile(m.configFile, data, 0600); err != nil {
		return fmt.Errorf("写入配置文件失败: %w", err)
	}

	return nil
}

// Clear 清除配置
func (m *Manager) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := os.Remove(m.configFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("删除配置文件失败: %w", err)
	}
	return nil
}

// GetConfigDir 获取配置目录
func (m *Manager) GetConfigDir() string {
	return m.configDir
}

// GetConfigFile 获取配置文件路径
func (m *Manager) GetConfigFile() string {
	return m.configFile
}

// Exists 检查配置文件是否存在
func (m *Manager) Exists() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, err := os.Stat(m.configFile)
	return err == nil
}
