// Package desktop 组合窗口解析、截图和动作控制，对外提供统一的桌面自动化入口
package desktop

import (
	"fmt"
	"image"

	"github.com/zoeyai/desktopapi/pkg/auto"
	"github.com/zoeyai/desktopapi/pkg/auto/input"
	"github.com/zoeyai/desktopapi/pkg/auto/screen"
	"github.com/zoeyai/desktopapi/pkg/auto/window"
	"github.com/zoeyai/desktopapi/pkg/config"
	"github.com/zoeyai/desktopapi/pkg/permissions"
	"github.com/zoeyai/desktopapi/pkg/process"
)

// Controller 桌面自动化控制器
type Controller struct {
	resolver *window.Resolver
	capture  *screen.Service
	actions  *input.Controller
}

// New 由已创建的组件组合控制器
func New(resolver *window.Resolver, capture *screen.Service, actions *input.Controller) *Controller {
	return &Controller{
		resolver: resolver,
		capture:  capture,
		actions:  actions,
	}
}

// NewSystem 按配置选择窗口来源、截图来源和输入合成，进程内只应创建一次
func NewSystem(cfg *config.Config) (*Controller, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	source, err := newSource(cfg.WindowBackend)
	if err != nil {
		return nil, err
	}

	resolver := window.NewResolver(source,
		window.WithOwnerLookup(process.NewTable()),
		window.WithActivateDelay(cfg.ActivateDelay()),
	)

	var grabber screen.Grabber = screen.NewScreenshotGrabber()
	if cfg.CaptureBackend == config.CaptureBackendRobotgo {
		grabber = screen.NewRobotgoGrabber()
	}

	actions := input.NewController(input.NewRobotgoInjector(), resolver, input.Config{
		FailSafe: cfg.FailSafe,
		Pause:    cfg.Pause(),
	})

	return New(resolver, screen.NewService(resolver, grabber), actions), nil
}

func newSource(backend string) (window.Source, error) {
	if backend == config.WindowBackendMemory {
		return window.NewMemorySource(), nil
	}

	if err := permissions.Require(); err != nil {
		return nil, err
	}

	switch backend {
	case config.WindowBackendRobotgo:
		return window.NewRobotgoSource(), nil
	case config.WindowBackendAuto, "":
		return window.NewSystemSource()
	default:
		return nil, fmt.Errorf("%w: 未知的窗口来源 %q", auto.ErrInvalidArgument, backend)
	}
}

// Resolver 窗口解析器
func (c *Controller) Resolver() *window.Resolver {
	return c.resolver
}

// Capture 截图服务
func (c *Controller) Capture() *screen.Service {
	return c.capture
}

// Actions 动作控制器
func (c *Controller) Actions() *input.Controller {
	return c.actions
}

// Close 释放窗口来源持有的连接
func (c *Controller) Close() {
	if closer, ok := c.resolver.Source().(interface{ Close() }); ok {
		closer.Close()
	}
}

// ListWindows 列出可见窗口
func (c *Controller) ListWindows(minTitleLength int) ([]window.Handle, error) {
	return c.resolver.ListWindows(minTitleLength)
}

// FindWindow 按标题查找窗口
func (c *Controller) FindWindow(query string, opts ...window.Option) (window.Handle, error) {
	return c.resolver.FindWindow(query, opts...)
}

// ActivateWindow 激活窗口
func (c *Controller) ActivateWindow(target window.Target) (window.Handle, error) {
	return c.resolver.ActivateWindow(target)
}

// RefreshWindow 刷新窗口几何信息
func (c *Controller) RefreshWindow(target window.Target) (window.Handle, error) {
	return c.resolver.RefreshWindow(target)
}

// CaptureRegion 截取屏幕区域
func (c *Controller) CaptureRegion(region auto.Region) (*image.RGBA, error) {
	return c.capture.CaptureRegion(region)
}

// CaptureWindow 截取窗口
func (c *Controller) CaptureWindow(target window.Target, opts ...screen.CaptureOption) (*screen.Shot, error) {
	return c.capture.CaptureWindow(target, opts...)
}

// CaptureScreen 截取显示器，0 表示虚拟桌面
func (c *Controller) CaptureScreen(monitor int) (*screen.Shot, error) {
	return c.capture.CaptureScreen(monitor)
}

// Click 在屏幕坐标处点击
func (c *Controller) Click(x, y int, button auto.Button) error {
	return c.actions.Click(x, y, button)
}

// ClickIn 在窗口相对坐标处点击
func (c *Controller) ClickIn(target window.Target, x, y int, button auto.Button) (auto.Point, error) {
	return c.actions.ClickIn(target, x, y, button)
}

// ClickHere 在当前鼠标位置点击
func (c *Controller) ClickHere(button auto.Button) error {
	return c.actions.ClickHere(button)
}

// TypeText 在焦点窗口输入文字
func (c *Controller) TypeText(text string) error {
	return c.actions.TypeText(text)
}
