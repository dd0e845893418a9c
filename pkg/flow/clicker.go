// Package flow 提供基于窗口解析、截图和动作控制构建的事件驱动流程：
// 热键连点、点击记录、截图循环和演示。
package flow

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/zoeyai/desktopapi/internal/logger"
	"github.com/zoeyai/desktopapi/pkg/auto"
	"github.com/zoeyai/desktopapi/pkg/auto/hook"
)

// Clicker 在当前鼠标位置点击
type Clicker interface {
	ClickHere(button auto.Button) error
}

// ClickerConfig 连点器配置
type ClickerConfig struct {
	// CPS 每秒点击次数，必须为正数
	CPS    float64
	Button auto.Button
	// Hold 按住时连点
	Hold hook.Key
	// Toggle 可选，每次按下切换连点开关
	Toggle hook.Key
}

// HotkeyClicker 热键驱动的连点器
//
// 按住 Hold 键或通过 Toggle 键开启后，在一个工作 goroutine 中按 1/CPS 的间隔在当前鼠标位置点击。
// 状态全部保存在该值中，可在测试中直接投递事件。
type HotkeyClicker struct {
	cfg      ClickerConfig
	interval time.Duration
	clicker  Clicker

	mu      sync.Mutex
	engaged bool
	toggled bool
	cancel  context.CancelFunc
	done    chan struct{}

	clicks atomic.Int64
}

// NewHotkeyClicker 创建连点器
func NewHotkeyClicker(cfg ClickerConfig, clicker Clicker) (*HotkeyClicker, error) {
	if cfg.CPS <= 0 {
		return nil, fmt.Errorf("%w: cps 必须为正数: %v", auto.ErrInvalidArgument, cfg.CPS)
	}
	if cfg.Hold.IsZero() && cfg.Toggle.IsZero() {
		return nil, fmt.Errorf("%w: 至少需要一个热键", auto.ErrInvalidArgument)
	}
	b, err := auto.ParseButton(string(cfg.Button))
	if err != nil {
		return nil, err
	}
	cfg.Button = b

	return &HotkeyClicker{
		cfg:      cfg,
		interval: time.Duration(float64(time.Second) / cfg.CPS),
		clicker:  clicker,
	}, nil
}

// Interval 两次点击之间的间隔
func (c *HotkeyClicker) Interval() time.Duration {
	return c.interval
}

// Clicks 已执行的点击次数
func (c *HotkeyClicker) Clicks() int64 {
	return c.clicks.Load()
}

// Active 工作 goroutine 是否在运行
func (c *HotkeyClicker) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reapLocked()
	return c.cancel != nil
}

// Usage 提示信息
func (c *HotkeyClicker) Usage() string {
	msg := ""
	if !c.cfg.Hold.IsZero() {
		msg = fmt.Sprintf("按住 %s 连点", c.cfg.Hold)
	}
	if !c.cfg.Toggle.IsZero() {
		if msg != "" {
			msg += "，"
		}
		msg += fmt.Sprintf("按 %s 切换连点开关", c.cfg.Toggle)
	}
	return msg + "。Ctrl+C 退出。"
}

// HandleEvent 处理一个键盘事件；停用时等待工作 goroutine 退出后才返回
func (c *HotkeyClicker) HandleEvent(ev hook.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reapLocked()

	switch {
	case ev.Kind == hook.KeyPress && c.cfg.Hold.Matches(ev):
		c.engaged = true
	case ev.Kind == hook.KeyRelease && c.cfg.Hold.Matches(ev):
		c.engaged = false
	case ev.Kind == hook.KeyPress && c.cfg.Toggle.Matches(ev):
		c.toggled = !c.toggled
		logger.Info("连点开关: %v", onOff(c.toggled))
	default:
		return
	}
	c.updateLocked()
}

// Run 监听全局输入直到 ctx 结束，然后停止工作 goroutine
func (c *HotkeyClicker) Run(ctx context.Context, listener hook.Listener) error {
	defer c.Stop()
	return listener.Listen(ctx, c.HandleEvent)
}

// Stop 清除所有状态并停止工作 goroutine
func (c *HotkeyClicker) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.engaged = false
	c.toggled = false
	c.updateLocked()
}

// reapLocked 工作 goroutine 因 fail-safe 自行退出后清除状态，下一次按下热键重新开始
func (c *HotkeyClicker) reapLocked() {
	if c.done == nil {
		return
	}
	select {
	case <-c.done:
		c.cancel()
		c.cancel = nil
		c.done = nil
		c.engaged = false
		c.toggled = false
	default:
	}
}

func (c *HotkeyClicker) updateLocked() {
	should := c.engaged || c.toggled
	active := c.cancel != nil

	switch {
	case should && !active:
		ctx, cancel := context.WithCancel(context.Background())
		c.cancel = cancel
		c.done = make(chan struct{})
		go c.loop(ctx, c.done)
	case !should && active:
		c.cancel()
		<-c.done
		c.cancel = nil
		c.done = nil
	}
}

func (c *HotkeyClicker) loop(ctx context.Context, done chan<- struct{}) {
	defer close(done)

	logger.LogEvent(logger.CatFlow, true, 0, "连点开始")
	start := time.Now()
	n := 0
	defer func() {
		logger.LogEvent(logger.CatFlow, true, logger.Since(start), fmt.Sprintf("连点停止，共 %d 次", n))
	}()

	for {
		if ctx.Err() != nil {
			return
		}

		if err := c.clicker.ClickHere(c.cfg.Button); err != nil {
			if errors.Is(err, auto.ErrFailSafe) {
				logger.Error("连点中止: %v", err)
				return
			}
			logger.Warn("点击失败: %v", err)
		} else {
			n++
			c.clicks.Add(1)
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(c.interval):
		}
	}
}

func onOff(v bool) string {
	if v {
		return "ON"
	}
	return "OFF"
}
