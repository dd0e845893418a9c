package flow

import (
	"context"
	"fmt"
	"sync"

	"github.com/zoeyai/desktopapi/internal/logger"
	"github.com/zoeyai/desktopapi/pkg/auto"
	"github.com/zoeyai/desktopapi/pkg/auto/hook"
	"github.com/zoeyai/desktopapi/pkg/auto/screen"
	"github.com/zoeyai/desktopapi/pkg/auto/window"
	"github.com/zoeyai/desktopapi/pkg/desktop"
)

// ClickLogger 左键按下时截取目标窗口，释放时把点击记录追加到 CSV
//
// 目标窗口在 Start 时激活一次，之后每次按下前都重新刷新几何信息。
// 单次点击的失败只记录日志，不会中断监听。
type ClickLogger struct {
	desk    *desktop.Controller
	store   *SnapshotStore
	log     *CSVLog
	padding int

	mu      sync.Mutex
	tracked *window.Handle
	pending *pendingClick
}

type pendingClick struct {
	imagePath string
	press     auto.Point
	window    window.Handle
}

// NewClickLogger 创建点击记录器
func NewClickLogger(desk *desktop.Controller, store *SnapshotStore, log *CSVLog, padding int) (*ClickLogger, error) {
	if padding < 0 {
		return nil, fmt.Errorf("%w: padding 不能为负数: %d", auto.ErrInvalidArgument, padding)
	}
	return &ClickLogger{
		desk:    desk,
		store:   store,
		log:     log,
		padding: padding,
	}, nil
}

// Start 激活与 query 匹配的窗口并开始跟踪
func (l *ClickLogger) Start(query string) (window.Handle, error) {
	h, err := l.desk.ActivateWindow(window.Title(query))
	if err != nil {
		return window.Handle{}, fmt.Errorf("无法激活匹配 %q 的窗口: %w", query, err)
	}

	l.mu.Lock()
	l.tracked = &h
	l.pending = nil
	l.mu.Unlock()

	logger.Info("跟踪窗口: %s", h)
	return h, nil
}

// Tracked 当前跟踪的窗口
func (l *ClickLogger) Tracked() (window.Handle, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.tracked == nil {
		return window.Handle{}, false
	}
	return *l.tracked, true
}

// Run 监听全局输入直到 ctx 结束
func (l *ClickLogger) Run(ctx context.Context, listener hook.Listener) error {
	return listener.Listen(ctx, l.HandleEvent)
}

// HandleEvent 处理一个鼠标事件，只关心左键
func (l *ClickLogger) HandleEvent(ev hook.Event) {
	if ev.Button != auto.ButtonLeft {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	switch ev.Kind {
	case hook.MousePress:
		l.pressLocked(ev.X, ev.Y)
	case hook.MouseRelease:
		l.releaseLocked(ev.X, ev.Y)
	}
}

func (l *ClickLogger) pressLocked(x, y int) {
	if l.tracked == nil {
		return
	}

	h, err := l.desk.RefreshWindow(*l.tracked)
	if err != nil {
		logger.Warn("刷新跟踪窗口失败: %v", err)
		return
	}
	l.tracked = &h

	if !h.Contains(x, y) {
		logger.Debug("忽略窗口外的按下 (%d, %d)", x, y)
		return
	}

	shot, err := l.desk.CaptureWindow(h, screen.Padding(l.padding))
	if err != nil {
		logger.Warn("截图失败: %v", err)
		return
	}
	path, err := l.store.Save(shot)
	if err != nil {
		logger.Warn("保存截图失败: %v", err)
		return
	}

	l.pending = &pendingClick{
		imagePath: path,
		press:     h.ToLocal(x, y),
		window:    h,
	}
	logger.Info("已截图 %s", path)
}

func (l *ClickLogger) releaseLocked(x, y int) {
	if l.pending == nil {
		return
	}
	p := l.pending
	l.pending = nil

	rec := ClickRecord{
		ImagePath: p.imagePath,
		Press:     p.press,
		Release:   p.window.ToLocal(x, y),
	}
	if err := l.log.Append(rec); err != nil {
		logger.Warn("写入点击记录失败: %v", err)
		return
	}
	logger.LogEvent(logger.CatFlow, true, 0, fmt.Sprintf("记录点击 %v → %v 到 %s", rec.Press, rec.Release, l.log.Path()))
}
