package hook

import (
	"context"
	"fmt"
	"sync"
	"time"

	gohook "github.com/robotn/gohook"

	"github.com/zoeyai/desktopapi/internal/logger"
	"github.com/zoeyai/desktopapi/pkg/auto"
)

// gohook 的事件钩子是进程级的，同一时间只能有一个监听
var listening sync.Mutex

// GohookListener 基于 robotn/gohook 的全局输入监听
type GohookListener struct{}

var _ Listener = GohookListener{}

// NewGohookListener 创建全局输入监听
func NewGohookListener() GohookListener {
	return GohookListener{}
}

// Listen 启动系统钩子并分发事件，ctx 结束时停止钩子并返回 nil
func (GohookListener) Listen(ctx context.Context, handler func(Event)) error {
	if !listening.TryLock() {
		return fmt.Errorf("%w: 已有全局输入监听在运行", auto.ErrPlatformUnavailable)
	}
	defer listening.Unlock()

	events := gohook.Start()
	defer gohook.End()
	logger.LogEvent(logger.CatHook, true, 0, "全局输入监听已启动")

	for {
		select {
		case <-ctx.Done():
			logger.LogEvent(logger.CatHook, true, 0, "全局输入监听已停止")
			return nil
		case raw, ok := <-events:
			if !ok {
				return fmt.Errorf("%w: 系统钩子已关闭", auto.ErrPlatformUnavailable)
			}
			if ev, ok := convert(raw); ok {
				handler(ev)
			}
		}
	}
}

// convert 将 gohook 事件转换为 Event，只保留按下/释放事件
//
// gohook 沿用 libuiohook 的编号：KeyHold/MouseHold 表示按下，KeyUp/MouseDown 表示释放。
func convert(raw gohook.Event) (Event, bool) {
	ev := Event{
		Keycode: raw.Keycode,
		Keychar: raw.Keychar,
		X:       int(raw.X),
		Y:       int(raw.Y),
		When:    raw.When,
	}
	if ev.When.IsZero() {
		ev.When = time.Now()
	}

	switch raw.Kind {
	case gohook.KeyHold:
		ev.Kind = KeyPress
	case gohook.KeyUp:
		ev.Kind = KeyRelease
	case gohook.MouseHold:
		ev.Kind = MousePress
	case gohook.MouseDown:
		ev.Kind = MouseRelease
	default:
		return Event{}, false
	}

	if ev.Kind.IsMouse() {
		b, ok := mouseButton(raw.Button)
		if !ok {
			return Event{}, false
		}
		ev.Button = b
		ev.X, ev.Y = auto.NormalizePointForScreen(ev.X, ev.Y)
	}
	return ev, true
}

func mouseButton(code uint16) (auto.Button, bool) {
	switch code {
	case 1:
		return auto.ButtonLeft, true
	case 2:
		return auto.ButtonRight, true
	case 3:
		return auto.ButtonMiddle, true
	default:
		return "", false
	}
}
