// Package hook 监听全局鼠标和键盘事件，并解析热键
package hook

import (
	"context"
	"fmt"
	"time"

	"github.com/zoeyai/desktopapi/pkg/auto"
)

// Kind 事件类型
type Kind int

const (
	KindOther Kind = iota
	MousePress
	MouseRelease
	KeyPress
	KeyRelease
)

func (k Kind) String() string {
	switch k {
	case MousePress:
		return "mouse_press"
	case MouseRelease:
		return "mouse_release"
	case KeyPress:
		return "key_press"
	case KeyRelease:
		return "key_release"
	default:
		return "other"
	}
}

// IsMouse 是否为鼠标事件
func (k Kind) IsMouse() bool {
	return k == MousePress || k == MouseRelease
}

// IsKey 是否为键盘事件
func (k Kind) IsKey() bool {
	return k == KeyPress || k == KeyRelease
}

// Event 全局输入事件，坐标为屏幕坐标
type Event struct {
	Kind    Kind
	Button  auto.Button
	X, Y    int
	Keycode uint16
	Keychar rune
	When    time.Time
}

func (e Event) String() string {
	if e.Kind.IsMouse() {
		return fmt.Sprintf("%s %s (%d, %d)", e.Kind, e.Button, e.X, e.Y)
	}
	return fmt.Sprintf("%s keycode=%d", e.Kind, e.Keycode)
}

// Listener 全局输入监听
//
// Listen 阻塞直到 ctx 结束；handler 在同一个 goroutine 上按顺序调用，
// 必须尽快返回，否则系统事件投递可能被阻塞。
type Listener interface {
	Listen(ctx context.Context, handler func(Event)) error
}
