//go:build linux

package window

import (
	"fmt"
	"strings"
	"sync"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"

	"github.com/zoeyai/desktopapi/pkg/auto"
)

// X11Source 通过 EWMH 客户端列表枚举窗口
type X11Source struct {
	mu sync.Mutex
	xu *xgbutil.XUtil
}

var _ Source = (*X11Source)(nil)

// NewSystemSource 返回当前平台的窗口来源（Linux 使用 X11）
func NewSystemSource() (Source, error) {
	return NewX11Source()
}

// NewX11Source 连接 $DISPLAY 指定的 X 服务
func NewX11Source() (*X11Source, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, fmt.Errorf("%w: 无法连接 X11: %v", auto.ErrPlatformUnavailable, err)
	}
	return &X11Source{xu: xu}, nil
}

// Close 断开 X11 连接
func (s *X11Source) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.xu != nil {
		s.xu.Conn().Close()
		s.xu = nil
	}
}

// Platform 平台名称
func (s *X11Source) Platform() string {
	return "x11"
}

// Snapshot 枚举 _NET_CLIENT_LIST 中的普通窗口
func (s *X11Source) Snapshot() (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.xu == nil {
		return Snapshot{}, fmt.Errorf("%w: X11 连接已关闭", auto.ErrPlatformUnavailable)
	}

	clients, err := ewmh.ClientListGet(s.xu)
	if err != nil {
		return Snapshot{}, fmt.Errorf("获取客户端列表失败: %w", err)
	}

	windows := make([]Descriptor, 0, len(clients))
	for _, win := range clients {
		if !s.isNormalWindow(win) {
			continue
		}

		bounds, ok := s.windowRect(win)
		if !ok {
			continue
		}

		minimized := s.isHidden(win)
		pid := 0
		if p, err := ewmh.WmPidGet(s.xu, win); err == nil {
			pid = int(p)
		}

		windows = append(windows, Descriptor{
			ID:        WindowID(win),
			PID:       pid,
			Title:     s.windowTitle(win),
			Bounds:    bounds,
			Minimized: minimized,
			Visible:   !minimized && s.isViewable(win),
		})
	}

	var active WindowID
	if win, err := ewmh.ActiveWindowGet(s.xu); err == nil {
		active = WindowID(win)
	}

	return Snapshot{Windows: windows, Active: active}, nil
}

// Activate 通过 _NET_ACTIVE_WINDOW 客户端消息激活并提升窗口
func (s *X11Source) Activate(d Descriptor) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.xu == nil {
		return fmt.Errorf("%w: X11 连接已关闭", auto.ErrPlatformUnavailable)
	}
	if d.ID == 0 {
		return fmt.Errorf("%w: 窗口 %q 缺少 X11 窗口 ID", auto.ErrWindowNotFound, d.Title)
	}

	atom, err := xproto.InternAtom(s.xu.Conn(), false,
		uint16(len("_NET_ACTIVE_WINDOW")), "_NET_ACTIVE_WINDOW").Reply()
	if err != nil {
		return fmt.Errorf("获取 _NET_ACTIVE_WINDOW 失败: %w", err)
	}

	const sourceIndication = 2 // pager/direct action
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: xproto.Window(d.ID),
		Type:   atom.Atom,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{sourceIndication, 0, 0, 0, 0}),
	}

	return xproto.SendEventChecked(
		s.xu.Conn(),
		false,
		s.xu.RootWin(),
		xproto.EventMaskSubstructureRedirect|xproto.EventMaskSubstructureNotify,
		string(ev.Bytes()),
	).Check()
}

func (s *X11Source) isNormalWindow(win xproto.Window) bool {
	types, err := ewmh.WmWindowTypeGet(s.xu, win)
	if err != nil {
		return true
	}
	for _, t := range types {
		switch t {
		case "_NET_WM_WINDOW_TYPE_DESKTOP", "_NET_WM_WINDOW_TYPE_DOCK",
			"_NET_WM_WINDOW_TYPE_SPLASH", "_NET_WM_WINDOW_TYPE_NOTIFICATION":
			return false
		}
	}
	return true
}

func (s *X11Source) isHidden(win xproto.Window) bool {
	states, err := ewmh.WmStateGet(s.xu, win)
	if err != nil {
		return false
	}
	for _, state := range states {
		if state == "_NET_WM_STATE_HIDDEN" {
			return true
		}
	}
	return false
}

func (s *X11Source) isViewable(win xproto.Window) bool {
	attrs, err := xproto.GetWindowAttributes(s.xu.Conn(), win).Reply()
	if err != nil {
		return false
	}
	return attrs.MapState == xproto.MapStateViewable
}

func (s *X11Source) windowRect(win xproto.Window) (auto.Region, bool) {
	geom, err := xproto.GetGeometry(s.xu.Conn(), xproto.Drawable(win)).Reply()
	if err != nil {
		return auto.Region{}, false
	}

	translate, err := xproto.TranslateCoordinates(s.xu.Conn(), win, s.xu.RootWin(), 0, 0).Reply()
	if err != nil {
		return auto.Region{}, false
	}

	return auto.Region{
		X:      int(translate.DstX),
		Y:      int(translate.DstY),
		Width:  int(geom.Width),
		Height: int(geom.Height),
	}, true
}

func (s *X11Source) windowTitle(win xproto.Window) string {
	if title, err := ewmh.WmNameGet(s.xu, win); err == nil && strings.TrimSpace(title) != "" {
		return title
	}
	if title, err := icccm.WmNameGet(s.xu, win); err == nil {
		return title
	}
	return ""
}
