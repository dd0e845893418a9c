// Package window 提供窗口枚举、按标题查找、激活和刷新几何信息的功能
package window

import (
	"fmt"
	"strings"

	"github.com/zoeyai/desktopapi/pkg/auto"
)

// WindowID 平台相关的窗口标识（HWND、CGWindowNumber、X11 window 或 PID），0 表示缺失
type WindowID uint64

// Handle 窗口在某一时刻的快照
//
// 窗口随时可能移动、缩放、最小化或关闭，句柄创建后即可能过期。
// 任何依赖当前几何信息的操作都必须先通过 Resolver.RefreshWindow 刷新。
type Handle struct {
	Title     string   `json:"title" yaml:"title"`
	Left      int      `json:"left" yaml:"left"`
	Top       int      `json:"top" yaml:"top"`
	Width     int      `json:"width" yaml:"width"`
	Height    int      `json:"height" yaml:"height"`
	IsActive  bool     `json:"is_active" yaml:"is_active"`
	ID        WindowID `json:"id,omitempty" yaml:"id,omitempty"`
	PID       int      `json:"pid,omitempty" yaml:"pid,omitempty"`
	OwnerName string   `json:"owner_name,omitempty" yaml:"owner_name,omitempty"`
	Platform  string   `json:"platform,omitempty" yaml:"platform,omitempty"`
}

// Right 右边界
func (h Handle) Right() int {
	return h.Left + h.Width
}

// Bottom 下边界
func (h Handle) Bottom() int {
	return h.Top + h.Height
}

// Region 窗口所占的屏幕区域
func (h Handle) Region() auto.Region {
	return auto.Region{X: h.Left, Y: h.Top, Width: h.Width, Height: h.Height}
}

// Contains 屏幕点是否在窗口边界内（含边界）
func (h Handle) Contains(x, y int) bool {
	return h.Region().Contains(x, y)
}

// ToLocal 屏幕坐标 → 窗口相对坐标
func (h Handle) ToLocal(x, y int) auto.Point {
	return auto.Point{X: x - h.Left, Y: y - h.Top}
}

// ToScreen 窗口相对坐标 → 屏幕坐标
func (h Handle) ToScreen(x, y int) auto.Point {
	return auto.Point{X: h.Left + x, Y: h.Top + y}
}

func (h Handle) String() string {
	return fmt.Sprintf("%q@%s", h.Title, h.Region())
}

// Target 可被解析为当前窗口的目标：Handle 或 Title
type Target interface {
	targetTitle() string
}

func (h Handle) targetTitle() string { return h.Title }

// Title 以窗口标题作为解析目标
type Title string

func (t Title) targetTitle() string { return string(t) }

func describeTarget(t Target) string {
	switch v := t.(type) {
	case Handle:
		if v.ID != 0 {
			return fmt.Sprintf("%q (id=%d)", v.Title, v.ID)
		}
		return fmt.Sprintf("%q", v.Title)
	case nil:
		return "<nil>"
	default:
		return fmt.Sprintf("%q", strings.TrimSpace(t.targetTitle()))
	}
}
