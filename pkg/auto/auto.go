// Package auto 提供桌面自动化的共享类型和工具函数。
// 具体功能分布在子包中：window, screen, input, hook。
package auto

import (
	"fmt"
	"image"
	"math"
)

// Point 表示二维坐标点
type Point struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Region 表示屏幕矩形区域 (left, top, width, height)
// 窗口截图和显式区域截图统一使用该类型
type Region struct {
	X      int `json:"x" yaml:"x"`
	Y      int `json:"y" yaml:"y"`
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// Right 右边界 (X + Width)
func (r Region) Right() int {
	return r.X + r.Width
}

// Bottom 下边界 (Y + Height)
func (r Region) Bottom() int {
	return r.Y + r.Height
}

// Contains 判断屏幕点是否落在区域内（四条边均包含）
func (r Region) Contains(x, y int) bool {
	return r.X <= x && x <= r.Right() && r.Y <= y && y <= r.Bottom()
}

// Pad 向四周对称扩展 p 像素
func (r Region) Pad(p int) Region {
	return Region{
		X:      r.X - p,
		Y:      r.Y - p,
		Width:  r.Width + 2*p,
		Height: r.Height + 2*p,
	}
}

// Clamp 宽高至少为 1
func (r Region) Clamp() Region {
	r.Width = max(1, r.Width)
	r.Height = max(1, r.Height)
	return r
}

// Rect 转换为 image.Rectangle
func (r Region) Rect() image.Rectangle {
	return image.Rect(r.X, r.Y, r.Right(), r.Bottom())
}

// RegionFromRect 由 image.Rectangle 构造区域
func RegionFromRect(rect image.Rectangle) Region {
	return Region{
		X:      rect.Min.X,
		Y:      rect.Min.Y,
		Width:  rect.Dx(),
		Height: rect.Dy(),
	}
}

func (r Region) String() string {
	return fmt.Sprintf("(%d, %d, %dx%d)", r.X, r.Y, r.Width, r.Height)
}

// ScaleInt 缩放整数值
func ScaleInt(value int, factor float64) int {
	if factor <= 0 {
		return value
	}
	return int(math.Round(float64(value) * factor))
}
