// Package screen 提供区域、窗口和显示器截图，以及截图的编码与标注
package screen

import (
	"fmt"
	"image"

	"github.com/kbinani/screenshot"

	"github.com/zoeyai/desktopapi/pkg/auto"
)

// Grabber 屏幕像素采集能力
type Grabber interface {
	// Grab 截取屏幕坐标系下的矩形区域
	Grab(r image.Rectangle) (*image.RGBA, error)
	// Displays 返回各显示器的屏幕坐标边界，顺序与系统编号一致
	Displays() ([]image.Rectangle, error)
}

// ScreenshotGrabber 基于 kbinani/screenshot 的采集器（默认）
type ScreenshotGrabber struct{}

var _ Grabber = ScreenshotGrabber{}

// NewScreenshotGrabber 创建默认采集器
func NewScreenshotGrabber() ScreenshotGrabber {
	return ScreenshotGrabber{}
}

// Grab 截取区域
func (ScreenshotGrabber) Grab(r image.Rectangle) (*image.RGBA, error) {
	img, err := screenshot.CaptureRect(r)
	if err != nil {
		return nil, fmt.Errorf("截取区域 %v 失败: %w", r, err)
	}
	return img, nil
}

// Displays 显示器边界
func (ScreenshotGrabber) Displays() ([]image.Rectangle, error) {
	n := screenshot.NumActiveDisplays()
	if n <= 0 {
		return nil, fmt.Errorf("%w: 未检测到显示器", auto.ErrPlatformUnavailable)
	}

	displays := make([]image.Rectangle, 0, n)
	for i := 0; i < n; i++ {
		displays = append(displays, screenshot.GetDisplayBounds(i))
	}
	return displays, nil
}

// VirtualDesktop 所有显示器边界的并集
func VirtualDesktop(displays []image.Rectangle) image.Rectangle {
	var all image.Rectangle
	for _, d := range displays {
		all = all.Union(d)
	}
	return all
}
