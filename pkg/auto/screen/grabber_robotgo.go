package screen

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/go-vgo/robotgo"

	"github.com/zoeyai/desktopapi/pkg/auto"
)

// RobotgoGrabber 基于 robotgo.CaptureImg 的采集器
type RobotgoGrabber struct{}

var _ Grabber = RobotgoGrabber{}

// NewRobotgoGrabber 创建 robotgo 采集器
func NewRobotgoGrabber() RobotgoGrabber {
	return RobotgoGrabber{}
}

// Grab 截取区域（区域先转换为 robotgo 输入坐标）
func (RobotgoGrabber) Grab(r image.Rectangle) (*image.RGBA, error) {
	in := auto.NormalizeRegionForInput(auto.RegionFromRect(r))
	img, err := robotgo.CaptureImg(in.X, in.Y, in.Width, in.Height)
	if err != nil {
		return nil, fmt.Errorf("截取区域 %v 失败: %w", r, err)
	}
	return toRGBA(img), nil
}

// Displays 显示器边界
func (RobotgoGrabber) Displays() ([]image.Rectangle, error) {
	n := robotgo.DisplaysNum()
	if n <= 0 {
		return nil, fmt.Errorf("%w: 未检测到显示器", auto.ErrPlatformUnavailable)
	}

	displays := make([]image.Rectangle, 0, n)
	for i := 0; i < n; i++ {
		x, y, w, h := robotgo.GetDisplayBounds(i)
		sx, sy := auto.NormalizePointForScreen(x, y)
		sw, sh := auto.NormalizePointForScreen(w, h)
		displays = append(displays, image.Rect(sx, sy, sx+sw, sy+sh))
	}
	return displays, nil
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, img, bounds.Min, draw.Src)
	return rgba
}
