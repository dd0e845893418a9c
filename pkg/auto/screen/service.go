package screen

import (
	"fmt"
	"image"
	"time"

	"github.com/zoeyai/desktopapi/internal/logger"
	"github.com/zoeyai/desktopapi/pkg/auto"
	"github.com/zoeyai/desktopapi/pkg/auto/window"
)

// Shot 一次截图的结果
type Shot struct {
	Image   *image.RGBA   `json:"-" yaml:"-"`
	Region  auto.Region   `json:"region" yaml:"region"`
	Window  window.Handle `json:"window" yaml:"window"`
	TakenAt time.Time     `json:"taken_at" yaml:"taken_at"`
}

// CaptureOption 窗口截图选项
type CaptureOption func(*captureOptions)

type captureOptions struct {
	activate bool
	padding  int
}

// Activate 截图前先激活窗口（否则只刷新几何信息，不改变焦点）
func Activate() CaptureOption {
	return func(o *captureOptions) {
		o.activate = true
	}
}

// Padding 向四周扩展 p 像素，p 必须非负
func Padding(p int) CaptureOption {
	return func(o *captureOptions) {
		o.padding = p
	}
}

// Service 截图服务
type Service struct {
	resolver *window.Resolver
	grabber  Grabber
	now      func() time.Time
}

// NewService 创建截图服务，resolver 仅用于将窗口目标转换为区域
func NewService(resolver *window.Resolver, grabber Grabber) *Service {
	return &Service{
		resolver: resolver,
		grabber:  grabber,
		now:      time.Now,
	}
}

// Grabber 返回底层采集器
func (s *Service) Grabber() Grabber {
	return s.grabber
}

// CaptureRegion 截取屏幕区域，宽高不足 1 时按 1 处理；不重试
func (s *Service) CaptureRegion(region auto.Region) (*image.RGBA, error) {
	start := time.Now()
	region = region.Clamp()

	img, err := s.grabber.Grab(region.Rect())
	if err != nil {
		logger.LogEvent(logger.CatCapture, false, logger.Since(start), "区域 "+region.String())
		return nil, fmt.Errorf("截图失败: %w", err)
	}

	logger.LogEvent(logger.CatCapture, true, logger.Since(start), "区域 "+region.String())
	return img, nil
}

// CaptureWindow 截取窗口当前所在区域
//
// 区域总是基于调用时重新获取的几何信息，而不是传入句柄中可能过期的值。
func (s *Service) CaptureWindow(target window.Target, opts ...CaptureOption) (*Shot, error) {
	o := captureOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.padding < 0 {
		return nil, fmt.Errorf("%w: padding 不能为负数: %d", auto.ErrInvalidArgument, o.padding)
	}

	var (
		h   window.Handle
		err error
	)
	if o.activate {
		h, err = s.resolver.ActivateWindow(target)
	} else {
		h, err = s.resolver.RefreshWindow(target)
	}
	if err != nil {
		return nil, err
	}

	region := h.Region().Pad(o.padding)
	img, err := s.CaptureRegion(region)
	if err != nil {
		return nil, err
	}

	return &Shot{
		Image:   img,
		Region:  region.Clamp(),
		Window:  h,
		TakenAt: s.now(),
	}, nil
}

// CaptureScreen 截取显示器
//
// monitor 被钳制到 [0, n]：0 表示所有显示器组成的虚拟桌面，i >= 1 表示第 i 个显示器。
func (s *Service) CaptureScreen(monitor int) (*Shot, error) {
	displays, err := s.grabber.Displays()
	if err != nil {
		return nil, err
	}
	if len(displays) == 0 {
		return nil, fmt.Errorf("%w: 未检测到显示器", auto.ErrPlatformUnavailable)
	}

	region := auto.RegionFromRect(MonitorBounds(displays, monitor))
	img, err := s.CaptureRegion(region)
	if err != nil {
		return nil, err
	}

	return &Shot{
		Image:   img,
		Region:  region.Clamp(),
		TakenAt: s.now(),
	}, nil
}

// MonitorBounds 返回钳制后的显示器编号对应的边界，displays 不能为空
func MonitorBounds(displays []image.Rectangle, monitor int) image.Rectangle {
	monitor = min(max(monitor, 0), len(displays))
	if monitor == 0 {
		return VirtualDesktop(displays)
	}
	return displays[monitor-1]
}
