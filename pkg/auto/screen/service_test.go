package screen

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/zoeyai/desktopapi/pkg/auto"
	"github.com/zoeyai/desktopapi/pkg/auto/window"
)

type fakeGrabber struct {
	displays []image.Rectangle
	grabs    []image.Rectangle
	err      error
}

func (g *fakeGrabber) Grab(r image.Rectangle) (*image.RGBA, error) {
	g.grabs = append(g.grabs, r)
	if g.err != nil {
		return nil, g.err
	}
	img := image.NewRGBA(r)
	img.Set(r.Min.X, r.Min.Y, color.RGBA{R: 255, A: 255})
	return img, nil
}

func (g *fakeGrabber) Displays() ([]image.Rectangle, error) {
	return g.displays, nil
}

func newTestService() (*Service, *fakeGrabber, *window.MemorySource) {
	src := window.NewMemorySource(
		window.Descriptor{ID: 1, Title: "Example — App", Bounds: auto.Region{X: 100, Y: 50, Width: 800, Height: 600}, Visible: true},
	)
	g := &fakeGrabber{displays: []image.Rectangle{
		image.Rect(0, 0, 1920, 1080),
		image.Rect(1920, -200, 3200, 824),
	}}
	r := window.NewResolver(src, window.WithActivateDelay(0))
	return NewService(r, g), g, src
}

func TestCaptureRegionClampsSize(t *testing.T) {
	s, g, _ := newTestService()

	tests := []struct {
		in   auto.Region
		want image.Rectangle
	}{
		{auto.Region{X: 10, Y: 20, Width: 0, Height: 5}, image.Rect(10, 20, 11, 25)},
		{auto.Region{X: 10, Y: 20, Width: 3, Height: -4}, image.Rect(10, 20, 13, 21)},
		{auto.Region{X: 0, Y: 0, Width: 30, Height: 40}, image.Rect(0, 0, 30, 40)},
	}
	for _, tt := range tests {
		img, err := s.CaptureRegion(tt.in)
		if err != nil {
			t.Fatalf("CaptureRegion(%v) 失败: %v", tt.in, err)
		}
		if img.Bounds() != tt.want {
			t.Errorf("CaptureRegion(%v) 尺寸 = %v, 期望 %v", tt.in, img.Bounds(), tt.want)
		}
		if got := g.grabs[len(g.grabs)-1]; got != tt.want {
			t.Errorf("采集区域 = %v, 期望 %v", got, tt.want)
		}
	}
}

func TestCaptureRegionError(t *testing.T) {
	s, g, _ := newTestService()
	g.err = errors.New("permission denied")

	if _, err := s.CaptureRegion(auto.Region{Width: 10, Height: 10}); !errors.Is(err, g.err) {
		t.Errorf("应透传采集错误, 实际 %v", err)
	}
	if len(g.grabs) != 1 {
		t.Errorf("不应重试, 实际采集 %d 次", len(g.grabs))
	}
}

func TestCaptureWindowPadding(t *testing.T) {
	s, g, _ := newTestService()

	for _, p := range []int{0, 5, 20} {
		shot, err := s.CaptureWindow(window.Title("Example"), Padding(p))
		if err != nil {
			t.Fatalf("CaptureWindow(padding=%d) 失败: %v", p, err)
		}
		want := auto.Region{X: 100 - p, Y: 50 - p, Width: 800 + 2*p, Height: 600 + 2*p}
		if shot.Region != want {
			t.Errorf("padding=%d 区域 = %v, 期望 %v", p, shot.Region, want)
		}
		if g.grabs[len(g.grabs)-1] != want.Rect() {
			t.Errorf("padding=%d 采集区域不正确: %v", p, g.grabs[len(g.grabs)-1])
		}
		if shot.Window.Title != "Example — App" {
			t.Errorf("Shot.Window 不正确: %+v", shot.Window)
		}
	}
}

func TestCaptureWindowNegativePadding(t *testing.T) {
	s, g, src := newTestService()

	_, err := s.CaptureWindow(window.Title("Example"), Activate(), Padding(-1))
	if !errors.Is(err, auto.ErrInvalidArgument) {
		t.Fatalf("负 padding 应返回 ErrInvalidArgument, 实际 %v", err)
	}
	if len(src.Activations()) != 0 || len(g.grabs) != 0 {
		t.Error("参数错误时不应产生任何副作用")
	}
}

func TestCaptureWindowUsesFreshGeometry(t *testing.T) {
	s, g, src := newTestService()

	stale := window.Handle{ID: 1, Title: "Example — App", Left: 100, Top: 50, Width: 800, Height: 600}
	src.Move(1, auto.Region{X: 400, Y: 300, Width: 200, Height: 100})

	shot, err := s.CaptureWindow(stale)
	if err != nil {
		t.Fatalf("CaptureWindow 失败: %v", err)
	}
	if g.grabs[0] != image.Rect(400, 300, 600, 400) {
		t.Errorf("应使用刷新后的几何信息, 实际 %v", g.grabs[0])
	}
	if shot.Window.Left != 400 {
		t.Errorf("Shot.Window 应为刷新后的句柄: %+v", shot.Window)
	}
}

func TestCaptureWindowActivate(t *testing.T) {
	s, _, src := newTestService()

	shot, err := s.CaptureWindow(window.Title("Example"), Activate())
	if err != nil {
		t.Fatalf("CaptureWindow 失败: %v", err)
	}
	if len(src.Activations()) != 1 {
		t.Error("Activate() 应激活窗口")
	}
	if !shot.Window.IsActive {
		t.Error("激活后句柄应为活动窗口")
	}

	if _, err := s.CaptureWindow(window.Title("Example")); err != nil {
		t.Fatalf("CaptureWindow 失败: %v", err)
	}
	if len(src.Activations()) != 1 {
		t.Error("未指定 Activate() 时不应改变焦点")
	}
}

func TestCaptureWindowNotFound(t *testing.T) {
	s, g, _ := newTestService()

	shot, err := s.CaptureWindow(window.Title("Missing"))
	if !errors.Is(err, auto.ErrWindowNotFound) {
		t.Fatalf("应返回 ErrWindowNotFound, 实际 %v", err)
	}
	if shot != nil || len(g.grabs) != 0 {
		t.Error("失败时不应返回部分结果")
	}
}

func TestCaptureScreen(t *testing.T) {
	s, g, _ := newTestService()

	tests := []struct {
		monitor int
		want    image.Rectangle
	}{
		{0, image.Rect(0, -200, 3200, 1080)},
		{-3, image.Rect(0, -200, 3200, 1080)},
		{1, image.Rect(0, 0, 1920, 1080)},
		{2, image.Rect(1920, -200, 3200, 824)},
		{9, image.Rect(1920, -200, 3200, 824)},
	}
	for _, tt := range tests {
		shot, err := s.CaptureScreen(tt.monitor)
		if err != nil {
			t.Fatalf("CaptureScreen(%d) 失败: %v", tt.monitor, err)
		}
		if shot.Region.Rect() != tt.want {
			t.Errorf("CaptureScreen(%d) 区域 = %v, 期望 %v", tt.monitor, shot.Region.Rect(), tt.want)
		}
	}

	g.displays = nil
	if _, err := s.CaptureScreen(0); !errors.Is(err, auto.ErrPlatformUnavailable) {
		t.Errorf("无显示器时应返回 ErrPlatformUnavailable, 实际 %v", err)
	}
}
