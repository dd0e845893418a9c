package desktop

import (
	"errors"
	"image"
	"testing"

	"github.com/zoeyai/desktopapi/pkg/auto"
	"github.com/zoeyai/desktopapi/pkg/auto/input"
	"github.com/zoeyai/desktopapi/pkg/auto/screen"
	"github.com/zoeyai/desktopapi/pkg/auto/window"
	"github.com/zoeyai/desktopapi/pkg/config"
)

type fakeGrabber struct{ grabs []image.Rectangle }

func (g *fakeGrabber) Grab(r image.Rectangle) (*image.RGBA, error) {
	g.grabs = append(g.grabs, r)
	return image.NewRGBA(r), nil
}

func (g *fakeGrabber) Displays() ([]image.Rectangle, error) {
	return []image.Rectangle{image.Rect(0, 0, 1280, 800)}, nil
}

type fakeInjector struct {
	x, y   int
	clicks []auto.Point
	typed  string
}

func (f *fakeInjector) Move(x, y int) { f.x, f.y = x, y }

func (f *fakeInjector) Toggle(b auto.Button, down bool) error {
	if !down {
		f.clicks = append(f.clicks, auto.Point{X: f.x, Y: f.y})
	}
	return nil
}

func (f *fakeInjector) Type(text string)            { f.typed += text }
func (f *fakeInjector) Tap(string, ...string) error { return nil }
func (f *fakeInjector) Location() (int, int)        { return f.x, f.y }

func newTestController() (*Controller, *fakeInjector, *fakeGrabber) {
	src := window.NewMemorySource(
		window.Descriptor{ID: 7, Title: "Example — App", Bounds: auto.Region{X: 100, Y: 50, Width: 800, Height: 600}, Visible: true},
		window.Descriptor{ID: 8, Title: "untitled - Notepad", Bounds: auto.Region{X: 0, Y: 0, Width: 300, Height: 200}, Visible: true},
	)
	resolver := window.NewResolver(src, window.WithActivateDelay(0))
	g := &fakeGrabber{}
	inj := &fakeInjector{x: 600, y: 600}
	actions := input.NewController(inj, resolver, input.DefaultConfig())
	return New(resolver, screen.NewService(resolver, g), actions), inj, g
}

func TestEndToEndScenario(t *testing.T) {
	c, inj, g := newTestController()

	h, err := c.FindWindow("app")
	if err != nil {
		t.Fatalf("FindWindow 失败: %v", err)
	}
	if h.Left != 100 || h.Top != 50 || h.Width != 800 || h.Height != 600 {
		t.Errorf("窗口几何信息不正确: %+v", h)
	}

	h, err = c.ActivateWindow(h)
	if err != nil {
		t.Fatalf("ActivateWindow 失败: %v", err)
	}
	if !h.IsActive {
		t.Error("激活后应为活动窗口")
	}

	shot, err := c.CaptureWindow(h)
	if err != nil {
		t.Fatalf("CaptureWindow 失败: %v", err)
	}
	if shot.Region != h.Region() || g.grabs[0] != h.Region().Rect() {
		t.Errorf("截图区域不正确: %v", shot.Region)
	}

	p, err := c.ClickIn(h, 40, 40, auto.ButtonLeft)
	if err != nil {
		t.Fatalf("ClickIn 失败: %v", err)
	}
	if p != (auto.Point{X: 140, Y: 90}) || len(inj.clicks) != 1 || inj.clicks[0] != p {
		t.Errorf("应在 (140, 90) 点击, 实际 %v %v", p, inj.clicks)
	}

	if err := c.TypeText("Hello from desktop-api!\n"); err != nil {
		t.Fatalf("TypeText 失败: %v", err)
	}
	if inj.typed != "Hello from desktop-api!\n" {
		t.Errorf("输入内容不正确: %q", inj.typed)
	}
}

func TestDelegates(t *testing.T) {
	c, inj, _ := newTestController()

	windows, err := c.ListWindows(1)
	if err != nil || len(windows) != 2 {
		t.Fatalf("ListWindows = %v, %v", windows, err)
	}
	if _, err := c.RefreshWindow(window.Title("Notepad")); err != nil {
		t.Errorf("RefreshWindow 失败: %v", err)
	}
	if _, err := c.FindWindow("notepad", window.CaseSensitive()); !errors.Is(err, auto.ErrWindowNotFound) {
		t.Errorf("区分大小写时不应命中, 实际 %v", err)
	}
	if _, err := c.CaptureRegion(auto.Region{X: 1, Y: 1}); err != nil {
		t.Errorf("CaptureRegion 失败: %v", err)
	}
	shot, err := c.CaptureScreen(0)
	if err != nil || shot.Region != (auto.Region{Width: 1280, Height: 800}) {
		t.Errorf("CaptureScreen = %v, %v", shot, err)
	}
	if err := c.Click(5, 6, auto.ButtonRight); err != nil || inj.clicks[0] != (auto.Point{X: 5, Y: 6}) {
		t.Errorf("Click 失败: %v %v", err, inj.clicks)
	}
	if err := c.ClickHere(auto.ButtonLeft); err != nil || inj.clicks[1] != (auto.Point{X: 5, Y: 6}) {
		t.Errorf("ClickHere 失败: %v %v", err, inj.clicks)
	}
	c.Close()
}

func TestNewSystemMemoryBackend(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.WindowBackend = config.WindowBackendMemory

	c, err := NewSystem(cfg)
	if err != nil {
		t.Fatalf("NewSystem 失败: %v", err)
	}
	defer c.Close()

	if c.Resolver().Source().Platform() != "memory" {
		t.Errorf("应使用内存窗口来源, 实际 %s", c.Resolver().Source().Platform())
	}
	if !c.Actions().Config().FailSafe {
		t.Error("应继承 fail_safe 配置")
	}
	if _, ok := c.Capture().Grabber().(screen.ScreenshotGrabber); !ok {
		t.Errorf("默认截图来源应为 ScreenshotGrabber, 实际 %T", c.Capture().Grabber())
	}
	if _, err := c.FindWindow("anything"); !errors.Is(err, auto.ErrWindowNotFound) {
		t.Errorf("空窗口表中查找应返回 ErrWindowNotFound, 实际 %v", err)
	}
}

func TestNewSystemInvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Clicker.CPS = -1
	if _, err := NewSystem(cfg); !errors.Is(err, auto.ErrInvalidArgument) {
		t.Errorf("无效配置应返回 ErrInvalidArgument, 实际 %v", err)
	}
}
