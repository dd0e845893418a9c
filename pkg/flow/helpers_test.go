package flow

import (
	"context"
	"image"
	"sync"

	"github.com/zoeyai/desktopapi/pkg/auto"
	"github.com/zoeyai/desktopapi/pkg/auto/hook"
	"github.com/zoeyai/desktopapi/pkg/auto/input"
	"github.com/zoeyai/desktopapi/pkg/auto/screen"
	"github.com/zoeyai/desktopapi/pkg/auto/window"
	"github.com/zoeyai/desktopapi/pkg/desktop"
)

type fakeGrabber struct {
	mu    sync.Mutex
	grabs []image.Rectangle
}

func (g *fakeGrabber) Grab(r image.Rectangle) (*image.RGBA, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.grabs = append(g.grabs, r)
	return image.NewRGBA(r), nil
}

func (g *fakeGrabber) Displays() ([]image.Rectangle, error) {
	return []image.Rectangle{image.Rect(0, 0, 1920, 1080)}, nil
}

func (g *fakeGrabber) last() image.Rectangle {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.grabs[len(g.grabs)-1]
}

type fakeInjector struct {
	mu     sync.Mutex
	x, y   int
	clicks []auto.Point
	typed  string
}

func (f *fakeInjector) Move(x, y int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.x, f.y = x, y
}

func (f *fakeInjector) Toggle(b auto.Button, down bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !down {
		f.clicks = append(f.clicks, auto.Point{X: f.x, Y: f.y})
	}
	return nil
}

func (f *fakeInjector) Type(text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.typed += text
}

func (f *fakeInjector) Tap(string, ...string) error { return nil }

func (f *fakeInjector) Location() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.x, f.y
}

type testDesktop struct {
	desk     *desktop.Controller
	source   *window.MemorySource
	grabber  *fakeGrabber
	injector *fakeInjector
}

func newTestDesktop() *testDesktop {
	src := window.NewMemorySource(
		window.Descriptor{ID: 1, Title: "Example — App", Bounds: auto.Region{X: 100, Y: 50, Width: 800, Height: 600}, Visible: true},
		window.Descriptor{ID: 2, Title: "Other", Bounds: auto.Region{X: 0, Y: 0, Width: 50, Height: 50}, Visible: true},
	)
	resolver := window.NewResolver(src, window.WithActivateDelay(0))
	g := &fakeGrabber{}
	inj := &fakeInjector{x: 960, y: 540}
	actions := input.NewController(inj, resolver, input.Config{FailSafe: true})
	return &testDesktop{
		desk:     desktop.New(resolver, screen.NewService(resolver, g), actions),
		source:   src,
		grabber:  g,
		injector: inj,
	}
}

// scriptedListener 依次投递预设事件，然后阻塞到 ctx 结束
type scriptedListener struct {
	events []hook.Event
}

func (l scriptedListener) Listen(ctx context.Context, handler func(hook.Event)) error {
	for _, ev := range l.events {
		handler(ev)
	}
	<-ctx.Done()
	return nil
}
