package flow

import (
	"github.com/zoeyai/desktopapi/internal/logger"
	"github.com/zoeyai/desktopapi/pkg/auto"
	"github.com/zoeyai/desktopapi/pkg/auto/screen"
	"github.com/zoeyai/desktopapi/pkg/desktop"
)

// DemoText 演示输入的文字
const DemoText = "Hello from desktop-api!\n"

// Demo 查找 → 激活 → 截图保存 → 窗口内点击 → 输入文字
type Demo struct {
	Query  string
	Output string
	Click  auto.Point
	Text   string
}

// Run 执行演示，返回保存的截图路径
func (d Demo) Run(desk *desktop.Controller) (string, error) {
	h, err := desk.FindWindow(d.Query)
	if err != nil {
		return "", err
	}

	h, err = desk.ActivateWindow(h)
	if err != nil {
		return "", err
	}

	shot, err := desk.CaptureWindow(h)
	if err != nil {
		return "", err
	}
	if err := screen.Save(shot.Image, d.Output); err != nil {
		return "", err
	}
	logger.Info("截图已保存到 %s", d.Output)

	if _, err := desk.ClickIn(shot.Window, d.Click.X, d.Click.Y, auto.ButtonLeft); err != nil {
		return d.Output, err
	}

	text := d.Text
	if text == "" {
		text = DemoText
	}
	if err := desk.TypeText(text); err != nil {
		return d.Output, err
	}
	return d.Output, nil
}
