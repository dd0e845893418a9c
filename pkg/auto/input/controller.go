package input

import (
	"fmt"
	"time"

	"github.com/zoeyai/desktopapi/internal/logger"
	"github.com/zoeyai/desktopapi/pkg/auto"
	"github.com/zoeyai/desktopapi/pkg/auto/window"
)

// FailSafeCorner 鼠标位于该点时中止所有合成操作
var FailSafeCorner = auto.Point{X: 0, Y: 0}

// Config 对所有合成操作统一生效的配置
type Config struct {
	// FailSafe 操作前检查鼠标是否位于 FailSafeCorner
	FailSafe bool `json:"fail_safe" yaml:"fail_safe"`
	// Pause 每次操作后的等待时间
	Pause time.Duration `json:"pause" yaml:"pause"`
}

// DefaultConfig 默认配置
func DefaultConfig() Config {
	return Config{FailSafe: true, Pause: 0}
}

// Controller 动作控制器
//
// 窗口相对坐标在执行前总会基于刷新后的窗口几何信息换算为屏幕坐标。
// 键盘输入总是发送到当前焦点窗口，需先通过 ActivateWindow 建立焦点。
type Controller struct {
	injector Injector
	resolver *window.Resolver
	cfg      Config
	sleep    func(time.Duration)
}

// NewController 创建动作控制器，resolver 仅用于 ClickIn
func NewController(injector Injector, resolver *window.Resolver, cfg Config) *Controller {
	return &Controller{
		injector: injector,
		resolver: resolver,
		cfg:      cfg,
		sleep:    time.Sleep,
	}
}

// Config 当前配置
func (c *Controller) Config() Config {
	return c.cfg
}

// Click 在屏幕坐标 (x, y) 处按下并释放鼠标按键
func (c *Controller) Click(x, y int, button auto.Button) error {
	return c.do(fmt.Sprintf("点击 %s (%d, %d)", button, x, y), func() error {
		return c.click(x, y, button)
	})
}

// ClickIn 在窗口相对坐标 (x, y) 处点击，返回实际点击的屏幕坐标
//
// 点击前刷新目标窗口，以容忍窗口在解析与点击之间的移动。
func (c *Controller) ClickIn(target window.Target, x, y int, button auto.Button) (auto.Point, error) {
	if c.resolver == nil {
		return auto.Point{}, fmt.Errorf("%w: 未配置窗口解析器", auto.ErrInvalidArgument)
	}

	h, err := c.resolver.RefreshWindow(target)
	if err != nil {
		return auto.Point{}, err
	}

	p := h.ToScreen(x, y)
	err = c.do(fmt.Sprintf("点击 %s (%d, %d) 于 %s", button, p.X, p.Y, h), func() error {
		return c.click(p.X, p.Y, button)
	})
	if err != nil {
		return auto.Point{}, err
	}
	return p, nil
}

// TypeText 在当前焦点窗口输入文字
func (c *Controller) TypeText(text string) error {
	return c.do(fmt.Sprintf("输入 %d 个字符", len([]rune(text))), func() error {
		c.injector.Type(text)
		return nil
	})
}

// KeyTap 按键（可带修饰键）
func (c *Controller) KeyTap(key string, modifiers ...string) error {
	return c.do("按键 "+key, func() error {
		return c.injector.Tap(key, modifiers...)
	})
}

// MoveTo 移动鼠标到屏幕坐标
func (c *Controller) MoveTo(x, y int) error {
	return c.do(fmt.Sprintf("移动 (%d, %d)", x, y), func() error {
		c.injector.Move(x, y)
		return nil
	})
}

// Press 在当前位置按下鼠标按键
func (c *Controller) Press(button auto.Button) error {
	return c.do(fmt.Sprintf("按下 %s", button), func() error {
		b, err := normalizeButton(button)
		if err != nil {
			return err
		}
		return c.injector.Toggle(b, true)
	})
}

// Release 在当前位置释放鼠标按键
func (c *Controller) Release(button auto.Button) error {
	return c.do(fmt.Sprintf("释放 %s", button), func() error {
		b, err := normalizeButton(button)
		if err != nil {
			return err
		}
		return c.injector.Toggle(b, false)
	})
}

// ClickHere 在当前鼠标位置点击
func (c *Controller) ClickHere(button auto.Button) error {
	p := c.Position()
	return c.Click(p.X, p.Y, button)
}

// Position 当前鼠标的屏幕坐标
func (c *Controller) Position() auto.Point {
	x, y := c.injector.Location()
	return auto.Point{X: x, Y: y}
}

func (c *Controller) click(x, y int, button auto.Button) error {
	b, err := normalizeButton(button)
	if err != nil {
		return err
	}
	c.injector.Move(x, y)
	if err := c.injector.Toggle(b, true); err != nil {
		return err
	}
	return c.injector.Toggle(b, false)
}

// do 执行一次合成操作：先检查 fail-safe，操作后按配置暂停
func (c *Controller) do(detail string, action func() error) error {
	start := time.Now()

	if err := c.checkFailSafe(); err != nil {
		logger.LogEvent(logger.CatAction, false, logger.Since(start), detail)
		return err
	}

	if err := action(); err != nil {
		logger.LogEvent(logger.CatAction, false, logger.Since(start), detail)
		return err
	}

	if c.cfg.Pause > 0 {
		c.sleep(c.cfg.Pause)
	}
	logger.LogEvent(logger.CatAction, true, logger.Since(start), detail)
	return nil
}

func (c *Controller) checkFailSafe() error {
	if !c.cfg.FailSafe {
		return nil
	}
	if c.Position() == FailSafeCorner {
		return fmt.Errorf("%w: 鼠标位于 %v", auto.ErrFailSafe, FailSafeCorner)
	}
	return nil
}

func normalizeButton(b auto.Button) (auto.Button, error) {
	return auto.ParseButton(string(b))
}
