// Package input 在屏幕坐标或窗口相对坐标上合成鼠标和键盘操作
package input

import (
	"fmt"

	"github.com/go-vgo/robotgo"

	"github.com/zoeyai/desktopapi/pkg/auto"
)

// Injector 输入合成能力，坐标均为屏幕坐标
type Injector interface {
	Move(x, y int)
	Toggle(b auto.Button, down bool) error
	Type(text string)
	Tap(key string, modifiers ...string) error
	Location() (x, y int)
}

// RobotgoInjector 基于 robotgo 的输入合成
type RobotgoInjector struct{}

var _ Injector = RobotgoInjector{}

// NewRobotgoInjector 创建 robotgo 输入合成器
func NewRobotgoInjector() RobotgoInjector {
	return RobotgoInjector{}
}

// Move 移动鼠标到指定位置
func (RobotgoInjector) Move(x, y int) {
	inputX, inputY := auto.NormalizePointForInput(x, y)
	robotgo.Move(inputX, inputY)
}

// Toggle 按下或释放鼠标按键
func (RobotgoInjector) Toggle(b auto.Button, down bool) error {
	dir := "up"
	if down {
		dir = "down"
	}
	if err := robotgo.Toggle(b.RobotgoName(), dir); err != nil {
		return fmt.Errorf("鼠标 %s %s 失败: %w", b, dir, err)
	}
	return nil
}

// Type 输入文字
func (RobotgoInjector) Type(text string) {
	robotgo.TypeStr(text)
}

// Tap 按键（可带修饰键）
func (RobotgoInjector) Tap(key string, modifiers ...string) error {
	var err error
	if len(modifiers) > 0 {
		err = robotgo.KeyTap(key, modifiers)
	} else {
		err = robotgo.KeyTap(key)
	}
	if err != nil {
		return fmt.Errorf("按键 %s 失败: %w", key, err)
	}
	return nil
}

// Location 获取鼠标位置
func (RobotgoInjector) Location() (x, y int) {
	inputX, inputY := robotgo.Location()
	return auto.NormalizePointForScreen(inputX, inputY)
}
