package auto

import (
	"fmt"
	"strings"
)

// Button 鼠标按键
type Button string

const (
	ButtonLeft   Button = "left"
	ButtonRight  Button = "right"
	ButtonMiddle Button = "middle"
)

// ParseButton 解析按键名称
func ParseButton(s string) (Button, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "left", "l":
		return ButtonLeft, nil
	case "right", "r":
		return ButtonRight, nil
	case "middle", "center", "m":
		return ButtonMiddle, nil
	default:
		return "", fmt.Errorf("%w: 不支持的鼠标按键 %q", ErrInvalidArgument, s)
	}
}

// RobotgoName robotgo 使用的按键名称
func (b Button) RobotgoName() string {
	if b == ButtonMiddle {
		return "center"
	}
	if b == "" {
		return string(ButtonLeft)
	}
	return string(b)
}
