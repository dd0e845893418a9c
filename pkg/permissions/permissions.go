// Package permissions 检查窗口枚举、截图和输入合成所需的系统能力
package permissions

import (
	"fmt"
	"strings"

	"github.com/zoeyai/desktopapi/pkg/auto"
)

// PermissionStatus 权限状态
type PermissionStatus struct {
	Accessibility   bool `json:"accessibility" yaml:"accessibility"`
	ScreenRecording bool `json:"screen_recording" yaml:"screen_recording"`
	Display         bool `json:"display" yaml:"display"`
	AllGranted      bool `json:"all_granted" yaml:"all_granted"`
}

// CheckPermissions 检查所需权限（不触发弹窗）
func CheckPermissions() *PermissionStatus {
	status := check()
	status.AllGranted = status.Accessibility && status.ScreenRecording && status.Display
	return status
}

// GetPermissionInstructions 获取权限说明，全部满足时返回空字符串
func GetPermissionInstructions(status *PermissionStatus) string {
	if status.AllGranted {
		return ""
	}

	lines := instructions(status)
	if len(lines) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("需要以下系统能力才能正常工作:\n\n")
	for _, line := range lines {
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n授权后需要重启应用才能生效。")
	return b.String()
}

// Require 所需能力缺失时返回包装了 ErrPlatformUnavailable 的错误
func Require() error {
	return require(CheckPermissions())
}

func require(status *PermissionStatus) error {
	if status.AllGranted {
		return nil
	}

	var missing []string
	if !status.Display {
		missing = append(missing, "display")
	}
	if !status.Accessibility {
		missing = append(missing, "accessibility")
	}
	if !status.ScreenRecording {
		missing = append(missing, "screen_recording")
	}
	return fmt.Errorf("%w: 缺少 %s", auto.ErrPlatformUnavailable, strings.Join(missing, ", "))
}
