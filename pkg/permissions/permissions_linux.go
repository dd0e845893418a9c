//go:build linux

package permissions

import "os"

var lookupEnv = os.LookupEnv

// check Linux 下只要求存在 X 显示（Wayland 会话需通过 XWayland 提供 DISPLAY）
func check() *PermissionStatus {
	display, ok := lookupEnv("DISPLAY")
	return &PermissionStatus{
		Accessibility:   true,
		ScreenRecording: true,
		Display:         ok && display != "",
	}
}

// RequestAccessibilityPermission 请求辅助功能权限
func RequestAccessibilityPermission() bool {
	return true
}

// OpenSettings 打开系统设置页面
func OpenSettings(*PermissionStatus) {}

func instructions(status *PermissionStatus) []string {
	if status.Display {
		return nil
	}
	return []string{
		"X11 显示 (用于窗口枚举、截图和输入合成)",
		"   请在图形会话中运行，或设置 DISPLAY 环境变量（例如 Xvfb 的 :99）",
	}
}
