//go:build !darwin && !linux

package permissions

// check 非 macOS/Linux 系统通常不需要特殊权限
func check() *PermissionStatus {
	return &PermissionStatus{
		Accessibility:   true,
		ScreenRecording: true,
		Display:         true,
	}
}

// RequestAccessibilityPermission 请求辅助功能权限
func RequestAccessibilityPermission() bool {
	return true
}

// OpenSettings 打开系统设置页面
func OpenSettings(*PermissionStatus) {}

func instructions(*PermissionStatus) []string {
	return nil
}
