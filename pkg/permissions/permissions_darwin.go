//go:build darwin

package permissions

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework Cocoa -framework ApplicationServices -framework CoreGraphics
#import <Cocoa/Cocoa.h>
#import <ApplicationServices/ApplicationServices.h>
#import <CoreGraphics/CoreGraphics.h>

int checkAccessibilityPermission() {
    NSDictionary *options = @{(__bridge NSString *)kAXTrustedCheckOptionPrompt: @NO};
    return AXIsProcessTrustedWithOptions((__bridge CFDictionaryRef)options) ? 1 : 0;
}

int requestAccessibilityPermission() {
    NSDictionary *options = @{(__bridge NSString *)kAXTrustedCheckOptionPrompt: @YES};
    return AXIsProcessTrustedWithOptions((__bridge CFDictionaryRef)options) ? 1 : 0;
}

int checkScreenRecordingPermission() {
    if (@available(macOS 10.15, *)) {
        CFArrayRef windowList = CGWindowListCopyWindowInfo(
            kCGWindowListOptionOnScreenOnly | kCGWindowListExcludeDesktopElements,
            kCGNullWindowID
        );

        if (windowList == NULL) {
            return 0;
        }

        CFIndex count = CFArrayGetCount(windowList);
        int hasNames = 0;

        for (CFIndex i = 0; i < count; i++) {
            CFDictionaryRef window = (CFDictionaryRef)CFArrayGetValueAtIndex(windowList, i);
            CFStringRef name = (CFStringRef)CFDictionaryGetValue(window, kCGWindowName);
            if (name != NULL && CFStringGetLength(name) > 0) {
                hasNames = 1;
                break;
            }
        }

        CFRelease(windowList);
        return (count == 0 || hasNames) ? 1 : 0;
    }
    return 1;
}

void openAccessibilityPreferences() {
    NSString *urlString = @"x-apple.systempreferences:com.apple.preference.security?Privacy_Accessibility";
    [[NSWorkspace sharedWorkspace] openURL:[NSURL URLWithString:urlString]];
}

void openScreenRecordingPreferences() {
    NSString *urlString = @"x-apple.systempreferences:com.apple.preference.security?Privacy_ScreenCapture";
    [[NSWorkspace sharedWorkspace] openURL:[NSURL URLWithString:urlString]];
}
*/
import "C"

// check 检查辅助功能与屏幕录制权限（不触发弹窗）
func check() *PermissionStatus {
	return &PermissionStatus{
		Accessibility:   C.checkAccessibilityPermission() == 1,
		ScreenRecording: C.checkScreenRecordingPermission() == 1,
		Display:         true,
	}
}

// RequestAccessibilityPermission 请求辅助功能权限（触发系统弹窗）
func RequestAccessibilityPermission() bool {
	return C.requestAccessibilityPermission() == 1
}

// OpenSettings 打开缺失权限对应的系统设置页面
func OpenSettings(status *PermissionStatus) {
	if !status.Accessibility {
		C.openAccessibilityPreferences()
	}
	if !status.ScreenRecording {
		C.openScreenRecordingPreferences()
	}
}

func instructions(status *PermissionStatus) []string {
	var lines []string
	if !status.Accessibility {
		lines = append(lines,
			"辅助功能权限 (用于控制鼠标/键盘、监听热键)",
			"   系统设置 > 隐私与安全性 > 辅助功能")
	}
	if !status.ScreenRecording {
		lines = append(lines,
			"屏幕录制权限 (用于截图和读取窗口标题)",
			"   系统设置 > 隐私与安全性 > 屏幕录制")
	}
	return lines
}
