//go:build darwin

package window

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework CoreGraphics -framework Cocoa -framework AppKit
#import <CoreGraphics/CoreGraphics.h>
#import <Cocoa/Cocoa.h>
#import <AppKit/AppKit.h>

typedef struct {
    int pid;
    int windowId;
    int onscreen;
    int x;
    int y;
    int width;
    int height;
    char title[512];
} WindowDescC;

// 通过 PID 激活应用
int activateAppByPID(int pid) {
    NSRunningApplication* app = [NSRunningApplication runningApplicationWithProcessIdentifier:pid];
    if (app == nil) {
        return 0;
    }
    [app activateWithOptions:NSApplicationActivateAllWindows];
    return 1;
}

// 前台应用的 PID
int frontmostPID() {
    NSRunningApplication* app = [[NSWorkspace sharedWorkspace] frontmostApplication];
    if (app == nil) {
        return 0;
    }
    return [app processIdentifier];
}

// 按 Z 序（由前到后）获取 layer 0 的窗口
int listWindows(WindowDescC* windows, int maxCount) {
    CFArrayRef windowList = CGWindowListCopyWindowInfo(
        kCGWindowListOptionAll | kCGWindowListExcludeDesktopElements,
        kCGNullWindowID
    );
    if (windowList == NULL) {
        return -1;
    }

    CFIndex count = CFArrayGetCount(windowList);
    int resultCount = 0;

    for (CFIndex i = 0; i < count && resultCount < maxCount; i++) {
        CFDictionaryRef window = (CFDictionaryRef)CFArrayGetValueAtIndex(windowList, i);

        int layer = 0;
        CFNumberRef layerRef = (CFNumberRef)CFDictionaryGetValue(window, kCGWindowLayer);
        if (layerRef) {
            CFNumberGetValue(layerRef, kCFNumberIntType, &layer);
        }
        if (layer != 0) {
            continue;
        }

        int pid = 0;
        CFNumberRef pidRef = (CFNumberRef)CFDictionaryGetValue(window, kCGWindowOwnerPID);
        if (pidRef) {
            CFNumberGetValue(pidRef, kCFNumberIntType, &pid);
        }

        int windowId = 0;
        CFNumberRef windowIdRef = (CFNumberRef)CFDictionaryGetValue(window, kCGWindowNumber);
        if (windowIdRef) {
            CFNumberGetValue(windowIdRef, kCFNumberIntType, &windowId);
        }

        CFBooleanRef onscreenRef = (CFBooleanRef)CFDictionaryGetValue(window, kCGWindowIsOnscreen);
        int onscreen = onscreenRef != NULL && CFBooleanGetValue(onscreenRef);

        char title[512] = {0};
        CFStringRef nameRef = (CFStringRef)CFDictionaryGetValue(window, kCGWindowName);
        if (nameRef) {
            CFStringGetCString(nameRef, title, sizeof(title), kCFStringEncodingUTF8);
        }

        CGRect bounds = CGRectZero;
        CFDictionaryRef boundsRef = (CFDictionaryRef)CFDictionaryGetValue(window, kCGWindowBounds);
        if (boundsRef) {
            CGRectMakeWithDictionaryRepresentation(boundsRef, &bounds);
        }

        windows[resultCount].pid = pid;
        windows[resultCount].windowId = windowId;
        windows[resultCount].onscreen = onscreen;
        windows[resultCount].x = (int)bounds.origin.x;
        windows[resultCount].y = (int)bounds.origin.y;
        windows[resultCount].width = (int)bounds.size.width;
        windows[resultCount].height = (int)bounds.size.height;
        strncpy(windows[resultCount].title, title, sizeof(windows[resultCount].title) - 1);
        resultCount++;
    }

    CFRelease(windowList);
    return resultCount;
}
*/
import "C"
import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/zoeyai/desktopapi/pkg/auto"
)

const maxDarwinWindows = 512

// QuartzSource 使用 CGWindowList 枚举窗口，窗口标识为 CGWindowNumber
// 激活需要通过所属进程完成
type QuartzSource struct{}

var _ Source = QuartzSource{}

// NewSystemSource 返回当前平台的窗口来源（macOS 使用 Quartz）
func NewSystemSource() (Source, error) {
	return QuartzSource{}, nil
}

// Platform 平台名称
func (QuartzSource) Platform() string {
	return "darwin"
}

// Snapshot 枚举窗口；没有屏幕录制权限时标题为空
func (QuartzSource) Snapshot() (Snapshot, error) {
	buf := make([]C.WindowDescC, maxDarwinWindows)
	count := int(C.listWindows(&buf[0], C.int(maxDarwinWindows)))
	if count < 0 {
		return Snapshot{}, fmt.Errorf("%w: CGWindowListCopyWindowInfo 返回空", auto.ErrPlatformUnavailable)
	}

	frontPID := int(C.frontmostPID())
	var active WindowID

	windows := make([]Descriptor, 0, count)
	for i := 0; i < count; i++ {
		w := buf[i]
		d := Descriptor{
			ID:    WindowID(w.windowId),
			PID:   int(w.pid),
			Title: C.GoString(&w.title[0]),
			Bounds: auto.Region{
				X:      int(w.x),
				Y:      int(w.y),
				Width:  int(w.width),
				Height: int(w.height),
			},
			Minimized: w.onscreen == 0,
			Visible:   w.onscreen != 0,
		}
		// 列表按 Z 序排列，前台应用的第一个屏幕内窗口即为活动窗口
		if active == 0 && d.Visible && d.PID == frontPID {
			active = d.ID
		}
		windows = append(windows, d)
	}

	return Snapshot{Windows: windows, Active: active}, nil
}

// Activate 激活所属应用，再通过 System Events 提升同标题的窗口
func (QuartzSource) Activate(d Descriptor) error {
	if d.PID == 0 {
		return fmt.Errorf("%w: 窗口 %q 缺少所属进程", auto.ErrWindowNotFound, d.Title)
	}
	if C.activateAppByPID(C.int(d.PID)) == 0 {
		return fmt.Errorf("无法激活 PID %d 的应用", d.PID)
	}

	if d.Title == "" {
		return nil
	}

	title := strings.ReplaceAll(d.Title, `"`, `\"`)
	script := fmt.Sprintf(`
		tell application "System Events"
			set targetProcess to first process whose unix id is %d
			set frontmost of targetProcess to true
			repeat with w in windows of targetProcess
				if name of w is "%s" then
					perform action "AXRaise" of w
					exit repeat
				end if
			end repeat
		end tell
	`, d.PID, title)

	// AXRaise 失败（缺少辅助功能权限）时应用已在前台，不视为错误
	_ = exec.Command("osascript", "-e", script).Run()
	return nil
}
