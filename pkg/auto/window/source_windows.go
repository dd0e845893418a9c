//go:build windows

package window

import (
	"fmt"
	"syscall"
	"unsafe"

	"github.com/zoeyai/desktopapi/pkg/auto"
)

var (
	user32                       = syscall.NewLazyDLL("user32.dll")
	kernel32                     = syscall.NewLazyDLL("kernel32.dll")
	procEnumWindows              = user32.NewProc("EnumWindows")
	procGetWindowTextW           = user32.NewProc("GetWindowTextW")
	procGetWindowTextLengthW     = user32.NewProc("GetWindowTextLengthW")
	procGetWindowThreadProcessId = user32.NewProc("GetWindowThreadProcessId")
	procGetWindowRect            = user32.NewProc("GetWindowRect")
	procIsWindow                 = user32.NewProc("IsWindow")
	procIsWindowVisible          = user32.NewProc("IsWindowVisible")
	procIsIconic                 = user32.NewProc("IsIconic")
	procGetWindowLongW           = user32.NewProc("GetWindowLongW")
	procSetForegroundWindow      = user32.NewProc("SetForegroundWindow")
	procShowWindow               = user32.NewProc("ShowWindow")
	procBringWindowToTop         = user32.NewProc("BringWindowToTop")
	procGetForegroundWindow      = user32.NewProc("GetForegroundWindow")
	procAttachThreadInput        = user32.NewProc("AttachThreadInput")
	procGetCurrentThreadId       = kernel32.NewProc("GetCurrentThreadId")
)

const (
	gwlExStyle = ^uintptr(19) // -20

	wsExToolWindow uintptr = 0x00000080
	wsExAppWindow  uintptr = 0x00040000

	swRestore = 9
)

// RECT Windows 矩形结构
type RECT struct {
	Left, Top, Right, Bottom int32
}

// Win32Source 使用 user32 API 枚举顶层窗口，窗口标识为 HWND
type Win32Source struct{}

var _ Source = Win32Source{}

// NewSystemSource 返回当前平台的窗口来源（Windows 使用 user32）
func NewSystemSource() (Source, error) {
	if err := procEnumWindows.Find(); err != nil {
		return nil, fmt.Errorf("%w: %v", auto.ErrPlatformUnavailable, err)
	}
	return Win32Source{}, nil
}

// Platform 平台名称
func (Win32Source) Platform() string {
	return "windows"
}

// Snapshot 枚举顶层窗口（跳过工具窗口）
func (Win32Source) Snapshot() (Snapshot, error) {
	windows := make([]Descriptor, 0, 64)

	// 直接通过闭包收集结果，避免 unsafe.Pointer(uintptr) 转换
	callback := syscall.NewCallback(func(hwnd syscall.Handle, _ uintptr) uintptr {
		exStyle, _, _ := procGetWindowLongW.Call(uintptr(hwnd), gwlExStyle)
		if exStyle&wsExToolWindow != 0 && exStyle&wsExAppWindow == 0 {
			return 1
		}

		title := windowText(hwnd)
		if title == "" {
			return 1
		}

		var pid uint32
		procGetWindowThreadProcessId.Call(uintptr(hwnd), uintptr(unsafe.Pointer(&pid)))

		var rect RECT
		procGetWindowRect.Call(uintptr(hwnd), uintptr(unsafe.Pointer(&rect)))

		visible, _, _ := procIsWindowVisible.Call(uintptr(hwnd))
		iconic, _, _ := procIsIconic.Call(uintptr(hwnd))

		windows = append(windows, Descriptor{
			ID:    WindowID(hwnd),
			PID:   int(pid),
			Title: title,
			Bounds: auto.Region{
				X:      int(rect.Left),
				Y:      int(rect.Top),
				Width:  int(rect.Right - rect.Left),
				Height: int(rect.Bottom - rect.Top),
			},
			Minimized: iconic != 0,
			Visible:   visible != 0,
		})
		return 1
	})

	procEnumWindows.Call(callback, 0)

	foreground, _, _ := procGetForegroundWindow.Call()
	return Snapshot{Windows: windows, Active: WindowID(foreground)}, nil
}

// Activate 通过窗口句柄激活窗口（附加线程输入以绕过前台锁）
func (Win32Source) Activate(d Descriptor) error {
	hwnd := uintptr(d.ID)
	if hwnd == 0 {
		return fmt.Errorf("%w: 窗口 %q 缺少 HWND", auto.ErrWindowNotFound, d.Title)
	}
	if ok, _, _ := procIsWindow.Call(hwnd); ok == 0 {
		return fmt.Errorf("%w: HWND=%#x 已失效", auto.ErrWindowNotFound, hwnd)
	}

	foregroundHwnd, _, _ := procGetForegroundWindow.Call()
	var foregroundThreadId uintptr
	if foregroundHwnd != 0 {
		foregroundThreadId, _, _ = procGetWindowThreadProcessId.Call(foregroundHwnd, 0)
	}

	currentThreadId, _, _ := procGetCurrentThreadId.Call()
	targetThreadId, _, _ := procGetWindowThreadProcessId.Call(hwnd, 0)

	if foregroundThreadId != 0 && foregroundThreadId != currentThreadId {
		procAttachThreadInput.Call(currentThreadId, foregroundThreadId, 1)
		defer procAttachThreadInput.Call(currentThreadId, foregroundThreadId, 0)
	}

	if targetThreadId != 0 && targetThreadId != currentThreadId {
		procAttachThreadInput.Call(currentThreadId, targetThreadId, 1)
		defer procAttachThreadInput.Call(currentThreadId, targetThreadId, 0)
	}

	procShowWindow.Call(hwnd, swRestore)
	procBringWindowToTop.Call(hwnd)

	ret, _, _ := procSetForegroundWindow.Call(hwnd)
	if ret == 0 {
		return fmt.Errorf("SetForegroundWindow 失败: HWND=%#x", hwnd)
	}
	return nil
}

func windowText(hwnd syscall.Handle) string {
	length, _, _ := procGetWindowTextLengthW.Call(uintptr(hwnd))
	if length == 0 {
		return ""
	}

	buf := make([]uint16, length+1)
	procGetWindowTextW.Call(uintptr(hwnd), uintptr(unsafe.Pointer(&buf[0])), uintptr(length+1))
	return syscall.UTF16ToString(buf)
}
