package window

import "github.com/zoeyai/desktopapi/pkg/auto"

// Descriptor 窗口系统返回的原始窗口描述
type Descriptor struct {
	ID        WindowID
	PID       int
	Title     string
	Bounds    auto.Region
	Minimized bool
	Visible   bool
}

// Snapshot 一次枚举的结果
type Snapshot struct {
	Windows []Descriptor
	Active  WindowID
}

// Source 窗口来源（每个平台一个实现，进程启动时选定后注入）
type Source interface {
	// Snapshot 枚举所有顶层窗口并报告当前前台窗口
	Snapshot() (Snapshot, error)
	// Activate 将窗口置于前台
	Activate(d Descriptor) error
	// Platform 平台名称
	Platform() string
}

// OwnerLookup 根据 PID 查询所属进程名称
type OwnerLookup interface {
	OwnerName(pid int) string
}
