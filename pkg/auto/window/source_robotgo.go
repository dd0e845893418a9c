package window

import (
	"fmt"

	"github.com/go-vgo/robotgo"

	"github.com/zoeyai/desktopapi/pkg/auto"
)

// RobotgoSource 基于 robotgo 的跨平台窗口来源
// robotgo 以 PID 作为窗口标识，每个进程只报告一个主窗口，且无法得知最小化状态
type RobotgoSource struct{}

var _ Source = RobotgoSource{}

// NewRobotgoSource 创建 robotgo 窗口来源
func NewRobotgoSource() RobotgoSource {
	return RobotgoSource{}
}

// Platform 平台名称
func (RobotgoSource) Platform() string {
	return "robotgo"
}

// Snapshot 枚举带标题的进程窗口
func (RobotgoSource) Snapshot() (Snapshot, error) {
	pids, err := robotgo.Pids()
	if err != nil {
		return Snapshot{}, fmt.Errorf("获取进程列表失败: %w", err)
	}

	windows := make([]Descriptor, 0, 64)
	for _, pid := range pids {
		title := robotgo.GetTitle(pid)
		if title == "" {
			continue
		}

		x, y, w, h := robotgo.GetBounds(pid)
		x, y = auto.NormalizePointForScreen(x, y)
		w, h = auto.NormalizePointForScreen(w, h)

		windows = append(windows, Descriptor{
			ID:      WindowID(pid),
			PID:     pid,
			Title:   title,
			Bounds:  auto.Region{X: x, Y: y, Width: w, Height: h},
			Visible: true,
		})
	}

	return Snapshot{Windows: windows, Active: WindowID(robotgo.GetPid())}, nil
}

// Activate 通过 PID 激活窗口
func (RobotgoSource) Activate(d Descriptor) error {
	pid := d.PID
	if pid == 0 {
		pid = int(d.ID)
	}
	if pid == 0 {
		return fmt.Errorf("%w: 窗口 %q 缺少 PID", auto.ErrWindowNotFound, d.Title)
	}
	if err := robotgo.ActivePid(pid); err != nil {
		return fmt.Errorf("激活 PID=%d 失败: %w", pid, err)
	}
	return nil
}
