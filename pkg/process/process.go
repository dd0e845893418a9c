// Package process 提供窗口所属进程的查询功能
package process

import (
	"fmt"
	"strings"
	"sync"

	"github.com/shirou/gopsutil/v4/process"
)

// ProcessInfo 进程信息
type ProcessInfo struct {
	PID  int    `json:"pid" yaml:"pid"`
	Name string `json:"name" yaml:"name"`
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// Table 按 PID 缓存进程名，供窗口句柄填充 OwnerName
//
// 命中缓存时先确认进程仍在运行，进程退出后 PID 可能被复用，此时丢弃旧名称重新查询。
type Table struct {
	mu     sync.Mutex
	names  map[int]string
	lookup func(pid int) (string, error)
	alive  func(pid int) bool
}

// NewTable 创建基于 gopsutil 的进程名表
func NewTable() *Table {
	return &Table{
		names:  make(map[int]string),
		lookup: processName,
		alive:  IsProcessRunning,
	}
}

// OwnerName 返回 pid 对应的进程名，查询失败时返回空字符串（不缓存失败结果）
func (t *Table) OwnerName(pid int) string {
	if pid <= 0 {
		return ""
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if name, ok := t.names[pid]; ok {
		if t.alive(pid) {
			return name
		}
		delete(t.names, pid)
	}
	name, err := t.lookup(pid)
	if err != nil {
		return ""
	}
	t.names[pid] = name
	return name
}

func processName(pid int) (string, error) {
	info, err := GetProcessByPID(pid)
	if err != nil {
		return "", err
	}
	if info.Name == "" {
		return "", fmt.Errorf("无法读取进程名: PID=%d", pid)
	}
	return info.Name, nil
}

// PIDs 提取进程列表中的 PID 集合
func PIDs(infos []ProcessInfo) map[int]bool {
	set := make(map[int]bool, len(infos))
	for _, info := range infos {
		set[info.PID] = true
	}
	return set
}

// FindProcess 按名称查找进程 (不区分大小写，支持部分匹配)，用于按所属程序筛选窗口
func FindProcess(name string) ([]ProcessInfo, error) {
	procs, err := process.Processes()
	if err != nil {
		return nil, fmt.Errorf("获取进程列表失败: %w", err)
	}

	query := strings.ToLower(strings.TrimSpace(name))
	var matches []ProcessInfo
	for _, proc := range procs {
		procName, err := proc.Name()
		if err != nil || !strings.Contains(strings.ToLower(procName), query) {
			continue
		}
		exe, _ := proc.Exe()
		matches = append(matches, ProcessInfo{PID: int(proc.Pid), Name: procName, Path: exe})
	}
	return matches, nil
}

// GetProcessByPID 按 PID 获取进程信息
func GetProcessByPID(pid int) (*ProcessInfo, error) {
	if pid <= 0 {
		return nil, fmt.Errorf("无效的 PID: %d", pid)
	}
	proc, err := process.NewProcess(int32(pid))
	if err != nil {
		return nil, fmt.Errorf("进程不存在: PID=%d: %w", pid, err)
	}

	name, _ := proc.Name()
	exe, _ := proc.Exe()

	return &ProcessInfo{
		PID:  pid,
		Name: name,
		Path: exe,
	}, nil
}

// IsProcessRunning 检查进程是否正在运行
func IsProcessRunning(pid int) bool {
	if pid <= 0 {
		return false
	}
	running, err := process.PidExists(int32(pid))
	if err != nil {
		return false
	}
	return running
}
