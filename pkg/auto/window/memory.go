package window

import (
	"fmt"
	"slices"
	"sync"

	"github.com/zoeyai/desktopapi/pkg/auto"
)

// MemorySource 内存中的窗口表，用于测试和演练（dry run）
type MemorySource struct {
	mu          sync.Mutex
	windows     []Descriptor
	active      WindowID
	activations []Descriptor
	err         error
}

var _ Source = (*MemorySource)(nil)

// NewMemorySource 以给定窗口（按枚举顺序）创建内存窗口表
func NewMemorySource(windows ...Descriptor) *MemorySource {
	return &MemorySource{windows: slices.Clone(windows)}
}

// Platform 平台名称
func (m *MemorySource) Platform() string {
	return "memory"
}

// Snapshot 返回当前窗口表的副本
func (m *MemorySource) Snapshot() (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return Snapshot{}, m.err
	}
	return Snapshot{Windows: slices.Clone(m.windows), Active: m.active}, nil
}

// Activate 将窗口设为前台，取消最小化并显示
func (m *MemorySource) Activate(d Descriptor) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexLocked(d)
	if i < 0 {
		return fmt.Errorf("%w: %q", auto.ErrWindowNotFound, d.Title)
	}
	m.windows[i].Minimized = false
	m.windows[i].Visible = true
	m.active = m.windows[i].ID
	m.activations = append(m.activations, m.windows[i])
	return nil
}

// Add 追加窗口
func (m *MemorySource) Add(d Descriptor) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.windows = append(m.windows, d)
}

// Remove 关闭窗口
func (m *MemorySource) Remove(id WindowID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.windows = slices.DeleteFunc(m.windows, func(d Descriptor) bool { return d.ID == id })
	if m.active == id {
		m.active = 0
	}
}

// Move 修改窗口几何
func (m *MemorySource) Move(id WindowID, bounds auto.Region) {
	m.update(id, func(d *Descriptor) { d.Bounds = bounds })
}

// SetTitle 修改窗口标题
func (m *MemorySource) SetTitle(id WindowID, title string) {
	m.update(id, func(d *Descriptor) { d.Title = title })
}

// SetMinimized 修改最小化状态
func (m *MemorySource) SetMinimized(id WindowID, minimized bool) {
	m.update(id, func(d *Descriptor) { d.Minimized = minimized })
}

// SetActive 直接设置前台窗口
func (m *MemorySource) SetActive(id WindowID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.active = id
}

// FailWith 之后的 Snapshot 调用返回 err（nil 取消）
func (m *MemorySource) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Activations 返回所有激活请求
func (m *MemorySource) Activations() []Descriptor {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.activations)
}

func (m *MemorySource) update(id WindowID, fn func(*Descriptor)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.windows {
		if m.windows[i].ID == id {
			fn(&m.windows[i])
		}
	}
}

func (m *MemorySource) indexLocked(d Descriptor) int {
	for i, w := range m.windows {
		if d.ID != 0 && w.ID == d.ID {
			return i
		}
	}
	for i, w := range m.windows {
		if d.ID == 0 && w.Title == d.Title {
			return i
		}
	}
	return -1
}
