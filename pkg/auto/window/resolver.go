package window

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/zoeyai/desktopapi/internal/logger"
	"github.com/zoeyai/desktopapi/pkg/auto"
)

// DefaultActivateDelay 激活窗口后等待窗口管理器完成切换的时间
const DefaultActivateDelay = 100 * time.Millisecond

// Resolver 将查询或旧句柄解析为当前存在的窗口
type Resolver struct {
	source        Source
	owners        OwnerLookup
	activateDelay time.Duration
	sleep         func(time.Duration)
}

// ResolverOption Resolver 配置选项
type ResolverOption func(*Resolver)

// WithOwnerLookup 设置进程名查询（为句柄填充 OwnerName）
func WithOwnerLookup(owners OwnerLookup) ResolverOption {
	return func(r *Resolver) {
		r.owners = owners
	}
}

// WithActivateDelay 设置激活后的等待时间
func WithActivateDelay(d time.Duration) ResolverOption {
	return func(r *Resolver) {
		r.activateDelay = d
	}
}

// NewResolver 创建解析器
func NewResolver(source Source, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		source:        source,
		activateDelay: DefaultActivateDelay,
		sleep:         time.Sleep,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Source 返回底层窗口来源
func (r *Resolver) Source() Source {
	return r.source
}

// ListWindows 列出所有可见、未最小化且标题（去空白后）长度不小于 minTitleLength 的窗口
// 顺序为平台枚举顺序，不保证稳定
func (r *Resolver) ListWindows(minTitleLength int) ([]Handle, error) {
	snap, err := r.source.Snapshot()
	if err != nil {
		return nil, fmt.Errorf("枚举窗口失败: %w", err)
	}

	handles := make([]Handle, 0, len(snap.Windows))
	for _, d := range snap.Windows {
		if !listable(d, minTitleLength) {
			continue
		}
		handles = append(handles, r.toHandle(d, snap.Active))
	}
	return handles, nil
}

// FindWindow 返回第一个标题匹配 query 的窗口
//
// 多个窗口标题相同时返回哪一个取决于枚举顺序，需要确定结果时应使用更具体的查询。
func (r *Resolver) FindWindow(query string, opts ...Option) (Handle, error) {
	o := defaultFindOptions()
	for _, opt := range opts {
		opt(o)
	}

	windows, err := r.ListWindows(o.minTitleLength)
	if err != nil {
		return Handle{}, err
	}

	for _, h := range windows {
		if matchTitle(h.Title, query, o.exact, o.caseSensitive) {
			logger.Debug("查找窗口 %q 命中: %s", query, h)
			return h, nil
		}
	}
	return Handle{}, fmt.Errorf("%w: 未找到匹配 %q 的窗口", auto.ErrWindowNotFound, query)
}

// RefreshWindow 返回目标窗口的最新快照，不改变焦点
func (r *Resolver) RefreshWindow(target Target) (Handle, error) {
	d, active, err := r.resolve(target)
	if err != nil {
		return Handle{}, err
	}
	return r.toHandle(d, active), nil
}

// ActivateWindow 将目标窗口置于前台，并返回激活后的最新快照
// 副作用：系统焦点改变，之后的键盘输入将发送到该窗口
func (r *Resolver) ActivateWindow(target Target) (Handle, error) {
	start := time.Now()

	d, _, err := r.resolve(target)
	if err != nil {
		logger.LogEvent(logger.CatWindow, false, logger.Since(start), "激活 "+describeTarget(target))
		return Handle{}, err
	}

	if err := r.source.Activate(d); err != nil {
		logger.LogEvent(logger.CatWindow, false, logger.Since(start), "激活 "+describeTarget(target))
		return Handle{}, fmt.Errorf("激活窗口 %q 失败: %w", d.Title, err)
	}

	if r.activateDelay > 0 {
		r.sleep(r.activateDelay)
	}

	h, err := r.RefreshWindow(Handle{ID: d.ID, Title: d.Title})
	if err != nil {
		logger.LogEvent(logger.CatWindow, false, logger.Since(start), "激活后刷新 "+describeTarget(target))
		return Handle{}, err
	}

	logger.LogEvent(logger.CatWindow, true, logger.Since(start), "激活 "+h.String())
	return h, nil
}

// resolve 定位当前窗口：优先按平台 ID 查找，缺失或失效时依次按标题全等、标题包含（不区分大小写）回退
// 标题回退跳过既不可见也未最小化的窗口
func (r *Resolver) resolve(target Target) (Descriptor, WindowID, error) {
	if target == nil {
		return Descriptor{}, 0, fmt.Errorf("%w: 目标为空", auto.ErrWindowNotFound)
	}

	snap, err := r.source.Snapshot()
	if err != nil {
		return Descriptor{}, 0, fmt.Errorf("枚举窗口失败: %w", err)
	}

	if h, ok := target.(Handle); ok && h.ID != 0 {
		for _, d := range snap.Windows {
			if d.ID == h.ID {
				return d, snap.Active, nil
			}
		}
	}

	if d, ok := matchDescriptor(snap.Windows, target.targetTitle()); ok {
		return d, snap.Active, nil
	}

	return Descriptor{}, 0, fmt.Errorf("%w: %s", auto.ErrWindowNotFound, describeTarget(target))
}

func (r *Resolver) toHandle(d Descriptor, active WindowID) Handle {
	h := Handle{
		Title:    d.Title,
		Left:     d.Bounds.X,
		Top:      d.Bounds.Y,
		Width:    max(0, d.Bounds.Width),
		Height:   max(0, d.Bounds.Height),
		IsActive: d.ID != 0 && d.ID == active,
		ID:       d.ID,
		PID:      d.PID,
		Platform: r.source.Platform(),
	}
	if r.owners != nil && d.PID > 0 {
		h.OwnerName = r.owners.OwnerName(d.PID)
	}
	return h
}

func listable(d Descriptor, minTitleLength int) bool {
	if !d.Visible || d.Minimized {
		return false
	}
	title := strings.TrimSpace(d.Title)
	if title == "" {
		return false
	}
	return utf8.RuneCountInString(title) >= minTitleLength
}

func matchTitle(title, query string, exact, caseSensitive bool) bool {
	if !caseSensitive {
		title = strings.ToLower(title)
		query = strings.ToLower(query)
	}
	if exact {
		return title == query
	}
	return strings.Contains(title, query)
}

func matchDescriptor(windows []Descriptor, title string) (Descriptor, bool) {
	if strings.TrimSpace(title) == "" {
		return Descriptor{}, false
	}

	for _, d := range windows {
		if resolvable(d) && d.Title == title {
			return d, true
		}
	}

	lower := strings.ToLower(title)
	for _, d := range windows {
		if resolvable(d) && d.Title != "" && strings.Contains(strings.ToLower(d.Title), lower) {
			return d, true
		}
	}
	return Descriptor{}, false
}

// resolvable 按标题回退时只考虑可见或最小化的窗口，跳过输入法、GDI+ 等隐藏的辅助窗口
func resolvable(d Descriptor) bool {
	return d.Visible || d.Minimized
}
