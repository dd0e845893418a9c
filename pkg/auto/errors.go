package auto

import "errors"

var (
	// ErrWindowNotFound 查询或旧句柄无法匹配到当前存在的窗口，调用方可重试或放弃
	ErrWindowNotFound = errors.New("window not found")

	// ErrInvalidArgument 参数超出取值范围（负的 padding、非正的点击频率等）
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrPlatformUnavailable 缺少所需的系统能力（无显示服务、未授权等）
	ErrPlatformUnavailable = errors.New("platform capability unavailable")

	// ErrFailSafe 鼠标位于保护角落，合成操作被中止
	ErrFailSafe = errors.New("fail-safe triggered")
)
