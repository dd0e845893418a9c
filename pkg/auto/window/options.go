package window

// Option 查找选项
type Option func(*findOptions)

type findOptions struct {
	exact          bool
	caseSensitive  bool
	minTitleLength int
}

func defaultFindOptions() *findOptions {
	return &findOptions{minTitleLength: 1}
}

// Exact 标题完全相等才算匹配（默认为包含匹配）
func Exact() Option {
	return func(o *findOptions) {
		o.exact = true
	}
}

// CaseSensitive 区分大小写（默认不区分）
func CaseSensitive() Option {
	return func(o *findOptions) {
		o.caseSensitive = true
	}
}

// MinTitleLength 忽略去空白后标题长度小于 n 的窗口
func MinTitleLength(n int) Option {
	return func(o *findOptions) {
		o.minTitleLength = n
	}
}
