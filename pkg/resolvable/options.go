package resolvable

// 默认表达式定界符。
const (
	DefaultPrefix = "${{"
	DefaultSuffix = "}}"
)

// options 构造选项。
type options struct {
	prefix      string
	suffix      string
	rejectEmpty bool // 空表达式 (如 "${{ }}") 视为错误，默认接受
}

// Option 构造选项函数。
type Option func(*options)

// WithDelimiters 设置表达式定界符，按字面文本匹配。
//
// 示例：
//
//	r, err := resolvable.New("<% name %>", resolvable.WithDelimiters("<%", "%>"))
func WithDelimiters(prefix, suffix string) Option {
	return func(o *options) {
		o.prefix = prefix
		o.suffix = suffix
	}
}

// WithRejectEmpty 拒绝空白表达式。
//
// 启用后 [New] 会立即解析，遇到空表达式返回 [*EmptyExpressionError]。
func WithRejectEmpty() Option {
	return func(o *options) {
		o.rejectEmpty = true
	}
}
