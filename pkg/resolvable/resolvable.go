package resolvable

import (
	"fmt"
	"regexp"
	"sync"
)

// Resolvable 是一个可解析的源字符串。
//
// 创建后不可变；表达式列表在首次访问时解析并缓存，可安全地被多个 goroutine 并发读取。
type Resolvable struct {
	source      string
	prefix      string
	suffix      string
	rejectEmpty bool
	matcher     *regexp.Regexp

	once     sync.Once
	template *Template
	err      error
}

// New 创建 Resolvable。
//
// 定界符无效时返回 [*InvalidDelimiterError]；
// 启用 [WithRejectEmpty] 且存在空表达式时返回 [*EmptyExpressionError]。
func New(source string, opts ...Option) (*Resolvable, error) {
	o := &options{prefix: DefaultPrefix, suffix: DefaultSuffix}
	for _, opt := range opts {
		opt(o)
	}

	matcher, err := compileMatcher(o.prefix, o.suffix)
	if err != nil {
		return nil, err
	}

	r := &Resolvable{
		source:      source,
		prefix:      o.prefix,
		suffix:      o.suffix,
		rejectEmpty: o.rejectEmpty,
		matcher:     matcher,
	}
	if r.rejectEmpty {
		if _, err := r.parsed(); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// MustNew 调用 [New] 并在失败时 panic，适合常量模板。
func MustNew(source string, opts ...Option) *Resolvable {
	r, err := New(source, opts...)
	if err != nil {
		panic(fmt.Sprintf("resolvable: %v", err))
	}

	return r
}

func (r *Resolvable) parsed() (*Template, error) {
	r.once.Do(func() {
		r.template, r.err = parseWith(r.matcher, r.source, r.rejectEmpty)
	})

	return r.template, r.err
}

// Source 返回原始输入。
func (r *Resolvable) Source() string { return r.source }

// Delimiters 返回构造时使用的 prefix 与 suffix。
func (r *Resolvable) Delimiters() (string, string) { return r.prefix, r.suffix }

// Template 返回解析结果。
func (r *Resolvable) Template() *Template {
	t, _ := r.parsed()
	return t
}

// Expressions 返回去重后的表达式，顺序为首次出现顺序。
func (r *Resolvable) Expressions() []RawExpression {
	t, err := r.parsed()
	if err != nil {
		return nil
	}

	return t.Expressions()
}

// Format 依次为每个表达式提供一个值，返回替换后的字符串。
//
// 值的顺序与 [Resolvable.Expressions] 一致。
func (r *Resolvable) Format(values ...any) (string, error) {
	t, err := r.parsed()
	if err != nil {
		return "", err
	}

	return t.Format(values...)
}

// Resolve 按首次出现顺序对每个表达式调用一次 eval，然后格式化。
//
// eval 返回错误时包装为 [*EvaluationError]，不产生部分输出。
func (r *Resolvable) Resolve(eval func(RawExpression) (any, error)) (string, error) {
	t, err := r.parsed()
	if err != nil {
		return "", err
	}

	values := make([]any, len(t.expressions))
	for i, expr := range t.expressions {
		v, err := eval(expr)
		if err != nil {
			return "", &EvaluationError{Expression: expr, Err: err}
		}
		values[i] = v
	}

	return t.Format(values...)
}

func (r *Resolvable) String() string { return r.source }
