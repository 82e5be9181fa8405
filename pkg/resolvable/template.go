package resolvable

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ═══════════════════════════════════════════════════════════════════════════
// 表达式与模板骨架
// ═══════════════════════════════════════════════════════════════════════════

// RawExpression 是定界符之间未求值的表达式文本（已去除首尾空白）。
//
// 两个 RawExpression 当且仅当 Source 相同时视为同一表达式。
type RawExpression struct {
	Source string
}

func (e RawExpression) String() string { return e.Source }

// segment 是骨架中的一段：字面文本，或指向 expressions 下标的槽位。
type segment struct {
	text string
	slot int // -1 表示字面文本
}

// Template 是解析结果：骨架 + 去重后的表达式列表。
//
// 骨架以分段形式保存，字面文本中出现的 "{{0}}" 之类内容不会被误认为槽位。
type Template struct {
	segments    []segment
	expressions []RawExpression
}

// ═══════════════════════════════════════════════════════════════════════════
// 解析
// ═══════════════════════════════════════════════════════════════════════════

// compileMatcher 将 prefix/suffix 作为字面量构造匹配器。
//
// 表达式主体惰性匹配且不跨行。
func compileMatcher(prefix, suffix string) (*regexp.Regexp, error) {
	switch {
	case prefix == "" && suffix == "":
		return nil, &InvalidDelimiterError{Prefix: prefix, Suffix: suffix, Reason: "prefix and suffix are empty"}
	case prefix == "":
		return nil, &InvalidDelimiterError{Prefix: prefix, Suffix: suffix, Reason: "prefix is empty"}
	case suffix == "":
		return nil, &InvalidDelimiterError{Prefix: prefix, Suffix: suffix, Reason: "suffix is empty"}
	case strings.ContainsAny(prefix+suffix, "\n\r"):
		return nil, &InvalidDelimiterError{Prefix: prefix, Suffix: suffix, Reason: "delimiters must not contain line breaks"}
	}

	re, err := regexp.Compile(regexp.QuoteMeta(prefix) + `(.*?)` + regexp.QuoteMeta(suffix))
	if err != nil {
		return nil, &InvalidDelimiterError{Prefix: prefix, Suffix: suffix, Reason: err.Error()}
	}

	return re, nil
}

// Parse 从 source 中提取 prefix...suffix 之间的表达式。
//
// 相同文本的表达式共享同一下标，下标按首次出现顺序分配。
// 未闭合的 prefix 原样保留为字面文本。
func Parse(source, prefix, suffix string) (*Template, error) {
	re, err := compileMatcher(prefix, suffix)
	if err != nil {
		return nil, err
	}

	return parseWith(re, source, false)
}

func parseWith(re *regexp.Regexp, source string, rejectEmpty bool) (*Template, error) {
	t := &Template{}
	index := make(map[string]int)

	last := 0
	for _, m := range re.FindAllStringSubmatchIndex(source, -1) {
		start, end := m[0], m[1]
		body := strings.TrimSpace(source[m[2]:m[3]])
		if body == "" && rejectEmpty {
			return nil, &EmptyExpressionError{Offset: start}
		}

		if start > last {
			t.segments = append(t.segments, segment{text: source[last:start], slot: -1})
		}

		i, seen := index[body]
		if !seen {
			i = len(t.expressions)
			index[body] = i
			t.expressions = append(t.expressions, RawExpression{Source: body})
		}
		t.segments = append(t.segments, segment{slot: i})
		last = end
	}
	if last < len(source) {
		t.segments = append(t.segments, segment{text: source[last:], slot: -1})
	}

	return t, nil
}

// Expressions 返回去重后的表达式，顺序为首次出现顺序。
func (t *Template) Expressions() []RawExpression {
	out := make([]RawExpression, len(t.expressions))
	copy(out, t.expressions)

	return out
}

// Arity 返回 Format 需要的值数量。
func (t *Template) Arity() int { return len(t.expressions) }

// ═══════════════════════════════════════════════════════════════════════════
// 格式化
// ═══════════════════════════════════════════════════════════════════════════

// Format 按下标将 values 填入骨架。
//
// values 数量必须与 [Template.Arity] 一致，否则返回 [*ArityMismatchError]。
// 每个值通过 fmt.Sprint 转为文本，同一表达式的所有出现位置使用同一个值。
func (t *Template) Format(values ...any) (string, error) {
	if len(values) != len(t.expressions) {
		return "", &ArityMismatchError{Expected: len(t.expressions), Actual: len(values)}
	}

	texts := make([]string, len(values))
	for i, v := range values {
		texts[i] = fmt.Sprint(v)
	}

	var buf strings.Builder
	for _, seg := range t.segments {
		if seg.slot < 0 {
			buf.WriteString(seg.text)
			continue
		}
		buf.WriteString(texts[seg.slot])
	}

	return buf.String(), nil
}

// String 以 "{{下标}}" 占位符渲染骨架，仅用于诊断输出。
func (t *Template) String() string {
	var buf strings.Builder
	for _, seg := range t.segments {
		if seg.slot < 0 {
			buf.WriteString(seg.text)
			continue
		}
		buf.WriteString("{{")
		buf.WriteString(strconv.Itoa(seg.slot))
		buf.WriteString("}}")
	}

	return buf.String()
}
