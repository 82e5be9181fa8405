package templexp

import (
	"fmt"
	"os"
	"strings"
)

// ═══════════════════════════════════════════════════════════════════════════
// 模板数据对象
// ═══════════════════════════════════════════════════════════════════════════

// Environ 返回当前环境变量快照。
//
// 快照仅用于一次展开，":=" 的赋值只写入这份数据。
func Environ() map[string]string {
	vars := make(map[string]string)
	for _, kv := range os.Environ() {
		if name, value, ok := strings.Cut(kv, "="); ok {
			vars[name] = value
		}
	}

	return vars
}

// ═══════════════════════════════════════════════════════════════════════════
// Shell Parameter Expansion
// ═══════════════════════════════════════════════════════════════════════════

// parameter 是解析后的 ${name<op>word}。
type parameter struct {
	name  string
	op    byte // 0 | '-' | '+' | '?' | '='
	colon bool // ":-" 等带冒号的形式把空值视为未设置
	word  string
}

func isNameStart(ch byte) bool {
	return ch == '_' || (ch >= 'A' && ch <= 'Z') || (ch >= 'a' && ch <= 'z')
}

func isNameChar(ch byte) bool {
	return isNameStart(ch) || (ch >= '0' && ch <= '9')
}

func parseParameter(body string) (parameter, bool) {
	if body == "" || !isNameStart(body[0]) {
		return parameter{}, false
	}

	i := 1
	for i < len(body) && isNameChar(body[i]) {
		i++
	}
	p := parameter{name: body[:i]}
	rest := body[i:]
	if rest == "" {
		return p, true
	}

	if rest[0] == ':' {
		p.colon = true
		rest = rest[1:]
	}
	if rest == "" || strings.IndexByte("-+?=", rest[0]) < 0 {
		return parameter{}, false
	}
	p.op = rest[0]
	p.word = rest[1:]

	return p, true
}

// expand 按操作符对参数求值，word 仅在被选用时展开。
func (p parameter) expand(env map[string]string) (string, error) {
	val, isSet := env[p.name]
	unset := !isSet || (p.colon && val == "")

	switch p.op {
	case '-':
		if unset {
			return expandText(p.word, env)
		}
	case '+':
		if unset {
			return "", nil
		}
		return expandText(p.word, env)
	case '?':
		if unset {
			if p.word == "" {
				return "", fmt.Errorf("templexp: %s: parameter null or not set", p.name)
			}
			return "", fmt.Errorf("templexp: %s: %s", p.name, p.word)
		}
	case '=':
		if unset {
			word, err := expandText(p.word, env)
			if err != nil {
				return "", err
			}
			env[p.name] = word
			return word, nil
		}
	}

	return val, nil
}

// ═══════════════════════════════════════════════════════════════════════════
// 模板渲染
// ═══════════════════════════════════════════════════════════════════════════

// ExpandTemplate 使用当前环境变量对输入字符串执行 Shell 参数展开。
//
// 支持语法：
//   - ${VAR} - 变量替换，未设置时为空
//   - ${VAR:-default} / ${VAR-default} - fallback，default 中可再引用 ${...}
//   - ${VAR:+alt} / ${VAR+alt} - 替代值
//   - ${VAR:?msg} / ${VAR?msg} - 必填校验
//   - ${VAR:=default} / ${VAR=default} - 赋值（仅作用于当前展开）
//   - $$ - 字面量 "$"
//
// 返回展开后的字符串；仅在必填校验失败时返回 error。
func ExpandTemplate(text string) (string, error) {
	return ExpandWith(text, Environ())
}

// ExpandWith 使用给定变量表展开，":=" 赋值会写回 env。
//
// 块按出现顺序逐个求值，赋值对其后的每一处引用可见。
func ExpandWith(text string, env map[string]string) (string, error) {
	return expandText(text, env)
}

func expandText(text string, env map[string]string) (string, error) {
	if !strings.Contains(text, "$") {
		return text, nil
	}

	var buf strings.Builder
	buf.Grow(len(text))

	for i := 0; i < len(text); {
		if text[i] != '$' || i+1 >= len(text) {
			buf.WriteByte(text[i])
			i++
			continue
		}

		if text[i+1] == '$' {
			buf.WriteByte('$')
			i += 2
			continue
		}
		if text[i+1] != '{' {
			buf.WriteByte('$')
			i++
			continue
		}

		end := closingBrace(text, i+2)
		if end < 0 {
			buf.WriteByte('$')
			i++
			continue
		}

		block := text[i : end+1]
		p, ok := parseParameter(text[i+2 : end])
		if !ok {
			buf.WriteString(block)
			i = end + 1
			continue
		}

		val, err := p.expand(env)
		if err != nil {
			return "", err
		}
		buf.WriteString(val)
		i = end + 1
	}

	return buf.String(), nil
}

// closingBrace 返回与 start 之前的 "${" 配对的 "}" 下标，内层 "${...}" 计入深度。
func closingBrace(text string, start int) int {
	depth := 0
	for i := start; i < len(text); i++ {
		switch {
		case text[i] == '$' && i+1 < len(text) && text[i+1] == '{':
			depth++
			i++
		case text[i] == '}':
			if depth == 0 {
				return i
			}
			depth--
		}
	}

	return -1
}
