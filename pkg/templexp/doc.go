// Package templexp 提供配置字符串的 Shell 参数展开。
//
// 该包仅处理 ${...} 语法，适合在 YAML/JSON 等配置文件中做轻量替换。
//
// # 设计参考
//
//   - Bash 参数展开: https://www.gnu.org/software/bash/manual/bash.html#Shell-Parameter-Expansion
//
// # 语义说明
//
//  1. 仅做字符串层面的替换（不解析 $VAR）
//  2. "$$" 为字面量 "$"
//  3. 操作符后的 word 可以再引用 ${...}，如 ${ADDR:-${HOST}:8080}
//  4. ":=" 赋值仅作用于当前展开过程，对其后出现的每处引用可见
//  5. 无法识别的表达式（包括以空白开头的 "${ VAR }"）原样保留
//
// # 快速开始
//
// 展开配置文件中的环境变量引用：
//
//	content := `api_key: "${OPENAI_API_KEY}"`
//	expanded, err := templexp.ExpandTemplate(content)
//
// 使用默认值处理缺失的环境变量：
//
//	content := `model: "${LLM_MODEL:-gpt-4}"`
//	expanded, err := templexp.ExpandTemplate(content)
//
// 详见 [ExpandTemplate] 文档。
package templexp
