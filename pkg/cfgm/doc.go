// Package cfgm 提供通用的配置加载功能。
//
// 支持 YAML/JSON，按默认值、配置文件、环境变量与 CLI flags 逐层覆盖。
// 配置 key 使用 json tag 统一描述，YAML 与 JSON 共享同一套 key。
//
// # 加载优先级 (从低到高)
//
//  1. 默认值 - 通过 defaultConfig 参数传入
//  2. 配置文件 - 通过 [WithConfigPaths] 或 [WithAppName] 设置
//  3. 环境变量(前缀) - 通过 [WithEnvPrefix] 自动生成绑定
//  4. CLI flags - 通过 [WithCommand] 选项设置，最高优先级
//
// # 快速开始
//
//	cfg, err := cfgm.LoadCmd(cmd, config.DefaultConfig(), "subjekt",
//	    cfgm.WithEnvPrefix("SUBJEKT_"),
//	)
//
// # 模板展开
//
// 配置文件内容在解析前经过 [templexp.ExpandTemplate] 展开，
// 使用 [WithoutTemplateExpansion] 可禁用：
//
//	# config.yaml
//	generate:
//	  output: "${SUBJEKT_OUT:-./build}"
//
// # CLI Flag 映射
//
// 仅替换 "." 为 "-"：
//   - generate.suite → --generate-suite
//   - expr.reject-empty → --expr-reject-empty
//
// # 复用解析
//
// [ParseBytes] 与 [Decode] 暴露了同一套文件解析与 mapstructure 解码逻辑，
// 供其他 YAML/JSON 文档（如 suite 文件）复用。
//
// [templexp.ExpandTemplate]: github.com/lwmacct/261018-go-pkg-subjekt/pkg/templexp
package cfgm
