// Package config 提供应用配置管理。
//
// 配置加载优先级 (从低到高)：
//  1. 默认值 - DefaultConfig() 函数中定义
//  2. 配置文件 - .subjekt.yaml / config.yaml 等，见 cfgm.DefaultPaths
//  3. 环境变量 - 前缀 SUBJEKT_
//  4. CLI flags - 如 --generate-suite
package config

import "github.com/lwmacct/261018-go-pkg-subjekt/pkg/resolvable"

// AppName 应用名称，用于配置文件搜索路径。
const AppName = "subjekt"

// EnvPrefix 环境变量前缀。
const EnvPrefix = "SUBJEKT_"

// Config 应用配置。
type Config struct {
	Generate GenerateConfig `json:"generate" desc:"生成配置"`
	Expr     ExprConfig     `json:"expr" desc:"表达式配置"`
	Log      LogConfig      `json:"log" desc:"日志配置"`
}

// GenerateConfig 生成配置。
type GenerateConfig struct {
	Suite    string `json:"suite" desc:"suite 文件路径 (YAML/JSON)"`
	Output   string `json:"output" desc:"输出目录"`
	Ext      string `json:"ext" desc:"输出文件扩展名"`
	Append   bool   `json:"append" desc:"追加写入而非覆盖"`
	Manifest string `json:"manifest" desc:"结果清单文件名，空字符串表示不写"`
}

// ExprConfig 表达式配置。
//
//nolint:tagliatelle
type ExprConfig struct {
	Prefix      string `json:"prefix" desc:"表达式起始定界符，suite 未指定时使用"`
	Suffix      string `json:"suffix" desc:"表达式结束定界符，suite 未指定时使用"`
	Engine      string `json:"engine" desc:"求值引擎: expr | hcl"`
	RejectEmpty bool   `json:"reject-empty" desc:"拒绝空表达式"`
}

// LogConfig 日志配置。
type LogConfig struct {
	Level  string `json:"level" desc:"日志级别: debug | info | warn | error"`
	Format string `json:"format" desc:"日志格式: text | json"`
}

// DefaultConfig 返回默认配置。
// 注意：internal/command/command.go 中的 Defaults 变量引用此函数以实现单一配置来源。
func DefaultConfig() Config {
	return Config{
		Generate: GenerateConfig{
			Output:   "build/subjekt",
			Ext:      ".kt",
			Manifest: "outcomes.yaml",
		},
		Expr: ExprConfig{
			Prefix: resolvable.DefaultPrefix,
			Suffix: resolvable.DefaultSuffix,
			Engine: "expr",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
