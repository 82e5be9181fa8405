package cfgm

import "github.com/urfave/cli/v3"

// options 配置加载选项。
type options struct {
	appName             string // 应用名称，用于生成默认配置路径
	cmd                 *cli.Command
	configPaths         []string
	baseDir             string // 相对路径的解析基准
	baseDirSet          bool   // 区分 "未设置" 与 "显式设置为空字符串"
	envPrefix           string
	noTemplateExpansion bool
	callerSkip          int // FindProjectRoot 的调用栈跳过层数，0 表示使用默认值
}

// Option 配置加载选项函数。
type Option func(*options)

// WithCommand 绑定 CLI 命令，显式设置的 flags 覆盖其他来源（最高优先级）。
func WithCommand(cmd *cli.Command) Option {
	return func(o *options) {
		o.cmd = cmd
	}
}

// WithAppName 设置应用名称，用于生成默认搜索路径（见 [DefaultPaths]）。
func WithAppName(name string) Option {
	return func(o *options) {
		o.appName = name
	}
}

// WithConfigPaths 设置配置文件搜索路径，命中首个存在的文件即停止。
func WithConfigPaths(paths ...string) Option {
	return func(o *options) {
		o.configPaths = paths
	}
}

// WithBaseDir 设置相对配置路径的解析基准。
//
// 默认基准为调用方所在项目的根目录（go.mod 所在目录）；空字符串表示当前工作目录。
func WithBaseDir(path string) Option {
	return func(o *options) {
		o.baseDir = path
		o.baseDirSet = true
	}
}

// WithCallerSkip 设置 [FindProjectRoot] 的调用栈跳过层数。
//
// 当 [Load] 被多层封装时，每多一层封装 skip 加 1。
// 已通过 [WithBaseDir] 指定基准目录时无效。
func WithCallerSkip(skip int) Option {
	return func(o *options) {
		o.callerSkip = skip
	}
}

// WithEnvPrefix 启用环境变量覆盖。
//
// 变量名为前缀 + 大写的配置 key，"." 与 "-" 转为 "_"。
// 例如前缀 "SUBJEKT_" 时 expr.reject-empty 对应 SUBJEKT_EXPR_REJECT_EMPTY。
func WithEnvPrefix(prefix string) Option {
	return func(o *options) {
		o.envPrefix = prefix
	}
}

// WithoutTemplateExpansion 禁用配置文件的 ${VAR} 展开。
func WithoutTemplateExpansion() Option {
	return func(o *options) {
		o.noTemplateExpansion = true
	}
}
