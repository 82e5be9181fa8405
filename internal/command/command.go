// Package command 提供 subjekt 的命令行功能。
package command

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/261018-go-pkg-subjekt/internal/config"
	"github.com/lwmacct/261018-go-pkg-subjekt/pkg/cfgm"
	"github.com/lwmacct/261018-go-pkg-subjekt/pkg/resolvable"
)

// Defaults 为默认配置的单一来源。
var Defaults = config.DefaultConfig()

// ExprFlags 返回表达式相关的 flag，每次调用返回新实例。
func ExprFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "expr-prefix",
			Value: Defaults.Expr.Prefix,
			Usage: "表达式起始定界符",
		},
		&cli.StringFlag{
			Name:  "expr-suffix",
			Value: Defaults.Expr.Suffix,
			Usage: "表达式结束定界符",
		},
		&cli.StringFlag{
			Name:    "expr-engine",
			Aliases: []string{"e"},
			Value:   Defaults.Expr.Engine,
			Usage:   "求值引擎: expr | hcl",
		},
		&cli.BoolFlag{
			Name:  "expr-reject-empty",
			Usage: "拒绝空表达式",
		},
	}
}

// LogFlags 返回日志相关的 flag。
func LogFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "log-level",
			Value: Defaults.Log.Level,
			Usage: "日志级别: debug | info | warn | error",
		},
		&cli.StringFlag{
			Name:  "log-format",
			Value: Defaults.Log.Format,
			Usage: "日志格式: text | json",
		},
	}
}

// Setup 加载配置并设置全局 logger。
//
// 配置文件相对于当前工作目录查找。
func Setup(cmd *cli.Command) (*config.Config, error) {
	cfg, err := cfgm.LoadCmd(cmd, config.DefaultConfig(), config.AppName,
		cfgm.WithBaseDir(""),
		cfgm.WithEnvPrefix(config.EnvPrefix),
	)
	if err != nil {
		return nil, err
	}

	slog.SetDefault(NewLogger(cfg.Log, errWriter(cmd)))

	return cfg, nil
}

// NewLogger 按配置创建 logger，未知级别按 info 处理。
func NewLogger(cfg config.LogConfig, w io.Writer) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(cfg.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}

	return slog.New(slog.NewTextHandler(w, opts))
}

// ResolvableOptions 将表达式配置转为 resolvable 选项。
func ResolvableOptions(cfg config.ExprConfig) []resolvable.Option {
	opts := []resolvable.Option{resolvable.WithDelimiters(cfg.Prefix, cfg.Suffix)}
	if cfg.RejectEmpty {
		opts = append(opts, resolvable.WithRejectEmpty())
	}

	return opts
}

func errWriter(cmd *cli.Command) io.Writer {
	if w := cmd.Root().ErrWriter; w != nil {
		return w
	}

	return os.Stderr
}
