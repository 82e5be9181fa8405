// Package generate 提供 generate 子命令：解析 suite 并写出生成文件。
package generate

import (
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/261018-go-pkg-subjekt/internal/command"
	"github.com/lwmacct/261018-go-pkg-subjekt/internal/command/version"
)

// Command generate 命令
var Command = NewCommand()

// NewCommand 创建 generate 命令。flag 持有解析状态，测试中每次运行应使用新实例。
func NewCommand() *cli.Command {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:    "generate-suite",
			Aliases: []string{"s"},
			Value:   command.Defaults.Generate.Suite,
			Usage:   "suite 文件路径 (YAML/JSON)，也可作为第一个参数传入",
		},
		&cli.StringFlag{
			Name:    "generate-output",
			Aliases: []string{"o"},
			Value:   command.Defaults.Generate.Output,
			Usage:   "输出目录",
		},
		&cli.StringFlag{
			Name:  "generate-ext",
			Value: command.Defaults.Generate.Ext,
			Usage: "输出文件扩展名",
		},
		&cli.BoolFlag{
			Name:  "generate-append",
			Usage: "追加写入而非覆盖",
		},
		&cli.StringFlag{
			Name:  "generate-manifest",
			Value: command.Defaults.Generate.Manifest,
			Usage: "结果清单文件名 (相对输出目录)，空字符串表示不写",
		},
	}
	flags = append(flags, command.ExprFlags()...)
	flags = append(flags, command.LogFlags()...)

	return &cli.Command{
		Name:      "generate",
		Usage:     "解析 suite 并生成文件",
		ArgsUsage: "[suite]",
		Action:    action,
		Commands:  []*cli.Command{version.Command},
		Flags:     flags,
	}
}
