// Package inspect 提供 inspect 子命令，用于查看文本中的表达式与求值结果。
package inspect

import (
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/261018-go-pkg-subjekt/internal/command"
)

// Command inspect 命令
var Command = NewCommand()

// NewCommand 创建 inspect 命令。
func NewCommand() *cli.Command {
	flags := []cli.Flag{
		&cli.StringMapFlag{
			Name:  "set",
			Usage: "设置变量并求值，可重复：--set x=1 --set name=a",
		},
	}
	flags = append(flags, command.ExprFlags()...)
	flags = append(flags, command.LogFlags()...)

	return &cli.Command{
		Name:      "inspect",
		Usage:     "解析文本，输出表达式与骨架；指定 --set 时输出求值结果",
		ArgsUsage: "[text...]",
		Action:    action,
		Flags:     flags,
	}
}
