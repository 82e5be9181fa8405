// Package version 提供版本信息与 version 子命令。
//
// 构建时通过 ldflags 注入：
//
//	go build -ldflags "-X github.com/lwmacct/261018-go-pkg-subjekt/internal/command/version.Version=v1.0.0"
package version

import (
	"context"
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/urfave/cli/v3"
)

// AppRawName 应用名称。
const AppRawName = "subjekt"

var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

// GetVersion 返回版本号；未注入时尝试读取模块构建信息。
func GetVersion() string {
	if Version != "" && Version != "dev" {
		return Version
	}

	if info, ok := debug.ReadBuildInfo(); ok {
		if v := info.Main.Version; v != "" && v != "(devel)" {
			return v
		}
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" && len(s.Value) >= 7 {
				return "dev-" + s.Value[:7]
			}
		}
	}

	return "dev"
}

// Command version 子命令
var Command = &cli.Command{
	Name:  "version",
	Usage: "显示版本信息",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "short",
			Usage: "仅输出版本号",
		},
	},
	Action: func(_ context.Context, cmd *cli.Command) error {
		w := cmd.Root().Writer
		if cmd.Bool("short") {
			_, err := fmt.Fprintln(w, GetVersion())
			return err
		}

		_, err := fmt.Fprintf(w, "%s %s (commit %s, built %s, %s %s/%s)\n",
			AppRawName, GetVersion(), GitCommit, BuildTime, runtime.Version(), runtime.GOOS, runtime.GOARCH)

		return err
	},
}
