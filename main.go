package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/261018-go-pkg-subjekt/internal/command/generate"
	"github.com/lwmacct/261018-go-pkg-subjekt/internal/command/inspect"
	"github.com/lwmacct/261018-go-pkg-subjekt/internal/command/version"
)

func main() {
	app := &cli.Command{
		Name:    version.AppRawName,
		Usage:   "模板表达式解析与代码生成工具",
		Version: version.GetVersion(),
		Commands: []*cli.Command{
			version.Command,
			generate.Command,
			inspect.Command,
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
