package generate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/261018-go-pkg-subjekt/internal/command"
	"github.com/lwmacct/261018-go-pkg-subjekt/internal/eval"
	"github.com/lwmacct/261018-go-pkg-subjekt/internal/files"
	gen "github.com/lwmacct/261018-go-pkg-subjekt/internal/generate"
	"github.com/lwmacct/261018-go-pkg-subjekt/internal/suite"
)

// ErrNoSuite 表示未指定 suite 文件。
var ErrNoSuite = errors.New("no suite file given (use --generate-suite or pass it as argument)")

func action(ctx context.Context, cmd *cli.Command) error {
	// 加载配置：默认值 → 配置文件 → 环境变量 → CLI flags
	cfg, err := command.Setup(cmd)
	if err != nil {
		return err
	}

	path := cfg.Generate.Suite
	if cmd.Args().Present() {
		path = cmd.Args().First()
	}
	if path == "" {
		return ErrNoSuite
	}

	s, err := suite.Load(path)
	if err != nil {
		return err
	}
	compiled, err := suite.Compile(s, command.ResolvableOptions(cfg.Expr)...)
	if err != nil {
		return fmt.Errorf("compile suite %s: %w", s.Name, err)
	}

	evaluator, err := eval.New(cfg.Expr.Engine)
	if err != nil {
		return err
	}

	slog.Info("Generating", "suite", s.Name, "subjects", len(compiled), "engine", cfg.Expr.Engine)
	results, err := gen.New(evaluator).Run(ctx, compiled)
	if err != nil {
		return err
	}

	w := &files.Writer{
		Dir:      cfg.Generate.Output,
		Ext:      cfg.Generate.Ext,
		Append:   cfg.Generate.Append,
		Preamble: s.Config.Preamble,
	}
	paths, err := w.Write(results)
	if err != nil {
		return err
	}

	if cfg.Generate.Manifest != "" {
		manifest := filepath.Join(cfg.Generate.Output, cfg.Generate.Manifest)
		if err := files.WriteManifest(manifest, results, paths); err != nil {
			return err
		}
		slog.Debug("Wrote manifest", "path", manifest)
	}

	written := files.Distinct(paths)
	slog.Info("Generated", "suite", s.Name, "results", len(results), "files", written, "output", cfg.Generate.Output)
	_, err = fmt.Fprintf(cmd.Root().Writer, "%d files written to %s\n", written, cfg.Generate.Output)

	return err
}
