package inspect

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v3"
	yamlv3 "go.yaml.in/yaml/v3"

	"github.com/lwmacct/261018-go-pkg-subjekt/internal/command"
	"github.com/lwmacct/261018-go-pkg-subjekt/internal/eval"
	"github.com/lwmacct/261018-go-pkg-subjekt/pkg/resolvable"
)

func action(_ context.Context, cmd *cli.Command) error {
	cfg, err := command.Setup(cmd)
	if err != nil {
		return err
	}

	// 没有参数时从标准输入读取
	text := strings.Join(cmd.Args().Slice(), " ")
	if !cmd.Args().Present() {
		content, err := io.ReadAll(cmd.Root().Reader)
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		text = string(content)
	}

	r, err := resolvable.New(text, command.ResolvableOptions(cfg.Expr)...)
	if err != nil {
		return err
	}

	w := cmd.Root().Writer
	_, _ = fmt.Fprintln(w, "expressions:")
	for i, e := range r.Expressions() {
		_, _ = fmt.Fprintf(w, "  %d: %s\n", i, e)
	}
	_, _ = fmt.Fprintf(w, "skeleton: %s\n", r.Template())

	set := cmd.StringMap("set")
	if len(set) == 0 {
		return nil
	}

	evaluator, err := eval.New(cfg.Expr.Engine)
	if err != nil {
		return err
	}
	out, err := r.Resolve(eval.Bind(evaluator, scalars(set)))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "output: %s\n", out)

	return err
}

// scalars 将 --set 的值按 YAML 标量解析，"1" 为整数，"true" 为布尔值。
func scalars(set map[string]string) map[string]any {
	vars := make(map[string]any, len(set))
	for k, v := range set {
		var parsed any
		if err := yamlv3.Unmarshal([]byte(v), &parsed); err != nil || parsed == nil {
			vars[k] = v
			continue
		}
		switch parsed.(type) {
		case map[string]any, []any:
			vars[k] = v
		default:
			vars[k] = parsed
		}
	}

	return vars
}
