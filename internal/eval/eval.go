// Package eval 为 resolvable 表达式提供可注入的求值引擎。
package eval

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/lwmacct/261018-go-pkg-subjekt/pkg/resolvable"
)

var (
	ErrUnknownEngine   = errors.New("eval: unknown engine")
	ErrEmptyExpression = errors.New("eval: empty expression")
	ErrSyntax          = errors.New("eval: syntax error")
	ErrRuntime         = errors.New("eval: runtime error")
)

// Evaluator 将 RawExpression 在给定变量下求值。
type Evaluator interface {
	Evaluate(expr resolvable.RawExpression, vars map[string]any) (any, error)
}

// Func 让普通函数满足 [Evaluator]。
type Func func(expr resolvable.RawExpression, vars map[string]any) (any, error)

func (f Func) Evaluate(expr resolvable.RawExpression, vars map[string]any) (any, error) {
	return f(expr, vars)
}

// 引擎名称。
const (
	EngineExpr = "expr"
	EngineHCL  = "hcl"
)

var engines = map[string]func() Evaluator{
	EngineExpr: func() Evaluator { return NewExpr() },
	EngineHCL:  func() Evaluator { return NewHCL() },
}

// New 按名称创建求值引擎，名称不区分大小写。
func New(engine string) (Evaluator, error) {
	factory, ok := engines[strings.ToLower(strings.TrimSpace(engine))]
	if !ok {
		return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownEngine, engine, strings.Join(Engines(), ", "))
	}

	return factory(), nil
}

// Engines 返回已注册的引擎名称。
func Engines() []string {
	names := make([]string, 0, len(engines))
	for name := range engines {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Bind 返回一个可直接传给 [resolvable.Resolvable.Resolve] 的回调。
func Bind(e Evaluator, vars map[string]any) func(resolvable.RawExpression) (any, error) {
	return func(expr resolvable.RawExpression) (any, error) {
		return e.Evaluate(expr, vars)
	}
}
