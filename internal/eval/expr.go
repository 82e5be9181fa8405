package eval

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/lwmacct/261018-go-pkg-subjekt/pkg/resolvable"
)

// ExprEvaluator 使用 expr-lang 求值，编译结果按表达式文本缓存。
type ExprEvaluator struct {
	mu       sync.RWMutex
	programs map[string]*vm.Program
}

// NewExpr 创建 expr-lang 求值引擎。
func NewExpr() *ExprEvaluator {
	return &ExprEvaluator{programs: make(map[string]*vm.Program)}
}

func (e *ExprEvaluator) program(source string) (*vm.Program, error) {
	e.mu.RLock()
	p, ok := e.programs[source]
	e.mu.RUnlock()
	if ok {
		return p, nil
	}

	p, err := expr.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrSyntax, source, err)
	}
	slog.Debug("Compiled expression", "engine", EngineExpr, "source", source)

	e.mu.Lock()
	e.programs[source] = p
	e.mu.Unlock()

	return p, nil
}

// Evaluate 实现 [Evaluator]。
func (e *ExprEvaluator) Evaluate(raw resolvable.RawExpression, vars map[string]any) (any, error) {
	if raw.Source == "" {
		return nil, ErrEmptyExpression
	}

	p, err := e.program(raw.Source)
	if err != nil {
		return nil, err
	}

	env := vars
	if env == nil {
		env = map[string]any{}
	}
	out, err := expr.Run(p, env)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrRuntime, raw.Source, err)
	}

	return out, nil
}
