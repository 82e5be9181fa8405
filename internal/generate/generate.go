// Package generate 在参数绑定下解析 suite 中的主题。
//
// 每个主题只绑定其表达式中出现的参数，取值按笛卡尔积展开，
// 每个组合产生一个 [Result]。
package generate

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/lwmacct/261018-go-pkg-subjekt/internal/eval"
	"github.com/lwmacct/261018-go-pkg-subjekt/internal/suite"
	"github.com/lwmacct/261018-go-pkg-subjekt/pkg/resolvable"
)

// Assignment 是一个参数取值。
type Assignment struct {
	Name  string
	Value any
}

// Binding 是一组参数取值，顺序与参数声明一致。
type Binding []Assignment

// Vars 返回供求值引擎使用的变量表。
func (b Binding) Vars() map[string]any {
	vars := make(map[string]any, len(b))
	for _, a := range b {
		vars[a.Name] = a.Value
	}

	return vars
}

func (b Binding) String() string {
	parts := make([]string, len(b))
	for i, a := range b {
		parts[i] = fmt.Sprintf("%s=%v", a.Name, a.Value)
	}

	return "{" + strings.Join(parts, ", ") + "}"
}

// ResolvedOutcome 是解析后的预期结果。
type ResolvedOutcome struct {
	Kind    string
	Message string
}

// Result 是一个主题在一组绑定下的解析结果。
type Result struct {
	Subject  int // 主题在 suite 中的下标
	Name     string
	Code     string
	Outcomes []ResolvedOutcome
	Binding  Binding
}

// Generator 使用 Evaluator 解析主题。
type Generator struct {
	Evaluator eval.Evaluator
}

// New 创建 Generator。
func New(e eval.Evaluator) *Generator {
	return &Generator{Evaluator: e}
}

// Run 按顺序解析全部主题，任一表达式求值失败即返回错误。
func (g *Generator) Run(ctx context.Context, subjects []*suite.CompiledSubject) ([]Result, error) {
	var results []Result
	for _, s := range subjects {
		params := boundParameters(s)
		bindings := Expand(params)
		slog.Debug("Resolving subject", "subject", s.Name.Source(), "parameters", len(params), "bindings", len(bindings))

		for _, b := range bindings {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			r, err := g.resolve(s, b)
			if err != nil {
				return nil, fmt.Errorf("subject %q with %s: %w", s.Name.Source(), b, err)
			}
			results = append(results, r)
		}
	}

	return results, nil
}

func (g *Generator) resolve(s *suite.CompiledSubject, b Binding) (Result, error) {
	fn := eval.Bind(g.Evaluator, b.Vars())

	name, err := s.Name.Resolve(fn)
	if err != nil {
		return Result{}, fmt.Errorf("name: %w", err)
	}
	code, err := s.Code.Resolve(fn)
	if err != nil {
		return Result{}, fmt.Errorf("code: %w", err)
	}

	r := Result{Subject: s.Index, Name: name, Code: code, Binding: b}
	for i, o := range s.Outcomes {
		msg, err := o.Message.Resolve(fn)
		if err != nil {
			return Result{}, fmt.Errorf("outcome #%d: %w", i, err)
		}
		r.Outcomes = append(r.Outcomes, ResolvedOutcome{Kind: o.Kind, Message: msg})
	}

	return r, nil
}

// Expand 返回参数取值的笛卡尔积，最后一个参数变化最快。
// 没有参数时返回一个空绑定。
func Expand(params []suite.Parameter) []Binding {
	bindings := []Binding{{}}
	for _, p := range params {
		next := make([]Binding, 0, len(bindings)*len(p.Values))
		for _, b := range bindings {
			for _, v := range p.Values {
				nb := make(Binding, len(b), len(b)+1)
				copy(nb, b)
				next = append(next, append(nb, Assignment{Name: p.Name, Value: v}))
			}
		}
		bindings = next
	}

	return bindings
}

var identPattern = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*`)

// Identifiers 返回表达式中出现的标识符。
//
// 字符串字面量不做区分：HCL 模板字符串中的 ${name} 同样引用参数。
func Identifiers(expr resolvable.RawExpression) []string {
	return identPattern.FindAllString(expr.Source, -1)
}

// boundParameters 返回主题表达式中引用到的参数，保持声明顺序。
func boundParameters(s *suite.CompiledSubject) []suite.Parameter {
	used := make(map[string]bool)
	for _, r := range s.Resolvables() {
		for _, e := range r.Expressions() {
			for _, id := range Identifiers(e) {
				used[id] = true
			}
		}
	}

	var params []suite.Parameter
	for _, p := range s.Parameters {
		if used[p.Name] {
			params = append(params, p)
		}
	}

	return params
}
