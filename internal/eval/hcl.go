package eval

import (
	"errors"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"

	"github.com/lwmacct/261018-go-pkg-subjekt/pkg/resolvable"
)

// ErrUnsupportedValue 表示值无法在 Go 与 cty 之间转换。
var ErrUnsupportedValue = errors.New("eval: unsupported value")

// HCLEvaluator 使用 HCL 原生语法求值，变量以 cty 值注入。
type HCLEvaluator struct {
	functions map[string]function.Function
}

// NewHCL 创建 HCL 求值引擎，内置 go-cty 标准库中的常用函数。
func NewHCL() *HCLEvaluator {
	return &HCLEvaluator{
		functions: map[string]function.Function{
			"upper":  stdlib.UpperFunc,
			"lower":  stdlib.LowerFunc,
			"format": stdlib.FormatFunc,
			"join":   stdlib.JoinFunc,
			"length": stdlib.LengthFunc,
			"max":    stdlib.MaxFunc,
			"min":    stdlib.MinFunc,
			"abs":    stdlib.AbsoluteFunc,
		},
	}
}

// Evaluate 实现 [Evaluator]。
func (e *HCLEvaluator) Evaluate(raw resolvable.RawExpression, vars map[string]any) (any, error) {
	if raw.Source == "" {
		return nil, ErrEmptyExpression
	}

	parsed, diags := hclsyntax.ParseExpression([]byte(raw.Source), "expression", hcl.Pos{Line: 1, Column: 1, Byte: 0})
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: %q: %s", ErrSyntax, raw.Source, diags.Error())
	}

	ctx, err := e.evalContext(vars)
	if err != nil {
		return nil, err
	}

	val, diags := parsed.Value(ctx)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: %q: %s", ErrRuntime, raw.Source, diags.Error())
	}

	return fromCty(val)
}

func (e *HCLEvaluator) evalContext(vars map[string]any) (*hcl.EvalContext, error) {
	variables := make(map[string]cty.Value, len(vars))
	for name, v := range vars {
		cv, err := toCty(v)
		if err != nil {
			return nil, fmt.Errorf("variable %q: %w", name, err)
		}
		variables[name] = cv
	}

	return &hcl.EvalContext{Variables: variables, Functions: e.functions}, nil
}

// toCty 将 YAML 解码得到的 Go 值转为 cty 值。
func toCty(v any) (cty.Value, error) {
	switch x := v.(type) {
	case nil:
		return cty.NullVal(cty.DynamicPseudoType), nil
	case cty.Value:
		return x, nil
	case string:
		return cty.StringVal(x), nil
	case bool:
		return cty.BoolVal(x), nil
	case int:
		return cty.NumberIntVal(int64(x)), nil
	case int64:
		return cty.NumberIntVal(x), nil
	case uint64:
		return cty.NumberUIntVal(x), nil
	case float64:
		return cty.NumberFloatVal(x), nil
	case []any:
		if len(x) == 0 {
			return cty.EmptyTupleVal, nil
		}
		elems := make([]cty.Value, len(x))
		for i, item := range x {
			cv, err := toCty(item)
			if err != nil {
				return cty.NilVal, err
			}
			elems[i] = cv
		}

		return cty.TupleVal(elems), nil
	case map[string]any:
		if len(x) == 0 {
			return cty.EmptyObjectVal, nil
		}
		attrs := make(map[string]cty.Value, len(x))
		for k, item := range x {
			cv, err := toCty(item)
			if err != nil {
				return cty.NilVal, err
			}
			attrs[k] = cv
		}

		return cty.ObjectVal(attrs), nil
	default:
		return cty.NilVal, fmt.Errorf("%w: %T", ErrUnsupportedValue, v)
	}
}

// fromCty 将结果转为 Go 值：整数为 int64，其他数字为 float64，null 为空字符串。
func fromCty(v cty.Value) (any, error) {
	if v.IsNull() {
		return "", nil
	}
	if !v.IsWhollyKnown() {
		return nil, fmt.Errorf("%w: unknown value", ErrUnsupportedValue)
	}

	switch ty := v.Type(); {
	case ty == cty.String:
		return v.AsString(), nil
	case ty == cty.Bool:
		return v.True(), nil
	case ty == cty.Number:
		bf := v.AsBigFloat()
		if bf.IsInt() {
			if i, acc := bf.Int64(); acc == 0 {
				return i, nil
			}
		}
		f, _ := bf.Float64()

		return f, nil
	case ty.IsTupleType() || ty.IsListType() || ty.IsSetType():
		var out []any
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			item, err := fromCty(ev)
			if err != nil {
				return nil, err
			}
			out = append(out, item)
		}

		return out, nil
	case ty.IsObjectType() || ty.IsMapType():
		out := make(map[string]any)
		for it := v.ElementIterator(); it.Next(); {
			k, ev := it.Element()
			item, err := fromCty(ev)
			if err != nil {
				return nil, err
			}
			out[k.AsString()] = item
		}

		return out, nil
	default:
		sv, err := convert.Convert(v, cty.String)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedValue, ty.FriendlyName())
		}

		return sv.AsString(), nil
	}
}
