package generate_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwmacct/261018-go-pkg-subjekt/internal/eval"
	"github.com/lwmacct/261018-go-pkg-subjekt/internal/generate"
	"github.com/lwmacct/261018-go-pkg-subjekt/internal/suite"
	"github.com/lwmacct/261018-go-pkg-subjekt/pkg/resolvable"
)

func compile(t *testing.T, content string) []*suite.CompiledSubject {
	t.Helper()

	s, err := suite.Parse("suite.yaml", []byte(content))
	require.NoError(t, err)
	compiled, err := suite.Compile(s)
	require.NoError(t, err)

	return compiled
}

func TestExpand(t *testing.T) {
	tests := []struct {
		name   string
		params []suite.Parameter
		want   []string
	}{
		{name: "no parameters", params: nil, want: []string{"{}"}},
		{name: "single", params: []suite.Parameter{{Name: "a", Values: []any{1, 2}}}, want: []string{"{a=1}", "{a=2}"}},
		{
			name: "last varies fastest",
			params: []suite.Parameter{
				{Name: "a", Values: []any{1, 2}},
				{Name: "b", Values: []any{"x", "y", "z"}},
			},
			want: []string{"{a=1, b=x}", "{a=1, b=y}", "{a=1, b=z}", "{a=2, b=x}", "{a=2, b=y}", "{a=2, b=z}"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bindings := generate.Expand(tt.params)
			got := make([]string, len(bindings))
			for i, b := range bindings {
				got[i] = b.String()
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBinding_Vars(t *testing.T) {
	b := generate.Binding{{Name: "a", Value: 1}, {Name: "b", Value: "x"}}
	assert.Equal(t, map[string]any{"a": 1, "b": "x"}, b.Vars())
}

func TestIdentifiers(t *testing.T) {
	assert.Equal(t, []string{"a", "b_2", "len", "items"}, generate.Identifiers(resolvable.RawExpression{Source: "a + b_2 * len(items)"}))
	assert.Equal(t, []string{"name"}, generate.Identifiers(resolvable.RawExpression{Source: `"${name}"`}))
	assert.Empty(t, generate.Identifiers(resolvable.RawExpression{Source: "1 + 2"}))
}

func TestGenerator_Run(t *testing.T) {
	compiled := compile(t, `
name: Example
parameters:
  - name: x
    values: [1, 2]
  - name: unused
    values: [a, b, c]
subjects:
  - name: "Plus ${{ x }}"
    code: "val a = ${{ x }} + ${{ y }}"
    parameters:
      - name: y
        values: [10]
    outcomes:
      - warning: "sum is ${{ x + y }}"
  - name: "Static"
    code: "val b = 0"
`)

	results, err := generate.New(eval.NewExpr()).Run(context.Background(), compiled)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "Plus 1", results[0].Name)
	assert.Equal(t, "val a = 1 + 10", results[0].Code)
	assert.Equal(t, []generate.ResolvedOutcome{{Kind: suite.KindWarning, Message: "sum is 11"}}, results[0].Outcomes)
	assert.Equal(t, "{x=1, y=10}", results[0].Binding.String())

	assert.Equal(t, "Plus 2", results[1].Name)
	assert.Equal(t, "sum is 12", results[1].Outcomes[0].Message)

	assert.Equal(t, 1, results[2].Subject)
	assert.Equal(t, "Static", results[2].Name)
	assert.Empty(t, results[2].Binding, "unreferenced parameters are not bound")
	assert.Empty(t, results[2].Outcomes)
}

func TestGenerator_RunHCL(t *testing.T) {
	compiled := compile(t, `
name: HCL
parameters:
  - name: who
    values: [world]
subjects:
  - name: greeting
    code: 'say(${{ "hello, ${who}" }})'
`)

	results, err := generate.New(eval.NewHCL()).Run(context.Background(), compiled)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "say(hello, world)", results[0].Code)
}

func TestGenerator_EvaluationError(t *testing.T) {
	compiled := compile(t, `
name: Broken
parameters:
  - name: x
    values: [1]
subjects:
  - name: broken
    code: "${{ x + }}"
`)

	_, err := generate.New(eval.NewExpr()).Run(context.Background(), compiled)
	require.Error(t, err)
	require.ErrorIs(t, err, resolvable.ErrEvaluation)
	require.ErrorIs(t, err, eval.ErrSyntax)
	assert.Contains(t, err.Error(), `subject "broken" with {x=1}: code`)
}

func TestGenerator_Canceled(t *testing.T) {
	compiled := compile(t, `
name: C
subjects:
  - name: s
`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := generate.New(eval.NewExpr()).Run(ctx, compiled)
	require.ErrorIs(t, err, context.Canceled)
}

func TestGenerator_EvaluatesEachExpressionOnce(t *testing.T) {
	compiled := compile(t, `
name: Once
subjects:
  - name: "${{ k }}-${{ k }}"
`)

	calls := 0
	e := eval.Func(func(expr resolvable.RawExpression, _ map[string]any) (any, error) {
		calls++
		if expr.Source != "k" {
			return nil, errors.New("unexpected expression")
		}

		return "v", nil
	})

	results, err := generate.New(e).Run(context.Background(), compiled)
	require.NoError(t, err)
	assert.Equal(t, "v-v", results[0].Name)
	assert.Equal(t, 1, calls)
}
