package resolvable

import (
	"errors"
	"fmt"
)

// 哨兵错误，配合 errors.Is 使用。
var (
	ErrInvalidDelimiter = errors.New("resolvable: invalid delimiter")
	ErrArityMismatch    = errors.New("resolvable: arity mismatch")
	ErrEmptyExpression  = errors.New("resolvable: empty expression")
	ErrEvaluation       = errors.New("resolvable: evaluation failed")
)

// InvalidDelimiterError 表示 prefix/suffix 无法构成字面量匹配器。
type InvalidDelimiterError struct {
	Prefix string
	Suffix string
	Reason string
}

func (e *InvalidDelimiterError) Error() string {
	return fmt.Sprintf("resolvable: invalid delimiter pair %q/%q: %s", e.Prefix, e.Suffix, e.Reason)
}

func (e *InvalidDelimiterError) Is(target error) bool { return target == ErrInvalidDelimiter }

// ArityMismatchError 表示 Format 传入的值数量与去重后的表达式数量不一致。
type ArityMismatchError struct {
	Expected int
	Actual   int
}

func (e *ArityMismatchError) Error() string {
	return fmt.Sprintf("resolvable: expected %d values, got %d", e.Expected, e.Actual)
}

func (e *ArityMismatchError) Is(target error) bool { return target == ErrArityMismatch }

// EmptyExpressionError 仅在启用 [WithRejectEmpty] 时产生。
//
// Offset 为空表达式所在标记在 source 中的字节偏移。
type EmptyExpressionError struct {
	Offset int
}

func (e *EmptyExpressionError) Error() string {
	return fmt.Sprintf("resolvable: empty expression at offset %d", e.Offset)
}

func (e *EmptyExpressionError) Is(target error) bool { return target == ErrEmptyExpression }

// EvaluationError 包装 [Resolvable.Resolve] 回调返回的错误。
type EvaluationError struct {
	Expression RawExpression
	Err        error
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("resolvable: evaluate %q: %v", e.Expression.Source, e.Err)
}

func (e *EvaluationError) Unwrap() []error { return []error{ErrEvaluation, e.Err} }
