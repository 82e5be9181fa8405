// Package resolvable 提取字符串中的嵌入表达式，并在求值后回填。
//
// 源字符串中以定界符（默认 "${{" 与 "}}"）包围的部分视为表达式。
// 解析得到两部分：去重后的表达式列表，以及一个按下标引用表达式的骨架。
// 本包不对表达式求值，求值由调用方注入。
//
// # 语义说明
//
//  1. 定界符按字面文本匹配，特殊字符无需转义
//  2. 表达式文本去除首尾空白；文本相同的表达式只出现一次
//  3. 表达式下标按首次出现顺序分配
//  4. 未闭合的定界符原样保留，不报错
//  5. 不支持嵌套定界符，表达式不跨行
//
// # 快速开始
//
//	r, err := resolvable.New("Hello ${{ name }}, again ${{ name }}")
//	exprs := r.Expressions() // [name]
//	out, err := r.Format("Alice") // "Hello Alice, again Alice"
//
// 使用回调求值：
//
//	out, err := r.Resolve(func(e resolvable.RawExpression) (any, error) {
//	    return vars[e.Source], nil
//	})
//
// # 错误
//
//   - [ErrInvalidDelimiter] - prefix/suffix 为空或包含换行
//   - [ErrArityMismatch] - Format 传入的值数量不等于表达式数量
//   - [ErrEmptyExpression] - 启用 [WithRejectEmpty] 时的空表达式
//   - [ErrEvaluation] - Resolve 回调失败
package resolvable
