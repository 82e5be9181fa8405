package suite

import (
	"fmt"
	"slices"

	"github.com/lwmacct/261018-go-pkg-subjekt/pkg/resolvable"
)

// 结果类型。
const (
	KindWarning = "warning"
	KindError   = "error"
)

// CompiledOutcome 是解析后的预期结果。
type CompiledOutcome struct {
	Kind    string
	Message *resolvable.Resolvable
}

// CompiledSubject 是解析后的主题，所有文本字段均为 Resolvable。
type CompiledSubject struct {
	Index      int
	Name       *resolvable.Resolvable
	Code       *resolvable.Resolvable
	Outcomes   []CompiledOutcome
	Parameters []Parameter // 作用域内的参数：suite 参数被同名 subject 参数覆盖
}

// Resolvables 按 name、code、outcomes 的顺序返回全部 Resolvable。
func (c *CompiledSubject) Resolvables() []*resolvable.Resolvable {
	out := []*resolvable.Resolvable{c.Name, c.Code}
	for _, o := range c.Outcomes {
		out = append(out, o.Message)
	}

	return out
}

// Compile 将 suite 中的文本字段解析为 Resolvable。
//
// opts 提供默认设置；suite config 中非空的 prefix/suffix 优先。
func Compile(s *Suite, opts ...resolvable.Option) ([]*CompiledSubject, error) {
	if s.Config.Prefix != "" || s.Config.Suffix != "" {
		prefix, suffix := s.Config.Prefix, s.Config.Suffix
		if prefix == "" {
			prefix = resolvable.DefaultPrefix
		}
		if suffix == "" {
			suffix = resolvable.DefaultSuffix
		}
		opts = append(slices.Clone(opts), resolvable.WithDelimiters(prefix, suffix))
	}

	compiled := make([]*CompiledSubject, 0, len(s.Subjects))
	for i, subject := range s.Subjects {
		c, err := compileSubject(i, subject, s.Parameters, opts)
		if err != nil {
			return nil, fmt.Errorf("subject %q: %w", subject.Name, err)
		}
		compiled = append(compiled, c)
	}

	return compiled, nil
}

func compileSubject(index int, subject Subject, suiteParams []Parameter, opts []resolvable.Option) (*CompiledSubject, error) {
	name, err := resolvable.New(subject.Name, opts...)
	if err != nil {
		return nil, fmt.Errorf("name: %w", err)
	}
	code, err := resolvable.New(subject.Code, opts...)
	if err != nil {
		return nil, fmt.Errorf("code: %w", err)
	}

	c := &CompiledSubject{
		Index:      index,
		Name:       name,
		Code:       code,
		Parameters: mergeParameters(suiteParams, subject.Parameters),
	}
	for j, o := range subject.Outcomes {
		kind, text := KindWarning, o.Warning
		if o.Error != "" {
			kind, text = KindError, o.Error
		}
		msg, err := resolvable.New(text, opts...)
		if err != nil {
			return nil, fmt.Errorf("outcome #%d: %w", j, err)
		}
		c.Outcomes = append(c.Outcomes, CompiledOutcome{Kind: kind, Message: msg})
	}

	return c, nil
}

// mergeParameters 保持 suite 参数的声明顺序，同名参数由 subject 覆盖，其余 subject 参数追加在后。
func mergeParameters(suiteParams, subjectParams []Parameter) []Parameter {
	local := make(map[string]Parameter, len(subjectParams))
	for _, p := range subjectParams {
		local[p.Name] = p
	}

	merged := make([]Parameter, 0, len(suiteParams)+len(subjectParams))
	for _, p := range suiteParams {
		if override, ok := local[p.Name]; ok {
			merged = append(merged, override)
			delete(local, p.Name)
			continue
		}
		merged = append(merged, p)
	}
	for _, p := range subjectParams {
		if _, ok := local[p.Name]; ok {
			merged = append(merged, p)
		}
	}

	return merged
}
