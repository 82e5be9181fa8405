// Package suite 加载描述生成任务的 suite 文件 (YAML/JSON)。
//
// suite 文件结构：
//
//	name: Example
//	config:
//	  prefix: "${{"
//	  suffix: "}}"
//	  preamble: "// generated"
//	parameters:
//	  - name: x
//	    values: [1, 2]
//	subjects:
//	  - name: "Subject ${{ x }}"
//	    code: "val a = ${{ x }}"
//	    outcomes:
//	      - warning: "x is ${{ x }}"
package suite

import (
	"errors"
	"fmt"
	"os"

	"github.com/lwmacct/261018-go-pkg-subjekt/pkg/cfgm"
)

// ErrInvalidSuite 表示 suite 内容不合法。
var ErrInvalidSuite = errors.New("suite: invalid suite")

// Suite 是 suite 文件的内容。
type Suite struct {
	Name       string      `json:"name"`
	Config     Config      `json:"config"`
	Parameters []Parameter `json:"parameters"`
	Subjects   []Subject   `json:"subjects"`
}

// Config 是 suite 级别的设置，留空的定界符由调用方补齐。
type Config struct {
	Prefix   string `json:"prefix"`
	Suffix   string `json:"suffix"`
	Preamble string `json:"preamble"`
}

// Parameter 是一个取值列表，生成时对所有参数取笛卡尔积。
type Parameter struct {
	Name   string `json:"name"`
	Values []any  `json:"values"`
}

// Subject 是一个待生成的主题。
type Subject struct {
	Name       string      `json:"name"`
	Code       string      `json:"code"`
	Parameters []Parameter `json:"parameters"`
	Outcomes   []Outcome   `json:"outcomes"`
}

// Outcome 是预期结果，Warning 与 Error 恰好设置一个。
type Outcome struct {
	Warning string `json:"warning"`
	Error   string `json:"error"`
}

// Load 读取并校验 suite 文件，格式由扩展名决定（.json 为 JSON，其余为 YAML）。
func Load(path string) (*Suite, error) {
	content, err := os.ReadFile(path) //nolint:gosec // path is provided by the user
	if err != nil {
		return nil, fmt.Errorf("read suite %s: %w", path, err)
	}

	s, err := Parse(path, content)
	if err != nil {
		return nil, fmt.Errorf("load suite %s: %w", path, err)
	}

	return s, nil
}

// Parse 解析 suite 内容；path 仅用于判断格式。
func Parse(path string, content []byte) (*Suite, error) {
	data, err := cfgm.ParseBytes(path, content)
	if err != nil {
		return nil, err
	}

	var s Suite
	if err := cfgm.Decode(data, &s); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	return &s, nil
}

// Validate 校验名称、参数与结果定义。
func (s *Suite) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidSuite)
	}
	if err := validateParameters(s.Parameters); err != nil {
		return fmt.Errorf("%w: suite parameters: %w", ErrInvalidSuite, err)
	}

	for i, subject := range s.Subjects {
		if subject.Name == "" {
			return fmt.Errorf("%w: subject #%d: missing name", ErrInvalidSuite, i)
		}
		if err := validateParameters(subject.Parameters); err != nil {
			return fmt.Errorf("%w: subject %q: %w", ErrInvalidSuite, subject.Name, err)
		}
		for j, o := range subject.Outcomes {
			if (o.Warning == "") == (o.Error == "") {
				return fmt.Errorf("%w: subject %q: outcome #%d must set exactly one of warning or error", ErrInvalidSuite, subject.Name, j)
			}
		}
	}

	return nil
}

func validateParameters(params []Parameter) error {
	seen := make(map[string]bool, len(params))
	for i, p := range params {
		switch {
		case p.Name == "":
			return fmt.Errorf("parameter #%d: missing name", i)
		case seen[p.Name]:
			return fmt.Errorf("parameter %q: duplicate name", p.Name)
		case len(p.Values) == 0:
			return fmt.Errorf("parameter %q: no values", p.Name)
		}
		seen[p.Name] = true
	}

	return nil
}
