// Package files 将生成结果写入磁盘。
package files

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	yamlv3 "go.yaml.in/yaml/v3"

	"github.com/lwmacct/261018-go-pkg-subjekt/internal/generate"
)

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9 ]`)

// CleanName 移除字母、数字与空格以外的字符。
func CleanName(name string) string {
	return unsafeChars.ReplaceAllString(name, "")
}

// WriteTo 将 content 写入 path，必要时创建父目录。
// appendMode 为 false 时覆盖已有内容。
func WriteTo(content, path string, appendMode bool) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create directory for %s: %w", path, err)
	}

	flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	if appendMode {
		flags = os.O_CREATE | os.O_WRONLY | os.O_APPEND
	}

	f, err := os.OpenFile(path, flags, 0o600) //nolint:gosec // path is derived from user config
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	if _, err := f.WriteString(content); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}

	return f.Close()
}

// Writer 为每个结果写一个文件：<Dir>/<CleanName(Name)><Ext>。
//
// 非追加模式下，同一次 Write 中重名的结果依次写入 <Name>_1<Ext>、<Name>_2<Ext> ...；
// 追加模式下重名结果追加到同一文件。
type Writer struct {
	Dir      string
	Ext      string
	Append   bool
	Preamble string // 写在每个文件开头
}

// Path 返回第 i 个结果的基础输出路径；清理后为空的名称使用 subject<i>。
func (w *Writer) Path(i int, r generate.Result) string {
	return filepath.Join(w.Dir, w.baseName(i, r)+w.Ext)
}

func (w *Writer) baseName(i int, r generate.Result) string {
	if name := CleanName(r.Name); name != "" {
		return name
	}

	return "subject" + strconv.Itoa(i)
}

// Write 写出全部结果，返回写入的路径，顺序与 results 一致。
func (w *Writer) Write(results []generate.Result) ([]string, error) {
	paths := make([]string, 0, len(results))
	used := make(map[string]bool, len(results))
	for i, r := range results {
		path := w.Path(i, r)
		if !w.Append {
			base := w.baseName(i, r)
			for n := 1; used[path]; n++ {
				path = filepath.Join(w.Dir, base+"_"+strconv.Itoa(n)+w.Ext)
			}
		}
		used[path] = true

		content := r.Code
		if w.Preamble != "" {
			content = w.Preamble + "\n" + content
		}
		if err := WriteTo(content, path, w.Append); err != nil {
			return paths, err
		}

		slog.Debug("Wrote subject", "name", r.Name, "path", path)
		paths = append(paths, path)
	}

	return paths, nil
}

// Distinct 返回去重后的路径数。
func Distinct(paths []string) int {
	seen := make(map[string]bool, len(paths))
	for _, p := range paths {
		seen[p] = true
	}

	return len(seen)
}

// ManifestEntry 是清单中的一项。
type ManifestEntry struct {
	File     string            `yaml:"file"`
	Name     string            `yaml:"name"`
	Binding  map[string]any    `yaml:"binding,omitempty"`
	Outcomes []ManifestOutcome `yaml:"outcomes,omitempty"`
}

// ManifestOutcome 是清单中的预期结果。
type ManifestOutcome struct {
	Kind    string `yaml:"kind"`
	Message string `yaml:"message"`
}

// Manifest 由结果与对应路径构造清单，paths 与 results 一一对应。
func Manifest(results []generate.Result, paths []string) []ManifestEntry {
	entries := make([]ManifestEntry, len(results))
	for i, r := range results {
		e := ManifestEntry{Name: r.Name}
		if i < len(paths) {
			e.File = paths[i]
		}
		if len(r.Binding) > 0 {
			e.Binding = r.Binding.Vars()
		}
		for _, o := range r.Outcomes {
			e.Outcomes = append(e.Outcomes, ManifestOutcome{Kind: o.Kind, Message: o.Message})
		}
		entries[i] = e
	}

	return entries
}

// WriteManifest 以 YAML 格式写出清单，覆盖已有文件。
func WriteManifest(path string, results []generate.Result, paths []string) error {
	var buf bytes.Buffer
	enc := yamlv3.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(Manifest(results, paths)); err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}

	return WriteTo(buf.String(), path, false)
}
