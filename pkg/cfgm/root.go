package cfgm

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
)

// ErrProjectRootNotFound 表示从调用方源文件向上未找到 go.mod。
var ErrProjectRootNotFound = errors.New("cfgm: project root not found")

// FindProjectRoot 从调用方源文件所在目录向上查找 go.mod，返回其所在目录。
//
// skip 为 0 时以直接调用方所在文件为起点，每多跳过一层调用栈加 1。
// 二进制在构建机以外运行时源文件路径通常不存在，此时返回 [ErrProjectRootNotFound]。
func FindProjectRoot(skip int) (string, error) {
	_, file, _, ok := runtime.Caller(skip + 1)
	if !ok {
		return "", ErrProjectRootNotFound
	}

	dir := filepath.Dir(file)
	for {
		if info, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil && !info.IsDir() {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrProjectRootNotFound
		}
		dir = parent
	}
}
