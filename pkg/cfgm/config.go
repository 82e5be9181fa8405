package cfgm

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/261018-go-pkg-subjekt/pkg/templexp"
)

// DefaultPaths 返回默认配置文件的搜索顺序，先命中的文件生效。
//
// 优先级 (从高到低)：
//  1. ./.appname.yaml - 当前目录应用配置
//  2. ~/.appname.yaml - 用户主目录配置
//  3. /etc/appname/config.yaml - 系统级配置
//  4. config.yaml - 当前目录通用配置
//  5. config/config.yaml - 子目录通用配置
func DefaultPaths(appName ...string) []string {
	var paths []string

	if len(appName) > 0 && appName[0] != "" {
		name := appName[0]
		paths = append(paths, "."+name+".yaml")
		if home, err := os.UserHomeDir(); err == nil {
			paths = append(paths, filepath.Join(home, "."+name+".yaml"))
		}
		paths = append(paths, filepath.Join("/etc", name, "config.yaml"))
	}

	return append(paths, "config.yaml", filepath.Join("config", "config.yaml"))
}

// Load 读取配置并按优先级合并。
//
// 优先级 (从低到高)：
//  1. 默认值 - defaultConfig
//  2. 配置文件 - [WithConfigPaths] / [WithAppName]
//  3. 环境变量(前缀) - [WithEnvPrefix]
//  4. CLI flags - [WithCommand]
//
// 配置 key 由 json tag 定义，YAML 与 JSON 共享同一套 key。
func Load[T any](defaultConfig T, opts ...Option) (*T, error) {
	return load(defaultConfig, opts...)
}

// LoadCmd 是 [Load] 的 CLI 版本：注入 [WithCommand]，appName 非空时注入 [WithAppName]。
func LoadCmd[T any](cmd *cli.Command, defaultConfig T, appName string, opts ...Option) (*T, error) {
	return load(defaultConfig, cmdOptions(cmd, appName, opts)...)
}

// MustLoadCmd 调用 [LoadCmd] 并在失败时 panic，适合启动阶段。
func MustLoadCmd[T any](cmd *cli.Command, defaultConfig T, appName string, opts ...Option) *T {
	cfg, err := load(defaultConfig, cmdOptions(cmd, appName, opts)...)
	if err != nil {
		panic(fmt.Sprintf("cfgm: failed to load config: %v", err))
	}

	return cfg
}

func cmdOptions(cmd *cli.Command, appName string, opts []Option) []Option {
	base := []Option{WithCommand(cmd)}
	if appName != "" {
		base = append(base, WithAppName(appName))
	}

	return append(base, opts...)
}

// load 是所有入口共用的实现；各入口到 load 的调用深度相同，因此默认 skip 为 1。
func load[T any](defaultConfig T, opts ...Option) (*T, error) {
	o := &options{callerSkip: 1}
	for _, opt := range opts {
		opt(o)
	}

	if !o.baseDirSet {
		if root, err := FindProjectRoot(o.callerSkip + 1); err == nil {
			o.baseDir = root
		}
	}
	if len(o.configPaths) == 0 {
		o.configPaths = DefaultPaths(o.appName)
	}

	configMap := structToMap(defaultConfig)

	// 配置文件：按顺序搜索，找到第一个即停止
	path, content, found := firstReadable(o.baseDir, o.configPaths)
	if found {
		if !o.noTemplateExpansion {
			expanded, err := templexp.ExpandTemplate(string(content))
			if err != nil {
				return nil, fmt.Errorf("expand template in %s: %w", path, err)
			}
			content = []byte(expanded)
		}

		fileMap, err := parseConfigBytes(path, content)
		if err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
		mergeMaps(configMap, fileMap)
		slog.Debug("Loaded config from file", "path", path, "templateExpansion", !o.noTemplateExpansion)
	} else {
		slog.Debug("No config file found, using defaults", "paths", o.configPaths)
	}

	// 环境变量：只绑定结构体中定义过的 key
	if o.envPrefix != "" {
		for envKey, key := range envBindings(o.envPrefix, collectKeys(reflect.TypeOf(defaultConfig))) {
			if val, ok := os.LookupEnv(envKey); ok && val != "" {
				setByPath(configMap, key, val)
				slog.Debug("Loaded env binding", "env", envKey, "key", key)
			}
		}
	}

	// CLI flags：仅覆盖用户显式设置的 flag
	if o.cmd != nil {
		walkFields(reflect.TypeOf(defaultConfig), "", func(key string, typ reflect.Type) {
			applyFlag(o.cmd, configMap, key, typ)
		})
	}

	var cfg T
	if err := decodeConfigMap(configMap, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func firstReadable(baseDir string, paths []string) (string, []byte, bool) {
	for _, p := range paths {
		if baseDir != "" && !filepath.IsAbs(p) {
			p = filepath.Join(baseDir, p)
		}
		content, err := os.ReadFile(p) //nolint:gosec // path is from trusted config
		if err != nil {
			continue
		}

		return p, content, true
	}

	return "", nil, false
}

// collectKeys 以 json tag 为准，返回全部叶子 key（如 expr.reject-empty）。
func collectKeys(typ reflect.Type) []string {
	var keys []string
	walkFields(typ, "", func(key string, _ reflect.Type) {
		keys = append(keys, key)
	})

	return keys
}

func walkFields(typ reflect.Type, prefix string, fn func(key string, typ reflect.Type)) {
	if typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return
	}

	for i := range typ.NumField() {
		field := typ.Field(i)
		key := configTagName(field)
		if key == "" {
			continue
		}
		if prefix != "" {
			key = prefix + "." + key
		}
		if isStructType(field.Type) {
			walkFields(field.Type, key, fn)
			continue
		}
		fn(key, field.Type)
	}
}

// envBindings 生成 环境变量名 → 配置 key 映射。
//
// 示例 (前缀 "SUBJEKT_")：
//   - generate.suite → SUBJEKT_GENERATE_SUITE
//   - expr.reject-empty → SUBJEKT_EXPR_REJECT_EMPTY
func envBindings(prefix string, keys []string) map[string]string {
	replacer := strings.NewReplacer(".", "_", "-", "_")
	bindings := make(map[string]string, len(keys))
	for _, key := range keys {
		bindings[prefix+strings.ToUpper(replacer.Replace(key))] = key
	}

	return bindings
}

// applyFlag 将显式设置的 CLI flag 写入配置 map。
//
// flag 名称由 key 中的 "." 替换为 "-" 得到：generate.suite → --generate-suite。
func applyFlag(cmd *cli.Command, config map[string]any, key string, typ reflect.Type) {
	name := strings.ReplaceAll(key, ".", "-")
	if !cmd.IsSet(name) {
		return
	}

	if typ == durationType {
		setByPath(config, key, cmd.Duration(name))

		return
	}

	switch typ.Kind() {
	case reflect.String:
		setByPath(config, key, cmd.String(name))
	case reflect.Bool:
		setByPath(config, key, cmd.Bool(name))
	case reflect.Int:
		setByPath(config, key, cmd.Int(name))
	case reflect.Int64:
		setByPath(config, key, cmd.Int64(name))
	case reflect.Float64:
		setByPath(config, key, cmd.Float64(name))
	case reflect.Slice:
		if typ.Elem().Kind() == reflect.String {
			setByPath(config, key, cmd.StringSlice(name))
		}
	case reflect.Map:
		if typ.Key().Kind() == reflect.String && typ.Elem().Kind() == reflect.String {
			setByPath(config, key, cmd.StringMap(name))
		}
	default:
		slog.Debug("Unsupported flag type, ignored", "flag", name, "type", typ.String())
	}
}
