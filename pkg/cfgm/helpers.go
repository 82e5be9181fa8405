package cfgm

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	yamlv3 "go.yaml.in/yaml/v3"
)

var (
	durationType = reflect.TypeFor[time.Duration]()
	timeType     = reflect.TypeFor[time.Time]()
)

// ErrRootNotObject 表示配置文件根节点不是对象。
var ErrRootNotObject = errors.New("config root must be object")

func configTagName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}

	return name
}

// isStructType 判断是否需要递归展开；time.Duration 与 time.Time 视为叶子。
func isStructType(typ reflect.Type) bool {
	if typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}

	return typ.Kind() == reflect.Struct && typ != durationType && typ != timeType
}

// ═══════════════════════════════════════════════════════════════════════════
// 结构体 → map
// ═══════════════════════════════════════════════════════════════════════════

func structToMap(cfg any) map[string]any {
	out, ok := toAny(reflect.ValueOf(cfg)).(map[string]any)
	if !ok {
		return map[string]any{}
	}

	return out
}

func toAny(val reflect.Value) any {
	if val.Kind() == reflect.Pointer {
		if val.IsNil() {
			return nil
		}
		val = val.Elem()
	}

	switch {
	case isStructType(val.Type()):
		out := make(map[string]any)
		for i := range val.NumField() {
			field := val.Type().Field(i)
			key := configTagName(field)
			if key == "" || !field.IsExported() {
				continue
			}
			out[key] = toAny(val.Field(i))
		}

		return out
	case val.Kind() == reflect.Slice:
		if val.IsNil() {
			return nil
		}
		out := make([]any, val.Len())
		for i := range val.Len() {
			out[i] = toAny(val.Index(i))
		}

		return out
	case val.Kind() == reflect.Map:
		if val.IsNil() {
			return nil
		}
		out := make(map[string]any, val.Len())
		iter := val.MapRange()
		for iter.Next() {
			out[fmt.Sprint(iter.Key().Interface())] = toAny(iter.Value())
		}

		return out
	default:
		return val.Interface()
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// 文件解析与解码
// ═══════════════════════════════════════════════════════════════════════════

// ParseBytes 按扩展名解析配置内容：.json 使用 JSON，其余使用 YAML。
//
// 返回的 map 中所有嵌套 key 均为 string；空文档返回空 map。
func ParseBytes(path string, content []byte) (map[string]any, error) {
	return parseConfigBytes(path, content)
}

func parseConfigBytes(path string, content []byte) (map[string]any, error) {
	var raw any
	var err error
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(content, &raw)
	} else {
		err = yamlv3.Unmarshal(content, &raw)
	}
	if err != nil {
		return nil, err
	}

	switch root := normalizeMapKeys(raw).(type) {
	case nil:
		return map[string]any{}, nil
	case map[string]any:
		return root, nil
	default:
		return nil, ErrRootNotObject
	}
}

func normalizeMapKeys(val any) any {
	switch typed := val.(type) {
	case map[string]any:
		for key, value := range typed {
			typed[key] = normalizeMapKeys(value)
		}

		return typed
	case map[any]any:
		out := make(map[string]any, len(typed))
		for key, value := range typed {
			out[fmt.Sprint(key)] = normalizeMapKeys(value)
		}

		return out
	case []any:
		for i := range typed {
			typed[i] = normalizeMapKeys(typed[i])
		}

		return typed
	default:
		return val
	}
}

// mergeMaps 将 src 深度合并进 dst，叶子值以 src 为准。
func mergeMaps(dst, src map[string]any) {
	for key, value := range src {
		srcChild, srcIsMap := value.(map[string]any)
		dstChild, dstIsMap := dst[key].(map[string]any)
		if srcIsMap && dstIsMap {
			mergeMaps(dstChild, srcChild)
			continue
		}
		dst[key] = value
	}
}

func setByPath(dst map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := dst
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
}

// Decode 使用 json tag 将 map 解码到 out，允许弱类型输入（如 "true" → bool）。
func Decode(data map[string]any, out any) error {
	return decodeConfigMap(data, out)
}

func decodeConfigMap(data map[string]any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
			mapstructure.TextUnmarshallerHookFunc(),
		),
		Result:           out,
		WeaklyTypedInput: true,
		TagName:          "json",
	})
	if err != nil {
		return err
	}

	return decoder.Decode(data)
}
