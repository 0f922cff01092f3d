package toml

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
)

// ErrMissingField is wrapped by errors for absent keys tagged `required`
var ErrMissingField = errors.New("missing required field")

// Unmarshal parses TOML data and stores the result in the value pointed to by v
// Fields absent from the input keep their current values, so callers preset defaults
func Unmarshal(data []byte, v any) error {
	doc, err := NewParser(data).Parse()
	if err != nil {
		return err
	}
	return Decode(doc, v)
}

// Decode maps a parsed document onto v using `toml:"name[,required]"` tags
// Untagged fields use their Go name
func Decode(data any, v any) error {
	val := reflect.ValueOf(v)
	if val.Kind() != reflect.Ptr || val.IsNil() {
		return fmt.Errorf("toml: target must be a non-nil pointer, got %T", v)
	}
	return decodeValue(data, val.Elem(), "")
}

func decodeValue(data any, val reflect.Value, path string) error {
	if data == nil {
		return nil
	}

	switch val.Kind() {
	case reflect.Ptr:
		elem := reflect.New(val.Type().Elem())
		if !val.IsNil() {
			elem.Elem().Set(val.Elem())
		}
		if err := decodeValue(data, elem.Elem(), path); err != nil {
			return err
		}
		val.Set(elem)

	case reflect.Struct:
		m, ok := data.(map[string]any)
		if !ok {
			return typeError(path, "table", data)
		}
		return decodeStruct(m, val, path)

	case reflect.Slice:
		items, ok := asList(data)
		if !ok {
			return typeError(path, "array", data)
		}
		out := reflect.MakeSlice(val.Type(), len(items), len(items))
		for i, item := range items {
			if err := decodeValue(item, out.Index(i), fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
		val.Set(out)

	case reflect.Array:
		items, ok := asList(data)
		if !ok {
			return typeError(path, "array", data)
		}
		if len(items) != val.Len() {
			return fmt.Errorf("toml: %s: want %d elements, got %d", path, val.Len(), len(items))
		}
		for i, item := range items {
			if err := decodeValue(item, val.Index(i), fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}

	case reflect.Map:
		if val.Type().Key().Kind() != reflect.String {
			return fmt.Errorf("toml: %s: only map[string]T is supported", path)
		}
		m, ok := data.(map[string]any)
		if !ok {
			return typeError(path, "table", data)
		}
		out := reflect.MakeMapWithSize(val.Type(), len(m))
		for k, item := range m {
			elem := reflect.New(val.Type().Elem()).Elem()
			if err := decodeValue(item, elem, join(path, k)); err != nil {
				return err
			}
			out.SetMapIndex(reflect.ValueOf(k).Convert(val.Type().Key()), elem)
		}
		val.Set(out)

	case reflect.Interface:
		val.Set(reflect.ValueOf(data))

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, ok := data.(int)
		if !ok {
			return typeError(path, "integer", data)
		}
		if val.OverflowInt(int64(n)) {
			return fmt.Errorf("toml: %s: %d overflows %s", path, n, val.Type())
		}
		val.SetInt(int64(n))

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, ok := data.(int)
		if !ok || n < 0 {
			return typeError(path, "non-negative integer", data)
		}
		if val.OverflowUint(uint64(n)) {
			return fmt.Errorf("toml: %s: %d overflows %s", path, n, val.Type())
		}
		val.SetUint(uint64(n))

	case reflect.Float32, reflect.Float64:
		var f float64
		switch x := data.(type) {
		case float64:
			f = x
		case int:
			f = float64(x)
		default:
			return typeError(path, "number", data)
		}
		if val.Kind() == reflect.Float32 && !math.IsInf(f, 0) && math.Abs(f) > math.MaxFloat32 {
			return fmt.Errorf("toml: %s: %g overflows float32", path, f)
		}
		val.SetFloat(f)

	case reflect.String:
		s, ok := data.(string)
		if !ok {
			return typeError(path, "string", data)
		}
		val.SetString(s)

	case reflect.Bool:
		b, ok := data.(bool)
		if !ok {
			return typeError(path, "boolean", data)
		}
		val.SetBool(b)

	default:
		return fmt.Errorf("toml: %s: unsupported kind %s", path, val.Kind())
	}
	return nil
}

func decodeStruct(data map[string]any, val reflect.Value, path string) error {
	typ := val.Type()
	for i := 0; i < val.NumField(); i++ {
		ft := typ.Field(i)
		if !ft.IsExported() {
			continue
		}
		key, required := ft.Name, false
		if tag := ft.Tag.Get("toml"); tag != "" {
			parts := strings.Split(tag, ",")
			if parts[0] == "-" {
				continue
			}
			if parts[0] != "" {
				key = parts[0]
			}
			for _, opt := range parts[1:] {
				if opt == "required" {
					required = true
				}
			}
		}

		item, ok := data[key]
		if !ok {
			if required {
				return fmt.Errorf("toml: %s: %w", join(path, key), ErrMissingField)
			}
			continue
		}
		if err := decodeValue(item, val.Field(i), join(path, key)); err != nil {
			return err
		}
	}
	return nil
}

func asList(data any) ([]any, bool) {
	switch v := data.(type) {
	case []any:
		return v, true
	case []map[string]any:
		out := make([]any, len(v))
		for i, m := range v {
			out[i] = m
		}
		return out, true
	}
	return nil, false
}

func typeError(path, want string, got any) error {
	return fmt.Errorf("toml: %s: expected %s, got %T", path, want, got)
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
