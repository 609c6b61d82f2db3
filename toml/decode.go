package toml

import (
	"fmt"
	"reflect"
	"strings"
)

// Unmarshal parses src and stores the result in the value pointed to
// by v. Struct fields map through `toml:"name"` tags, falling back to
// the Go field name; document keys without a matching field are
// ignored.
func Unmarshal(src []byte, v any) error {
	tree, err := parse(src)
	if err != nil {
		return err
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("toml: unmarshal target must be a non-nil pointer")
	}
	return assign(rv.Elem(), tree)
}

// assign writes one parsed value into dst, recursing through structs,
// maps, slices and pointers.
func assign(dst reflect.Value, src any) error {
	if src == nil {
		return nil
	}

	switch dst.Kind() {
	case reflect.Pointer:
		el := reflect.New(dst.Type().Elem())
		if err := assign(el.Elem(), src); err != nil {
			return err
		}
		dst.Set(el)

	case reflect.Struct:
		m, ok := src.(map[string]any)
		if !ok {
			return fmt.Errorf("toml: cannot decode %T into %s", src, dst.Type())
		}
		return assignStruct(dst, m)

	case reflect.Map:
		return assignMap(dst, src)

	case reflect.Slice:
		return assignSlice(dst, src)

	case reflect.Interface:
		dst.Set(reflect.ValueOf(src))

	case reflect.String:
		s, ok := src.(string)
		if !ok {
			return fmt.Errorf("toml: cannot decode %T into string", src)
		}
		dst.SetString(s)

	case reflect.Bool:
		b, ok := src.(bool)
		if !ok {
			return fmt.Errorf("toml: cannot decode %T into bool", src)
		}
		dst.SetBool(b)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, ok := src.(int64)
		if !ok {
			return fmt.Errorf("toml: cannot decode %T into %s", src, dst.Type())
		}
		if dst.OverflowInt(n) {
			return fmt.Errorf("toml: %d overflows %s", n, dst.Type())
		}
		dst.SetInt(n)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, ok := src.(int64)
		if !ok || n < 0 {
			return fmt.Errorf("toml: cannot decode %T %v into %s", src, src, dst.Type())
		}
		if dst.OverflowUint(uint64(n)) {
			return fmt.Errorf("toml: %d overflows %s", n, dst.Type())
		}
		dst.SetUint(uint64(n))

	case reflect.Float32, reflect.Float64:
		var f float64
		switch n := src.(type) {
		case float64:
			f = n
		case int64:
			f = float64(n)
		default:
			return fmt.Errorf("toml: cannot decode %T into %s", src, dst.Type())
		}
		dst.SetFloat(f)

	default:
		return fmt.Errorf("toml: unsupported target type %s", dst.Type())
	}
	return nil
}

func assignStruct(dst reflect.Value, src map[string]any) error {
	t := dst.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" {
			continue // unexported
		}
		key, _, skip := fieldKey(f)
		if skip {
			continue
		}
		v, ok := src[key]
		if !ok {
			continue
		}
		if err := assign(dst.Field(i), v); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}
	return nil
}

func assignMap(dst reflect.Value, src any) error {
	if dst.Type().Key().Kind() != reflect.String {
		return fmt.Errorf("toml: map target must have string keys, has %s", dst.Type().Key())
	}
	m, ok := src.(map[string]any)
	if !ok {
		return fmt.Errorf("toml: cannot decode %T into %s", src, dst.Type())
	}

	out := reflect.MakeMapWithSize(dst.Type(), len(m))
	elemType := dst.Type().Elem()
	for k, v := range m {
		el := reflect.New(elemType).Elem()
		if err := assign(el, v); err != nil {
			return fmt.Errorf("%s: %w", k, err)
		}
		out.SetMapIndex(reflect.ValueOf(k), el)
	}
	dst.Set(out)
	return nil
}

func assignSlice(dst reflect.Value, src any) error {
	var items []any
	switch s := src.(type) {
	case []any:
		items = s
	case []map[string]any:
		// arrays of tables arrive in their concrete shape
		items = make([]any, len(s))
		for i, m := range s {
			items[i] = m
		}
	default:
		return fmt.Errorf("toml: cannot decode %T into %s", src, dst.Type())
	}

	out := reflect.MakeSlice(dst.Type(), len(items), len(items))
	for i, item := range items {
		if err := assign(out.Index(i), item); err != nil {
			return fmt.Errorf("[%d]: %w", i, err)
		}
	}
	dst.Set(out)
	return nil
}

// fieldKey resolves a struct field's document key from its toml tag.
// The second result reports omitempty, the third that the field is
// excluded with `toml:"-"`.
func fieldKey(f reflect.StructField) (key string, omitEmpty, skip bool) {
	tag, ok := f.Tag.Lookup("toml")
	if !ok {
		return f.Name, false, false
	}
	name, rest, _ := strings.Cut(tag, ",")
	if name == "-" && rest == "" {
		return "", false, true
	}
	if name == "" {
		name = f.Name
	}
	return name, strings.Contains(rest, "omitempty"), false
}
