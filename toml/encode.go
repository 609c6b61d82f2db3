package toml

import (
	"bytes"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// Marshal renders v as TOML. Output is deterministic: keys are emitted
// in sorted order with scalars ahead of sub-tables, so marshalled
// files diff cleanly. Nil pointers and `toml:"-"` fields are skipped,
// omitempty drops zero values. Dates are not supported.
func Marshal(v any) ([]byte, error) {
	rv := unwrap(reflect.ValueOf(v))
	if !rv.IsValid() {
		return nil, fmt.Errorf("toml: cannot marshal nil")
	}
	if rv.Kind() != reflect.Struct && rv.Kind() != reflect.Map {
		return nil, fmt.Errorf("toml: top level must be a struct or map, got %s", rv.Kind())
	}

	w := &writer{}
	if err := w.table(rv, ""); err != nil {
		return nil, err
	}
	return w.buf.Bytes(), nil
}

type writer struct {
	buf bytes.Buffer
}

// table emits one table body: scalar pairs first, then [sub] and
// [[sub]] sections, so every key lands in the table its header names.
func (w *writer) table(rv reflect.Value, path string) error {
	entries, err := tableEntries(rv)
	if err != nil {
		return err
	}

	var sub []entry
	for _, e := range entries {
		if isTableValue(e.val) {
			sub = append(sub, e)
			continue
		}
		w.buf.WriteString(encodeKey(e.key))
		w.buf.WriteString(" = ")
		if err := w.scalar(e.val); err != nil {
			return fmt.Errorf("toml: key %q: %w", e.key, err)
		}
		w.buf.WriteByte('\n')
	}

	for _, e := range sub {
		full := encodeKey(e.key)
		if path != "" {
			full = path + "." + full
		}

		switch e.val.Kind() {
		case reflect.Struct, reflect.Map:
			fmt.Fprintf(&w.buf, "\n[%s]\n", full)
			if err := w.table(e.val, full); err != nil {
				return err
			}

		case reflect.Slice, reflect.Array:
			for i := 0; i < e.val.Len(); i++ {
				el := unwrap(e.val.Index(i))
				if !el.IsValid() {
					continue
				}
				fmt.Fprintf(&w.buf, "\n[[%s]]\n", full)
				if err := w.table(el, full); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// scalar emits one primitive value or inline array.
func (w *writer) scalar(v reflect.Value) error {
	switch v.Kind() {
	case reflect.Bool:
		w.buf.WriteString(strconv.FormatBool(v.Bool()))

	case reflect.String:
		w.buf.WriteString(quoteString(v.String()))

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		w.buf.WriteString(strconv.FormatInt(v.Int(), 10))

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := v.Uint()
		if u > math.MaxInt64 {
			return fmt.Errorf("%d exceeds the int64 range readers decode into", u)
		}
		w.buf.WriteString(strconv.FormatUint(u, 10))

	case reflect.Float32, reflect.Float64:
		f := v.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("non-finite float %v", f)
		}
		bits := 64
		if v.Kind() == reflect.Float32 {
			bits = 32
		}
		s := strconv.FormatFloat(f, 'f', -1, bits)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		w.buf.WriteString(s)

	case reflect.Slice, reflect.Array:
		w.buf.WriteByte('[')
		for i := 0; i < v.Len(); i++ {
			if i > 0 {
				w.buf.WriteString(", ")
			}
			el := unwrap(v.Index(i))
			if !el.IsValid() {
				return fmt.Errorf("nil element at [%d]", i)
			}
			if err := w.scalar(el); err != nil {
				return err
			}
		}
		w.buf.WriteByte(']')

	default:
		return fmt.Errorf("unsupported type %s", v.Type())
	}
	return nil
}

type entry struct {
	key string
	val reflect.Value
}

// tableEntries collects the encodable fields of a struct or the pairs
// of a string-keyed map, sorted by key.
func tableEntries(rv reflect.Value) ([]entry, error) {
	var out []entry

	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("toml: map keys must be strings, have %s", rv.Type().Key())
		}
		for _, k := range rv.MapKeys() {
			v := unwrap(rv.MapIndex(k))
			if !v.IsValid() {
				continue
			}
			out = append(out, entry{key: k.String(), val: v})
		}

	case reflect.Struct:
		t := rv.Type()
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if f.PkgPath != "" {
				continue
			}
			key, omitEmpty, skip := fieldKey(f)
			if skip {
				continue
			}
			v := unwrap(rv.Field(i))
			if !v.IsValid() {
				continue
			}
			if omitEmpty && isEmpty(v) {
				continue
			}
			out = append(out, entry{key: key, val: v})
		}

	default:
		return nil, fmt.Errorf("toml: cannot encode %s as a table", rv.Kind())
	}

	sort.Slice(out, func(i, j int) bool { return out[i].key < out[j].key })
	return out, nil
}

// unwrap follows interfaces and pointers to the concrete value. Nil
// anywhere along the way yields an invalid Value the caller skips.
func unwrap(v reflect.Value) reflect.Value {
	for v.Kind() == reflect.Interface || v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

// isTableValue reports whether v renders as a [table] or [[table
// array]] rather than an inline value.
func isTableValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Struct, reflect.Map:
		return true
	case reflect.Slice, reflect.Array:
		if v.Len() == 0 {
			return false
		}
		el := unwrap(v.Index(0))
		return el.IsValid() && (el.Kind() == reflect.Struct || el.Kind() == reflect.Map)
	}
	return false
}

// isEmpty is the omitempty test: zero scalars and zero-length
// containers are empty, allocated-but-empty included.
func isEmpty(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array, reflect.String:
		return v.Len() == 0
	default:
		return v.IsZero()
	}
}

// encodeKey renders a key bare when the scanner would read it back as
// one; anything else (empty, digit- or sign-led, bool literals,
// punctuation) gets quoted.
func encodeKey(s string) string {
	if isBareKey(s) {
		return s
	}
	return quoteString(s)
}

func isBareKey(s string) bool {
	if s == "" || s == "true" || s == "false" {
		return false
	}
	c0 := s[0]
	if !(c0 >= 'a' && c0 <= 'z' || c0 >= 'A' && c0 <= 'Z' || c0 == '_') {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isWordByte(s[i]) {
			return false
		}
	}
	return true
}

// quoteString renders a basic TOML string with the escape set the
// scanner decodes.
func quoteString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&b, `\u%04X`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}
