package view

import (
	"reflect"
	"strings"
	"sync"
	"unicode"
)

// A Model holds the named values a View renders.
type Model map[string]any

// A Namer names itself when added to a Model without an explicit name.
type Namer interface {
	ModelName() string
}

var names sync.Map // reflect.Type -> string

// RegisterName sets the name values of type T take when added to a Model without an explicit name.
func RegisterName[T any](name string) {
	names.Store(reflect.TypeOf((*T)(nil)).Elem(), name)
}

// NewModel builds a Model out of objs, naming each by NameOf.
//
// nil and empty slices, arrays and maps contribute nothing.
// Elements of non-empty, unnamed slices and arrays are added one by one.
// Maps keyed by strings, including Models, are merged in.
// Later values replace earlier ones of the same name.
func NewModel(objs ...any) Model {
	m := make(Model)
	for _, obj := range objs {
		m.add(obj)
	}

	return m
}

// Add sets the value under name, returning m.
func (m Model) Add(name string, val any) Model {
	m[name] = val
	return m
}

func (m Model) add(obj any) {
	if obj == nil {
		return
	}

	rv := reflect.ValueOf(obj)
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return
		}

	case reflect.Slice, reflect.Array, reflect.Map:
		if rv.Len() == 0 {
			return
		}
	}

	if _, ok := obj.(Namer); ok {
		m[NameOf(obj)] = obj
		return
	}

	switch {
	case (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array) && rv.Type().Name() == "" && rv.Type().Elem().Kind() != reflect.Uint8:
		for i := range rv.Len() {
			m.add(rv.Index(i).Interface())
		}

	case rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String:
		it := rv.MapRange()
		for it.Next() {
			m[it.Key().String()] = it.Value().Interface()
		}

	default:
		m[NameOf(obj)] = obj
	}
}

// NameOf returns the name v takes when added to a Model without an explicit name.
//
// In order of precedence, the name comes from:
// - v's ModelName method
// - a name registered for v's type with RegisterName
// - v's type name, pointers and unnamed slices stripped, in lower camel case
func NameOf(v any) string {
	if n, ok := v.(Namer); ok {
		return n.ModelName()
	}

	t := reflect.TypeOf(v)
	if t == nil {
		return ""
	}

	for {
		if name, ok := names.Load(t); ok {
			return name.(string)
		}

		if t.Kind() == reflect.Pointer {
			t = t.Elem()
			continue
		}

		if t.Name() == "" && (t.Kind() == reflect.Slice || t.Kind() == reflect.Array) {
			if t.Elem().Kind() == reflect.Uint8 {
				return "bytes"
			}

			t = t.Elem()
			continue
		}

		break
	}

	name := t.Name()
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}

	if name == "" {
		name = t.Kind().String()
	}

	return lowerCamel(name)
}

// lowerCamel lowers the leading run of capitals,
// leaving the last one of a run followed by a lowercase letter,
// e.g., "URLSet" becomes "urlSet".
func lowerCamel(s string) string {
	runes := []rune(s)
	for i, r := range runes {
		if !unicode.IsUpper(r) {
			break
		}

		if i > 0 && i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
			break
		}

		runes[i] = unicode.ToLower(r)
	}

	return string(runes)
}
