package testlog

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"
)

const (
	dumpRoot        = "Dump"
	maxDumpDepth    = 10
	maxDumpElements = 10
)

// Dump writes the contents of v as a single Debug record, one line per value.
// Exported struct fields, map entries (sorted by key) and the first elements of
// slices are walked recursively. Cycles and deep nesting are cut short.
func (l *Logger) Dump(ctx context.Context, v any) {
	if !l.IsEnabled(LevelDebug) {
		return
	}

	d := &dumper{visited: make(map[uintptr]bool)}
	if v == nil {
		d.line("%s: <nil>", dumpRoot)
	} else {
		d.walk(reflect.ValueOf(v), emptyString, 0)
	}
	l.write(ctx, LevelDebug, EventID{}, strings.Join(d.lines, newLine), nil)
}

type dumper struct {
	lines   []string
	visited map[uintptr]bool
}

func (d *dumper) line(format string, args ...any) {
	d.lines = append(d.lines, fmt.Sprintf(format, args...))
}

func (d *dumper) walk(val reflect.Value, prefix string, depth int) {
	if prefix == emptyString && indirect(val).Kind() != reflect.Struct {
		prefix = dumpRoot
	}
	if depth > maxDumpDepth {
		d.line("%s: <max depth reached>", prefix)
		return
	}

	for val.Kind() == reflect.Interface || val.Kind() == reflect.Pointer {
		if val.IsNil() {
			d.line("%s: <nil>", prefix)
			return
		}
		if val.Kind() == reflect.Pointer {
			ptr := val.Pointer()
			if d.visited[ptr] {
				d.line("%s: <circular reference>", prefix)
				return
			}
			d.visited[ptr] = true
		}
		val = val.Elem()
	}
	if !val.IsValid() {
		d.line("%s: <nil>", prefix)
		return
	}

	typ := val.Type()
	switch val.Kind() {
	case reflect.Struct:
		if prefix == emptyString {
			d.line("Struct: %s", typ.Name())
		} else {
			d.line("%s: %s {", prefix, typ.Name())
		}
		for i := 0; i < val.NumField(); i++ {
			field := typ.Field(i)
			if !field.IsExported() {
				continue
			}
			name := field.Name
			if prefix != emptyString {
				name = prefix + "." + field.Name
			}
			d.walk(val.Field(i), name, depth+1)
		}
		if prefix != emptyString {
			d.line("%s: }", prefix)
		}

	case reflect.Map:
		d.line("%s: map[%s]%s (len: %d) {", prefix, typ.Key(), typ.Elem(), val.Len())
		keys := val.MapKeys()
		names := make([]string, len(keys))
		for i, k := range keys {
			names[i] = fmt.Sprint(k.Interface())
		}
		order := make([]int, len(keys))
		for i := range order {
			order[i] = i
		}
		sort.SliceStable(order, func(a, b int) bool { return names[order[a]] < names[order[b]] })
		for _, i := range order {
			d.walk(val.MapIndex(keys[i]), prefix+"["+names[i]+"]", depth+1)
		}
		d.line("%s: }", prefix)

	case reflect.Slice, reflect.Array:
		if val.Kind() == reflect.Slice && val.IsNil() {
			d.line("%s: <nil>", prefix)
			return
		}
		d.line("%s: %s (len: %d, cap: %d) {", prefix, typ, val.Len(), val.Cap())
		for i := 0; i < val.Len() && i < maxDumpElements; i++ {
			d.walk(val.Index(i), fmt.Sprintf("%s[%d]", prefix, i), depth+1)
		}
		if val.Len() > maxDumpElements {
			d.line("%s: ... (%d more elements)", prefix, val.Len()-maxDumpElements)
		}
		d.line("%s: }", prefix)

	default:
		if val.CanInterface() {
			d.line("%s: %v", prefix, val.Interface())
		} else {
			d.line("%s: %v", prefix, val)
		}
	}
}

func indirect(val reflect.Value) reflect.Value {
	for i := 0; i < maxDumpDepth && (val.Kind() == reflect.Interface || val.Kind() == reflect.Pointer) && !val.IsNil(); i++ {
		val = val.Elem()
	}
	return val
}
