package testlog

import (
	"fmt"
	"strings"
)

// OriginalFormatKey names the pair that carries a template's source text.
const OriginalFormatKey = "{OriginalFormat}"

// KeyValue is one named value of a structured message or scope.
type KeyValue struct {
	Key   string
	Value any
}

func (kv KeyValue) String() string {
	return kv.Key + ": " + stringify(kv.Value)
}

// Template is a message template with its arguments bound. Holes are written as
// {Name}; the name may be followed by ",alignment" or ":format", which are kept in
// the pair names' source but not applied. "{{" and "}}" are literal braces.
// Arguments are bound to holes by position.
type Template struct {
	format   string
	args     []any
	names    []string
	rendered string
}

// NewTemplate binds args to the holes of format and renders the result once.
func NewTemplate(format string, args ...any) *Template {
	t := &Template{format: format, args: args}
	t.rendered, t.names = renderTemplate(format, args)
	return t
}

// Format returns the template source.
func (t *Template) Format() string { return t.format }

// String returns the rendered text.
func (t *Template) String() string { return t.rendered }

// KeyValues returns one pair per hole, in order, followed by the original format.
func (t *Template) KeyValues() []KeyValue {
	pairs := make([]KeyValue, 0, len(t.names)+1)
	for i, name := range t.names {
		var v any
		if i < len(t.args) {
			v = t.args[i]
		}
		pairs = append(pairs, KeyValue{Key: name, Value: v})
	}
	return append(pairs, KeyValue{Key: OriginalFormatKey, Value: t.format})
}

// renderTemplate substitutes args into format and returns the hole names it found.
// Holes without an argument are left as written; an unterminated brace is literal.
func renderTemplate(format string, args []any) (string, []string) {
	if !strings.ContainsAny(format, "{}") {
		return format, nil
	}

	var b strings.Builder
	b.Grow(len(format) + 16*len(args))
	var names []string

	for i := 0; i < len(format); i++ {
		c := format[i]
		switch {
		case c == '{' && i+1 < len(format) && format[i+1] == '{':
			b.WriteByte('{')
			i++
		case c == '}' && i+1 < len(format) && format[i+1] == '}':
			b.WriteByte('}')
			i++
		case c == '{':
			end := strings.IndexByte(format[i+1:], '}')
			if end < 0 {
				b.WriteString(format[i:])
				return b.String(), names
			}
			hole := format[i+1 : i+1+end]
			name := hole
			if cut := strings.IndexAny(hole, ",:"); cut >= 0 {
				name = hole[:cut]
			}
			if idx := len(names); idx < len(args) {
				b.WriteString(stringify(args[idx]))
			} else {
				b.WriteString(format[i : i+end+2])
			}
			names = append(names, name)
			i += end + 1
		default:
			b.WriteByte(c)
		}
	}
	return b.String(), names
}

// stringify renders a template argument. Nil renders as "(null)" and string
// slices as comma separated lists.
func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return "(null)"
	case string:
		return val
	case []string:
		return strings.Join(val, ", ")
	case fmt.Stringer:
		return val.String()
	case error:
		return val.Error()
	default:
		return fmt.Sprint(val)
	}
}
