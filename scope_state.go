package testlog

import (
	"sort"
	"strings"

	"github.com/Station-Manager/errors"
)

// ScopeState is the value carried by a scope. It renders to one or more entries of
// the scope line. Implementations: ScopeText, ScopeLines, ScopePairs and *Template.
type ScopeState interface {
	scopeEntries() []string
}

// ScopeText is a plain text scope.
type ScopeText string

// ScopeLines is a list of texts, each shown as its own scope entry.
type ScopeLines []string

// ScopePairs is a list of named values, each shown as "key: value".
type ScopePairs []KeyValue

func (s ScopeText) scopeEntries() []string { return []string{string(s)} }

func (s ScopeLines) scopeEntries() []string { return append([]string(nil), s...) }

func (s ScopePairs) scopeEntries() []string {
	entries := make([]string, 0, len(s))
	for _, kv := range s {
		entries = append(entries, kv.String())
	}
	return entries
}

// join renders the pairs as one entry.
func (s ScopePairs) join() string {
	return strings.Join(s.scopeEntries(), ", ")
}

// A template's pairs are rendered as its single aggregate text.
func (t *Template) scopeEntries() []string { return []string{t.String()} }

// scopeValue wraps any other state and renders it through fmt.
type scopeValue struct {
	v any
}

func (s scopeValue) scopeEntries() []string { return []string{stringify(s.v)} }

// NewScopeState normalises a caller supplied value into a ScopeState. A string with
// args becomes a *Template, a bare string a ScopeText, []string ScopeLines,
// []KeyValue and map[string]any ScopePairs. Anything else renders through fmt.
func NewScopeState(state any, args ...any) (ScopeState, error) {
	const op errors.Op = "testlog.NewScopeState"
	switch s := state.(type) {
	case nil:
		return nil, errors.New(op).Err(ErrNilScopeState).Msg(errMsgNilScopeState)
	case ScopeState:
		if t, ok := s.(*Template); ok && t == nil {
			return nil, errors.New(op).Err(ErrNilScopeState).Msg(errMsgNilScopeState)
		}
		return s, nil
	case string:
		if len(args) > 0 {
			return NewTemplate(s, args...), nil
		}
		return ScopeText(s), nil
	case []string:
		return ScopeLines(s), nil
	case []KeyValue:
		return ScopePairs(s), nil
	case map[string]any:
		return ScopePairs(sortedPairs(s)), nil
	default:
		return scopeValue{v: s}, nil
	}
}

// sortedPairs turns a map into pairs ordered by key.
func sortedPairs(m map[string]any) []KeyValue {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]KeyValue, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, KeyValue{Key: k, Value: m[k]})
	}
	return pairs
}
