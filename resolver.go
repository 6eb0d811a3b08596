package testlog

import (
	"sort"
	"strings"

	"github.com/Station-Manager/errors"
)

// ConfigSource is a hierarchical key/value configuration. *koanf.Koanf satisfies it.
type ConfigSource interface {
	// StringMap returns the direct children of path as key -> value.
	StringMap(path string) map[string]string
}

// levelRule is one category prefix of the hierarchical configuration.
type levelRule struct {
	prefix string
	level  Level
}

// LevelResolver computes the minimum level of a category. It runs in one of two
// modes fixed at construction: hierarchical (configured prefixes, longest match
// wins, Default as fallback) or static (a flat level and a category allow-list).
type LevelResolver struct {
	hierarchical bool
	rules        []levelRule
	fallback     Level
	hasFallback  bool

	minLevel   Level
	categories []string
}

// NewLevelResolver builds a resolver. With a non-nil source the LogLevelSection of
// the source is parsed now, so an unknown level name or a missing Default entry fails
// here. Without a source the resolver uses minLevel and categories.
func NewLevelResolver(source ConfigSource, minLevel Level, categories []string) (*LevelResolver, error) {
	const op errors.Op = "testlog.NewLevelResolver"
	r := &LevelResolver{
		minLevel:   minLevel,
		categories: append([]string(nil), categories...),
	}
	if source == nil {
		return r, nil
	}

	r.hierarchical = true
	entries := source.StringMap(LogLevelSection)

	// Sorted so that the first longest match is stable across runs.
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		lvl, err := ParseLevel(strings.TrimSpace(entries[key]))
		if err != nil {
			return nil, errors.New(op).Err(err).Msg(errMsgInvalidLevel + " (" + LogLevelSection + configDelimiter + key + ")")
		}
		if key == DefaultCategoryKey {
			r.fallback = lvl
			r.hasFallback = true
		}
		r.rules = append(r.rules, levelRule{prefix: key, level: lvl})
	}

	if len(r.rules) > 0 && !r.hasFallback {
		return nil, errors.New(op).Err(ErrMissingDefault).Msg(errMsgMissingDefault)
	}
	return r, nil
}

// Hierarchical reports whether the resolver is driven by a configuration source.
func (r *LevelResolver) Hierarchical() bool { return r.hierarchical }

// Resolve returns the minimum level for category.
func (r *LevelResolver) Resolve(category string) Level {
	if r.hierarchical {
		return r.resolveHierarchical(category)
	}
	return r.resolveStatic(category)
}

// resolveHierarchical picks the longest configured prefix of category. Rules are
// sorted by prefix, so among equally long matches the lexically first wins; two
// distinct prefixes of equal length can't both prefix one category, so the tie
// never changes the result. An empty section leaves the static minimum in place.
func (r *LevelResolver) resolveHierarchical(category string) Level {
	if len(r.rules) == 0 {
		return r.minLevel
	}

	best := -1
	for i, rule := range r.rules {
		if !strings.HasPrefix(category, rule.prefix) {
			continue
		}
		if best < 0 || len(rule.prefix) > len(r.rules[best].prefix) {
			best = i
		}
	}
	if best < 0 {
		return r.fallback
	}
	return r.rules[best].level
}

// resolveStatic returns the flat minimum unless an allow-list is set and no entry
// prefixes category, in which case the category is disabled.
func (r *LevelResolver) resolveStatic(category string) Level {
	if len(r.categories) == 0 {
		return r.minLevel
	}
	for _, prefix := range r.categories {
		if strings.HasPrefix(category, prefix) {
			return r.minLevel
		}
	}
	return LevelNone
}
