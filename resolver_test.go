package testlog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelResolver_Hierarchical(t *testing.T) {
	source := mapSource{"A": "Warning", "A.B": "Debug", "Default": "Error"}
	r, err := NewLevelResolver(source, LevelInformation, nil)
	require.NoError(t, err)
	require.True(t, r.Hierarchical())

	tests := []struct {
		category string
		want     Level
	}{
		{"A.B.C", LevelDebug},
		{"A.B", LevelDebug},
		{"A", LevelWarning},
		{"AX", LevelWarning},
		{"X", LevelError},
		{"", LevelError},
	}
	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Resolve(tt.category))
		})
	}
}

func TestLevelResolver_HierarchicalErrors(t *testing.T) {
	t.Run("unknown level name", func(t *testing.T) {
		_, err := NewLevelResolver(mapSource{"Default": "Loud"}, LevelInformation, nil)
		require.Error(t, err)
		assert.True(t, IsConfigError(err))
	})

	t.Run("missing default", func(t *testing.T) {
		_, err := NewLevelResolver(mapSource{"App": "Debug"}, LevelInformation, nil)
		require.Error(t, err)
		assert.True(t, IsConfigError(err))
		assert.Contains(t, err.Error(), errMsgMissingDefault)
	})

	t.Run("empty section uses minimum", func(t *testing.T) {
		r, err := NewLevelResolver(mapSource{}, LevelWarning, nil)
		require.NoError(t, err)
		assert.Equal(t, LevelWarning, r.Resolve("Anything"))
	})

	t.Run("values are trimmed", func(t *testing.T) {
		r, err := NewLevelResolver(mapSource{"Default": " Trace "}, LevelWarning, nil)
		require.NoError(t, err)
		assert.Equal(t, LevelTrace, r.Resolve("Anything"))
	})
}

func TestLevelResolver_DefaultIsAlsoAPrefix(t *testing.T) {
	r, err := NewLevelResolver(mapSource{"Default": "Error", "Def": "Trace"}, LevelInformation, nil)
	require.NoError(t, err)

	assert.Equal(t, LevelError, r.Resolve("DefaultHandler"))
	assert.Equal(t, LevelTrace, r.Resolve("Define"))
}

func TestLevelResolver_TieBreakIsDeterministic(t *testing.T) {
	source := mapSource{"Default": "Error", "App.X": "Debug", "App.Y": "Trace", "App": "Warning"}
	for i := 0; i < 20; i++ {
		r, err := NewLevelResolver(source, LevelInformation, nil)
		require.NoError(t, err)
		assert.Equal(t, LevelDebug, r.Resolve("App.X.Svc"))
		assert.Equal(t, LevelTrace, r.Resolve("App.Y.Svc"))
		assert.Equal(t, LevelWarning, r.Resolve("App.Z"))
	}
}

func TestLevelResolver_Static(t *testing.T) {
	t.Run("empty allow-list is unrestricted", func(t *testing.T) {
		r, err := NewLevelResolver(nil, LevelDebug, nil)
		require.NoError(t, err)
		assert.False(t, r.Hierarchical())
		for _, c := range []string{"", "Foo", "Bar.Baz"} {
			assert.Equal(t, LevelDebug, r.Resolve(c))
		}
	})

	t.Run("allow-list filters by prefix", func(t *testing.T) {
		r, err := NewLevelResolver(nil, LevelInformation, []string{"Foo"})
		require.NoError(t, err)
		assert.Equal(t, LevelInformation, r.Resolve("FooBar"))
		assert.Equal(t, LevelInformation, r.Resolve("Foo"))
		assert.Equal(t, LevelNone, r.Resolve("Baz"))
	})

	t.Run("categories are copied", func(t *testing.T) {
		cats := []string{"Foo"}
		r, err := NewLevelResolver(nil, LevelInformation, cats)
		require.NoError(t, err)
		cats[0] = "Baz"
		assert.Equal(t, LevelNone, r.Resolve("Baz"))
	})
}
