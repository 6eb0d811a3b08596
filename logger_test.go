package testlog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_Emit(t *testing.T) {
	t.Run("writes one formatted block", func(t *testing.T) {
		l, dst := newCaptureLogger(t, "App.Svc", func(o *Options) { o.IncludeScopes = true })
		ctx := WithScopes(context.Background())
		ctx, h1, err := l.BeginScope(ctx, "S1")
		require.NoError(t, err)
		defer h1.Release()
		ctx, h2, err := l.BeginScope(ctx, "S2")
		require.NoError(t, err)
		defer h2.Release()

		err = l.Emit(ctx, LevelWarning, EventID{ID: 7}, "boom", nil, func(state any, _ error) string {
			return state.(string)
		})
		require.NoError(t, err)
		require.Len(t, dst.Lines(), 1)
		assert.Equal(t, "warn: App.Svc[7]\n      => S1 => S2\n      boom", dst.Last())
	})

	t.Run("disabled level never calls the formatter", func(t *testing.T) {
		l, dst := newCaptureLogger(t, "Cat", func(o *Options) { o.MinLevel = LevelWarning })
		err := l.Emit(context.Background(), LevelDebug, EventID{}, nil, nil, func(any, error) string {
			panic("formatter must not run")
		})
		require.NoError(t, err)
		assert.Empty(t, dst.Lines())
	})

	t.Run("nil formatter is rejected", func(t *testing.T) {
		l, dst := newCaptureLogger(t, "Cat", nil)
		err := l.Emit(context.Background(), LevelInformation, EventID{}, "x", nil, nil)
		require.Error(t, err)
		assert.True(t, IsInvalidArgument(err))

		err = l.Emit(context.Background(), LevelTrace, EventID{}, "x", nil, nil)
		require.Error(t, err)
		assert.Empty(t, dst.Lines())
	})

	t.Run("formatter panics reach the caller", func(t *testing.T) {
		l, _ := newCaptureLogger(t, "Cat", nil)
		assert.PanicsWithValue(t, "bad formatter", func() {
			_ = l.Emit(context.Background(), LevelError, EventID{}, nil, nil, func(any, error) string {
				panic("bad formatter")
			})
		})
	})

	t.Run("blank message keeps the header", func(t *testing.T) {
		l, dst := newCaptureLogger(t, emptyString, nil)
		require.NoError(t, l.Emit(context.Background(), LevelInformation, EventID{}, nil, nil, func(any, error) string {
			return "   "
		}))
		require.Len(t, dst.Lines(), 1)
		assert.Equal(t, "info: \n         ", dst.Last())
	})

	t.Run("formatter receives the error", func(t *testing.T) {
		l, dst := newCaptureLogger(t, "Cat", nil)
		cause := errors.New("cause")
		require.NoError(t, l.Emit(context.Background(), LevelError, EventID{}, "state", cause, func(state any, err error) string {
			return fmt.Sprintf("%v/%v", state, err)
		}))
		assert.Contains(t, dst.Last(), "      state/cause\n*errors.errorString: cause")
	})
}

func TestLogger_Levels(t *testing.T) {
	l, dst := newCaptureLogger(t, "Cat", func(o *Options) { o.MinLevel = LevelTrace })
	ctx := context.Background()
	cause := errors.New("failed")

	l.Trace(ctx, "t {N}", 1)
	l.Debug(ctx, "d")
	l.Info(ctx, "i")
	l.Warn(ctx, "w")
	l.Error(ctx, cause, "e")
	l.Critical(ctx, nil, "c")

	lines := dst.Lines()
	require.Len(t, lines, 6)
	for i, prefix := range []string{"trce: Cat\n      t 1", "dbug: ", "info: ", "warn: ", "fail: ", "crit: "} {
		assert.True(t, strings.HasPrefix(lines[i], prefix), lines[i])
	}
	assert.True(t, strings.HasSuffix(lines[4], "\n*errors.errorString: failed"))
}

func TestLogger_IsEnabled(t *testing.T) {
	l, _ := newCaptureLogger(t, "Cat", func(o *Options) { o.MinLevel = LevelWarning })
	assert.False(t, l.IsEnabled(LevelInformation))
	assert.True(t, l.IsEnabled(LevelWarning))
	assert.True(t, l.IsEnabled(LevelCritical))
	assert.False(t, l.IsEnabled(LevelNone))
	assert.Equal(t, LevelWarning, l.MinLevel())
	assert.Equal(t, "Cat", l.Category())
}

func TestLogger_AllowListDisablesCategory(t *testing.T) {
	l, dst := newCaptureLogger(t, "Baz", func(o *Options) { o.Categories = []string{"Foo"} })
	assert.Equal(t, LevelNone, l.MinLevel())
	l.Critical(context.Background(), nil, "never")
	assert.Empty(t, dst.Lines())
}

func TestLogger_NilIsSafe(t *testing.T) {
	var l *Logger
	ctx := context.Background()
	assert.NotPanics(t, func() {
		l.Info(ctx, "x")
		l.Error(ctx, errors.New("x"), "x")
		l.InfoWith(ctx).Str("k", "v").Msg("x")
		l.Dump(ctx, struct{}{})
		_ = l.Emit(ctx, LevelError, EventID{}, nil, nil, func(any, error) string { return "x" })
	})
	assert.Equal(t, LevelNone, l.MinLevel())
	assert.Empty(t, l.Category())
}

func TestLogger_DestinationFailureIsDiscarded(t *testing.T) {
	l, dst := newCaptureLogger(t, "Cat", nil)
	dst.err = errors.New("pipe closed")
	assert.NotPanics(t, func() { l.Info(context.Background(), "lost") })
	require.NoError(t, l.Emit(context.Background(), LevelError, EventID{}, nil, nil, func(any, error) string { return "lost" }))
}

func TestLogger_ConcurrentContexts(t *testing.T) {
	l, dst := newCaptureLogger(t, "Cat", func(o *Options) { o.IncludeScopes = true })

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ctx, h, err := BeginScope(WithScopes(context.Background()), "worker {N}", i)
			if err != nil {
				return
			}
			defer h.Release()
			l.Info(ctx, "from {N}", i)
		}(i)
	}
	wg.Wait()

	lines := dst.Lines()
	require.Len(t, lines, 8)
	for _, line := range lines {
		var n int
		_, err := fmt.Sscanf(line[strings.Index(line, "=> worker "):], "=> worker %d", &n)
		require.NoError(t, err)
		assert.Contains(t, line, fmt.Sprintf("      from %d", n))
		assert.Equal(t, 1, strings.Count(line, "=> "))
	}
}

func TestLogger_With(t *testing.T) {
	l, dst := newCaptureLogger(t, "Cat", nil)
	child := l.With().Str("request_id", "r-1").Int("attempt", 2).Logger()

	child.Info(context.Background(), "handled")
	assert.Equal(t, "info: Cat\n      handled request_id=r-1 attempt=2", dst.Last())

	l.Info(context.Background(), "parent")
	assert.Equal(t, "info: Cat\n      parent", dst.Last())

	grandchild := child.With().Bool("retry", true).Logger()
	grandchild.Info(context.Background(), "again")
	assert.Equal(t, "info: Cat\n      again request_id=r-1 attempt=2 retry=true", dst.Last())
}
