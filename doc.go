// Package testlog routes leveled, scoped log records from code under test into a
// test's output.
//
// Key features
//   - Per-category minimum levels, either from a static allow-list or from a
//     hierarchical "Logging:LogLevel" configuration (longest prefix wins)
//   - Nested diagnostic scopes carried by context.Context, released with defer
//   - One text block per record: timestamp, colourised severity tag, category,
//     event id, scope chain, message and error
//   - Destinations bound to a single test (testing.TB) or a Broadcaster that
//     tests attach to and detach from around their lifetime
//   - Bridges for zap and zerolog so existing loggers write into the same output
//
// Typical usage
//
//	p, err := testlog.NewTestProvider(t, func(o *testlog.Options) {
//		o.MinLevel = testlog.LevelDebug
//		o.IncludeScopes = true
//	})
//	require.NoError(t, err)
//	log, _ := p.CreateLogger("App.Svc")
//
//	ctx, scope, _ := log.BeginScope(ctx, "request {Id}", id)
//	defer scope.Release()
//	log.Info(ctx, "processed {Count} items", n)
//
// Records that arrive after the owning test has completed are dropped silently;
// test output is best effort.
package testlog
