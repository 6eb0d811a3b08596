package testlog

import (
	"context"
	"sort"

	"go.uber.org/zap/zapcore"
)

// ZapCore returns a zapcore.Core that writes through l, so code logging with zap
// shows up in test output. Scopes are read from ctx. Error fields become the
// record's error and every other field is rendered as key=value.
func ZapCore(ctx context.Context, l *Logger) zapcore.Core {
	if ctx == nil {
		ctx = context.Background()
	}
	return &zapCore{ctx: ctx, logger: l}
}

type zapCore struct {
	ctx    context.Context
	logger *Logger
	fields []zapcore.Field
}

// levelFromZap maps zap levels onto Level. The panic and fatal levels are Critical.
func levelFromZap(lvl zapcore.Level) Level {
	switch {
	case lvl < zapcore.DebugLevel:
		return LevelTrace
	case lvl == zapcore.DebugLevel:
		return LevelDebug
	case lvl == zapcore.InfoLevel:
		return LevelInformation
	case lvl == zapcore.WarnLevel:
		return LevelWarning
	case lvl == zapcore.ErrorLevel:
		return LevelError
	default:
		return LevelCritical
	}
}

func (c *zapCore) Enabled(lvl zapcore.Level) bool {
	return c.logger.IsEnabled(levelFromZap(lvl))
}

func (c *zapCore) With(fields []zapcore.Field) zapcore.Core {
	clone := &zapCore{ctx: c.ctx, logger: c.logger}
	clone.fields = make([]zapcore.Field, 0, len(c.fields)+len(fields))
	clone.fields = append(clone.fields, c.fields...)
	clone.fields = append(clone.fields, fields...)
	return clone
}

func (c *zapCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *zapCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	level := levelFromZap(ent.Level)
	if !c.logger.IsEnabled(level) {
		return nil
	}

	var err error
	enc := zapcore.NewMapObjectEncoder()
	for _, group := range [][]zapcore.Field{c.fields, fields} {
		for _, f := range group {
			if f.Type == zapcore.ErrorType && err == nil {
				if e, ok := f.Interface.(error); ok {
					err = e
					continue
				}
			}
			f.AddTo(enc)
		}
	}

	kvs := make([]KeyValue, 0, len(enc.Fields)+1)
	if ent.LoggerName != emptyString {
		kvs = append(kvs, KeyValue{Key: "logger", Value: ent.LoggerName})
	}
	keys := make([]string, 0, len(enc.Fields))
	for k := range enc.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		kvs = append(kvs, KeyValue{Key: k, Value: enc.Fields[k]})
	}

	c.logger.write(c.ctx, level, EventID{}, appendFields(ent.Message, kvs), err)
	return nil
}

func (c *zapCore) Sync() error { return nil }
