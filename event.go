package testlog

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// LogEvent builds one structured record. Fields are rendered as key=value pairs
// after the message. Nothing is rendered when the level is disabled.
type LogEvent interface {
	Str(key, val string) LogEvent
	Strs(key string, vals []string) LogEvent
	Stringer(key string, val fmt.Stringer) LogEvent
	Int(key string, val int) LogEvent
	Int64(key string, val int64) LogEvent
	Uint(key string, val uint) LogEvent
	Uint64(key string, val uint64) LogEvent
	Float64(key string, val float64) LogEvent
	Bool(key string, val bool) LogEvent
	Time(key string, val time.Time) LogEvent
	Dur(key string, val time.Duration) LogEvent
	// Err attaches err as the record's error, rendered below the message.
	Err(err error) LogEvent
	// AnErr adds err as a field holding its whole cause chain.
	AnErr(key string, err error) LogEvent
	Interface(key string, val any) LogEvent
	EventID(id EventID) LogEvent
	Msg(msg string)
	Msgf(format string, v ...any)
	Send()
}

// LogContext builds a child logger whose records all carry the given fields.
type LogContext interface {
	Str(key, val string) LogContext
	Int(key string, val int) LogContext
	Bool(key string, val bool) LogContext
	Interface(key string, val any) LogContext
	Logger() *Logger
}

// logEvent implements LogEvent. A nil logger makes every method a no-op.
type logEvent struct {
	logger  *Logger
	ctx     context.Context
	level   Level
	eventID EventID
	err     error
	fields  []KeyValue
}

var noopEvent = &logEvent{}

func newLogEvent(ctx context.Context, l *Logger, level Level) LogEvent {
	if !l.IsEnabled(level) {
		return noopEvent
	}
	return &logEvent{logger: l, ctx: ctx, level: level}
}

func (l *Logger) TraceWith(ctx context.Context) LogEvent { return newLogEvent(ctx, l, LevelTrace) }
func (l *Logger) DebugWith(ctx context.Context) LogEvent { return newLogEvent(ctx, l, LevelDebug) }
func (l *Logger) InfoWith(ctx context.Context) LogEvent { return newLogEvent(ctx, l, LevelInformation) }
func (l *Logger) WarnWith(ctx context.Context) LogEvent { return newLogEvent(ctx, l, LevelWarning) }
func (l *Logger) ErrorWith(ctx context.Context) LogEvent { return newLogEvent(ctx, l, LevelError) }

func (l *Logger) CriticalWith(ctx context.Context) LogEvent {
	return newLogEvent(ctx, l, LevelCritical)
}

func (e *logEvent) add(key string, val any) LogEvent {
	if e.logger != nil {
		e.fields = append(e.fields, KeyValue{Key: key, Value: val})
	}
	return e
}

func (e *logEvent) Str(key, val string) LogEvent { return e.add(key, val) }
func (e *logEvent) Strs(key string, vals []string) LogEvent { return e.add(key, vals) }
func (e *logEvent) Stringer(key string, val fmt.Stringer) LogEvent { return e.add(key, val) }
func (e *logEvent) Int(key string, val int) LogEvent { return e.add(key, val) }
func (e *logEvent) Int64(key string, val int64) LogEvent { return e.add(key, val) }
func (e *logEvent) Uint(key string, val uint) LogEvent { return e.add(key, val) }
func (e *logEvent) Uint64(key string, val uint64) LogEvent { return e.add(key, val) }
func (e *logEvent) Float64(key string, val float64) LogEvent { return e.add(key, val) }
func (e *logEvent) Bool(key string, val bool) LogEvent { return e.add(key, val) }
func (e *logEvent) Time(key string, val time.Time) LogEvent {
	return e.add(key, val.Format(time.RFC3339Nano))
}
func (e *logEvent) Dur(key string, val time.Duration) LogEvent { return e.add(key, val) }
func (e *logEvent) Interface(key string, val any) LogEvent { return e.add(key, val) }

func (e *logEvent) Err(err error) LogEvent {
	if e.logger != nil && err != nil {
		e.err = err
	}
	return e
}

func (e *logEvent) AnErr(key string, err error) LogEvent {
	if e.logger == nil || err == nil {
		return e
	}
	return e.add(key, joinChain(buildErrorChain(err)))
}

func (e *logEvent) EventID(id EventID) LogEvent {
	if e.logger != nil {
		e.eventID = id
	}
	return e
}

func (e *logEvent) Msg(msg string) {
	if e.logger == nil {
		return
	}
	e.logger.write(e.ctx, e.level, e.eventID, appendFields(msg, e.fields), e.err)
}

func (e *logEvent) Msgf(format string, v ...any) {
	if e.logger == nil {
		return
	}
	e.Msg(fmt.Sprintf(format, v...))
}

func (e *logEvent) Send() { e.Msg(emptyString) }

// appendFields renders fields after msg as key=value pairs. Values with spaces,
// quotes or nothing at all are quoted.
func appendFields(msg string, fields []KeyValue) string {
	if len(fields) == 0 {
		return msg
	}
	var b strings.Builder
	b.WriteString(msg)
	for _, kv := range fields {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(kv.Key)
		b.WriteByte('=')
		val := stringify(kv.Value)
		if val == emptyString || strings.ContainsAny(val, " \t\n\"=") {
			val = strconv.Quote(val)
		}
		b.WriteString(val)
	}
	return b.String()
}

// logContext implements LogContext.
type logContext struct {
	parent *Logger
	fields []KeyValue
}

// With starts a child logger. The child shares the category, level and provider.
func (l *Logger) With() LogContext {
	c := &logContext{parent: l}
	if l != nil {
		c.fields = append([]KeyValue(nil), l.fields...)
	}
	return c
}

func (c *logContext) Str(key, val string) LogContext { return c.add(key, val) }
func (c *logContext) Int(key string, val int) LogContext { return c.add(key, val) }
func (c *logContext) Bool(key string, val bool) LogContext { return c.add(key, val) }
func (c *logContext) Interface(key string, val any) LogContext { return c.add(key, val) }

func (c *logContext) add(key string, val any) LogContext {
	c.fields = append(c.fields, KeyValue{Key: key, Value: val})
	return c
}

func (c *logContext) Logger() *Logger {
	if c.parent == nil {
		return nil
	}
	child := *c.parent
	child.fields = c.fields
	return &child
}
