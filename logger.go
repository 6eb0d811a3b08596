package testlog

import (
	"context"
	"strings"

	"github.com/Station-Manager/errors"
)

// Logger writes the records of one category. Its minimum level is resolved once,
// when the provider creates it. A nil *Logger discards everything.
type Logger struct {
	category string
	minLevel Level
	provider *Provider
	// fields are appended to every message, see With.
	fields []KeyValue
}

// Category returns the category name records are written under.
func (l *Logger) Category() string {
	if l == nil {
		return emptyString
	}
	return l.category
}

// MinLevel returns the resolved minimum level; LevelNone means fully disabled.
func (l *Logger) MinLevel() Level {
	if l == nil {
		return LevelNone
	}
	return l.minLevel
}

// IsEnabled reports whether records of level would be written.
func (l *Logger) IsEnabled(level Level) bool {
	if l == nil || l.provider == nil {
		return false
	}
	return level >= l.minLevel && level < LevelNone
}

// Emit writes one record. The formatter is only called when level is enabled, and
// a panic inside it reaches the caller. A nil formatter is rejected even for
// disabled levels. Failures of the destination are never returned.
func (l *Logger) Emit(ctx context.Context, level Level, eventID EventID, state any, err error, formatter MessageFormatter) error {
	const op errors.Op = "testlog.Logger.Emit"
	if formatter == nil {
		return errors.New(op).Err(ErrNilFormatter).Msg(errMsgNilFormatter)
	}
	if !l.IsEnabled(level) {
		return nil
	}

	l.write(ctx, level, eventID, formatter(state, err), err)
	return nil
}

// Log renders template with args and writes it with eventID and err attached.
func (l *Logger) Log(ctx context.Context, level Level, eventID EventID, err error, template string, args ...any) {
	if !l.IsEnabled(level) {
		return
	}
	l.write(ctx, level, eventID, NewTemplate(template, args...).String(), err)
}

func (l *Logger) Trace(ctx context.Context, template string, args ...any) {
	l.Log(ctx, LevelTrace, EventID{}, nil, template, args...)
}

func (l *Logger) Debug(ctx context.Context, template string, args ...any) {
	l.Log(ctx, LevelDebug, EventID{}, nil, template, args...)
}

func (l *Logger) Info(ctx context.Context, template string, args ...any) {
	l.Log(ctx, LevelInformation, EventID{}, nil, template, args...)
}

func (l *Logger) Warn(ctx context.Context, template string, args ...any) {
	l.Log(ctx, LevelWarning, EventID{}, nil, template, args...)
}

// Error writes an Error record; err, when not nil, is rendered below the message.
func (l *Logger) Error(ctx context.Context, err error, template string, args ...any) {
	l.Log(ctx, LevelError, EventID{}, err, template, args...)
}

// Critical writes a Critical record; err, when not nil, is rendered below the message.
func (l *Logger) Critical(ctx context.Context, err error, template string, args ...any) {
	l.Log(ctx, LevelCritical, EventID{}, err, template, args...)
}

// BeginScope begins a scope on ctx. See the package level BeginScope.
func (l *Logger) BeginScope(ctx context.Context, state any, args ...any) (context.Context, *ScopeHandle, error) {
	return BeginScope(ctx, state, args...)
}

// write formats the record and hands it to the destination in one call.
func (l *Logger) write(ctx context.Context, level Level, eventID EventID, msg string, err error) {
	p := l.provider
	if p.isClosed.Load() {
		p.diagnostics().Debug().Str("category", l.category).Msg(errMsgProviderClosed)
		return
	}

	opts := p.opts
	rec := Record{
		Time:     p.now(),
		Level:    level,
		Category: l.category,
		EventID:  eventID,
		Message:  appendFields(msg, l.fields),
		Err:      err,
	}
	if opts.IncludeScopes {
		rec.Scopes = scopeEntries(ctx)
		if opts.IncludeTraceContext {
			if entry, ok := traceEntry(ctx); ok {
				rec.Scopes = append(rec.Scopes, entry)
			}
		}
	}

	text := FormatRecord(rec, opts)
	if strings.TrimSpace(text) == emptyString {
		return
	}

	if werr := p.dst.WriteLine(text); werr != nil {
		p.discarded(l.category, level, werr)
	}
}
