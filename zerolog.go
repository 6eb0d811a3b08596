package testlog

import (
	"bytes"
	"context"
	"fmt"
	"sort"

	"github.com/Station-Manager/errors"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// ZerologWriter returns a zerolog.LevelWriter that writes through l, so code
// logging with zerolog shows up in test output:
//
//	zl := zerolog.New(testlog.ZerologWriter(ctx, logger))
//
// Each JSON record is decoded; the message and error fields become the record's
// message and error, the level and time fields are dropped and every other field
// is rendered as key=value, sorted by key.
func ZerologWriter(ctx context.Context, l *Logger) zerolog.LevelWriter {
	if ctx == nil {
		ctx = context.Background()
	}
	return &zerologWriter{ctx: ctx, logger: l}
}

type zerologWriter struct {
	ctx    context.Context
	logger *Logger
}

// bridgedError carries an error that reached us only as text.
type bridgedError string

func (e bridgedError) Error() string { return string(e) }

// levelFromZerolog maps zerolog levels onto Level. Records without a level are
// Information; panic and fatal records are Critical.
func levelFromZerolog(lvl zerolog.Level) Level {
	switch lvl {
	case zerolog.TraceLevel:
		return LevelTrace
	case zerolog.DebugLevel:
		return LevelDebug
	case zerolog.InfoLevel, zerolog.NoLevel:
		return LevelInformation
	case zerolog.WarnLevel:
		return LevelWarning
	case zerolog.ErrorLevel:
		return LevelError
	case zerolog.FatalLevel, zerolog.PanicLevel:
		return LevelCritical
	default:
		if lvl < zerolog.TraceLevel {
			return LevelTrace
		}
		return LevelNone
	}
}

// Write reads the level from the record itself.
func (w *zerologWriter) Write(p []byte) (int, error) {
	lvl := zerolog.NoLevel
	var head struct {
		Level string `json:"level"`
	}
	if err := json.Unmarshal(p, &head); err == nil && head.Level != emptyString {
		if parsed, perr := zerolog.ParseLevel(head.Level); perr == nil {
			lvl = parsed
		}
	}
	return w.WriteLevel(lvl, p)
}

func (w *zerologWriter) WriteLevel(lvl zerolog.Level, p []byte) (int, error) {
	const op errors.Op = "testlog.zerologWriter.WriteLevel"
	level := levelFromZerolog(lvl)
	if !w.logger.IsEnabled(level) {
		return len(p), nil
	}

	fields := map[string]any{}
	dec := json.NewDecoder(bytes.NewReader(p))
	dec.UseNumber()
	if err := dec.Decode(&fields); err != nil {
		return 0, errors.New(op).Err(err).Msg(errMsgZerologDecode)
	}

	msg := emptyString
	if v, ok := fields[zerolog.MessageFieldName]; ok {
		msg = fmt.Sprint(v)
	}
	var recErr error
	if v, ok := fields[zerolog.ErrorFieldName]; ok {
		if s, isString := v.(string); isString {
			recErr = bridgedError(s)
			delete(fields, zerolog.ErrorFieldName)
		}
	}
	delete(fields, zerolog.MessageFieldName)
	delete(fields, zerolog.LevelFieldName)
	delete(fields, zerolog.TimestampFieldName)

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	kvs := make([]KeyValue, 0, len(keys))
	for _, k := range keys {
		kvs = append(kvs, KeyValue{Key: k, Value: fields[k]})
	}

	w.logger.write(w.ctx, level, EventID{}, appendFields(msg, kvs), recErr)
	return len(p), nil
}
