package testlog

import (
	"strconv"
	"strings"
	"time"
)

// EventID identifies a kind of record. The zero value means "no event id".
type EventID struct {
	ID   int
	Name string
}

// IsZero reports whether the id carries neither a number nor a name.
func (e EventID) IsZero() bool { return e.ID == 0 && e.Name == emptyString }

// String returns the name when set, otherwise the number.
func (e EventID) String() string {
	if e.Name != emptyString {
		return e.Name
	}
	return strconv.Itoa(e.ID)
}

// Record is one log event ready to be rendered.
type Record struct {
	// Time is filled in at format time when zero.
	Time     time.Time
	Level    Level
	Category string
	EventID  EventID
	// Scopes are the flattened scope entries, oldest first.
	Scopes  []string
	Message string
	Err     error
}

// FormatRecord renders rec as one text block:
//
//	[<timestamp>] <tag>: <category>[<event id>]
//	      => <scope> => <scope>
//	      <message>
//	<error>
//
// The timestamp, scope and error lines are optional; the tag is coloured per
// opts.ColorBehavior.
func FormatRecord(rec Record, opts Options) string {
	if rec.Time.IsZero() {
		rec.Time = time.Now()
	}

	var b strings.Builder
	b.Grow(64 + len(rec.Category) + len(rec.Message))

	if opts.IncludeTimestamp {
		layout := opts.TimestampFormat
		if layout == emptyString {
			layout = DefaultTimestampFormat
		}
		b.WriteByte('[')
		b.WriteString(rec.Time.Local().Format(layout))
		b.WriteString("] ")
	}

	writeColored(&b, rec.Level.tag(), colorsFor(rec.Level), opts.ColorBehavior)
	b.WriteString(": ")
	b.WriteString(rec.Category)
	if !rec.EventID.IsZero() {
		b.WriteByte('[')
		b.WriteString(rec.EventID.String())
		b.WriteByte(']')
	}
	b.WriteString(newLine)

	if opts.IncludeScopes && len(rec.Scopes) > 0 {
		b.WriteString(padding)
		for i, entry := range rec.Scopes {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString("=> ")
			b.WriteString(entry)
		}
		b.WriteString(newLine)
	}

	b.WriteString(padding)
	b.WriteString(rec.Message)

	if rec.Err != nil {
		b.WriteString(newLine)
		b.WriteString(describeError(rec.Err))
	}

	return b.String()
}
