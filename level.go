package testlog

import (
	"strconv"

	"github.com/Station-Manager/errors"
)

// Level is the severity of a record. Levels are ordered; LevelNone is only a
// resolver result and disables every record of a category.
type Level int

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInformation
	LevelWarning
	LevelError
	LevelCritical
	LevelNone
)

var levelNames = [...]string{
	LevelTrace:       "Trace",
	LevelDebug:       "Debug",
	LevelInformation: "Information",
	LevelWarning:     "Warning",
	LevelError:       "Error",
	LevelCritical:    "Critical",
	LevelNone:        "None",
}

// levelTags are the fixed four character tags written in front of the category.
var levelTags = [...]string{
	LevelTrace:       "trce",
	LevelDebug:       "dbug",
	LevelInformation: "info",
	LevelWarning:     "warn",
	LevelError:       "fail",
	LevelCritical:    "crit",
}

// ParseLevel parses a severity name. Names are matched exactly and are case-sensitive.
func ParseLevel(name string) (Level, error) {
	const op errors.Op = "testlog.ParseLevel"
	for i, n := range levelNames {
		if n == name {
			return Level(i), nil
		}
	}
	return LevelNone, errors.New(op).Err(ErrInvalidLevel).Msg(errMsgInvalidLevel + " (" + strconv.Quote(name) + ")")
}

func (l Level) String() string {
	if l.valid() {
		return levelNames[l]
	}
	return "Level(" + strconv.Itoa(int(l)) + ")"
}

// MarshalText lets Level travel through text based configuration.
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

func (l *Level) UnmarshalText(text []byte) error {
	lvl, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = lvl
	return nil
}

func (l Level) valid() bool {
	return l >= LevelTrace && l <= LevelNone
}

// tag returns the short severity tag, or an empty string for levels that are never emitted.
func (l Level) tag() string {
	if l >= LevelTrace && l < LevelNone {
		return levelTags[l]
	}
	return emptyString
}
