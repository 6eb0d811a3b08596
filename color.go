package testlog

import (
	"os"
	"strings"
)

// ColorBehavior selects whether severity tags are wrapped in ANSI colour sequences.
type ColorBehavior int

const (
	// ColorDefault colours only when ColorSignalEnv or RiderHostEnv says the output
	// is rendered by an ANSI capable viewer.
	ColorDefault ColorBehavior = iota
	ColorEnabled
	ColorDisabled
)

var colorBehaviorNames = [...]string{
	ColorDefault:  "Default",
	ColorEnabled:  "Enabled",
	ColorDisabled: "Disabled",
}

func (c ColorBehavior) String() string {
	if c >= ColorDefault && c <= ColorDisabled {
		return colorBehaviorNames[c]
	}
	return "ColorBehavior(?)"
}

// ParseColorBehavior parses Default, Enabled or Disabled, ignoring case.
func ParseColorBehavior(name string) (ColorBehavior, bool) {
	for i, n := range colorBehaviorNames {
		if strings.EqualFold(n, name) {
			return ColorBehavior(i), true
		}
	}
	return ColorDefault, false
}

// resolve turns ColorDefault into Enabled or Disabled. It is read on every record
// so the signal can change between tests.
func (c ColorBehavior) resolve() ColorBehavior {
	if c != ColorDefault {
		return c
	}
	if os.Getenv(ColorSignalEnv) != emptyString || os.Getenv(RiderHostEnv) == RiderHost {
		return ColorEnabled
	}
	return ColorDisabled
}

// consoleColor is the palette severity tags are drawn from.
type consoleColor int

const (
	colorBlack consoleColor = iota
	colorDarkRed
	colorDarkGreen
	colorDarkYellow
	colorDarkBlue
	colorDarkMagenta
	colorDarkCyan
	colorGray
	colorRed
	colorGreen
	colorYellow
	colorBlue
	colorMagenta
	colorCyan
	colorWhite
)

const (
	ansiDefaultForeground = "\x1b[39m\x1b[22m"
	ansiDefaultBackground = "\x1b[49m"
)

var ansiForeground = map[consoleColor]string{
	colorBlack:       "\x1b[30m",
	colorDarkRed:     "\x1b[31m",
	colorDarkGreen:   "\x1b[32m",
	colorDarkYellow:  "\x1b[33m",
	colorDarkBlue:    "\x1b[34m",
	colorDarkMagenta: "\x1b[35m",
	colorDarkCyan:    "\x1b[36m",
	colorGray:        "\x1b[37m",
	colorRed:         "\x1b[1m\x1b[31m",
	colorGreen:       "\x1b[1m\x1b[32m",
	colorYellow:      "\x1b[1m\x1b[33m",
	colorBlue:        "\x1b[1m\x1b[34m",
	colorMagenta:     "\x1b[1m\x1b[35m",
	colorCyan:        "\x1b[1m\x1b[36m",
	colorWhite:       "\x1b[1m\x1b[37m",
}

// Only the dark half of the palette exists as a background.
var ansiBackground = map[consoleColor]string{
	colorBlack:       "\x1b[40m",
	colorDarkRed:     "\x1b[41m",
	colorDarkGreen:   "\x1b[42m",
	colorDarkYellow:  "\x1b[43m",
	colorDarkBlue:    "\x1b[44m",
	colorDarkMagenta: "\x1b[45m",
	colorDarkCyan:    "\x1b[46m",
	colorGray:        "\x1b[47m",
}

// levelColors is the background/foreground pair of each severity tag.
type levelColors struct {
	background consoleColor
	foreground consoleColor
}

func colorsFor(l Level) levelColors {
	switch l {
	case LevelTrace:
		return levelColors{background: colorWhite, foreground: colorBlack}
	case LevelDebug:
		return levelColors{background: colorWhite, foreground: colorGray}
	case LevelInformation:
		return levelColors{background: colorWhite, foreground: colorGreen}
	case LevelWarning:
		return levelColors{background: colorWhite, foreground: colorYellow}
	case LevelError:
		return levelColors{background: colorWhite, foreground: colorRed}
	case LevelCritical:
		return levelColors{background: colorWhite, foreground: colorDarkRed}
	default:
		return levelColors{background: colorGray, foreground: colorGray}
	}
}

func foregroundCode(c consoleColor) string {
	if code, ok := ansiForeground[c]; ok {
		return code
	}
	return ansiDefaultForeground
}

func backgroundCode(c consoleColor) string {
	if code, ok := ansiBackground[c]; ok {
		return code
	}
	return ansiDefaultBackground
}

// writeColored writes text wrapped in the colour pair, or bare text when colours
// are off.
func writeColored(b *strings.Builder, text string, colors levelColors, behavior ColorBehavior) {
	if behavior.resolve() != ColorEnabled {
		b.WriteString(text)
		return
	}
	b.WriteString(backgroundCode(colors.background))
	b.WriteString(foregroundCode(colors.foreground))
	b.WriteString(text)
	b.WriteString(ansiDefaultForeground)
	b.WriteString(ansiDefaultBackground)
}
