package testlog

import (
	"strings"

	"github.com/Station-Manager/errors"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// LoadConfig builds a configuration source from YAML, then applies environment
// overrides. Keys are ":" delimited so dotted category names stay intact:
//
//	Logging:
//	  LogLevel:
//	    Default: Warning
//	    App.Svc: Debug
//
// An environment variable <envPrefix>LOGGING__LOGLEVEL__App.Svc=Trace overrides the
// App.Svc entry; the "Logging" and "LogLevel" segments match case-insensitively.
// With an empty envPrefix no environment variables are read.
func LoadConfig(data []byte, envPrefix string) (*koanf.Koanf, error) {
	const op errors.Op = "testlog.LoadConfig"
	k := koanf.New(configDelimiter)

	if len(data) > 0 {
		if err := k.Load(rawbytes.Provider(data), yaml.Parser()); err != nil {
			return nil, errors.New(op).Err(err).Msg(errMsgLoadConfig)
		}
	}

	if envPrefix != emptyString {
		if err := k.Load(env.Provider(envPrefix, configDelimiter, func(s string) string {
			return envKey(strings.TrimPrefix(s, envPrefix))
		}), nil); err != nil {
			return nil, errors.New(op).Err(err).Msg(errMsgLoadConfig)
		}
	}

	return k, nil
}

// envKey maps LOGGING__LOGLEVEL__<category> to Logging:LogLevel:<category>. Any
// other variable maps to "" and is skipped.
func envKey(name string) string {
	parts := strings.SplitN(name, "__", 3)
	if len(parts) != 3 || parts[2] == emptyString {
		return emptyString
	}
	if !strings.EqualFold(parts[0], "Logging") || !strings.EqualFold(parts[1], "LogLevel") {
		return emptyString
	}
	return LogLevelSection + configDelimiter + parts[2]
}

// OptionsFromConfig reads Options from section of k, starting from DefaultOptions.
// Recognised keys: MinLevel, IncludeTimestamp, TimestampFormat, IncludeScopes,
// IncludeTraceContext, ColorBehavior and Categories.
func OptionsFromConfig(k *koanf.Koanf, section string) (Options, error) {
	const op errors.Op = "testlog.OptionsFromConfig"
	opts := DefaultOptions()
	if k == nil {
		return opts, nil
	}

	key := func(name string) string {
		if section == emptyString {
			return name
		}
		return section + configDelimiter + name
	}

	if k.Exists(key("MinLevel")) {
		lvl, err := ParseLevel(k.String(key("MinLevel")))
		if err != nil {
			return opts, errors.New(op).Err(err).Msg(errMsgOptionsInvalid)
		}
		opts.MinLevel = lvl
	}
	if k.Exists(key("IncludeTimestamp")) {
		opts.IncludeTimestamp = k.Bool(key("IncludeTimestamp"))
	}
	if k.Exists(key("TimestampFormat")) {
		opts.TimestampFormat = k.String(key("TimestampFormat"))
	}
	if k.Exists(key("IncludeScopes")) {
		opts.IncludeScopes = k.Bool(key("IncludeScopes"))
	}
	if k.Exists(key("IncludeTraceContext")) {
		opts.IncludeTraceContext = k.Bool(key("IncludeTraceContext"))
	}
	if k.Exists(key("ColorBehavior")) {
		cb, ok := ParseColorBehavior(k.String(key("ColorBehavior")))
		if !ok {
			return opts, errors.New(op).Err(ErrInvalidOptions).Msg(errMsgOptionsInvalid + " (ColorBehavior)")
		}
		opts.ColorBehavior = cb
	}
	if k.Exists(key("Categories")) {
		opts.Categories = k.Strings(key("Categories"))
	}

	return opts, nil
}
