package testlog

// Options are the settings shared by every logger of a provider. A provider copies
// them in Initialize; later changes to the struct have no effect.
type Options struct {
	// MinLevel is the minimum level in static mode and the fallback for an empty
	// hierarchical configuration.
	MinLevel Level `validate:"min=0,max=6"`

	IncludeTimestamp bool

	// TimestampFormat is a time.Format layout for the local timestamp. Empty means
	// DefaultTimestampFormat.
	TimestampFormat string

	IncludeScopes bool

	// IncludeTraceContext appends the OpenTelemetry span of the record's context to
	// the scope line. It has no effect unless IncludeScopes is set.
	IncludeTraceContext bool

	ColorBehavior ColorBehavior `validate:"oneof=0 1 2"`

	// Categories is the static allow-list of category prefixes; empty allows all.
	Categories []string `validate:"dive,required"`
}

// DefaultOptions returns Information level, timestamps on, scopes off, colours
// adaptive and no category restriction.
func DefaultOptions() Options {
	return Options{
		MinLevel:         LevelInformation,
		IncludeTimestamp: true,
		TimestampFormat:  DefaultTimestampFormat,
		ColorBehavior:    ColorDefault,
	}
}

// clone returns a copy that shares no slices with o.
func (o Options) clone() Options {
	o.Categories = append([]string(nil), o.Categories...)
	return o
}
