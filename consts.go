package testlog

const (
	emptyString = ""

	// padding indents every line after the header of a record.
	padding = "      "

	// newLine separates the lines of one record.
	newLine = "\n"

	// LogLevelSection is the configuration section holding category -> level pairs.
	LogLevelSection = "Logging:LogLevel"

	// DefaultCategoryKey is the mandatory fallback entry of LogLevelSection.
	DefaultCategoryKey = "Default"

	// DefaultTimestampFormat renders local time like the en-US general date/time pattern.
	DefaultTimestampFormat = "1/2/2006 3:04:05 PM"

	// ColorSignalEnv enables colours for ColorDefault when set to a non-empty value.
	ColorSignalEnv = "FORCE_COLOR"

	// RiderHostEnv names the IDE hosting the test run; the value RiderHost enables
	// colours for ColorDefault.
	RiderHostEnv = "RESHARPER_HOST"
	RiderHost    = "Rider"

	configDelimiter = ":"
)

const (
	errMsgNilProvider        = "Log provider is nil."
	errMsgNilDestination     = "Log destination is not set."
	errMsgNilFormatter       = "Message formatter is nil."
	errMsgNilScopeState      = "Scope state is nil."
	errMsgOptionsInvalid     = "Logger options are invalid."
	errMsgInvalidLevel       = "Log level is not a known severity name."
	errMsgMissingDefault     = "Log level configuration has no Default entry."
	errMsgLevelConfig        = "Log level configuration is invalid."
	errMsgLoadConfig         = "Log configuration could not be loaded."
	errMsgNotInitialized     = "Log provider is not initialized."
	errMsgProviderClosed     = "Log provider is closed."
	errMsgTestCompleted      = "Test output is no longer available."
	errMsgWriteFailed        = "Write to log destination failed."
	errMsgDestinationDiscard = "log record discarded"
	errMsgZerologDecode      = "zerolog record is not a JSON object."
)
