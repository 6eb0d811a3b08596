package testlog

import (
	stderrs "errors"

	smerrors "github.com/Station-Manager/errors"
)

// Configuration errors: fatal when the provider or a logger is constructed.
var (
	ErrInvalidLevel   = stderrs.New("invalid log level")
	ErrMissingDefault = stderrs.New("missing Default log level")
	ErrInvalidOptions = stderrs.New("invalid logger options")
)

// Invalid-argument errors: rejected at the call site.
var (
	ErrNilFormatter   = stderrs.New("nil message formatter")
	ErrNilScopeState  = stderrs.New("nil scope state")
	ErrNilDestination = stderrs.New("nil log destination")
	ErrNilProvider    = stderrs.New("nil log provider")
	ErrNotInitialized = stderrs.New("log provider not initialized")
)

// ErrDestinationUnavailable reports a write to a destination that has gone away,
// typically a test that has already completed. Loggers discard it.
var ErrDestinationUnavailable = stderrs.New("log destination unavailable")

// IsConfigError reports whether err was caused by an unusable level configuration
// or invalid options.
func IsConfigError(err error) bool {
	return causedBy(err, ErrInvalidLevel) || causedBy(err, ErrMissingDefault) || causedBy(err, ErrInvalidOptions)
}

// IsInvalidArgument reports whether err was caused by a nil argument.
func IsInvalidArgument(err error) bool {
	return causedBy(err, ErrNilFormatter) || causedBy(err, ErrNilScopeState) ||
		causedBy(err, ErrNilDestination) || causedBy(err, ErrNilProvider) || causedBy(err, ErrNotInitialized)
}

// IsDestinationUnavailable reports whether err was caused by a destination that
// can no longer be written to.
func IsDestinationUnavailable(err error) bool {
	return causedBy(err, ErrDestinationUnavailable)
}

// causedBy walks the cause chain the same way buildErrorChain does: DetailedError
// causes first, then stdlib unwrapping.
func causedBy(err, target error) bool {
	for depth := 0; err != nil && depth < maxChainDepth; depth++ {
		if stderrs.Is(err, target) {
			return true
		}
		if dErr, ok := smerrors.AsDetailedError(err); ok && dErr != nil {
			err = dErr.Cause()
			continue
		}
		err = stderrs.Unwrap(err)
	}
	return false
}
