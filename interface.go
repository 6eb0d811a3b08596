package testlog

// Destination receives formatted records, one complete block per call.
type Destination interface {
	WriteLine(line string) error
}

// MessageFormatter renders the message of a record from its state and error. It
// is only called when the record's level is enabled.
type MessageFormatter func(state any, err error) string
