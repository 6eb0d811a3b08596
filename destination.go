package testlog

import (
	stderrs "errors"
	"fmt"
	"strings"
	"testing"

	"github.com/Station-Manager/errors"
	"github.com/google/uuid"
	"go.uber.org/atomic"
)

// DestinationFunc adapts a function to Destination.
type DestinationFunc func(line string) error

func (f DestinationFunc) WriteLine(line string) error { return f(line) }

// testOutput writes records to the log of a single test.
type testOutput struct {
	tb testing.TB
}

// TestOutput returns a Destination bound to tb. Writes after tb has completed are
// reported as ErrDestinationUnavailable instead of panicking.
func TestOutput(tb testing.TB) Destination {
	return testOutput{tb: tb}
}

func (d testOutput) WriteLine(line string) (err error) {
	const op errors.Op = "testlog.testOutput.WriteLine"
	defer func() {
		if r := recover(); r != nil {
			if !isCompletedTestPanic(r) {
				panic(r)
			}
			err = errors.New(op).Err(ErrDestinationUnavailable).Msg(errMsgTestCompleted)
		}
	}()
	d.tb.Helper()
	d.tb.Log(line)
	return nil
}

// isCompletedTestPanic recognises the panic testing raises for output written after
// the test returned.
func isCompletedTestPanic(r any) bool {
	msg, ok := r.(string)
	if !ok {
		msg = fmt.Sprint(r)
	}
	return strings.Contains(msg, "has completed")
}

// listener is one attached output of a Broadcaster.
type listener struct {
	id  uuid.UUID
	dst Destination
}

// Broadcaster is a Destination that fans every record out to the listeners
// attached at the time of the write. It lets one provider outlive the tests that
// observe it: each test attaches on start and detaches on cleanup. The zero value
// is ready to use.
type Broadcaster struct {
	listeners atomic.Pointer[[]listener]
}

// Attach adds fn as a listener and returns the handle that detaches it.
func (b *Broadcaster) Attach(fn func(line string)) uuid.UUID {
	return b.AttachDestination(DestinationFunc(func(line string) error {
		fn(line)
		return nil
	}))
}

// AttachDestination adds dst as a listener.
func (b *Broadcaster) AttachDestination(dst Destination) uuid.UUID {
	id := uuid.New()
	for {
		old := b.listeners.Load()
		var next []listener
		if old != nil {
			next = make([]listener, 0, len(*old)+1)
			next = append(next, *old...)
		}
		next = append(next, listener{id: id, dst: dst})
		if b.listeners.CompareAndSwap(old, &next) {
			return id
		}
	}
}

// AttachTest attaches the output of tb and detaches it when tb finishes.
func (b *Broadcaster) AttachTest(tb testing.TB) uuid.UUID {
	id := b.AttachDestination(TestOutput(tb))
	tb.Cleanup(func() { b.Detach(id) })
	return id
}

// Detach removes the listener with id. It reports whether the listener was attached.
func (b *Broadcaster) Detach(id uuid.UUID) bool {
	for {
		old := b.listeners.Load()
		if old == nil {
			return false
		}
		next := make([]listener, 0, len(*old))
		for _, l := range *old {
			if l.id != id {
				next = append(next, l)
			}
		}
		if len(next) == len(*old) {
			return false
		}
		if b.listeners.CompareAndSwap(old, &next) {
			return true
		}
	}
}

// Len returns the number of attached listeners.
func (b *Broadcaster) Len() int {
	if l := b.listeners.Load(); l != nil {
		return len(*l)
	}
	return 0
}

// WriteLine writes line to every listener. A failing listener doesn't stop the
// others; the failures are returned joined.
func (b *Broadcaster) WriteLine(line string) error {
	snapshot := b.listeners.Load()
	if snapshot == nil {
		return nil
	}
	var errs []error
	for _, l := range *snapshot {
		if err := l.dst.WriteLine(line); err != nil {
			errs = append(errs, err)
		}
	}
	return stderrs.Join(errs...)
}
