package testlog

import (
	stderrs "errors"
	"fmt"
	"strings"

	smerrors "github.com/Station-Manager/errors"
)

// maxChainDepth bounds every walk over an error's causes.
const maxChainDepth = 50

// chainLink is one error of a cause chain.
type chainLink struct {
	msg string
	op  string
	typ string
}

// buildErrorChain walks an error's cause chain, outermost first. Station-Manager
// DetailedError causes are preferred, stdlib unwrapping is the fallback. Repeated
// messages stop the walk to survive unusual cycles.
func buildErrorChain(err error) []chainLink {
	var chain []chainLink
	seen := map[string]bool{}

	for depth := 0; err != nil && depth < maxChainDepth; depth++ {
		if dErr, ok := smerrors.AsDetailedError(err); ok && dErr != nil {
			chain = append(chain, chainLink{msg: dErr.Error(), op: string(dErr.Op()), typ: fmt.Sprintf("%T", dErr)})
			err = dErr.Cause()
			continue
		}

		msg := err.Error()
		if seen[msg] {
			break
		}
		seen[msg] = true
		chain = append(chain, chainLink{msg: msg, typ: fmt.Sprintf("%T", err)})
		err = stderrs.Unwrap(err)
	}
	return chain
}

// describeError renders an error the way records show exceptions: the outer error
// with its type, then one line per cause. Errors that format themselves (usually
// because they carry a stack trace) are rendered with %+v instead.
func describeError(err error) string {
	if err == nil {
		return emptyString
	}
	if f, ok := err.(fmt.Formatter); ok {
		return fmt.Sprintf("%+v", f)
	}

	chain := buildErrorChain(err)
	if len(chain) == 0 {
		return fmt.Sprintf("%T: %s", err, err.Error())
	}

	var b strings.Builder
	b.WriteString(chain[0].typ)
	b.WriteString(": ")
	if chain[0].op != emptyString {
		b.WriteString(chain[0].op)
		b.WriteString(": ")
	}
	b.WriteString(chain[0].msg)
	for _, link := range chain[1:] {
		b.WriteString(newLine)
		b.WriteString(" ---> ")
		if link.op != emptyString {
			b.WriteString(link.op)
			b.WriteString(": ")
		}
		b.WriteString(link.msg)
	}
	return b.String()
}

// joinChain returns the chain messages separated by " -> ".
func joinChain(chain []chainLink) string {
	msgs := make([]string, 0, len(chain))
	for _, link := range chain {
		msgs = append(msgs, link.msg)
	}
	return strings.Join(msgs, " -> ")
}
