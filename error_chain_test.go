package testlog

import (
	"errors"
	"fmt"
	"testing"

	smerrors "github.com/Station-Manager/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildErrorChain_WithDetailedAndStd(t *testing.T) {
	inner := smerrors.New("db.Connect").Msg("dial tcp 127.0.0.1:5432: connect: connection refused")
	middle := smerrors.New("db.Open").Err(inner).Msg("failed to connect to database")
	outer := smerrors.New("server.Start").Err(middle).Msg("startup failed")

	chain := buildErrorChain(outer)
	require.Len(t, chain, 3)
	assert.Equal(t, "startup failed -> failed to connect to database -> dial tcp 127.0.0.1:5432: connect: connection refused", joinChain(chain))
	assert.Equal(t, []string{"server.Start", "db.Open", "db.Connect"}, []string{chain[0].op, chain[1].op, chain[2].op})

	std := fmt.Errorf("outer: %w", errors.New("root"))
	chain = buildErrorChain(std)
	require.Len(t, chain, 2)
	assert.Equal(t, "*fmt.wrapError", chain[0].typ)
	assert.Equal(t, "root", chain[1].msg)
	assert.Empty(t, chain[0].op)
}

func TestBuildErrorChain_Bounded(t *testing.T) {
	var err error = errors.New("root")
	for i := 0; i < maxChainDepth*2; i++ {
		err = fmt.Errorf("wrap %d: %w", i, err)
	}
	assert.Len(t, buildErrorChain(err), maxChainDepth)
	assert.Empty(t, buildErrorChain(nil))
}

func TestErrorKinds(t *testing.T) {
	detailed := smerrors.New("test.Op").Err(ErrMissingDefault).Msg("wrapped")
	assert.True(t, IsConfigError(detailed))
	assert.False(t, IsInvalidArgument(detailed))

	std := fmt.Errorf("context: %w", ErrNilScopeState)
	assert.True(t, IsInvalidArgument(std))
	assert.False(t, IsDestinationUnavailable(std))

	nested := smerrors.New("outer").Err(fmt.Errorf("mid: %w", ErrDestinationUnavailable)).Msg("outer")
	assert.True(t, IsDestinationUnavailable(nested))

	assert.False(t, IsConfigError(nil))
}

func TestDescribeError(t *testing.T) {
	assert.Empty(t, describeError(nil))
	assert.Equal(t, "*errors.errorString: plain", describeError(errors.New("plain")))
	assert.Equal(t, "*fmt.wrapError: a: b\n ---> b", describeError(fmt.Errorf("a: %w", errors.New("b"))))
}
