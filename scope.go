package testlog

import (
	"context"
	"strings"

	"go.uber.org/atomic"
)

// scopeKey is the context key of the innermost scope.
type scopeKey struct{}

// Scope is one node of a scope chain. Nodes are immutable once pushed and are
// carried by the context returned from BeginScope, so a goroutine started with a
// context sees the chain as it was at that point and its own scopes stay private.
// A released scope is skipped wherever the chain is read.
type Scope struct {
	state    ScopeState
	parent   *Scope
	released atomic.Bool
}

// State returns the value the scope was begun with.
func (s *Scope) State() ScopeState { return s.state }

// Parent returns the nearest enclosing scope that is still active, or nil.
func (s *Scope) Parent() *Scope { return activeScope(s.parent) }

func (s *Scope) String() string {
	return strings.Join(s.state.scopeEntries(), " ")
}

// activeScope returns s or its nearest ancestor that has not been released.
func activeScope(s *Scope) *Scope {
	for s != nil && s.released.Load() {
		s = s.parent
	}
	return s
}

// ScopeHandle ends a scope. Release is meant to be deferred right after the scope
// is begun so the scope ends on every exit path.
type ScopeHandle struct {
	scope *Scope
}

// Release ends the scope. Contexts derived from the scope see its enclosing scope
// again; a released scope never becomes current again, whatever the order of
// releases. Calls after the first are no-ops, as is releasing a nil handle.
func (h *ScopeHandle) Release() {
	if h == nil || h.scope == nil {
		return
	}
	h.scope.released.Store(true)
}

// WithScopes returns a context without any active scope. Use it at the root of a
// logical context, for example once per test, to drop scopes inherited from ctx.
func WithScopes(ctx context.Context) context.Context {
	return context.WithValue(ctx, scopeKey{}, (*Scope)(nil))
}

// CurrentScope returns the innermost active scope of ctx, or nil.
func CurrentScope(ctx context.Context) *Scope {
	return activeScope(scopeFrom(ctx))
}

// BeginScope begins a scope nested in the current scope of ctx. The scope is only
// visible through the returned context and contexts derived from it.
func BeginScope(ctx context.Context, state any, args ...any) (context.Context, *ScopeHandle, error) {
	ss, err := NewScopeState(state, args...)
	if err != nil {
		return ctx, nil, err
	}
	ctx, h := pushScope(ctx, ss)
	return ctx, h, nil
}

func pushScope(ctx context.Context, state ScopeState) (context.Context, *ScopeHandle) {
	if ctx == nil {
		ctx = context.Background()
	}
	s := &Scope{state: state, parent: CurrentScope(ctx)}
	return context.WithValue(ctx, scopeKey{}, s), &ScopeHandle{scope: s}
}

func scopeFrom(ctx context.Context) *Scope {
	if ctx == nil {
		return nil
	}
	s, _ := ctx.Value(scopeKey{}).(*Scope)
	return s
}

// scopeEntries flattens the active scopes of ctx, oldest first.
func scopeEntries(ctx context.Context) []string {
	var chain []*Scope
	for s := CurrentScope(ctx); s != nil; s = s.Parent() {
		chain = append(chain, s)
	}

	var entries []string
	for i := len(chain) - 1; i >= 0; i-- {
		entries = append(entries, chain[i].state.scopeEntries()...)
	}
	return entries
}
