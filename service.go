package testlog

import (
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/Station-Manager/errors"
	"github.com/rs/zerolog"
	"go.uber.org/atomic"
)

// Provider creates the loggers of one destination. Set the exported fields, then
// call Initialize; the options are copied at that point and shared read-only by
// every logger the provider creates.
type Provider struct {
	Options Options
	// Config, when set, switches level resolution to the hierarchical
	// "Logging:LogLevel" section of the source.
	Config      ConfigSource
	Destination Destination
	// Diagnostics receives the provider's own messages, such as discarded writes.
	Diagnostics *zerolog.Logger

	opts     Options
	resolver *LevelResolver
	dst      Destination
	diag     atomic.Pointer[zerolog.Logger]
	now      func() time.Time

	initOnce      sync.Once
	initErr       error
	isInitialized atomic.Bool
	isClosed      atomic.Bool
}

// NewProvider returns an initialized provider writing to dst. source may be nil.
func NewProvider(dst Destination, source ConfigSource, opts Options) (*Provider, error) {
	p := &Provider{Options: opts, Config: source, Destination: dst}
	if err := p.Initialize(); err != nil {
		return nil, err
	}
	return p, nil
}

// NewTestProvider returns a provider writing to the output of tb, starting from
// DefaultOptions. The provider is closed when tb finishes.
func NewTestProvider(tb testing.TB, configure func(*Options)) (*Provider, error) {
	opts := DefaultOptions()
	if configure != nil {
		configure(&opts)
	}
	p, err := NewProvider(TestOutput(tb), nil, opts)
	if err != nil {
		return nil, err
	}
	tb.Cleanup(func() { _ = p.Close() })
	return p, nil
}

// NewForwardingProvider returns a provider writing to b, for setups that outlive a
// single test. Tests attach to b for their own lifetime.
func NewForwardingProvider(b *Broadcaster, source ConfigSource, configure func(*Options)) (*Provider, error) {
	const op errors.Op = "testlog.NewForwardingProvider"
	if b == nil {
		return nil, errors.New(op).Err(ErrNilDestination).Msg(errMsgNilDestination)
	}
	opts := DefaultOptions()
	if configure != nil {
		configure(&opts)
	}
	return NewProvider(b, source, opts)
}

// Initialize validates the options and builds the level resolver. Configuration
// errors surface here. Calling it again returns the first result.
func (p *Provider) Initialize() error {
	const op errors.Op = "testlog.Provider.Initialize"
	if p == nil {
		return errors.New(op).Err(ErrNilProvider).Msg(errMsgNilProvider)
	}

	p.initOnce.Do(func() {
		p.initErr = p.initialize()
	})
	return p.initErr
}

func (p *Provider) initialize() error {
	const op errors.Op = "testlog.Provider.initialize"
	if p.Destination == nil {
		return errors.New(op).Err(ErrNilDestination).Msg(errMsgNilDestination)
	}

	opts := p.Options.clone()
	if err := validateOptions(&opts); err != nil {
		return errors.New(op).Err(err).Msg(errMsgOptionsInvalid)
	}

	resolver, err := NewLevelResolver(p.Config, opts.MinLevel, opts.Categories)
	if err != nil {
		return errors.New(op).Err(err).Msg(errMsgLevelConfig)
	}

	p.opts = opts
	p.resolver = resolver
	p.dst = p.Destination
	if p.now == nil {
		p.now = time.Now
	}
	if p.Diagnostics != nil {
		p.diag.Store(p.Diagnostics)
	}

	p.isInitialized.Store(true)
	return nil
}

// Close stops every logger of the provider from writing. It is safe to call more
// than once.
func (p *Provider) Close() error {
	if p == nil {
		return nil
	}
	p.isClosed.Store(true)
	return nil
}

// CreateLogger returns a logger for category with its level resolved now.
func (p *Provider) CreateLogger(category string) (*Logger, error) {
	const op errors.Op = "testlog.Provider.CreateLogger"
	if p == nil {
		return nil, errors.New(op).Err(ErrNilProvider).Msg(errMsgNilProvider)
	}
	if !p.isInitialized.Load() {
		return nil, errors.New(op).Err(ErrNotInitialized).Msg(errMsgNotInitialized)
	}
	return &Logger{
		category: category,
		minLevel: p.resolver.Resolve(category),
		provider: p,
	}, nil
}

// LoggerFor returns a logger whose category is the package path and name of T.
func LoggerFor[T any](p *Provider) (*Logger, error) {
	return p.CreateLogger(typeCategory(reflect.TypeFor[T]()))
}

// typeCategory names a type "<package path>.<type name>", dereferencing pointers.
func typeCategory(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.PkgPath() == emptyString || t.Name() == emptyString {
		return t.String()
	}
	return t.PkgPath() + "." + t.Name()
}

func (p *Provider) diagnostics() *zerolog.Logger {
	if l := p.diag.Load(); l != nil {
		return l
	}
	nop := zerolog.Nop()
	return &nop
}

// discarded reports a write the destination refused. It never fails the caller.
func (p *Provider) discarded(category string, level Level, err error) {
	evt := p.diagnostics().Debug().Str("category", category).Stringer("severity", level)
	if !IsDestinationUnavailable(err) {
		evt = evt.Str("reason", errMsgWriteFailed)
	}
	evt.Err(err).Msg(errMsgDestinationDiscard)
}
