package wemux

import (
	"context"
	"errors"
	"reflect"
)

// Bus routes commands to their single handler and events to their
// listeners, and drains cascaded events before control returns to the
// caller. The zero configuration uses the in-memory dispatchers with
// empty middleware chains.
type Bus struct {
	registry *Registry
	commands CommandDispatcher
	events   EventDispatcher
}

type busConfig struct {
	commands  CommandDispatcher
	events    EventDispatcher
	commandMW []*Middleware
	eventMW   []*Middleware
}

// Option configures a Bus during construction.
type Option func(*busConfig)

// WithCommandDispatcher replaces the default in-memory command dispatcher.
func WithCommandDispatcher(d CommandDispatcher) Option {
	return func(c *busConfig) { c.commands = d }
}

// WithEventDispatcher replaces the default in-memory event dispatcher.
func WithEventDispatcher(d EventDispatcher) Option {
	return func(c *busConfig) { c.events = d }
}

// WithCommandMiddleware appends middleware to the default command
// dispatcher's chain. It has no effect when a custom command dispatcher is
// supplied; custom dispatchers own their chains.
func WithCommandMiddleware(mw ...*Middleware) Option {
	return func(c *busConfig) { c.commandMW = append(c.commandMW, mw...) }
}

// WithEventMiddleware appends middleware to the default event dispatcher's
// chain.
func WithEventMiddleware(mw ...*Middleware) Option {
	return func(c *busConfig) { c.eventMW = append(c.eventMW, mw...) }
}

// WithMiddleware appends middleware to both default dispatcher chains.
func WithMiddleware(mw ...*Middleware) Option {
	return func(c *busConfig) {
		c.commandMW = append(c.commandMW, mw...)
		c.eventMW = append(c.eventMW, mw...)
	}
}

// NewBus creates a bus with the given options.
func NewBus(opts ...Option) *Bus {
	var cfg busConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.commands == nil {
		cfg.commands = NewCommandDispatcher(cfg.commandMW...)
	}
	if cfg.events == nil {
		cfg.events = NewEventDispatcher(cfg.eventMW...)
	}
	return &Bus{
		registry: NewRegistry(),
		commands: cfg.commands,
		events:   cfg.events,
	}
}

// Registry returns the bus's registry. Registration may happen at any time
// before or between dispatches.
func (b *Bus) Registry() *Registry {
	return b.registry
}

// AddHandler registers handler for the command type cmdType, optionally
// wrapped by its own middleware. A second registration for the same type
// replaces the first.
func (b *Bus) AddHandler(cmdType reflect.Type, handler CommandHandler, mw ...*Middleware) {
	b.registry.AddHandler(cmdType, handler, mw...)
}

// AddListener appends listener to the listeners of the event type evtType.
func (b *Bus) AddListener(evtType reflect.Type, listener EventListener) {
	b.registry.AddListener(evtType, listener)
}

// Handle dispatches cmd to its registered handler and returns the
// handler's result. Events pushed during handling are fully dispatched
// before Handle returns; their listener errors are joined into the
// returned error, with the result still valid when only the cascade
// failed. A Handle call made from inside a handler is a plain nested call
// whose cascade belongs to the surrounding top-level call.
func (b *Bus) Handle(ctx context.Context, cmd Command) (any, error) {
	if collectorFrom(ctx) != nil {
		return b.commands.Dispatch(ctx, b.registry, cmd)
	}
	col := NewCollector()
	ctx = withDispatch(ctx, col)
	result, err := b.commands.Dispatch(ctx, b.registry, cmd)
	if drainErr := b.drain(ctx, col); drainErr != nil {
		err = errors.Join(err, drainErr)
	}
	return result, err
}

// Emit delivers evt to all its listeners in registration order, then
// drains the cascade. Zero listeners is not an error. An Emit call made
// from inside a handler is deferred through the running call's collector
// instead of dispatching recursively, preserving FIFO order across the
// cascade; such a call returns nil immediately.
func (b *Bus) Emit(ctx context.Context, evt Event) error {
	if err := Push(ctx, evt); err == nil {
		return nil
	}
	col := NewCollector()
	ctx = withDispatch(ctx, col)
	err := b.dispatchEvent(ctx, evt)
	if drainErr := b.drain(ctx, col); drainErr != nil {
		err = errors.Join(err, drainErr)
	}
	return err
}

func (b *Bus) dispatchEvent(ctx context.Context, evt Event) error {
	listeners := b.registry.LookupListeners(reflect.TypeOf(evt))
	return b.events.Dispatch(ctx, listeners, evt)
}

// drain dispatches collected events in FIFO order until none remain,
// including events pushed while the drain itself is running. Dispatch
// errors do not stop the drain; the collector is empty when drain returns.
func (b *Bus) drain(ctx context.Context, col *Collector) error {
	var errs []error
	for {
		evt, ok := col.Pop()
		if !ok {
			break
		}
		if err := b.dispatchEvent(ctx, evt); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
