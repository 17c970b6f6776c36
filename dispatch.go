package wemux

import (
	"context"
	"errors"
	"reflect"
	"runtime/debug"
)

// CommandDispatcher resolves and runs the single handler for a command.
// The default is [InMemoryCommandDispatcher]; a hosting application may
// supply its own via [WithCommandDispatcher].
type CommandDispatcher interface {
	Dispatch(ctx context.Context, registry *Registry, cmd Command) (any, error)
}

// EventDispatcher delivers an event to an ordered list of listeners. The
// default is [InMemoryEventDispatcher].
type EventDispatcher interface {
	Dispatch(ctx context.Context, listeners []EventListener, evt Event) error
}

// InMemoryCommandDispatcher dispatches commands as nested calls on the
// caller's stack, wrapped by a shared middleware chain.
type InMemoryCommandDispatcher struct {
	chain *Middleware
}

func NewCommandDispatcher(mw ...*Middleware) *InMemoryCommandDispatcher {
	return &InMemoryCommandDispatcher{chain: Use(mw...)}
}

// Dispatch looks up the handler for the command's type and invokes it
// through the dispatcher chain and the entry's own chain. A missing
// handler fails with a [HandlerNotFoundError]. Exactly one handler body
// executes per call.
func (d *InMemoryCommandDispatcher) Dispatch(ctx context.Context, registry *Registry, cmd Command) (any, error) {
	key := reflect.TypeOf(cmd)
	entry, ok := registry.LookupHandler(key)
	if !ok {
		return nil, &HandlerNotFoundError{CommandType: key}
	}
	terminal := func(ctx context.Context) (any, error) {
		return safeHandle(ctx, entry.Handler, cmd)
	}
	if entry.Chain != nil {
		inner := terminal
		terminal = func(ctx context.Context) (any, error) {
			return entry.Chain.exec(ctx, cmd, inner)
		}
	}
	return d.chain.exec(ctx, cmd, terminal)
}

// InMemoryEventDispatcher delivers events on the caller's stack, each
// listener wrapped by the shared middleware chain. A failing listener does
// not stop delivery to the listeners after it; all listener errors are
// joined into the returned error.
type InMemoryEventDispatcher struct {
	chain *Middleware
}

func NewEventDispatcher(mw ...*Middleware) *InMemoryEventDispatcher {
	return &InMemoryEventDispatcher{chain: Use(mw...)}
}

func (d *InMemoryEventDispatcher) Dispatch(ctx context.Context, listeners []EventListener, evt Event) error {
	var errs []error
	for _, listener := range listeners {
		terminal := func(ctx context.Context) (any, error) {
			return nil, safeListen(ctx, listener, evt)
		}
		if _, err := d.chain.exec(ctx, evt, terminal); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// safeHandle invokes the handler and converts a panic into a PanicError,
// so the failure still walks the middleware error hooks.
func safeHandle(ctx context.Context, handler CommandHandler, cmd Command) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	return handler.Handle(ctx, cmd)
}

func safeListen(ctx context.Context, listener EventListener, evt Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	return listener.Handle(ctx, evt)
}
