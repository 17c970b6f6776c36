package wemux

import (
	"context"
	"errors"
	"fmt"
)

// RegisterHandler registers a typed handler function for the command type
// C. The routing key is derived from the type parameter, so registration
// is an ordinary, statically checked call. Optional middleware wraps only
// this handler.
func RegisterHandler[C Command, R any](bus *Bus, fn func(ctx context.Context, cmd C) (R, error), mw ...*Middleware) {
	bus.AddHandler(TypeOf[C](), CommandHandlerFunc(func(ctx context.Context, cmd Command) (any, error) {
		typed, ok := cmd.(C)
		if !ok {
			return nil, fmt.Errorf("%w: handler for %s received %T", ErrBus, TypeOf[C](), cmd)
		}
		return fn(ctx, typed)
	}), mw...)
}

// RegisterListener registers a typed listener function for the event type
// E.
func RegisterListener[E Event](bus *Bus, fn func(ctx context.Context, evt E) error) {
	bus.AddListener(TypeOf[E](), EventListenerFunc(func(ctx context.Context, evt Event) error {
		typed, ok := evt.(E)
		if !ok {
			return fmt.Errorf("%w: listener for %s received %T", ErrBus, TypeOf[E](), evt)
		}
		return fn(ctx, typed)
	}))
}

// HandleAs dispatches cmd through bus and asserts the result to R. A
// result of the wrong type joins a type mismatch error to whatever the
// dispatch itself reported.
func HandleAs[R any](ctx context.Context, bus *Bus, cmd Command) (R, error) {
	var zero R
	result, err := bus.Handle(ctx, cmd)
	if result == nil {
		return zero, err
	}
	typed, ok := result.(R)
	if !ok {
		return zero, errors.Join(err, fmt.Errorf("%w: result is %T, not %s", ErrBus, result, TypeOf[R]()))
	}
	return typed, err
}
