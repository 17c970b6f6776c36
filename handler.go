package wemux

import "context"

// CommandHandler executes one command type and produces its result. The use
// of any keeps the interface registrable under runtime keys; the generic
// [RegisterHandler] restores static typing on top of it.
type CommandHandler interface {
	Handle(ctx context.Context, cmd Command) (any, error)
}

// CommandHandlerFunc adapts a function to the CommandHandler interface.
type CommandHandlerFunc func(ctx context.Context, cmd Command) (any, error)

func (f CommandHandlerFunc) Handle(ctx context.Context, cmd Command) (any, error) {
	return f(ctx, cmd)
}

// EventListener observes events of one type and produces no result.
type EventListener interface {
	Handle(ctx context.Context, evt Event) error
}

// EventListenerFunc adapts a function to the EventListener interface.
type EventListenerFunc func(ctx context.Context, evt Event) error

func (f EventListenerFunc) Handle(ctx context.Context, evt Event) error {
	return f(ctx, evt)
}
