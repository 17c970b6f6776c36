package wemux

import (
	"errors"
	"fmt"
	"reflect"
)

// Sentinel errors for the message bus.
var (
	// ErrBus is the root of all message bus errors.
	ErrBus = errors.New("wemux")

	// ErrHandlerNotFound is matched by errors raised when a command type has
	// no registered handler.
	ErrHandlerNotFound = fmt.Errorf("%w: handler not found", ErrBus)

	// ErrHandlerPanic is matched by errors produced from recovered handler
	// or listener panics.
	ErrHandlerPanic = fmt.Errorf("%w: handler panicked", ErrBus)

	// ErrNoCollector is returned by Push when the context does not belong to
	// a running bus call.
	ErrNoCollector = fmt.Errorf("%w: no dispatch in progress", ErrBus)
)

// HandlerNotFoundError reports a command dispatched with no registered
// handler. It names the missing command type.
type HandlerNotFoundError struct {
	CommandType reflect.Type
}

func (e *HandlerNotFoundError) Error() string {
	return fmt.Sprintf("no handler for command %s", e.CommandType)
}

// Is allows errors.Is to match both ErrHandlerNotFound and ErrBus.
func (e *HandlerNotFoundError) Is(target error) bool {
	return target == ErrHandlerNotFound || target == ErrBus
}

// PanicError wraps a panic recovered from a handler or listener so it can
// travel through middleware error hooks like any other failure.
type PanicError struct {
	// Value is the value passed to panic().
	Value any

	// Stack is the stack trace captured at recovery.
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("handler panic: %v", e.Value)
}

// Is allows errors.Is to match both ErrHandlerPanic and ErrBus.
func (e *PanicError) Is(target error) bool {
	return target == ErrHandlerPanic || target == ErrBus
}
