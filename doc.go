/*
Package wemux provides a synchronous in-process message bus that routes two kinds of messages:
fire-and-forget events with any number of listeners, and commands with exactly one handler and a result.

# Design Priorities

Here are the design priorities of the implementation:

  - It should be deterministic: all dispatch happens as nested calls on the caller's stack, and within one
    top-level call every effect resolves in a fixed order before the call returns.
  - It should be transparent in its results by reporting handler and listener errors back to the caller and
    to every middleware error hook on the way out.
  - It should be simple to embed: a [Bus] is an ordinary value with no background goroutines, no lifecycle
    to manage, and no global state.
  - It should keep cross-cutting concerns out of the core: logging, metrics, and similar behavior live in
    [Middleware] chains that wrap handler invocations.

# Messages

A message is any Go value; its concrete type is its routing key. A value dispatched with [Bus.Handle] is a
command, a value dispatched with [Bus.Emit] is an event. Messages carry no behavior of their own. Types
that want an identity and a creation time may embed a [Metadata] created with [NewMetadata].

Note that the routing key is the exact dynamic type. A handler registered for MyCommand will not see a
*MyCommand, and vice versa.

# Registration

Handlers and listeners are registered on the bus, never globally. The typed entry points are the generic
functions [RegisterHandler] and [RegisterListener], which derive the routing key from their type parameter.
The untyped entry points [Bus.AddHandler] and [Bus.AddListener] take a [reflect.Type] key directly and are
useful when keys are computed at runtime. Registering a second handler for the same command type replaces
the first; listeners accumulate, and dispatch order equals registration order.

# Middleware

A [Middleware] is one node in a chain. Each node holds up to three hooks: a before hook, an after hook,
and an error hook. Around a handler invocation the before hooks run outermost-first, the after hooks run
innermost-first on success, and on failure the error hooks run from the failing depth outward. An error
hook may replace the error it receives, or absorb it by returning nil. Build chains with [Use], or link
nodes fluently with [Middleware.Chain]. A chain belongs to one dispatcher or handler entry; [Use] copies
its inputs, so the same nodes may appear in several chains.

# Cascades

Handler code may produce follow-up events with [Push]. Pushed events are not dispatched immediately; they
are appended to a collector owned by the running top-level call and drained in FIFO order after the
triggering dispatch finishes. A drained event's listeners may push further events, which join the same
queue. The collector is always empty by the time the top-level [Bus.Handle] or [Bus.Emit] returns. Calling
[Bus.Emit] from inside a handler routes through the collector as well, so cascaded events never interleave
with the dispatch that produced them. Nested [Bus.Handle] calls are plain synchronous calls, since
commands are never collected.

# Errors

[HandlerNotFoundError] reports a command type with no registered handler; it matches both
[ErrHandlerNotFound] and [ErrBus] with [errors.Is]. A panicking handler or listener is recovered by the
dispatcher and reported as a [PanicError] so that error hooks observe it. Event listeners are isolated
from each other: a failing listener does not stop delivery to its siblings, and all listener errors are
joined into the error returned to the caller.

The bus does not persist messages, retry anything, or cross process boundaries. A handler that never
returns blocks the bus.
*/
package wemux
