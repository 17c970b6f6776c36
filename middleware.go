package wemux

import "context"

// Hook observes a message before or after its handler runs. Returning a
// non-nil error aborts the dispatch and routes the error through the
// chain's error hooks.
type Hook func(ctx context.Context, msg Message) error

// ErrorHook observes a failure that occurred deeper in the chain. The
// returned error is what propagates outward: return err unchanged to
// forward it, wrap it to annotate it, or return nil to absorb it and stop
// propagation.
type ErrorHook func(ctx context.Context, msg Message, err error) error

// Middleware is one node in a dispatch chain. All hooks are optional; a
// node with a nil hook passes through at that point. Nodes must not be
// modified once the chain is in use.
type Middleware struct {
	before  Hook
	after   Hook
	onError ErrorHook
	next    *Middleware
}

// NewMiddleware returns a node with the given hooks. Any of them may be
// nil.
func NewMiddleware(before, after Hook, onError ErrorHook) *Middleware {
	return &Middleware{before: before, after: after, onError: onError}
}

// Before returns a node with only a before hook.
func Before(h Hook) *Middleware { return &Middleware{before: h} }

// After returns a node with only an after hook.
func After(h Hook) *Middleware { return &Middleware{after: h} }

// OnError returns a node with only an error hook.
func OnError(h ErrorHook) *Middleware { return &Middleware{onError: h} }

// Chain links next after m and returns next, so chains build fluently:
//
//	head := wemux.Before(audit)
//	head.Chain(tracing).Chain(recovery)
//
// Chain mutates m; use [Use] to compose without touching the inputs.
func (m *Middleware) Chain(next *Middleware) *Middleware {
	m.next = next
	return next
}

// Use copies the given nodes, including anything already chained behind
// them, into a fresh chain and returns its head. The inputs are left
// untouched, so the same nodes may serve several dispatchers. Use returns
// nil for an empty input, which is the empty chain.
func Use(mws ...*Middleware) *Middleware {
	var head, tail *Middleware
	for _, mw := range mws {
		for node := mw; node != nil; node = node.next {
			cp := &Middleware{before: node.before, after: node.after, onError: node.onError}
			if head == nil {
				head = cp
			} else {
				tail.next = cp
			}
			tail = cp
		}
	}
	return head
}

// terminalFunc invokes the innermost target of a chain.
type terminalFunc func(ctx context.Context) (any, error)

// exec runs the chain around terminal. Before hooks run outermost-first on
// the way in, after hooks innermost-first on the way out. Any failure, be
// it in the terminal, a before hook, or an after hook, walks outward
// through the error hooks starting at the node where it surfaced. A nil
// receiver is the empty chain.
func (m *Middleware) exec(ctx context.Context, msg Message, terminal terminalFunc) (any, error) {
	if m == nil {
		return terminal(ctx)
	}
	if m.before != nil {
		if err := m.before(ctx, msg); err != nil {
			return nil, m.fail(ctx, msg, err)
		}
	}
	result, err := m.next.exec(ctx, msg, terminal)
	if err != nil {
		return nil, m.fail(ctx, msg, err)
	}
	if m.after != nil {
		if err := m.after(ctx, msg); err != nil {
			return result, m.fail(ctx, msg, err)
		}
	}
	return result, nil
}

func (m *Middleware) fail(ctx context.Context, msg Message, err error) error {
	if m.onError == nil {
		return err
	}
	return m.onError(ctx, msg, err)
}
