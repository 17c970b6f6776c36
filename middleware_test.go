package wemux

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type traceMiddleware struct {
	trace *[]string
}

func (tm traceMiddleware) node(name string) *Middleware {
	return NewMiddleware(
		func(ctx context.Context, msg Message) error {
			*tm.trace = append(*tm.trace, name+":before")
			return nil
		},
		func(ctx context.Context, msg Message) error {
			*tm.trace = append(*tm.trace, name+":after")
			return nil
		},
		func(ctx context.Context, msg Message, err error) error {
			*tm.trace = append(*tm.trace, name+":error")
			return err
		},
	)
}

func execChain(t *testing.T, chain *Middleware, terminal terminalFunc) (any, error) {
	t.Helper()
	return chain.exec(context.Background(), exampleCommand{}, terminal)
}

func TestMiddlewareExecSuccessOrder(t *testing.T) {
	var trace []string
	tm := traceMiddleware{trace: &trace}
	chain := Use(tm.node("m1"), tm.node("m2"))

	result, err := execChain(t, chain, func(ctx context.Context) (any, error) {
		trace = append(trace, "handler")
		return "done", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "done", result)
	assert.Equal(t, []string{"m1:before", "m2:before", "handler", "m2:after", "m1:after"}, trace)
}

func TestMiddlewareExecFailureOrder(t *testing.T) {
	var trace []string
	tm := traceMiddleware{trace: &trace}
	chain := Use(tm.node("m1"), tm.node("m2"))
	errBoom := errors.New("boom")

	_, err := execChain(t, chain, func(ctx context.Context) (any, error) {
		return nil, errBoom
	})
	assert.ErrorIs(t, err, errBoom)
	// Error hooks walk outward from the failure: innermost node first.
	assert.Equal(t, []string{"m1:before", "m2:before", "m2:error", "m1:error"}, trace)
}

func TestMiddlewareBeforeFailure(t *testing.T) {
	var trace []string
	tm := traceMiddleware{trace: &trace}
	errBefore := errors.New("before failed")
	head := NewMiddleware(
		func(ctx context.Context, msg Message) error { return errBefore },
		nil,
		func(ctx context.Context, msg Message, err error) error {
			trace = append(trace, "head:error")
			return err
		},
	)
	chain := Use(head, tm.node("m2"))

	handled := false
	_, err := execChain(t, chain, func(ctx context.Context) (any, error) {
		handled = true
		return nil, nil
	})
	assert.ErrorIs(t, err, errBefore)
	assert.False(t, handled, "a failing before hook must prevent the wrapped call")
	assert.Equal(t, []string{"head:error"}, trace,
		"inner nodes never ran, so only the failing node's error hook fires")
}

func TestMiddlewareAfterFailure(t *testing.T) {
	var trace []string
	tm := traceMiddleware{trace: &trace}
	errAfter := errors.New("after failed")
	inner := NewMiddleware(
		nil,
		func(ctx context.Context, msg Message) error { return errAfter },
		func(ctx context.Context, msg Message, err error) error {
			trace = append(trace, "inner:error")
			return err
		},
	)
	chain := Use(tm.node("m1"), inner)

	_, err := execChain(t, chain, func(ctx context.Context) (any, error) {
		trace = append(trace, "handler")
		return nil, nil
	})
	assert.ErrorIs(t, err, errAfter)
	assert.Equal(t, []string{"m1:before", "handler", "inner:error", "m1:error"}, trace,
		"a failing after hook must still be observed by the outer error hooks")
}

func TestMiddlewareAbsorbError(t *testing.T) {
	var trace []string
	tm := traceMiddleware{trace: &trace}
	absorber := OnError(func(ctx context.Context, msg Message, err error) error {
		trace = append(trace, "absorbed")
		return nil
	})
	chain := Use(tm.node("m1"), absorber)

	result, err := execChain(t, chain, func(ctx context.Context) (any, error) {
		return nil, errors.New("boom")
	})
	assert.NoError(t, err, "an absorbed error must not propagate outward")
	assert.Nil(t, result)
	assert.Equal(t, []string{"m1:before", "absorbed", "m1:after"}, trace,
		"outer nodes treat the absorbed failure as success")
}

func TestMiddlewareErrorTransform(t *testing.T) {
	errWrapped := errors.New("wrapped")
	wrapper := OnError(func(ctx context.Context, msg Message, err error) error {
		return errWrapped
	})
	_, err := execChain(t, Use(wrapper), func(ctx context.Context) (any, error) {
		return nil, errors.New("original")
	})
	assert.ErrorIs(t, err, errWrapped)
}

func TestMiddlewareChainFluent(t *testing.T) {
	var trace []string
	tm := traceMiddleware{trace: &trace}
	head := tm.node("m1")
	tail := head.Chain(tm.node("m2")).Chain(tm.node("m3"))
	assert.NotSame(t, head, tail, "Chain returns the appended node")

	_, err := head.exec(context.Background(), exampleCommand{}, func(ctx context.Context) (any, error) {
		trace = append(trace, "handler")
		return nil, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"m1:before", "m2:before", "m3:before",
		"handler",
		"m3:after", "m2:after", "m1:after",
	}, trace)
}

func TestUseCopiesNodes(t *testing.T) {
	var trace []string
	tm := traceMiddleware{trace: &trace}
	shared := tm.node("shared")

	// The same node serves two chains without the second build rewiring
	// the first.
	first := Use(shared, tm.node("a"))
	second := Use(shared, tm.node("b"))

	_, err := execChain(t, first, func(ctx context.Context) (any, error) { return nil, nil })
	require.NoError(t, err)
	assert.Equal(t, []string{"shared:before", "a:before", "a:after", "shared:after"}, trace)

	trace = trace[:0]
	_, err = execChain(t, second, func(ctx context.Context) (any, error) { return nil, nil })
	require.NoError(t, err)
	assert.Equal(t, []string{"shared:before", "b:before", "b:after", "shared:after"}, trace)
}

func TestUseCopiesLinkedChains(t *testing.T) {
	var trace []string
	tm := traceMiddleware{trace: &trace}
	head := tm.node("m1")
	head.Chain(tm.node("m2"))

	// Passing a pre-linked head carries its whole sub-chain along.
	chain := Use(head, tm.node("m3"))
	_, err := execChain(t, chain, func(ctx context.Context) (any, error) { return nil, nil })
	require.NoError(t, err)
	assert.Equal(t, []string{
		"m1:before", "m2:before", "m3:before",
		"m3:after", "m2:after", "m1:after",
	}, trace)
}

func TestUseEmptyChain(t *testing.T) {
	assert.Nil(t, Use())
	assert.Nil(t, Use(nil, nil))

	ran := false
	result, err := execChain(t, Use(), func(ctx context.Context) (any, error) {
		ran = true
		return 42, nil
	})
	require.NoError(t, err)
	assert.True(t, ran, "the empty chain is a pass-through")
	assert.Equal(t, 42, result)
}
