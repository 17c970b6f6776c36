package wemux

import (
	"context"

	"github.com/google/uuid"
)

type collectorCtxKey struct{}

type correlationCtxKey struct{}

// withDispatch marks ctx as belonging to one top-level bus call: it
// attaches the call's collector and a fresh correlation ID. The context
// must not outlive the call that created it.
func withDispatch(ctx context.Context, col *Collector) context.Context {
	ctx = context.WithValue(ctx, collectorCtxKey{}, col)
	return context.WithValue(ctx, correlationCtxKey{}, uuid.NewString())
}

func collectorFrom(ctx context.Context) *Collector {
	col, _ := ctx.Value(collectorCtxKey{}).(*Collector)
	return col
}

// Push hands evt to the collector of the running top-level call. The event
// is dispatched after the currently handled message finishes and before
// the top-level call returns. Push outside a dispatch returns
// ErrNoCollector.
func Push(ctx context.Context, evt Event) error {
	col := collectorFrom(ctx)
	if col == nil {
		return ErrNoCollector
	}
	col.Push(evt)
	return nil
}

// CorrelationID returns the ID assigned to the running top-level call, or
// the empty string outside a dispatch. The triggering message and every
// event cascaded from it share one ID.
func CorrelationID(ctx context.Context) string {
	id, _ := ctx.Value(correlationCtxKey{}).(string)
	return id
}
