// Package middleware provides ready-made wemux middleware for common
// cross-cutting concerns. The bus core itself neither logs nor measures;
// anything observability-shaped lives here, as plain chain nodes.
package middleware

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/donsprallo/wemux"
)

// Logging returns a middleware node that logs every message passing
// through its chain. The logger is ordinary state held by the node.
// Entries carry the message's concrete type and the correlation ID of the
// top-level call, so cascaded events can be tied back to their trigger.
func Logging(logger zerolog.Logger) *wemux.Middleware {
	return wemux.NewMiddleware(
		func(ctx context.Context, msg wemux.Message) error {
			logger.Info().
				Str("correlation_id", wemux.CorrelationID(ctx)).
				Type("message", msg).
				Msg("handle message")
			return nil
		},
		func(ctx context.Context, msg wemux.Message) error {
			logger.Info().
				Str("correlation_id", wemux.CorrelationID(ctx)).
				Type("message", msg).
				Msg("message handled")
			return nil
		},
		func(ctx context.Context, msg wemux.Message, err error) error {
			logger.Error().
				Str("correlation_id", wemux.CorrelationID(ctx)).
				Type("message", msg).
				Err(err).
				Msg("message failed")
			return err
		},
	)
}
