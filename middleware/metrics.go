package middleware

import (
	"context"
	"reflect"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/donsprallo/wemux"
)

// Metrics returns a middleware node that counts messages passing through
// its chain, labeled by concrete message type and outcome. The counter is
// registered on reg; passing the same registerer twice panics, as usual
// with prometheus collectors.
func Metrics(reg prometheus.Registerer) *wemux.Middleware {
	messages := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "wemux_messages_total",
		Help: "Total number of messages dispatched through the bus, by message type and status.",
	}, []string{"type", "status"})
	reg.MustRegister(messages)

	return wemux.NewMiddleware(
		nil,
		func(_ context.Context, msg wemux.Message) error {
			messages.WithLabelValues(typeLabel(msg), "ok").Inc()
			return nil
		},
		func(_ context.Context, msg wemux.Message, err error) error {
			messages.WithLabelValues(typeLabel(msg), "error").Inc()
			return err
		},
	)
}

func typeLabel(msg wemux.Message) string {
	t := reflect.TypeOf(msg)
	if t == nil {
		return "unknown"
	}
	return t.String()
}
