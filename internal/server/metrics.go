package server

import (
	"context"
	"errors"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	requests *prometheus.CounterVec
	exported *prometheus.CounterVec
	imported *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "keepsake",
			Name:      "rpc_requests_total",
			Help:      "RecordService calls by procedure and result code.",
		}, []string{"procedure", "code"}),
		exported: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "keepsake",
			Name:      "records_exported_total",
			Help:      "Records written to exported CSV files.",
		}, []string{"kind"}),
		imported: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "keepsake",
			Name:      "records_imported_total",
			Help:      "Parsed import rows by outcome.",
		}, []string{"kind", "outcome"}),
	}
	reg.MustRegister(m.requests, m.exported, m.imported)
	return m
}

// interceptor counts every unary call with its Connect code.
func (m *metrics) interceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			res, err := next(ctx, req)
			code := "ok"
			if err != nil {
				code = connect.CodeUnknown.String()
				var connectErr *connect.Error
				if errors.As(err, &connectErr) {
					code = connectErr.Code().String()
				}
			}
			m.requests.WithLabelValues(req.Spec().Procedure, code).Inc()
			return res, err
		}
	}
}
