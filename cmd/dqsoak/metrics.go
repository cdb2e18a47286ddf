package main

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type metrics struct {
	ops      *prometheus.CounterVec
	checks   prometheus.Counter
	failures prometheus.Counter
}

func newMetrics() *metrics {
	return &metrics{
		ops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dqsoak",
			Name:      "ops_total",
			Help:      "Deque operations performed, by kind.",
		}, []string{"op"}),
		checks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "dqsoak",
			Name:      "checks_total",
			Help:      "Full content verifications performed.",
		}),
		failures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "dqsoak",
			Name:      "check_failures_total",
			Help:      "Verifications that found a divergence.",
		}),
	}
}

func (m *metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{m.ops, m.checks, m.failures}
}

func serveMetrics(ctx context.Context, listen string, cs []prometheus.Collector) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(cs...)
	opts := promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	}
	mux := http.NewServeMux()
	mux.Handle("GET /metrics", promhttp.HandlerFor(reg, opts))
	mux.HandleFunc("GET /debug/pprof/", pprof.Index)
	mux.HandleFunc("GET /debug/pprof/profile", pprof.Profile)
	l, err := net.Listen("tcp", listen)
	if err != nil {
		return err
	}
	srv := http.Server{
		Handler:     mux,
		ReadTimeout: 5 * time.Second,
		BaseContext: func(l net.Listener) context.Context { return ctx },
	}
	go func() {
		<-ctx.Done()
		srv.Close()
	}()
	slog.InfoContext(ctx, "metrics server", slog.Any("addr", l.Addr()))
	return srv.Serve(l)
}
