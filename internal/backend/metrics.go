package backend

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "botdash",
			Subsystem: "backend",
			Name:      "requests_total",
			Help:      "Backend calls by resource and outcome (ok or error kind).",
		},
		[]string{"resource", "outcome"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "botdash",
			Subsystem: "backend",
			Name:      "request_duration_seconds",
			Help:      "Backend call latency including decoding and validation.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"resource"},
	)
)

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	return ErrorKind(err)
}
