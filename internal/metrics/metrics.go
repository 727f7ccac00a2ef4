package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

var (
	FetchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "heliotrack_fetches_total", Help: "DONKI fetches by endpoint and outcome"},
		[]string{"endpoint", "outcome"})
	EventsFetched = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "heliotrack_events_fetched_total", Help: "normalized events by type"},
		[]string{"type"})
	FetchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "heliotrack_fetch_duration_seconds", Help: "DONKI fetch latency", Buckets: prometheus.DefBuckets},
		[]string{"endpoint"})
	PairsResolved = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "heliotrack_pairs_resolved_total", Help: "propagation pairs by relation"},
		[]string{"relation"})
	ChainsResolved = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "heliotrack_chains_resolved_total", Help: "full flare-cme-storm chains"})
	AnomaliesFlagged = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "heliotrack_anomalies_flagged_total", Help: "negative-delta propagation pairs"})
)

func init() {
	prometheus.MustRegister(FetchesTotal, EventsFetched, FetchDuration, PairsResolved, ChainsResolved, AnomaliesFlagged)
}

func Serve(addr string, log *zap.SugaredLogger) {
	http.Handle("/metrics", promhttp.Handler())
	if err := http.ListenAndServe(addr, nil); err != nil {
		log.Warnw("metrics server stopped", "err", err)
	}
}
