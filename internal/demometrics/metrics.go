// Package demometrics declares the Prometheus metrics the circbufd demo
// binary records while driving a ring, and serves them over HTTP.
package demometrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// PushTotal counts successful Push calls, labeled by ring mode.
	PushTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "circbufd_push_total",
		Help: "Total successful pushes.",
	}, []string{"mode"})

	// PopTotal counts successful Pop calls, labeled by ring mode.
	PopTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "circbufd_pop_total",
		Help: "Total successful pops.",
	}, []string{"mode"})

	// WouldBlockTotal counts ErrWouldBlock observations, split by whether
	// the caller was pushing or popping.
	WouldBlockTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "circbufd_would_block_total",
		Help: "Total WouldBlock signals observed.",
	}, []string{"mode", "op"})

	// ClaimLatency is a histogram for how long a successful claim took to
	// observe readiness. circbufd registers it but records no observations
	// into it.
	ClaimLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "circbufd_claim_latency_seconds",
		Help:    "Time from first head/tail observation to a successful claim.",
		Buckets: prometheus.ExponentialBuckets(1e-7, 4, 10),
	}, []string{"mode", "op"})
)

// Serve starts the Prometheus /metrics endpoint on addr. It returns
// immediately; the listener runs in its own goroutine, logging (via the
// caller-supplied error sink) only if the listener itself fails to start.
func Serve(addr string, onError func(error)) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil && onError != nil {
			onError(err)
		}
	}()
}
