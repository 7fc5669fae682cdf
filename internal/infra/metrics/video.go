package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	register(
		videoRequestsTotal,
		videoClaimsTotal,
		videoDeliveriesTotal,
		videoDeliveryLatencyMs,
		videoPendingRequests,
	)
}

var (
	videoRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "video_requests_total",
			Help: "Website video requests by result (unauthorized/queued/delivered/failed).",
		},
		[]string{"result"},
	)

	videoClaimsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "video_claims_total",
			Help: "Bot contacts by result (empty/delivered/failed).",
		},
		[]string{"result"},
	)

	videoDeliveriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "video_deliveries_total",
			Help: "Forward attempts by source (request/claim) and status (succeeded/failed).",
		},
		[]string{"source", "status"},
	)

	videoDeliveryLatencyMs = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "video_delivery_latency_ms",
			Help:    "Forward call latency distribution in milliseconds.",
			Buckets: []float64{25, 50, 100, 200, 400, 800, 1600, 3000, 5000, 15000},
		},
		[]string{"status"},
	)

	videoPendingRequests = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "video_pending_requests",
			Help: "Requests waiting for the user to contact the bot.",
		},
	)
)

func IncVideoRequest(result string) {
	videoRequestsTotal.WithLabelValues(norm(result)).Inc()
}

func IncVideoClaim(result string) {
	videoClaimsTotal.WithLabelValues(norm(result)).Inc()
}

func ObserveDelivery(source, status string, elapsed time.Duration) {
	videoDeliveriesTotal.WithLabelValues(norm(source), norm(status)).Inc()
	videoDeliveryLatencyMs.WithLabelValues(norm(status)).Observe(float64(elapsed.Milliseconds()))
}

func SetPendingRequests(n int) {
	videoPendingRequests.Set(float64(n))
}
