// Package metrics exposes the Prometheus collectors used by the API.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "movie_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "route", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "movie_api_request_duration_seconds",
			Help:    "API request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "movie_api_active_requests",
			Help: "Number of requests currently being served",
		},
	)

	RateLimitedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "movie_api_rate_limited_total",
			Help: "Requests rejected by the auth rate limiter",
		},
	)

	// Uploads
	ImageUploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "movie_image_uploads_total",
			Help: "Image uploads by outcome",
		},
		[]string{"result", "type"},
	)

	ImageUploadBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "movie_image_upload_bytes",
			Help:    "Size of stored images after recompression",
			Buckets: prometheus.ExponentialBuckets(16*1024, 2, 9), // 16KB .. 4MB
		},
	)

	// Cleanup
	CleanupRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "movie_image_cleanup_runs_total",
			Help: "Expired image sweeps by outcome",
		},
		[]string{"result"},
	)

	CleanupRemovedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "movie_image_cleanup_removed_total",
			Help: "Expired images removed by the cleanup task",
		},
	)
)

func RecordAPIRequest(method, route string, status int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordImageUpload counts an upload attempt; size is only observed on success.
func RecordImageUpload(mimeType string, size int, err error) {
	if err != nil {
		ImageUploadsTotal.WithLabelValues("error", mimeType).Inc()
		return
	}
	ImageUploadsTotal.WithLabelValues("success", mimeType).Inc()
	ImageUploadBytes.Observe(float64(size))
}

func RecordCleanup(removed int, err error) {
	if err != nil {
		CleanupRunsTotal.WithLabelValues("error").Inc()
	} else {
		CleanupRunsTotal.WithLabelValues("success").Inc()
	}
	CleanupRemovedTotal.Add(float64(removed))
}
