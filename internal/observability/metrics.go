package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	sessionsStoredCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "activat",
		Subsystem: "sessions",
		Name:      "stored_total",
		Help:      "Number of completed sessions appended to the store.",
	})
	sessionStepsHistogram = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "activat",
		Subsystem: "sessions",
		Name:      "steps",
		Help:      "Step count of completed sessions.",
		Buckets:   []float64{100, 500, 1000, 2500, 5000, 10000, 20000},
	})
	lastSessionGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "activat",
		Subsystem: "sessions",
		Name:      "last_stored_timestamp_seconds",
		Help:      "Unix timestamp of the most recent session appended to the store.",
	})
	malformedRecordCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "activat",
		Subsystem: "store",
		Name:      "malformed_records_total",
		Help:      "Number of session log records skipped because they could not be decoded.",
	})
	storeErrorCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "activat",
		Subsystem: "store",
		Name:      "errors_total",
		Help:      "Number of failed store operations grouped by operation.",
	}, []string{"operation"})
	sensorReadingCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "activat",
		Subsystem: "sensor",
		Name:      "readings_total",
		Help:      "Number of step counter readings received.",
	})
	streamSubscribersGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "activat",
		Subsystem: "dashboard",
		Name:      "stream_subscribers",
		Help:      "Number of clients currently following the dashboard stream.",
	})
	rateLimitedCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "activat_rate_limited_requests_total",
		Help: "Requests rejected by a rate limit budget.",
	}, []string{"budget"})

	httpRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "activat",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Latency of API requests grouped by route and status.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

func init() {
	prometheus.MustRegister(
		sessionsStoredCounter,
		sessionStepsHistogram,
		lastSessionGauge,
		malformedRecordCounter,
		storeErrorCounter,
		sensorReadingCounter,
		streamSubscribersGauge,
		rateLimitedCounter,
		httpRequestDuration,
	)
}

// RecordSessionStored updates the session counters after a successful append.
func RecordSessionStored(steps int, ts time.Time) {
	sessionsStoredCounter.Inc()
	sessionStepsHistogram.Observe(float64(steps))
	if !ts.IsZero() {
		lastSessionGauge.Set(float64(ts.Unix()))
	}
}

func RecordMalformedRecords(n int) {
	if n > 0 {
		malformedRecordCounter.Add(float64(n))
	}
}

func RecordStoreError(operation string) {
	storeErrorCounter.WithLabelValues(operation).Inc()
}

func RecordSensorReading() {
	sensorReadingCounter.Inc()
}

func StreamSubscribed() {
	streamSubscribersGauge.Inc()
}

func StreamUnsubscribed() {
	streamSubscribersGauge.Dec()
}

func RecordRateLimited(budget string) {
	rateLimitedCounter.WithLabelValues(budget).Inc()
}

func RecordHTTPRequest(method, route, status string, elapsed time.Duration) {
	httpRequestDuration.WithLabelValues(method, route, status).Observe(elapsed.Seconds())
}
