package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	ErrorsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobboard_errors_total",
			Help: "Total number of logged errors.",
		},
		[]string{"type"},
	)
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobboard_http_requests_total",
			Help: "Total number of handled HTTP requests.",
		},
		[]string{"method", "route", "status"},
	)
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "jobboard_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	JobsPosted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "jobboard_jobs_posted_total",
			Help: "Total number of posted jobs.",
		},
	)
	ApplicationsSubmitted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "jobboard_applications_submitted_total",
			Help: "Total number of submitted applications.",
		},
	)
	Logins = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobboard_logins_total",
			Help: "Total number of completed logins per identity provider.",
		},
		[]string{"provider"},
	)
)

var registerOnce sync.Once

// Register adds the collectors to the default registry. Safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(ErrorsCounter)
		prometheus.MustRegister(HTTPRequests)
		prometheus.MustRegister(HTTPDuration)
		prometheus.MustRegister(JobsPosted)
		prometheus.MustRegister(ApplicationsSubmitted)
		prometheus.MustRegister(Logins)
	})
}
