package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "backoffice_http_requests_total",
		Help: "HTTP requests by route pattern, method and status.",
	}, []string{"route", "method", "status"})

	HTTPDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "backoffice_http_request_duration_seconds",
		Help:    "HTTP request latency by route pattern.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method"})

	ImportRows = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "backoffice_report_import_rows_total",
		Help: "Bulk import rows by outcome (accepted, invalid, duplicate, failed).",
	}, []string{"outcome"})

	ReportExports = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "backoffice_report_exports_total",
		Help: "Workbooks exported.",
	})
)

const (
	OutcomeAccepted  = "accepted"
	OutcomeInvalid   = "invalid"
	OutcomeDuplicate = "duplicate"
	OutcomeFailed    = "failed"
)

func init() {
	prometheus.MustRegister(HTTPRequests, HTTPDuration, ImportRows, ReportExports)
}
