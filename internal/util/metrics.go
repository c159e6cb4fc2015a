package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	InvoicesCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "invoices_created_total",
		Help: "Total number of invoices created",
	})

	InvoicesFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "invoices_failed_total",
		Help: "Total number of failed invoice submissions",
	}, []string{"reason"})

	InvoicePersistLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "invoice_persist_latency_seconds",
		Help:    "Latency of invoice persistence",
		Buckets: prometheus.DefBuckets,
	})

	CatalogReloadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_reloads_total",
		Help: "Total number of catalog index reloads",
	}, []string{"result"})

	CustomerReloadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "customer_reloads_total",
		Help: "Total number of customer directory reloads",
	}, []string{"result"})

	PartMutationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "part_mutations_total",
		Help: "Total number of catalog mutations",
	}, []string{"op"})

	CustomerMutationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "customer_mutations_total",
		Help: "Total number of customer mutations",
	}, []string{"op"})

	LoginAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "login_attempts_total",
		Help: "Total number of login attempts",
	}, []string{"result"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
