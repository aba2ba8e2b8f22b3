package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts requests by method, route pattern, and status.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stayharbor_http_requests_total",
			Help: "Total HTTP requests processed.",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration observes request latency by method and route pattern.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "stayharbor_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// BookingConflictsTotal counts reservation attempts rejected for date overlap.
	BookingConflictsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "stayharbor_booking_conflicts_total",
			Help: "Reservation attempts rejected because the room was already booked.",
		},
	)

	// PaymentsRejectedTotal counts payments rejected for exceeding the balance.
	PaymentsRejectedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "stayharbor_payments_rejected_total",
			Help: "Payments rejected because the amount exceeded the outstanding balance.",
		},
	)
)
