// Package metrics defines and registers all custom Prometheus metrics for
// the booking API. It is the single source of truth for metric names,
// labels, and help strings; collectors self-register via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "booking"

// BookingsCreatedTotal counts successfully created bookings.
// Label:
//   - role: the role of the creating actor ("admin" or "user")
var BookingsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bookings_created_total",
		Help:      "Total number of bookings created, by actor role.",
	},
	[]string{"role"},
)

// BookingsQuotaRejectedTotal counts booking creations rejected because the
// actor had reached the pending-booking limit.
var BookingsQuotaRejectedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bookings_quota_rejected_total",
		Help:      "Total number of booking creations rejected by the pending quota.",
	},
)

// ProvidersCascadeDeletedTotal counts provider deletions, each of which
// cascades to the provider's bookings and stored images.
var ProvidersCascadeDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "providers_cascade_deleted_total",
		Help:      "Total number of providers deleted together with their bookings.",
	},
)

// ImagesUploadedTotal counts provider image objects written to storage.
var ImagesUploadedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "images_uploaded_total",
		Help:      "Total number of provider images uploaded to object storage.",
	},
)

// RateLimitedTotal counts requests rejected by the redis rate limiter.
var RateLimitedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_total",
		Help:      "Total number of requests rejected by the rate limiter.",
	},
)
