// Package metrics defines the custom Prometheus metrics of the scheduling
// API. Metrics are registered with the default registry on package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "rushhour"

// ── Booking metrics ───────────────────────────────────────────────────────────

// AppointmentsBookedTotal counts appointments created by successful bookings.
// A chain of three activities adds three.
var AppointmentsBookedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "appointments_booked_total",
		Help:      "Total number of appointments created.",
	},
)

// BookingRequestsTotal counts successful booking requests.
// Label:
//   - result: "created" or "updated"
var BookingRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "booking_requests_total",
		Help:      "Total number of successful booking requests, by result.",
	},
	[]string{"result"},
)

// AvailabilityRejectionsTotal counts bookings refused because the employee
// was busy or outside the provider's working window.
var AvailabilityRejectionsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "availability_rejections_total",
		Help:      "Total number of bookings rejected for lack of availability.",
	},
)

// ── Authorization metrics ─────────────────────────────────────────────────────

// GuardDenialsTotal counts requests refused by the authorization guard.
var GuardDenialsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_denials_total",
		Help:      "Total number of requests denied by the authorization guard.",
	},
)

// ── Audit metrics ─────────────────────────────────────────────────────────────

// RegisterAuditQueueDepth exposes the number of audit events waiting to be
// written. Call it once at startup.
func RegisterAuditQueueDepth(pending func() int) prometheus.GaugeFunc {
	return promauto.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "audit_queue_depth",
			Help:      "Current number of audit events pending in the dispatcher.",
		},
		func() float64 { return float64(pending()) },
	)
}
