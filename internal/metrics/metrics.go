// Package metrics exposes Prometheus collectors for the purchase pipeline.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "plugevents"

var (
	sessionTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "session_transitions_total",
			Help:      "Purchase session transitions by resulting state",
		},
		[]string{"state"},
	)

	quantityRejections = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quantity_rejections_total",
			Help:      "Quantity changes rejected for leaving the allowed range",
		},
	)

	paymentsInitiated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payments_initiated_total",
			Help:      "Payment attempts handed to a gateway",
		},
		[]string{"gateway", "status"},
	)

	paymentOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payment_outcomes_total",
			Help:      "Resolved payment attempts by outcome",
		},
		[]string{"gateway", "outcome"},
	)

	ticketsSold = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tickets_sold_total",
			Help:      "Tickets sold per event",
		},
		[]string{"event_id"},
	)

	revenue = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "revenue_major_units_total",
			Help:      "Revenue of completed purchases in major currency units",
		},
		[]string{"event_id"},
	)

	appointmentsRequested = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "appointments_requested_total",
			Help:      "Appointment requests accepted",
		},
	)

	notificationsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_published_total",
			Help:      "Notifications handed to the publisher",
		},
		[]string{"type", "status"},
	)

	httpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

func SessionTransition(state string) {
	sessionTransitions.WithLabelValues(state).Inc()
}

func QuantityRejected() {
	quantityRejections.Inc()
}

func PaymentInitiated(gateway string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	paymentsInitiated.WithLabelValues(gateway, status).Inc()
}

func PaymentResolved(gateway, outcome string) {
	paymentOutcomes.WithLabelValues(gateway, outcome).Inc()
}

// TicketsSold records a completed purchase.
func TicketsSold(eventID string, quantity int, amount int64) {
	ticketsSold.WithLabelValues(eventID).Add(float64(quantity))
	revenue.WithLabelValues(eventID).Add(float64(amount))
}

func AppointmentRequested() {
	appointmentsRequested.Inc()
}

func NotificationPublished(notificationType string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	notificationsPublished.WithLabelValues(notificationType, status).Inc()
}

// Middleware observes request latency per matched route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpDuration.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
