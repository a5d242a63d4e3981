package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "naturekids"

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route pattern and status code.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route pattern.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	paymentCharges = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payment_charges_total",
			Help:      "Simulated payment attempts by outcome.",
		},
		[]string{"outcome"},
	)

	bookingTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_transitions_total",
			Help:      "Booking status transitions by resulting status.",
		},
		[]string{"status"},
	)

	reviewsSubmitted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reviews_submitted_total",
			Help:      "Reviews accepted into the ledger.",
		},
	)

	rewardsEarned = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rewards_earned_total",
			Help:      "Journey rewards awarded by type.",
		},
		[]string{"reward"},
	)

	recommendations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recommendations_total",
			Help:      "Activity suggestions served by source.",
		},
		[]string{"source"},
	)
)

const (
	PaymentApproved = "approved"
	PaymentDeclined = "declined"
	PaymentTimeout  = "timeout"
	PaymentError    = "error"
	PaymentOrphaned = "orphaned"
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			httpRequests,
			httpDuration,
			paymentCharges,
			bookingTransitions,
			reviewsSubmitted,
			rewardsEarned,
			recommendations,
		)
	})
}

func ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func IncPayment(outcome string) {
	paymentCharges.WithLabelValues(outcome).Inc()
}

func IncBookingTransition(status string) {
	bookingTransitions.WithLabelValues(status).Inc()
}

func IncReview() {
	reviewsSubmitted.Inc()
}

func IncReward(reward string) {
	rewardsEarned.WithLabelValues(reward).Inc()
}

func IncRecommendation(source string) {
	recommendations.WithLabelValues(source).Inc()
}
