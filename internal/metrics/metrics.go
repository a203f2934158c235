// Package metrics exposes Prometheus counters for storefront activity.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics groups the commerce counters and the registry they are exported from.
type Metrics struct {
	Registry *prometheus.Registry

	CartMutations      *prometheus.CounterVec
	Checkouts          *prometheus.CounterVec
	OrderStatusUpdates *prometheus.CounterVec
	ReviewSubmissions  prometheus.Counter
	ReviewModerations  *prometheus.CounterVec
}

// New creates the counters on a fresh registry alongside Go runtime collectors.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		CartMutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "yaraan",
			Name:      "cart_mutations_total",
			Help:      "Cart and wishlist mutations by operation.",
		}, []string{"operation"}),
		Checkouts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "yaraan",
			Name:      "checkouts_total",
			Help:      "Checkout attempts by outcome.",
		}, []string{"outcome"}),
		OrderStatusUpdates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "yaraan",
			Name:      "order_status_updates_total",
			Help:      "Administrator order status writes by target status.",
		}, []string{"status"}),
		ReviewSubmissions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "yaraan",
			Name:      "review_submissions_total",
			Help:      "Reviews submitted by shoppers.",
		}),
		ReviewModerations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "yaraan",
			Name:      "review_moderations_total",
			Help:      "Review moderation actions.",
		}, []string{"action"}),
	}

	m.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.CartMutations,
		m.Checkouts,
		m.OrderStatusUpdates,
		m.ReviewSubmissions,
		m.ReviewModerations,
	)
	return m
}
