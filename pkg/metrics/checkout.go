package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// CheckoutMetrics tracks order submission outcomes.
type CheckoutMetrics struct {
	orders    *prometheus.CounterVec
	orderSize prometheus.Histogram
}

// NewCheckoutMetrics registers the checkout metrics on the provided registerer.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	orders := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_orders_total",
		Help: "Checkout submissions by outcome.",
	}, []string{"outcome"})
	orderSize := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "checkout_order_items",
		Help:    "Number of line items per submitted order.",
		Buckets: []float64{1, 2, 3, 5, 8, 13, 21},
	})
	reg.MustRegister(orders, orderSize)
	return &CheckoutMetrics{
		orders:    orders,
		orderSize: orderSize,
	}
}

// IncOrder records a checkout attempt with the given outcome.
func (c *CheckoutMetrics) IncOrder(outcome string) {
	if c == nil || c.orders == nil {
		return
	}
	c.orders.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// ObserveOrderSize records how many line items an order carried.
func (c *CheckoutMetrics) ObserveOrderSize(items int) {
	if c == nil || c.orderSize == nil {
		return
	}
	c.orderSize.Observe(float64(items))
}
