package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	ResultChanged  = "changed"
	ResultNoop     = "noop"
	ResultRejected = "rejected"
)

// CartMetrics records cart operations and the current number of line items.
type CartMetrics struct {
	operations *prometheus.CounterVec
	lineItems  prometheus.Gauge
}

// NewCartMetrics registers the cart metrics on the provided registerer.
func NewCartMetrics(reg prometheus.Registerer) *CartMetrics {
	if reg == nil {
		return &CartMetrics{}
	}
	operations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_operations_total",
		Help: "Cart operations by name and outcome.",
	}, []string{"op", "result"})
	lineItems := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "cart_line_items",
		Help: "Number of line items currently in the cart.",
	})
	reg.MustRegister(operations, lineItems)
	return &CartMetrics{
		operations: operations,
		lineItems:  lineItems,
	}
}

// ObserveOperation counts one operation with its outcome.
func (c *CartMetrics) ObserveOperation(op, result string) {
	if c == nil || c.operations == nil {
		return
	}
	c.operations.WithLabelValues(normalizeLabel(op), normalizeLabel(result)).Inc()
}

// SetLineItems publishes the current line item count.
func (c *CartMetrics) SetLineItems(n int) {
	if c == nil || c.lineItems == nil {
		return
	}
	c.lineItems.Set(float64(n))
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
