// Package metrics exposes Prometheus instruments for the storefront.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

// StoreMetrics holds the storefront's Prometheus collectors.
type StoreMetrics struct {
	matchRequests  *prometheus.CounterVec
	matchDuration  *prometheus.HistogramVec
	cartOperations *prometheus.CounterVec
	ordersTotal    prometheus.Counter
	orderValue     prometheus.Histogram
	orderItems     prometheus.Histogram
}

// New registers the collectors with the default registerer.
func New() *StoreMetrics {
	return newWithRegisterer(prometheus.DefaultRegisterer)
}

func newWithRegisterer(registerer prometheus.Registerer) *StoreMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &StoreMetrics{
		matchRequests: register(registerer, prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "realpreco_smart_list_requests_total",
			Help: "Smart shopping list match requests by outcome",
		}, []string{"status"})),
		matchDuration: register(registerer, prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "realpreco_smart_list_duration_seconds",
			Help:    "Duration of smart shopping list match requests in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 4, 8, 15, 30},
		}, []string{"status"})),
		cartOperations: register(registerer, prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "realpreco_cart_operations_total",
			Help: "Cart mutations by operation",
		}, []string{"operation"})),
		ordersTotal: register(registerer, prometheus.NewCounter(prometheus.CounterOpts{
			Name: "realpreco_orders_confirmed_total",
			Help: "Orders confirmed after PIX payment",
		})),
		orderValue: register(registerer, prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "realpreco_order_value_brl",
			Help:    "Confirmed order totals in BRL",
			Buckets: []float64{25, 50, 100, 200, 400, 800},
		})),
		orderItems: register(registerer, prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "realpreco_order_items",
			Help:    "Units per confirmed order",
			Buckets: prometheus.LinearBuckets(5, 5, 8),
		})),
	}
}

// register returns the already-registered collector when one with the same
// descriptor exists, so repeated construction in one process is safe.
func register[C prometheus.Collector](registerer prometheus.Registerer, collector C) C {
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(C)
			if !ok {
				panic(fmt.Sprintf("collector already registered with unexpected type: %T", alreadyRegistered.ExistingCollector))
			}
			return existing
		}
		panic(fmt.Sprintf("register collector: %v", err))
	}
	return collector
}

// ObserveMatch records a completed smart-list match.
func (m *StoreMetrics) ObserveMatch(status string, elapsed time.Duration) {
	m.matchRequests.WithLabelValues(status).Inc()
	m.matchDuration.WithLabelValues(status).Observe(elapsed.Seconds())
}

// RecordCartOperation counts a cart mutation.
func (m *StoreMetrics) RecordCartOperation(operation string) {
	m.cartOperations.WithLabelValues(operation).Inc()
}

// RecordOrderConfirmed records a confirmed order.
func (m *StoreMetrics) RecordOrderConfirmed(total decimal.Decimal, items int) {
	m.ordersTotal.Inc()
	m.orderValue.Observe(total.InexactFloat64())
	m.orderItems.Observe(float64(items))
}
