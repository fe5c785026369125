package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// WarehouseMetrics содержит метрики операций складского сервиса.
type WarehouseMetrics struct {
	// Счётчики операций
	productsCreated prometheus.Counter
	productsDeleted prometheus.Counter
	ordersCreated   prometheus.Counter
	ordersConfirmed prometheus.Counter
	ordersCancelled prometheus.Counter

	// Счётчики отказов
	insufficientStock prometheus.Counter
	versionConflicts  prometheus.Counter

	// Гистограмма времени выполнения операций
	operationDuration *prometheus.HistogramVec
}

// NewWarehouseMetrics создаёт новый экземпляр метрик склада.
func NewWarehouseMetrics() *WarehouseMetrics {
	return newWarehouseMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func newWarehouseMetricsWithRegisterer(registerer prometheus.Registerer) *WarehouseMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &WarehouseMetrics{
		productsCreated: registerCounter(registerer, prometheus.CounterOpts{
			Name: "wms_products_created_total",
			Help: "Total number of products created",
		}),
		productsDeleted: registerCounter(registerer, prometheus.CounterOpts{
			Name: "wms_products_deleted_total",
			Help: "Total number of products deleted",
		}),
		ordersCreated: registerCounter(registerer, prometheus.CounterOpts{
			Name: "wms_orders_created_total",
			Help: "Total number of orders created",
		}),
		ordersConfirmed: registerCounter(registerer, prometheus.CounterOpts{
			Name: "wms_orders_confirmed_total",
			Help: "Total number of orders confirmed",
		}),
		ordersCancelled: registerCounter(registerer, prometheus.CounterOpts{
			Name: "wms_orders_cancelled_total",
			Help: "Total number of orders cancelled",
		}),
		insufficientStock: registerCounter(registerer, prometheus.CounterOpts{
			Name: "wms_insufficient_stock_total",
			Help: "Total number of order attempts rejected due to insufficient stock",
		}),
		versionConflicts: registerCounter(registerer, prometheus.CounterOpts{
			Name: "wms_version_conflicts_total",
			Help: "Total number of optimistic locking conflicts surfaced to callers",
		}),
		operationDuration: registerHistogramVec(registerer, prometheus.HistogramOpts{
			Name:    "wms_operation_duration_seconds",
			Help:    "Duration of warehouse service operations in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"operation"}),
	}
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	collector := prometheus.NewCounter(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Counter)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogramVec(registerer prometheus.Registerer, opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	collector := prometheus.NewHistogramVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.HistogramVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram vec %q: %v", opts.Name, err))
	}
	return collector
}

// RecordProductCreated увеличивает счётчик созданных продуктов.
func (m *WarehouseMetrics) RecordProductCreated() {
	m.productsCreated.Inc()
}

// RecordProductDeleted увеличивает счётчик удалённых продуктов.
func (m *WarehouseMetrics) RecordProductDeleted() {
	m.productsDeleted.Inc()
}

// RecordOrderCreated увеличивает счётчик созданных заказов.
func (m *WarehouseMetrics) RecordOrderCreated() {
	m.ordersCreated.Inc()
}

// RecordOrderConfirmed увеличивает счётчик подтверждённых заказов.
func (m *WarehouseMetrics) RecordOrderConfirmed() {
	m.ordersConfirmed.Inc()
}

// RecordOrderCancelled увеличивает счётчик отменённых заказов.
func (m *WarehouseMetrics) RecordOrderCancelled() {
	m.ordersCancelled.Inc()
}

// RecordInsufficientStock увеличивает счётчик отказов из-за нехватки остатка.
func (m *WarehouseMetrics) RecordInsufficientStock() {
	m.insufficientStock.Inc()
}

// RecordVersionConflict увеличивает счётчик конфликтов optimistic locking.
func (m *WarehouseMetrics) RecordVersionConflict() {
	m.versionConflicts.Inc()
}

// RecordOperationDuration записывает длительность операции сервиса.
func (m *WarehouseMetrics) RecordOperationDuration(operation string, duration time.Duration) {
	m.operationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}
