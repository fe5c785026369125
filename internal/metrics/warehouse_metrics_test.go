package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestNewWarehouseMetrics(t *testing.T) {
	metrics := newWarehouseMetricsWithRegisterer(prometheus.NewRegistry())

	if metrics == nil {
		t.Fatal("newWarehouseMetricsWithRegisterer should not return nil")
	}
	if metrics.productsCreated == nil {
		t.Error("productsCreated counter should not be nil")
	}
	if metrics.productsDeleted == nil {
		t.Error("productsDeleted counter should not be nil")
	}
	if metrics.ordersCreated == nil {
		t.Error("ordersCreated counter should not be nil")
	}
	if metrics.ordersConfirmed == nil {
		t.Error("ordersConfirmed counter should not be nil")
	}
	if metrics.ordersCancelled == nil {
		t.Error("ordersCancelled counter should not be nil")
	}
	if metrics.insufficientStock == nil {
		t.Error("insufficientStock counter should not be nil")
	}
	if metrics.versionConflicts == nil {
		t.Error("versionConflicts counter should not be nil")
	}
	if metrics.operationDuration == nil {
		t.Error("operationDuration histogram vec should not be nil")
	}
}

func TestNewWarehouseMetricsIdempotentRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()

	first := newWarehouseMetricsWithRegisterer(reg)
	// Повторная регистрация должна переиспользовать коллекторы, а не паниковать.
	second := newWarehouseMetricsWithRegisterer(reg)

	if first.ordersCreated != second.ordersCreated {
		t.Error("repeated registration should reuse the existing counter")
	}
}

func TestRecordCounters(t *testing.T) {
	metrics := newWarehouseMetricsWithRegisterer(prometheus.NewRegistry())

	metrics.RecordOrderCreated()
	metrics.RecordOrderCreated()
	metrics.RecordInsufficientStock()

	metric := &dto.Metric{}
	if err := metrics.ordersCreated.Write(metric); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}
	if metric.Counter.GetValue() != 2.0 {
		t.Errorf("expected ordersCreated 2.0, got %f", metric.Counter.GetValue())
	}

	metric = &dto.Metric{}
	if err := metrics.insufficientStock.Write(metric); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}
	if metric.Counter.GetValue() != 1.0 {
		t.Errorf("expected insufficientStock 1.0, got %f", metric.Counter.GetValue())
	}
}

func TestRecordOperationDuration(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := newWarehouseMetricsWithRegisterer(reg)

	metrics.RecordOperationDuration("create_order", 25*time.Millisecond)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}

	var found bool
	for _, family := range families {
		if family.GetName() != "wms_operation_duration_seconds" {
			continue
		}
		for _, m := range family.GetMetric() {
			for _, label := range m.GetLabel() {
				if label.GetName() == "operation" && label.GetValue() == "create_order" {
					found = true
					if m.GetHistogram().GetSampleCount() != 1 {
						t.Errorf("expected 1 sample, got %d", m.GetHistogram().GetSampleCount())
					}
				}
			}
		}
	}
	if !found {
		t.Error("expected a create_order sample in wms_operation_duration_seconds")
	}
}
