package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Метки исходов операций сервисного слоя.
const (
	OutcomeOK        = "ok"
	OutcomeInvalid   = "invalid"
	OutcomeNotFound  = "not_found"
	OutcomeConflict  = "conflict"
	OutcomeIntegrity = "integrity_fault"
	OutcomeInternal  = "internal"
)

// ServiceMetrics содержит метрики операций каталога и заказов.
type ServiceMetrics struct {
	// Счётчик операций по имени и исходу.
	operations *prometheus.CounterVec
	// Гистограмма времени выполнения операций.
	operationDuration *prometheus.HistogramVec
	// Счётчик опубликованных событий сущностей.
	entityEvents prometheus.Counter
	// Счётчик срабатываний каскадного удаления пар.
	cascadeRemovals prometheus.Counter
}

// NewServiceMetrics создаёт и регистрирует метрики в глобальном registerer.
func NewServiceMetrics() *ServiceMetrics {
	return newServiceMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func newServiceMetricsWithRegisterer(registerer prometheus.Registerer) *ServiceMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &ServiceMetrics{
		operations: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "catalog_operations_total",
			Help: "Total number of service operations by operation and outcome",
		}, []string{"operation", "outcome"}),
		operationDuration: registerHistogramVec(registerer, prometheus.HistogramOpts{
			Name:    "catalog_operation_duration_seconds",
			Help:    "Duration of service operations in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"operation"}),
		entityEvents: registerCounter(registerer, prometheus.CounterOpts{
			Name: "catalog_entity_events_total",
			Help: "Total number of entity events published",
		}),
		cascadeRemovals: registerCounter(registerer, prometheus.CounterOpts{
			Name: "catalog_cascade_removals_total",
			Help: "Total number of cascade cleanups on entity delete",
		}),
	}
}

// RecordOperation фиксирует исход операции.
func (m *ServiceMetrics) RecordOperation(operation, outcome string) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(operation, outcome).Inc()
}

// RecordOperationDuration фиксирует время выполнения операции.
func (m *ServiceMetrics) RecordOperationDuration(operation string, duration time.Duration) {
	if m == nil {
		return
	}
	m.operationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordEntityEvent увеличивает счётчик опубликованных событий.
func (m *ServiceMetrics) RecordEntityEvent() {
	if m == nil {
		return
	}
	m.entityEvents.Inc()
}

// RecordCascadeRemoval увеличивает счётчик каскадных удалений.
func (m *ServiceMetrics) RecordCascadeRemoval() {
	if m == nil {
		return
	}
	m.cascadeRemovals.Inc()
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

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
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
