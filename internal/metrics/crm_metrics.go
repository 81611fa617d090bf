package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome-лейблы для счётчика мутаций.
const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// CRMMetrics содержит метрики мутаций и фоновой публикации событий.
type CRMMetrics struct {
	// Счётчик мутаций по имени и результату.
	mutationsTotal *prometheus.CounterVec
	// Гистограмма времени выполнения мутаций.
	mutationDuration *prometheus.HistogramVec

	// Счётчики строк bulk-создания.
	bulkRowsCreated prometheus.Counter
	bulkRowsFailed  prometheus.Counter

	// Счётчик поставленных в outbox событий.
	outboxEnqueued prometheus.Counter
}

// NewCRMMetrics создаёт новый экземпляр метрик CRM.
func NewCRMMetrics() *CRMMetrics {
	return newCRMMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func newCRMMetricsWithRegisterer(registerer prometheus.Registerer) *CRMMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &CRMMetrics{
		mutationsTotal: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "crm_mutations_total",
			Help: "Total number of mutation requests grouped by mutation and outcome",
		}, []string{"mutation", "outcome"}),
		mutationDuration: registerHistogramVec(registerer, prometheus.HistogramOpts{
			Name:    "crm_mutation_duration_seconds",
			Help:    "Duration of mutation handlers in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		}, []string{"mutation"}),
		bulkRowsCreated: registerCounter(registerer, prometheus.CounterOpts{
			Name: "crm_bulk_rows_created_total",
			Help: "Total number of rows successfully created by bulkCreateCustomers",
		}),
		bulkRowsFailed: registerCounter(registerer, prometheus.CounterOpts{
			Name: "crm_bulk_rows_failed_total",
			Help: "Total number of rows rejected by bulkCreateCustomers",
		}),
		outboxEnqueued: registerCounter(registerer, prometheus.CounterOpts{
			Name: "crm_outbox_enqueued_total",
			Help: "Total number of domain events enqueued into the outbox",
		}),
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

// RecordMutation фиксирует результат и длительность мутации.
func (m *CRMMetrics) RecordMutation(mutation, outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	m.mutationsTotal.WithLabelValues(mutation, outcome).Inc()
	m.mutationDuration.WithLabelValues(mutation).Observe(duration.Seconds())
}

// RecordBulkRows фиксирует количество созданных и отклонённых строк bulk-запроса.
func (m *CRMMetrics) RecordBulkRows(created, failed int) {
	if m == nil {
		return
	}
	m.bulkRowsCreated.Add(float64(created))
	m.bulkRowsFailed.Add(float64(failed))
}

// RecordOutboxEnqueued увеличивает счётчик поставленных в outbox событий.
func (m *CRMMetrics) RecordOutboxEnqueued() {
	if m == nil {
		return
	}
	m.outboxEnqueued.Inc()
}
