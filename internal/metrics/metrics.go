package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sjperalta/remuneraciones-api/internal/payroll"
)

// Job outcomes
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomePanic   = "panic"
)

// PayrollMetrics groups the payroll counters exposed on /metrics.
type PayrollMetrics struct {
	jobRuns         *prometheus.CounterVec
	jobDuration     *prometheus.HistogramVec
	liquidations    *prometheus.CounterVec
	notices         *prometheus.CounterVec
	exports         *prometheus.CounterVec
	bookReplaced    prometheus.Counter
	exportThrottled prometheus.Counter
}

var (
	payrollMetricsOnce sync.Once
	payrollMetrics     *PayrollMetrics
)

// Payroll returns the process-wide metrics registered on the default registerer.
func Payroll() *PayrollMetrics {
	payrollMetricsOnce.Do(func() {
		payrollMetrics = New(prometheus.DefaultRegisterer)
	})
	return payrollMetrics
}

// New creates and registers the collectors on registerer.
func New(registerer prometheus.Registerer) *PayrollMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	m := &PayrollMetrics{
		jobRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "remuneraciones_job_runs_total",
			Help: "Background job runs by name and outcome.",
		}, []string{"job", "outcome"}),
		jobDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "remuneraciones_job_duration_seconds",
			Help:    "Background job latency.",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 300},
		}, []string{"job"}),
		liquidations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "remuneraciones_liquidations_generated_total",
			Help: "Liquidations computed by outcome.",
		}, []string{"outcome"}),
		notices: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "remuneraciones_notices_total",
			Help: "Non-fatal payroll notices by kind.",
		}, []string{"kind"}),
		exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "remuneraciones_exports_total",
			Help: "Payroll exports served by format.",
		}, []string{"format"}),
		bookReplaced: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "remuneraciones_payroll_books_generated_total",
			Help: "Payroll books generated or replaced.",
		}),
		exportThrottled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "remuneraciones_exports_throttled_total",
			Help: "Export requests rejected by the per-company rate limiter.",
		}),
	}

	registerer.MustRegister(
		m.jobRuns,
		m.jobDuration,
		m.liquidations,
		m.notices,
		m.exports,
		m.bookReplaced,
		m.exportThrottled,
	)
	return m
}

// ObserveJob records one background job execution.
func (m *PayrollMetrics) ObserveJob(job, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.jobRuns.WithLabelValues(job, outcome).Inc()
	m.jobDuration.WithLabelValues(job).Observe(elapsed.Seconds())
}

// LiquidationGenerated records one calculator run and the notices it produced.
func (m *PayrollMetrics) LiquidationGenerated(err error, notices []payroll.Notice) {
	if m == nil {
		return
	}
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}
	m.liquidations.WithLabelValues(outcome).Inc()
	m.Notices(notices)
}

// Notices counts notices by kind.
func (m *PayrollMetrics) Notices(notices []payroll.Notice) {
	if m == nil {
		return
	}
	for _, n := range notices {
		m.notices.WithLabelValues(string(n.Kind)).Inc()
	}
}

// Export records one served export.
func (m *PayrollMetrics) Export(format string) {
	if m == nil {
		return
	}
	m.exports.WithLabelValues(format).Inc()
}

// BookReplaced records one payroll book write.
func (m *PayrollMetrics) BookReplaced() {
	if m == nil {
		return
	}
	m.bookReplaced.Inc()
}

// ExportThrottled records one rate-limited export request.
func (m *PayrollMetrics) ExportThrottled() {
	if m == nil {
		return
	}
	m.exportThrottled.Inc()
}
