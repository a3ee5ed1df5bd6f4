package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sjperalta/remuneraciones-api/internal/payroll"
	"github.com/stretchr/testify/assert"
)

func TestPayrollMetrics_Counters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.LiquidationGenerated(nil, []payroll.Notice{
		{Kind: payroll.NoticeConfigurationFallback},
		{Kind: payroll.NoticeConfigurationFallback},
	})
	m.LiquidationGenerated(errors.New("boom"), nil)
	m.Export("csv")
	m.BookReplaced()
	m.ExportThrottled()
	m.ObserveJob("reconcile", OutcomeSuccess, time.Second)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.liquidations.WithLabelValues(OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.liquidations.WithLabelValues(OutcomeFailure)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.notices.WithLabelValues(string(payroll.NoticeConfigurationFallback))))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.exports.WithLabelValues("csv")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.bookReplaced))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.exportThrottled))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.jobRuns.WithLabelValues("reconcile", OutcomeSuccess)))
}

func TestPayrollMetrics_NilSafe(t *testing.T) {
	var m *PayrollMetrics
	assert.NotPanics(t, func() {
		m.Export("csv")
		m.BookReplaced()
		m.ObserveJob("x", OutcomeFailure, 0)
		m.LiquidationGenerated(nil, nil)
	})
}
