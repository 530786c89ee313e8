package telemetry

import (
	"context"
	"time"
)

// FinanceMetrics records domain-level instruments: resource writes, risk
// alerts raised by the dashboard and dashboard build latency. A nil
// *FinanceMetrics is valid and records nothing.
type FinanceMetrics struct {
	writes        *Counter
	risks         *Counter
	buildDuration *Histogram
}

// NewFinanceMetrics creates the finance instruments on mp's "finops" meter.
func NewFinanceMetrics(mp *MeterProvider) (*FinanceMetrics, error) {
	meter := mp.Meter("finops")

	writes, err := NewCounter(meter, "finops_resource_writes_total",
		"Create, update and delete operations per resource", "{operation}")
	if err != nil {
		return nil, err
	}
	risks, err := NewCounter(meter, "finops_risk_alerts_total",
		"Risk alerts produced by dashboard evaluations", "{alert}")
	if err != nil {
		return nil, err
	}
	build, err := NewHistogram(meter, "finops_dashboard_build_duration_seconds",
		"Time spent assembling dashboard views", "s", HTTPDurationBuckets...)
	if err != nil {
		return nil, err
	}
	return &FinanceMetrics{writes: writes, risks: risks, buildDuration: build}, nil
}

// RecordWrite counts one write to resource ("budgets", "accounts-payable", ...).
func (m *FinanceMetrics) RecordWrite(ctx context.Context, resource, operation string) {
	if m == nil {
		return
	}
	m.writes.Inc(ctx, AttrResource.String(resource), AttrOperation.String(operation))
}

// RecordRiskAlerts counts alerts of one type and severity.
func (m *FinanceMetrics) RecordRiskAlerts(ctx context.Context, riskType, severity string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.risks.Add(ctx, int64(n), AttrRiskType.String(riskType), AttrSeverity.String(severity))
}

// RecordDashboardBuild records how long view took to assemble.
func (m *FinanceMetrics) RecordDashboardBuild(ctx context.Context, view string, d time.Duration) {
	if m == nil {
		return
	}
	m.buildDuration.RecordDuration(ctx, d, AttrOperation.String(view))
}
