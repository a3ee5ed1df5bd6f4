package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sjperalta/remuneraciones-api/internal/metrics"
	"github.com/sjperalta/remuneraciones-api/internal/models"
	"github.com/sjperalta/remuneraciones-api/internal/payroll"
	"github.com/sjperalta/remuneraciones-api/internal/repository"
	"github.com/sjperalta/remuneraciones-api/pkg/logger"
)

// Drift is one stored liquidation whose totals no longer match its components
type Drift struct {
	LiquidationID uint             `json:"liquidation_id"`
	CompanyID     uint             `json:"company_id"`
	EmployeeID    uint             `json:"employee_id"`
	Notices       []payroll.Notice `json:"notices"`
}

// ReconcileReport summarises a scan
type ReconcileReport struct {
	Year    int     `json:"year"`
	Month   int     `json:"month"`
	Scanned int     `json:"scanned"`
	Drifted []Drift `json:"drifted"`
}

// ReconciliationService scans stored liquidations for totals that drifted from their components.
// Stored rows are never rewritten.
type ReconciliationService struct {
	liquidationRepo repository.LiquidationRepository
	audit           *AuditService
	metrics         *metrics.PayrollMetrics
	clock           Clock
}

// NewReconciliationService creates a new reconciliation service
func NewReconciliationService(liquidationRepo repository.LiquidationRepository, audit *AuditService, m *metrics.PayrollMetrics, clock Clock) *ReconciliationService {
	if clock == nil {
		clock = SystemClock()
	}
	return &ReconciliationService{
		liquidationRepo: liquidationRepo,
		audit:           audit,
		metrics:         m,
		clock:           clock,
	}
}

// ScanPeriod checks every liquidation of a period across companies
func (s *ReconciliationService) ScanPeriod(ctx context.Context, year, month int) (*ReconcileReport, error) {
	if err := checkPeriod(s.clock, year, month); err != nil {
		return nil, err
	}

	liquidations, err := s.liquidationRepo.ListForPeriod(ctx, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list liquidations: %w", err)
	}

	report := &ReconcileReport{Year: year, Month: month, Scanned: len(liquidations), Drifted: []Drift{}}
	perCompany := map[uint]int{}
	for _, l := range liquidations {
		_, notices := payroll.Canonical(l.Breakdown)
		if len(notices) == 0 {
			continue
		}
		s.metrics.Notices(notices)
		report.Drifted = append(report.Drifted, Drift{
			LiquidationID: l.ID,
			CompanyID:     l.CompanyID,
			EmployeeID:    l.EmployeeID,
			Notices:       notices,
		})
		perCompany[l.CompanyID]++
	}

	for companyID, count := range perCompany {
		s.audit.Log(ctx, SystemActor, companyID, models.AuditActionReconcile, "Company", companyID, map[string]interface{}{
			"period":  fmt.Sprintf("%04d-%02d", year, month),
			"drifted": count,
		})
	}

	logger.FromContext(ctx).Info("Reconciliation scan finished",
		"period", fmt.Sprintf("%04d-%02d", year, month),
		"scanned", report.Scanned,
		"drifted", len(report.Drifted))
	return report, nil
}

// ScanCurrent scans the current period
func (s *ReconciliationService) ScanCurrent(ctx context.Context) (*ReconcileReport, error) {
	now := s.clock.Now()
	return s.ScanPeriod(ctx, now.Year(), int(now.Month()))
}

// Job adapts ScanCurrent to the background worker
func (s *ReconciliationService) Job() func(ctx context.Context) error {
	return func(ctx context.Context) error {
		_, err := s.ScanCurrent(ctx)
		return err
	}
}

// reconcileTimeout bounds a manually triggered scan
const reconcileTimeout = 5 * time.Minute
