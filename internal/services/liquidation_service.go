package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/sjperalta/remuneraciones-api/internal/lre"
	"github.com/sjperalta/remuneraciones-api/internal/metrics"
	"github.com/sjperalta/remuneraciones-api/internal/models"
	"github.com/sjperalta/remuneraciones-api/internal/payroll"
	"github.com/sjperalta/remuneraciones-api/internal/repository"
	"github.com/sjperalta/remuneraciones-api/internal/statemachine"
	"github.com/sjperalta/remuneraciones-api/pkg/logger"
)

// RegulatorySource supplies the parameters and code tables in force for a period
type RegulatorySource interface {
	ParametersFor(year int, month time.Month) (payroll.Parameters, error)
	ResolverFor(year int, month time.Month) (lre.Resolver, error)
}

// LiquidationService generates, edits and moves liquidations through their lifecycle
type LiquidationService struct {
	liquidationRepo repository.LiquidationRepository
	employeeRepo    repository.EmployeeRepository
	companyRepo     repository.CompanyRepository
	regulatory      RegulatorySource
	audit           *AuditService
	metrics         *metrics.PayrollMetrics
	clock           Clock
	concurrency     int
}

// NewLiquidationService creates a new liquidation service
func NewLiquidationService(
	liquidationRepo repository.LiquidationRepository,
	employeeRepo repository.EmployeeRepository,
	companyRepo repository.CompanyRepository,
	regulatory RegulatorySource,
	audit *AuditService,
	m *metrics.PayrollMetrics,
	clock Clock,
	concurrency int,
) *LiquidationService {
	if clock == nil {
		clock = SystemClock()
	}
	if concurrency < 1 {
		concurrency = 1
	}
	return &LiquidationService{
		liquidationRepo: liquidationRepo,
		employeeRepo:    employeeRepo,
		companyRepo:     companyRepo,
		regulatory:      regulatory,
		audit:           audit,
		metrics:         m,
		clock:           clock,
		concurrency:     concurrency,
	}
}

// GenerateRequest asks for one employee's liquidation
type GenerateRequest struct {
	CompanyID  uint
	EmployeeID uint
	Period     payroll.PeriodInput
}

func (r GenerateRequest) validate() error {
	var fields []string
	if r.CompanyID == 0 {
		fields = append(fields, "company_id")
	}
	if r.EmployeeID == 0 {
		fields = append(fields, "employee_id")
	}
	if r.Period.Year == 0 {
		fields = append(fields, "year")
	}
	if r.Period.Month == 0 {
		fields = append(fields, "month")
	}
	if r.Period.SickLeaveDays < 0 || r.Period.SickLeaveDays > payroll.MonthDays {
		fields = append(fields, "sick_leave_days")
	}
	if r.Period.VacationDays < 0 || r.Period.VacationDays > payroll.MonthDays {
		fields = append(fields, "vacation_days")
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Generate computes and stores the liquidation of one employee for a period. Running it again with
// the same inputs yields the same record.
func (s *LiquidationService) Generate(ctx context.Context, actor Actor, req GenerateRequest) (*models.Liquidation, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	if !actor.CanAccess(req.CompanyID) {
		return nil, ErrUnauthorized
	}
	if err := checkPeriod(s.clock, req.Period.Year, int(req.Period.Month)); err != nil {
		return nil, err
	}

	employee, err := s.employeeRepo.FindByID(ctx, req.EmployeeID)
	if err != nil {
		return nil, notFound(err, "failed to load employee")
	}
	if employee.CompanyID != req.CompanyID {
		return nil, ErrCompanyMismatch
	}

	params, err := s.regulatory.ParametersFor(req.Period.Year, req.Period.Month)
	if err != nil {
		return nil, fmt.Errorf("failed to load regulatory parameters: %w", err)
	}

	liquidation, err := s.generateFor(ctx, employee, req.Period, params)
	s.metrics.LiquidationGenerated(err, noticesOf(liquidation))
	if err != nil {
		return nil, err
	}

	s.audit.Log(ctx, actor, liquidation.CompanyID, models.AuditActionGenerate, "Liquidation", liquidation.ID, map[string]interface{}{
		"employee_id": liquidation.EmployeeID,
		"period":      fmt.Sprintf("%04d-%02d", liquidation.Year, liquidation.Month),
		"net_salary":  liquidation.NetSalary,
		"notices":     liquidation.GetNotices(),
	})
	return liquidation, nil
}

// generateFor runs the calculator for an employee whose contracts and payroll config are loaded
func (s *LiquidationService) generateFor(ctx context.Context, employee *models.Employee, period payroll.PeriodInput, params payroll.Parameters) (*models.Liquidation, error) {
	contract, ok := employee.ActiveContract(period.Year, period.Month)
	if !ok {
		return nil, ErrNoActiveContract
	}

	existing, err := s.liquidationRepo.FindByEmployeePeriod(ctx, employee.ID, period.Year, int(period.Month))
	switch {
	case err == nil && !existing.IsEditable():
		return nil, ErrLiquidationLocked
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("failed to load liquidation: %w", err)
	}

	start := contract.StartDate
	result, err := payroll.Calculate(payroll.Input{
		ContractType:  contract.Type,
		BaseSalary:    contract.BaseSalary,
		WeeklyHours:   contract.WeeklyHours,
		ContractStart: &start,
		Config:        employee.PayrollConfig.ToEngine(),
		Period:        period,
	}, params)
	if err != nil {
		var inputErr *payroll.InputError
		if errors.As(err, &inputErr) {
			return nil, &ValidationError{Fields: inputErr.Fields}
		}
		return nil, fmt.Errorf("failed to calculate liquidation: %w", err)
	}

	liquidation := &models.Liquidation{
		CompanyID:      employee.CompanyID,
		EmployeeID:     employee.ID,
		ContractID:     contract.ID,
		Year:           period.Year,
		Month:          int(period.Month),
		PensionFund:    result.PensionFund,
		HealthProvider: result.HealthProvider,
		SickLeaveDays:  period.SickLeaveDays,
		VacationDays:   period.VacationDays,
		Breakdown:      result.Breakdown,
	}
	liquidation.SetPartialPeriod(result.PartialPeriod)
	liquidation.SetNotices(result.Notices)

	if err := s.liquidationRepo.Upsert(ctx, liquidation); err != nil {
		if errors.Is(err, repository.ErrNotEditable) {
			return nil, ErrLiquidationLocked
		}
		return nil, fmt.Errorf("failed to store liquidation: %w", err)
	}
	liquidation.Employee = *employee

	for _, n := range result.Notices {
		logger.FromContext(ctx).Warn("configuration fallback applied",
			"employee_id", employee.ID, "field", n.Field, "default", n.Default)
	}
	return liquidation, nil
}

// Edit regenerates a draft or review liquidation from new period inputs
func (s *LiquidationService) Edit(ctx context.Context, actor Actor, id uint, period payroll.PeriodInput) (*models.Liquidation, error) {
	current, err := s.liquidationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "failed to load liquidation")
	}
	if !actor.CanAccess(current.CompanyID) {
		return nil, ErrUnauthorized
	}
	if !current.IsEditable() {
		return nil, ErrLiquidationLocked
	}

	period.Year = current.Year
	period.Month = time.Month(current.Month)
	return s.Generate(ctx, actor, GenerateRequest{
		CompanyID:  current.CompanyID,
		EmployeeID: current.EmployeeID,
		Period:     period,
	})
}

// Get returns a liquidation with its totals re-derived from the components
func (s *LiquidationService) Get(ctx context.Context, actor Actor, id uint) (*models.Liquidation, error) {
	liquidation, err := s.liquidationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "failed to load liquidation")
	}
	if !actor.CanAccess(liquidation.CompanyID) {
		return nil, ErrUnauthorized
	}
	s.reconcile(ctx, liquidation)
	return liquidation, nil
}

// List returns every liquidation of a company period, reconciled
func (s *LiquidationService) List(ctx context.Context, actor Actor, companyID uint, year, month int) ([]models.Liquidation, error) {
	if !actor.CanAccess(companyID) {
		return nil, ErrUnauthorized
	}
	if year == 0 || month < 1 || month > 12 {
		return nil, &ValidationError{Fields: []string{"year", "month"}}
	}

	liquidations, err := s.liquidationRepo.ListByPeriod(ctx, companyID, year, month, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list liquidations: %w", err)
	}
	for i := range liquidations {
		s.reconcile(ctx, &liquidations[i])
	}
	return liquidations, nil
}

// reconcile replaces the stored totals with the canonical ones and appends drift notices
func (s *LiquidationService) reconcile(ctx context.Context, l *models.Liquidation) {
	canonical, drift := payroll.Canonical(l.Breakdown)
	l.Breakdown = canonical
	if len(drift) == 0 {
		return
	}
	s.metrics.Notices(drift)
	logger.FromContext(ctx).Warn("liquidation totals drifted from components",
		"liquidation_id", l.ID, "notices", len(drift))
	l.SetNotices(append(l.GetNotices(), drift...))
}

// Transition applies a lifecycle event
func (s *LiquidationService) Transition(ctx context.Context, actor Actor, id uint, event string) (*models.Liquidation, error) {
	liquidation, err := s.liquidationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "failed to load liquidation")
	}
	if !actor.CanAccess(liquidation.CompanyID) {
		return nil, ErrUnauthorized
	}

	from := liquidation.Status
	machine := statemachine.NewLiquidationFSM(liquidation, s.clock.Now)
	if err := machine.Fire(ctx, event); err != nil {
		if errors.Is(err, statemachine.ErrTransitionNotAllowed) {
			return nil, &StateTransitionError{From: from, Event: event}
		}
		return nil, err
	}

	if err := s.liquidationRepo.Update(ctx, liquidation); err != nil {
		return nil, fmt.Errorf("failed to update liquidation: %w", err)
	}

	s.audit.Log(ctx, actor, liquidation.CompanyID, models.AuditActionTransition, "Liquidation", liquidation.ID, map[string]string{
		"event": event,
		"from":  from,
		"to":    liquidation.Status,
	})
	return liquidation, nil
}

// PeriodSkip explains why an employee was left out of a period run
type PeriodSkip struct {
	EmployeeID uint   `json:"employee_id"`
	Reason     string `json:"reason"`
}

// PeriodResult is the outcome of generating a whole company period
type PeriodResult struct {
	Generated []models.Liquidation `json:"-"`
	Skipped   []PeriodSkip         `json:"skipped"`
}

// GeneratePeriod computes every active employee of a company in parallel. overrides carries
// per-employee inputs; employees without one get a plain month. Employees that cannot be
// computed are reported as skipped without stopping the rest.
func (s *LiquidationService) GeneratePeriod(ctx context.Context, actor Actor, companyID uint, year int, month time.Month, overrides map[uint]payroll.PeriodInput) (*PeriodResult, error) {
	if companyID == 0 {
		return nil, &ValidationError{Fields: []string{"company_id"}}
	}
	if !actor.CanAccess(companyID) {
		return nil, ErrUnauthorized
	}
	if err := checkPeriod(s.clock, year, int(month)); err != nil {
		return nil, err
	}
	if _, err := s.companyRepo.FindByID(ctx, companyID); err != nil {
		return nil, notFound(err, "failed to load company")
	}

	params, err := s.regulatory.ParametersFor(year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to load regulatory parameters: %w", err)
	}

	employees, err := s.employeeRepo.FindActiveByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load employees: %w", err)
	}

	generated := make([]*models.Liquidation, len(employees))
	skipped := make([]*PeriodSkip, len(employees))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i := range employees {
		i := i
		employee := &employees[i]
		period, ok := overrides[employee.ID]
		if !ok {
			period = payroll.PeriodInput{}
		}
		period.Year, period.Month = year, month

		g.Go(func() error {
			liquidation, err := s.generateFor(gctx, employee, period, params)
			s.metrics.LiquidationGenerated(err, noticesOf(liquidation))
			if err == nil {
				generated[i] = liquidation
				return nil
			}
			if reason, skip := skipReason(err); skip {
				skipped[i] = &PeriodSkip{EmployeeID: employee.ID, Reason: reason}
				return nil
			}
			return fmt.Errorf("employee %d: %w", employee.ID, err)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &PeriodResult{Skipped: []PeriodSkip{}}
	for i := range employees {
		if generated[i] != nil {
			result.Generated = append(result.Generated, *generated[i])
		}
		if skipped[i] != nil {
			result.Skipped = append(result.Skipped, *skipped[i])
		}
	}

	s.audit.Log(ctx, actor, companyID, models.AuditActionGenerate, "Company", companyID, map[string]interface{}{
		"period":    fmt.Sprintf("%04d-%02d", year, int(month)),
		"generated": len(result.Generated),
		"skipped":   result.Skipped,
	})
	return result, nil
}

func skipReason(err error) (string, bool) {
	var validation *ValidationError
	switch {
	case errors.Is(err, ErrLiquidationLocked), errors.Is(err, ErrNoActiveContract):
		return err.Error(), true
	case errors.As(err, &validation):
		return validation.Error(), true
	}
	return "", false
}

func noticesOf(l *models.Liquidation) []payroll.Notice {
	if l == nil {
		return nil
	}
	return l.GetNotices()
}

// notFound maps gorm's missing-record error to ErrNotFound and wraps the rest
func notFound(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", msg, err)
}
