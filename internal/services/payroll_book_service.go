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

// PayrollBookService assembles the per-period payroll book of a company
type PayrollBookService struct {
	bookRepo        repository.PayrollBookRepository
	liquidationRepo repository.LiquidationRepository
	companyRepo     repository.CompanyRepository
	regulatory      RegulatorySource
	audit           *AuditService
	metrics         *metrics.PayrollMetrics
	clock           Clock
}

// NewPayrollBookService creates a new payroll book service
func NewPayrollBookService(
	bookRepo repository.PayrollBookRepository,
	liquidationRepo repository.LiquidationRepository,
	companyRepo repository.CompanyRepository,
	regulatory RegulatorySource,
	audit *AuditService,
	m *metrics.PayrollMetrics,
	clock Clock,
) *PayrollBookService {
	if clock == nil {
		clock = SystemClock()
	}
	return &PayrollBookService{
		bookRepo:        bookRepo,
		liquidationRepo: liquidationRepo,
		companyRepo:     companyRepo,
		regulatory:      regulatory,
		audit:           audit,
		metrics:         m,
		clock:           clock,
	}
}

// Generate builds the book from the period's liquidations and replaces any previous one
func (s *PayrollBookService) Generate(ctx context.Context, actor Actor, companyID uint, year, month int) (*models.PayrollBook, error) {
	if companyID == 0 {
		return nil, &ValidationError{Fields: []string{"company_id"}}
	}
	if !actor.CanAccess(companyID) {
		return nil, ErrUnauthorized
	}
	if err := checkPeriod(s.clock, year, month); err != nil {
		return nil, err
	}

	company, err := s.companyRepo.FindByID(ctx, companyID)
	if err != nil {
		return nil, notFound(err, "failed to load company")
	}

	liquidations, err := s.liquidationRepo.ListByPeriod(ctx, companyID, year, month, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list liquidations: %w", err)
	}
	if len(liquidations) == 0 {
		return nil, &MissingPrerequisiteError{CompanyID: companyID, Year: year, Month: month}
	}

	params, err := s.regulatory.ParametersFor(year, time.Month(month))
	if err != nil {
		return nil, fmt.Errorf("failed to load regulatory parameters: %w", err)
	}

	book := &models.PayrollBook{
		CompanyID:     companyID,
		Year:          year,
		Month:         month,
		GeneratedByID: actor.userID(),
	}

	var notices []payroll.Notice
	for i := range liquidations {
		l := &liquidations[i]
		b, drift := payroll.Canonical(l.Breakdown)
		notices = append(notices, l.GetNotices()...)
		notices = append(notices, drift...)

		contractType := payroll.ContractIndefinite
		if contract, ok := l.Contract(); ok {
			contractType = contract.Type
		}
		employer := payroll.Employer(params, contractType, b.TotalTaxableIncome, company.AdditionalAccidentRate)

		book.Accumulate(models.PayrollBookDetail{
			LiquidationID:         l.ID,
			EmployeeID:            l.EmployeeID,
			EmployeeRUT:           l.Employee.RUT,
			EmployeeName:          l.Employee.FullName(),
			DaysWorked:            b.DaysWorked,
			TotalTaxableIncome:    b.TotalTaxableIncome,
			TotalNonTaxableIncome: b.TotalNonTaxableIncome,
			TotalGrossIncome:      b.TotalGrossIncome,
			TotalDeductions:       b.TotalDeductions,
			NetSalary:             b.NetSalary,
			EmployerContributions: employer.Total(),
		})
	}

	if err := s.bookRepo.ReplaceForPeriod(ctx, book); err != nil {
		return nil, fmt.Errorf("failed to replace payroll book: %w", err)
	}
	s.metrics.BookReplaced()
	s.metrics.Notices(notices)

	if len(notices) > 0 {
		logger.FromContext(ctx).Warn("payroll book built with notices",
			"company_id", companyID, "book_number", book.BookNumber, "notices", len(notices))
	}

	s.audit.Log(ctx, actor, companyID, models.AuditActionReplaceBook, "PayrollBook", book.ID, map[string]interface{}{
		"period":      fmt.Sprintf("%04d-%02d", year, month),
		"book_number": book.BookNumber,
		"employees":   book.TotalEmployees,
		"notices":     notices,
	})
	return book, nil
}

// Get returns the current book of a period
func (s *PayrollBookService) Get(ctx context.Context, actor Actor, companyID uint, year, month int) (*models.PayrollBook, error) {
	if !actor.CanAccess(companyID) {
		return nil, ErrUnauthorized
	}
	book, err := s.bookRepo.FindByPeriod(ctx, companyID, year, month)
	if err != nil {
		return nil, notFound(err, "failed to load payroll book")
	}
	return book, nil
}
