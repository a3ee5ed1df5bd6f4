package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sjperalta/remuneraciones-api/internal/config"
	"github.com/sjperalta/remuneraciones-api/internal/models"
	"github.com/sjperalta/remuneraciones-api/internal/payroll"
	"github.com/sjperalta/remuneraciones-api/internal/repository"
)

type mockLiquidationRepo struct {
	repository.LiquidationRepository
	mu                       sync.Mutex
	mockFindByID             func(ctx context.Context, id uint) (*models.Liquidation, error)
	mockFindByEmployeePeriod func(ctx context.Context, employeeID uint, year, month int) (*models.Liquidation, error)
	mockListByPeriod         func(ctx context.Context, companyID uint, year, month int, includeCancelled bool) ([]models.Liquidation, error)
	mockListForPeriod        func(ctx context.Context, year, month int) ([]models.Liquidation, error)
	upserted                 []*models.Liquidation
	updated                  []*models.Liquidation
}

func (m *mockLiquidationRepo) FindByID(ctx context.Context, id uint) (*models.Liquidation, error) {
	return m.mockFindByID(ctx, id)
}

func (m *mockLiquidationRepo) FindByEmployeePeriod(ctx context.Context, employeeID uint, year, month int) (*models.Liquidation, error) {
	if m.mockFindByEmployeePeriod == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return m.mockFindByEmployeePeriod(ctx, employeeID, year, month)
}

func (m *mockLiquidationRepo) Upsert(ctx context.Context, liquidation *models.Liquidation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.upserted = append(m.upserted, liquidation)
	liquidation.ID = uint(len(m.upserted))
	return nil
}

func (m *mockLiquidationRepo) Update(ctx context.Context, liquidation *models.Liquidation) error {
	m.updated = append(m.updated, liquidation)
	return nil
}

func (m *mockLiquidationRepo) ListByPeriod(ctx context.Context, companyID uint, year, month int, includeCancelled bool) ([]models.Liquidation, error) {
	return m.mockListByPeriod(ctx, companyID, year, month, includeCancelled)
}

func (m *mockLiquidationRepo) ListForPeriod(ctx context.Context, year, month int) ([]models.Liquidation, error) {
	return m.mockListForPeriod(ctx, year, month)
}

type mockEmployeeRepo struct {
	repository.EmployeeRepository
	mockFindByID            func(ctx context.Context, id uint) (*models.Employee, error)
	mockFindActiveByCompany func(ctx context.Context, companyID uint) ([]models.Employee, error)
}

func (m *mockEmployeeRepo) FindByID(ctx context.Context, id uint) (*models.Employee, error) {
	return m.mockFindByID(ctx, id)
}

func (m *mockEmployeeRepo) FindActiveByCompany(ctx context.Context, companyID uint) ([]models.Employee, error) {
	return m.mockFindActiveByCompany(ctx, companyID)
}

type mockCompanyRepo struct {
	repository.CompanyRepository
	company *models.Company
}

func (m *mockCompanyRepo) FindByID(ctx context.Context, id uint) (*models.Company, error) {
	if m.company == nil || m.company.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	c := *m.company
	return &c, nil
}

type mockBookRepo struct {
	repository.PayrollBookRepository
	replaced []*models.PayrollBook
}

func (m *mockBookRepo) ReplaceForPeriod(ctx context.Context, book *models.PayrollBook) error {
	book.ID = uint(len(m.replaced) + 1)
	book.BookNumber = len(m.replaced) + 1
	m.replaced = append(m.replaced, book)
	return nil
}

type mockAuditRepo struct {
	repository.AuditRepository
	mu      sync.Mutex
	entries []*models.AuditLog
}

func (m *mockAuditRepo) Create(ctx context.Context, entry *models.AuditLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockAuditRepo) actions() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, e.Action)
	}
	return out
}

func testRegulatory(t *testing.T) *config.RegulatoryHolder {
	t.Helper()
	reg, err := config.DefaultRegulatory()
	require.NoError(t, err)
	return config.NewStaticRegulatoryHolder(reg)
}

// july2025 is the reference "today" of the service tests
var july2025 = FixedClock(time.Date(2025, time.July, 10, 9, 0, 0, 0, time.UTC))

func analystOf(companyID uint) Actor {
	return Actor{UserID: 3, Role: models.RoleAnalyst, CompanyID: &companyID}
}

func testCompany() *models.Company {
	return &models.Company{ID: 1, RUT: "76.123.456-7", Name: "Panadería Los Aromos SpA"}
}

func goldenEmployee() *models.Employee {
	return &models.Employee{
		ID:              5,
		CompanyID:       1,
		RUT:             "12.345.678-5",
		FirstNames:      "María José",
		PaternalSurname: "Soto",
		MaternalSurname: "Rojas",
		Active:          true,
		Contracts: []models.EmploymentContract{{
			ID:          9,
			EmployeeID:  5,
			Type:        models.ContractTypeFixedTerm,
			BaseSalary:  529000,
			WeeklyHours: 44,
			StartDate:   time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC),
		}},
		PayrollConfig: &models.PayrollConfig{
			EmployeeID:             5,
			PensionFund:            "habitat",
			HealthProvider:         "fonasa",
			StatutoryGratification: true,
		},
	}
}

func (m *mockBookRepo) FindByPeriod(ctx context.Context, companyID uint, year, month int) (*models.PayrollBook, error) {
	for i := len(m.replaced) - 1; i >= 0; i-- {
		b := m.replaced[i]
		if b.CompanyID == companyID && b.Year == year && b.Month == month {
			return b, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// storedGolden is the persisted June 2025 liquidation of goldenEmployee
func storedGolden(t *testing.T) models.Liquidation {
	t.Helper()
	params, err := testRegulatory(t).ParametersFor(2025, time.June)
	require.NoError(t, err)

	employee := goldenEmployee()
	start := employee.Contracts[0].StartDate
	res, err := payroll.Calculate(payroll.Input{
		ContractType:  employee.Contracts[0].Type,
		BaseSalary:    employee.Contracts[0].BaseSalary,
		WeeklyHours:   employee.Contracts[0].WeeklyHours,
		ContractStart: &start,
		Config:        employee.PayrollConfig.ToEngine(),
		Period:        payroll.PeriodInput{Year: 2025, Month: time.June},
	}, params)
	require.NoError(t, err)

	return models.Liquidation{
		ID:             11,
		CompanyID:      1,
		EmployeeID:     employee.ID,
		ContractID:     employee.Contracts[0].ID,
		Year:           2025,
		Month:          6,
		Status:         models.LiquidationStatusApproved,
		PensionFund:    res.PensionFund,
		HealthProvider: res.HealthProvider,
		Breakdown:      res.Breakdown,
		Employee:       *employee,
	}
}
