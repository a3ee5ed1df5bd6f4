package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/sjperalta/remuneraciones-api/internal/models"
	"github.com/sjperalta/remuneraciones-api/internal/payroll"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.Company{},
		&models.Employee{},
		&models.EmploymentContract{},
		&models.PayrollConfig{},
		&models.Liquidation{},
		&models.PayrollBook{},
		&models.PayrollBookDetail{},
		&models.AuditLog{},
	))
	return db
}

func seedEmployee(t *testing.T, db *gorm.DB, companyID uint, rut, surname string) *models.Employee {
	t.Helper()
	emp := &models.Employee{
		CompanyID:       companyID,
		RUT:             rut,
		FirstNames:      "Ana",
		PaternalSurname: surname,
		Active:          true,
		Contracts: []models.EmploymentContract{{
			Type:        models.ContractTypeIndefinite,
			BaseSalary:  529000,
			WeeklyHours: 44,
			StartDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		}},
	}
	require.NoError(t, db.Create(emp).Error)
	return emp
}

func seedCompany(t *testing.T, db *gorm.DB) *models.Company {
	t.Helper()
	company := &models.Company{RUT: "76123456-0", Name: "Comercial Andes SpA"}
	require.NoError(t, db.Create(company).Error)
	return company
}

func bookWith(companyID uint, year, month int, netSalaries ...int64) *models.PayrollBook {
	book := &models.PayrollBook{CompanyID: companyID, Year: year, Month: month}
	for i, net := range netSalaries {
		book.Accumulate(models.PayrollBookDetail{
			LiquidationID: uint(i + 1),
			EmployeeID:    uint(i + 1),
			NetSalary:     net,
		})
	}
	return book
}

func TestPayrollBookRepository_ReplaceForPeriod(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	company := seedCompany(t, db)
	repo := NewPayrollBookRepository(db)

	first := bookWith(company.ID, 2025, 6, 100, 200)
	require.NoError(t, repo.ReplaceForPeriod(ctx, first))
	assert.Equal(t, 1, first.BookNumber)

	second := bookWith(company.ID, 2025, 6, 300)
	require.NoError(t, repo.ReplaceForPeriod(ctx, second))
	assert.Equal(t, 2, second.BookNumber)

	var books int64
	require.NoError(t, db.Model(&models.PayrollBook{}).Where("company_id = ? AND year = ? AND month = ?", company.ID, 2025, 6).Count(&books).Error)
	assert.Equal(t, int64(1), books)

	var details []models.PayrollBookDetail
	require.NoError(t, db.Find(&details).Error)
	require.Len(t, details, 1, "previous details must not survive")
	assert.Equal(t, second.ID, details[0].BookID)
	assert.Equal(t, int64(300), details[0].NetSalary)

	stored, err := repo.FindByPeriod(ctx, company.ID, 2025, 6)
	require.NoError(t, err)
	assert.Equal(t, int64(300), stored.TotalNetSalary)
	assert.Equal(t, 1, stored.TotalEmployees)
	assert.Len(t, stored.Details, 1)

	next := bookWith(company.ID, 2025, 7, 50)
	require.NoError(t, repo.ReplaceForPeriod(ctx, next))
	assert.Equal(t, 3, next.BookNumber)
}

func TestPayrollBookRepository_ReplaceRollsBackOnFailure(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	company := seedCompany(t, db)
	repo := NewPayrollBookRepository(db)

	require.NoError(t, repo.ReplaceForPeriod(ctx, bookWith(company.ID, 2025, 6, 100, 200)))

	failDetails := false
	require.NoError(t, db.Callback().Create().Before("gorm:create").Register("test:fail_details", func(tx *gorm.DB) {
		if failDetails && tx.Statement.Table == "payroll_book_details" {
			_ = tx.AddError(errors.New("disk full"))
		}
	}))

	failDetails = true
	err := repo.ReplaceForPeriod(ctx, bookWith(company.ID, 2025, 6, 999))
	require.Error(t, err)
	failDetails = false

	stored, err := repo.FindByPeriod(ctx, company.ID, 2025, 6)
	require.NoError(t, err, "the period must keep its previous book")
	assert.Equal(t, 1, stored.BookNumber)
	assert.Len(t, stored.Details, 2)
	assert.Equal(t, int64(300), stored.TotalNetSalary)
}

func TestLiquidationRepository_UpsertIsKeyedByEmployeeAndPeriod(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	company := seedCompany(t, db)
	emp := seedEmployee(t, db, company.ID, "11111111-1", "Rojas")
	repo := NewLiquidationRepository(db)

	liq := &models.Liquidation{
		CompanyID:  company.ID,
		EmployeeID: emp.ID,
		ContractID: emp.Contracts[0].ID,
		Year:       2025,
		Month:      6,
		Breakdown:  payroll.Breakdown{BaseSalary: 529000, DaysWorked: 30},
	}
	liq.SetNotices([]payroll.Notice{{Kind: payroll.NoticeConfigurationFallback, Field: "pension_fund", Default: "uno"}})
	require.NoError(t, repo.Upsert(ctx, liq))
	require.NotZero(t, liq.ID)
	assert.Equal(t, models.LiquidationStatusDraft, liq.Status)

	require.NoError(t, db.Model(&models.Liquidation{}).Where("id = ?", liq.ID).Update("status", models.LiquidationStatusReview).Error)

	again := &models.Liquidation{
		CompanyID:  company.ID,
		EmployeeID: emp.ID,
		ContractID: emp.Contracts[0].ID,
		Year:       2025,
		Month:      6,
		Breakdown:  payroll.Breakdown{BaseSalary: 600000, DaysWorked: 30},
	}
	require.NoError(t, repo.Upsert(ctx, again))
	assert.Equal(t, liq.ID, again.ID)
	assert.Equal(t, models.LiquidationStatusReview, again.Status)

	var count int64
	require.NoError(t, db.Model(&models.Liquidation{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	stored, err := repo.FindByID(ctx, liq.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(600000), stored.BaseSalary)
	assert.Empty(t, stored.GetNotices())
	assert.Equal(t, "Rojas", stored.Employee.PaternalSurname)
}

func TestLiquidationRepository_NoticesSurvivePersistence(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	company := seedCompany(t, db)
	emp := seedEmployee(t, db, company.ID, "11111111-1", "Rojas")
	repo := NewLiquidationRepository(db)

	liq := &models.Liquidation{CompanyID: company.ID, EmployeeID: emp.ID, Year: 2025, Month: 6}
	liq.SetNotices([]payroll.Notice{{Kind: payroll.NoticeConfigurationFallback, Field: "health_provider", Default: "fonasa"}})
	require.NoError(t, repo.Upsert(ctx, liq))

	stored, err := repo.FindByEmployeePeriod(ctx, emp.ID, 2025, 6)
	require.NoError(t, err)
	notices := stored.GetNotices()
	require.Len(t, notices, 1)
	assert.Equal(t, "health_provider", notices[0].Field)
	assert.Equal(t, "fonasa", notices[0].Default)
}

func TestLiquidationRepository_ListByPeriod(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	company := seedCompany(t, db)
	rojas := seedEmployee(t, db, company.ID, "11111111-1", "Rojas")
	munoz := seedEmployee(t, db, company.ID, "22222222-2", "Muñoz")
	repo := NewLiquidationRepository(db)

	require.NoError(t, repo.Upsert(ctx, &models.Liquidation{CompanyID: company.ID, EmployeeID: rojas.ID, Year: 2025, Month: 6}))
	require.NoError(t, repo.Upsert(ctx, &models.Liquidation{CompanyID: company.ID, EmployeeID: munoz.ID, Year: 2025, Month: 6, Status: models.LiquidationStatusCancelled}))
	require.NoError(t, repo.Upsert(ctx, &models.Liquidation{CompanyID: company.ID, EmployeeID: rojas.ID, Year: 2025, Month: 5}))

	active, err := repo.ListByPeriod(ctx, company.ID, 2025, 6, false)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, rojas.ID, active[0].EmployeeID)
	assert.Len(t, active[0].Employee.Contracts, 1)

	all, err := repo.ListByPeriod(ctx, company.ID, 2025, 6, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	forPeriod, err := repo.ListForPeriod(ctx, 2025, 5)
	require.NoError(t, err)
	assert.Len(t, forPeriod, 1)
}

func TestEmployeeRepository_FindActiveByCompany(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	company := seedCompany(t, db)
	seedEmployee(t, db, company.ID, "11111111-1", "Rojas")
	inactive := seedEmployee(t, db, company.ID, "22222222-2", "Muñoz")
	require.NoError(t, db.Model(inactive).Update("active", false).Error)

	employees, err := NewEmployeeRepository(db).FindActiveByCompany(ctx, company.ID)
	require.NoError(t, err)
	require.Len(t, employees, 1)
	assert.Equal(t, "Rojas", employees[0].PaternalSurname)
	assert.Len(t, employees[0].Contracts, 1)
	assert.Nil(t, employees[0].PayrollConfig)
}

func TestLiquidationRepository_UpsertRefusesLockedRecords(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	company := seedCompany(t, db)
	emp := seedEmployee(t, db, company.ID, "11111111-1", "Rojas")
	repo := NewLiquidationRepository(db)

	liq := &models.Liquidation{CompanyID: company.ID, EmployeeID: emp.ID, Year: 2025, Month: 6, Status: models.LiquidationStatusApproved}
	require.NoError(t, repo.Upsert(ctx, liq))

	err := repo.Upsert(ctx, &models.Liquidation{CompanyID: company.ID, EmployeeID: emp.ID, Year: 2025, Month: 6})
	assert.ErrorIs(t, err, ErrNotEditable)
}
