package repository

import (
	"context"

	"github.com/sjperalta/remuneraciones-api/internal/models"
	"gorm.io/gorm"
)

// EmployeeRepository is the read side of the employee directory
type EmployeeRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Employee, error)
	FindActiveByCompany(ctx context.Context, companyID uint) ([]models.Employee, error)
	List(ctx context.Context, companyID uint, query *ListQuery) ([]models.Employee, int64, error)
	Create(ctx context.Context, employee *models.Employee) error
}

type employeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository creates a new employee repository
func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

func withPayrollData(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Contracts", func(db *gorm.DB) *gorm.DB {
			return db.Order("start_date ASC")
		}).
		Preload("PayrollConfig")
}

func (r *employeeRepository) FindByID(ctx context.Context, id uint) (*models.Employee, error) {
	var employee models.Employee
	err := withPayrollData(r.db.WithContext(ctx)).
		Preload("Company").
		First(&employee, id).Error
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepository) FindActiveByCompany(ctx context.Context, companyID uint) ([]models.Employee, error) {
	var employees []models.Employee
	err := withPayrollData(r.db.WithContext(ctx)).
		Where("company_id = ? AND active = ?", companyID, true).
		Order("paternal_surname ASC, maternal_surname ASC, first_names ASC").
		Find(&employees).Error
	return employees, err
}

func (r *employeeRepository) List(ctx context.Context, companyID uint, query *ListQuery) ([]models.Employee, int64, error) {
	var employees []models.Employee
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Employee{}).Where("company_id = ?", companyID)

	if query.Search != "" {
		search := "%" + query.Search + "%"
		db = db.Where("LOWER(first_names) LIKE LOWER(?) OR LOWER(paternal_surname) LIKE LOWER(?) OR LOWER(maternal_surname) LIKE LOWER(?) OR rut LIKE ?",
			search, search, search, search)
	}

	if query.Filters["active"] != "" {
		db = db.Where("active = ?", query.Filters["active"] == "true")
	}

	db.Count(&total)

	db = applyOrder(db, query, "paternal_surname ASC")
	db = applyPage(db, query)

	err := withPayrollData(db).Find(&employees).Error
	return employees, total, err
}

func (r *employeeRepository) Create(ctx context.Context, employee *models.Employee) error {
	return r.db.WithContext(ctx).Create(employee).Error
}
