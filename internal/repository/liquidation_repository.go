package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/sjperalta/remuneraciones-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotEditable is returned by Upsert when the stored liquidation is past review
var ErrNotEditable = errors.New("liquidation is not editable")

// LiquidationRepository defines the interface for liquidation data access
type LiquidationRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Liquidation, error)
	FindByEmployeePeriod(ctx context.Context, employeeID uint, year, month int) (*models.Liquidation, error)
	Upsert(ctx context.Context, liquidation *models.Liquidation) error
	Update(ctx context.Context, liquidation *models.Liquidation) error
	ListByPeriod(ctx context.Context, companyID uint, year, month int, includeCancelled bool) ([]models.Liquidation, error)
	ListForPeriod(ctx context.Context, year, month int) ([]models.Liquidation, error)
}

type liquidationRepository struct {
	db *gorm.DB
}

// NewLiquidationRepository creates a new liquidation repository
func NewLiquidationRepository(db *gorm.DB) LiquidationRepository {
	return &liquidationRepository{db: db}
}

func (r *liquidationRepository) FindByID(ctx context.Context, id uint) (*models.Liquidation, error) {
	var liquidation models.Liquidation
	err := r.db.WithContext(ctx).
		Preload("Employee").
		First(&liquidation, id).Error
	if err != nil {
		return nil, err
	}
	return &liquidation, nil
}

func (r *liquidationRepository) FindByEmployeePeriod(ctx context.Context, employeeID uint, year, month int) (*models.Liquidation, error) {
	var liquidation models.Liquidation
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND year = ? AND month = ?", employeeID, year, month).
		First(&liquidation).Error
	if err != nil {
		return nil, err
	}
	return &liquidation, nil
}

// Upsert writes the liquidation keyed by (employee, year, month). An existing row keeps its id,
// status and creation time; every other column is overwritten.
func (r *liquidationRepository) Upsert(ctx context.Context, liquidation *models.Liquidation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Liquidation
		err := tx.Select("id", "status", "created_at", "approved_at", "paid_at").
			Where("employee_id = ? AND year = ? AND month = ?", liquidation.EmployeeID, liquidation.Year, liquidation.Month).
			First(&existing).Error

		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if liquidation.Status == "" {
				liquidation.Status = models.LiquidationStatusDraft
			}
			if err := tx.Omit(clause.Associations).Create(liquidation).Error; err != nil {
				return fmt.Errorf("failed to create liquidation: %w", err)
			}
			return nil
		case err != nil:
			return fmt.Errorf("failed to load liquidation: %w", err)
		}

		if !existing.IsEditable() {
			return ErrNotEditable
		}

		liquidation.ID = existing.ID
		liquidation.CreatedAt = existing.CreatedAt
		liquidation.Status = existing.Status
		liquidation.ApprovedAt = existing.ApprovedAt
		liquidation.PaidAt = existing.PaidAt
		if err := tx.Omit(clause.Associations).Save(liquidation).Error; err != nil {
			return fmt.Errorf("failed to update liquidation: %w", err)
		}
		return nil
	})
}

func (r *liquidationRepository) Update(ctx context.Context, liquidation *models.Liquidation) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(liquidation).Error
}

func (r *liquidationRepository) ListByPeriod(ctx context.Context, companyID uint, year, month int, includeCancelled bool) ([]models.Liquidation, error) {
	var liquidations []models.Liquidation
	db := r.db.WithContext(ctx).
		Preload("Employee.Contracts").
		Preload("Employee.PayrollConfig").
		Where("company_id = ? AND year = ? AND month = ?", companyID, year, month)
	if !includeCancelled {
		db = db.Where("status <> ?", models.LiquidationStatusCancelled)
	}
	err := db.Order("id ASC").Find(&liquidations).Error
	return liquidations, err
}

func (r *liquidationRepository) ListForPeriod(ctx context.Context, year, month int) ([]models.Liquidation, error) {
	var liquidations []models.Liquidation
	err := r.db.WithContext(ctx).
		Where("year = ? AND month = ? AND status <> ?", year, month, models.LiquidationStatusCancelled).
		Order("company_id ASC, id ASC").
		Find(&liquidations).Error
	return liquidations, err
}
