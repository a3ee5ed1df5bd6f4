package repository

import (
	"context"
	"fmt"

	"github.com/sjperalta/remuneraciones-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PayrollBookRepository defines the interface for payroll book data access
type PayrollBookRepository interface {
	ReplaceForPeriod(ctx context.Context, book *models.PayrollBook) error
	FindByPeriod(ctx context.Context, companyID uint, year, month int) (*models.PayrollBook, error)
	CountByPeriod(ctx context.Context, companyID uint, year, month int) (int64, error)
}

type payrollBookRepository struct {
	db *gorm.DB
}

// NewPayrollBookRepository creates a new payroll book repository
func NewPayrollBookRepository(db *gorm.DB) PayrollBookRepository {
	return &payrollBookRepository{db: db}
}

// ReplaceForPeriod deletes any book of the same company and period with all its details and
// inserts the given one under the next book number, in a single transaction.
func (r *payrollBookRepository) ReplaceForPeriod(ctx context.Context, book *models.PayrollBook) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Serialises concurrent replacements for the same company
		var company models.Company
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&company, book.CompanyID).Error; err != nil {
			return fmt.Errorf("failed to lock company: %w", err)
		}

		// The number is taken before deleting so a replaced book never hands its number back
		var lastNumber int
		if err := tx.Model(&models.PayrollBook{}).
			Where("company_id = ?", book.CompanyID).
			Select("COALESCE(MAX(book_number), 0)").
			Scan(&lastNumber).Error; err != nil {
			return fmt.Errorf("failed to read last book number: %w", err)
		}

		var previous []uint
		if err := tx.Model(&models.PayrollBook{}).
			Where("company_id = ? AND year = ? AND month = ?", book.CompanyID, book.Year, book.Month).
			Pluck("id", &previous).Error; err != nil {
			return fmt.Errorf("failed to find previous book: %w", err)
		}

		if len(previous) > 0 {
			if err := tx.Where("book_id IN ?", previous).Delete(&models.PayrollBookDetail{}).Error; err != nil {
				return fmt.Errorf("failed to delete previous book details: %w", err)
			}
			if err := tx.Where("id IN ?", previous).Delete(&models.PayrollBook{}).Error; err != nil {
				return fmt.Errorf("failed to delete previous book: %w", err)
			}
		}

		book.ID = 0
		book.BookNumber = lastNumber + 1
		for i := range book.Details {
			book.Details[i].ID = 0
			book.Details[i].BookID = 0
		}
		if err := tx.Create(book).Error; err != nil {
			return fmt.Errorf("failed to create book: %w", err)
		}
		return nil
	})
}

func (r *payrollBookRepository) FindByPeriod(ctx context.Context, companyID uint, year, month int) (*models.PayrollBook, error) {
	var book models.PayrollBook
	err := r.db.WithContext(ctx).
		Preload("Details", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Where("company_id = ? AND year = ? AND month = ?", companyID, year, month).
		First(&book).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *payrollBookRepository) CountByPeriod(ctx context.Context, companyID uint, year, month int) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.PayrollBook{}).
		Where("company_id = ? AND year = ? AND month = ?", companyID, year, month).
		Count(&count).Error
	return count, err
}
