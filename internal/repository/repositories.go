package repository

import (
	"gorm.io/gorm"
)

// Repositories holds all repository instances
type Repositories struct {
	User         UserRepository
	RefreshToken RefreshTokenRepository
	Company      CompanyRepository
	Employee     EmployeeRepository
	Liquidation  LiquidationRepository
	PayrollBook  PayrollBookRepository
	Audit        AuditRepository
}

// NewRepositories creates all repository instances
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		RefreshToken: NewRefreshTokenRepository(db),
		Company:      NewCompanyRepository(db),
		Employee:     NewEmployeeRepository(db),
		Liquidation:  NewLiquidationRepository(db),
		PayrollBook:  NewPayrollBookRepository(db),
		Audit:        NewAuditRepository(db),
	}
}
