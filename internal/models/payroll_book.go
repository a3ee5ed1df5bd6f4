package models

import "time"

// PayrollBook aggregates every liquidation of a company for one period
type PayrollBook struct {
	ID                         uint      `gorm:"primaryKey" json:"id"`
	CompanyID                  uint      `gorm:"not null;uniqueIndex:idx_payroll_books_period;uniqueIndex:idx_payroll_books_number" json:"company_id"`
	Year                       int       `gorm:"not null;uniqueIndex:idx_payroll_books_period" json:"year"`
	Month                      int       `gorm:"not null;uniqueIndex:idx_payroll_books_period" json:"month"`
	BookNumber                 int       `gorm:"not null;uniqueIndex:idx_payroll_books_number" json:"book_number"`
	TotalEmployees             int       `json:"total_employees"`
	TotalTaxableIncome         int64     `json:"total_taxable_income"`
	TotalNonTaxableIncome      int64     `json:"total_non_taxable_income"`
	TotalGrossIncome           int64     `json:"total_gross_income"`
	TotalDeductions            int64     `json:"total_deductions"`
	TotalNetSalary             int64     `json:"total_net_salary"`
	TotalEmployerContributions int64     `json:"total_employer_contributions"`
	GeneratedByID              *uint     `json:"generated_by_id"`
	CreatedAt                  time.Time `json:"created_at"`
	UpdatedAt                  time.Time `json:"updated_at"`

	// Associations
	Details []PayrollBookDetail `gorm:"foreignKey:BookID" json:"details,omitempty"`
}

// TableName specifies the table name for PayrollBook
func (PayrollBook) TableName() string {
	return "payroll_books"
}

// PayrollBookDetail is the per-employee line of a payroll book
type PayrollBookDetail struct {
	ID                    uint   `gorm:"primaryKey" json:"id"`
	BookID                uint   `gorm:"not null;index" json:"book_id"`
	LiquidationID         uint   `gorm:"not null;index" json:"liquidation_id"`
	EmployeeID            uint   `gorm:"not null" json:"employee_id"`
	EmployeeRUT           string `gorm:"size:12" json:"employee_rut"`
	EmployeeName          string `json:"employee_name"`
	DaysWorked            int    `json:"days_worked"`
	TotalTaxableIncome    int64  `json:"total_taxable_income"`
	TotalNonTaxableIncome int64  `json:"total_non_taxable_income"`
	TotalGrossIncome      int64  `json:"total_gross_income"`
	TotalDeductions       int64  `json:"total_deductions"`
	NetSalary             int64  `json:"net_salary"`
	EmployerContributions int64  `json:"employer_contributions"`
}

// TableName specifies the table name for PayrollBookDetail
func (PayrollBookDetail) TableName() string {
	return "payroll_book_details"
}

// Accumulate adds a detail line to the book totals
func (b *PayrollBook) Accumulate(d PayrollBookDetail) {
	b.TotalEmployees++
	b.TotalTaxableIncome += d.TotalTaxableIncome
	b.TotalNonTaxableIncome += d.TotalNonTaxableIncome
	b.TotalGrossIncome += d.TotalGrossIncome
	b.TotalDeductions += d.TotalDeductions
	b.TotalNetSalary += d.NetSalary
	b.TotalEmployerContributions += d.EmployerContributions
	b.Details = append(b.Details, d)
}
