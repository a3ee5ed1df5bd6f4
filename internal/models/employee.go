package models

import (
	"strings"
	"time"

	"github.com/sjperalta/remuneraciones-api/internal/payroll"
)

// Employee represents a worker of a company
type Employee struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	CompanyID       uint      `gorm:"not null;index" json:"company_id"`
	RUT             string    `gorm:"size:12;not null;uniqueIndex" json:"rut"`
	FirstNames      string    `gorm:"not null" json:"first_names"`
	PaternalSurname string    `gorm:"not null;index" json:"paternal_surname"`
	MaternalSurname string    `json:"maternal_surname"`
	Email           *string   `json:"email"`
	Active          bool      `gorm:"default:true;index" json:"active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	// Associations
	Company       Company              `gorm:"foreignKey:CompanyID" json:"-"`
	Contracts     []EmploymentContract `gorm:"foreignKey:EmployeeID" json:"contracts,omitempty"`
	PayrollConfig *PayrollConfig       `gorm:"foreignKey:EmployeeID" json:"payroll_config,omitempty"`
}

// TableName specifies the table name for Employee
func (Employee) TableName() string {
	return "employees"
}

// FullName returns first names followed by both surnames
func (e *Employee) FullName() string {
	return strings.TrimSpace(strings.Join([]string{e.FirstNames, e.PaternalSurname, e.MaternalSurname}, " "))
}

// ActiveContract returns the contract in force during the period. When several overlap,
// the most recent one wins.
func (e *Employee) ActiveContract(year int, month time.Month) (*EmploymentContract, bool) {
	periodStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	periodEnd := periodStart.AddDate(0, 1, -1)

	var active *EmploymentContract
	for i := range e.Contracts {
		c := &e.Contracts[i]
		if c.StartDate.After(periodEnd) {
			continue
		}
		if c.EndDate != nil && c.EndDate.Before(periodStart) {
			continue
		}
		if active == nil || c.StartDate.After(active.StartDate) {
			active = c
		}
	}
	return active, active != nil
}

// Contract type constants
const (
	ContractTypeIndefinite = payroll.ContractIndefinite
	ContractTypeFixedTerm  = payroll.ContractFixedTerm
	ContractTypeByTask     = payroll.ContractByTask
)

// EmploymentContract is a labour contract of an employee
type EmploymentContract struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	EmployeeID       uint       `gorm:"not null;index" json:"employee_id"`
	Type             string     `gorm:"size:20;not null" json:"type"`
	BaseSalary       int64      `gorm:"not null" json:"base_salary"`
	WeeklyHours      int        `gorm:"default:44" json:"weekly_hours"`
	StartDate        time.Time  `gorm:"type:date;not null" json:"start_date"`
	EndDate          *time.Time `gorm:"type:date" json:"end_date"`
	TerminationCause *string    `gorm:"size:10" json:"termination_cause"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// TableName specifies the table name for EmploymentContract
func (EmploymentContract) TableName() string {
	return "employment_contracts"
}

// PayrollConfig is the standing payroll configuration of an employee
type PayrollConfig struct {
	ID                     uint      `gorm:"primaryKey" json:"id"`
	EmployeeID             uint      `gorm:"not null;uniqueIndex" json:"employee_id"`
	PensionFund            string    `gorm:"size:30" json:"pension_fund"`
	HealthProvider         string    `gorm:"size:30" json:"health_provider"`
	HealthPlanUF           float64   `gorm:"type:decimal(8,4);default:0" json:"health_plan_uf"`
	FamilyFund             string    `gorm:"size:30" json:"family_fund"`
	AccidentInsurer        string    `gorm:"size:30" json:"accident_insurer"`
	Dependents             int       `gorm:"default:0" json:"dependents"`
	FamilyBracket          string    `gorm:"size:1" json:"family_bracket"`
	StatutoryGratification bool      `gorm:"default:true" json:"statutory_gratification"`
	FoodAllowance          int64     `gorm:"default:0" json:"food_allowance"`
	TransportAllowance     int64     `gorm:"default:0" json:"transport_allowance"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}

// TableName specifies the table name for PayrollConfig
func (PayrollConfig) TableName() string {
	return "payroll_configs"
}

// ToEngine converts the stored configuration to calculator input
func (c *PayrollConfig) ToEngine() payroll.Config {
	if c == nil {
		return payroll.Config{}
	}
	return payroll.Config{
		PensionFund:            c.PensionFund,
		HealthProvider:         c.HealthProvider,
		HealthPlanUF:           c.HealthPlanUF,
		Dependents:             c.Dependents,
		FamilyBracket:          c.FamilyBracket,
		StatutoryGratification: c.StatutoryGratification,
		FoodAllowance:          c.FoodAllowance,
		TransportAllowance:     c.TransportAllowance,
	}
}

// EmployeeResponse is the JSON response format for the employee directory
type EmployeeResponse struct {
	ID            uint                 `json:"id"`
	CompanyID     uint                 `json:"company_id"`
	RUT           string               `json:"rut"`
	FullName      string               `json:"full_name"`
	Active        bool                 `json:"active"`
	Contracts     []EmploymentContract `json:"contracts"`
	PayrollConfig *PayrollConfig       `json:"payroll_config,omitempty"`
}

// ToResponse converts Employee to EmployeeResponse
func (e *Employee) ToResponse() EmployeeResponse {
	return EmployeeResponse{
		ID:            e.ID,
		CompanyID:     e.CompanyID,
		RUT:           e.RUT,
		FullName:      e.FullName(),
		Active:        e.Active,
		Contracts:     e.Contracts,
		PayrollConfig: e.PayrollConfig,
	}
}
