package models

import (
	"encoding/json"
	"time"

	"github.com/sjperalta/remuneraciones-api/internal/payroll"
)

// Liquidation is the monthly pay computation of one employee. Totals are recomputed from
// the embedded components on every write and reconciled on every read.
type Liquidation struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	CompanyID      uint   `gorm:"not null;index:idx_liquidations_company_period" json:"company_id"`
	EmployeeID     uint   `gorm:"not null;uniqueIndex:idx_liquidations_employee_period" json:"employee_id"`
	ContractID     uint   `gorm:"not null" json:"contract_id"`
	Year           int    `gorm:"not null;uniqueIndex:idx_liquidations_employee_period;index:idx_liquidations_company_period" json:"year"`
	Month          int    `gorm:"not null;uniqueIndex:idx_liquidations_employee_period;index:idx_liquidations_company_period" json:"month"`
	Status         string `gorm:"size:20;default:draft;index" json:"status"`
	PensionFund    string `gorm:"size:30" json:"pension_fund"`
	HealthProvider string `gorm:"size:30" json:"health_provider"`

	// Set only for a contract's first, partial month
	PartialStartDay    *int `json:"partial_start_day,omitempty"`
	PartialDaysInMonth *int `json:"partial_days_in_month,omitempty"`

	SickLeaveDays int `gorm:"default:0" json:"sick_leave_days"`
	VacationDays  int `gorm:"default:0" json:"vacation_days"`

	payroll.Breakdown

	Notices    string     `gorm:"type:text" json:"-"` // JSON encoded []payroll.Notice
	ApprovedAt *time.Time `json:"approved_at"`
	PaidAt     *time.Time `json:"paid_at"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`

	// Associations
	Employee Employee `gorm:"foreignKey:EmployeeID" json:"-"`
}

// TableName specifies the table name for Liquidation
func (Liquidation) TableName() string {
	return "liquidations"
}

// Liquidation status constants
const (
	LiquidationStatusDraft     = "draft"
	LiquidationStatusReview    = "review"
	LiquidationStatusApproved  = "approved"
	LiquidationStatusPaid      = "paid"
	LiquidationStatusCancelled = "cancelled"
)

// MaySubmit returns true if the liquidation can be sent to review
func (l *Liquidation) MaySubmit() bool {
	return l.Status == LiquidationStatusDraft
}

// MayReturn returns true if the liquidation can go back to draft from review
func (l *Liquidation) MayReturn() bool {
	return l.Status == LiquidationStatusReview
}

// MayApprove returns true if the liquidation can be approved
func (l *Liquidation) MayApprove() bool {
	return l.Status == LiquidationStatusReview
}

// MayReopen returns true if an approved liquidation can go back to review
func (l *Liquidation) MayReopen() bool {
	return l.Status == LiquidationStatusApproved
}

// MayPay returns true if the liquidation can be marked as paid
func (l *Liquidation) MayPay() bool {
	return l.Status == LiquidationStatusApproved
}

// MayCancel returns true if the liquidation can be cancelled
func (l *Liquidation) MayCancel() bool {
	return l.Status == LiquidationStatusDraft
}

// MayRestore returns true if a cancelled liquidation can go back to draft
func (l *Liquidation) MayRestore() bool {
	return l.Status == LiquidationStatusCancelled
}

// Contract returns the contract the liquidation was computed with, looked up in the loaded
// employee contracts, falling back to the one in force for the period.
func (l *Liquidation) Contract() (*EmploymentContract, bool) {
	for i := range l.Employee.Contracts {
		if l.Employee.Contracts[i].ID == l.ContractID {
			return &l.Employee.Contracts[i], true
		}
	}
	return l.Employee.ActiveContract(l.Year, time.Month(l.Month))
}

// IsEditable returns true while the liquidation may still be regenerated
func (l *Liquidation) IsEditable() bool {
	return l.Status == "" || l.Status == LiquidationStatusDraft || l.Status == LiquidationStatusReview
}

// GetNotices decodes the stored notices
func (l *Liquidation) GetNotices() []payroll.Notice {
	if l.Notices == "" {
		return nil
	}
	var notices []payroll.Notice
	if err := json.Unmarshal([]byte(l.Notices), &notices); err != nil {
		return nil
	}
	return notices
}

// SetNotices encodes notices for storage
func (l *Liquidation) SetNotices(notices []payroll.Notice) {
	if len(notices) == 0 {
		l.Notices = ""
		return
	}
	data, err := json.Marshal(notices)
	if err != nil {
		return
	}
	l.Notices = string(data)
}

// PartialPeriod returns the first-month details when present
func (l *Liquidation) PartialPeriod() *payroll.PartialPeriod {
	if l.PartialStartDay == nil || l.PartialDaysInMonth == nil {
		return nil
	}
	return &payroll.PartialPeriod{StartDay: *l.PartialStartDay, DaysInMonth: *l.PartialDaysInMonth}
}

// SetPartialPeriod stores or clears the first-month details
func (l *Liquidation) SetPartialPeriod(p *payroll.PartialPeriod) {
	if p == nil {
		l.PartialStartDay = nil
		l.PartialDaysInMonth = nil
		return
	}
	start, days := p.StartDay, p.DaysInMonth
	l.PartialStartDay = &start
	l.PartialDaysInMonth = &days
}

// LiquidationResponse is the JSON response format
type LiquidationResponse struct {
	ID             uint                   `json:"id"`
	CompanyID      uint                   `json:"company_id"`
	EmployeeID     uint                   `json:"employee_id"`
	EmployeeName   string                 `json:"employee_name,omitempty"`
	EmployeeRUT    string                 `json:"employee_rut,omitempty"`
	Year           int                    `json:"year"`
	Month          int                    `json:"month"`
	Status         string                 `json:"status"`
	PensionFund    string                 `json:"pension_fund"`
	HealthProvider string                 `json:"health_provider"`
	PartialPeriod  *payroll.PartialPeriod `json:"partial_period,omitempty"`
	Breakdown      payroll.Breakdown      `json:"breakdown"`
	Notices        []payroll.Notice       `json:"notices"`
	ApprovedAt     *time.Time             `json:"approved_at"`
	PaidAt         *time.Time             `json:"paid_at"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
}

// ToResponse converts Liquidation to LiquidationResponse
func (l *Liquidation) ToResponse() LiquidationResponse {
	resp := LiquidationResponse{
		ID:             l.ID,
		CompanyID:      l.CompanyID,
		EmployeeID:     l.EmployeeID,
		Year:           l.Year,
		Month:          l.Month,
		Status:         l.Status,
		PensionFund:    l.PensionFund,
		HealthProvider: l.HealthProvider,
		PartialPeriod:  l.PartialPeriod(),
		Breakdown:      l.Breakdown,
		Notices:        l.GetNotices(),
		ApprovedAt:     l.ApprovedAt,
		PaidAt:         l.PaidAt,
		CreatedAt:      l.CreatedAt,
		UpdatedAt:      l.UpdatedAt,
	}
	if resp.Notices == nil {
		resp.Notices = []payroll.Notice{}
	}
	if l.Employee.ID != 0 {
		resp.EmployeeName = l.Employee.FullName()
		resp.EmployeeRUT = l.Employee.RUT
	}
	return resp
}
