package models

import (
	"time"
)

// AuditLog represents a payroll audit entry
type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    *uint     `gorm:"index" json:"user_id"`                 // nil for scheduled jobs
	CompanyID *uint     `gorm:"index" json:"company_id"`              // nil for system-wide events
	Action    string    `gorm:"size:50;not null" json:"action"`       // GENERATE, TRANSITION, REPLACE_BOOK, EXPORT, RECONCILE
	Entity    string    `gorm:"size:50;not null;index" json:"entity"` // Liquidation, PayrollBook
	EntityID  uint      `gorm:"index" json:"entity_id"`
	Details   string    `gorm:"type:text" json:"details"` // JSON or text description
	IPAddress string    `gorm:"size:45" json:"ip_address"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// TableName specifies the table name for AuditLog
func (AuditLog) TableName() string {
	return "audit_logs"
}

// Audit action constants
const (
	AuditActionGenerate    = "GENERATE"
	AuditActionTransition  = "TRANSITION"
	AuditActionReplaceBook = "REPLACE_BOOK"
	AuditActionExport      = "EXPORT"
	AuditActionReconcile   = "RECONCILE"
)
