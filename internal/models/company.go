package models

import "time"

// Company is an employer. Its fields double as the tenant's payroll profile.
type Company struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	RUT         string `gorm:"size:12;not null;uniqueIndex" json:"rut"`
	Name        string `gorm:"not null" json:"name"`
	RegionCode  string `gorm:"size:4;default:13" json:"region_code"`
	CommuneCode string `gorm:"size:6;default:13101" json:"commune_code"`

	// CCAF and work-accident insurer for every employee without an override
	FamilyFund             string  `gorm:"size:30" json:"family_fund"`
	AccidentInsurer        string  `gorm:"size:30;default:isl" json:"accident_insurer"`
	AdditionalAccidentRate float64 `gorm:"type:decimal(6,4);default:0" json:"additional_accident_rate"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for Company
func (Company) TableName() string {
	return "companies"
}
