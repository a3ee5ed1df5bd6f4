package payroll

import "fmt"

// ReconciliationTolerance is the drift, in pesos, accepted between stored and derived totals.
const ReconciliationTolerance int64 = 1

// NoticeKind classifies non-fatal findings attached to a liquidation.
type NoticeKind string

const (
	NoticeReconciliation        NoticeKind = "reconciliation_warning"
	NoticeConfigurationFallback NoticeKind = "configuration_fallback"
)

// Notice is a non-blocking finding that must reach the caller and the audit trail.
type Notice struct {
	Kind     NoticeKind `json:"kind"`
	Field    string     `json:"field"`
	Message  string     `json:"message"`
	Default  string     `json:"default,omitempty"`
	Stored   int64      `json:"stored,omitempty"`
	Computed int64      `json:"computed,omitempty"`
}

func fallbackNotice(field, def, message string) Notice {
	return Notice{Kind: NoticeConfigurationFallback, Field: field, Default: def, Message: message}
}

// Breakdown holds every component of a liquidation together with its derived totals.
// It is embedded in the persisted liquidation so the column set stays in one place.
type Breakdown struct {
	DaysWorked    int     `json:"days_worked"`
	OvertimeHours float64 `json:"overtime_hours"`

	BaseSalary             int64 `json:"base_salary"`
	OvertimeAmount         int64 `json:"overtime_amount"`
	Bonuses                int64 `json:"bonuses"`
	Commissions            int64 `json:"commissions"`
	SemanaCorrida          int64 `json:"semana_corrida"`
	Gratification          int64 `json:"gratification"`
	StatutoryGratification int64 `json:"statutory_gratification"`

	FoodAllowance      int64 `json:"food_allowance"`
	TransportAllowance int64 `json:"transport_allowance"`
	FamilyAllowance    int64 `json:"family_allowance"`

	TotalTaxableIncome    int64 `json:"total_taxable_income"`
	TotalNonTaxableIncome int64 `json:"total_non_taxable_income"`
	TotalGrossIncome      int64 `json:"total_gross_income"`

	// ContributionBase is the taxable income capped at the social security ceiling.
	ContributionBase int64 `json:"contribution_base"`

	PensionPercentage           float64 `json:"pension_percentage"`
	PensionAmount               int64   `json:"pension_amount"`
	PensionCommissionPercentage float64 `json:"pension_commission_percentage"`
	PensionCommissionAmount     int64   `json:"pension_commission_amount"`
	HealthPercentage            float64 `json:"health_percentage"`
	HealthAmount                int64   `json:"health_amount"`
	UnemploymentPercentage      float64 `json:"unemployment_percentage"`
	UnemploymentAmount          int64   `json:"unemployment_amount"`
	DisabilityInsuranceAmount   int64   `json:"disability_insurance_amount"`
	IncomeTaxAmount             int64   `json:"income_tax_amount"`
	Loans                       int64   `json:"loans"`
	Advances                    int64   `json:"advances"`
	VoluntarySavings            int64   `json:"voluntary_savings"`
	OtherDeductions             int64   `json:"other_deductions"`

	TotalDeductions int64 `json:"total_deductions"`
	NetSalary       int64 `json:"net_salary"`
}

// TaxableComponents sums the taxable income lines.
func (b Breakdown) TaxableComponents() int64 {
	return b.BaseSalary + b.OvertimeAmount + b.Bonuses + b.Commissions +
		b.SemanaCorrida + b.Gratification + b.StatutoryGratification
}

// NonTaxableComponents sums the allowances.
func (b Breakdown) NonTaxableComponents() int64 {
	return b.FoodAllowance + b.TransportAllowance + b.FamilyAllowance
}

// DeductionComponents sums every worker deduction line.
func (b Breakdown) DeductionComponents() int64 {
	return b.PensionAmount + b.PensionCommissionAmount + b.HealthAmount +
		b.UnemploymentAmount + b.DisabilityInsuranceAmount + b.IncomeTaxAmount +
		b.Loans + b.Advances + b.VoluntarySavings + b.OtherDeductions
}

// PensionTotal is the full AFP contribution (mandatory rate plus fund commission).
func (b Breakdown) PensionTotal() int64 {
	return b.PensionAmount + b.PensionCommissionAmount
}

// SocialSecurity is the sum of the worker's statutory contributions.
func (b Breakdown) SocialSecurity() int64 {
	return b.PensionTotal() + b.HealthAmount + b.UnemploymentAmount + b.DisabilityInsuranceAmount
}

// OtherDeductionsTotal is everything that is neither a contribution nor tax.
func (b Breakdown) OtherDeductionsTotal() int64 {
	return b.Loans + b.Advances + b.VoluntarySavings + b.OtherDeductions
}

// Recompute derives every total from the components, overwriting stored values.
func (b *Breakdown) Recompute() {
	b.TotalTaxableIncome = b.TaxableComponents()
	b.TotalNonTaxableIncome = b.NonTaxableComponents()
	b.TotalGrossIncome = b.TotalTaxableIncome + b.TotalNonTaxableIncome
	b.TotalDeductions = b.DeductionComponents()
	b.NetSalary = b.TotalGrossIncome - b.TotalDeductions
}

// Reconcile recomputes the totals in place and reports every stored total that drifted
// beyond ReconciliationTolerance.
func Reconcile(b *Breakdown) []Notice {
	stored := *b
	b.Recompute()

	checks := []struct {
		field            string
		stored, computed int64
	}{
		{"total_taxable_income", stored.TotalTaxableIncome, b.TotalTaxableIncome},
		{"total_non_taxable_income", stored.TotalNonTaxableIncome, b.TotalNonTaxableIncome},
		{"total_gross_income", stored.TotalGrossIncome, b.TotalGrossIncome},
		{"total_deductions", stored.TotalDeductions, b.TotalDeductions},
		{"net_salary", stored.NetSalary, b.NetSalary},
	}

	var notices []Notice
	for _, c := range checks {
		diff := c.stored - c.computed
		if diff < 0 {
			diff = -diff
		}
		if diff > ReconciliationTolerance {
			notices = append(notices, Notice{
				Kind:     NoticeReconciliation,
				Field:    c.field,
				Stored:   c.stored,
				Computed: c.computed,
				Message:  fmt.Sprintf("total almacenado %d difiere del recalculado %d", c.stored, c.computed),
			})
		}
	}
	return notices
}

// Canonical returns the breakdown with semana corrida and every total re-derived from the
// components, plus the reconciliation notices for the stored values. Read paths, books and
// exports all go through it.
func Canonical(b Breakdown) (Breakdown, []Notice) {
	b.SemanaCorrida = SemanaCorrida(b.Commissions, b.OvertimeAmount)
	notices := Reconcile(&b)
	return b, notices
}
