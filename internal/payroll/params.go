package payroll

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Contract types recognised by the calculator.
const (
	ContractIndefinite = "indefinido"
	ContractFixedTerm  = "plazo_fijo"
	ContractByTask     = "obra_faena"
)

// HealthPublic is the public health provider id. Any other id is treated as an Isapre.
const HealthPublic = "fonasa"

// DefaultWeeklyHours applies when a contract does not state its schedule.
const DefaultWeeklyHours = 44

const effectiveDateLayout = "2006-01-02"

// OvertimeFactor is one row of the official overtime factor table.
type OvertimeFactor struct {
	WeeklyHours int     `mapstructure:"weekly_hours" json:"weekly_hours" yaml:"weekly_hours"`
	Factor      float64 `mapstructure:"factor" json:"factor" yaml:"factor"`
}

// TaxBracket is one row of the monthly second-category income tax table, expressed in UTM.
// ToUTM zero means the bracket is open ended.
type TaxBracket struct {
	FromUTM   float64 `mapstructure:"from_utm" json:"from_utm" yaml:"from_utm"`
	ToUTM     float64 `mapstructure:"to_utm" json:"to_utm" yaml:"to_utm"`
	Rate      float64 `mapstructure:"rate" json:"rate" yaml:"rate"`
	RebateUTM float64 `mapstructure:"rebate_utm" json:"rebate_utm" yaml:"rebate_utm"`
}

// UnemploymentRates is the AFC split for one contract type.
type UnemploymentRates struct {
	Worker   float64 `mapstructure:"worker" json:"worker" yaml:"worker"`
	Employer float64 `mapstructure:"employer" json:"employer" yaml:"employer"`
}

// EmployerRates holds employer-only premiums.
type EmployerRates struct {
	SIS              float64 `mapstructure:"sis" json:"sis" yaml:"sis"`
	WorkAccidentBase float64 `mapstructure:"work_accident_base" json:"work_accident_base" yaml:"work_accident_base"`
}

// Parameters is the set of regulatory values in force from EffectiveFrom onwards.
// Rates are fractions (0.10 for 10%).
type Parameters struct {
	EffectiveFrom string `mapstructure:"effective_from" json:"effective_from" yaml:"effective_from"`

	MinimumWage int64   `mapstructure:"minimum_wage" json:"minimum_wage" yaml:"minimum_wage"`
	UF          float64 `mapstructure:"uf" json:"uf" yaml:"uf"`
	UTM         float64 `mapstructure:"utm" json:"utm" yaml:"utm"`

	GratificationRate        float64 `mapstructure:"gratification_rate" json:"gratification_rate" yaml:"gratification_rate"`
	GratificationCapMultiple float64 `mapstructure:"gratification_cap_multiple" json:"gratification_cap_multiple" yaml:"gratification_cap_multiple"`

	TaxableCapUF      float64 `mapstructure:"taxable_cap_uf" json:"taxable_cap_uf" yaml:"taxable_cap_uf"`
	UnemploymentCapUF float64 `mapstructure:"unemployment_cap_uf" json:"unemployment_cap_uf" yaml:"unemployment_cap_uf"`

	PensionRate        float64            `mapstructure:"pension_rate" json:"pension_rate" yaml:"pension_rate"`
	DefaultPensionFund string             `mapstructure:"default_pension_fund" json:"default_pension_fund" yaml:"default_pension_fund"`
	PensionCommissions map[string]float64 `mapstructure:"pension_commissions" json:"pension_commissions" yaml:"pension_commissions"`

	HealthRate float64 `mapstructure:"health_rate" json:"health_rate" yaml:"health_rate"`

	Unemployment map[string]UnemploymentRates `mapstructure:"unemployment" json:"unemployment" yaml:"unemployment"`
	Employer     EmployerRates                `mapstructure:"employer" json:"employer" yaml:"employer"`

	// SISWorkerDeduction moves the SIS premium from employer cost into the worker's deductions.
	SISWorkerDeduction bool `mapstructure:"sis_worker_deduction" json:"sis_worker_deduction" yaml:"sis_worker_deduction"`

	// FamilyAllowance is the monthly amount per dependent keyed by bracket (a, b, c, d).
	FamilyAllowance map[string]int64 `mapstructure:"family_allowance" json:"family_allowance" yaml:"family_allowance"`

	OvertimeFactors []OvertimeFactor `mapstructure:"overtime_factors" json:"overtime_factors" yaml:"overtime_factors"`
	TaxBrackets     []TaxBracket     `mapstructure:"tax_brackets" json:"tax_brackets" yaml:"tax_brackets"`
}

// Effective parses EffectiveFrom.
func (p Parameters) Effective() (time.Time, error) {
	return time.Parse(effectiveDateLayout, p.EffectiveFrom)
}

// Validate checks that the parameter set can drive a calculation.
func (p Parameters) Validate() error {
	var problems []string
	if _, err := p.Effective(); err != nil {
		problems = append(problems, "effective_from must be YYYY-MM-DD")
	}
	if p.MinimumWage <= 0 {
		problems = append(problems, "minimum_wage must be positive")
	}
	if p.UF <= 0 || p.UTM <= 0 {
		problems = append(problems, "uf and utm must be positive")
	}
	if p.TaxableCapUF <= 0 || p.UnemploymentCapUF <= 0 {
		problems = append(problems, "taxable caps must be positive")
	}
	if p.PensionRate <= 0 || p.HealthRate <= 0 {
		problems = append(problems, "pension_rate and health_rate must be positive")
	}
	if _, ok := p.PensionCommissions[strings.ToLower(p.DefaultPensionFund)]; !ok {
		problems = append(problems, "default_pension_fund must be listed in pension_commissions")
	}
	for _, ct := range []string{ContractIndefinite, ContractFixedTerm, ContractByTask} {
		if _, ok := p.Unemployment[ct]; !ok {
			problems = append(problems, "unemployment rates missing for "+ct)
		}
	}
	if len(p.OvertimeFactors) == 0 {
		problems = append(problems, "overtime_factors cannot be empty")
	}
	if len(p.TaxBrackets) == 0 {
		problems = append(problems, "tax_brackets cannot be empty")
	}
	if len(problems) > 0 {
		return fmt.Errorf("parameters %s: %s", p.EffectiveFrom, strings.Join(problems, "; "))
	}
	return nil
}

// Schedule is every known parameter version.
type Schedule []Parameters

// ErrNoParameters is returned when no version is in force for a period.
var ErrNoParameters = errors.New("no regulatory parameters in force for period")

// Validate checks every version and rejects duplicated effective dates.
func (s Schedule) Validate() error {
	if len(s) == 0 {
		return errors.New("regulatory schedule cannot be empty")
	}
	seen := make(map[string]bool, len(s))
	for _, p := range s {
		if err := p.Validate(); err != nil {
			return err
		}
		if seen[p.EffectiveFrom] {
			return fmt.Errorf("duplicated effective_from %s", p.EffectiveFrom)
		}
		seen[p.EffectiveFrom] = true
	}
	return nil
}

// For returns the latest version whose effective date is on or before the first day of the period.
func (s Schedule) For(year int, month time.Month) (Parameters, error) {
	periodStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)

	versions := make(Schedule, len(s))
	copy(versions, s)
	sort.Slice(versions, func(i, j int) bool {
		return versions[i].EffectiveFrom > versions[j].EffectiveFrom
	})

	for _, p := range versions {
		from, err := p.Effective()
		if err != nil {
			continue
		}
		if !from.After(periodStart) {
			return p, nil
		}
	}
	return Parameters{}, fmt.Errorf("%w: %04d-%02d", ErrNoParameters, year, int(month))
}

func (p Parameters) pensionCommission(fund string) (float64, bool) {
	rate, ok := p.PensionCommissions[strings.ToLower(fund)]
	return rate, ok
}

func (p Parameters) unemploymentRates(contractType string) (UnemploymentRates, bool) {
	rates, ok := p.Unemployment[contractType]
	return rates, ok
}
