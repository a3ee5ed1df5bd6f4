package payroll

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Config is the employee's standing payroll configuration.
type Config struct {
	PensionFund            string  `json:"pension_fund"`
	HealthProvider         string  `json:"health_provider"`
	HealthPlanUF           float64 `json:"health_plan_uf"`
	Dependents             int     `json:"dependents"`
	FamilyBracket          string  `json:"family_bracket"`
	StatutoryGratification bool    `json:"statutory_gratification"`
	FoodAllowance          int64   `json:"food_allowance"`
	TransportAllowance     int64   `json:"transport_allowance"`
}

// PeriodInput carries the values supplied for a single payroll run.
type PeriodInput struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`

	// DaysWorked overrides the value derived from the contract start date.
	DaysWorked    *int    `json:"days_worked,omitempty"`
	OvertimeHours float64 `json:"overtime_hours"`

	Bonuses       int64 `json:"bonuses"`
	Commissions   int64 `json:"commissions"`
	Gratification int64 `json:"gratification"`

	Loans            int64 `json:"loans"`
	Advances         int64 `json:"advances"`
	VoluntarySavings int64 `json:"voluntary_savings"`
	OtherDeductions  int64 `json:"other_deductions"`

	SickLeaveDays int `json:"sick_leave_days"`
	VacationDays  int `json:"vacation_days"`
}

// Input is everything the calculator needs for one employee and period.
type Input struct {
	ContractType  string
	BaseSalary    int64
	WeeklyHours   int
	ContractStart *time.Time
	Config        Config
	Period        PeriodInput
}

// Result is a computed liquidation.
type Result struct {
	Breakdown      Breakdown
	PensionFund    string
	HealthProvider string
	PartialPeriod  *PartialPeriod
	Notices        []Notice
}

// InputError lists the input fields that prevented a calculation.
type InputError struct {
	Fields []string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid payroll input: %s", strings.Join(e.Fields, ", "))
}

func validate(in Input, p Parameters) error {
	var fields []string
	if in.Period.Year < 1 {
		fields = append(fields, "year")
	}
	if in.Period.Month < time.January || in.Period.Month > time.December {
		fields = append(fields, "month")
	}
	if in.BaseSalary <= 0 {
		fields = append(fields, "base_salary")
	}
	if in.WeeklyHours < 0 {
		fields = append(fields, "weekly_hours")
	}
	if _, ok := p.unemploymentRates(in.ContractType); !ok {
		fields = append(fields, "contract_type")
	}
	if d := in.Period.DaysWorked; d != nil && (*d < 0 || *d > MonthDays) {
		fields = append(fields, "days_worked")
	}
	if !validOvertimeHours(in.Period.OvertimeHours) {
		fields = append(fields, "overtime_hours")
	}
	if in.Config.Dependents < 0 {
		fields = append(fields, "dependents")
	}
	if in.Config.HealthPlanUF < 0 {
		fields = append(fields, "health_plan_uf")
	}

	amounts := map[string]int64{
		"bonuses":             in.Period.Bonuses,
		"commissions":         in.Period.Commissions,
		"gratification":       in.Period.Gratification,
		"loans":               in.Period.Loans,
		"advances":            in.Period.Advances,
		"voluntary_savings":   in.Period.VoluntarySavings,
		"other_deductions":    in.Period.OtherDeductions,
		"food_allowance":      in.Config.FoodAllowance,
		"transport_allowance": in.Config.TransportAllowance,
	}
	for _, name := range sortedKeys(amounts) {
		if amounts[name] < 0 {
			fields = append(fields, name)
		}
	}

	if len(fields) > 0 {
		return &InputError{Fields: fields}
	}
	return nil
}

// Calculate produces a fully reconciled liquidation for one employee and period.
func Calculate(in Input, p Parameters) (Result, error) {
	if err := validate(in, p); err != nil {
		return Result{}, err
	}

	var res Result
	b := &res.Breakdown
	period := in.Period

	days, partial := workedDays(in.ContractStart, period.Year, period.Month)
	if period.DaysWorked != nil {
		days = *period.DaysWorked
	}
	res.PartialPeriod = partial
	b.DaysWorked = days
	b.OvertimeHours = period.OvertimeHours

	// Taxable income.
	b.BaseSalary = pesos(decimal.NewFromInt(in.BaseSalary).Mul(decimal.NewFromInt(int64(days))).Div(thirty))
	b.OvertimeAmount = OvertimeAmount(p.OvertimeFactors, period.OvertimeHours, in.BaseSalary, in.WeeklyHours)
	b.Bonuses = period.Bonuses
	b.Commissions = period.Commissions
	b.SemanaCorrida = SemanaCorrida(b.Commissions, b.OvertimeAmount)
	b.Gratification = period.Gratification
	if in.Config.StatutoryGratification {
		b.StatutoryGratification = StatutoryGratification(p, b.BaseSalary)
	}

	// Allowances.
	b.FoodAllowance = in.Config.FoodAllowance
	b.TransportAllowance = in.Config.TransportAllowance
	allowance, notice := familyAllowance(p, in.Config)
	b.FamilyAllowance = allowance
	if notice != nil {
		res.Notices = append(res.Notices, *notice)
	}

	b.Recompute()

	// Worker contributions.
	taxable := b.TotalTaxableIncome
	b.ContributionBase = minInt64(taxable, ufToPesos(p.TaxableCapUF, p.UF))

	fund := strings.ToLower(strings.TrimSpace(in.Config.PensionFund))
	commission, known := p.pensionCommission(fund)
	if !known {
		def := strings.ToLower(p.DefaultPensionFund)
		if fund == "" {
			res.Notices = append(res.Notices, fallbackNotice("pension_fund", def,
				"trabajador sin AFP configurada, se aplicó la AFP por defecto"))
		} else {
			res.Notices = append(res.Notices, fallbackNotice("pension_fund", def,
				fmt.Sprintf("AFP %q no reconocida, se aplicó la AFP por defecto", fund)))
		}
		fund = def
		commission, _ = p.pensionCommission(fund)
	}
	res.PensionFund = fund

	b.PensionPercentage = percent(p.PensionRate)
	b.PensionAmount = applyRate(b.ContributionBase, p.PensionRate)
	b.PensionCommissionPercentage = percent(commission)
	b.PensionCommissionAmount = applyRate(b.ContributionBase, commission)

	health := strings.ToLower(strings.TrimSpace(in.Config.HealthProvider))
	if health == "" {
		health = HealthPublic
		res.Notices = append(res.Notices, fallbackNotice("health_provider", HealthPublic,
			"trabajador sin institución de salud configurada, se aplicó FONASA"))
	}
	res.HealthProvider = health
	b.HealthPercentage = percent(p.HealthRate)
	b.HealthAmount = applyRate(b.ContributionBase, p.HealthRate)
	if health != HealthPublic && in.Config.HealthPlanUF > 0 {
		b.HealthAmount = maxInt64(b.HealthAmount, ufToPesos(in.Config.HealthPlanUF, p.UF))
	}

	rates, _ := p.unemploymentRates(in.ContractType)
	unemploymentBase := minInt64(taxable, ufToPesos(p.UnemploymentCapUF, p.UF))
	b.UnemploymentPercentage = percent(rates.Worker)
	b.UnemploymentAmount = applyRate(unemploymentBase, rates.Worker)

	if p.SISWorkerDeduction {
		b.DisabilityInsuranceAmount = applyRate(b.ContributionBase, p.Employer.SIS)
	}

	taxBase := taxable - b.PensionTotal() - b.HealthAmount - b.UnemploymentAmount
	b.IncomeTaxAmount = IncomeTax(p.TaxBrackets, p.UTM, taxBase)

	// Voluntary deductions are taken verbatim.
	b.Loans = period.Loans
	b.Advances = period.Advances
	b.VoluntarySavings = period.VoluntarySavings
	b.OtherDeductions = period.OtherDeductions

	b.Recompute()
	return res, nil
}

// StatutoryGratification is the monthly legal gratification: a share of the base salary
// capped at a multiple of the minimum wage spread over twelve months.
func StatutoryGratification(p Parameters, baseSalary int64) int64 {
	share := decimal.NewFromInt(baseSalary).Mul(decimal.NewFromFloat(p.GratificationRate))
	limit := decimal.NewFromInt(p.MinimumWage).
		Mul(decimal.NewFromFloat(p.GratificationCapMultiple)).
		Div(decimal.NewFromInt(12))
	return pesos(decimal.Min(share, limit))
}

// SemanaCorrida is the weekly rest day pay owed on variable remuneration.
func SemanaCorrida(commissions, overtime int64) int64 {
	variable := commissions + overtime
	if variable <= 0 {
		return 0
	}
	return pesos(decimal.NewFromInt(variable).Div(decimal.NewFromInt(6)))
}

func familyAllowance(p Parameters, cfg Config) (int64, *Notice) {
	if cfg.Dependents == 0 {
		return 0, nil
	}
	bracket := strings.ToLower(strings.TrimSpace(cfg.FamilyBracket))
	perDependent, ok := p.FamilyAllowance[bracket]
	if !ok {
		n := fallbackNotice("family_bracket", "", "cargas familiares sin tramo válido, no se pagó asignación familiar")
		return 0, &n
	}
	return perDependent * int64(cfg.Dependents), nil
}
