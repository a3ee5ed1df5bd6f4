package payroll

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func goldenInput() Input {
	return Input{
		ContractType: ContractFixedTerm,
		BaseSalary:   529000,
		WeeklyHours:  44,
		Config: Config{
			PensionFund:            "habitat",
			HealthProvider:         "fonasa",
			StatutoryGratification: true,
		},
		Period: PeriodInput{Year: 2025, Month: time.June},
	}
}

func assertIdentities(t *testing.T, b Breakdown) {
	t.Helper()
	assert.Equal(t, b.TotalTaxableIncome+b.TotalNonTaxableIncome, b.TotalGrossIncome)
	assert.Equal(t, b.PensionAmount+b.PensionCommissionAmount+b.HealthAmount+b.UnemploymentAmount+
		b.DisabilityInsuranceAmount+b.IncomeTaxAmount+b.Loans+b.Advances+b.VoluntarySavings+b.OtherDeductions,
		b.TotalDeductions)
	assert.Equal(t, b.TotalGrossIncome-b.TotalDeductions, b.NetSalary)
}

func TestCalculate_Golden(t *testing.T) {
	res, err := Calculate(goldenInput(), testParams())
	require.NoError(t, err)

	b := res.Breakdown
	assert.Equal(t, 30, b.DaysWorked)
	assert.Equal(t, int64(529000), b.BaseSalary)
	assert.Equal(t, int64(132250), b.StatutoryGratification)
	assert.Equal(t, int64(661250), b.TotalTaxableIncome)
	assert.Equal(t, int64(0), b.TotalNonTaxableIncome)
	assert.Equal(t, int64(661250), b.TotalGrossIncome)
	assert.Equal(t, int64(661250), b.ContributionBase)

	assert.Equal(t, 10.0, b.PensionPercentage)
	assert.Equal(t, int64(66125), b.PensionAmount)
	assert.Equal(t, 1.27, b.PensionCommissionPercentage)
	assert.Equal(t, int64(8398), b.PensionCommissionAmount)
	assert.Equal(t, int64(74523), b.PensionTotal())
	assert.Equal(t, 7.0, b.HealthPercentage)
	assert.Equal(t, int64(46288), b.HealthAmount)
	assert.Equal(t, int64(0), b.UnemploymentAmount)
	assert.Equal(t, int64(0), b.DisabilityInsuranceAmount)
	assert.Equal(t, int64(0), b.IncomeTaxAmount)

	assert.Equal(t, int64(120811), b.TotalDeductions)
	assert.Equal(t, int64(540439), b.NetSalary)
	assertIdentities(t, b)

	assert.Equal(t, "habitat", res.PensionFund)
	assert.Equal(t, HealthPublic, res.HealthProvider)
	assert.Nil(t, res.PartialPeriod)
	assert.Empty(t, res.Notices)
}

func TestCalculate_IsIdempotent(t *testing.T) {
	first, err := Calculate(goldenInput(), testParams())
	require.NoError(t, err)
	second, err := Calculate(goldenInput(), testParams())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCalculate_IndefiniteContractPaysUnemployment(t *testing.T) {
	in := goldenInput()
	in.ContractType = ContractIndefinite

	res, err := Calculate(in, testParams())
	require.NoError(t, err)

	b := res.Breakdown
	assert.Equal(t, 0.6, b.UnemploymentPercentage)
	assert.Equal(t, int64(3968), b.UnemploymentAmount)
	assert.Equal(t, int64(124779), b.TotalDeductions)
	assert.Equal(t, int64(536471), b.NetSalary)
	assertIdentities(t, b)
}

func TestCalculate_FirstMonthIsProrated(t *testing.T) {
	start := time.Date(2025, time.June, 16, 0, 0, 0, 0, time.UTC)
	in := goldenInput()
	in.ContractStart = &start
	in.Config.StatutoryGratification = false

	res, err := Calculate(in, testParams())
	require.NoError(t, err)

	assert.Equal(t, 15, res.Breakdown.DaysWorked)
	assert.Equal(t, int64(264500), res.Breakdown.BaseSalary)
	require.NotNil(t, res.PartialPeriod)
	assert.Equal(t, PartialPeriod{StartDay: 16, DaysInMonth: 30}, *res.PartialPeriod)
	assertIdentities(t, res.Breakdown)
}

func TestCalculate_DaysWorkedOverride(t *testing.T) {
	days := 10
	in := goldenInput()
	in.Config.StatutoryGratification = false
	in.Period.DaysWorked = &days

	res, err := Calculate(in, testParams())
	require.NoError(t, err)
	assert.Equal(t, 10, res.Breakdown.DaysWorked)
	assert.Equal(t, int64(176333), res.Breakdown.BaseSalary)
}

func TestCalculate_OvertimeAndSemanaCorrida(t *testing.T) {
	in := goldenInput()
	in.Config.StatutoryGratification = false
	in.Period.OvertimeHours = 10

	res, err := Calculate(in, testParams())
	require.NoError(t, err)

	b := res.Breakdown
	assert.Equal(t, 10.0, b.OvertimeHours)
	assert.Equal(t, int64(42079), b.OvertimeAmount)
	assert.Equal(t, int64(7013), b.SemanaCorrida)
	assert.Equal(t, int64(529000+42079+7013), b.TotalTaxableIncome)
	assertIdentities(t, b)
}

func TestCalculate_StatutoryGratificationIsCapped(t *testing.T) {
	assert.Equal(t, int64(132250), StatutoryGratification(testParams(), 529000))
	assert.Equal(t, int64(209396), StatutoryGratification(testParams(), 1000000))
}

func TestCalculate_ContributionBaseIsCapped(t *testing.T) {
	in := goldenInput()
	in.ContractType = ContractIndefinite
	in.BaseSalary = 5000000
	in.Config.StatutoryGratification = false

	res, err := Calculate(in, testParams())
	require.NoError(t, err)

	b := res.Breakdown
	assert.Equal(t, int64(3430821), b.ContributionBase)
	assert.Equal(t, int64(343082), b.PensionAmount)
	assert.Equal(t, int64(30000), b.UnemploymentAmount)
	assert.Greater(t, b.IncomeTaxAmount, int64(0))
	assertIdentities(t, b)
}

func TestCalculate_IsaprePlan(t *testing.T) {
	tests := []struct {
		name   string
		planUF float64
		want   int64
	}{
		{"plan above legal seven percent", 3, 117226},
		{"plan below legal seven percent", 0.5, 46288},
		{"no plan", 0, 46288},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := goldenInput()
			in.Config.HealthProvider = "Colmena"
			in.Config.HealthPlanUF = tt.planUF

			res, err := Calculate(in, testParams())
			require.NoError(t, err)
			assert.Equal(t, "colmena", res.HealthProvider)
			assert.Equal(t, tt.want, res.Breakdown.HealthAmount)
			assertIdentities(t, res.Breakdown)
		})
	}
}

func TestCalculate_FamilyAllowance(t *testing.T) {
	in := goldenInput()
	in.Config.Dependents = 2
	in.Config.FamilyBracket = "A"
	in.Config.FoodAllowance = 50000

	res, err := Calculate(in, testParams())
	require.NoError(t, err)

	b := res.Breakdown
	assert.Equal(t, int64(44014), b.FamilyAllowance)
	assert.Equal(t, int64(94014), b.TotalNonTaxableIncome)
	assert.Equal(t, int64(661250+94014), b.TotalGrossIncome)
	assert.Equal(t, int64(120811), b.TotalDeductions)
	assert.Empty(t, res.Notices)
	assertIdentities(t, b)
}

func TestCalculate_FallbackNotices(t *testing.T) {
	t.Run("missing pension fund", func(t *testing.T) {
		in := goldenInput()
		in.Config.PensionFund = ""

		res, err := Calculate(in, testParams())
		require.NoError(t, err)
		assert.Equal(t, "uno", res.PensionFund)
		assert.Equal(t, 0.46, res.Breakdown.PensionCommissionPercentage)
		assert.Equal(t, int64(3042), res.Breakdown.PensionCommissionAmount)
		require.Len(t, res.Notices, 1)
		assert.Equal(t, NoticeConfigurationFallback, res.Notices[0].Kind)
		assert.Equal(t, "pension_fund", res.Notices[0].Field)
		assert.Equal(t, "uno", res.Notices[0].Default)
	})

	t.Run("unknown pension fund", func(t *testing.T) {
		in := goldenInput()
		in.Config.PensionFund = "santa maria"

		res, err := Calculate(in, testParams())
		require.NoError(t, err)
		assert.Equal(t, "uno", res.PensionFund)
		require.Len(t, res.Notices, 1)
		assert.Contains(t, res.Notices[0].Message, "santa maria")
	})

	t.Run("missing health provider", func(t *testing.T) {
		in := goldenInput()
		in.Config.HealthProvider = "  "

		res, err := Calculate(in, testParams())
		require.NoError(t, err)
		assert.Equal(t, HealthPublic, res.HealthProvider)
		assert.Equal(t, int64(46288), res.Breakdown.HealthAmount)
		require.Len(t, res.Notices, 1)
		assert.Equal(t, "health_provider", res.Notices[0].Field)
	})

	t.Run("dependents without bracket", func(t *testing.T) {
		in := goldenInput()
		in.Config.Dependents = 1

		res, err := Calculate(in, testParams())
		require.NoError(t, err)
		assert.Equal(t, int64(0), res.Breakdown.FamilyAllowance)
		require.Len(t, res.Notices, 1)
		assert.Equal(t, "family_bracket", res.Notices[0].Field)
	})
}

func TestCalculate_SISChargedToWorker(t *testing.T) {
	p := testParams()
	p.SISWorkerDeduction = true

	res, err := Calculate(goldenInput(), p)
	require.NoError(t, err)

	b := res.Breakdown
	assert.Equal(t, int64(9853), b.DisabilityInsuranceAmount)
	assert.Equal(t, int64(130664), b.TotalDeductions)
	assert.Equal(t, int64(530586), b.NetSalary)
	assertIdentities(t, b)

	assert.Equal(t, int64(0), Employer(p, ContractFixedTerm, b.TotalTaxableIncome, 0).SIS)
}

func TestCalculate_InvalidInput(t *testing.T) {
	in := goldenInput()
	in.ContractType = "honorarios"
	in.BaseSalary = 0
	in.Period.Month = 13
	in.Period.OvertimeHours = 1.25
	in.Period.Bonuses = -1

	_, err := Calculate(in, testParams())
	require.Error(t, err)

	var inputErr *InputError
	require.True(t, errors.As(err, &inputErr))
	assert.ElementsMatch(t, []string{"month", "base_salary", "contract_type", "overtime_hours", "bonuses"}, inputErr.Fields)
}

func TestEmployer(t *testing.T) {
	e := Employer(testParams(), ContractFixedTerm, 661250, 0)
	assert.Equal(t, int64(19838), e.Unemployment)
	assert.Equal(t, int64(6150), e.WorkAccident)
	assert.Equal(t, int64(9853), e.SIS)
	assert.Equal(t, int64(35841), e.Total())

	withRisk := Employer(testParams(), ContractFixedTerm, 661250, 0.0095)
	assert.Equal(t, int64(12432), withRisk.WorkAccident)

	indefinite := Employer(testParams(), ContractIndefinite, 661250, 0)
	assert.Equal(t, int64(15870), indefinite.Unemployment)
}

func TestIncomeTax(t *testing.T) {
	brackets := testParams().TaxBrackets
	utm := testParams().UTM

	tests := []struct {
		name string
		base int64
		want int64
	}{
		{"zero base", 0, 0},
		{"exempt bracket", 540439, 0},
		{"exempt upper bound", 922131, 0},
		{"second bracket", 1500000, 23115},
		{"third bracket", 3000000, 121148},
		{"open ended bracket", 27322400, 8277321},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IncomeTax(brackets, utm, tt.base))
		})
	}
}

func TestReconcile(t *testing.T) {
	res, err := Calculate(goldenInput(), testParams())
	require.NoError(t, err)

	t.Run("within tolerance", func(t *testing.T) {
		b := res.Breakdown
		b.NetSalary++
		assert.Empty(t, Reconcile(&b))
		assert.Equal(t, int64(540439), b.NetSalary)
	})

	t.Run("drifted total", func(t *testing.T) {
		b := res.Breakdown
		b.NetSalary = 600000
		notices := Reconcile(&b)
		require.Len(t, notices, 1)
		assert.Equal(t, NoticeReconciliation, notices[0].Kind)
		assert.Equal(t, "net_salary", notices[0].Field)
		assert.Equal(t, int64(600000), notices[0].Stored)
		assert.Equal(t, int64(540439), notices[0].Computed)
		assert.Equal(t, int64(540439), b.NetSalary)
	})
}

func TestCanonical_DerivesSemanaCorrida(t *testing.T) {
	res, err := Calculate(goldenInput(), testParams())
	require.NoError(t, err)

	stored := res.Breakdown
	stored.Commissions = 60000

	b, notices := Canonical(stored)
	assert.Equal(t, int64(10000), b.SemanaCorrida)
	assert.Equal(t, int64(661250+60000+10000), b.TotalTaxableIncome)
	assertIdentities(t, b)

	fields := make([]string, 0, len(notices))
	for _, n := range notices {
		fields = append(fields, n.Field)
	}
	assert.ElementsMatch(t, []string{"total_taxable_income", "total_gross_income", "net_salary"}, fields)

	assert.Equal(t, int64(0), stored.SemanaCorrida)
}
