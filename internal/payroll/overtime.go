package payroll

import (
	"math"

	"github.com/shopspring/decimal"
)

// FallbackOvertimeFactor is the general formula for schedules missing from the table:
// one day's value (1/30) over the weekly hours, times 28/4 weeks, with the 50% surcharge.
func FallbackOvertimeFactor(weeklyHours int) float64 {
	if weeklyHours <= 0 {
		weeklyHours = DefaultWeeklyHours
	}
	f := decimal.NewFromInt(28).
		Div(decimal.NewFromInt(int64(weeklyHours * 4 * MonthDays))).
		Mul(decimal.NewFromFloat(1.5))
	return f.InexactFloat64()
}

// LookupOvertimeFactor looks up the factor for the weekly schedule in the table.
func LookupOvertimeFactor(table []OvertimeFactor, weeklyHours int) float64 {
	if weeklyHours <= 0 {
		weeklyHours = DefaultWeeklyHours
	}
	for _, row := range table {
		if row.WeeklyHours == weeklyHours {
			return row.Factor
		}
	}
	return FallbackOvertimeFactor(weeklyHours)
}

// OvertimeAmount values overtime hours against the monthly base salary.
func OvertimeAmount(table []OvertimeFactor, hours float64, baseSalary int64, weeklyHours int) int64 {
	if hours <= 0 {
		return 0
	}
	factor := LookupOvertimeFactor(table, weeklyHours)
	return pesos(decimal.NewFromInt(baseSalary).
		Mul(decimal.NewFromFloat(factor)).
		Mul(decimal.NewFromFloat(hours)))
}

// validOvertimeHours accepts non-negative half-hour increments.
func validOvertimeHours(hours float64) bool {
	if hours < 0 || math.IsNaN(hours) || math.IsInf(hours, 0) {
		return false
	}
	doubled := hours * 2
	return doubled == math.Trunc(doubled)
}
