package payroll

import "time"

// MonthDays is the fixed calendar convention for a full month.
const MonthDays = 30

// PartialPeriod describes a first month that does not start on day one.
type PartialPeriod struct {
	StartDay    int `json:"start_day"`
	DaysInMonth int `json:"days_in_month"`
}

// WorkedDays returns the days worked in the period for a contract starting at start.
// The contract's first month counts calendar days from the start day; any other month is 30.
func WorkedDays(start *time.Time, year int, month time.Month) int {
	days, _ := workedDays(start, year, month)
	return days
}

func workedDays(start *time.Time, year int, month time.Month) (int, *PartialPeriod) {
	if start == nil || start.IsZero() {
		return MonthDays, nil
	}
	if start.Year() != year || start.Month() != month {
		return MonthDays, nil
	}

	inMonth := daysIn(year, month)
	days := inMonth - start.Day() + 1
	if days < 1 {
		days = 1
	}
	if days > MonthDays {
		days = MonthDays
	}
	return days, &PartialPeriod{StartDay: start.Day(), DaysInMonth: inMonth}
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
