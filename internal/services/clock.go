package services

import "time"

// Clock abstracts the current time so period checks can be tested
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns the wall clock
func SystemClock() Clock { return systemClock{} }

// FixedClock always returns the same instant
type FixedClock time.Time

func (c FixedClock) Now() time.Time { return time.Time(c) }

// checkPeriod rejects invalid months and periods after the current one
func checkPeriod(clock Clock, year, month int) error {
	var fields []string
	if year < 2000 || year > 9999 {
		fields = append(fields, "year")
	}
	if month < 1 || month > 12 {
		fields = append(fields, "month")
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}

	now := clock.Now()
	if year > now.Year() || (year == now.Year() && month > int(now.Month())) {
		return &PeriodError{Year: year, Month: month}
	}
	return nil
}
