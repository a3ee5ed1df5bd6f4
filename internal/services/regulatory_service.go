package services

import (
	"fmt"
	"time"

	"github.com/sjperalta/remuneraciones-api/internal/payroll"
)

// RegulatoryService exposes the parameters in force for a period
type RegulatoryService struct {
	source RegulatorySource
	clock  Clock
}

func NewRegulatoryService(source RegulatorySource, clock Clock) *RegulatoryService {
	if clock == nil {
		clock = SystemClock()
	}
	return &RegulatoryService{source: source, clock: clock}
}

// ParametersFor returns the parameters of the period, or of the current month when year is zero
func (s *RegulatoryService) ParametersFor(year, month int) (payroll.Parameters, error) {
	if year == 0 && month == 0 {
		now := s.clock.Now()
		year, month = now.Year(), int(now.Month())
	}
	if year < 2000 || month < 1 || month > 12 {
		return payroll.Parameters{}, &ValidationError{Fields: []string{"year", "month"}}
	}

	params, err := s.source.ParametersFor(year, time.Month(month))
	if err != nil {
		return payroll.Parameters{}, fmt.Errorf("failed to load regulatory parameters: %w", err)
	}
	return params, nil
}
