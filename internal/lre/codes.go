package lre

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Documented fallback codes for identifiers that are unset or unknown.
const (
	FallbackPensionCode = "100" // not affiliated to an AFP
	FallbackHealthCode  = "102" // FONASA
	FallbackCCAFCode    = "0"   // no CCAF
	FallbackInsurerCode = "0"   // ISL
	FallbackBracketCode = "S"   // no information
	codeDateLayout      = "2006-01-02"
)

// Resolver maps internal configuration ids to the codes of the LRE schema.
// Every method is total: unknown input yields the documented fallback.
type Resolver interface {
	PensionFund(id string) string
	HealthProvider(id string) string
	FamilyFund(id string) string
	AccidentInsurer(id string) string
	FamilyBracket(id string) string
}

// CodeTable is one version of the official code tables.
type CodeTable struct {
	EffectiveFrom    string            `mapstructure:"effective_from" json:"effective_from" yaml:"effective_from"`
	PensionFunds     map[string]string `mapstructure:"pension_funds" json:"pension_funds" yaml:"pension_funds"`
	HealthProviders  map[string]string `mapstructure:"health_providers" json:"health_providers" yaml:"health_providers"`
	FamilyFunds      map[string]string `mapstructure:"family_funds" json:"family_funds" yaml:"family_funds"`
	AccidentInsurers map[string]string `mapstructure:"accident_insurers" json:"accident_insurers" yaml:"accident_insurers"`
	FamilyBrackets   map[string]string `mapstructure:"family_brackets" json:"family_brackets" yaml:"family_brackets"`
}

// TableResolver resolves codes from a single CodeTable.
type TableResolver struct {
	table CodeTable
}

// NewTableResolver creates a resolver over the given table.
func NewTableResolver(table CodeTable) *TableResolver {
	return &TableResolver{table: table}
}

func lookup(table map[string]string, id, fallback string) string {
	key := strings.ToLower(strings.TrimSpace(id))
	if key == "" {
		return fallback
	}
	if code, ok := table[key]; ok && code != "" {
		return code
	}
	return fallback
}

func (r *TableResolver) PensionFund(id string) string {
	return lookup(r.table.PensionFunds, id, FallbackPensionCode)
}

func (r *TableResolver) HealthProvider(id string) string {
	return lookup(r.table.HealthProviders, id, FallbackHealthCode)
}

func (r *TableResolver) FamilyFund(id string) string {
	return lookup(r.table.FamilyFunds, id, FallbackCCAFCode)
}

func (r *TableResolver) AccidentInsurer(id string) string {
	return lookup(r.table.AccidentInsurers, id, FallbackInsurerCode)
}

func (r *TableResolver) FamilyBracket(id string) string {
	return lookup(r.table.FamilyBrackets, id, FallbackBracketCode)
}

// CodeSchedule is every known version of the code tables.
type CodeSchedule []CodeTable

// ErrNoCodeTable is returned when no code table is in force for a period.
var ErrNoCodeTable = errors.New("no LRE code table in force for period")

// Validate rejects empty schedules and malformed dates.
func (s CodeSchedule) Validate() error {
	if len(s) == 0 {
		return errors.New("code schedule cannot be empty")
	}
	for _, t := range s {
		if _, err := time.Parse(codeDateLayout, t.EffectiveFrom); err != nil {
			return fmt.Errorf("code table effective_from %q: %w", t.EffectiveFrom, err)
		}
	}
	return nil
}

// For returns a resolver over the latest table in force on the first day of the period.
func (s CodeSchedule) For(year int, month time.Month) (*TableResolver, error) {
	periodStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)

	tables := make(CodeSchedule, len(s))
	copy(tables, s)
	sort.Slice(tables, func(i, j int) bool {
		return tables[i].EffectiveFrom > tables[j].EffectiveFrom
	})

	for _, t := range tables {
		from, err := time.Parse(codeDateLayout, t.EffectiveFrom)
		if err != nil {
			continue
		}
		if !from.After(periodStart) {
			return NewTableResolver(t), nil
		}
	}
	return nil, fmt.Errorf("%w: %04d-%02d", ErrNoCodeTable, year, int(month))
}
