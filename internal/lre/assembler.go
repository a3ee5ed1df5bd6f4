package lre

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/sjperalta/remuneraciones-api/internal/payroll"
)

// BOM is written at the start of every export file.
const BOM = "\xEF\xBB\xBF"

// Delimiter separates fields in the export file.
const Delimiter = ';'

const dateLayout = "02/01/2006"

// Company is the employer data an export needs.
type Company struct {
	RUT                    string
	RegionCode             string
	CommuneCode            string
	FamilyFund             string
	AccidentInsurer        string
	AdditionalAccidentRate float64
}

// Employee identifies the worker of an entry.
type Employee struct {
	RUT             string
	FirstNames      string
	PaternalSurname string
	MaternalSurname string
}

// Contract is the employment contract in force for the period.
type Contract struct {
	Type             string
	Start            time.Time
	End              *time.Time
	TerminationCause string
}

// Entry is one liquidation to be exported. FamilyFund and AccidentInsurer override the
// company's when set; Notices are the ones recorded when the liquidation was computed.
type Entry struct {
	Employee        Employee
	Contract        Contract
	PensionFund     string
	HealthProvider  string
	FamilyFund      string
	AccidentInsurer string
	Dependents      int
	FamilyBracket   string
	SickLeaveDays   int
	VacationDays    int
	Breakdown       payroll.Breakdown
	Notices         []payroll.Notice
}

// Record is the 147-column projection of one entry.
type Record struct {
	RUT      string
	Values   []string
	Notices  []payroll.Notice
	Employer payroll.EmployerContributions
}

// Assembler builds LRE records for one company and period.
type Assembler struct {
	resolver Resolver
	params   payroll.Parameters
	company  Company
}

// NewAssembler creates an assembler for the parameters and code tables in force.
func NewAssembler(resolver Resolver, params payroll.Parameters, company Company) *Assembler {
	return &Assembler{resolver: resolver, params: params, company: company}
}

// Build returns one record per entry sorted by surnames.
func (a *Assembler) Build(entries []Entry) []Record {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	SortBySurname(sorted)

	records := make([]Record, 0, len(sorted))
	for _, e := range sorted {
		records = append(records, a.record(e))
	}
	return records
}

func (a *Assembler) record(e Entry) Record {
	b, drift := payroll.Canonical(e.Breakdown)
	notices := append(append([]payroll.Notice(nil), e.Notices...), drift...)

	employer := payroll.Employer(a.params, e.Contract.Type, b.TotalTaxableIncome, a.company.AdditionalAccidentRate)

	legalHealth := legalHealthAmount(b)
	values := map[int]string{
		1101: FormatRUT(e.Employee.RUT),
		1102: e.Contract.Start.Format(dateLayout),
		1104: e.Contract.TerminationCause,
		1105: a.company.RegionCode,
		1106: a.company.CommuneCode,
		1170: "1",
		1107: "101",
		1141: a.resolver.PensionFund(e.PensionFund),
		1143: a.resolver.HealthProvider(e.HealthProvider),
		1151: "1",
		1110: a.resolver.FamilyFund(orDefault(e.FamilyFund, a.company.FamilyFund)),
		1152: a.resolver.AccidentInsurer(orDefault(e.AccidentInsurer, a.company.AccidentInsurer)),
		1111: strconv.Itoa(e.Dependents),
		1114: a.resolver.FamilyBracket(e.FamilyBracket),
		1115: strconv.Itoa(b.DaysWorked),
		1116: strconv.Itoa(e.SickLeaveDays),
		1117: strconv.Itoa(e.VacationDays),
		1155: flag(b.VoluntarySavings > 0),

		2101: money(b.BaseSalary),
		2102: money(b.OvertimeAmount),
		2103: money(b.Commissions),
		2104: money(b.SemanaCorrida),
		2106: money(b.Gratification + b.StatutoryGratification),
		2111: money(b.Bonuses),

		2301: money(b.FoodAllowance),
		2302: money(b.TransportAllowance),
		2311: money(b.FamilyAllowance),

		3141: money(b.PensionTotal()),
		3143: money(legalHealth),
		3144: money(b.HealthAmount - legalHealth),
		3151: money(b.UnemploymentAmount),
		3147: money(b.VoluntarySavings),
		3161: money(b.IncomeTaxAmount),
		3156: money(b.DisabilityInsuranceAmount),
		3159: money(b.Loans + b.Advances),
		3183: money(b.OtherDeductions),

		4151: money(employer.Unemployment),
		4152: money(employer.WorkAccident),
		4155: money(employer.SIS),

		5201: money(b.TotalGrossIncome),
		5210: money(b.TotalTaxableIncome),
		5230: money(b.TotalNonTaxableIncome),
		5301: money(b.TotalDeductions),
		5361: money(b.IncomeTaxAmount),
		5341: money(b.SocialSecurity() + b.VoluntarySavings),
		5302: money(b.Loans + b.Advances + b.OtherDeductions),
		5410: money(employer.Total()),
		5501: money(b.NetSalary),
	}
	if e.Contract.End != nil {
		values[1103] = e.Contract.End.Format(dateLayout)
	}

	out := make([]string, len(Layout))
	for i, f := range Layout {
		if v, ok := values[f.Code]; ok {
			out[i] = v
			continue
		}
		out[i] = f.Placeholder()
	}

	return Record{
		RUT:      values[1101],
		Values:   out,
		Notices:  notices,
		Employer: employer,
	}
}

// legalHealthAmount splits an Isapre premium into the mandatory 7% and the voluntary excess.
func legalHealthAmount(b payroll.Breakdown) int64 {
	legal := decimal.NewFromInt(b.ContributionBase).
		Mul(decimal.NewFromFloat(b.HealthPercentage)).
		Div(decimal.NewFromInt(100)).
		Round(0).IntPart()
	if legal > b.HealthAmount {
		return b.HealthAmount
	}
	return legal
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func money(v int64) string {
	return strconv.FormatInt(v, 10)
}

func flag(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

var rutCleaner = regexp.MustCompile(`[^0-9kK]`)

// FormatRUT normalises a RUT to the "12345678-9" form, without thousands separators.
func FormatRUT(rut string) string {
	clean := strings.ToUpper(rutCleaner.ReplaceAllString(rut, ""))
	if len(clean) < 2 {
		return clean
	}
	return clean[:len(clean)-1] + "-" + clean[len(clean)-1:]
}

// SortBySurname orders entries by paternal surname, maternal surname and first names
// using Spanish collation.
func SortBySurname(entries []Entry) {
	c := collate.New(language.Spanish, collate.IgnoreCase)
	key := func(e Entry) string {
		return strings.Join([]string{e.Employee.PaternalSurname, e.Employee.MaternalSurname, e.Employee.FirstNames}, " ")
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return c.CompareString(key(entries[i]), key(entries[j])) < 0
	})
}

// WriteCSV writes the header and one row per record, prefixed by a UTF-8 BOM.
func WriteCSV(w io.Writer, records []Record) error {
	if _, err := io.WriteString(w, BOM); err != nil {
		return fmt.Errorf("failed to write BOM: %w", err)
	}

	cw := csv.NewWriter(w)
	cw.Comma = Delimiter
	cw.UseCRLF = true

	if err := cw.Write(Headers()); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, r := range records {
		if len(r.Values) != FieldCount {
			return fmt.Errorf("record %s has %d fields, want %d", r.RUT, len(r.Values), FieldCount)
		}
		if err := cw.Write(r.Values); err != nil {
			return fmt.Errorf("failed to write record %s: %w", r.RUT, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
