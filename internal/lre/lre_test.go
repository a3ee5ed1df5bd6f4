package lre_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sjperalta/remuneraciones-api/internal/config"
	"github.com/sjperalta/remuneraciones-api/internal/lre"
	"github.com/sjperalta/remuneraciones-api/internal/payroll"
)

func columnIndex(t *testing.T, code int) int {
	t.Helper()
	for i, f := range lre.Layout {
		if f.Code == code {
			return i
		}
	}
	t.Fatalf("code %d not in layout", code)
	return -1
}

func june2025(t *testing.T) (payroll.Parameters, lre.Resolver) {
	t.Helper()
	reg, err := config.DefaultRegulatory()
	require.NoError(t, err)
	holder := config.NewStaticRegulatoryHolder(reg)

	params, err := holder.ParametersFor(2025, time.June)
	require.NoError(t, err)
	resolver, err := holder.ResolverFor(2025, time.June)
	require.NoError(t, err)
	return params, resolver
}

func goldenEntry(t *testing.T, params payroll.Parameters) lre.Entry {
	t.Helper()
	start := time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)
	res, err := payroll.Calculate(payroll.Input{
		ContractType:  payroll.ContractFixedTerm,
		BaseSalary:    529000,
		WeeklyHours:   44,
		ContractStart: &start,
		Config: payroll.Config{
			PensionFund:            "habitat",
			HealthProvider:         "fonasa",
			StatutoryGratification: true,
		},
		Period: payroll.PeriodInput{Year: 2025, Month: time.June},
	}, params)
	require.NoError(t, err)

	return lre.Entry{
		Employee: lre.Employee{
			RUT:             "12.345.678-k",
			FirstNames:      "María José",
			PaternalSurname: "Soto",
			MaternalSurname: "Rojas",
		},
		Contract:       lre.Contract{Type: payroll.ContractFixedTerm, Start: start},
		PensionFund:    res.PensionFund,
		HealthProvider: res.HealthProvider,
		Breakdown:      res.Breakdown,
	}
}

func TestLayout(t *testing.T) {
	require.Len(t, lre.Layout, lre.FieldCount)

	seen := make(map[int]bool, len(lre.Layout))
	for _, f := range lre.Layout {
		assert.False(t, seen[f.Code], "duplicated code %d", f.Code)
		seen[f.Code] = true
	}

	headers := lre.Headers()
	require.Len(t, headers, lre.FieldCount)
	assert.Equal(t, "Rut trabajador(1101)", headers[0])
	assert.Equal(t, "Sueldo(2101)", headers[columnIndex(t, 2101)])
}

func TestTableResolver_Fallbacks(t *testing.T) {
	_, resolver := june2025(t)

	assert.Equal(t, "05", resolver.PensionFund("habitat"))
	assert.Equal(t, "05", resolver.PensionFund(" Habitat "))
	assert.Equal(t, lre.FallbackPensionCode, resolver.PensionFund(""))
	assert.Equal(t, lre.FallbackPensionCode, resolver.PensionFund("santa maria"))

	assert.Equal(t, "102", resolver.HealthProvider("fonasa"))
	assert.Equal(t, "4", resolver.HealthProvider("colmena"))
	assert.Equal(t, lre.FallbackHealthCode, resolver.HealthProvider("desconocida"))

	assert.Equal(t, "2", resolver.FamilyFund("la_araucana"))
	assert.Equal(t, lre.FallbackCCAFCode, resolver.FamilyFund(""))
	assert.Equal(t, "1", resolver.AccidentInsurer("achs"))
	assert.Equal(t, lre.FallbackInsurerCode, resolver.AccidentInsurer("otra"))
	assert.Equal(t, "A", resolver.FamilyBracket("a"))
	assert.Equal(t, lre.FallbackBracketCode, resolver.FamilyBracket(""))
}

func TestCodeSchedule_For(t *testing.T) {
	schedule := lre.CodeSchedule{
		{EffectiveFrom: "2021-01-01", PensionFunds: map[string]string{"uno": "35"}},
		{EffectiveFrom: "2026-01-01", PensionFunds: map[string]string{"uno": "36"}},
	}
	require.NoError(t, schedule.Validate())

	r, err := schedule.For(2025, time.December)
	require.NoError(t, err)
	assert.Equal(t, "35", r.PensionFund("uno"))

	r, err = schedule.For(2026, time.February)
	require.NoError(t, err)
	assert.Equal(t, "36", r.PensionFund("uno"))

	_, err = schedule.For(2020, time.June)
	assert.ErrorIs(t, err, lre.ErrNoCodeTable)

	assert.Error(t, lre.CodeSchedule{{EffectiveFrom: "01/01/2021"}}.Validate())
}

func TestAssembler_GoldenRecord(t *testing.T) {
	params, resolver := june2025(t)
	a := lre.NewAssembler(resolver, params, lre.Company{
		RUT:             "76.123.456-7",
		RegionCode:      "13",
		CommuneCode:     "13101",
		AccidentInsurer: "achs",
	})

	records := a.Build([]lre.Entry{goldenEntry(t, params)})
	require.Len(t, records, 1)

	r := records[0]
	require.Len(t, r.Values, lre.FieldCount)
	assert.Empty(t, r.Notices)

	value := func(code int) string { return r.Values[columnIndex(t, code)] }
	assert.Equal(t, "12345678-K", value(1101))
	assert.Equal(t, "04/03/2024", value(1102))
	assert.Equal(t, "", value(1103))
	assert.Equal(t, "13", value(1105))
	assert.Equal(t, "05", value(1141))
	assert.Equal(t, "102", value(1143))
	assert.Equal(t, "1", value(1152))
	assert.Equal(t, "30", value(1115))

	assert.Equal(t, "529000", value(2101))
	assert.Equal(t, "132250", value(2106))
	assert.Equal(t, "0", value(2104))

	assert.Equal(t, "74523", value(3141))
	assert.Equal(t, "46288", value(3143))
	assert.Equal(t, "0", value(3144))
	assert.Equal(t, "0", value(3151))

	assert.Equal(t, "661250", value(5201))
	assert.Equal(t, "661250", value(5210))
	assert.Equal(t, "120811", value(5301))
	assert.Equal(t, "540439", value(5501))

	assert.Equal(t, int64(35841), r.Employer.Total())
	assert.Equal(t, "35841", value(5410))
}

func TestAssembler_RecomputesStoredTotals(t *testing.T) {
	params, resolver := june2025(t)
	entry := goldenEntry(t, params)
	entry.Breakdown.Commissions = 60000

	records := lre.NewAssembler(resolver, params, lre.Company{}).Build([]lre.Entry{entry})
	require.Len(t, records, 1)

	r := records[0]
	value := func(code int) string { return r.Values[columnIndex(t, code)] }
	assert.Equal(t, "10000", value(2104))
	assert.Equal(t, "731250", value(5210))
	assert.Equal(t, "610439", value(5501))
	assert.NotEmpty(t, r.Notices)
}

func TestAssembler_EntryOverridesAndNotices(t *testing.T) {
	params, resolver := june2025(t)
	entry := goldenEntry(t, params)
	entry.FamilyFund = "la_araucana"
	entry.Notices = []payroll.Notice{{
		Kind:    payroll.NoticeConfigurationFallback,
		Field:   "health_provider",
		Default: "fonasa",
	}}

	records := lre.NewAssembler(resolver, params, lre.Company{
		FamilyFund:      "los_andes",
		AccidentInsurer: "ist",
	}).Build([]lre.Entry{entry})
	require.Len(t, records, 1)

	r := records[0]
	value := func(code int) string { return r.Values[columnIndex(t, code)] }
	assert.Equal(t, "2", value(1110))
	assert.Equal(t, "3", value(1152))
	require.Len(t, r.Notices, 1)
	assert.Equal(t, "health_provider", r.Notices[0].Field)
}

func TestSortBySurname(t *testing.T) {
	entries := []lre.Entry{
		{Employee: lre.Employee{PaternalSurname: "Oyarzún", FirstNames: "Ana"}},
		{Employee: lre.Employee{PaternalSurname: "Ñancupil", FirstNames: "Luis"}},
		{Employee: lre.Employee{PaternalSurname: "Nuñez", FirstNames: "Pedro"}},
		{Employee: lre.Employee{PaternalSurname: "álvarez", FirstNames: "Rosa"}},
		{Employee: lre.Employee{PaternalSurname: "Bravo", FirstNames: "Juan"}},
	}
	lre.SortBySurname(entries)

	var got []string
	for _, e := range entries {
		got = append(got, e.Employee.PaternalSurname)
	}
	assert.Equal(t, []string{"álvarez", "Bravo", "Nuñez", "Ñancupil", "Oyarzún"}, got)
}

func TestFormatRUT(t *testing.T) {
	assert.Equal(t, "12345678-K", lre.FormatRUT("12.345.678-k"))
	assert.Equal(t, "7654321-0", lre.FormatRUT("7654321-0"))
	assert.Equal(t, "7654321-0", lre.FormatRUT(" 7.654.321 0 "))
	assert.Equal(t, "", lre.FormatRUT(""))
}

func TestWriteCSV(t *testing.T) {
	params, resolver := june2025(t)
	second := goldenEntry(t, params)
	second.Employee.RUT = "9.876.543-2"
	second.Employee.PaternalSurname = "Álvarez"
	second.PensionFund = ""

	records := lre.NewAssembler(resolver, params, lre.Company{}).Build([]lre.Entry{goldenEntry(t, params), second})

	var buf bytes.Buffer
	require.NoError(t, lre.WriteCSV(&buf, records))

	out := buf.String()
	require.True(t, strings.HasPrefix(out, lre.BOM))

	lines := strings.Split(strings.TrimSuffix(strings.TrimPrefix(out, lre.BOM), "\r\n"), "\r\n")
	require.Len(t, lines, 3)
	for _, line := range lines {
		assert.Len(t, strings.Split(line, ";"), lre.FieldCount)
	}
	assert.True(t, strings.HasPrefix(lines[1], "9876543-2;"))
	assert.True(t, strings.HasPrefix(lines[2], "12345678-K;"))

	afp := strings.Split(lines[1], ";")[columnIndex(t, 1141)]
	assert.Equal(t, lre.FallbackPensionCode, afp)
}

func TestWriteCSV_RejectsShortRecords(t *testing.T) {
	var buf bytes.Buffer
	err := lre.WriteCSV(&buf, []lre.Record{{RUT: "1-9", Values: []string{"1-9"}}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "147")
}
