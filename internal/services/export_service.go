package services

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/sjperalta/remuneraciones-api/internal/lre"
	"github.com/sjperalta/remuneraciones-api/internal/metrics"
	"github.com/sjperalta/remuneraciones-api/internal/models"
	"github.com/sjperalta/remuneraciones-api/internal/payroll"
	"github.com/sjperalta/remuneraciones-api/internal/repository"
	"github.com/sjperalta/remuneraciones-api/pkg/logger"
)

// Archiver keeps a copy of every generated export
type Archiver interface {
	Archive(kind string, year, month int, filename string, data []byte) (string, error)
}

// Export formats
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// LREExport is the assembled electronic payroll book of one company period
type LREExport struct {
	Company models.Company
	Year    int
	Month   int
	Records []lre.Record
	Notices []payroll.Notice
}

// ExportFile is a rendered export ready to be served
type ExportFile struct {
	Data     []byte
	Filename string
	Notices  []payroll.Notice
	Archive  string
}

// ExportService renders the LRE file from stored liquidations
type ExportService struct {
	liquidationRepo repository.LiquidationRepository
	companyRepo     repository.CompanyRepository
	regulatory      RegulatorySource
	archiver        Archiver
	audit           *AuditService
	metrics         *metrics.PayrollMetrics
}

// NewExportService creates a new export service. archiver may be nil.
func NewExportService(
	liquidationRepo repository.LiquidationRepository,
	companyRepo repository.CompanyRepository,
	regulatory RegulatorySource,
	archiver Archiver,
	audit *AuditService,
	m *metrics.PayrollMetrics,
) *ExportService {
	return &ExportService{
		liquidationRepo: liquidationRepo,
		companyRepo:     companyRepo,
		regulatory:      regulatory,
		archiver:        archiver,
		audit:           audit,
		metrics:         m,
	}
}

// BuildLRE assembles one 147-field record per liquidation of the period
func (s *ExportService) BuildLRE(ctx context.Context, actor Actor, companyID uint, year, month int) (*LREExport, error) {
	if companyID == 0 || year == 0 || month < 1 || month > 12 {
		return nil, &ValidationError{Fields: []string{"company_id", "year", "month"}}
	}
	if !actor.CanAccess(companyID) {
		return nil, ErrUnauthorized
	}

	company, err := s.companyRepo.FindByID(ctx, companyID)
	if err != nil {
		return nil, notFound(err, "failed to load company")
	}

	liquidations, err := s.liquidationRepo.ListByPeriod(ctx, companyID, year, month, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list liquidations: %w", err)
	}
	if len(liquidations) == 0 {
		return nil, &MissingPrerequisiteError{CompanyID: companyID, Year: year, Month: month}
	}

	params, err := s.regulatory.ParametersFor(year, time.Month(month))
	if err != nil {
		return nil, fmt.Errorf("failed to load regulatory parameters: %w", err)
	}
	resolver, err := s.regulatory.ResolverFor(year, time.Month(month))
	if err != nil {
		return nil, fmt.Errorf("failed to load code tables: %w", err)
	}

	entries := make([]lre.Entry, 0, len(liquidations))
	for i := range liquidations {
		entries = append(entries, entryFor(&liquidations[i]))
	}

	assembler := lre.NewAssembler(resolver, params, lre.Company{
		RUT:                    company.RUT,
		RegionCode:             company.RegionCode,
		CommuneCode:            company.CommuneCode,
		FamilyFund:             company.FamilyFund,
		AccidentInsurer:        company.AccidentInsurer,
		AdditionalAccidentRate: company.AdditionalAccidentRate,
	})
	records := assembler.Build(entries)

	out := &LREExport{Company: *company, Year: year, Month: month, Records: records}
	for _, r := range records {
		out.Notices = append(out.Notices, r.Notices...)
	}
	return out, nil
}

func entryFor(l *models.Liquidation) lre.Entry {
	entry := lre.Entry{
		Employee: lre.Employee{
			RUT:             l.Employee.RUT,
			FirstNames:      l.Employee.FirstNames,
			PaternalSurname: l.Employee.PaternalSurname,
			MaternalSurname: l.Employee.MaternalSurname,
		},
		PensionFund:    l.PensionFund,
		HealthProvider: l.HealthProvider,
		SickLeaveDays:  l.SickLeaveDays,
		VacationDays:   l.VacationDays,
		Breakdown:      l.Breakdown,
		Notices:        l.GetNotices(),
	}
	if contract, ok := l.Contract(); ok {
		entry.Contract = lre.Contract{
			Type:  contract.Type,
			Start: contract.StartDate,
			End:   contract.EndDate,
		}
		if contract.TerminationCause != nil {
			entry.Contract.TerminationCause = *contract.TerminationCause
		}
	}
	if cfg := l.Employee.PayrollConfig; cfg != nil {
		entry.Dependents = cfg.Dependents
		entry.FamilyBracket = cfg.FamilyBracket
		entry.FamilyFund = cfg.FamilyFund
		entry.AccidentInsurer = cfg.AccidentInsurer
	}
	return entry
}

// ExportFilename is the conventional file name, e.g. libro_remuneraciones_761234560_202506.csv
func ExportFilename(companyRUT string, year, month int, format string) string {
	rut := lre.FormatRUT(companyRUT)
	digits := make([]byte, 0, len(rut))
	for i := 0; i < len(rut); i++ {
		if rut[i] != '-' {
			digits = append(digits, rut[i])
		}
	}
	return fmt.Sprintf("libro_remuneraciones_%s_%04d%02d.%s", digits, year, month, format)
}

// LRECSV renders the authoritative semicolon separated file with a UTF-8 BOM
func (s *ExportService) LRECSV(ctx context.Context, actor Actor, companyID uint, year, month int) (*ExportFile, error) {
	export, err := s.BuildLRE(ctx, actor, companyID, year, month)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := lre.WriteCSV(&buf, export.Records); err != nil {
		return nil, fmt.Errorf("failed to write LRE csv: %w", err)
	}

	return s.finish(ctx, actor, export, FormatCSV, buf.Bytes()), nil
}

// LREXLSX renders a spreadsheet copy of the same records for review
func (s *ExportService) LREXLSX(ctx context.Context, actor Actor, companyID uint, year, month int) (*ExportFile, error) {
	export, err := s.BuildLRE(ctx, actor, companyID, year, month)
	if err != nil {
		return nil, err
	}

	data, err := renderXLSX(export)
	if err != nil {
		return nil, fmt.Errorf("failed to write LRE xlsx: %w", err)
	}

	return s.finish(ctx, actor, export, FormatXLSX, data), nil
}

func (s *ExportService) finish(ctx context.Context, actor Actor, export *LREExport, format string, data []byte) *ExportFile {
	file := &ExportFile{
		Data:     data,
		Filename: ExportFilename(export.Company.RUT, export.Year, export.Month, format),
		Notices:  export.Notices,
	}

	if s.archiver != nil {
		path, err := s.archiver.Archive("lre", export.Year, export.Month, file.Filename, data)
		if err != nil {
			logger.FromContext(ctx).Error("failed to archive export", "file", file.Filename, "error", err)
		} else {
			file.Archive = path
		}
	}

	s.metrics.Export(format)
	s.metrics.Notices(export.Notices)
	s.audit.Log(ctx, actor, export.Company.ID, models.AuditActionExport, "PayrollBook", 0, map[string]interface{}{
		"period":  fmt.Sprintf("%04d-%02d", export.Year, export.Month),
		"format":  format,
		"file":    file.Filename,
		"archive": file.Archive,
		"rows":    len(export.Records),
		"notices": export.Notices,
	})
	return file
}

func renderXLSX(export *LREExport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "LRE"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	for col, h := range lre.Headers() {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		_ = f.SetCellValue(sheet, cell, h)
	}
	last, _ := excelize.CoordinatesToCellName(lre.FieldCount, 1)
	_ = f.SetCellStyle(sheet, "A1", last, headerStyle)

	for row, r := range export.Records {
		for col, v := range r.Values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if lre.Layout[col].Kind == lre.KindAmount {
				if n, err := strconv.ParseInt(v, 10, 64); err == nil {
					_ = f.SetCellValue(sheet, cell, n)
					continue
				}
			}
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	_ = f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
