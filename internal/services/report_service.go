package services

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"html/template"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/jung-kurt/gofpdf"

	"github.com/sjperalta/remuneraciones-api/internal/models"
	"github.com/sjperalta/remuneraciones-api/internal/payroll"
	"github.com/sjperalta/remuneraciones-api/internal/repository"
)

//go:embed templates/liquidacion.html
var liquidationTemplate string

var slipTemplate = template.Must(template.New("liquidacion.html").Parse(liquidationTemplate))

// ReportService renders the read-only views of liquidations and books
type ReportService struct {
	liquidations *LiquidationService
	books        *PayrollBookService
	companyRepo  repository.CompanyRepository
}

// NewReportService creates a new report service
func NewReportService(liquidations *LiquidationService, books *PayrollBookService, companyRepo repository.CompanyRepository) *ReportService {
	return &ReportService{
		liquidations: liquidations,
		books:        books,
		companyRepo:  companyRepo,
	}
}

type slipLine struct {
	Label  string
	Amount string
}

type slipData struct {
	CompanyName     string
	CompanyRUT      string
	EmployeeName    string
	EmployeeRUT     string
	Period          string
	DaysWorked      int
	PensionFund     string
	HealthProvider  string
	Status          string
	Taxable         []slipLine
	NonTaxable      []slipLine
	Deductions      []slipLine
	TotalTaxable    string
	TotalNonTaxable string
	TotalGross      string
	TotalDeductions string
	NetSalary       string
	NetSalaryWords  string
	Notices         []payroll.Notice
}

var monthNames = [...]string{"", "enero", "febrero", "marzo", "abril", "mayo", "junio", "julio",
	"agosto", "septiembre", "octubre", "noviembre", "diciembre"}

func periodLabel(year, month int) string {
	if month < 1 || month > 12 {
		return fmt.Sprintf("%04d-%02d", year, month)
	}
	return fmt.Sprintf("%s %d", monthNames[month], year)
}

// lines keeps only the non-zero amounts so the slip lists what was actually paid or withheld
func lines(items ...slipLine) []slipLine {
	out := make([]slipLine, 0, len(items))
	for _, it := range items {
		if it.Amount != "" {
			out = append(out, it)
		}
	}
	return out
}

func line(label string, amount int64) slipLine {
	if amount == 0 {
		return slipLine{Label: label}
	}
	return slipLine{Label: label, Amount: FormatPesos(amount)}
}

func buildSlipData(company *models.Company, l *models.Liquidation) slipData {
	b := l.Breakdown
	return slipData{
		CompanyName:    company.Name,
		CompanyRUT:     company.RUT,
		EmployeeName:   l.Employee.FullName(),
		EmployeeRUT:    l.Employee.RUT,
		Period:         periodLabel(l.Year, l.Month),
		DaysWorked:     b.DaysWorked,
		PensionFund:    l.PensionFund,
		HealthProvider: l.HealthProvider,
		Status:         l.Status,
		Taxable: lines(
			line("Sueldo base", b.BaseSalary),
			line(fmt.Sprintf("Horas extra (%.1f h)", b.OvertimeHours), b.OvertimeAmount),
			line("Comisiones", b.Commissions),
			line("Semana corrida", b.SemanaCorrida),
			line("Bonos", b.Bonuses),
			line("Gratificación", b.Gratification),
			line("Gratificación legal", b.StatutoryGratification),
		),
		NonTaxable: lines(
			line("Colación", b.FoodAllowance),
			line("Movilización", b.TransportAllowance),
			line("Asignación familiar", b.FamilyAllowance),
		),
		Deductions: lines(
			line(fmt.Sprintf("AFP %.2f%%", b.PensionPercentage), b.PensionAmount),
			line(fmt.Sprintf("Comisión AFP %.2f%%", b.PensionCommissionPercentage), b.PensionCommissionAmount),
			line(fmt.Sprintf("Salud %.2f%%", b.HealthPercentage), b.HealthAmount),
			line(fmt.Sprintf("Seguro de cesantía %.2f%%", b.UnemploymentPercentage), b.UnemploymentAmount),
			line("Seguro de invalidez y sobrevivencia", b.DisabilityInsuranceAmount),
			line("Impuesto único", b.IncomeTaxAmount),
			line("Préstamos", b.Loans),
			line("Anticipos", b.Advances),
			line("Ahorro voluntario", b.VoluntarySavings),
			line("Otros descuentos", b.OtherDeductions),
		),
		TotalTaxable:    FormatPesos(b.TotalTaxableIncome),
		TotalNonTaxable: FormatPesos(b.TotalNonTaxableIncome),
		TotalGross:      FormatPesos(b.TotalGrossIncome),
		TotalDeductions: FormatPesos(b.TotalDeductions),
		NetSalary:       FormatPesos(b.NetSalary),
		NetSalaryWords:  PesosToWords(b.NetSalary),
		Notices:         l.GetNotices(),
	}
}

// LiquidationSlipHTML renders the pay slip of a liquidation
func (s *ReportService) LiquidationSlipHTML(ctx context.Context, actor Actor, id uint) ([]byte, *models.Liquidation, error) {
	l, err := s.liquidations.Get(ctx, actor, id)
	if err != nil {
		return nil, nil, err
	}
	company, err := s.companyRepo.FindByID(ctx, l.CompanyID)
	if err != nil {
		return nil, nil, notFound(err, "failed to load company")
	}

	var buf bytes.Buffer
	if err := slipTemplate.Execute(&buf, buildSlipData(company, l)); err != nil {
		return nil, nil, fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.Bytes(), l, nil
}

// LiquidationSlipPDF converts the slip to PDF with wkhtmltopdf
func (s *ReportService) LiquidationSlipPDF(ctx context.Context, actor Actor, id uint) ([]byte, string, error) {
	html, l, err := s.LiquidationSlipHTML(ctx, actor, id)
	if err != nil {
		return nil, "", err
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, "", fmt.Errorf("failed to create pdf generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)
	pdfg.PageSize.Set(wkhtmltopdf.PageSizeLetter)
	pdfg.Grayscale.Set(false)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader(html))
	page.Encoding.Set("utf-8")
	pdfg.AddPage(page)

	if err := pdfg.CreateContext(ctx); err != nil {
		return nil, "", fmt.Errorf("failed to create pdf: %w", err)
	}

	filename := fmt.Sprintf("liquidacion_%s_%04d%02d.pdf", l.Employee.RUT, l.Year, l.Month)
	return pdfg.Bytes(), filename, nil
}

// BookSummaryPDF renders the payroll book of a period as a one-line-per-employee table
func (s *ReportService) BookSummaryPDF(ctx context.Context, actor Actor, companyID uint, year, month int) ([]byte, string, error) {
	book, err := s.books.Get(ctx, actor, companyID, year, month)
	if err != nil {
		return nil, "", err
	}
	company, err := s.companyRepo.FindByID(ctx, companyID)
	if err != nil {
		return nil, "", notFound(err, "failed to load company")
	}

	pdf := gofpdf.New("L", "mm", "Letter", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 8, tr(fmt.Sprintf("Libro de remuneraciones N° %d", book.BookNumber)))
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, tr(fmt.Sprintf("%s (%s) - %s", company.Name, company.RUT, periodLabel(year, month))))
	pdf.Ln(6)
	pdf.Cell(0, 6, tr("Generado el "+book.UpdatedAt.Format("02/01/2006 15:04")))
	pdf.Ln(10)

	headers := []string{"RUT", "Trabajador", "Días", "Imponible", "No imponible", "Haberes", "Descuentos", "Líquido", "Aporte empleador"}
	widths := []float64{24, 62, 12, 24, 24, 24, 24, 24, 30}

	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(224, 224, 224)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, tr(h), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, d := range book.Details {
		row := []string{
			d.EmployeeRUT,
			d.EmployeeName,
			fmt.Sprintf("%d", d.DaysWorked),
			FormatPesos(d.TotalTaxableIncome),
			FormatPesos(d.TotalNonTaxableIncome),
			FormatPesos(d.TotalGrossIncome),
			FormatPesos(d.TotalDeductions),
			FormatPesos(d.NetSalary),
			FormatPesos(d.EmployerContributions),
		}
		for i, v := range row {
			align := "R"
			if i < 2 {
				align = "L"
			}
			pdf.CellFormat(widths[i], 6, tr(v), "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.SetFont("Arial", "B", 9)
	totals := []string{
		"", fmt.Sprintf("Total (%d)", book.TotalEmployees), "",
		FormatPesos(book.TotalTaxableIncome),
		FormatPesos(book.TotalNonTaxableIncome),
		FormatPesos(book.TotalGrossIncome),
		FormatPesos(book.TotalDeductions),
		FormatPesos(book.TotalNetSalary),
		FormatPesos(book.TotalEmployerContributions),
	}
	for i, v := range totals {
		pdf.CellFormat(widths[i], 7, tr(v), "1", 0, "R", true, 0, "")
	}
	pdf.Ln(-1)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", fmt.Errorf("failed to render pdf: %w", err)
	}

	filename := fmt.Sprintf("libro_%04d%02d_%d.pdf", year, month, book.BookNumber)
	return buf.Bytes(), filename, nil
}
