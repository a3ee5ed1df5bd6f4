package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sjperalta/remuneraciones-api/internal/middleware"
	"github.com/sjperalta/remuneraciones-api/internal/services"
)

type BookHandler struct {
	bookService   *services.PayrollBookService
	exportService *services.ExportService
	reportService *services.ReportService
}

func NewBookHandler(bookService *services.PayrollBookService, exportService *services.ExportService, reportService *services.ReportService) *BookHandler {
	return &BookHandler{
		bookService:   bookService,
		exportService: exportService,
		reportService: reportService,
	}
}

// Register mounts the book routes. throttled guards generation and file downloads; reading
// the stored book is not throttled.
func (h *BookHandler) Register(books *gin.RouterGroup, throttled gin.HandlerFunc) {
	books.POST("", throttled, h.Generate)
	books.GET("/:year/:month", h.Show)
	books.GET("/:year/:month/lre.csv", throttled, h.LRECSV)
	books.GET("/:year/:month/lre.xlsx", throttled, h.LREXLSX)
	books.GET("/:year/:month/summary.pdf", throttled, h.SummaryPDF)
}

// GenerateBookRequest is the body of POST /companies/:company_id/books
type GenerateBookRequest struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// @Summary Generate Payroll Book
// @Description Builds the payroll book of a period, replacing any previous one
// @Tags Books
// @Accept json
// @Produce json
// @Param company_id path int true "Company ID"
// @Param request body GenerateBookRequest true "Period"
// @Success 201 {object} models.PayrollBook
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /companies/{company_id}/books [post]
func (h *BookHandler) Generate(c *gin.Context) {
	companyID, ok := uintParam(c, "company_id")
	if !ok {
		return
	}
	var req GenerateBookRequest
	if err := BindNestedOrFlat(c, "book", &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cuerpo de la solicitud inválido"})
		return
	}

	book, err := h.bookService.Generate(c.Request.Context(), actorFrom(c), companyID, req.Year, req.Month)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"book": book})
}

// @Summary Get Payroll Book
// @Tags Books
// @Produce json
// @Param company_id path int true "Company ID"
// @Param year path int true "Year"
// @Param month path int true "Month"
// @Success 200 {object} models.PayrollBook
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /companies/{company_id}/books/{year}/{month} [get]
func (h *BookHandler) Show(c *gin.Context) {
	companyID, ok := uintParam(c, "company_id")
	if !ok {
		return
	}
	year, month, ok := periodParams(c)
	if !ok {
		return
	}

	book, err := h.bookService.Get(c.Request.Context(), actorFrom(c), companyID, year, month)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"book": book})
}

// @Summary LRE CSV
// @Description Electronic payroll book (147 fields, semicolon separated, UTF-8 with BOM)
// @Tags Books
// @Produce text/csv
// @Param company_id path int true "Company ID"
// @Param year path int true "Year"
// @Param month path int true "Month"
// @Success 200 {file} file
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /companies/{company_id}/books/{year}/{month}/lre.csv [get]
func (h *BookHandler) LRECSV(c *gin.Context) {
	h.export(c, h.exportService.LRECSV, "text/csv; charset=utf-8")
}

// @Summary LRE XLSX
// @Description Review copy of the electronic payroll book
// @Tags Books
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param company_id path int true "Company ID"
// @Param year path int true "Year"
// @Param month path int true "Month"
// @Success 200 {file} file
// @Security BearerAuth
// @Router /companies/{company_id}/books/{year}/{month}/lre.xlsx [get]
func (h *BookHandler) LREXLSX(c *gin.Context) {
	h.export(c, h.exportService.LREXLSX, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
}

type exportFunc func(ctx context.Context, actor services.Actor, companyID uint, year, month int) (*services.ExportFile, error)

func (h *BookHandler) export(c *gin.Context, render exportFunc, contentType string) {
	companyID, ok := uintParam(c, "company_id")
	if !ok {
		return
	}
	year, month, ok := periodParams(c)
	if !ok {
		return
	}

	file, err := render(c.Request.Context(), actorFrom(c), companyID, year, month)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header(middleware.NoticesHeader, strconv.Itoa(len(file.Notices)))
	attachment(c, contentType, file.Filename, file.Data)
}

// @Summary Payroll Book Summary PDF
// @Tags Books
// @Produce application/pdf
// @Param company_id path int true "Company ID"
// @Param year path int true "Year"
// @Param month path int true "Month"
// @Success 200 {file} file
// @Security BearerAuth
// @Router /companies/{company_id}/books/{year}/{month}/summary.pdf [get]
func (h *BookHandler) SummaryPDF(c *gin.Context) {
	companyID, ok := uintParam(c, "company_id")
	if !ok {
		return
	}
	year, month, ok := periodParams(c)
	if !ok {
		return
	}

	data, filename, err := h.reportService.BookSummaryPDF(c.Request.Context(), actorFrom(c), companyID, year, month)
	if err != nil {
		respondError(c, err)
		return
	}
	attachment(c, "application/pdf", filename, data)
}
