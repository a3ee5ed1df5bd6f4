package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sjperalta/remuneraciones-api/internal/models"
	"github.com/sjperalta/remuneraciones-api/internal/payroll"
	"github.com/sjperalta/remuneraciones-api/internal/services"
)

type LiquidationHandler struct {
	liquidationService *services.LiquidationService
	reportService      *services.ReportService
}

func NewLiquidationHandler(liquidationService *services.LiquidationService, reportService *services.ReportService) *LiquidationHandler {
	return &LiquidationHandler{
		liquidationService: liquidationService,
		reportService:      reportService,
	}
}

// GenerateLiquidationRequest is the body of POST /liquidations. Accepts {"liquidation": {...}} or the flat form.
type GenerateLiquidationRequest struct {
	CompanyID  uint `json:"company_id"`
	EmployeeID uint `json:"employee_id"`
	payroll.PeriodInput
}

// PeriodOverride carries one employee's inputs in a period run
type PeriodOverride struct {
	EmployeeID uint `json:"employee_id"`
	payroll.PeriodInput
}

// GeneratePeriodRequest is the body of a whole-company run
type GeneratePeriodRequest struct {
	Year      int              `json:"year"`
	Month     int              `json:"month"`
	Overrides []PeriodOverride `json:"overrides"`
}

func toResponses(liquidations []models.Liquidation) []models.LiquidationResponse {
	out := make([]models.LiquidationResponse, 0, len(liquidations))
	for i := range liquidations {
		out = append(out, liquidations[i].ToResponse())
	}
	return out
}

// @Summary Generate Liquidation
// @Description Computes and stores the liquidation of one employee for a period. Repeating the call replaces the draft.
// @Tags Liquidations
// @Accept json
// @Produce json
// @Param request body GenerateLiquidationRequest true "Period inputs"
// @Success 200 {object} models.LiquidationResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /liquidations [post]
func (h *LiquidationHandler) Generate(c *gin.Context) {
	var req GenerateLiquidationRequest
	if err := BindNestedOrFlat(c, "liquidation", &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cuerpo de la solicitud inválido"})
		return
	}

	liquidation, err := h.liquidationService.Generate(c.Request.Context(), actorFrom(c), services.GenerateRequest{
		CompanyID:  req.CompanyID,
		EmployeeID: req.EmployeeID,
		Period:     req.PeriodInput,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"liquidation": liquidation.ToResponse()})
}

// @Summary Generate Period
// @Description Computes every active employee of a company for a period
// @Tags Liquidations
// @Accept json
// @Produce json
// @Param company_id path int true "Company ID"
// @Param request body GeneratePeriodRequest true "Period and per-employee inputs"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /companies/{company_id}/liquidations/generate [post]
func (h *LiquidationHandler) GeneratePeriod(c *gin.Context) {
	companyID, ok := uintParam(c, "company_id")
	if !ok {
		return
	}
	var req GeneratePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cuerpo de la solicitud inválido"})
		return
	}

	overrides := make(map[uint]payroll.PeriodInput, len(req.Overrides))
	for _, o := range req.Overrides {
		overrides[o.EmployeeID] = o.PeriodInput
	}

	result, err := h.liquidationService.GeneratePeriod(c.Request.Context(), actorFrom(c), companyID, req.Year, time.Month(req.Month), overrides)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"liquidations": toResponses(result.Generated),
		"skipped":      result.Skipped,
	})
}

// @Summary Get Liquidation
// @Description Returns a liquidation with totals re-derived from its components
// @Tags Liquidations
// @Produce json
// @Param liquidation_id path int true "Liquidation ID"
// @Success 200 {object} models.LiquidationResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /liquidations/{liquidation_id} [get]
func (h *LiquidationHandler) Show(c *gin.Context) {
	id, ok := uintParam(c, "liquidation_id")
	if !ok {
		return
	}
	liquidation, err := h.liquidationService.Get(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"liquidation": liquidation.ToResponse()})
}

// @Summary Edit Liquidation
// @Description Regenerates a draft or review liquidation from new inputs; the period cannot change
// @Tags Liquidations
// @Accept json
// @Produce json
// @Param liquidation_id path int true "Liquidation ID"
// @Param request body payroll.PeriodInput true "Period inputs"
// @Success 200 {object} models.LiquidationResponse
// @Failure 409 {object} map[string]string
// @Security BearerAuth
// @Router /liquidations/{liquidation_id} [put]
func (h *LiquidationHandler) Update(c *gin.Context) {
	id, ok := uintParam(c, "liquidation_id")
	if !ok {
		return
	}
	var period payroll.PeriodInput
	if err := BindNestedOrFlat(c, "liquidation", &period); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cuerpo de la solicitud inválido"})
		return
	}

	liquidation, err := h.liquidationService.Edit(c.Request.Context(), actorFrom(c), id, period)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"liquidation": liquidation.ToResponse()})
}

// Transition returns the handler for one lifecycle event (submit, return, approve, reopen, pay, cancel, restore)
// @Summary Change Liquidation Status
// @Tags Liquidations
// @Produce json
// @Param liquidation_id path int true "Liquidation ID"
// @Success 200 {object} models.LiquidationResponse
// @Failure 409 {object} map[string]string
// @Security BearerAuth
// @Router /liquidations/{liquidation_id}/approve [post]
func (h *LiquidationHandler) Transition(event string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := uintParam(c, "liquidation_id")
		if !ok {
			return
		}
		liquidation, err := h.liquidationService.Transition(c.Request.Context(), actorFrom(c), id, event)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"liquidation": liquidation.ToResponse()})
	}
}

// @Summary List Liquidations
// @Description Lists the liquidations of a company period
// @Tags Liquidations
// @Produce json
// @Param company_id path int true "Company ID"
// @Param year query int true "Year"
// @Param month query int true "Month"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /companies/{company_id}/liquidations [get]
func (h *LiquidationHandler) Index(c *gin.Context) {
	companyID, ok := uintParam(c, "company_id")
	if !ok {
		return
	}
	year, month, ok := periodParams(c)
	if !ok {
		return
	}

	liquidations, err := h.liquidationService.List(c.Request.Context(), actorFrom(c), companyID, year, month)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"liquidations": toResponses(liquidations), "total": len(liquidations)})
}

// @Summary Liquidation Slip PDF
// @Description Renders the pay slip of a liquidation
// @Tags Liquidations
// @Produce application/pdf
// @Param liquidation_id path int true "Liquidation ID"
// @Success 200 {file} file
// @Security BearerAuth
// @Router /liquidations/{liquidation_id}/pdf [get]
func (h *LiquidationHandler) PDF(c *gin.Context) {
	id, ok := uintParam(c, "liquidation_id")
	if !ok {
		return
	}
	data, filename, err := h.reportService.LiquidationSlipPDF(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	attachment(c, "application/pdf", filename, data)
}

// @Summary Liquidation Slip HTML
// @Description Renders the pay slip as HTML, for preview
// @Tags Liquidations
// @Produce html
// @Param liquidation_id path int true "Liquidation ID"
// @Success 200 {string} string
// @Security BearerAuth
// @Router /liquidations/{liquidation_id}/html [get]
func (h *LiquidationHandler) HTML(c *gin.Context) {
	id, ok := uintParam(c, "liquidation_id")
	if !ok {
		return
	}
	data, _, err := h.reportService.LiquidationSlipHTML(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", data)
}
