package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sjperalta/remuneraciones-api/internal/models"
	"github.com/sjperalta/remuneraciones-api/internal/repository"
	"github.com/sjperalta/remuneraciones-api/internal/services"
)

type DirectoryHandler struct {
	directoryService *services.DirectoryService
}

func NewDirectoryHandler(directoryService *services.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{directoryService: directoryService}
}

// @Summary Get Company
// @Description Returns the company's payroll profile
// @Tags Companies
// @Produce json
// @Param company_id path int true "Company ID"
// @Success 200 {object} models.Company
// @Security BearerAuth
// @Router /companies/{company_id} [get]
func (h *DirectoryHandler) ShowCompany(c *gin.Context) {
	companyID, ok := uintParam(c, "company_id")
	if !ok {
		return
	}
	company, err := h.directoryService.GetCompany(c.Request.Context(), actorFrom(c), companyID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"company": company})
}

// @Summary Update Company Payroll Profile
// @Description Changes region, commune, CCAF, accident insurer or additional accident rate
// @Tags Companies
// @Accept json
// @Produce json
// @Param company_id path int true "Company ID"
// @Param request body services.CompanyProfile true "Profile fields"
// @Success 200 {object} models.Company
// @Security BearerAuth
// @Router /companies/{company_id} [patch]
func (h *DirectoryHandler) UpdateCompany(c *gin.Context) {
	companyID, ok := uintParam(c, "company_id")
	if !ok {
		return
	}
	var profile services.CompanyProfile
	if err := BindNestedOrFlat(c, "company", &profile); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cuerpo de la solicitud inválido"})
		return
	}

	company, err := h.directoryService.UpdateCompanyProfile(c.Request.Context(), actorFrom(c), companyID, profile)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"company": company})
}

// @Summary List Employees
// @Description Paginated employee directory of a company, with contracts and payroll configuration
// @Tags Employees
// @Produce json
// @Param company_id path int true "Company ID"
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param search_term query string false "Name or RUT"
// @Param status query string false "active (default), inactive or all"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /companies/{company_id}/employees [get]
func (h *DirectoryHandler) Employees(c *gin.Context) {
	companyID, ok := uintParam(c, "company_id")
	if !ok {
		return
	}

	query := repository.NewListQuery()
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	query.Search = c.Query("search_term")
	query.SortBy = c.Query("sort_by")
	query.SortDir = c.Query("sort_dir")

	switch c.DefaultQuery("status", "active") {
	case "active":
		query.Filters["active"] = "true"
	case "inactive":
		query.Filters["active"] = "false"
	}

	employees, total, err := h.directoryService.ListEmployees(c.Request.Context(), actorFrom(c), companyID, query)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.EmployeeResponse, 0, len(employees))
	for i := range employees {
		responses = append(responses, employees[i].ToResponse())
	}
	c.JSON(http.StatusOK, gin.H{
		"employees":  responses,
		"pagination": gin.H{"total": total, "page": query.Page, "per_page": query.PerPage},
	})
}
