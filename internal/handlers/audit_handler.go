package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sjperalta/remuneraciones-api/internal/middleware"
	"github.com/sjperalta/remuneraciones-api/internal/repository"
	"github.com/sjperalta/remuneraciones-api/internal/services"
)

type AuditHandler struct {
	auditService *services.AuditService
}

func NewAuditHandler(auditService *services.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// @Summary List Audit Logs
// @Description Paginated audit trail. Operators only see their own company.
// @Tags Audit
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(50)
// @Param company_id query int false "Company ID (admins)"
// @Param action query string false "GENERATE, TRANSITION, REPLACE_BOOK, EXPORT, RECONCILE"
// @Param entity query string false "Liquidation, PayrollBook, Company, User"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /audits [get]
func (h *AuditHandler) Index(c *gin.Context) {
	query := repository.NewListQuery()
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "50"))
	query.Filters["action"] = c.Query("action")
	query.Filters["entity"] = c.Query("entity")

	if middleware.IsAdmin(c) {
		query.Filters["company_id"] = c.Query("company_id")
	} else {
		companyID := middleware.GetCompanyID(c)
		if companyID == nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "No tienes acceso a esta sección"})
			return
		}
		query.Filters["company_id"] = strconv.FormatUint(uint64(*companyID), 10)
	}

	logs, total, err := h.auditService.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"audits": logs, "pagination": gin.H{"total": total, "page": query.Page, "per_page": query.PerPage}})
}
