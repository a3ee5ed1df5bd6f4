package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sjperalta/remuneraciones-api/internal/services"
)

type RegulatoryHandler struct {
	regulatoryService *services.RegulatoryService
}

func NewRegulatoryHandler(regulatoryService *services.RegulatoryService) *RegulatoryHandler {
	return &RegulatoryHandler{regulatoryService: regulatoryService}
}

// @Summary Regulatory Parameters
// @Description Parameters in force for a period (current month when omitted)
// @Tags Regulatory
// @Produce json
// @Param year query int false "Year"
// @Param month query int false "Month"
// @Success 200 {object} payroll.Parameters
// @Security BearerAuth
// @Router /regulatory/parameters [get]
func (h *RegulatoryHandler) Parameters(c *gin.Context) {
	year, _ := strconv.Atoi(c.Query("year"))
	month, _ := strconv.Atoi(c.Query("month"))

	params, err := h.regulatoryService.ParametersFor(year, month)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"parameters": params})
}
