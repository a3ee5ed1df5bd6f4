package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sjperalta/remuneraciones-api/internal/middleware"
	"github.com/sjperalta/remuneraciones-api/internal/services"
	"github.com/sjperalta/remuneraciones-api/pkg/logger"
)

// statusFor maps service errors to HTTP status codes
func statusFor(err error) int {
	var (
		validation   *services.ValidationError
		period       *services.PeriodError
		prerequisite *services.MissingPrerequisiteError
	)
	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &period), errors.As(err, &prerequisite):
		return http.StatusUnprocessableEntity
	case errors.Is(err, services.ErrInvalidState), errors.Is(err, services.ErrLiquidationLocked),
		errors.Is(err, services.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, services.ErrNoActiveContract), errors.Is(err, services.ErrCompanyMismatch):
		return http.StatusUnprocessableEntity
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, services.ErrInvalidPassword):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// respondError writes the error body. Unexpected errors are logged and reported with a generic message.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		logger.FromContext(c.Request.Context()).Error("request failed", "path", c.FullPath(), "error", err)
		c.JSON(status, gin.H{"error": "Error interno del servidor"})
		return
	}

	body := gin.H{"error": err.Error()}
	var validation *services.ValidationError
	if errors.As(err, &validation) {
		body["fields"] = validation.Fields
	}
	c.JSON(status, body)
}

// actorFrom builds the service actor from the authenticated request
func actorFrom(c *gin.Context) services.Actor {
	return services.Actor{
		UserID:    middleware.GetUserID(c),
		Role:      middleware.GetUserRole(c),
		CompanyID: middleware.GetCompanyID(c),
		IPAddress: c.ClientIP(),
	}
}

func uintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || v == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Parámetro inválido: " + name})
		return 0, false
	}
	return uint(v), true
}

// periodParams reads year and month from the path, falling back to the query string
func periodParams(c *gin.Context) (int, int, bool) {
	yearStr := c.Param("year")
	if yearStr == "" {
		yearStr = c.Query("year")
	}
	monthStr := c.Param("month")
	if monthStr == "" {
		monthStr = c.Query("month")
	}
	year, errY := strconv.Atoi(yearStr)
	month, errM := strconv.Atoi(monthStr)
	if errY != nil || errM != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Período inválido", "fields": []string{"year", "month"}})
		return 0, 0, false
	}
	return year, month, true
}

func attachment(c *gin.Context, contentType, filename string, data []byte) {
	c.Header("Content-Disposition", "attachment; filename="+strconv.Quote(filename))
	c.Data(http.StatusOK, contentType, data)
}
