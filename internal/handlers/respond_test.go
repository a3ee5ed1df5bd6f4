package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sjperalta/remuneraciones-api/internal/services"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", &services.ValidationError{Fields: []string{"employee_id"}}, http.StatusBadRequest},
		{"future period", &services.PeriodError{Year: 2030, Month: 1}, http.StatusUnprocessableEntity},
		{"no liquidations", &services.MissingPrerequisiteError{CompanyID: 1, Year: 2025, Month: 6}, http.StatusUnprocessableEntity},
		{"illegal transition", &services.StateTransitionError{From: "paid", Event: "cancel"}, http.StatusConflict},
		{"locked", services.ErrLiquidationLocked, http.StatusConflict},
		{"no contract", services.ErrNoActiveContract, http.StatusUnprocessableEntity},
		{"wrapped not found", fmt.Errorf("loading: %w", services.ErrNotFound), http.StatusNotFound},
		{"other company", services.ErrUnauthorized, http.StatusForbidden},
		{"unexpected", errors.New("connection reset"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFor(tt.err))
		})
	}
}

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("validation carries fields", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/", nil)

		respondError(c, &services.ValidationError{Fields: []string{"company_id", "month"}})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var body struct {
			Error  string   `json:"error"`
			Fields []string `json:"fields"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, []string{"company_id", "month"}, body.Fields)
		assert.Contains(t, body.Error, "datos inválidos")
	})

	t.Run("internal errors are not leaked", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

		respondError(c, errors.New("pq: relation \"liquidations\" does not exist"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"Error interno del servidor"}`, w.Body.String())
	})
}

func TestPeriodParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/books/:year/:month", func(c *gin.Context) {
		year, month, ok := periodParams(c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{"year": year, "month": month})
	})
	r.GET("/liquidations", func(c *gin.Context) {
		year, month, ok := periodParams(c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{"year": year, "month": month})
	})

	tests := []struct {
		url  string
		code int
		body string
	}{
		{"/books/2025/6", http.StatusOK, `{"year":2025,"month":6}`},
		{"/liquidations?year=2025&month=5", http.StatusOK, `{"year":2025,"month":5}`},
		{"/liquidations?year=2025", http.StatusBadRequest, `{"error":"Período inválido","fields":["year","month"]}`},
		{"/books/2025/junio", http.StatusBadRequest, `{"error":"Período inválido","fields":["year","month"]}`},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.url, nil))
			assert.Equal(t, tt.code, w.Code)
			assert.JSONEq(t, tt.body, w.Body.String())
		})
	}
}

func TestAttachment(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	attachment(c, "text/csv; charset=utf-8", "libro_remuneraciones_761234567_202506.csv", []byte("\xEF\xBB\xBFa;b"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="libro_remuneraciones_761234567_202506.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
}
