package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestBookHandler_Register_ThrottlesOnlyExports(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var throttled []string
	limit := func(c *gin.Context) {
		throttled = append(throttled, c.Request.Method+" "+c.FullPath())
		c.AbortWithStatus(http.StatusTooManyRequests)
	}

	r := gin.New()
	NewBookHandler(nil, nil, nil).Register(r.Group("/companies/:company_id/books"), limit)

	tests := []struct {
		method string
		url    string
		code   int
	}{
		{http.MethodPost, "/companies/1/books", http.StatusTooManyRequests},
		{http.MethodGet, "/companies/1/books/2025/6/lre.csv", http.StatusTooManyRequests},
		{http.MethodGet, "/companies/1/books/2025/6/lre.xlsx", http.StatusTooManyRequests},
		{http.MethodGet, "/companies/1/books/2025/6/summary.pdf", http.StatusTooManyRequests},
		// reaches the handler, which rejects the period before any service call
		{http.MethodGet, "/companies/1/books/2025/junio", http.StatusBadRequest},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(tt.method, tt.url, nil))
		assert.Equal(t, tt.code, w.Code, tt.url)
	}

	assert.Equal(t, []string{
		"POST /companies/:company_id/books",
		"GET /companies/:company_id/books/:year/:month/lre.csv",
		"GET /companies/:company_id/books/:year/:month/lre.xlsx",
		"GET /companies/:company_id/books/:year/:month/summary.pdf",
	}, throttled)
}
