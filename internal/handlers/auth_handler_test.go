package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/sjperalta/remuneraciones-api/internal/repository"
	"github.com/sjperalta/remuneraciones-api/internal/services"
)

type stubRefreshTokens struct {
	repository.RefreshTokenRepository
	deleteErr error
	deleted   []string
}

func (s *stubRefreshTokens) Delete(ctx context.Context, token string) error {
	s.deleted = append(s.deleted, token)
	return s.deleteErr
}

func TestAuthHandler_Logout(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name      string
		body      string
		deleteErr error
		code      int
		response  string
	}{
		{"revoked", `{"refresh_token":"abc"}`, nil, http.StatusOK, `{"message":"Sesión cerrada exitosamente"}`},
		{"store failure is reported", `{"refresh_token":"abc"}`, errors.New("connection refused"), http.StatusInternalServerError, `{"error":"Error interno del servidor"}`},
		{"missing token", `{}`, nil, http.StatusBadRequest, `{"error":"Refresh token es requerido","fields":["refresh_token"]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := &stubRefreshTokens{deleteErr: tt.deleteErr}
			h := NewAuthHandler(services.NewAuthService(nil, tokens, nil))

			r := gin.New()
			r.POST("/auth/logout", h.Logout)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/auth/logout", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.code, w.Code)
			assert.JSONEq(t, tt.response, w.Body.String())
			if tt.code != http.StatusBadRequest {
				assert.Equal(t, []string{"abc"}, tokens.deleted)
			}
		})
	}
}
