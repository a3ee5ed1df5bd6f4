package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sjperalta/remuneraciones-api/internal/models"
)

func TestPesosToWords(t *testing.T) {
	tests := []struct {
		amount int64
		want   string
	}{
		{0, "CERO PESOS"},
		{1, "UN PESO"},
		{101, "CIENTO UN PESOS"},
		{21000, "VEINTIÚN MIL PESOS"},
		{1000000, "UN MILLÓN DE PESOS"},
		{2500000, "DOS MILLONES QUINIENTOS MIL PESOS"},
		{540439, "QUINIENTOS CUARENTA MIL CUATROCIENTOS TREINTA Y NUEVE PESOS"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PesosToWords(tt.amount), "%d", tt.amount)
	}
}

func TestFormatPesos(t *testing.T) {
	assert.Equal(t, "$ 0", FormatPesos(0))
	assert.Equal(t, "$ 999", FormatPesos(999))
	assert.Equal(t, "$ 1.000", FormatPesos(1000))
	assert.Equal(t, "$ 540.439", FormatPesos(540439))
	assert.Equal(t, "$ 12.345.678", FormatPesos(12345678))
	assert.Equal(t, "$ -1.500", FormatPesos(-1500))
}

func TestCheckPeriod(t *testing.T) {
	assert.NoError(t, checkPeriod(july2025, 2025, 7))
	assert.NoError(t, checkPeriod(july2025, 2024, 12))

	var period *PeriodError
	assert.True(t, errors.As(checkPeriod(july2025, 2025, 8), &period))
	assert.True(t, errors.As(checkPeriod(july2025, 2026, 1), &period))

	var validation *ValidationError
	require.True(t, errors.As(checkPeriod(july2025, 1999, 13), &validation))
	assert.Equal(t, []string{"year", "month"}, validation.Fields)
}

func TestActor_CanAccess(t *testing.T) {
	assert.True(t, Actor{Role: models.RoleAdmin}.CanAccess(8))
	assert.True(t, analystOf(8).CanAccess(8))
	assert.False(t, analystOf(8).CanAccess(9))
	assert.False(t, Actor{Role: models.RoleAnalyst}.CanAccess(8))
}

func TestUserService_Create(t *testing.T) {
	repo := &mockUserRepo{}
	audit := &mockAuditRepo{}
	svc := NewUserService(repo, NewAuditService(audit, nil))
	admin := Actor{UserID: 1, Role: models.RoleAdmin}
	companyID := uint(4)

	_, err := svc.Create(context.Background(), analystOf(4), CreateUserRequest{})
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.Create(context.Background(), admin, CreateUserRequest{
		Email:    "sin-arroba",
		Password: "corta",
		Role:     models.RoleAnalyst,
	})
	var validation *ValidationError
	require.True(t, errors.As(err, &validation))
	assert.Equal(t, []string{"email", "password", "company_id"}, validation.Fields)

	_, err = svc.Create(context.Background(), admin, CreateUserRequest{
		Email:    "a@b.cl",
		Password: "suficiente",
		Role:     "superuser",
	})
	require.True(t, errors.As(err, &validation))
	assert.Equal(t, []string{"role"}, validation.Fields)

	user, err := svc.Create(context.Background(), admin, CreateUserRequest{
		Email:     " Analista@Empresa.CL ",
		FullName:  "Analista",
		Password:  "suficiente",
		Role:      models.RoleAnalyst,
		CompanyID: &companyID,
	})
	require.NoError(t, err)
	assert.Equal(t, "analista@empresa.cl", user.Email)
	assert.Equal(t, uint(4), *user.CompanyID)
	assert.True(t, VerifyPassword("suficiente", user.EncryptedPassword))
	assert.Equal(t, []string{"CREATE"}, audit.actions())

	adminUser, err := svc.Create(context.Background(), admin, CreateUserRequest{
		Email:     "root@empresa.cl",
		Password:  "suficiente",
		Role:      models.RoleAdmin,
		CompanyID: &companyID,
	})
	require.NoError(t, err)
	assert.Nil(t, adminUser.CompanyID)
}

func TestRegulatoryService_ParametersFor(t *testing.T) {
	svc := NewRegulatoryService(testRegulatory(t), july2025)

	current, err := svc.ParametersFor(0, 0)
	require.NoError(t, err)
	assert.Equal(t, "2025-05-01", current.EffectiveFrom)

	march, err := svc.ParametersFor(2025, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(510000), march.MinimumWage)

	_, err = svc.ParametersFor(2025, 13)
	var validation *ValidationError
	assert.True(t, errors.As(err, &validation))

	_, err = svc.ParametersFor(2010, 1)
	assert.Error(t, err)
}

func TestReconciliationService_ScanPeriod(t *testing.T) {
	clean := storedGolden(t)
	drifted := storedGolden(t)
	drifted.ID = 12
	drifted.CompanyID = 2
	drifted.TotalDeductions = 100000

	repo := &mockLiquidationRepo{
		mockListForPeriod: func(ctx context.Context, year, month int) ([]models.Liquidation, error) {
			return []models.Liquidation{clean, drifted}, nil
		},
	}
	audit := &mockAuditRepo{}
	svc := NewReconciliationService(repo, NewAuditService(audit, nil), nil, FixedClock(time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC)))

	report, err := svc.ScanCurrent(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2025, report.Year)
	assert.Equal(t, 6, report.Month)
	assert.Equal(t, 2, report.Scanned)
	require.Len(t, report.Drifted, 1)
	assert.Equal(t, uint(12), report.Drifted[0].LiquidationID)

	var fields []string
	for _, n := range report.Drifted[0].Notices {
		fields = append(fields, n.Field)
	}
	assert.Equal(t, []string{"total_deductions"}, fields)

	require.Len(t, audit.entries, 1)
	assert.Equal(t, models.AuditActionReconcile, audit.entries[0].Action)
	assert.Equal(t, uint(2), *audit.entries[0].CompanyID)
	assert.Nil(t, audit.entries[0].UserID)

	assert.Empty(t, repo.updated)
	require.NoError(t, svc.Job()(context.Background()))
}
