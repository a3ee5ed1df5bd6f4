package statemachine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sjperalta/remuneraciones-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedNow() time.Time {
	return time.Date(2025, 7, 5, 10, 0, 0, 0, time.UTC)
}

func TestLiquidationFSM_HappyPath(t *testing.T) {
	liq := &models.Liquidation{Status: models.LiquidationStatusDraft}
	m := NewLiquidationFSM(liq, fixedNow)
	ctx := context.Background()

	require.NoError(t, m.Submit(ctx))
	assert.Equal(t, models.LiquidationStatusReview, liq.Status)

	require.NoError(t, m.Approve(ctx))
	assert.Equal(t, models.LiquidationStatusApproved, liq.Status)
	require.NotNil(t, liq.ApprovedAt)
	assert.Equal(t, fixedNow(), *liq.ApprovedAt)

	require.NoError(t, m.Pay(ctx))
	assert.Equal(t, models.LiquidationStatusPaid, liq.Status)
	require.NotNil(t, liq.PaidAt)
}

func TestLiquidationFSM_ReversibleSteps(t *testing.T) {
	ctx := context.Background()

	liq := &models.Liquidation{Status: models.LiquidationStatusReview}
	require.NoError(t, NewLiquidationFSM(liq, fixedNow).Fire(ctx, EventReturn))
	assert.Equal(t, models.LiquidationStatusDraft, liq.Status)

	approved := &models.Liquidation{Status: models.LiquidationStatusApproved}
	require.NoError(t, NewLiquidationFSM(approved, fixedNow).Fire(ctx, EventReopen))
	assert.Equal(t, models.LiquidationStatusReview, approved.Status)
	assert.Nil(t, approved.ApprovedAt)

	cancelled := &models.Liquidation{Status: models.LiquidationStatusDraft}
	m := NewLiquidationFSM(cancelled, fixedNow)
	require.NoError(t, m.Cancel(ctx))
	assert.Equal(t, models.LiquidationStatusCancelled, cancelled.Status)
	require.NoError(t, m.Fire(ctx, EventRestore))
	assert.Equal(t, models.LiquidationStatusDraft, cancelled.Status)
}

func TestLiquidationFSM_RejectsIllegalTransitions(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		status string
		event  string
	}{
		{models.LiquidationStatusDraft, EventApprove},
		{models.LiquidationStatusDraft, EventPay},
		{models.LiquidationStatusReview, EventCancel},
		{models.LiquidationStatusApproved, EventCancel},
		{models.LiquidationStatusPaid, EventReopen},
		{models.LiquidationStatusPaid, EventCancel},
		{models.LiquidationStatusCancelled, EventSubmit},
		{models.LiquidationStatusDraft, "archive"},
	}

	for _, tc := range cases {
		t.Run(tc.status+"_"+tc.event, func(t *testing.T) {
			liq := &models.Liquidation{Status: tc.status}
			m := NewLiquidationFSM(liq, fixedNow)

			assert.False(t, m.Can(tc.event))
			err := m.Fire(ctx, tc.event)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrTransitionNotAllowed))
			assert.Equal(t, tc.status, liq.Status)
		})
	}
}
