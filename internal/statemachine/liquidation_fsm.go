package statemachine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/looplab/fsm"
	"github.com/sjperalta/remuneraciones-api/internal/models"
)

// Liquidation events
const (
	EventSubmit  = "submit"
	EventReturn  = "return"
	EventApprove = "approve"
	EventReopen  = "reopen"
	EventPay     = "pay"
	EventCancel  = "cancel"
	EventRestore = "restore"
)

// ErrTransitionNotAllowed is returned for any event that is not legal from the current status.
var ErrTransitionNotAllowed = errors.New("transition not allowed")

// LiquidationFSM wraps a liquidation with its state machine
type LiquidationFSM struct {
	liquidation *models.Liquidation
	fsm         *fsm.FSM
	now         func() time.Time
}

// NewLiquidationFSM creates a new liquidation state machine
func NewLiquidationFSM(liquidation *models.Liquidation, now func() time.Time) *LiquidationFSM {
	if now == nil {
		now = time.Now
	}
	if liquidation.Status == "" {
		liquidation.Status = models.LiquidationStatusDraft
	}

	lfsm := &LiquidationFSM{
		liquidation: liquidation,
		now:         now,
	}

	lfsm.fsm = fsm.NewFSM(
		liquidation.Status,
		fsm.Events{
			// draft → review
			{Name: EventSubmit, Src: []string{models.LiquidationStatusDraft}, Dst: models.LiquidationStatusReview},

			// review → draft
			{Name: EventReturn, Src: []string{models.LiquidationStatusReview}, Dst: models.LiquidationStatusDraft},

			// review → approved
			{Name: EventApprove, Src: []string{models.LiquidationStatusReview}, Dst: models.LiquidationStatusApproved},

			// approved → review
			{Name: EventReopen, Src: []string{models.LiquidationStatusApproved}, Dst: models.LiquidationStatusReview},

			// approved → paid
			{Name: EventPay, Src: []string{models.LiquidationStatusApproved}, Dst: models.LiquidationStatusPaid},

			// draft → cancelled
			{Name: EventCancel, Src: []string{models.LiquidationStatusDraft}, Dst: models.LiquidationStatusCancelled},

			// cancelled → draft
			{Name: EventRestore, Src: []string{models.LiquidationStatusCancelled}, Dst: models.LiquidationStatusDraft},
		},
		fsm.Callbacks{
			"enter_" + models.LiquidationStatusApproved: func(_ context.Context, _ *fsm.Event) {
				t := lfsm.now()
				lfsm.liquidation.ApprovedAt = &t
			},
			"enter_" + models.LiquidationStatusReview: func(_ context.Context, _ *fsm.Event) {
				lfsm.liquidation.ApprovedAt = nil
			},
			"enter_" + models.LiquidationStatusPaid: func(_ context.Context, _ *fsm.Event) {
				t := lfsm.now()
				lfsm.liquidation.PaidAt = &t
			},
		},
	)

	return lfsm
}

func (l *LiquidationFSM) allowed(event string) bool {
	switch event {
	case EventSubmit:
		return l.liquidation.MaySubmit()
	case EventReturn:
		return l.liquidation.MayReturn()
	case EventApprove:
		return l.liquidation.MayApprove()
	case EventReopen:
		return l.liquidation.MayReopen()
	case EventPay:
		return l.liquidation.MayPay()
	case EventCancel:
		return l.liquidation.MayCancel()
	case EventRestore:
		return l.liquidation.MayRestore()
	}
	return false
}

// Fire applies an event to the liquidation
func (l *LiquidationFSM) Fire(ctx context.Context, event string) error {
	if !l.allowed(event) {
		return fmt.Errorf("%w: liquidation cannot %s from %s", ErrTransitionNotAllowed, event, l.liquidation.Status)
	}

	if err := l.fsm.Event(ctx, event); err != nil {
		return fmt.Errorf("failed to %s liquidation: %w", event, err)
	}

	l.liquidation.Status = l.fsm.Current()
	return nil
}

// Submit sends a draft to review
func (l *LiquidationFSM) Submit(ctx context.Context) error { return l.Fire(ctx, EventSubmit) }

// Approve approves a liquidation under review
func (l *LiquidationFSM) Approve(ctx context.Context) error { return l.Fire(ctx, EventApprove) }

// Pay marks an approved liquidation as paid
func (l *LiquidationFSM) Pay(ctx context.Context) error { return l.Fire(ctx, EventPay) }

// Cancel cancels a draft
func (l *LiquidationFSM) Cancel(ctx context.Context) error { return l.Fire(ctx, EventCancel) }

// Current returns the current state
func (l *LiquidationFSM) Current() string {
	return l.fsm.Current()
}

// Can checks if a transition is possible
func (l *LiquidationFSM) Can(event string) bool {
	return l.allowed(event) && l.fsm.Can(event)
}
