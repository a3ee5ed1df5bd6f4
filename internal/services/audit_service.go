package services

import (
	"context"
	"encoding/json"

	"github.com/sjperalta/remuneraciones-api/internal/jobs"
	"github.com/sjperalta/remuneraciones-api/internal/models"
	"github.com/sjperalta/remuneraciones-api/internal/repository"
	"github.com/sjperalta/remuneraciones-api/pkg/logger"
)

// Actor identifies who triggered an operation. The zero value is the system itself.
type Actor struct {
	UserID    uint
	Role      string
	CompanyID *uint
	IPAddress string
}

// SystemActor is used by scheduled jobs
var SystemActor = Actor{Role: models.RoleAdmin}

// CanAccess reports whether the actor may work on the company's payroll
func (a Actor) CanAccess(companyID uint) bool {
	if a.Role == models.RoleAdmin {
		return true
	}
	return a.CompanyID != nil && *a.CompanyID == companyID
}

func (a Actor) userID() *uint {
	if a.UserID == 0 {
		return nil
	}
	id := a.UserID
	return &id
}

type AuditService struct {
	repo   repository.AuditRepository
	worker *jobs.Worker
}

// NewAuditService creates the audit trail writer. With a nil worker entries are written inline.
func NewAuditService(repo repository.AuditRepository, worker *jobs.Worker) *AuditService {
	return &AuditService{repo: repo, worker: worker}
}

// Log records an audit entry. details is stored as JSON unless it already is a string.
func (s *AuditService) Log(ctx context.Context, actor Actor, companyID uint, action, entity string, entityID uint, details interface{}) {
	if s == nil || s.repo == nil {
		return
	}

	entry := &models.AuditLog{
		UserID:    actor.userID(),
		Action:    action,
		Entity:    entity,
		EntityID:  entityID,
		Details:   encodeDetails(details),
		IPAddress: actor.IPAddress,
	}
	if companyID != 0 {
		cid := companyID
		entry.CompanyID = &cid
	}

	if s.worker == nil {
		if err := s.repo.Create(ctx, entry); err != nil {
			logger.FromContext(ctx).Error("failed to write audit log", "action", action, "error", err)
		}
		return
	}

	requestID := logger.RequestID(ctx)
	s.worker.EnqueueAsync("audit", func(jobCtx context.Context) error {
		return s.repo.Create(logger.WithRequestID(jobCtx, requestID), entry)
	})
}

func encodeDetails(details interface{}) string {
	switch d := details.(type) {
	case nil:
		return ""
	case string:
		return d
	}
	data, err := json.Marshal(details)
	if err != nil {
		return ""
	}
	return string(data)
}

// List retrieves audit logs with filters
func (s *AuditService) List(ctx context.Context, query *repository.ListQuery) ([]models.AuditLog, int64, error) {
	return s.repo.List(ctx, query)
}
