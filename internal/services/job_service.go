package services

import (
	"context"

	"github.com/sjperalta/remuneraciones-api/internal/jobs"
	"github.com/sjperalta/remuneraciones-api/internal/models"
)

type JobService struct {
	worker    *jobs.Worker
	reconcile *ReconciliationService
}

func NewJobService(worker *jobs.Worker, reconcile *ReconciliationService) *JobService {
	return &JobService{
		worker:    worker,
		reconcile: reconcile,
	}
}

func (s *JobService) GetStatus() map[string]interface{} {
	stats := s.worker.GetStats()
	return map[string]interface{}{
		"active_jobs":    stats.ActiveJobs,
		"completed_jobs": stats.CompletedJobs,
		"failed_jobs":    stats.FailedJobs,
		"queue_length":   stats.QueueLength,
		"max_concurrent": stats.MaxConcurrent,
	}
}

// ReconcileNow queues a reconciliation scan of the current period
func (s *JobService) ReconcileNow(actor Actor) error {
	if actor.Role != models.RoleAdmin {
		return ErrUnauthorized
	}
	job := s.reconcile.Job()
	s.worker.Enqueue("reconcile", func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, reconcileTimeout)
		defer cancel()
		return job(ctx)
	})
	return nil
}
