package services

import (
	"github.com/sjperalta/remuneraciones-api/internal/config"
	"github.com/sjperalta/remuneraciones-api/internal/jobs"
	"github.com/sjperalta/remuneraciones-api/internal/metrics"
	"github.com/sjperalta/remuneraciones-api/internal/repository"
	"github.com/sjperalta/remuneraciones-api/internal/storage"
)

// Services holds all service instances
type Services struct {
	Auth           *AuthService
	User           *UserService
	Directory      *DirectoryService
	Liquidation    *LiquidationService
	PayrollBook    *PayrollBookService
	Export         *ExportService
	Report         *ReportService
	Regulatory     *RegulatoryService
	Reconciliation *ReconciliationService
	Audit          *AuditService
	Job            *JobService
}

// NewServices creates all service instances
func NewServices(
	repos *repository.Repositories,
	worker *jobs.Worker,
	store *storage.LocalStorage,
	regulatory RegulatorySource,
	cfg *config.Config,
	m *metrics.PayrollMetrics,
) *Services {
	clock := SystemClock()
	auditSvc := NewAuditService(repos.Audit, worker)

	var archiver Archiver
	if store != nil {
		archiver = store
	}

	liquidationSvc := NewLiquidationService(repos.Liquidation, repos.Employee, repos.Company, regulatory, auditSvc, m, clock, cfg.WorkerCount)
	bookSvc := NewPayrollBookService(repos.PayrollBook, repos.Liquidation, repos.Company, regulatory, auditSvc, m, clock)
	reconcileSvc := NewReconciliationService(repos.Liquidation, auditSvc, m, clock)

	return &Services{
		Auth:           NewAuthService(repos.User, repos.RefreshToken, cfg),
		User:           NewUserService(repos.User, auditSvc),
		Directory:      NewDirectoryService(repos.Company, repos.Employee, auditSvc),
		Liquidation:    liquidationSvc,
		PayrollBook:    bookSvc,
		Export:         NewExportService(repos.Liquidation, repos.Company, regulatory, archiver, auditSvc, m),
		Report:         NewReportService(liquidationSvc, bookSvc, repos.Company),
		Regulatory:     NewRegulatoryService(regulatory, clock),
		Reconciliation: reconcileSvc,
		Audit:          auditSvc,
		Job:            NewJobService(worker, reconcileSvc),
	}
}
