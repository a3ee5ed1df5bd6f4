package handlers

import (
	"github.com/sjperalta/remuneraciones-api/internal/services"
)

// Handlers holds all handler instances
type Handlers struct {
	Health      *HealthHandler
	Auth        *AuthHandler
	User        *UserHandler
	Directory   *DirectoryHandler
	Liquidation *LiquidationHandler
	Book        *BookHandler
	Regulatory  *RegulatoryHandler
	Audit       *AuditHandler
	Job         *JobHandler
}

// NewHandlers creates all handler instances
func NewHandlers(svcs *services.Services) *Handlers {
	return &Handlers{
		Health:      NewHealthHandler(),
		Auth:        NewAuthHandler(svcs.Auth),
		User:        NewUserHandler(svcs.User),
		Directory:   NewDirectoryHandler(svcs.Directory),
		Liquidation: NewLiquidationHandler(svcs.Liquidation, svcs.Report),
		Book:        NewBookHandler(svcs.PayrollBook, svcs.Export, svcs.Report),
		Regulatory:  NewRegulatoryHandler(svcs.Regulatory),
		Audit:       NewAuditHandler(svcs.Audit),
		Job:         NewJobHandler(svcs.Job),
	}
}
