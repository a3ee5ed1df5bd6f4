package services

import (
	"context"

	"github.com/sjperalta/remuneraciones-api/internal/models"
	"github.com/sjperalta/remuneraciones-api/internal/repository"
)

// DirectoryService serves the company and employee master data the payroll runs read
type DirectoryService struct {
	companyRepo  repository.CompanyRepository
	employeeRepo repository.EmployeeRepository
	audit        *AuditService
}

func NewDirectoryService(companyRepo repository.CompanyRepository, employeeRepo repository.EmployeeRepository, audit *AuditService) *DirectoryService {
	return &DirectoryService{
		companyRepo:  companyRepo,
		employeeRepo: employeeRepo,
		audit:        audit,
	}
}

// GetCompany returns the payroll profile of a company
func (s *DirectoryService) GetCompany(ctx context.Context, actor Actor, companyID uint) (*models.Company, error) {
	if !actor.CanAccess(companyID) {
		return nil, ErrUnauthorized
	}
	company, err := s.companyRepo.FindByID(ctx, companyID)
	if err != nil {
		return nil, notFound(err, "failed to load company")
	}
	return company, nil
}

// CompanyProfile holds the fields an operator may change on the company's payroll profile
type CompanyProfile struct {
	RegionCode             *string  `json:"region_code"`
	CommuneCode            *string  `json:"commune_code"`
	FamilyFund             *string  `json:"family_fund"`
	AccidentInsurer        *string  `json:"accident_insurer"`
	AdditionalAccidentRate *float64 `json:"additional_accident_rate"`
}

// UpdateCompanyProfile changes the payroll profile. Liquidations already stored keep their amounts.
func (s *DirectoryService) UpdateCompanyProfile(ctx context.Context, actor Actor, companyID uint, profile CompanyProfile) (*models.Company, error) {
	company, err := s.GetCompany(ctx, actor, companyID)
	if err != nil {
		return nil, err
	}
	if r := profile.AdditionalAccidentRate; r != nil && (*r < 0 || *r > 0.068) {
		return nil, &ValidationError{Fields: []string{"additional_accident_rate"}}
	}

	if profile.RegionCode != nil {
		company.RegionCode = *profile.RegionCode
	}
	if profile.CommuneCode != nil {
		company.CommuneCode = *profile.CommuneCode
	}
	if profile.FamilyFund != nil {
		company.FamilyFund = *profile.FamilyFund
	}
	if profile.AccidentInsurer != nil {
		company.AccidentInsurer = *profile.AccidentInsurer
	}
	if profile.AdditionalAccidentRate != nil {
		company.AdditionalAccidentRate = *profile.AdditionalAccidentRate
	}

	if err := s.companyRepo.Update(ctx, company); err != nil {
		return nil, err
	}
	s.audit.Log(ctx, actor, companyID, "UPDATE", "Company", companyID, profile)
	return company, nil
}

// ListEmployees returns a page of a company's employees with their contracts
func (s *DirectoryService) ListEmployees(ctx context.Context, actor Actor, companyID uint, query *repository.ListQuery) ([]models.Employee, int64, error) {
	if !actor.CanAccess(companyID) {
		return nil, 0, ErrUnauthorized
	}
	return s.employeeRepo.List(ctx, companyID, query)
}
