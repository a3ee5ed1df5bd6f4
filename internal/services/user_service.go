package services

import (
	"context"
	"strings"

	"github.com/sjperalta/remuneraciones-api/internal/models"
	"github.com/sjperalta/remuneraciones-api/internal/repository"
)

// UserService manages API operators
type UserService struct {
	repo     repository.UserRepository
	auditSvc *AuditService
}

func NewUserService(repo repository.UserRepository, auditSvc *AuditService) *UserService {
	return &UserService{
		repo:     repo,
		auditSvc: auditSvc,
	}
}

// CreateUserRequest is the input for a new operator
type CreateUserRequest struct {
	Email     string
	FullName  string
	Password  string
	Role      string
	CompanyID *uint
}

func (r CreateUserRequest) validate() error {
	var fields []string
	if !strings.Contains(r.Email, "@") {
		fields = append(fields, "email")
	}
	if len(r.Password) < 8 {
		fields = append(fields, "password")
	}
	switch r.Role {
	case models.RoleAdmin:
	case models.RoleAnalyst, "":
		if r.CompanyID == nil {
			fields = append(fields, "company_id")
		}
	default:
		fields = append(fields, "role")
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func (s *UserService) FindByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "failed to load user")
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context, query *repository.ListQuery) ([]models.User, int64, error) {
	return s.repo.List(ctx, query)
}

// Create registers an operator. Analysts must be bound to a company.
func (s *UserService) Create(ctx context.Context, actor Actor, req CreateUserRequest) (*models.User, error) {
	if actor.Role != models.RoleAdmin {
		return nil, ErrUnauthorized
	}
	if err := req.validate(); err != nil {
		return nil, err
	}

	hashedPassword, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Email:             strings.ToLower(strings.TrimSpace(req.Email)),
		FullName:          req.FullName,
		Role:              req.Role,
		CompanyID:         req.CompanyID,
		EncryptedPassword: hashedPassword,
	}
	if user.Role == models.RoleAdmin {
		user.CompanyID = nil
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	var companyID uint
	if user.CompanyID != nil {
		companyID = *user.CompanyID
	}
	s.auditSvc.Log(ctx, actor, companyID, "CREATE", "User", user.ID, map[string]interface{}{
		"email": user.Email,
		"role":  user.Role,
	})
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, actor Actor, id uint) error {
	if actor.Role != models.RoleAdmin {
		return ErrUnauthorized
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.auditSvc.Log(ctx, actor, 0, "DELETE", "User", id, "Usuario eliminado (soft delete)")
	return nil
}

func (s *UserService) ChangePassword(ctx context.Context, actor Actor, currentPassword, newPassword string) error {
	user, err := s.FindByID(ctx, actor.UserID)
	if err != nil {
		return err
	}
	if !VerifyPassword(currentPassword, user.EncryptedPassword) {
		return ErrInvalidPassword
	}
	if len(newPassword) < 8 {
		return &ValidationError{Fields: []string{"new_password"}}
	}
	hashedPassword, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	user.EncryptedPassword = hashedPassword
	if err := s.repo.Update(ctx, user); err != nil {
		return err
	}
	s.auditSvc.Log(ctx, actor, 0, "CHANGE_PASSWORD", "User", user.ID, "Contraseña actualizada por el usuario")
	return nil
}
