// internal/services/team_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/storedash/backend/internal/apperrors"
	"github.com/storedash/backend/internal/authz"
	"github.com/storedash/backend/internal/models"
	"github.com/storedash/backend/internal/utils"
)

type TeamService struct {
	db            *gorm.DB
	notifications *NotificationService
}

type CreateAdminRequest struct {
	Name               string                `json:"name" validate:"required,min=2,max=100"`
	Email              string                `json:"email" validate:"required,email"`
	Password           string                `json:"password" validate:"required,strong_password"`
	AssignedCategories []models.CategoryName `json:"assigned_categories" validate:"required,min=1"`
	SendEmail          bool                  `json:"send_email"`
}

// CreateAdminResult bundles the created account with the welcome email
// outcome so the inviter knows whether credentials reached the new admin.
type CreateAdminResult struct {
	Admin *models.AdminAccount `json:"admin"`
	Email EmailResult          `json:"email"`
}

func NewTeamService(db *gorm.DB, notifications *NotificationService) *TeamService {
	return &TeamService{db: db, notifications: notifications}
}

func (s *TeamService) ListAdmins(principal authz.Principal) ([]models.AdminAccount, error) {
	if !authz.CanManageTeam(principal) {
		return nil, apperrors.NewForbidden("Only super admins can manage the team")
	}

	var admins []models.AdminAccount
	if err := s.db.Order("created_at DESC").Find(&admins).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch admins: %w", err)
	}

	return admins, nil
}

// CreateAdmin always creates a regular admin. The role is not accepted from
// the request: the only super-admin is the seeded bootstrap account.
func (s *TeamService) CreateAdmin(principal authz.Principal, req *CreateAdminRequest) (*CreateAdminResult, error) {
	if !authz.CanManageTeam(principal) {
		return nil, apperrors.NewForbidden("Only super admins can manage the team")
	}

	if err := utils.ValidateStruct(req); err != nil {
		return nil, validationError(err)
	}

	for _, category := range req.AssignedCategories {
		if !category.IsValid() {
			return nil, apperrors.NewValidation(fmt.Sprintf("Unknown category %q", category))
		}
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var existing models.AdminAccount
	err := s.db.Where("LOWER(email) = ?", email).First(&existing).Error
	if err == nil {
		return nil, apperrors.NewConflict("An admin with this email already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error: %w", err)
	}

	admin := &models.AdminAccount{
		Name:               strings.TrimSpace(req.Name),
		Email:              email,
		Role:               models.RoleAdmin,
		AssignedCategories: models.CategoryList(req.AssignedCategories),
	}
	if err := admin.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.db.Create(admin).Error; err != nil {
		// The pre-check races with concurrent creates; the unique index is
		// the real guard.
		if isDuplicateKey(err) {
			return nil, apperrors.NewConflict("An admin with this email already exists")
		}
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}

	result := &CreateAdminResult{Admin: admin}
	if req.SendEmail {
		result.Email = s.notifications.SendWelcomeEmail(admin, req.Password, principal.Name)
	}

	return result, nil
}

func (s *TeamService) DeleteAdmin(principal authz.Principal, id uuid.UUID) error {
	if !authz.CanManageTeam(principal) {
		return apperrors.NewForbidden("Only super admins can manage the team")
	}

	var admin models.AdminAccount
	if err := s.db.First(&admin, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NewNotFound("Admin")
		}
		return fmt.Errorf("database error: %w", err)
	}

	if !authz.CanDeleteAccount(principal, admin.Role) {
		return apperrors.NewForbidden("Cannot delete super admin")
	}

	if err := s.db.Delete(&admin).Error; err != nil {
		return fmt.Errorf("failed to delete admin: %w", err)
	}

	return nil
}

// isDuplicateKey detects a unique-constraint violation whether it arrives
// translated by gorm or as a raw driver error.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
