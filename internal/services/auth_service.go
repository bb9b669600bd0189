// internal/services/auth_service.go
package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storedash/backend/internal/apperrors"
	"github.com/storedash/backend/internal/authz"
	"github.com/storedash/backend/internal/config"
	"github.com/storedash/backend/internal/models"
	"github.com/storedash/backend/internal/utils"
)

type AuthService struct {
	db  *gorm.DB
	jwt config.JWTConfig
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResult struct {
	AccessToken  string               `json:"access_token"`
	RefreshToken string               `json:"refresh_token"`
	Admin        *models.AdminAccount `json:"admin"`
}

type UpdateProfileRequest struct {
	Name  string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Email string `json:"email,omitempty" validate:"omitempty,email"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,strong_password"`
}

func NewAuthService(db *gorm.DB, jwt config.JWTConfig) *AuthService {
	return &AuthService{db: db, jwt: jwt}
}

// Login verifies credentials and issues the token pair. Wrong email and wrong
// password fail identically so the endpoint cannot be used to probe accounts.
func (s *AuthService) Login(req *LoginRequest) (*LoginResult, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, validationError(err)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var admin models.AdminAccount
	if err := s.db.Where("LOWER(email) = ?", email).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewUnauthorized("Invalid email or password")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if err := admin.CheckPassword(req.Password); err != nil {
		return nil, apperrors.NewUnauthorized("Invalid email or password")
	}

	accessToken, err := utils.GenerateJWT(admin.ID, admin.Email, string(admin.Role), s.jwt.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := utils.GenerateRefreshToken(admin.ID, s.jwt.RefreshTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	now := time.Now().UTC()
	if err := s.db.Model(&admin).UpdateColumn("last_login_at", now).Error; err != nil {
		return nil, fmt.Errorf("failed to record login time: %w", err)
	}
	admin.LastLoginAt = &now

	return &LoginResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Admin:        &admin,
	}, nil
}

// Refresh exchanges a valid refresh token for a new token pair. The account
// is re-read so revoked or deleted admins stop refreshing immediately.
func (s *AuthService) Refresh(refreshToken string) (*LoginResult, error) {
	subject, err := utils.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperrors.NewUnauthorized("Invalid or expired refresh token")
	}

	accountID, err := uuid.Parse(subject)
	if err != nil {
		return nil, apperrors.NewUnauthorized("Invalid or expired refresh token")
	}

	var admin models.AdminAccount
	if err := s.db.First(&admin, "id = ?", accountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewUnauthorized("Account no longer exists")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	accessToken, err := utils.GenerateJWT(admin.ID, admin.Email, string(admin.Role), s.jwt.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	newRefreshToken, err := utils.GenerateRefreshToken(admin.ID, s.jwt.RefreshTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &LoginResult{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
		Admin:        &admin,
	}, nil
}

func (s *AuthService) GetProfile(principal authz.Principal) (*models.AdminAccount, error) {
	var admin models.AdminAccount
	if err := s.db.First(&admin, "id = ?", principal.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("Account")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &admin, nil
}

func (s *AuthService) UpdateProfile(principal authz.Principal, req *UpdateProfileRequest) (*models.AdminAccount, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, validationError(err)
	}

	var admin models.AdminAccount
	if err := s.db.First(&admin, "id = ?", principal.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("Account")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	updates := make(map[string]interface{})
	if req.Name != "" {
		updates["name"] = strings.TrimSpace(req.Name)
	}
	if req.Email != "" {
		email := strings.ToLower(strings.TrimSpace(req.Email))
		if email != admin.Email {
			var existing models.AdminAccount
			err := s.db.Where("LOWER(email) = ? AND id != ?", email, admin.ID).First(&existing).Error
			if err == nil {
				return nil, apperrors.NewConflict("An admin with this email already exists")
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("database error: %w", err)
			}
			updates["email"] = email
		}
	}

	if len(updates) > 0 {
		if err := s.db.Model(&admin).Updates(updates).Error; err != nil {
			if isDuplicateKey(err) {
				return nil, apperrors.NewConflict("An admin with this email already exists")
			}
			return nil, fmt.Errorf("failed to update profile: %w", err)
		}
	}

	if err := s.db.First(&admin, "id = ?", principal.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload account: %w", err)
	}

	return &admin, nil
}

func (s *AuthService) ChangePassword(principal authz.Principal, req *ChangePasswordRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return validationError(err)
	}

	var admin models.AdminAccount
	if err := s.db.First(&admin, "id = ?", principal.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NewNotFound("Account")
		}
		return fmt.Errorf("database error: %w", err)
	}

	if err := admin.CheckPassword(req.CurrentPassword); err != nil {
		return apperrors.NewUnauthorized("Current password is incorrect")
	}

	if err := admin.SetPassword(req.NewPassword); err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.db.Model(&admin).UpdateColumn("password_hash", admin.PasswordHash).Error; err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}
