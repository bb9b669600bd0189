// internal/services/auth_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/storedash/backend/internal/apperrors"
	"github.com/storedash/backend/internal/authz"
	"github.com/storedash/backend/internal/config"
	"github.com/storedash/backend/internal/models"
)

func newAuthService(db *gorm.DB) *AuthService {
	return NewAuthService(db, config.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenTTL:  1,
		RefreshTokenTTL: 2,
	})
}

func seedAccount(t *testing.T, db *gorm.DB, email, password string) *models.AdminAccount {
	t.Helper()

	account := &models.AdminAccount{
		Name:               "Casey Kim",
		Email:              email,
		Role:               models.RoleAdmin,
		AssignedCategories: models.CategoryList{models.CategoryElectronics},
	}
	require.NoError(t, account.SetPassword(password))
	require.NoError(t, db.Create(account).Error)
	return account
}

func principalFor(account *models.AdminAccount) authz.Principal {
	return authz.Principal{
		ID:                 account.ID,
		Name:               account.Name,
		Email:              account.Email,
		Role:               account.Role,
		AssignedCategories: account.AssignedCategories,
	}
}

func TestLoginSuccessRecordsLastLogin(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)
	seedAccount(t, db, "casey@example.com", "Str0ngPass")

	result, err := svc.Login(&LoginRequest{Email: "Casey@Example.com", Password: "Str0ngPass"})
	require.NoError(t, err)

	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	require.NotNil(t, result.Admin.LastLoginAt)
}

func TestLoginFailsIdenticallyForBadEmailAndBadPassword(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)
	seedAccount(t, db, "casey@example.com", "Str0ngPass")

	_, badEmailErr := svc.Login(&LoginRequest{Email: "nobody@example.com", Password: "Str0ngPass"})
	_, badPasswordErr := svc.Login(&LoginRequest{Email: "casey@example.com", Password: "WrongPass1"})

	var unauthorized *apperrors.UnauthorizedError
	require.ErrorAs(t, badEmailErr, &unauthorized)
	require.ErrorAs(t, badPasswordErr, &unauthorized)
	assert.Equal(t, badEmailErr.Error(), badPasswordErr.Error())
}

func TestRefreshIssuesNewTokenPair(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)
	seedAccount(t, db, "casey@example.com", "Str0ngPass")

	login, err := svc.Login(&LoginRequest{Email: "casey@example.com", Password: "Str0ngPass"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, login.Admin.ID, refreshed.Admin.ID)

	_, err = svc.Refresh("not-a-token")
	var unauthorized *apperrors.UnauthorizedError
	require.ErrorAs(t, err, &unauthorized)
}

func TestChangePasswordVerifiesCurrent(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)
	account := seedAccount(t, db, "casey@example.com", "Str0ngPass")
	principal := principalFor(account)

	err := svc.ChangePassword(principal, &ChangePasswordRequest{
		CurrentPassword: "WrongPass1",
		NewPassword:     "N3wStrongPass",
	})
	var unauthorized *apperrors.UnauthorizedError
	require.ErrorAs(t, err, &unauthorized)

	require.NoError(t, svc.ChangePassword(principal, &ChangePasswordRequest{
		CurrentPassword: "Str0ngPass",
		NewPassword:     "N3wStrongPass",
	}))

	_, err = svc.Login(&LoginRequest{Email: "casey@example.com", Password: "N3wStrongPass"})
	assert.NoError(t, err)
}

func TestUpdateProfileEmailConflict(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)
	account := seedAccount(t, db, "casey@example.com", "Str0ngPass")

	other := &models.AdminAccount{Name: "Riley", Email: "riley@example.com", Role: models.RoleAdmin}
	require.NoError(t, other.SetPassword("Str0ngPass"))
	require.NoError(t, db.Create(other).Error)

	_, err := svc.UpdateProfile(principalFor(account), &UpdateProfileRequest{Email: "RILEY@example.com"})
	var conflict *apperrors.ConflictError
	require.ErrorAs(t, err, &conflict)

	updated, err := svc.UpdateProfile(principalFor(account), &UpdateProfileRequest{Name: "Casey K."})
	require.NoError(t, err)
	assert.Equal(t, "Casey K.", updated.Name)
}
