// internal/services/team_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/storedash/backend/internal/apperrors"
	"github.com/storedash/backend/internal/config"
	"github.com/storedash/backend/internal/models"
)

func newTeamService(db *gorm.DB) *TeamService {
	// SMTP is unconfigured in tests, so welcome emails report as not sent.
	notifications := NewNotificationService(config.EmailConfig{}, config.FrontendConfig{})
	return NewTeamService(db, notifications)
}

func validAdminRequest() *CreateAdminRequest {
	return &CreateAdminRequest{
		Name:               "Jordan Lee",
		Email:              "jordan@example.com",
		Password:           "Str0ngPass",
		AssignedCategories: []models.CategoryName{models.CategoryElectronics},
	}
}

func TestCreateAdminAlwaysGetsAdminRole(t *testing.T) {
	db := setupTestDB(t)
	svc := newTeamService(db)

	result, err := svc.CreateAdmin(superAdminPrincipal(), validAdminRequest())
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, result.Admin.Role)
	assert.Equal(t, models.CategoryList{models.CategoryElectronics}, result.Admin.AssignedCategories)

	var stored models.AdminAccount
	require.NoError(t, db.First(&stored, "id = ?", result.Admin.ID).Error)
	assert.Equal(t, models.RoleAdmin, stored.Role)
	assert.NoError(t, stored.CheckPassword("Str0ngPass"))
}

func TestCreateAdminDuplicateEmailIsCaseInsensitive(t *testing.T) {
	db := setupTestDB(t)
	svc := newTeamService(db)

	_, err := svc.CreateAdmin(superAdminPrincipal(), validAdminRequest())
	require.NoError(t, err)

	dup := validAdminRequest()
	dup.Email = "JORDAN@Example.com"
	_, err = svc.CreateAdmin(superAdminPrincipal(), dup)

	var conflict *apperrors.ConflictError
	require.ErrorAs(t, err, &conflict)
}

func TestCreateAdminRequiresCategories(t *testing.T) {
	db := setupTestDB(t)
	svc := newTeamService(db)

	req := validAdminRequest()
	req.AssignedCategories = nil
	_, err := svc.CreateAdmin(superAdminPrincipal(), req)

	var validation *apperrors.ValidationError
	require.ErrorAs(t, err, &validation)
}

func TestCreateAdminRejectsUnknownCategory(t *testing.T) {
	db := setupTestDB(t)
	svc := newTeamService(db)

	req := validAdminRequest()
	req.AssignedCategories = []models.CategoryName{"Gadgets"}
	_, err := svc.CreateAdmin(superAdminPrincipal(), req)

	var validation *apperrors.ValidationError
	require.ErrorAs(t, err, &validation)
}

func TestCreateAdminRejectsWeakPassword(t *testing.T) {
	db := setupTestDB(t)
	svc := newTeamService(db)

	req := validAdminRequest()
	req.Password = "alllowercase"
	_, err := svc.CreateAdmin(superAdminPrincipal(), req)

	var validation *apperrors.ValidationError
	require.ErrorAs(t, err, &validation)
}

func TestTeamManagementRequiresSuperAdmin(t *testing.T) {
	db := setupTestDB(t)
	svc := newTeamService(db)

	regular := adminPrincipal(models.CategoryElectronics)

	_, err := svc.ListAdmins(regular)
	var forbidden *apperrors.ForbiddenError
	require.ErrorAs(t, err, &forbidden)

	_, err = svc.CreateAdmin(regular, validAdminRequest())
	require.ErrorAs(t, err, &forbidden)
}

func TestDeleteAdminNeverDeletesSuperAdmin(t *testing.T) {
	db := setupTestDB(t)
	svc := newTeamService(db)

	target := &models.AdminAccount{
		Name:  "Root",
		Email: "root@example.com",
		Role:  models.RoleSuperAdmin,
	}
	require.NoError(t, target.SetPassword("Str0ngPass"))
	require.NoError(t, db.Create(target).Error)

	err := svc.DeleteAdmin(superAdminPrincipal(), target.ID)
	var forbidden *apperrors.ForbiddenError
	require.ErrorAs(t, err, &forbidden)

	var count int64
	require.NoError(t, db.Model(&models.AdminAccount{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestDeleteAdminRemovesRegularAdmin(t *testing.T) {
	db := setupTestDB(t)
	svc := newTeamService(db)

	result, err := svc.CreateAdmin(superAdminPrincipal(), validAdminRequest())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAdmin(superAdminPrincipal(), result.Admin.ID))

	var count int64
	require.NoError(t, db.Model(&models.AdminAccount{}).Count(&count).Error)
	assert.Zero(t, count)
}
