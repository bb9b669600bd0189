// internal/authz/policy_test.go
package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/storedash/backend/internal/models"
)

func superAdmin() Principal {
	return Principal{Role: models.RoleSuperAdmin}
}

func admin(categories ...models.CategoryName) Principal {
	return Principal{Role: models.RoleAdmin, AssignedCategories: models.CategoryList(categories)}
}

func TestCanReadCategory(t *testing.T) {
	tests := []struct {
		name      string
		principal Principal
		category  models.CategoryName
		want      bool
	}{
		{"super admin sees everything", superAdmin(), models.CategoryFood, true},
		{"admin sees assigned", admin(models.CategoryElectronics), models.CategoryElectronics, true},
		{"admin blocked outside assignment", admin(models.CategoryElectronics), models.CategoryClothing, false},
		{"admin with empty assignment sees nothing", admin(), models.CategoryElectronics, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanReadCategory(tt.principal, tt.category))
			// Writes follow the same rule as reads.
			assert.Equal(t, tt.want, CanWriteCategory(tt.principal, tt.category))
		})
	}
}

func TestVisibleCategoryFilter(t *testing.T) {
	all := VisibleCategoryFilter(superAdmin())
	assert.True(t, all.All)
	assert.True(t, all.Matches(models.CategorySports))

	none := VisibleCategoryFilter(admin())
	assert.True(t, none.None)
	assert.False(t, none.Matches(models.CategorySports))

	scoped := VisibleCategoryFilter(admin(models.CategoryHome, models.CategoryFood))
	assert.False(t, scoped.All)
	assert.False(t, scoped.None)
	assert.True(t, scoped.Matches(models.CategoryHome))
	assert.False(t, scoped.Matches(models.CategorySports))
}

func TestVisibleCategoryFilterCopiesAssignments(t *testing.T) {
	p := admin(models.CategoryHome)
	filter := VisibleCategoryFilter(p)

	filter.Categories[0] = models.CategorySports
	assert.Equal(t, models.CategoryHome, p.AssignedCategories[0])
}

func TestCanManageTeam(t *testing.T) {
	assert.True(t, CanManageTeam(superAdmin()))
	assert.False(t, CanManageTeam(admin(models.CategoryElectronics)))
}

func TestCanDeleteAccount(t *testing.T) {
	assert.True(t, CanDeleteAccount(superAdmin(), models.RoleAdmin))
	assert.False(t, CanDeleteAccount(superAdmin(), models.RoleSuperAdmin))
	assert.False(t, CanDeleteAccount(admin(models.CategoryElectronics), models.RoleAdmin))
}
