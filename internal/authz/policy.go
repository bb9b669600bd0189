// internal/authz/policy.go
package authz

import (
	"github.com/google/uuid"

	"github.com/storedash/backend/internal/models"
)

// Principal is the authenticated caller for a single request. It is resolved
// once by the auth middleware and passed explicitly into every service call.
type Principal struct {
	ID                 uuid.UUID
	Name               string
	Email              string
	Role               models.AdminRole
	AssignedCategories models.CategoryList
}

func (p Principal) IsSuperAdmin() bool {
	return p.Role == models.RoleSuperAdmin
}

// CanReadCategory reports whether the principal may see records in a category.
func CanReadCategory(p Principal, category models.CategoryName) bool {
	if p.IsSuperAdmin() {
		return true
	}
	return p.AssignedCategories.Contains(category)
}

// CanWriteCategory reports whether the principal may mutate records in a
// category. There is no separate write-only grant, so the rule matches reads.
func CanWriteCategory(p Principal, category models.CategoryName) bool {
	return CanReadCategory(p, category)
}

// CategoryFilter describes which categories are visible to a principal.
// Exactly one of All/None is set, or Categories is non-empty.
type CategoryFilter struct {
	All        bool
	None       bool
	Categories []models.CategoryName
}

// VisibleCategoryFilter returns match-all for super-admins and the assigned
// set for admins. An admin with no assigned categories gets match-none, not
// match-all: a misconfigured account must never see the whole catalog.
func VisibleCategoryFilter(p Principal) CategoryFilter {
	if p.IsSuperAdmin() {
		return CategoryFilter{All: true}
	}
	if len(p.AssignedCategories) == 0 {
		return CategoryFilter{None: true}
	}
	return CategoryFilter{Categories: append([]models.CategoryName(nil), p.AssignedCategories...)}
}

func (f CategoryFilter) Matches(category models.CategoryName) bool {
	if f.All {
		return true
	}
	if f.None {
		return false
	}
	for _, c := range f.Categories {
		if c == category {
			return true
		}
	}
	return false
}

// CanManageTeam reports whether the principal may list or mutate admin
// accounts.
func CanManageTeam(p Principal) bool {
	return p.IsSuperAdmin()
}

// CanDeleteAccount reports whether the principal may delete the target
// account. Super-admin accounts are never deletable through this path.
func CanDeleteAccount(p Principal, targetRole models.AdminRole) bool {
	return CanManageTeam(p) && targetRole != models.RoleSuperAdmin
}
