// internal/services/scope.go
package services

import (
	"gorm.io/gorm"

	"github.com/storedash/backend/internal/authz"
)

// applyCategoryScope narrows a query to the categories visible to the caller.
// The second return value is false when the filter matches nothing, in which
// case the query must not run at all and the caller returns an empty set.
func applyCategoryScope(db *gorm.DB, filter authz.CategoryFilter, column string) (*gorm.DB, bool) {
	if filter.None {
		return db, false
	}
	if filter.All {
		return db, true
	}
	return db.Where(column+" IN ?", filter.Categories), true
}
