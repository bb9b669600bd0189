// internal/middleware/auth.go
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storedash/backend/internal/authz"
	"github.com/storedash/backend/internal/models"
	"github.com/storedash/backend/internal/utils"
)

// AuthRequired validates the bearer token and resolves the caller into a
// Principal. The account is loaded fresh on every request so a category
// reassignment or role change takes effect immediately, not at next login.
func AuthRequired(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.UnauthorizedResponse(c, "")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.UnauthorizedResponse(c, "Invalid authorization header")
			c.Abort()
			return
		}

		claims, err := utils.ValidateJWT(parts[1])
		if err != nil {
			utils.UnauthorizedResponse(c, "Invalid or expired token")
			c.Abort()
			return
		}

		accountID, err := uuid.Parse(claims.AccountID)
		if err != nil {
			utils.UnauthorizedResponse(c, "Invalid or expired token")
			c.Abort()
			return
		}

		var account models.AdminAccount
		if err := db.First(&account, "id = ?", accountID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.UnauthorizedResponse(c, "Account no longer exists")
			} else {
				utils.InternalErrorResponse(c, "")
			}
			c.Abort()
			return
		}

		utils.SetPrincipal(c, authz.Principal{
			ID:                 account.ID,
			Name:               account.Name,
			Email:              account.Email,
			Role:               account.Role,
			AssignedCategories: account.AssignedCategories,
		})
		c.Next()
	}
}

// SuperAdminRequired gates team-management and settings routes.
func SuperAdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, exists := utils.GetPrincipal(c)
		if !exists || !authz.CanManageTeam(principal) {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Only super admins can perform this action",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
