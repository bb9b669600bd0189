// internal/handlers/auth_handler.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/storedash/backend/internal/services"
	"github.com/storedash/backend/internal/utils"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}

	result, err := h.authService.Login(&req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, result)
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Refresh token is required", nil)
		return
	}

	result, err := h.authService.Refresh(req.RefreshToken)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, result)
}

func (h *AuthHandler) GetProfile(c *gin.Context) {
	principal, ok := utils.GetPrincipal(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	admin, err := h.authService.GetProfile(principal)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, admin)
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	principal, ok := utils.GetPrincipal(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}

	admin, err := h.authService.UpdateProfile(principal, &req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, admin)
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	principal, ok := utils.GetPrincipal(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}

	if err := h.authService.ChangePassword(principal, &req); err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"message": "Password updated successfully"})
}
