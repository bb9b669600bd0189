// internal/handlers/team_handler.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/storedash/backend/internal/services"
	"github.com/storedash/backend/internal/utils"
)

type TeamHandler struct {
	teamService *services.TeamService
}

func NewTeamHandler(teamService *services.TeamService) *TeamHandler {
	return &TeamHandler{teamService: teamService}
}

func (h *TeamHandler) ListAdmins(c *gin.Context) {
	principal, ok := utils.GetPrincipal(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	admins, err := h.teamService.ListAdmins(principal)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, admins)
}

func (h *TeamHandler) CreateAdmin(c *gin.Context) {
	principal, ok := utils.GetPrincipal(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.CreateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}

	result, err := h.teamService.CreateAdmin(principal, &req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.CreatedResponse(c, result)
}

func (h *TeamHandler) DeleteAdmin(c *gin.Context) {
	principal, ok := utils.GetPrincipal(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid admin ID", nil)
		return
	}

	if err := h.teamService.DeleteAdmin(principal, id); err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"message": "Admin deleted successfully"})
}
