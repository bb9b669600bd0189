// internal/handlers/upload_handler.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/storedash/backend/internal/services"
	"github.com/storedash/backend/internal/utils"
)

type UploadHandler struct {
	storageService *services.StorageService
}

func NewUploadHandler(storageService *services.StorageService) *UploadHandler {
	return &UploadHandler{storageService: storageService}
}

func (h *UploadHandler) UploadProductImage(c *gin.Context) {
	if _, ok := utils.GetPrincipal(c); !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		utils.BadRequestResponse(c, "Image file is required", nil)
		return
	}
	defer file.Close()

	result, err := h.storageService.UploadProductImage(file, header)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.CreatedResponse(c, result)
}
