// internal/handlers/settings_handler.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/storedash/backend/internal/utils"
)

type SettingsHandler struct{}

// CompanySettings is accepted and echoed back. Settings live client-side for
// now; the endpoint exists so the frontend has a stable place to validate
// against once persistence lands.
type CompanySettings struct {
	CompanyName       string `json:"company_name" binding:"required"`
	LowStockThreshold int    `json:"low_stock_threshold" binding:"required,gt=0"`
	Currency          string `json:"currency" binding:"required,len=3"`
}

func NewSettingsHandler() *SettingsHandler {
	return &SettingsHandler{}
}

func (h *SettingsHandler) UpdateCompanySettings(c *gin.Context) {
	var settings CompanySettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		utils.BadRequestResponse(c, "Invalid settings payload", nil)
		return
	}

	utils.SuccessResponse(c, settings)
}
