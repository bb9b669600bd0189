// internal/handlers/sale_handler.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/storedash/backend/internal/services"
	"github.com/storedash/backend/internal/utils"
)

type SaleHandler struct {
	saleService *services.SaleService
}

type createSaleRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
}

func NewSaleHandler(saleService *services.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

func (h *SaleHandler) ListSales(c *gin.Context) {
	principal, ok := utils.GetPrincipal(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	sales, err := h.saleService.ListSales(principal)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, sales)
}

func (h *SaleHandler) CreateSale(c *gin.Context) {
	principal, ok := utils.GetPrincipal(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req createSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Product and quantity are required", nil)
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID", nil)
		return
	}

	sale, err := h.saleService.RecordSale(principal, productID, req.Quantity)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.CreatedResponse(c, sale)
}

func (h *SaleHandler) DeleteSale(c *gin.Context) {
	principal, ok := utils.GetPrincipal(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid sale ID", nil)
		return
	}

	if err := h.saleService.DeleteSale(principal, id); err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"message": "Sale deleted and stock restored"})
}
