package handler

import (
	inventoryapp "github.com/stockpos/backend/internal/application/inventory"
	"github.com/gin-gonic/gin"
)

// InventoryHandler handles stock adjustment and movement history endpoints
type InventoryHandler struct {
	BaseHandler
	inventoryService *inventoryapp.InventoryService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(inventoryService *inventoryapp.InventoryService) *InventoryHandler {
	return &InventoryHandler{
		inventoryService: inventoryService,
	}
}

// RegisterRoutes registers all inventory routes
func (h *InventoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	inventory := rg.Group("/inventory")
	{
		inventory.POST("/adjust", h.Adjust)
		inventory.GET("/movements", h.History)
		inventory.GET("/products/:id/reconcile", h.Reconcile)
	}
}

// Adjust godoc
// @Summary      Adjust stock for a product
// @Description  Applies a signed delta to a product's stock and records the movement
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        request body inventory.AdjustStockRequest true "Stock adjustment request"
// @Success      200 {object} dto.Response{data=inventory.AdjustStockResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /inventory/adjust [post]
func (h *InventoryHandler) Adjust(c *gin.Context) {
	var req inventoryapp.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.inventoryService.Adjust(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// History godoc
// @Summary      List stock movements
// @Tags         inventory
// @Produce      json
// @Param        product_id query int false "Filter by product"
// @Param        reason query string false "Filter by movement reason"
// @Param        from query string false "Window start (inclusive), YYYY-MM-DD"
// @Param        to query string false "Window end (exclusive), YYYY-MM-DD"
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200 {object} dto.Response{data=[]inventory.MovementResponse}
// @Router       /inventory/movements [get]
func (h *InventoryHandler) History(c *gin.Context) {
	var filter inventoryapp.MovementListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	movements, total, err := h.inventoryService.History(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, movements, total, filter.Page, filter.PageSize)
}

// Reconcile godoc
// @Summary      Reconcile a product's stock against its movement ledger
// @Description  Replays the full movement history and compares it with the stored stock level
// @Tags         inventory
// @Produce      json
// @Param        id path int true "Product ID"
// @Success      200 {object} dto.Response{data=inventory.ReconcileResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /inventory/products/{id}/reconcile [get]
func (h *InventoryHandler) Reconcile(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	resp, err := h.inventoryService.Reconcile(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
