package handler

import (
	tradeapp "github.com/stockpos/backend/internal/application/trade"
	"github.com/gin-gonic/gin"
)

// InvoiceHandler handles invoice lifecycle API endpoints
type InvoiceHandler struct {
	BaseHandler
	invoiceService *tradeapp.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(invoiceService *tradeapp.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
	}
}

// RegisterRoutes registers all invoice routes
func (h *InvoiceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	invoices := rg.Group("/invoices")
	{
		invoices.POST("", h.Create)
		invoices.GET("", h.List)
		invoices.GET("/:id", h.GetByID)
		invoices.POST("/:id/lines", h.AddLine)
		invoices.PUT("/:id/lines/:productId", h.UpdateLine)
		invoices.DELETE("/:id/lines/:productId", h.RemoveLine)
		invoices.POST("/:id/commit", h.Commit)
		invoices.POST("/:id/pay", h.Pay)
		invoices.POST("/:id/mark-partially-paid", h.MarkPartiallyPaid)
		invoices.POST("/:id/mark-overdue", h.MarkOverdue)
		invoices.POST("/:id/cancel", h.Cancel)
	}
}

// Create godoc
// @Summary      Open a new draft invoice
// @Description  Creates a draft invoice, optionally pre-filled with lines. Stock is untouched until commit.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        request body trade.CreateInvoiceRequest true "Invoice creation request"
// @Success      201 {object} dto.Response{data=trade.InvoiceResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /invoices [post]
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req tradeapp.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.invoiceService.CreateDraft(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// GetByID godoc
// @Summary      Get an invoice by ID
// @Tags         invoices
// @Produce      json
// @Param        id path int true "Invoice ID"
// @Success      200 {object} dto.Response{data=trade.InvoiceResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	resp, err := h.invoiceService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List godoc
// @Summary      List invoices
// @Tags         invoices
// @Produce      json
// @Param        type query string false "Invoice type (SALE, PURCHASE, REFUND)"
// @Param        status query string false "Invoice status"
// @Param        customer_id query int false "Filter by customer"
// @Param        from query string false "Window start (inclusive), YYYY-MM-DD"
// @Param        to query string false "Window end (exclusive), YYYY-MM-DD"
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200 {object} dto.Response{data=[]trade.InvoiceResponse}
// @Router       /invoices [get]
func (h *InvoiceHandler) List(c *gin.Context) {
	var filter tradeapp.InvoiceListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	invoices, total, err := h.invoiceService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, invoices, total, filter.Page, filter.PageSize)
}

// AddLine godoc
// @Summary      Add a line to a draft invoice
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        id path int true "Invoice ID"
// @Param        request body trade.LineRequest true "Line to add"
// @Success      200 {object} dto.Response{data=trade.InvoiceResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /invoices/{id}/lines [post]
func (h *InvoiceHandler) AddLine(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req tradeapp.LineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.invoiceService.AddLine(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// UpdateLine godoc
// @Summary      Update a line on a draft invoice
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        id path int true "Invoice ID"
// @Param        productId path int true "Product ID of the line"
// @Param        request body trade.UpdateLineRequest true "Line changes"
// @Success      200 {object} dto.Response{data=trade.InvoiceResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /invoices/{id}/lines/{productId} [put]
func (h *InvoiceHandler) UpdateLine(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	productID, ok := parseInt64Param(c, "productId")
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req tradeapp.UpdateLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.invoiceService.UpdateLine(c.Request.Context(), id, productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// RemoveLine godoc
// @Summary      Remove a line from a draft invoice
// @Tags         invoices
// @Produce      json
// @Param        id path int true "Invoice ID"
// @Param        productId path int true "Product ID of the line"
// @Success      200 {object} dto.Response{data=trade.InvoiceResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /invoices/{id}/lines/{productId} [delete]
func (h *InvoiceHandler) RemoveLine(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	productID, ok := parseInt64Param(c, "productId")
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	resp, err := h.invoiceService.RemoveLine(c.Request.Context(), id, productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Commit godoc
// @Summary      Commit a draft invoice
// @Description  Applies the invoice to stock and moves it to PENDING, or directly to PAID when a payment method is supplied
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        id path int true "Invoice ID"
// @Param        request body trade.CommitInvoiceRequest false "Optional immediate payment"
// @Success      200 {object} dto.Response{data=trade.InvoiceResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /invoices/{id}/commit [post]
func (h *InvoiceHandler) Commit(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	// The payment method is optional, so an empty body is accepted.
	var req tradeapp.CommitInvoiceRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BadRequest(c, err.Error())
			return
		}
	}

	resp, err := h.invoiceService.Commit(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Pay godoc
// @Summary      Settle a committed invoice
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        id path int true "Invoice ID"
// @Param        request body trade.PayInvoiceRequest true "Payment details"
// @Success      200 {object} dto.Response{data=trade.InvoiceResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /invoices/{id}/pay [post]
func (h *InvoiceHandler) Pay(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req tradeapp.PayInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.invoiceService.Pay(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// MarkPartiallyPaid godoc
// @Summary      Record a partial settlement on a committed invoice
// @Tags         invoices
// @Produce      json
// @Param        id path int true "Invoice ID"
// @Success      200 {object} dto.Response{data=trade.InvoiceResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /invoices/{id}/mark-partially-paid [post]
func (h *InvoiceHandler) MarkPartiallyPaid(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	resp, err := h.invoiceService.MarkPartiallyPaid(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// MarkOverdue godoc
// @Summary      Flag a committed invoice as overdue
// @Tags         invoices
// @Produce      json
// @Param        id path int true "Invoice ID"
// @Success      200 {object} dto.Response{data=trade.InvoiceResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /invoices/{id}/mark-overdue [post]
func (h *InvoiceHandler) MarkOverdue(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	resp, err := h.invoiceService.MarkOverdue(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Cancel godoc
// @Summary      Cancel an invoice
// @Description  Cancelling a committed invoice writes compensating stock movements; drafts are cancelled in place
// @Tags         invoices
// @Produce      json
// @Param        id path int true "Invoice ID"
// @Success      200 {object} dto.Response{data=trade.InvoiceResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /invoices/{id}/cancel [post]
func (h *InvoiceHandler) Cancel(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	resp, err := h.invoiceService.Cancel(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
