package handler

import (
	reportapp "github.com/stockpos/backend/internal/application/report"
	"github.com/gin-gonic/gin"
)

// ReportHandler handles sales and customer rollup endpoints
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// RegisterRoutes registers all report routes
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	{
		reports.GET("/product-sales", h.ProductSales)
		reports.GET("/customer-summaries", h.CustomerSummaries)
	}
}

// ProductSales godoc
// @Summary      Product sales rollup
// @Description  Per-product per-day sales aggregated over a half-open date window [from, to)
// @Tags         reports
// @Produce      json
// @Param        from query string true "Window start (inclusive), YYYY-MM-DD"
// @Param        to query string true "Window end (exclusive), YYYY-MM-DD"
// @Success      200 {object} dto.Response{data=[]report.ProductSalesResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /reports/product-sales [get]
func (h *ReportHandler) ProductSales(c *gin.Context) {
	var filter reportapp.ReportWindowFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	rows, err := h.reportService.ProductSales(c.Request.Context(), filter.From, filter.To)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, rows)
}

// CustomerSummaries godoc
// @Summary      Customer invoice rollup
// @Description  Per-customer invoice totals over a half-open date window [from, to)
// @Tags         reports
// @Produce      json
// @Param        from query string true "Window start (inclusive), YYYY-MM-DD"
// @Param        to query string true "Window end (exclusive), YYYY-MM-DD"
// @Success      200 {object} dto.Response{data=[]report.CustomerSummaryResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /reports/customer-summaries [get]
func (h *ReportHandler) CustomerSummaries(c *gin.Context) {
	var filter reportapp.ReportWindowFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	rows, err := h.reportService.CustomerSummaries(c.Request.Context(), filter.From, filter.To)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, rows)
}
