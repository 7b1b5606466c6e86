package handlers

import (
	"net/http"
	"time"

	"pharmapos/internal/store"

	"github.com/gin-gonic/gin"
)

// GetDashboard feeds the dashboard: unit count, low-stock alerts and
// the retail value of the shelves.
func (h *Handler) GetDashboard(c *gin.Context) {
	metrics, err := store.GetDashboardMetrics(h.DB)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, metrics)
}

// GetSalesReport returns today's and this month's profit plus
// all-time totals and the most recent sales.
func (h *Handler) GetSalesReport(c *gin.Context) {
	summary, err := store.GetProfitSummary(h.DB, time.Now())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GetStockValuation values the whole inventory at purchase price,
// grouped by category.
func (h *Handler) GetStockValuation(c *gin.Context) {
	report, err := store.GetStockValuation(h.DB)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// GetSales returns the sales history, optionally filtered by
// ?search= over bill id and cashier name.
func (h *Handler) GetSales(c *gin.Context) {
	sales, err := store.ListSales(h.DB, c.Query("search"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sales)
}

// GetSale returns one sale with its line snapshots.
func (h *Handler) GetSale(c *gin.Context) {
	sale, err := store.GetSale(h.DB, c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sale)
}
