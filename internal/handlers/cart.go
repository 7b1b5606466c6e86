package handlers

import (
	"net/http"

	"pharmapos/internal/middleware"
	"pharmapos/pkg/logger"

	"github.com/gin-gonic/gin"
)

func sessionUserID(c *gin.Context) uint {
	return c.MustGet(middleware.CtxUserID).(uint)
}

// GetCart returns the session's basket with computed totals.
func (h *Handler) GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, h.Engine.CartView(sessionUserID(c)))
}

type AddToCartRequest struct {
	ItemID string `json:"item_id" binding:"required"`
}

// AddToCart puts one unit of an item into the basket.
func (h *Handler) AddToCart(c *gin.Context) {
	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	view, err := h.Engine.AddItem(sessionUserID(c), req.ItemID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// QuantityRequest carries a signed delta. Zero is allowed and is a
// no-op.
type QuantityRequest struct {
	Delta int `json:"delta"`
}

// UpdateCartLine applies a signed quantity delta to one line.
func (h *Handler) UpdateCartLine(c *gin.Context) {
	var req QuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	view, err := h.Engine.UpdateQuantity(sessionUserID(c), c.Param("id"), req.Delta)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// RemoveCartLine drops a line from the basket.
func (h *Handler) RemoveCartLine(c *gin.Context) {
	c.JSON(http.StatusOK, h.Engine.RemoveLine(sessionUserID(c), c.Param("id")))
}

// ClearCart abandons the basket without touching stock.
func (h *Handler) ClearCart(c *gin.Context) {
	h.Engine.ClearCart(sessionUserID(c))
	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}

type CheckoutRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required"`
	// AmountPaid is the raw text from the cash field; the engine
	// parses it. Card checkouts may leave it empty.
	AmountPaid string `json:"amount_paid"`
}

// Checkout finalizes the sale and returns the receipt.
func (h *Handler) Checkout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	cashier := c.MustGet(middleware.CtxFullName).(string)
	receipt, err := h.Engine.Checkout(sessionUserID(c), cashier, req.PaymentMethod, req.AmountPaid)
	if err != nil {
		fail(c, err)
		return
	}

	logger.Logger.Info().
		Str("bill_id", receipt.BillID).
		Str("cashier", receipt.Cashier).
		Str("total", receipt.Total.StringFixed(2)).
		Str("payment_method", receipt.PaymentMethod).
		Msg("sale completed")

	c.JSON(http.StatusOK, receipt)
}
