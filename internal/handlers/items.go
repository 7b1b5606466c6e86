package handlers

import (
	"net/http"

	"pharmapos/internal/store"

	"github.com/gin-gonic/gin"
)

// GetItems lists the inventory, optionally filtered by ?search= over
// id, name and category.
func (h *Handler) GetItems(c *gin.Context) {
	items, err := store.ListItems(h.DB, c.Query("search"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetItem returns a single inventory record.
func (h *Handler) GetItem(c *gin.Context) {
	item, err := store.GetItem(h.DB, c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// AddItem creates a new inventory record from the form payload.
func (h *Handler) AddItem(c *gin.Context) {
	var input store.ItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	item, err := store.CreateItem(h.DB, input)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// UpdateItem overwrites an item's editable fields. The id in the URL
// wins; ids are immutable.
func (h *Handler) UpdateItem(c *gin.Context) {
	var input store.ItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	item, err := store.UpdateItem(h.DB, c.Param("id"), input)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteItem removes an item from the inventory.
func (h *Handler) DeleteItem(c *gin.Context) {
	if err := store.DeleteItem(h.DB, c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item deleted successfully"})
}
