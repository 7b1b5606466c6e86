package store

import (
	"errors"
	"fmt"
	"strings"

	"pharmapos/internal/models"

	"gorm.io/gorm"
)

// ItemInput is what the inventory form submits. Prices arrive as
// strings because the form fields are free text; validation converts
// them.
type ItemInput struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Category      string `json:"category"`
	PurchasePrice string `json:"purchase_price"`
	Price         string `json:"price"`
	Stock         *int   `json:"stock"`
}

func (in ItemInput) validate(requireID bool) (*models.Item, error) {
	verr := NewValidationError()

	item := &models.Item{
		ID:       strings.TrimSpace(in.ID),
		Name:     strings.TrimSpace(in.Name),
		Category: strings.TrimSpace(in.Category),
	}

	if requireID && item.ID == "" {
		verr.Add("id", "Item ID is required")
	}
	if item.Name == "" {
		verr.Add("name", "Item name is required")
	}
	if item.Category == "" {
		verr.Add("category", "Category is required")
	}

	if pp, err := parsePrice(in.PurchasePrice); err != nil || !pp.IsPositive() {
		verr.Add("purchase_price", "Valid purchase price is required")
	} else {
		item.PurchasePrice = pp
	}
	if p, err := parsePrice(in.Price); err != nil || !p.IsPositive() {
		verr.Add("price", "Valid sale price is required")
	} else {
		item.Price = p
	}
	if in.Stock == nil || *in.Stock < 0 {
		verr.Add("stock", "Valid stock quantity is required")
	} else {
		item.Stock = *in.Stock
	}

	if !verr.Empty() {
		return nil, verr
	}
	return item, nil
}

// ListItems returns the inventory, optionally filtered by a
// case-insensitive substring over id, name and category.
func ListItems(db *gorm.DB, search string) ([]models.Item, error) {
	var items []models.Item

	q := db.Order("id")
	if s := strings.TrimSpace(search); s != "" {
		pattern := "%" + strings.ToLower(s) + "%"
		q = q.Where(
			"LOWER(id) LIKE ? OR LOWER(name) LIKE ? OR LOWER(category) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	if err := q.Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

// GetItem fetches a single item by its id.
func GetItem(db *gorm.DB, id string) (*models.Item, error) {
	var item models.Item
	if err := db.First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("get item %s: %w", id, err)
	}
	return &item, nil
}

// CreateItem validates the input and inserts a new inventory record.
// The id must not already exist.
func CreateItem(db *gorm.DB, in ItemInput) (*models.Item, error) {
	item, err := in.validate(true)
	if err != nil {
		return nil, err
	}

	var count int64
	if err := db.Model(&models.Item{}).Where("id = ?", item.ID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check item id: %w", err)
	}
	if count > 0 {
		return nil, ErrDuplicateItemID
	}

	if err := db.Create(item).Error; err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}
	return item, nil
}

// UpdateItem re-validates the whole record and overwrites every field
// except the id, which is immutable once created.
func UpdateItem(db *gorm.DB, id string, in ItemInput) (*models.Item, error) {
	existing, err := GetItem(db, id)
	if err != nil {
		return nil, err
	}

	in.ID = existing.ID
	updated, err := in.validate(false)
	if err != nil {
		return nil, err
	}
	updated.ID = existing.ID

	if err := db.Model(existing).Updates(map[string]interface{}{
		"name":           updated.Name,
		"category":       updated.Category,
		"purchase_price": updated.PurchasePrice,
		"price":          updated.Price,
		"stock":          updated.Stock,
	}).Error; err != nil {
		return nil, fmt.Errorf("update item %s: %w", id, err)
	}
	return updated, nil
}

// DeleteItem removes an item unconditionally. Past sales keep their
// own snapshots, so deleting an item never touches history.
func DeleteItem(db *gorm.DB, id string) error {
	res := db.Delete(&models.Item{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete item %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}
