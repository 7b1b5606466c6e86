package store

import (
	"errors"
	"fmt"
	"strings"

	"pharmapos/internal/models"

	"gorm.io/gorm"
)

// ListSales returns the sales history newest first, optionally
// filtered by a case-insensitive substring over bill id and cashier
// name. Line snapshots are preloaded for the receipt drill-down.
func ListSales(db *gorm.DB, search string) ([]models.Sale, error) {
	var sales []models.Sale

	q := db.Preload("Lines").Order("date DESC, bill_id DESC")
	if s := strings.TrimSpace(search); s != "" {
		pattern := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(bill_id) LIKE ? OR LOWER(cashier) LIKE ?", pattern, pattern)
	}

	if err := q.Find(&sales).Error; err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	return sales, nil
}

// GetSale fetches one sale with its lines.
func GetSale(db *gorm.DB, id string) (*models.Sale, error) {
	var sale models.Sale
	if err := db.Preload("Lines").First(&sale, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSaleNotFound
		}
		return nil, fmt.Errorf("get sale %s: %w", id, err)
	}
	return &sale, nil
}
