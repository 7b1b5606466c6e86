package database

import (
	"fmt"

	"pharmapos/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type seedUser struct {
	username string
	password string
	role     string
	fullName string
}

type seedItem struct {
	id            string
	name          string
	category      string
	purchasePrice string
	price         string
	stock         int
}

var seedUsers = []seedUser{
	{"admin", "admin123", models.RoleAdmin, "Admin User"},
	{"cashier", "cashier123", models.RoleCashier, "Cashier User"},
}

var seedItems = []seedItem{
	{"MED001", "Paracetamol 500mg", "Pain Relief", "3.50", "5.99", 150},
	{"MED002", "Ibuprofen 400mg", "Pain Relief", "4.50", "7.50", 45},
	{"MED003", "Amoxicillin 250mg", "Antibiotics", "8.00", "12.99", 30},
	{"MED004", "Vitamin C 1000mg", "Supplements", "5.50", "8.99", 200},
	{"MED005", "Cough Syrup", "Cold & Flu", "4.00", "6.50", 25},
	{"MED006", "Aspirin 100mg", "Pain Relief", "2.50", "4.99", 180},
	{"MED007", "Antihistamine", "Allergy", "6.00", "9.99", 40},
}

// Seed loads the demo pharmacy fixtures. It only runs against empty
// tables, so restarting never duplicates records within one process
// lifetime.
func Seed(db *gorm.DB) error {
	var userCount int64
	if err := db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if userCount == 0 {
		for _, su := range seedUsers {
			hash, err := bcrypt.GenerateFromPassword([]byte(su.password), bcrypt.DefaultCost)
			if err != nil {
				return fmt.Errorf("hash seed password: %w", err)
			}
			user := models.User{
				Username:     su.username,
				PasswordHash: string(hash),
				Role:         su.role,
				FullName:     su.fullName,
			}
			if err := db.Create(&user).Error; err != nil {
				return fmt.Errorf("seed user %s: %w", su.username, err)
			}
		}
	}

	var itemCount int64
	if err := db.Model(&models.Item{}).Count(&itemCount).Error; err != nil {
		return fmt.Errorf("count items: %w", err)
	}
	if itemCount == 0 {
		for _, si := range seedItems {
			item := models.Item{
				ID:            si.id,
				Name:          si.name,
				Category:      si.category,
				PurchasePrice: decimal.RequireFromString(si.purchasePrice),
				Price:         decimal.RequireFromString(si.price),
				Stock:         si.stock,
			}
			if err := db.Create(&item).Error; err != nil {
				return fmt.Errorf("seed item %s: %w", si.id, err)
			}
		}
	}

	return nil
}
