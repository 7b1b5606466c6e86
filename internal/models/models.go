package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Roles a user can hold. The SPA only knows these two.
const (
	RoleAdmin   = "Admin"
	RoleCashier = "Cashier"
)

// Payment methods accepted at the counter.
const (
	PaymentCash = "Cash"
	PaymentCard = "Card"
)

// User - someone allowed behind the counter
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:50" json:"username"`
	PasswordHash string    `json:"-"`    // Never return this in JSON
	Role         string    `json:"role"` // 'Admin' or 'Cashier'
	FullName     string    `json:"full_name"`
	CreatedAt    time.Time `json:"created_at"`
}

// Item - one inventory line. The ID is chosen by the pharmacist
// (e.g. "MED001") and is immutable once created.
type Item struct {
	ID            string          `gorm:"primaryKey;size:32" json:"id"`
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	PurchasePrice decimal.Decimal `gorm:"type:numeric" json:"purchase_price"`
	Price         decimal.Decimal `gorm:"type:numeric" json:"price"`
	Stock         int             `json:"stock"`
}

// Sale - the transaction header. Append-only: sales are never edited
// or deleted once the checkout commits.
type Sale struct {
	ID            string          `gorm:"primaryKey;size:36" json:"id"`
	BillID        string          `gorm:"uniqueIndex;size:40" json:"bill_id"`
	Date          time.Time       `json:"date"`
	Cashier       string          `json:"cashier"` // full name at time of sale
	Lines         []SaleLine      `gorm:"foreignKey:SaleID" json:"items"`
	Subtotal      decimal.Decimal `gorm:"type:numeric" json:"subtotal"`
	Total         decimal.Decimal `gorm:"type:numeric" json:"total"`
	Profit        decimal.Decimal `gorm:"type:numeric" json:"profit"`
	PaymentMethod string          `json:"payment_method"` // 'Cash' or 'Card'
	AmountPaid    decimal.Decimal `gorm:"type:numeric" json:"amount_paid"`
	Balance       decimal.Decimal `gorm:"type:numeric" json:"balance"`
}

// SaleLine - a cart line frozen at checkout time. Prices are snapshots,
// so later inventory edits never rewrite history.
type SaleLine struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	SaleID        string          `gorm:"size:36;index" json:"sale_id"`
	ItemID        string          `gorm:"size:32" json:"item_id"`
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	Price         decimal.Decimal `gorm:"type:numeric" json:"price"`
	PurchasePrice decimal.Decimal `gorm:"type:numeric" json:"purchase_price"`
	Quantity      int             `json:"quantity"`
}
