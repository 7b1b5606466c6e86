package pos

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"pharmapos/internal/models"
	"pharmapos/internal/store"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Receipt is what the cashier hands over after a completed checkout.
// It mirrors the persisted Sale field for field.
type Receipt struct {
	SaleID        string            `json:"sale_id"`
	BillID        string            `json:"bill_id"`
	Date          time.Time         `json:"date"`
	Cashier       string            `json:"cashier"`
	Lines         []models.SaleLine `json:"items"`
	Subtotal      decimal.Decimal   `json:"subtotal"`
	Total         decimal.Decimal   `json:"total"`
	Profit        decimal.Decimal   `json:"profit"`
	PaymentMethod string            `json:"payment_method"`
	AmountPaid    decimal.Decimal   `json:"amount_paid"`
	Balance       decimal.Decimal   `json:"balance"`
}

// Engine owns the carts and is the only writer of the Sales table and
// the only component allowed to decrement stock outside a full
// inventory edit. One mutex guards the whole validate-decrement-append
// sequence; with a backing store in play that sequence must never
// interleave.
type Engine struct {
	db *gorm.DB

	mu    sync.Mutex
	carts map[uint]*Cart // keyed by user id, one session per cashier
}

func NewEngine(db *gorm.DB) *Engine {
	return &Engine{
		db:    db,
		carts: make(map[uint]*Cart),
	}
}

func (e *Engine) cart(userID uint) *Cart {
	c, ok := e.carts[userID]
	if !ok {
		c = NewCart()
		e.carts[userID] = c
	}
	return c
}

// CartView returns the current cart with its computed totals.
func (e *Engine) CartView(userID uint) View {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cart(userID).View()
}

// AddItem puts one unit of the item into the cart, or bumps the
// existing line by one. The quantity may never exceed the item's
// current stock.
func (e *Engine) AddItem(userID uint, itemID string) (View, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	item, err := store.GetItem(e.db, itemID)
	if err != nil {
		return View{}, err
	}

	cart := e.cart(userID)
	if line := cart.line(itemID); line != nil {
		if line.Quantity >= item.Stock {
			return View{}, store.ErrInsufficientStock
		}
		line.Quantity++
	} else {
		if item.Stock == 0 {
			return View{}, store.ErrOutOfStock
		}
		cart.addSnapshot(item)
	}
	return cart.View(), nil
}

// UpdateQuantity applies a signed delta to a line. Driving the
// quantity to zero or below removes the line; exceeding the live
// stock fails.
func (e *Engine) UpdateQuantity(userID uint, itemID string, delta int) (View, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	cart := e.cart(userID)
	line := cart.line(itemID)
	if line == nil {
		return cart.View(), nil
	}

	item, err := store.GetItem(e.db, itemID)
	if err != nil {
		return View{}, err
	}

	newQuantity := line.Quantity + delta
	if newQuantity > item.Stock {
		return View{}, store.ErrInsufficientStock
	}
	if newQuantity <= 0 {
		cart.remove(itemID)
	} else {
		line.Quantity = newQuantity
	}
	return cart.View(), nil
}

// RemoveLine drops a line from the cart. Removing an absent line is a
// no-op.
func (e *Engine) RemoveLine(userID uint, itemID string) View {
	e.mu.Lock()
	defer e.mu.Unlock()

	cart := e.cart(userID)
	cart.remove(itemID)
	return cart.View()
}

// ClearCart discards the session's basket. Stock was never touched,
// so abandoning a cart has no side effects.
func (e *Engine) ClearCart(userID uint) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.carts, userID)
}

// Checkout converts the cart into a Sale: validate the payment,
// re-check every line against live stock, decrement, append the sale,
// all inside one transaction. On success the cart resets to empty and
// the receipt comes back; on any failure neither the inventory nor
// the sales history changes.
func (e *Engine) Checkout(userID uint, cashier, paymentMethod, amountPaid string) (*Receipt, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	cart := e.cart(userID)
	if len(cart.Lines) == 0 {
		return nil, store.ErrEmptyCart
	}

	subtotal := cart.Subtotal()
	total := cart.Total()
	profit := cart.Profit()

	var paid decimal.Decimal
	switch paymentMethod {
	case models.PaymentCash:
		p, err := decimal.NewFromString(strings.TrimSpace(amountPaid))
		if err != nil || p.LessThan(total) {
			return nil, store.ErrInsufficientPayment
		}
		paid = p
	case models.PaymentCard:
		// Card settles exactly; no change due.
		paid = total
	default:
		verr := store.NewValidationError()
		verr.Add("payment_method", "Payment method must be Cash or Card")
		return nil, verr
	}

	sale := models.Sale{
		ID:            uuid.NewString(),
		BillID:        newBillID(),
		Date:          time.Now(),
		Cashier:       cashier,
		Subtotal:      subtotal,
		Total:         total,
		Profit:        profit,
		PaymentMethod: paymentMethod,
		AmountPaid:    paid,
		Balance:       paid.Sub(total),
	}
	for _, line := range cart.Lines {
		sale.Lines = append(sale.Lines, models.SaleLine{
			ItemID:        line.ItemID,
			Name:          line.Name,
			Category:      line.Category,
			Price:         line.Price,
			PurchasePrice: line.PurchasePrice,
			Quantity:      line.Quantity,
		})
	}

	err := e.db.Transaction(func(tx *gorm.DB) error {
		for _, line := range cart.Lines {
			// Re-read live stock: inventory edits may have landed
			// since the cart was built, and the decrement must never
			// drive stock negative.
			item, err := store.GetItem(tx, line.ItemID)
			if err != nil {
				return err
			}
			if item.Stock < line.Quantity {
				return store.ErrInsufficientStock
			}
			if err := tx.Model(&models.Item{}).
				Where("id = ?", item.ID).
				Update("stock", item.Stock-line.Quantity).Error; err != nil {
				return fmt.Errorf("deduct stock for %s: %w", item.ID, err)
			}
		}
		if err := tx.Create(&sale).Error; err != nil {
			return fmt.Errorf("create sale record: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	delete(e.carts, userID)

	return &Receipt{
		SaleID:        sale.ID,
		BillID:        sale.BillID,
		Date:          sale.Date,
		Cashier:       sale.Cashier,
		Lines:         sale.Lines,
		Subtotal:      sale.Subtotal,
		Total:         sale.Total,
		Profit:        sale.Profit,
		PaymentMethod: sale.PaymentMethod,
		AmountPaid:    sale.AmountPaid,
		Balance:       sale.Balance,
	}, nil
}

// newBillID builds a human-readable, time-ordered bill number.
// Uniqueness is the only contract; nanosecond resolution is plenty
// for a single till.
func newBillID() string {
	return fmt.Sprintf("BILL-%d", time.Now().UnixNano())
}
