package pos

import (
	"github.com/shopspring/decimal"

	"pharmapos/internal/models"
)

// Line is one basket entry. It snapshots the item's identity and
// prices at the moment it entered the cart; only the quantity changes
// afterwards.
type Line struct {
	ItemID        string          `json:"item_id"`
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	Price         decimal.Decimal `json:"price"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	Quantity      int             `json:"quantity"`
}

// Cart is the transient basket for one checkout session. Lines keep
// insertion order, which is the order they were first added.
type Cart struct {
	Lines []*Line `json:"lines"`
}

func NewCart() *Cart {
	return &Cart{}
}

func (c *Cart) line(itemID string) *Line {
	for _, l := range c.Lines {
		if l.ItemID == itemID {
			return l
		}
	}
	return nil
}

func (c *Cart) remove(itemID string) {
	for i, l := range c.Lines {
		if l.ItemID == itemID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}
	}
}

func (c *Cart) addSnapshot(item *models.Item) {
	c.Lines = append(c.Lines, &Line{
		ItemID:        item.ID,
		Name:          item.Name,
		Category:      item.Category,
		Price:         item.Price,
		PurchasePrice: item.PurchasePrice,
		Quantity:      1,
	})
}

// Subtotal is Σ price × quantity over the lines. Computed on demand,
// never cached, so it can't go stale.
func (c *Cart) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range c.Lines {
		sum = sum.Add(l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return sum
}

// Total equals the subtotal; no tax or discount is modeled.
func (c *Cart) Total() decimal.Decimal {
	return c.Subtotal()
}

// Profit is Σ (price − purchasePrice) × quantity over the lines.
func (c *Cart) Profit() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range c.Lines {
		margin := l.Price.Sub(l.PurchasePrice)
		sum = sum.Add(margin.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return sum
}

// View is the cart plus its computed figures, shaped for the POS
// screen.
type View struct {
	Lines    []*Line         `json:"lines"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Total    decimal.Decimal `json:"total"`
}

func (c *Cart) View() View {
	lines := c.Lines
	if lines == nil {
		lines = []*Line{}
	}
	return View{
		Lines:    lines,
		Subtotal: c.Subtotal(),
		Total:    c.Total(),
	}
}
