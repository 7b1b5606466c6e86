package store

import (
	"fmt"
	"sort"
	"time"

	"pharmapos/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Stock thresholds driving the dashboard alerts.
const (
	LowStockThreshold      = 50
	CriticalStockThreshold = 30
)

// DashboardMetrics is the at-a-glance view the dashboard renders.
type DashboardMetrics struct {
	TotalUnits     int             `json:"total_units"`
	LowStockCount  int             `json:"low_stock_count"`
	CriticalCount  int             `json:"critical_count"`
	InventoryValue decimal.Decimal `json:"inventory_value"`
	LowStockItems  []models.Item   `json:"low_stock_items"`
}

// ProfitSummary aggregates the sales history by calendar date at
// query time.
type ProfitSummary struct {
	TodayProfit   decimal.Decimal `json:"today_profit"`
	MonthProfit   decimal.Decimal `json:"month_profit"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	TotalOrders   int64           `json:"total_orders"`
	RecentSales   []models.Sale   `json:"recent_sales"`
}

// ValuationItem is one row of the stock valuation report.
type ValuationItem struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	CostPrice decimal.Decimal `json:"cost_price"`
	TotalCost decimal.Decimal `json:"total_cost"`
}

// CategoryGroup is one category's table in the valuation report.
type CategoryGroup struct {
	CategoryName string          `json:"category_name"`
	Items        []ValuationItem `json:"items"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

// ValuationReport values the whole inventory at purchase price.
type ValuationReport struct {
	Categories []CategoryGroup `json:"categories"`
	GrandTotal decimal.Decimal `json:"grand_total"`
}

// GetDashboardMetrics scans the inventory once and derives the unit
// count, the alert lists and the retail value of everything on the
// shelves. Sums run in Go because the money columns are decimals.
func GetDashboardMetrics(db *gorm.DB) (*DashboardMetrics, error) {
	items, err := ListItems(db, "")
	if err != nil {
		return nil, err
	}

	m := &DashboardMetrics{
		InventoryValue: decimal.Zero,
		LowStockItems:  []models.Item{},
	}
	for _, item := range items {
		m.TotalUnits += item.Stock
		m.InventoryValue = m.InventoryValue.Add(
			item.Price.Mul(decimal.NewFromInt(int64(item.Stock))))
		if item.Stock < LowStockThreshold {
			m.LowStockCount++
			m.LowStockItems = append(m.LowStockItems, item)
		}
		if item.Stock < CriticalStockThreshold {
			m.CriticalCount++
		}
	}
	return m, nil
}

// GetProfitSummary computes today's and the current calendar month's
// profit relative to now, plus all-time revenue and order count.
func GetProfitSummary(db *gorm.DB, now time.Time) (*ProfitSummary, error) {
	var sales []models.Sale
	if err := db.Find(&sales).Error; err != nil {
		return nil, fmt.Errorf("load sales: %w", err)
	}

	s := &ProfitSummary{
		TodayProfit:  decimal.Zero,
		MonthProfit:  decimal.Zero,
		TotalRevenue: decimal.Zero,
	}

	y, m, d := now.Date()
	for _, sale := range sales {
		s.TotalOrders++
		s.TotalRevenue = s.TotalRevenue.Add(sale.Total)

		sy, sm, sd := sale.Date.In(now.Location()).Date()
		if sy == y && sm == m {
			s.MonthProfit = s.MonthProfit.Add(sale.Profit)
			if sd == d {
				s.TodayProfit = s.TodayProfit.Add(sale.Profit)
			}
		}
	}

	recent, err := recentSales(db, 10)
	if err != nil {
		return nil, err
	}
	s.RecentSales = recent
	return s, nil
}

func recentSales(db *gorm.DB, limit int) ([]models.Sale, error) {
	var sales []models.Sale
	if err := db.Preload("Lines").
		Order("date DESC, bill_id DESC").
		Limit(limit).
		Find(&sales).Error; err != nil {
		return nil, fmt.Errorf("recent sales: %w", err)
	}
	return sales, nil
}

// GetStockValuation groups the inventory by category and values each
// item's stock at its purchase price.
func GetStockValuation(db *gorm.DB) (*ValuationReport, error) {
	items, err := ListItems(db, "")
	if err != nil {
		return nil, err
	}

	grouped := make(map[string]*CategoryGroup)
	grandTotal := decimal.Zero

	for _, item := range items {
		catName := item.Category
		if catName == "" {
			catName = "Uncategorized"
		}

		group, exists := grouped[catName]
		if !exists {
			group = &CategoryGroup{
				CategoryName: catName,
				Items:        []ValuationItem{},
				Subtotal:     decimal.Zero,
			}
			grouped[catName] = group
		}

		itemTotal := item.PurchasePrice.Mul(decimal.NewFromInt(int64(item.Stock)))
		group.Items = append(group.Items, ValuationItem{
			ID:        item.ID,
			Name:      item.Name,
			Quantity:  item.Stock,
			CostPrice: item.PurchasePrice,
			TotalCost: itemTotal,
		})
		group.Subtotal = group.Subtotal.Add(itemTotal)
		grandTotal = grandTotal.Add(itemTotal)
	}

	report := &ValuationReport{GrandTotal: grandTotal}
	for _, group := range grouped {
		report.Categories = append(report.Categories, *group)
	}
	// Map iteration order is random; keep the report stable.
	sort.Slice(report.Categories, func(i, j int) bool {
		return report.Categories[i].CategoryName < report.Categories[j].CategoryName
	})
	return report, nil
}
