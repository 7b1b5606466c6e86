package store

import (
	"fmt"
	"testing"
	"time"

	"pharmapos/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func insertSale(t *testing.T, db *gorm.DB, date time.Time, total, profit string) {
	t.Helper()

	amount := decimal.RequireFromString(total)
	sale := models.Sale{
		ID:            uuid.NewString(),
		BillID:        fmt.Sprintf("BILL-%d", time.Now().UnixNano()),
		Date:          date,
		Cashier:       "Cashier User",
		Subtotal:      amount,
		Total:         amount,
		Profit:        decimal.RequireFromString(profit),
		PaymentMethod: models.PaymentCard,
		AmountPaid:    amount,
		Balance:       decimal.Zero,
	}
	require.NoError(t, db.Create(&sale).Error)
}

func TestDashboardMetrics(t *testing.T) {
	db := testDB(t)

	m, err := GetDashboardMetrics(db)
	require.NoError(t, err)

	// Seed stocks: 150+45+30+200+25+180+40.
	require.Equal(t, 670, m.TotalUnits)

	// Below 50: MED002 (45), MED003 (30), MED005 (25), MED007 (40).
	require.Equal(t, 4, m.LowStockCount)
	require.Len(t, m.LowStockItems, 4)

	// Below 30: only MED005 (25); MED003 sits exactly on the line.
	require.Equal(t, 1, m.CriticalCount)

	require.True(t, m.InventoryValue.Equal(decimal.RequireFromString("4884.00")),
		"inventory value %s", m.InventoryValue)
}

func TestDashboardMetricsTrackEdits(t *testing.T) {
	db := testDB(t)

	_, err := UpdateItem(db, "MED003", ItemInput{
		Name: "Amoxicillin 250mg", Category: "Antibiotics",
		PurchasePrice: "8.00", Price: "12.99", Stock: intPtr(10),
	})
	require.NoError(t, err)

	m, err := GetDashboardMetrics(db)
	require.NoError(t, err)
	require.Equal(t, 2, m.CriticalCount, "MED003 dropped below the critical line")
}

func TestStockValuation(t *testing.T) {
	db := testDB(t)

	report, err := GetStockValuation(db)
	require.NoError(t, err)

	// Five seed categories, sorted by name.
	require.Len(t, report.Categories, 5)
	require.Equal(t, "Allergy", report.Categories[0].CategoryName)

	// Σ purchasePrice × stock over the seed inventory.
	require.True(t, report.GrandTotal.Equal(decimal.RequireFromString("2857.50")),
		"grand total %s", report.GrandTotal)

	var sum decimal.Decimal
	for _, group := range report.Categories {
		sum = sum.Add(group.Subtotal)
	}
	require.True(t, sum.Equal(report.GrandTotal), "subtotals must add up to the grand total")
}

func TestProfitSummaryCalendarBuckets(t *testing.T) {
	db := testDB(t)

	now := time.Date(2026, time.August, 28, 15, 0, 0, 0, time.UTC)
	insertSale(t, db, now.Add(-2*time.Hour), "24.97", "9.97")              // today
	insertSale(t, db, now.AddDate(0, 0, -3), "10.00", "4.00")             // this month
	insertSale(t, db, now.AddDate(0, -1, 0), "50.00", "20.00")            // last month
	insertSale(t, db, now.AddDate(-1, 0, 0), "100.00", "40.00")           // last year, same month
	insertSale(t, db, time.Date(2026, time.August, 1, 0, 30, 0, 0, time.UTC), "5.00", "2.00") // month start

	s, err := GetProfitSummary(db, now)
	require.NoError(t, err)

	require.True(t, s.TodayProfit.Equal(decimal.RequireFromString("9.97")), "today %s", s.TodayProfit)
	require.True(t, s.MonthProfit.Equal(decimal.RequireFromString("15.97")), "month %s", s.MonthProfit)
	require.True(t, s.TotalRevenue.Equal(decimal.RequireFromString("189.97")), "revenue %s", s.TotalRevenue)
	require.EqualValues(t, 5, s.TotalOrders)
	require.Len(t, s.RecentSales, 5)
}

func TestProfitSummaryEmptyHistory(t *testing.T) {
	db := testDB(t)

	s, err := GetProfitSummary(db, time.Now())
	require.NoError(t, err)
	require.True(t, s.TodayProfit.IsZero())
	require.True(t, s.MonthProfit.IsZero())
	require.True(t, s.TotalRevenue.IsZero())
	require.EqualValues(t, 0, s.TotalOrders)
}

// Re-querying without intervening mutation yields identical results.
func TestReportsAreIdempotent(t *testing.T) {
	db := testDB(t)

	now := time.Now()
	insertSale(t, db, now, "24.97", "9.97")

	first, err := GetProfitSummary(db, now)
	require.NoError(t, err)
	second, err := GetProfitSummary(db, now)
	require.NoError(t, err)

	require.True(t, first.TodayProfit.Equal(second.TodayProfit))
	require.True(t, first.MonthProfit.Equal(second.MonthProfit))
	require.True(t, first.TotalRevenue.Equal(second.TotalRevenue))
	require.Equal(t, first.TotalOrders, second.TotalOrders)

	m1, err := GetDashboardMetrics(db)
	require.NoError(t, err)
	m2, err := GetDashboardMetrics(db)
	require.NoError(t, err)
	require.Equal(t, m1.TotalUnits, m2.TotalUnits)
	require.True(t, m1.InventoryValue.Equal(m2.InventoryValue))
}

func TestListSalesSearch(t *testing.T) {
	db := testDB(t)

	now := time.Now()
	insertSale(t, db, now.Add(-time.Minute), "10.00", "4.00")
	insertSale(t, db, now, "20.00", "8.00")

	all, err := ListSales(db, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	// Newest first.
	require.True(t, !all[0].Date.Before(all[1].Date))

	byCashier, err := ListSales(db, "CASHIER user")
	require.NoError(t, err)
	require.Len(t, byCashier, 2)

	byBill, err := ListSales(db, all[0].BillID)
	require.NoError(t, err)
	require.Len(t, byBill, 1)

	none, err := ListSales(db, "nobody")
	require.NoError(t, err)
	require.Empty(t, none)
}
