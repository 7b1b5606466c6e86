package store

import (
	"testing"

	"pharmapos/internal/database"
	"pharmapos/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Seed(db))
	return db
}

func intPtr(v int) *int { return &v }

func itemCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&models.Item{}).Count(&count).Error)
	return count
}

func TestCreateItem(t *testing.T) {
	db := testDB(t)

	item, err := CreateItem(db, ItemInput{
		ID: "MED008", Name: "Zinc Tablets", Category: "Supplements",
		PurchasePrice: "3.25", Price: "5.75", Stock: intPtr(80),
	})
	require.NoError(t, err)
	require.Equal(t, "MED008", item.ID)
	require.True(t, item.PurchasePrice.IsPositive())
	require.True(t, item.Price.IsPositive())
	require.GreaterOrEqual(t, item.Stock, 0)
}

func TestCreateItemValidation(t *testing.T) {
	db := testDB(t)
	before := itemCount(t, db)

	cases := []struct {
		name  string
		input ItemInput
		field string
	}{
		{"missing id", ItemInput{Name: "X", Category: "Y", PurchasePrice: "1", Price: "2", Stock: intPtr(1)}, "id"},
		{"missing name", ItemInput{ID: "N1", Category: "Y", PurchasePrice: "1", Price: "2", Stock: intPtr(1)}, "name"},
		{"missing category", ItemInput{ID: "N1", Name: "X", PurchasePrice: "1", Price: "2", Stock: intPtr(1)}, "category"},
		{"zero purchase price", ItemInput{ID: "N1", Name: "X", Category: "Y", PurchasePrice: "0", Price: "2", Stock: intPtr(1)}, "purchase_price"},
		{"negative price", ItemInput{ID: "N1", Name: "X", Category: "Y", PurchasePrice: "1", Price: "-2", Stock: intPtr(1)}, "price"},
		{"garbage price", ItemInput{ID: "N1", Name: "X", Category: "Y", PurchasePrice: "1", Price: "cheap", Stock: intPtr(1)}, "price"},
		{"negative stock", ItemInput{ID: "N1", Name: "X", Category: "Y", PurchasePrice: "1", Price: "2", Stock: intPtr(-1)}, "stock"},
		{"missing stock", ItemInput{ID: "N1", Name: "X", Category: "Y", PurchasePrice: "1", Price: "2"}, "stock"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := CreateItem(db, tc.input)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			require.Contains(t, verr.Fields, tc.field)
		})
	}

	require.Equal(t, before, itemCount(t, db), "failed creates must not mutate the collection")
}

func TestCreateItemDuplicateID(t *testing.T) {
	db := testDB(t)
	before := itemCount(t, db)

	_, err := CreateItem(db, ItemInput{
		ID: "MED001", Name: "Duplicate", Category: "Pain Relief",
		PurchasePrice: "1.00", Price: "2.00", Stock: intPtr(10),
	})
	require.ErrorIs(t, err, ErrDuplicateItemID)
	require.Equal(t, before, itemCount(t, db))

	// The original record is untouched.
	item, err := GetItem(db, "MED001")
	require.NoError(t, err)
	require.Equal(t, "Paracetamol 500mg", item.Name)
}

func TestUpdateItem(t *testing.T) {
	db := testDB(t)

	item, err := UpdateItem(db, "MED001", ItemInput{
		Name: "Paracetamol 500mg", Category: "Pain Relief",
		PurchasePrice: "3.75", Price: "6.25", Stock: intPtr(120),
	})
	require.NoError(t, err)
	require.Equal(t, "MED001", item.ID)
	require.True(t, item.Price.Equal(decimal.RequireFromString("6.25")))
	require.Equal(t, 120, item.Stock)

	// Invariants hold after any successful update.
	require.True(t, item.PurchasePrice.IsPositive())
	require.True(t, item.Price.IsPositive())
	require.GreaterOrEqual(t, item.Stock, 0)
}

func TestUpdateItemRejectsInvalid(t *testing.T) {
	db := testDB(t)

	_, err := UpdateItem(db, "MED001", ItemInput{
		Name: "Paracetamol 500mg", Category: "Pain Relief",
		PurchasePrice: "3.75", Price: "0", Stock: intPtr(120),
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	// The stored record kept its old values.
	item, err := GetItem(db, "MED001")
	require.NoError(t, err)
	require.True(t, item.Price.Equal(decimal.RequireFromString("5.99")))
	require.Equal(t, 150, item.Stock)
}

func TestUpdateItemUnknown(t *testing.T) {
	db := testDB(t)

	_, err := UpdateItem(db, "NOPE", ItemInput{
		Name: "X", Category: "Y", PurchasePrice: "1", Price: "2", Stock: intPtr(1),
	})
	require.ErrorIs(t, err, ErrItemNotFound)
}

func TestListItemsSearch(t *testing.T) {
	db := testDB(t)

	all, err := ListItems(db, "")
	require.NoError(t, err)
	require.Len(t, all, 7)

	byID, err := ListItems(db, "med001")
	require.NoError(t, err)
	require.Len(t, byID, 1)
	require.Equal(t, "MED001", byID[0].ID)

	byName, err := ListItems(db, "syrup")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	require.Equal(t, "MED005", byName[0].ID)

	byCategory, err := ListItems(db, "pain relief")
	require.NoError(t, err)
	require.Len(t, byCategory, 3)

	none, err := ListItems(db, "no such thing")
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestDeleteItem(t *testing.T) {
	db := testDB(t)

	require.NoError(t, DeleteItem(db, "MED007"))
	_, err := GetItem(db, "MED007")
	require.ErrorIs(t, err, ErrItemNotFound)

	require.ErrorIs(t, DeleteItem(db, "MED007"), ErrItemNotFound)
}
