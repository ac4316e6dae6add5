package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/hamzarauf/foodio-backend/pkg/db/models"
	pkgerrors "github.com/hamzarauf/foodio-backend/pkg/errors"
)

func setupCatalogTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	products := `
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT,
  category TEXT NOT NULL,
  price INTEGER NOT NULL,
  image_url TEXT,
  rating REAL,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`
	addons := `
CREATE TABLE IF NOT EXISTS addons (
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL,
  name TEXT NOT NULL,
  created_at DATETIME
);`
	addonOptions := `
CREATE TABLE IF NOT EXISTS addon_options (
  id TEXT PRIMARY KEY,
  addon_id TEXT NOT NULL,
  name TEXT NOT NULL,
  additional_price INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(products).Error)
	require.NoError(t, db.Exec(addons).Error)
	require.NoError(t, db.Exec(addonOptions).Error)
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, name, category string, price int64, active bool) *models.Product {
	t.Helper()

	product := &models.Product{
		ID:       uuid.New(),
		Name:     name,
		Category: category,
		Price:    price,
		IsActive: active,
	}
	require.NoError(t, db.Create(product).Error)
	// gorm omits zero-value fields carrying a default tag, so force the flag.
	require.NoError(t, db.Model(product).Update("is_active", active).Error)
	return product
}

func seedOption(t *testing.T, db *gorm.DB, productID uuid.UUID, group, name string, additional int64) *models.AddonOption {
	t.Helper()

	addon := &models.Addon{ID: uuid.New(), ProductID: productID, Name: group}
	require.NoError(t, db.Create(addon).Error)

	option := &models.AddonOption{ID: uuid.New(), AddonID: addon.ID, Name: name, AdditionalPrice: additional}
	require.NoError(t, db.Create(option).Error)
	return option
}

func TestListMenuFiltersByCategory(t *testing.T) {
	db := setupCatalogTestDB(t)
	service, err := NewService(NewRepository(db))
	require.NoError(t, err)

	category := "burgers-" + uuid.NewString()
	otherCategory := "pizza-" + uuid.NewString()

	seedProduct(t, db, "Zinger Burger", category, 350, true)
	seedProduct(t, db, "Beef Burger", category, 450, true)
	seedProduct(t, db, "Retired Burger", category, 250, false)
	seedProduct(t, db, "Margherita", otherCategory, 800, true)

	listed, err := service.ListMenu(context.Background(), category)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	// Sorted by name, inactive excluded.
	assert.Equal(t, "Beef Burger", listed[0].Name)
	assert.Equal(t, "Zinger Burger", listed[1].Name)
}

func TestGetProductLoadsAddonGroups(t *testing.T) {
	db := setupCatalogTestDB(t)
	service, err := NewService(NewRepository(db))
	require.NoError(t, err)

	product := seedProduct(t, db, "Crispy Wrap", "wraps", 400, true)
	seedOption(t, db, product.ID, "Extras", "Extra Cheese", 50)

	detail, err := service.GetProduct(context.Background(), product.ID)
	require.NoError(t, err)
	require.Len(t, detail.Addons, 1)
	require.Len(t, detail.Addons[0].Options, 1)
	assert.Equal(t, "Extra Cheese", detail.Addons[0].Options[0].Name)
}

func TestDeriveUnitPriceAddsOptionPrices(t *testing.T) {
	db := setupCatalogTestDB(t)
	service, err := NewService(NewRepository(db))
	require.NoError(t, err)

	product := seedProduct(t, db, "Loaded Fries", "sides", 300, true)
	cheese := seedOption(t, db, product.ID, "Extras", "Extra Cheese", 50)
	sauce := seedOption(t, db, product.ID, "Sauces", "Garlic Mayo", 30)

	selection, err := service.DeriveUnitPrice(context.Background(), product.ID, []uuid.UUID{cheese.ID, sauce.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(380), selection.UnitPrice)
	assert.ElementsMatch(t, []string{"Extra Cheese", "Garlic Mayo"}, selection.OptionNames)
}

func TestDeriveUnitPriceRejectsForeignOption(t *testing.T) {
	db := setupCatalogTestDB(t)
	service, err := NewService(NewRepository(db))
	require.NoError(t, err)

	product := seedProduct(t, db, "Club Sandwich", "sandwiches", 500, true)
	other := seedProduct(t, db, "Pepperoni Pizza", "pizza", 900, true)
	foreign := seedOption(t, db, other.ID, "Toppings", "Olives", 40)

	_, err = service.DeriveUnitPrice(context.Background(), product.ID, []uuid.UUID{foreign.ID})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestDeriveUnitPriceRejectsInactiveProduct(t *testing.T) {
	db := setupCatalogTestDB(t)
	service, err := NewService(NewRepository(db))
	require.NoError(t, err)

	product := seedProduct(t, db, "Seasonal Special", "specials", 600, false)

	_, err = service.DeriveUnitPrice(context.Background(), product.ID, nil)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())
}

func TestFindBasePricesExcludesInactive(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)

	active := seedProduct(t, db, "Chicken Roll", "rolls", 275, true)
	inactive := seedProduct(t, db, "Old Roll", "rolls", 225, false)

	prices, err := repo.FindBasePricesByIDs(context.Background(), []uuid.UUID{active.ID, inactive.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(275), prices[active.ID])
	_, ok := prices[inactive.ID]
	assert.False(t, ok)
}
