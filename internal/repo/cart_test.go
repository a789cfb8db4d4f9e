package repo

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/cart_service/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
	))

	return db
}

func TestCartUsernameUnique(t *testing.T) {
	db := newTestDB(t)
	r := &GormRepo{DB: db}
	ctx := context.Background()

	require.NoError(t, r.CreateCart(ctx, &models.Cart{Username: "alice"}))

	err := r.CreateCart(ctx, &models.Cart{Username: "alice"})
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestCartItemUniquePerCartProduct(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.WithContext(ctx).Create(&models.CartItem{CartID: 1, ProductID: 1, Quantity: 1}).Error)

	err := db.WithContext(ctx).Create(&models.CartItem{CartID: 1, ProductID: 1, Quantity: 2}).Error
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestSetItemQuantityOverwrites(t *testing.T) {
	db := newTestDB(t)
	r := &GormRepo{DB: db}
	ctx := context.Background()

	require.NoError(t, r.SetItemQuantity(ctx, 1, 7, 2))
	require.NoError(t, r.SetItemQuantity(ctx, 1, 7, 5))

	var items []models.CartItem
	require.NoError(t, db.Where("cart_id = ?", 1).Find(&items).Error)
	require.Len(t, items, 1)
	require.Equal(t, uint(5), items[0].Quantity)
}

func TestUpdateItemQuantityReportsAffectedRows(t *testing.T) {
	db := newTestDB(t)
	r := &GormRepo{DB: db}
	ctx := context.Background()

	rows, err := r.UpdateItemQuantity(ctx, "nobody", 1, 3)
	require.NoError(t, err)
	require.Zero(t, rows)

	require.NoError(t, r.CreateCart(ctx, &models.Cart{Username: "bob"}))
	cart, err := r.CartByUsername(ctx, "bob")
	require.NoError(t, err)
	require.NoError(t, r.SetItemQuantity(ctx, cart.ID, 1, 1))

	rows, err = r.UpdateItemQuantity(ctx, "bob", 1, 3)
	require.NoError(t, err)
	require.EqualValues(t, 1, rows)

	var item models.CartItem
	require.NoError(t, db.Where("cart_id = ? AND product_id = ?", cart.ID, 1).First(&item).Error)
	require.Equal(t, uint(3), item.Quantity)
}

func TestRemoveItemReportsAffectedRows(t *testing.T) {
	db := newTestDB(t)
	r := &GormRepo{DB: db}
	ctx := context.Background()

	rows, err := r.RemoveItem(ctx, "nobody", 1)
	require.NoError(t, err)
	require.Zero(t, rows)

	require.NoError(t, r.CreateCart(ctx, &models.Cart{Username: "bob"}))
	cart, err := r.CartByUsername(ctx, "bob")
	require.NoError(t, err)
	require.NoError(t, r.SetItemQuantity(ctx, cart.ID, 1, 1))

	rows, err = r.RemoveItem(ctx, "bob", 1)
	require.NoError(t, err)
	require.EqualValues(t, 1, rows)

	err = db.Where("cart_id = ?", cart.ID).First(&models.CartItem{}).Error
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCartContentsJoinOrderedByProductID(t *testing.T) {
	db := newTestDB(t)
	r := &GormRepo{DB: db}
	ctx := context.Background()

	require.NoError(t, db.Create(&models.Product{ID: 3, Name: "mug", Price: 4.5}).Error)
	require.NoError(t, db.Create(&models.Product{ID: 1, Name: "pen", Price: 1.2}).Error)

	require.NoError(t, r.CreateCart(ctx, &models.Cart{Username: "carol"}))
	cart, err := r.CartByUsername(ctx, "carol")
	require.NoError(t, err)

	require.NoError(t, r.SetItemQuantity(ctx, cart.ID, 3, 2))
	require.NoError(t, r.SetItemQuantity(ctx, cart.ID, 1, 4))

	entries, err := r.CartContents(ctx, cart.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	require.Equal(t, uint(1), entries[0].ProductID)
	require.Equal(t, "pen", entries[0].Name)
	require.Equal(t, uint(4), entries[0].Quantity)
	require.Equal(t, 1.2, entries[0].PricePerItem)

	require.Equal(t, uint(3), entries[1].ProductID)
	require.Equal(t, "mug", entries[1].Name)
	require.Equal(t, uint(2), entries[1].Quantity)
	require.Equal(t, 4.5, entries[1].PricePerItem)
}
