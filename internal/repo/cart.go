package repo

import (
	"context"
	"errors"

	"github.com/Skotchmaster/cart_service/internal/models"
	"gorm.io/gorm"
)

type GormRepo struct {
	DB *gorm.DB
}

func (r *GormRepo) UserExists(ctx context.Context, username string) (bool, error) {
	var user models.User
	err := r.DB.WithContext(ctx).Select("id").Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *GormRepo) ProductExists(ctx context.Context, productID uint) (bool, error) {
	var product models.Product
	err := r.DB.WithContext(ctx).Select("id").Where("id = ?", productID).First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *GormRepo) CartByUsername(ctx context.Context, username string) (*models.Cart, error) {
	var cart models.Cart
	if err := r.DB.WithContext(ctx).Where("username = ?", username).First(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *GormRepo) CreateCart(ctx context.Context, cart *models.Cart) error {
	return r.DB.WithContext(ctx).Create(cart).Error
}

// SetItemQuantity overwrites the quantity of the (cart, product) row,
// inserting it when absent. Overwrite, not increment.
func (r *GormRepo) SetItemQuantity(ctx context.Context, cartID, productID, quantity uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.CartItem{}).
			Where("cart_id = ? AND product_id = ?", cartID, productID).
			Update("quantity", quantity)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}

		item := models.CartItem{
			CartID:    cartID,
			ProductID: productID,
			Quantity:  quantity,
		}
		return tx.Create(&item).Error
	})
}

// UpdateItemQuantity targets the item through the cart resolved from the
// username in a single statement. The affected-row count is the only
// existence signal.
func (r *GormRepo) UpdateItemQuantity(ctx context.Context, username string, productID, quantity uint) (int64, error) {
	res := r.DB.WithContext(ctx).Model(&models.CartItem{}).
		Where("product_id = ? AND cart_id = (SELECT id FROM carts WHERE username = ?)", productID, username).
		Update("quantity", quantity)
	return res.RowsAffected, res.Error
}

func (r *GormRepo) RemoveItem(ctx context.Context, username string, productID uint) (int64, error) {
	res := r.DB.WithContext(ctx).
		Where("product_id = ? AND cart_id = (SELECT id FROM carts WHERE username = ?)", productID, username).
		Delete(&models.CartItem{})
	return res.RowsAffected, res.Error
}

func (r *GormRepo) CartContents(ctx context.Context, cartID uint) ([]models.CartEntry, error) {
	var entries []models.CartEntry
	err := r.DB.WithContext(ctx).
		Table("cart_items").
		Select("cart_items.product_id AS product_id, products.name AS name, cart_items.quantity AS quantity, products.price AS price_per_item").
		Joins("JOIN products ON products.id = cart_items.product_id").
		Where("cart_items.cart_id = ?", cartID).
		Order("cart_items.product_id ASC").
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
