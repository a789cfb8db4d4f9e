package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Skotchmaster/cart_service/internal/models"
	"github.com/Skotchmaster/cart_service/internal/repo"
	"gorm.io/gorm"
)

var (
	ErrValidation      = errors.New("validation")
	ErrCartExists      = errors.New("shopping cart already exists")
	ErrUserNotFound    = errors.New("user not found")
	ErrProductNotFound = errors.New("product not found")
	ErrNoCart          = errors.New("user does not have a shopping cart")
	ErrItemNotFound    = errors.New("product is not in the shopping cart")
)

type CartService struct {
	Repo *repo.GormRepo
	Now  func() time.Time
}

type CartContents struct {
	CartID     uint               `json:"cartId,omitempty"`
	Items      []models.CartEntry `json:"cartItems"`
	TotalPrice float64            `json:"totalPrice"`
}

func (s *CartService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

// CreateCart inserts a cart for the username with a one-calendar-month
// expiration. AddDate normalizes overflowing days, so 2024-01-31 expires
// 2024-03-02.
func (s *CartService) CreateCart(ctx context.Context, username string) (*models.Cart, error) {
	_, err := s.Repo.CartByUsername(ctx, username)
	if err == nil {
		return nil, fmt.Errorf("cart for %q: %w", username, ErrCartExists)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	created := dateOnly(s.now())
	cart := &models.Cart{
		Username:       username,
		CreationDate:   created,
		ExpirationDate: created.AddDate(0, 1, 0),
		TotalPrice:     0,
	}
	if err := s.Repo.CreateCart(ctx, cart); err != nil {
		// A concurrent create can slip past the pre-check; the unique
		// index on carts.username turns it into a duplicate-key error.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("cart for %q: %w", username, ErrCartExists)
		}
		return nil, err
	}
	return cart, nil
}

func (s *CartService) AddItem(ctx context.Context, username string, productID, quantity uint) error {
	if quantity == 0 {
		return fmt.Errorf("quantity must be greater than zero: %w", ErrValidation)
	}

	ok, err := s.Repo.UserExists(ctx, username)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("user %q: %w", username, ErrUserNotFound)
	}

	ok, err = s.Repo.ProductExists(ctx, productID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("product %d: %w", productID, ErrProductNotFound)
	}

	cart, err := s.Repo.CartByUsername(ctx, username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("cart for %q: %w", username, ErrNoCart)
	}
	if err != nil {
		return err
	}

	return s.Repo.SetItemQuantity(ctx, cart.ID, productID, quantity)
}

func (s *CartService) UpdateItemQuantity(ctx context.Context, username string, productID, quantity uint) error {
	if quantity == 0 {
		return fmt.Errorf("quantity must be greater than zero: %w", ErrValidation)
	}

	rows, err := s.Repo.UpdateItemQuantity(ctx, username, productID, quantity)
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("product %d in cart of %q: %w", productID, username, ErrItemNotFound)
	}
	return nil
}

func (s *CartService) RemoveItem(ctx context.Context, username string, productID uint) error {
	rows, err := s.Repo.RemoveItem(ctx, username, productID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("product %d in cart of %q: %w", productID, username, ErrItemNotFound)
	}
	return nil
}

// GetCart is lenient: a username without a cart reads as an empty cart,
// not an error. The total is derived from the items on every read.
func (s *CartService) GetCart(ctx context.Context, username string) (*CartContents, error) {
	cart, err := s.Repo.CartByUsername(ctx, username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &CartContents{Items: []models.CartEntry{}}, nil
	}
	if err != nil {
		return nil, err
	}

	entries, err := s.Repo.CartContents(ctx, cart.ID)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []models.CartEntry{}
	}

	var total float64
	for _, e := range entries {
		total += float64(e.Quantity) * e.PricePerItem
	}

	return &CartContents{
		CartID:     cart.ID,
		Items:      entries,
		TotalPrice: total,
	}, nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
