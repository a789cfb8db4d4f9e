package models

import (
	"time"
)

type User struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username string `gorm:"unique;not null"          json:"username"`
}

type Product struct {
	ID    uint    `gorm:"primaryKey;autoIncrement"  json:"id"`
	Name  string  `gorm:"not null"                  json:"name"`
	Price float64 `gorm:"not null"                  json:"price"`
}

type Cart struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username       string    `gorm:"uniqueIndex;not null"     json:"username"`
	CreationDate   time.Time `gorm:"not null"                 json:"creation_date"`
	ExpirationDate time.Time `gorm:"not null"                 json:"expiration_date"`
	TotalPrice     float64   `gorm:"not null;default:0"       json:"total_price"`
}

type CartItem struct {
	ID        uint `gorm:"primaryKey;autoIncrement"               json:"id"`
	CartID    uint `gorm:"uniqueIndex:idx_cart_product;not null"  json:"cart_id"`
	ProductID uint `gorm:"uniqueIndex:idx_cart_product;not null"  json:"product_id"`
	Quantity  uint `gorm:"not null;check:quantity>0"              json:"quantity"`
}

// CartEntry is a read model for the cart contents join, not a table.
type CartEntry struct {
	ProductID    uint    `gorm:"column:product_id"     json:"productId"`
	Name         string  `gorm:"column:name"           json:"name"`
	Quantity     uint    `gorm:"column:quantity"       json:"quantity"`
	PricePerItem float64 `gorm:"column:price_per_item" json:"pricePerItem"`
}
