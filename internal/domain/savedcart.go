package domain

import "time"

// SavedCart is a snapshot of a client cart, retrievable by its short
// share code until expiresAt. Immutable after creation except for a
// hard delete that cascades to its items.
type SavedCart struct {
	ID          uint64          `json:"id" gorm:"primaryKey;autoIncrement"`
	CartCode    string          `json:"cartCode" gorm:"size:16;uniqueIndex;not null"`
	Email       string          `json:"email,omitempty"`
	TotalAmount float64         `json:"totalAmount" gorm:"not null"`
	Items       []SavedCartItem `json:"items" gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	ExpiresAt   time.Time       `json:"expiresAt" gorm:"not null"`
	CreatedAt   time.Time       `json:"createdAt" gorm:"autoCreateTime"`
}

// SavedCartItem references a product but does not own it. PriceAtAdd is
// the price at save time and never tracks later product price changes.
type SavedCartItem struct {
	ID         uint64   `json:"id" gorm:"primaryKey;autoIncrement"`
	CartID     uint64   `json:"cartId" gorm:"index;not null"`
	ProductID  uint64   `json:"productId" gorm:"not null"`
	Product    *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Quantity   int      `json:"quantity" gorm:"not null"`
	PriceAtAdd float64  `json:"priceAtAdd" gorm:"not null"`
}

func (c *SavedCart) Expired(now time.Time) bool {
	return c.ExpiresAt.Before(now)
}
