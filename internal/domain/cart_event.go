package domain

import "time"

// CartSavedEvent is published after a saved cart is committed.
type CartSavedEvent struct {
	CartID      uint64    `json:"cartId"`
	CartCode    string    `json:"cartCode"`
	Email       string    `json:"email,omitempty"`
	TotalAmount float64   `json:"totalAmount"`
	ItemCount   int       `json:"itemCount"`
	ExpiresAt   time.Time `json:"expiresAt"`
	CreatedAt   time.Time `json:"createdAt"`
}
