package http

import (
	"bytes"
	"strconv"
)

// FlexFloat and FlexInt accept either a JSON number or its string
// representation; the admin forms submit both.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(b, `"`)
	if len(b) == 0 || string(b) == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return err
	}
	*f = FlexFloat(v)
	return nil
}

type FlexInt int

func (f *FlexInt) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(b, `"`)
	if len(b) == 0 || string(b) == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.Atoi(string(b))
	if err != nil {
		return err
	}
	*f = FlexInt(v)
	return nil
}

type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type UpdateCategoryRequest struct {
	ID          uint64  `json:"id"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type CreateProductRequest struct {
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	ProductNumber string     `json:"productNumber"`
	Price         *FlexFloat `json:"price"`
	Stock         FlexInt    `json:"stock"`
	CategoryID    uint64     `json:"categoryId"`
	ImageURL      string     `json:"imageUrl"`
	Images        []string   `json:"images"`
	IsActive      *bool      `json:"isActive"`
}

type UpdateProductRequest struct {
	ID            uint64     `json:"id"`
	Name          *string    `json:"name"`
	Description   *string    `json:"description"`
	ProductNumber *string    `json:"productNumber"`
	Price         *FlexFloat `json:"price"`
	Stock         *FlexInt   `json:"stock"`
	CategoryID    *uint64    `json:"categoryId"`
	ImageURL      *string    `json:"imageUrl"`
	Images        []string   `json:"images"`
	IsActive      *bool      `json:"isActive"`
}

type SavedCartItemRequest struct {
	ProductID  uint64  `json:"productId"`
	Quantity   int     `json:"quantity"`
	PriceAtAdd float64 `json:"priceAtAdd"`
}

type CreateSavedCartRequest struct {
	Email string                 `json:"email"`
	Items []SavedCartItemRequest `json:"items"`
}

type UpdateOrderRequest struct {
	ID            uint64 `json:"id"`
	Status        string `json:"status"`
	PaymentStatus string `json:"paymentStatus"`
}

type CheckoutRequest struct {
	CartCode      string `json:"cartCode"`
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	CustomerPhone string `json:"customerPhone"`
	ShippingCity  string `json:"shippingCity"`
	ShippingState string `json:"shippingState"`
	PaymentMethod string `json:"paymentMethod"`
}
