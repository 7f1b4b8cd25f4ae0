package domain

import "time"

type OrderStatus string
type PaymentStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"

	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

type Order struct {
	ID            uint64        `json:"id" gorm:"primaryKey;autoIncrement"`
	OrderNumber   string        `json:"orderNumber" gorm:"size:32;uniqueIndex;not null"`
	CartCode      string        `json:"cartCode,omitempty" gorm:"size:16"` // provenance only, no FK
	CustomerName  string        `json:"customerName" gorm:"not null"`
	CustomerEmail string        `json:"customerEmail"`
	CustomerPhone string        `json:"customerPhone"`
	ShippingCity  string        `json:"shippingCity"`
	ShippingState string        `json:"shippingState"`
	Status        OrderStatus   `json:"status" gorm:"type:varchar(20);default:'pending'"`
	Total         float64       `json:"total" gorm:"not null"`
	PaymentMethod string        `json:"paymentMethod"`
	PaymentStatus PaymentStatus `json:"paymentStatus" gorm:"type:varchar(20);default:'pending'"`
	Items         []OrderItem   `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time     `json:"createdAt" gorm:"autoCreateTime"`
}

// OrderItem keeps its own price snapshot, so deleting the referenced
// product does not break historical orders.
type OrderItem struct {
	ID        uint64   `json:"id" gorm:"primaryKey;autoIncrement"`
	OrderID   uint64   `json:"orderId" gorm:"index;not null"`
	ProductID uint64   `json:"productId" gorm:"not null"`
	Product   *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Quantity  int      `json:"quantity" gorm:"not null"`
	Price     float64  `json:"price" gorm:"not null"`
}
