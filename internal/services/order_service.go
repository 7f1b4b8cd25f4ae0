package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"storefront-service/internal/domain"
	"storefront-service/internal/repository"

	"gorm.io/gorm"
)

type CheckoutInput struct {
	CartCode      string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	ShippingCity  string
	ShippingState string
	PaymentMethod string
}

type OrderService struct {
	repo  repository.OrderRepository
	carts repository.SavedCartRepository
}

func NewOrderService(r repository.OrderRepository, carts repository.SavedCartRepository) *OrderService {
	return &OrderService{repo: r, carts: carts}
}

func (s *OrderService) List() ([]domain.Order, error) {
	return s.repo.FindAll()
}

// UpdateStatus patches only the two mutable order fields; everything
// else is immutable through this path.
func (s *OrderService) UpdateStatus(id uint64, status, paymentStatus string) (*domain.Order, error) {
	if id == 0 {
		return nil, fmt.Errorf("%w: order id is required", ErrValidation)
	}

	fields := map[string]any{}
	if status != "" {
		if !domain.OrderStatus(status).Valid() {
			return nil, fmt.Errorf("%w: unknown order status %q", ErrValidation, status)
		}
		fields["status"] = status
	}
	if paymentStatus != "" {
		if !domain.PaymentStatus(paymentStatus).Valid() {
			return nil, fmt.Errorf("%w: unknown payment status %q", ErrValidation, paymentStatus)
		}
		fields["payment_status"] = paymentStatus
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: nothing to update", ErrValidation)
	}

	order, err := s.repo.Patch(id, fields)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("%w: order not found", ErrNotFound)
	}
	return order, nil
}

// Checkout finalizes a saved cart into a pending order. Payment is a
// stub: the order lands with paymentStatus pending and nothing is
// charged. Order totals use the snapshot prices from the saved cart.
func (s *OrderService) Checkout(in CheckoutInput) (*domain.Order, error) {
	if in.CartCode == "" {
		return nil, fmt.Errorf("%w: cart code is required", ErrValidation)
	}
	if in.CustomerName == "" {
		return nil, fmt.Errorf("%w: customer name is required", ErrValidation)
	}

	cart, err := s.carts.FindByCode(in.CartCode)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, fmt.Errorf("%w: cart not found", ErrNotFound)
	}
	if cart.Expired(time.Now()) {
		return nil, ErrCartExpired
	}

	for attempt := 0; attempt < 3; attempt++ {
		order := &domain.Order{
			OrderNumber:   randomOrderNumber(),
			CartCode:      cart.CartCode,
			CustomerName:  in.CustomerName,
			CustomerEmail: in.CustomerEmail,
			CustomerPhone: in.CustomerPhone,
			ShippingCity:  in.ShippingCity,
			ShippingState: in.ShippingState,
			Status:        domain.StatusPending,
			Total:         cart.TotalAmount,
			PaymentMethod: in.PaymentMethod,
			PaymentStatus: domain.PaymentPending,
		}
		for _, item := range cart.Items {
			order.Items = append(order.Items, domain.OrderItem{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Price:     item.PriceAtAdd,
			})
		}
		err := s.repo.Save(order)
		if err == nil {
			return s.repo.FindByID(order.ID)
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			continue
		}
		return nil, err
	}
	return nil, errors.New("could not allocate a unique order number")
}

func randomOrderNumber() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("ORD-%d", time.Now().UnixNano())
	}
	return "ORD-" + hex.EncodeToString(b)
}
