package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"storefront-service/internal/domain"
	"storefront-service/internal/infra/mailer"
	"storefront-service/internal/infra/rabbitmq"
	"storefront-service/internal/repository"

	"gorm.io/gorm"
)

const (
	cartTTL = 30 * 24 * time.Hour

	// Attempts in the 4-digit code space before widening to 6 digits.
	// Insert-first: a concurrent duplicate shows up as a unique-key
	// violation and just burns one attempt.
	narrowCodeAttempts = 5
	wideCodeAttempts   = 5
)

type SavedCartItemInput struct {
	ProductID  uint64
	Quantity   int
	PriceAtAdd float64
}

type SavedCartService struct {
	repo      repository.SavedCartRepository
	publisher rabbitmq.PublisherInterface
	mailer    mailer.Sender
}

func NewSavedCartService(r repository.SavedCartRepository, pub rabbitmq.PublisherInterface, m mailer.Sender) *SavedCartService {
	return &SavedCartService{repo: r, publisher: pub, mailer: m}
}

// Create snapshots the client cart under a fresh share code. The cart
// and its items land in one transaction; the email notification and the
// cart.saved event are fire-and-forget and never roll back the cart.
func (s *SavedCartService) Create(ctx context.Context, email string, items []SavedCartItemInput) (*domain.SavedCart, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: cart must have at least one item", ErrValidation)
	}

	var total float64
	for _, item := range items {
		if item.ProductID == 0 {
			return nil, fmt.Errorf("%w: item product id is required", ErrValidation)
		}
		if item.Quantity < 1 {
			return nil, fmt.Errorf("%w: item quantity must be at least 1", ErrValidation)
		}
		if item.PriceAtAdd < 0 {
			return nil, fmt.Errorf("%w: item price must not be negative", ErrValidation)
		}
		total += item.PriceAtAdd * float64(item.Quantity)
	}

	var saved *domain.SavedCart
	for attempt := 0; attempt < narrowCodeAttempts+wideCodeAttempts; attempt++ {
		cart := &domain.SavedCart{
			CartCode:    randomCartCode(attempt >= narrowCodeAttempts),
			Email:       email,
			TotalAmount: total,
			ExpiresAt:   time.Now().Add(cartTTL),
		}
		for _, item := range items {
			cart.Items = append(cart.Items, domain.SavedCartItem{
				ProductID:  item.ProductID,
				Quantity:   item.Quantity,
				PriceAtAdd: item.PriceAtAdd,
			})
		}

		err := s.repo.Save(cart)
		if err == nil {
			saved = cart
			break
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			continue
		}
		return nil, err
	}
	if saved == nil {
		return nil, errors.New("could not allocate a unique cart code")
	}

	// Reload to pick up current product details on the items. The
	// snapshot is already committed, so a failed reload only costs the
	// nested product fields.
	if cart, err := s.repo.FindByCode(saved.CartCode); err == nil && cart != nil {
		saved = cart
	}

	go s.publishCartSaved(context.Background(), saved)
	if email != "" {
		go s.sendCartEmail(context.Background(), saved)
	}

	return saved, nil
}

// Lookup distinguishes a missing code from an expired cart; expired
// carts still exist in storage but are unavailable for reload.
func (s *SavedCartService) Lookup(cartCode string) (*domain.SavedCart, error) {
	if cartCode == "" {
		return nil, fmt.Errorf("%w: cart code is required", ErrValidation)
	}
	cart, err := s.repo.FindByCode(cartCode)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, fmt.Errorf("%w: cart not found", ErrNotFound)
	}
	if cart.Expired(time.Now()) {
		return nil, ErrCartExpired
	}
	return cart, nil
}

func (s *SavedCartService) List() ([]domain.SavedCart, error) {
	return s.repo.FindAll()
}

func (s *SavedCartService) Delete(id uint64) error {
	if id == 0 {
		return fmt.Errorf("%w: cart id is required", ErrValidation)
	}
	if err := s.repo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: cart not found", ErrNotFound)
		}
		return err
	}
	return nil
}

// GuestItemCount answers the storefront badge: the number of line items
// in the guest's saved cart, or 0 when the guest has none.
func (s *SavedCartService) GuestItemCount(guestID string) (int, error) {
	if guestID == "" {
		return 0, nil
	}
	cart, err := s.repo.FindByCode(guestID)
	if err != nil {
		return 0, err
	}
	if cart == nil {
		return 0, nil
	}
	return len(cart.Items), nil
}

func (s *SavedCartService) publishCartSaved(ctx context.Context, cart *domain.SavedCart) {
	evt := domain.CartSavedEvent{
		CartID:      cart.ID,
		CartCode:    cart.CartCode,
		Email:       cart.Email,
		TotalAmount: cart.TotalAmount,
		ItemCount:   len(cart.Items),
		ExpiresAt:   cart.ExpiresAt,
		CreatedAt:   cart.CreatedAt,
	}
	if err := s.publisher.Publish(ctx, "cart.saved", evt); err != nil {
		log.Printf("failed to publish cart.saved for %s: %v", cart.CartCode, err)
	}
}

func (s *SavedCartService) sendCartEmail(ctx context.Context, cart *domain.SavedCart) {
	email := mailer.CartEmail{
		To:       cart.Email,
		CartCode: cart.CartCode,
		Total:    cart.TotalAmount,
	}
	for _, item := range cart.Items {
		line := mailer.CartEmailItem{
			Quantity: item.Quantity,
			Price:    item.PriceAtAdd,
		}
		if item.Product != nil {
			line.Name = item.Product.Name
			line.ProductNumber = item.Product.ProductNumber
		}
		email.Items = append(email.Items, line)
	}
	if err := s.mailer.SendCartEmail(ctx, email); err != nil {
		log.Printf("failed to send cart email for %s: %v", cart.CartCode, err)
	}
}

func randomCartCode(wide bool) string {
	if wide {
		return fmt.Sprintf("ED-%06d", rand.Intn(900000)+100000)
	}
	return fmt.Sprintf("ED-%04d", rand.Intn(9000)+1000)
}
