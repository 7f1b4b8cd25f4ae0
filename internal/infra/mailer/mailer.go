package mailer

import (
	"context"
	"fmt"
	"log"
	"strings"
)

type CartEmailItem struct {
	Name          string  `json:"name"`
	ProductNumber string  `json:"productNumber"`
	Quantity      int     `json:"quantity"`
	Price         float64 `json:"price"`
}

type CartEmail struct {
	To       string          `json:"email"`
	CartCode string          `json:"cartCode"`
	Items    []CartEmailItem `json:"items"`
	Total    float64         `json:"total"`
}

type Sender interface {
	SendCartEmail(ctx context.Context, email CartEmail) error
}

var _ Sender = (*LogMailer)(nil)

// LogMailer formats the saved-cart email and writes it to the log
// instead of delivering it. Swap in a real SMTP/API sender here once a
// provider is chosen.
type LogMailer struct {
	storeName string
}

func NewLogMailer(storeName string) *LogMailer {
	return &LogMailer{storeName: storeName}
}

func (m *LogMailer) SendCartEmail(ctx context.Context, email CartEmail) error {
	var lines []string
	for _, item := range email.Items {
		lines = append(lines, fmt.Sprintf("- %s (%s) - Qty: %d - %.2f",
			item.Name, item.ProductNumber, item.Quantity, item.Price*float64(item.Quantity)))
	}

	content := fmt.Sprintf(`Hello!

Your cart has been saved successfully at %s.

CART CODE: %s
Please save this code to retrieve your cart later. This cart will expire in 30 days.

YOUR CART ITEMS:
%s

TOTAL: %.2f

To load your cart later, visit our website and enter your cart code: %s

Thank you for shopping with %s!`,
		m.storeName, email.CartCode, strings.Join(lines, "\n"),
		email.Total, email.CartCode, m.storeName)

	log.Printf("email would be sent to: %s", email.To)
	log.Printf("content:\n%s", content)
	return nil
}
