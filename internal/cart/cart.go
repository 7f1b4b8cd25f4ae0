// Package cart holds the pre-save, client-side cart state: an explicit
// cart object with persistence behind an injected Storage port, so the
// device store can be swapped for memory in tests.
package cart

import (
	"github.com/google/uuid"
)

type Item struct {
	ID            string  `json:"id"`
	ProductID     uint64  `json:"productId"`
	Name          string  `json:"name"`
	ProductNumber string  `json:"productNumber"`
	Image         string  `json:"image"`
	Price         float64 `json:"price"`
	Quantity      int     `json:"quantity"`
	Stock         int     `json:"stock"`
}

type Cart struct {
	storage Storage
	items   []Item
}

// New loads whatever the storage holds; corrupt or missing state just
// starts an empty cart.
func New(storage Storage) *Cart {
	c := &Cart{storage: storage}
	if items, err := storage.Load(); err == nil {
		c.items = items
	}
	return c
}

// AddItem merges by product: adding an already-present product bumps
// its quantity by one, clamped to stock. New products enter with
// quantity 1 under a fresh line id.
func (c *Cart) AddItem(item Item) error {
	for i := range c.items {
		if c.items[i].ProductID == item.ProductID {
			if c.items[i].Quantity < c.items[i].Stock {
				c.items[i].Quantity++
			}
			return c.persist()
		}
	}
	item.ID = uuid.NewString()
	item.Quantity = 1
	c.items = append(c.items, item)
	return c.persist()
}

func (c *Cart) RemoveItem(id string) error {
	kept := c.items[:0]
	for _, item := range c.items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	c.items = kept
	return c.persist()
}

// UpdateQuantity clamps to [1, stock]; removing a line goes through
// RemoveItem instead.
func (c *Cart) UpdateQuantity(id string, quantity int) error {
	for i := range c.items {
		if c.items[i].ID == id {
			if quantity < 1 {
				quantity = 1
			}
			if quantity > c.items[i].Stock {
				quantity = c.items[i].Stock
			}
			c.items[i].Quantity = quantity
			break
		}
	}
	return c.persist()
}

func (c *Cart) Clear() error {
	c.items = nil
	return c.persist()
}

func (c *Cart) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// ItemCount is the quantity sum across lines, the storefront badge
// number for an unsaved cart.
func (c *Cart) ItemCount() int {
	var n int
	for _, item := range c.items {
		n += item.Quantity
	}
	return n
}

// Total uses current prices; saved-cart totals are computed from
// priceAtAdd snapshots at save time instead.
func (c *Cart) Total() float64 {
	var total float64
	for _, item := range c.items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

func (c *Cart) persist() error {
	return c.storage.Save(c.items)
}
