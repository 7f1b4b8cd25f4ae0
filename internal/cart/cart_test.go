package cart

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func hoops() Item {
	return Item{ProductID: 1, Name: "Gold Hoops", ProductNumber: "PRD-001", Price: 5000, Stock: 2}
}

func studs() Item {
	return Item{ProductID: 2, Name: "Silver Studs", ProductNumber: "PRD-002", Price: 1500, Stock: 10}
}

func TestCart_AddItemMergesAndClamps(t *testing.T) {
	c := New(NewMemoryStorage())

	assert.NoError(t, c.AddItem(hoops()))
	assert.NoError(t, c.AddItem(hoops()))
	// Third add would exceed stock 2 and must clamp.
	assert.NoError(t, c.AddItem(hoops()))

	items := c.Items()
	assert.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.NotEmpty(t, items[0].ID)

	assert.NoError(t, c.AddItem(studs()))
	assert.Len(t, c.Items(), 2)
	assert.Equal(t, 3, c.ItemCount())
}

func TestCart_UpdateQuantityClamps(t *testing.T) {
	c := New(NewMemoryStorage())
	assert.NoError(t, c.AddItem(studs()))
	id := c.Items()[0].ID

	assert.NoError(t, c.UpdateQuantity(id, 7))
	assert.Equal(t, 7, c.Items()[0].Quantity)

	assert.NoError(t, c.UpdateQuantity(id, 99))
	assert.Equal(t, 10, c.Items()[0].Quantity)

	assert.NoError(t, c.UpdateQuantity(id, 0))
	assert.Equal(t, 1, c.Items()[0].Quantity)
}

func TestCart_RemoveAndClear(t *testing.T) {
	c := New(NewMemoryStorage())
	assert.NoError(t, c.AddItem(hoops()))
	assert.NoError(t, c.AddItem(studs()))

	id := c.Items()[0].ID
	assert.NoError(t, c.RemoveItem(id))
	assert.Len(t, c.Items(), 1)

	assert.NoError(t, c.Clear())
	assert.Empty(t, c.Items())
	assert.Zero(t, c.ItemCount())
}

func TestCart_Total(t *testing.T) {
	c := New(NewMemoryStorage())
	assert.NoError(t, c.AddItem(hoops()))
	assert.NoError(t, c.AddItem(studs()))
	id := c.Items()[1].ID
	assert.NoError(t, c.UpdateQuantity(id, 4))

	assert.Equal(t, 5000.0+4*1500.0, c.Total())
}

func TestCart_StatePersistsAcrossInstances(t *testing.T) {
	storage := NewMemoryStorage()

	c := New(storage)
	assert.NoError(t, c.AddItem(hoops()))
	assert.NoError(t, c.AddItem(studs()))

	reloaded := New(storage)
	assert.Len(t, reloaded.Items(), 2)
	assert.Equal(t, c.Total(), reloaded.Total())
}

func TestFileStorage_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cart.json")
	storage := NewFileStorage(path)

	// Missing file is an empty cart, not an error.
	items, err := storage.Load()
	assert.NoError(t, err)
	assert.Empty(t, items)

	c := New(storage)
	assert.NoError(t, c.AddItem(hoops()))

	reloaded := New(NewFileStorage(path))
	assert.Len(t, reloaded.Items(), 1)
	assert.Equal(t, "Gold Hoops", reloaded.Items()[0].Name)
}

func TestFileStorage_LastWriteWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cart.json")

	first := New(NewFileStorage(path))
	second := New(NewFileStorage(path))

	assert.NoError(t, first.AddItem(hoops()))
	assert.NoError(t, second.AddItem(studs()))

	reloaded := New(NewFileStorage(path))
	items := reloaded.Items()
	assert.Len(t, items, 1)
	assert.Equal(t, uint64(2), items[0].ProductID)
}
