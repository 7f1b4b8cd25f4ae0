package domain

import "time"

type Category struct {
	ID          uint64    `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string    `json:"name" gorm:"size:191;uniqueIndex;not null"`
	Slug        string    `json:"slug" gorm:"size:191;uniqueIndex;not null"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

// CategoryWithCount is the admin list row: a category plus how many
// products currently point at it.
type CategoryWithCount struct {
	Category      `gorm:"embedded"`
	ProductsCount int64 `json:"productsCount"`
}
