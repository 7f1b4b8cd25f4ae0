package domain

import "time"

type Product struct {
	ID            uint64    `json:"id" gorm:"primaryKey;autoIncrement"`
	Name          string    `json:"name" gorm:"not null"`
	Description   string    `json:"description,omitempty"`
	ProductNumber string    `json:"productNumber" gorm:"size:191;uniqueIndex;not null"`
	Price         float64   `json:"price" gorm:"not null"`
	Stock         int       `json:"stock" gorm:"not null;default:0"`
	CategoryID    uint64    `json:"categoryId" gorm:"not null;index"`
	Category      *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	ImageURL      string    `json:"imageUrl" gorm:"not null"`
	Images        []string  `json:"images,omitempty" gorm:"serializer:json"`
	IsActive      bool      `json:"isActive" gorm:"not null;default:true"`
	CreatedAt     time.Time `json:"createdAt" gorm:"autoCreateTime"`
}
