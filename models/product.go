package models

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID          uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string  `gorm:"not null" json:"name"`
	Description string  `json:"description"`
	Price       float64 `gorm:"not null" json:"price"`
	Category    string  `gorm:"index" json:"category"`
	Flavour     string  `gorm:"index" json:"flavour"`
	Weight      string  `json:"weight"`
	Stock       int     `json:"stock"`
	// Images and CloudinaryPublicIDs are positionally correlated. The public
	// ids exist only for deletion and are stripped from public responses.
	Images              []string `gorm:"serializer:json" json:"images"`
	CloudinaryPublicIDs []string `gorm:"serializer:json" json:"-"`
	IsFeatured          bool     `gorm:"default:false" json:"is_featured"`
	Rating              float64  `json:"rating"`
	ReviewsCount        int      `json:"reviews_count"`
	Tags                []string `gorm:"serializer:json" json:"tags"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"-"`
}
