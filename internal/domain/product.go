package domain

import "time"

type Product struct {
	ID          uint64    `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string    `json:"name" gorm:"not null"`
	Category    string    `json:"category" gorm:"index"`
	Description string    `json:"description"`
	Price       float64   `json:"price" gorm:"not null"`
	OldPrice    float64   `json:"oldPrice"`
	Image       string    `json:"image"`
	Color       string    `json:"color" gorm:"index"`
	Rating      float64   `json:"rating" gorm:"default:0"`
	AuthorID    uint64    `json:"authorId" gorm:"index"`
	CreatedAt   time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

// ProductFilter narrows catalog listings. Zero values mean "no filter";
// "all" for category/color is treated the same as empty.
type ProductFilter struct {
	Category string
	Color    string
	MinPrice float64
	MaxPrice float64
	Page     int
	Limit    int
}
