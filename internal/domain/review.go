package domain

import "time"

// Review is one user's rating of one product. The (user, product) pair is
// unique: posting again overwrites comment and rating.
type Review struct {
	ID        uint64    `json:"id" gorm:"primaryKey;autoIncrement"`
	Comment   string    `json:"comment" gorm:"not null"`
	Rating    float64   `json:"rating" gorm:"not null"`
	UserID    uint64    `json:"userId" gorm:"not null;uniqueIndex:idx_user_product"`
	ProductID uint64    `json:"productId" gorm:"not null;uniqueIndex:idx_user_product"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}
