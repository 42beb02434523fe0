package domain

import "time"

// User carries only what the storefront and stats need. Credentials,
// reset tokens and session state live in the auth layer, not here.
type User struct {
	ID           uint64    `json:"id" gorm:"primaryKey;autoIncrement"`
	Username     string    `json:"username" gorm:"uniqueIndex;size:191;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:191;not null"`
	Role         string    `json:"role" gorm:"default:'user'"`
	ProfileImage string    `json:"profileImage"`
	Bio          string    `json:"bio" gorm:"size:200"`
	Profession   string    `json:"profession"`
	CreatedAt    time.Time `json:"createdAt" gorm:"autoCreateTime"`
}
