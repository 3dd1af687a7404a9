package models

import "time"

// UserAddress is a postal address owned by exactly one user. Updates
// replace all four location fields atomically; the owner never changes.
type UserAddress struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	UserID     uint   `gorm:"not null;index" json:"-"`
	Address    string `gorm:"size:255;not null" json:"address"`
	City       string `gorm:"size:255;not null" json:"city"`
	Country    string `gorm:"size:255;not null" json:"country"`
	PostalCode string `gorm:"size:20;not null" json:"postal_code"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *UserAddress) Saved() bool {
	return a.ID != 0
}
