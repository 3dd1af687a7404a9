package models

import (
	"time"

	"gorm.io/gorm"
)

// RegistrationProvider records how a user account was created. It is set
// once at registration and never changes afterwards.
type RegistrationProvider string

const (
	ProviderLocal  RegistrationProvider = "LOCAL"
	ProviderGoogle RegistrationProvider = "GOOGLE"
)

// User is the root aggregate: account data plus its owned addresses and
// maker tools. Email and Provider are immutable after creation.
type User struct {
	ID               uint                 `gorm:"primaryKey" json:"id"`
	Email            string               `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Pseudo           string               `gorm:"size:255;not null" json:"pseudo"`
	Password         string               `gorm:"not null" json:"-"`
	FirstName        string               `gorm:"size:255" json:"first_name"`
	LastName         string               `gorm:"size:255" json:"last_name"`
	Phone            string               `gorm:"size:30" json:"phone"`
	IsMaker          bool                 `gorm:"default:false" json:"is_maker"`
	MakerDescription string               `gorm:"type:text" json:"maker_description"`
	Provider         RegistrationProvider `gorm:"size:20;not null" json:"-"`

	EmailVerified     bool   `gorm:"default:false" json:"email_verified"`
	VerificationToken string `gorm:"size:36;index" json:"-"`

	Addresses []UserAddress `gorm:"foreignKey:UserID" json:"addresses"`
	Tools     []MakerTool   `gorm:"foreignKey:UserID" json:"maker_tools"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Saved reports whether the user has been assigned a persistent identifier.
// A zero ID means the entity only exists in memory.
func (u *User) Saved() bool {
	return u.ID != 0
}
