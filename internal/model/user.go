package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents an authenticated user resolved from an external identity provider.
type User struct {
	ID         uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	Email      string     `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Name       string     `json:"name" gorm:"size:255;not null"`
	ProviderID *string    `json:"provider_id,omitempty" gorm:"uniqueIndex;size:255"` // provider subject id, nil until linked
	ImageURL   string     `json:"image_url,omitempty" gorm:"size:512"`
	CreatedAt  time.Time  `json:"created_at"`
	LastLogin  *time.Time `json:"last_login,omitempty"`

	// Relations
	Accounts []PortfolioAccount `json:"-" gorm:"foreignKey:UserID"`
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
