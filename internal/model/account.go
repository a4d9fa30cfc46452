package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PortfolioAccount is a named grouping of entries owned by one user,
// typically a family member or a broker.
type PortfolioAccount struct {
	ID           uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	UserID       uuid.UUID `json:"-" gorm:"type:char(36);not null;index"`
	Name         string    `json:"name" gorm:"size:255;not null"`
	Relationship string    `json:"relationship" gorm:"size:255;not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	User    User             `json:"-" gorm:"foreignKey:UserID"`
	Entries []PortfolioEntry `json:"entries,omitempty" gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate sets UUID before creating the record.
func (a *PortfolioAccount) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
