package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// EntryType classifies a portfolio entry.
type EntryType string

const (
	EntryTypeStock        EntryType = "STOCK"
	EntryTypeBond         EntryType = "BOND"
	EntryTypeCash         EntryType = "CASH"
	EntryTypeCrypto       EntryType = "CRYPTO"
	EntryTypeMutualFund   EntryType = "MUTUAL_FUND"
	EntryTypeRealEstate   EntryType = "REAL_ESTATE"
	EntryTypeFixedDeposit EntryType = "FIXED_DEPOSIT"
	EntryTypeOther        EntryType = "OTHER"
)

// Valid reports whether t is a known entry type.
func (t EntryType) Valid() bool {
	switch t {
	case EntryTypeStock, EntryTypeBond, EntryTypeCash, EntryTypeCrypto,
		EntryTypeMutualFund, EntryTypeRealEstate, EntryTypeFixedDeposit, EntryTypeOther:
		return true
	}
	return false
}

// PortfolioEntry is one recorded holding bound to exactly one account.
// UserID duplicates the account's owner so authorization checks never
// have to join through the account.
type PortfolioEntry struct {
	ID        uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	UserID    uuid.UUID       `json:"-" gorm:"type:char(36);not null;index"`
	AccountID uuid.UUID       `json:"account_id" gorm:"type:char(36);not null;index"`
	Type      EntryType       `json:"type" gorm:"type:varchar(20);not null;default:'STOCK';index"`
	Source    string          `json:"source" gorm:"size:255;not null"`
	Amount    decimal.Decimal `json:"amount" gorm:"type:decimal(20,2);not null"`
	Currency  string          `json:"currency" gorm:"size:10;not null;index"`
	Country   string          `json:"country" gorm:"size:100;not null;index"`
	Notes     string          `json:"notes,omitempty" gorm:"type:text"`
	DateAdded time.Time       `json:"date_added"`

	// Relations
	User    User             `json:"-" gorm:"foreignKey:UserID"`
	Account PortfolioAccount `json:"-" gorm:"foreignKey:AccountID"`
}

// BeforeCreate sets UUID and the creation timestamp before creating the record.
func (e *PortfolioEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.DateAdded.IsZero() {
		e.DateAdded = time.Now()
	}
	return nil
}
