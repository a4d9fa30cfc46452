package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"portfolio-tracker/internal/model"
)

// AccountRepository defines portfolio account persistence operations.
// Every lookup is scoped to the owning user: a row owned by someone else
// behaves exactly like a row that does not exist.
type AccountRepository interface {
	Create(ctx context.Context, account *model.PortfolioAccount) error
	Update(ctx context.Context, account *model.PortfolioAccount) error
	FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*model.PortfolioAccount, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]model.PortfolioAccount, error)
	Delete(ctx context.Context, account *model.PortfolioAccount) error
	DeleteEntries(ctx context.Context, accountID uuid.UUID) (int64, error)
	// Transaction methods
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo AccountRepository) error) error
}

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new account repository.
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

// Create creates a new account.
func (r *accountRepository) Create(ctx context.Context, account *model.PortfolioAccount) error {
	return r.db.WithContext(ctx).Create(account).Error
}

// Update updates an existing account.
func (r *accountRepository) Update(ctx context.Context, account *model.PortfolioAccount) error {
	return r.db.WithContext(ctx).Save(account).Error
}

// FindByIDAndUser finds an account by ID for the given owner, entries preloaded.
func (r *accountRepository) FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*model.PortfolioAccount, error) {
	var account model.PortfolioAccount
	if err := r.db.WithContext(ctx).Preload("Entries").
		Where("id = ? AND user_id = ?", id, userID).First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// FindByUser lists all accounts of the owner, entries preloaded for counting and display.
func (r *accountRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]model.PortfolioAccount, error) {
	var accounts []model.PortfolioAccount
	if err := r.db.WithContext(ctx).Preload("Entries").
		Where("user_id = ?", userID).Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

// Delete removes an account row.
func (r *accountRepository) Delete(ctx context.Context, account *model.PortfolioAccount) error {
	return r.db.WithContext(ctx).Delete(account).Error
}

// DeleteEntries removes all entries bound to the account and returns how many were removed.
func (r *accountRepository) DeleteEntries(ctx context.Context, accountID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Where("account_id = ?", accountID).Delete(&model.PortfolioEntry{})
	return res.RowsAffected, res.Error
}

// WithTransaction executes a function within a database transaction.
func (r *accountRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo AccountRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &accountRepository{db: tx}
		return fn(ctx, txRepo)
	})
}
