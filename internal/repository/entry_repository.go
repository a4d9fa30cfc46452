package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"portfolio-tracker/internal/model"
)

// EntryRepository defines portfolio entry persistence operations.
// Reads are owner-scoped through the denormalized user_id column so
// authorization never joins through the account table.
type EntryRepository interface {
	Create(ctx context.Context, entry *model.PortfolioEntry) error
	Update(ctx context.Context, entry *model.PortfolioEntry) error
	Delete(ctx context.Context, entry *model.PortfolioEntry) error
	FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*model.PortfolioEntry, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]model.PortfolioEntry, error)
	FindByAccountAndUser(ctx context.Context, accountID, userID uuid.UUID) ([]model.PortfolioEntry, error)
	FindByFieldAndUser(ctx context.Context, field, value string, userID uuid.UUID) ([]model.PortfolioEntry, error)
	FindByFieldAndAccountAndUser(ctx context.Context, field, value string, accountID, userID uuid.UUID) ([]model.PortfolioEntry, error)
	// Transaction methods
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo EntryRepository) error) error
}

type entryRepository struct {
	db *gorm.DB
}

// NewEntryRepository creates a new entry repository.
func NewEntryRepository(db *gorm.DB) EntryRepository {
	return &entryRepository{db: db}
}

// Create creates a new entry.
func (r *entryRepository) Create(ctx context.Context, entry *model.PortfolioEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// Update updates an existing entry.
func (r *entryRepository) Update(ctx context.Context, entry *model.PortfolioEntry) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

// Delete removes an entry.
func (r *entryRepository) Delete(ctx context.Context, entry *model.PortfolioEntry) error {
	return r.db.WithContext(ctx).Delete(entry).Error
}

// FindByIDAndUser finds an entry by ID for the given owner.
func (r *entryRepository) FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*model.PortfolioEntry, error) {
	var entry model.PortfolioEntry
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// FindByUser lists all entries of the owner, newest first.
func (r *entryRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]model.PortfolioEntry, error) {
	var entries []model.PortfolioEntry
	if err := r.db.WithContext(ctx).Preload("Account").
		Where("user_id = ?", userID).
		Order("date_added DESC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// FindByAccountAndUser lists the owner's entries of one account, newest first.
func (r *entryRepository) FindByAccountAndUser(ctx context.Context, accountID, userID uuid.UUID) ([]model.PortfolioEntry, error) {
	var entries []model.PortfolioEntry
	if err := r.db.WithContext(ctx).Preload("Account").
		Where("account_id = ? AND user_id = ?", accountID, userID).
		Order("date_added DESC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// FindByFieldAndUser filters the owner's entries on an exact column match.
// field must be one of the fixed column names supplied by the service layer.
func (r *entryRepository) FindByFieldAndUser(ctx context.Context, field, value string, userID uuid.UUID) ([]model.PortfolioEntry, error) {
	var entries []model.PortfolioEntry
	if err := r.db.WithContext(ctx).Preload("Account").
		Where(field+" = ? AND user_id = ?", value, userID).
		Order("date_added DESC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// FindByFieldAndAccountAndUser filters one account's entries on an exact column match.
func (r *entryRepository) FindByFieldAndAccountAndUser(ctx context.Context, field, value string, accountID, userID uuid.UUID) ([]model.PortfolioEntry, error) {
	var entries []model.PortfolioEntry
	if err := r.db.WithContext(ctx).Preload("Account").
		Where(field+" = ? AND account_id = ? AND user_id = ?", value, accountID, userID).
		Order("date_added DESC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// WithTransaction executes a function within a database transaction.
func (r *entryRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo EntryRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &entryRepository{db: tx}
		return fn(ctx, txRepo)
	})
}
