package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	errs "portfolio-tracker/internal/errors"
	"portfolio-tracker/internal/model"
	"portfolio-tracker/internal/repository"
)

// EntryService owns portfolio entry records. Every entry is bound to one
// account and carries a denormalized copy of the account's owner, which this
// service keeps in sync on every write.
type EntryService interface {
	AddEntry(ctx context.Context, entry *model.PortfolioEntry, user *model.User) (*model.PortfolioEntry, error)
	UpdateEntry(ctx context.Context, id uuid.UUID, patch *model.PortfolioEntry, user *model.User) (*model.PortfolioEntry, error)
	DeleteEntry(ctx context.Context, id uuid.UUID, user *model.User) error
	GetEntryByID(ctx context.Context, id uuid.UUID, user *model.User) (*model.PortfolioEntry, error)
	GetAllEntries(ctx context.Context, user *model.User) ([]model.PortfolioEntry, error)
	GetEntriesByAccount(ctx context.Context, accountID uuid.UUID, user *model.User) ([]model.PortfolioEntry, error)
	GetEntriesByCurrency(ctx context.Context, currency string, accountID *uuid.UUID, user *model.User) ([]model.PortfolioEntry, error)
	GetEntriesByCountry(ctx context.Context, country string, accountID *uuid.UUID, user *model.User) ([]model.PortfolioEntry, error)
	GetEntriesBySource(ctx context.Context, source string, accountID *uuid.UUID, user *model.User) ([]model.PortfolioEntry, error)
	GetEntriesByType(ctx context.Context, entryType model.EntryType, accountID *uuid.UUID, user *model.User) ([]model.PortfolioEntry, error)
}

// Filterable entry columns. The repository interpolates the column name, so
// only these fixed identifiers ever reach it.
const (
	columnCurrency = "currency"
	columnCountry  = "country"
	columnSource   = "source"
	columnType     = "type"
)

type entryService struct {
	repo     repository.EntryRepository
	accounts AccountService
	logger   *zap.Logger
}

// NewEntryService creates a new entry service.
func NewEntryService(repo repository.EntryRepository, accounts AccountService, logger *zap.Logger) EntryService {
	return &entryService{repo: repo, accounts: accounts, logger: logger}
}

func validateEntry(e *model.PortfolioEntry) error {
	if e.Type == "" {
		return errs.NewValidationError("type", "entry type cannot be empty")
	}
	if !e.Type.Valid() {
		return errs.NewValidationError("type", fmt.Sprintf("unknown entry type %q", e.Type))
	}
	if strings.TrimSpace(e.Source) == "" {
		return errs.NewValidationError("source", "source cannot be empty")
	}
	if e.Amount.Sign() <= 0 {
		return errs.NewValidationError("amount", "amount must be greater than zero")
	}
	if strings.TrimSpace(e.Currency) == "" {
		return errs.NewValidationError("currency", "currency cannot be empty")
	}
	if strings.TrimSpace(e.Country) == "" {
		return errs.NewValidationError("country", "country cannot be empty")
	}
	return nil
}

// AddEntry binds the entry to an account owned by user and persists it.
// The account lookup doubles as the ownership check: a foreign account id
// fails with not-found, exactly like an id that does not exist.
func (s *entryService) AddEntry(ctx context.Context, entry *model.PortfolioEntry, user *model.User) (*model.PortfolioEntry, error) {
	if entry.AccountID == uuid.Nil {
		return nil, errs.NewValidationError("account_id", "account id must be present")
	}

	account, err := s.accounts.GetAccountByID(ctx, entry.AccountID, user)
	if err != nil {
		return nil, err
	}

	entry.UserID = user.ID
	entry.AccountID = account.ID
	if account.UserID != entry.UserID {
		return nil, fmt.Errorf("entry owner does not match account owner: %w", errs.ErrInvariant)
	}
	if err := validateEntry(entry); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("create entry: %w", err)
	}
	s.logger.Info("added entry",
		zap.String("entry_id", entry.ID.String()),
		zap.String("account_id", account.ID.String()),
		zap.String("user_id", user.ID.String()))
	return entry, nil
}

// UpdateEntry overwrites the mutable fields of an owned entry. When the patch
// moves the entry to a different account, the new account is ownership-checked
// first. The check and the write share one transaction.
func (s *entryService) UpdateEntry(ctx context.Context, id uuid.UUID, patch *model.PortfolioEntry, user *model.User) (*model.PortfolioEntry, error) {
	var updated *model.PortfolioEntry
	err := s.repo.WithTransaction(ctx, func(ctx context.Context, repo repository.EntryRepository) error {
		existing, err := repo.FindByIDAndUser(ctx, id, user.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.ErrEntryNotFound
			}
			return fmt.Errorf("find entry %s: %w", id, err)
		}

		existing.Type = patch.Type
		existing.Source = patch.Source
		existing.Amount = patch.Amount
		existing.Currency = patch.Currency
		existing.Country = patch.Country
		existing.Notes = patch.Notes

		if patch.AccountID != uuid.Nil && patch.AccountID != existing.AccountID {
			account, err := s.accounts.GetAccountByID(ctx, patch.AccountID, user)
			if err != nil {
				return err
			}
			existing.AccountID = account.ID
		}

		// Should be unreachable; guarded so a broken rebinding can never persist.
		if existing.AccountID == uuid.Nil {
			s.logger.Error("entry lost its account during update",
				zap.String("entry_id", id.String()),
				zap.String("user_id", user.ID.String()))
			return fmt.Errorf("entry %s has no account after update: %w", id, errs.ErrInvariant)
		}

		if err := validateEntry(existing); err != nil {
			return err
		}
		if err := repo.Update(ctx, existing); err != nil {
			return fmt.Errorf("update entry %s: %w", id, err)
		}
		updated = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("updated entry",
		zap.String("entry_id", id.String()),
		zap.String("user_id", user.ID.String()))
	return updated, nil
}

// DeleteEntry removes an owned entry.
func (s *entryService) DeleteEntry(ctx context.Context, id uuid.UUID, user *model.User) error {
	err := s.repo.WithTransaction(ctx, func(ctx context.Context, repo repository.EntryRepository) error {
		entry, err := repo.FindByIDAndUser(ctx, id, user.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.ErrEntryNotFound
			}
			return fmt.Errorf("find entry %s: %w", id, err)
		}
		if err := repo.Delete(ctx, entry); err != nil {
			return fmt.Errorf("delete entry %s: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Info("deleted entry",
		zap.String("entry_id", id.String()),
		zap.String("user_id", user.ID.String()))
	return nil
}

// GetEntryByID fetches a single owned entry.
func (s *entryService) GetEntryByID(ctx context.Context, id uuid.UUID, user *model.User) (*model.PortfolioEntry, error) {
	entry, err := s.repo.FindByIDAndUser(ctx, id, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrEntryNotFound
		}
		return nil, fmt.Errorf("find entry %s: %w", id, err)
	}
	return entry, nil
}

// GetAllEntries lists every entry of the user, newest first.
func (s *entryService) GetAllEntries(ctx context.Context, user *model.User) ([]model.PortfolioEntry, error) {
	entries, err := s.repo.FindByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	return entries, nil
}

// GetEntriesByAccount lists one account's entries after ownership-checking the account.
func (s *entryService) GetEntriesByAccount(ctx context.Context, accountID uuid.UUID, user *model.User) ([]model.PortfolioEntry, error) {
	account, err := s.accounts.GetAccountByID(ctx, accountID, user)
	if err != nil {
		return nil, err
	}
	entries, err := s.repo.FindByAccountAndUser(ctx, account.ID, user.ID)
	if err != nil {
		return nil, fmt.Errorf("list entries of account %s: %w", accountID, err)
	}
	return entries, nil
}

func (s *entryService) filter(ctx context.Context, field, value string, accountID *uuid.UUID, user *model.User) ([]model.PortfolioEntry, error) {
	if accountID == nil {
		entries, err := s.repo.FindByFieldAndUser(ctx, field, value, user.ID)
		if err != nil {
			return nil, fmt.Errorf("filter entries by %s: %w", field, err)
		}
		return entries, nil
	}

	account, err := s.accounts.GetAccountByID(ctx, *accountID, user)
	if err != nil {
		return nil, err
	}
	entries, err := s.repo.FindByFieldAndAccountAndUser(ctx, field, value, account.ID, user.ID)
	if err != nil {
		return nil, fmt.Errorf("filter entries by %s: %w", field, err)
	}
	return entries, nil
}

// GetEntriesByCurrency filters on exact currency match, optionally within one account.
func (s *entryService) GetEntriesByCurrency(ctx context.Context, currency string, accountID *uuid.UUID, user *model.User) ([]model.PortfolioEntry, error) {
	return s.filter(ctx, columnCurrency, currency, accountID, user)
}

// GetEntriesByCountry filters on exact country match, optionally within one account.
func (s *entryService) GetEntriesByCountry(ctx context.Context, country string, accountID *uuid.UUID, user *model.User) ([]model.PortfolioEntry, error) {
	return s.filter(ctx, columnCountry, country, accountID, user)
}

// GetEntriesBySource filters on exact source match, optionally within one account.
func (s *entryService) GetEntriesBySource(ctx context.Context, source string, accountID *uuid.UUID, user *model.User) ([]model.PortfolioEntry, error) {
	return s.filter(ctx, columnSource, source, accountID, user)
}

// GetEntriesByType filters on entry type, optionally within one account.
func (s *entryService) GetEntriesByType(ctx context.Context, entryType model.EntryType, accountID *uuid.UUID, user *model.User) ([]model.PortfolioEntry, error) {
	if !entryType.Valid() {
		return nil, errs.NewValidationError("type", fmt.Sprintf("unknown entry type %q", entryType))
	}
	return s.filter(ctx, columnType, string(entryType), accountID, user)
}
