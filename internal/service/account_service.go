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

// AccountService owns the lifecycle of portfolio accounts scoped to one user.
type AccountService interface {
	CreateAccount(ctx context.Context, name, relationship string, user *model.User) (*model.PortfolioAccount, error)
	GetAccountByID(ctx context.Context, id uuid.UUID, user *model.User) (*model.PortfolioAccount, error)
	GetAllAccounts(ctx context.Context, user *model.User) ([]model.PortfolioAccount, error)
	UpdateAccount(ctx context.Context, id uuid.UUID, name, relationship string, user *model.User) (*model.PortfolioAccount, error)
	DeleteAccount(ctx context.Context, id uuid.UUID, user *model.User) error
}

type accountService struct {
	repo   repository.AccountRepository
	logger *zap.Logger
}

// NewAccountService creates a new account service.
func NewAccountService(repo repository.AccountRepository, logger *zap.Logger) AccountService {
	return &accountService{repo: repo, logger: logger}
}

func validateAccount(name, relationship string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValidationError("name", "account name cannot be empty")
	}
	if strings.TrimSpace(relationship) == "" {
		return errs.NewValidationError("relationship", "relationship cannot be empty")
	}
	return nil
}

// CreateAccount validates and persists a new account owned by user.
func (s *accountService) CreateAccount(ctx context.Context, name, relationship string, user *model.User) (*model.PortfolioAccount, error) {
	if err := validateAccount(name, relationship); err != nil {
		return nil, err
	}

	account := &model.PortfolioAccount{
		UserID:       user.ID,
		Name:         name,
		Relationship: relationship,
	}
	if err := s.repo.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}
	s.logger.Info("created account",
		zap.String("account_id", account.ID.String()),
		zap.String("user_id", user.ID.String()))
	return account, nil
}

// GetAccountByID fetches an account owned by user. A row owned by another user
// is reported as not found so existence never leaks across owners.
func (s *accountService) GetAccountByID(ctx context.Context, id uuid.UUID, user *model.User) (*model.PortfolioAccount, error) {
	account, err := s.repo.FindByIDAndUser(ctx, id, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account %s: %w", id, err)
	}
	return account, nil
}

// GetAllAccounts lists the user's accounts with entries loaded.
func (s *accountService) GetAllAccounts(ctx context.Context, user *model.User) ([]model.PortfolioAccount, error) {
	accounts, err := s.repo.FindByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return accounts, nil
}

// UpdateAccount applies the mutable fields after re-validating ownership.
func (s *accountService) UpdateAccount(ctx context.Context, id uuid.UUID, name, relationship string, user *model.User) (*model.PortfolioAccount, error) {
	if err := validateAccount(name, relationship); err != nil {
		return nil, err
	}

	var updated *model.PortfolioAccount
	err := s.repo.WithTransaction(ctx, func(ctx context.Context, repo repository.AccountRepository) error {
		account, err := repo.FindByIDAndUser(ctx, id, user.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.ErrAccountNotFound
			}
			return fmt.Errorf("find account %s: %w", id, err)
		}

		account.Name = name
		account.Relationship = relationship
		if err := repo.Update(ctx, account); err != nil {
			return fmt.Errorf("update account %s: %w", id, err)
		}
		updated = account
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("updated account",
		zap.String("account_id", id.String()),
		zap.String("user_id", user.ID.String()))
	return updated, nil
}

// DeleteAccount removes the account and all its entries in one transaction.
// The number of cascaded entries is logged for auditability.
func (s *accountService) DeleteAccount(ctx context.Context, id uuid.UUID, user *model.User) error {
	var removed int64
	err := s.repo.WithTransaction(ctx, func(ctx context.Context, repo repository.AccountRepository) error {
		account, err := repo.FindByIDAndUser(ctx, id, user.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.ErrAccountNotFound
			}
			return fmt.Errorf("find account %s: %w", id, err)
		}

		removed, err = repo.DeleteEntries(ctx, account.ID)
		if err != nil {
			return fmt.Errorf("delete entries of account %s: %w", id, err)
		}
		if err := repo.Delete(ctx, account); err != nil {
			return fmt.Errorf("delete account %s: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Info("deleted account with entries",
		zap.String("account_id", id.String()),
		zap.String("user_id", user.ID.String()),
		zap.Int64("entries_removed", removed))
	return nil
}
