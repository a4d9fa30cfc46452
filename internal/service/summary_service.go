package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	errs "portfolio-tracker/internal/errors"
	"portfolio-tracker/internal/model"
	"portfolio-tracker/internal/repository"
)

// SummaryService loads a user's entries and runs the pure aggregation
// functions over them. It never touches persistence beyond the initial read.
type SummaryService interface {
	SummaryByType(ctx context.Context, user *model.User) (map[string]decimal.Decimal, error)
	SummaryByAccount(ctx context.Context, user *model.User) (map[string]map[string]decimal.Decimal, error)
	TotalValue(ctx context.Context, user *model.User) (decimal.Decimal, error)
	Distribution(ctx context.Context, c Classifier, user *model.User) (map[string]decimal.Decimal, error)
	CombinedEntries(ctx context.Context, user *model.User) ([]model.PortfolioEntry, error)
}

type summaryService struct {
	entries  repository.EntryRepository
	accounts repository.AccountRepository
	logger   *zap.Logger
}

// NewSummaryService creates a new summary service.
func NewSummaryService(entries repository.EntryRepository, accounts repository.AccountRepository, logger *zap.Logger) SummaryService {
	return &summaryService{entries: entries, accounts: accounts, logger: logger}
}

func (s *summaryService) load(ctx context.Context, user *model.User) ([]model.PortfolioEntry, error) {
	entries, err := s.entries.FindByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("load entries: %w", err)
	}
	return entries, nil
}

// SummaryByType sums amounts per entry type across the whole portfolio.
func (s *summaryService) SummaryByType(ctx context.Context, user *model.User) (map[string]decimal.Decimal, error) {
	entries, err := s.load(ctx, user)
	if err != nil {
		return nil, err
	}
	return GroupSum(entries, ClassifierType), nil
}

// SummaryByAccount sums amounts per entry type within each account,
// keyed by account name.
func (s *summaryService) SummaryByAccount(ctx context.Context, user *model.User) (map[string]map[string]decimal.Decimal, error) {
	accounts, err := s.accounts.FindByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("load accounts: %w", err)
	}
	names := make(map[uuid.UUID]string, len(accounts))
	for i := range accounts {
		names[accounts[i].ID] = accounts[i].Name
	}

	entries, err := s.load(ctx, user)
	if err != nil {
		return nil, err
	}

	summary := make(map[string]map[string]decimal.Decimal, len(accounts))
	for i := range entries {
		name, ok := names[entries[i].AccountID]
		if !ok {
			continue
		}
		byType, ok := summary[name]
		if !ok {
			byType = make(map[string]decimal.Decimal)
			summary[name] = byType
		}
		key := string(entries[i].Type)
		byType[key] = byType[key].Add(entries[i].Amount)
	}
	return summary, nil
}

// TotalValue sums every entry amount of the user.
func (s *summaryService) TotalValue(ctx context.Context, user *model.User) (decimal.Decimal, error) {
	entries, err := s.load(ctx, user)
	if err != nil {
		return decimal.Zero, err
	}
	return Total(entries), nil
}

// Distribution sums amounts per key of the given classifier.
func (s *summaryService) Distribution(ctx context.Context, c Classifier, user *model.User) (map[string]decimal.Decimal, error) {
	if !c.Valid() {
		return nil, errs.NewValidationError("classifier", fmt.Sprintf("unknown classifier %q", c))
	}
	entries, err := s.load(ctx, user)
	if err != nil {
		return nil, err
	}
	return GroupSum(entries, c), nil
}

// CombinedEntries returns the user's entries with same-key holdings merged.
func (s *summaryService) CombinedEntries(ctx context.Context, user *model.User) ([]model.PortfolioEntry, error) {
	entries, err := s.load(ctx, user)
	if err != nil {
		return nil, err
	}
	return Combine(entries), nil
}
