package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"gorm.io/gorm"

	errs "portfolio-tracker/internal/errors"
	"portfolio-tracker/internal/model"
	"portfolio-tracker/internal/repository"
)

// MockEntryRepository is a mock implementation of EntryRepository.
type MockEntryRepository struct {
	mock.Mock
}

func (m *MockEntryRepository) Create(ctx context.Context, entry *model.PortfolioEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockEntryRepository) Update(ctx context.Context, entry *model.PortfolioEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockEntryRepository) Delete(ctx context.Context, entry *model.PortfolioEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockEntryRepository) FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*model.PortfolioEntry, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PortfolioEntry), args.Error(1)
}

func (m *MockEntryRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]model.PortfolioEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PortfolioEntry), args.Error(1)
}

func (m *MockEntryRepository) FindByAccountAndUser(ctx context.Context, accountID, userID uuid.UUID) ([]model.PortfolioEntry, error) {
	args := m.Called(ctx, accountID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PortfolioEntry), args.Error(1)
}

func (m *MockEntryRepository) FindByFieldAndUser(ctx context.Context, field, value string, userID uuid.UUID) ([]model.PortfolioEntry, error) {
	args := m.Called(ctx, field, value, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PortfolioEntry), args.Error(1)
}

func (m *MockEntryRepository) FindByFieldAndAccountAndUser(ctx context.Context, field, value string, accountID, userID uuid.UUID) ([]model.PortfolioEntry, error) {
	args := m.Called(ctx, field, value, accountID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PortfolioEntry), args.Error(1)
}

func (m *MockEntryRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo repository.EntryRepository) error) error {
	args := m.Called(ctx, fn)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(ctx, m)
}

// MockAccountService is a mock implementation of AccountService.
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) CreateAccount(ctx context.Context, name, relationship string, user *model.User) (*model.PortfolioAccount, error) {
	args := m.Called(ctx, name, relationship, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PortfolioAccount), args.Error(1)
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, id uuid.UUID, user *model.User) (*model.PortfolioAccount, error) {
	args := m.Called(ctx, id, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PortfolioAccount), args.Error(1)
}

func (m *MockAccountService) GetAllAccounts(ctx context.Context, user *model.User) ([]model.PortfolioAccount, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PortfolioAccount), args.Error(1)
}

func (m *MockAccountService) UpdateAccount(ctx context.Context, id uuid.UUID, name, relationship string, user *model.User) (*model.PortfolioAccount, error) {
	args := m.Called(ctx, id, name, relationship, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PortfolioAccount), args.Error(1)
}

func (m *MockAccountService) DeleteAccount(ctx context.Context, id uuid.UUID, user *model.User) error {
	args := m.Called(ctx, id, user)
	return args.Error(0)
}

type entryFixture struct {
	repo     *MockEntryRepository
	accounts *MockAccountService
	svc      EntryService
	user     *model.User
	account  *model.PortfolioAccount
}

func newEntryFixture() *entryFixture {
	repo := new(MockEntryRepository)
	accounts := new(MockAccountService)
	user := &model.User{ID: uuid.New(), Email: "owner@example.com", Name: "Owner"}
	account := &model.PortfolioAccount{ID: uuid.New(), UserID: user.ID, Name: "Mom", Relationship: "parent"}
	return &entryFixture{
		repo:     repo,
		accounts: accounts,
		svc:      NewEntryService(repo, accounts, zap.NewNop()),
		user:     user,
		account:  account,
	}
}

func validEntry(accountID uuid.UUID, amount string) *model.PortfolioEntry {
	return &model.PortfolioEntry{
		AccountID: accountID,
		Type:      model.EntryTypeStock,
		Source:    "Fidelity",
		Amount:    decimal.RequireFromString(amount),
		Currency:  "USD",
		Country:   "US",
	}
}

func TestAddEntry_Success(t *testing.T) {
	f := newEntryFixture()
	entry := validEntry(f.account.ID, "100.00")

	f.accounts.On("GetAccountByID", mock.Anything, f.account.ID, f.user).Return(f.account, nil)
	f.repo.On("Create", mock.Anything, mock.MatchedBy(func(e *model.PortfolioEntry) bool {
		return e.UserID == f.user.ID && e.AccountID == f.account.ID
	})).Return(nil)

	saved, err := f.svc.AddEntry(context.Background(), entry, f.user)

	assert.NoError(t, err)
	assert.Equal(t, f.user.ID, saved.UserID)
	f.repo.AssertExpectations(t)
}

func TestAddEntry_ZeroAmount(t *testing.T) {
	f := newEntryFixture()
	entry := validEntry(f.account.ID, "100.00")
	entry.Amount = decimal.Zero

	f.accounts.On("GetAccountByID", mock.Anything, f.account.ID, f.user).Return(f.account, nil)

	_, err := f.svc.AddEntry(context.Background(), entry, f.user)

	var ve *errs.ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.Equal(t, "amount", ve.Field)
	f.repo.AssertNotCalled(t, "Create")
}

func TestAddEntry_NegativeAmount(t *testing.T) {
	f := newEntryFixture()
	entry := validEntry(f.account.ID, "100.00")
	entry.Amount = decimal.RequireFromString("-5")

	f.accounts.On("GetAccountByID", mock.Anything, f.account.ID, f.user).Return(f.account, nil)

	_, err := f.svc.AddEntry(context.Background(), entry, f.user)

	var ve *errs.ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.Equal(t, "amount", ve.Field)
}

func TestAddEntry_BlankCurrency(t *testing.T) {
	f := newEntryFixture()
	entry := validEntry(f.account.ID, "100.00")
	entry.Currency = "  "

	f.accounts.On("GetAccountByID", mock.Anything, f.account.ID, f.user).Return(f.account, nil)

	_, err := f.svc.AddEntry(context.Background(), entry, f.user)

	var ve *errs.ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.Equal(t, "currency", ve.Field)
}

func TestAddEntry_UnknownType(t *testing.T) {
	f := newEntryFixture()
	entry := validEntry(f.account.ID, "100.00")
	entry.Type = "NFT"

	f.accounts.On("GetAccountByID", mock.Anything, f.account.ID, f.user).Return(f.account, nil)

	_, err := f.svc.AddEntry(context.Background(), entry, f.user)

	var ve *errs.ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.Equal(t, "type", ve.Field)
}

func TestAddEntry_MissingAccount(t *testing.T) {
	f := newEntryFixture()
	entry := validEntry(uuid.Nil, "100.00")

	_, err := f.svc.AddEntry(context.Background(), entry, f.user)

	var ve *errs.ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.Equal(t, "account_id", ve.Field)
	f.accounts.AssertNotCalled(t, "GetAccountByID")
}

func TestAddEntry_ForeignAccount(t *testing.T) {
	f := newEntryFixture()
	foreign := uuid.New()
	entry := validEntry(foreign, "100.00")

	// The account belongs to someone else; the ownership-scoped lookup misses.
	f.accounts.On("GetAccountByID", mock.Anything, foreign, f.user).Return(nil, errs.ErrAccountNotFound)

	_, err := f.svc.AddEntry(context.Background(), entry, f.user)

	assert.ErrorIs(t, err, errs.ErrAccountNotFound)
	f.repo.AssertNotCalled(t, "Create")
}

func TestUpdateEntry_Success(t *testing.T) {
	f := newEntryFixture()
	id := uuid.New()
	existing := validEntry(f.account.ID, "100.00")
	existing.ID = id
	existing.UserID = f.user.ID

	patch := validEntry(f.account.ID, "250.00")
	patch.Notes = "rebalanced"

	f.repo.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
	f.repo.On("FindByIDAndUser", mock.Anything, id, f.user.ID).Return(existing, nil)
	f.repo.On("Update", mock.Anything, mock.MatchedBy(func(e *model.PortfolioEntry) bool {
		return e.Amount.Equal(decimal.RequireFromString("250.00")) && e.Notes == "rebalanced"
	})).Return(nil)

	updated, err := f.svc.UpdateEntry(context.Background(), id, patch, f.user)

	assert.NoError(t, err)
	assert.Equal(t, "rebalanced", updated.Notes)
	f.repo.AssertExpectations(t)
}

func TestUpdateEntry_NotOwned(t *testing.T) {
	f := newEntryFixture()
	id := uuid.New()

	f.repo.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
	f.repo.On("FindByIDAndUser", mock.Anything, id, f.user.ID).Return(nil, gorm.ErrRecordNotFound)

	_, err := f.svc.UpdateEntry(context.Background(), id, validEntry(f.account.ID, "10.00"), f.user)

	assert.ErrorIs(t, err, errs.ErrEntryNotFound)
}

func TestUpdateEntry_RebindsToOwnedAccount(t *testing.T) {
	f := newEntryFixture()
	id := uuid.New()
	existing := validEntry(f.account.ID, "100.00")
	existing.ID = id
	existing.UserID = f.user.ID

	other := &model.PortfolioAccount{ID: uuid.New(), UserID: f.user.ID, Name: "Self", Relationship: "self"}
	patch := validEntry(other.ID, "100.00")

	f.repo.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
	f.repo.On("FindByIDAndUser", mock.Anything, id, f.user.ID).Return(existing, nil)
	f.accounts.On("GetAccountByID", mock.Anything, other.ID, f.user).Return(other, nil)
	f.repo.On("Update", mock.Anything, mock.MatchedBy(func(e *model.PortfolioEntry) bool {
		return e.AccountID == other.ID
	})).Return(nil)

	updated, err := f.svc.UpdateEntry(context.Background(), id, patch, f.user)

	assert.NoError(t, err)
	assert.Equal(t, other.ID, updated.AccountID)
}

func TestUpdateEntry_RebindToForeignAccount(t *testing.T) {
	f := newEntryFixture()
	id := uuid.New()
	existing := validEntry(f.account.ID, "100.00")
	existing.ID = id
	existing.UserID = f.user.ID

	foreign := uuid.New()
	patch := validEntry(foreign, "100.00")

	f.repo.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
	f.repo.On("FindByIDAndUser", mock.Anything, id, f.user.ID).Return(existing, nil)
	f.accounts.On("GetAccountByID", mock.Anything, foreign, f.user).Return(nil, errs.ErrAccountNotFound)

	_, err := f.svc.UpdateEntry(context.Background(), id, patch, f.user)

	assert.ErrorIs(t, err, errs.ErrAccountNotFound)
	f.repo.AssertNotCalled(t, "Update")
}

func TestDeleteEntry_NotOwned(t *testing.T) {
	f := newEntryFixture()
	id := uuid.New()

	f.repo.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
	f.repo.On("FindByIDAndUser", mock.Anything, id, f.user.ID).Return(nil, gorm.ErrRecordNotFound)

	err := f.svc.DeleteEntry(context.Background(), id, f.user)

	assert.ErrorIs(t, err, errs.ErrEntryNotFound)
	f.repo.AssertNotCalled(t, "Delete")
}

func TestGetEntriesByAccount_ChecksOwnershipFirst(t *testing.T) {
	f := newEntryFixture()
	foreign := uuid.New()

	f.accounts.On("GetAccountByID", mock.Anything, foreign, f.user).Return(nil, errs.ErrAccountNotFound)

	_, err := f.svc.GetEntriesByAccount(context.Background(), foreign, f.user)

	assert.ErrorIs(t, err, errs.ErrAccountNotFound)
	f.repo.AssertNotCalled(t, "FindByAccountAndUser")
}

func TestGetEntriesByCurrency_AllAccounts(t *testing.T) {
	f := newEntryFixture()
	want := []model.PortfolioEntry{*validEntry(f.account.ID, "100.00")}

	f.repo.On("FindByFieldAndUser", mock.Anything, "currency", "USD", f.user.ID).Return(want, nil)

	got, err := f.svc.GetEntriesByCurrency(context.Background(), "USD", nil, f.user)

	assert.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestGetEntriesByCurrency_AccountScoped(t *testing.T) {
	f := newEntryFixture()
	want := []model.PortfolioEntry{*validEntry(f.account.ID, "100.00")}

	f.accounts.On("GetAccountByID", mock.Anything, f.account.ID, f.user).Return(f.account, nil)
	f.repo.On("FindByFieldAndAccountAndUser", mock.Anything, "currency", "USD", f.account.ID, f.user.ID).Return(want, nil)

	got, err := f.svc.GetEntriesByCurrency(context.Background(), "USD", &f.account.ID, f.user)

	assert.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestGetEntriesByType_Invalid(t *testing.T) {
	f := newEntryFixture()

	_, err := f.svc.GetEntriesByType(context.Background(), model.EntryType("PONZI"), nil, f.user)

	var ve *errs.ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.Equal(t, "type", ve.Field)
}
