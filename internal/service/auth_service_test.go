package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"portfolio-tracker/internal/auth"
	"portfolio-tracker/internal/model"
)

// MockIdentityService is a mock implementation of IdentityService.
type MockIdentityService struct {
	mock.Mock
}

func (m *MockIdentityService) Resolve(ctx context.Context, providerID, email, name, imageURL string) (*model.User, error) {
	args := m.Called(ctx, providerID, email, name, imageURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockIdentityService) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

// MockTokenStore is a mock implementation of auth.TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) StoreRefreshToken(ctx context.Context, tokenID string, userID uuid.UUID, email string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, userID, email, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) GetRefreshToken(ctx context.Context, tokenID string) (uuid.UUID, string, error) {
	args := m.Called(ctx, tokenID)
	return args.Get(0).(uuid.UUID), args.String(1), args.Error(2)
}

func (m *MockTokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

func TestLogin_ResolvesIdentityAndIssuesTokens(t *testing.T) {
	identity := new(MockIdentityService)
	tokenStore := new(MockTokenStore)
	jwtService := auth.NewJWTService("test-secret")
	svc := NewAuthService(identity, jwtService, tokenStore)

	resolved := &model.User{ID: uuid.New(), Email: "user@example.com", Name: "User"}
	identity.On("Resolve", mock.Anything, "google-123", "user@example.com", "User", "http://img").Return(resolved, nil)
	tokenStore.On("StoreRefreshToken", mock.Anything, mock.Anything, resolved.ID, resolved.Email, auth.RefreshTokenExpiry).Return(nil)

	user, tokens, err := svc.Login(context.Background(), "google-123", "user@example.com", "User", "http://img")

	assert.NoError(t, err)
	assert.Equal(t, resolved.ID, user.ID)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)

	claims, err := jwtService.ValidateToken(tokens.AccessToken)
	assert.NoError(t, err)
	assert.Equal(t, resolved.ID, claims.UserID)
	tokenStore.AssertExpectations(t)
}

func TestRefreshToken_Valid(t *testing.T) {
	identity := new(MockIdentityService)
	tokenStore := new(MockTokenStore)
	jwtService := auth.NewJWTService("test-secret")
	svc := NewAuthService(identity, jwtService, tokenStore)

	userID := uuid.New()
	tokenID, refreshToken, err := jwtService.GenerateRefreshToken(userID, "user@example.com")
	assert.NoError(t, err)

	tokenStore.On("GetRefreshToken", mock.Anything, tokenID).Return(userID, "user@example.com", nil)

	accessToken, err := svc.RefreshToken(context.Background(), refreshToken)

	assert.NoError(t, err)
	claims, err := jwtService.ValidateToken(accessToken)
	assert.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
}

func TestRefreshToken_StoreMismatch(t *testing.T) {
	identity := new(MockIdentityService)
	tokenStore := new(MockTokenStore)
	jwtService := auth.NewJWTService("test-secret")
	svc := NewAuthService(identity, jwtService, tokenStore)

	userID := uuid.New()
	tokenID, refreshToken, err := jwtService.GenerateRefreshToken(userID, "user@example.com")
	assert.NoError(t, err)

	// Redis holds a different user for this token id.
	tokenStore.On("GetRefreshToken", mock.Anything, tokenID).Return(uuid.New(), "user@example.com", nil)

	_, err = svc.RefreshToken(context.Background(), refreshToken)

	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestRefreshToken_Garbage(t *testing.T) {
	identity := new(MockIdentityService)
	tokenStore := new(MockTokenStore)
	svc := NewAuthService(identity, auth.NewJWTService("test-secret"), tokenStore)

	_, err := svc.RefreshToken(context.Background(), "not-a-jwt")

	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestLogout_DeletesRefreshToken(t *testing.T) {
	identity := new(MockIdentityService)
	tokenStore := new(MockTokenStore)
	jwtService := auth.NewJWTService("test-secret")
	svc := NewAuthService(identity, jwtService, tokenStore)

	tokenID, refreshToken, err := jwtService.GenerateRefreshToken(uuid.New(), "user@example.com")
	assert.NoError(t, err)

	tokenStore.On("DeleteRefreshToken", mock.Anything, tokenID).Return(nil)

	assert.NoError(t, svc.Logout(context.Background(), refreshToken))
	tokenStore.AssertExpectations(t)
}
