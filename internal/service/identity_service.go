package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	errs "portfolio-tracker/internal/errors"
	"portfolio-tracker/internal/model"
	"portfolio-tracker/internal/repository"
)

// IdentityService maps an external provider identity onto an internal user record.
type IdentityService interface {
	// Resolve returns the user for the given provider identity, creating the
	// record on first sight and refreshing mutable profile fields on every
	// subsequent sight. Idempotent per external identity.
	Resolve(ctx context.Context, providerID, email, name, imageURL string) (*model.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*model.User, error)
}

type identityService struct {
	users  repository.UserRepository
	logger *zap.Logger
}

// NewIdentityService creates a new identity service.
func NewIdentityService(users repository.UserRepository, logger *zap.Logger) IdentityService {
	return &identityService{users: users, logger: logger}
}

// Resolve looks up by provider subject id first (the stable key), falls back to
// email to link a record created through a different provider flow, and creates
// a fresh user otherwise.
func (s *identityService) Resolve(ctx context.Context, providerID, email, name, imageURL string) (*model.User, error) {
	now := time.Now()

	user, err := s.users.FindByProviderID(ctx, providerID)
	if err == nil {
		user.Email = email
		user.Name = name
		user.ImageURL = imageURL
		user.LastLogin = &now
		if err := s.users.Update(ctx, user); err != nil {
			return nil, fmt.Errorf("update user %s: %w", user.ID, err)
		}
		s.logger.Debug("resolved existing user", zap.String("user_id", user.ID.String()))
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("lookup by provider id: %w", err)
	}

	user, err = s.users.FindByEmail(ctx, email)
	if err == nil {
		// Same email seen through a new provider flow: link the subject id.
		user.ProviderID = &providerID
		user.Name = name
		user.ImageURL = imageURL
		user.LastLogin = &now
		if err := s.users.Update(ctx, user); err != nil {
			return nil, fmt.Errorf("link provider id to user %s: %w", user.ID, err)
		}
		s.logger.Info("linked provider identity to existing user",
			zap.String("user_id", user.ID.String()))
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("lookup by email: %w", err)
	}

	user = &model.User{
		Email:      email,
		Name:       name,
		ProviderID: &providerID,
		ImageURL:   imageURL,
		LastLogin:  &now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	s.logger.Info("created user on first login",
		zap.String("user_id", user.ID.String()), zap.String("email", email))
	return user, nil
}

// GetUser fetches a user by internal id.
func (s *identityService) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user %s: %w", id, err)
	}
	return user, nil
}
