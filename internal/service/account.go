package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/devlink/devlink/internal/auth"
	"github.com/devlink/devlink/internal/avatar"
	"github.com/devlink/devlink/internal/metrics"
	"github.com/devlink/devlink/internal/model"
	"github.com/devlink/devlink/internal/repository"
	"github.com/devlink/devlink/internal/token"
)

// AccountService handles registration, login and account lifecycle.
type AccountService struct {
	accounts AccountStore
	profiles ProfileStore
	codec    *token.Codec
	metrics  metrics.Recorder
}

// NewAccountService creates a new AccountService.
func NewAccountService(accounts AccountStore, profiles ProfileStore, codec *token.Codec, recorder metrics.Recorder) *AccountService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &AccountService{
		accounts: accounts,
		profiles: profiles,
		codec:    codec,
		metrics:  recorder,
	}
}

// RegisterInput defines input for registration. Fields are validated
// before the service is invoked.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Register creates an account and issues its first credential.
// A duplicate email fails with ErrEmailTaken.
func (s *AccountService) Register(ctx context.Context, input RegisterInput) (*model.Account, string, error) {
	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	account := &model.Account{
		ID:           ulid.Make().String(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		AvatarURL:    avatar.URL(input.Email, avatar.Options{}),
		CreatedAt:    now,
	}

	if err := s.accounts.CreateAccount(ctx, account); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", fmt.Errorf("create account: %w", err)
	}

	tok, err := s.codec.Issue(account.ID)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	s.metrics.IncAccountRegistered()

	return account, tok, nil
}

// Login verifies the password and issues a fresh credential. Unknown
// email and wrong password both fail with ErrInvalidCredentials so the
// response does not reveal which one it was.
func (s *AccountService) Login(ctx context.Context, email, password string) (string, error) {
	account, err := s.accounts.GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			s.metrics.IncLoginFailed()
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("get account: %w", err)
	}

	match, err := auth.PasswordMatches(password, account.PasswordHash)
	if err != nil {
		return "", fmt.Errorf("verify password: %w", err)
	}
	if !match {
		s.metrics.IncLoginFailed()
		return "", ErrInvalidCredentials
	}

	tok, err := s.codec.Issue(account.ID)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	s.metrics.IncLoginSucceeded()

	return tok, nil
}

// Current returns the authenticated caller's account.
func (s *AccountService) Current(ctx context.Context) (*model.Account, error) {
	identity, err := auth.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	account, err := s.accounts.GetAccountByID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("get account: %w", err)
	}

	return account, nil
}

// Delete removes the caller's account, cascading to their profile.
// Owner-only by construction: the caller can only delete themselves.
func (s *AccountService) Delete(ctx context.Context) error {
	identity, err := auth.FromContext(ctx)
	if err != nil {
		return err
	}

	if err := s.profiles.DeleteProfileByOwner(ctx, identity.UserID); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}

	if err := s.accounts.DeleteAccount(ctx, identity.UserID); err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return ErrAccountNotFound
		}
		return fmt.Errorf("delete account: %w", err)
	}

	return nil
}
