// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-bank-registry/internal/crypto"
	"github.com/MKhiriev/go-bank-registry/internal/logger"
	"github.com/MKhiriev/go-bank-registry/internal/store"
	"github.com/MKhiriev/go-bank-registry/internal/validators"
	"github.com/MKhiriev/go-bank-registry/models"
)

// credentialService is the concrete implementation of CredentialService.
//
// Passwords and hashes never reach the logs: only usernames and ids are
// attached to log entries.
type credentialService struct {
	// accounts is the data-access layer for user accounts.
	accounts store.AccountRepository

	// hasher derives and checks encoded password hashes.
	hasher crypto.PasswordHasher

	// validator checks the new password of a change request. It runs only
	// after the old password was authenticated.
	validator validators.Validator

	logger *logger.Logger
}

// NewCredentialService constructs a CredentialService over the given
// repository and hasher.
func NewCredentialService(accounts store.AccountRepository, hasher crypto.PasswordHasher, logger *logger.Logger) CredentialService {
	return &credentialService{
		accounts:  accounts,
		hasher:    hasher,
		validator: validators.NewCredentialValidator(),
		logger:    logger,
	}
}

// CreateAccount hashes the password and inserts an active, non-admin
// account.
//
// Returns:
//   - ErrDuplicateUsername if the username is taken.
//   - ErrHashingFailure if the hash could not be computed.
//   - ErrStoreUnavailable for any other store failure.
func (s *credentialService) CreateAccount(ctx context.Context, account models.NewAccount) (models.Account, error) {
	log := logger.FromContext(ctx)

	hash, err := s.hasher.Hash(ctx, account.Password)
	if err != nil {
		log.Err(err).Str("username", account.Username).Msg("hashing password of new account failed")
		return models.Account{}, fmt.Errorf("%w: %w", ErrHashingFailure, err)
	}

	created, err := s.accounts.Insert(ctx, models.Account{
		Username:     account.Username,
		PasswordHash: hash,
		IsActive:     true,
	})
	if err != nil {
		log.Err(err).Str("username", account.Username).Msg("account creation ended with error")
		return models.Account{}, fromStore(err)
	}

	log.Info().Int64("id", created.ID).Str("username", created.Username).Msg("account created")
	return created, nil
}

// VerifyCredentials looks the account up and checks the password against its
// stored hash. Only lookup and hashing problems are errors.
func (s *credentialService) VerifyCredentials(ctx context.Context, credentials models.Credentials) (bool, error) {
	log := logger.FromContext(ctx)

	account, err := s.accounts.FindByUsername(ctx, credentials.Username)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Err(err).Str("username", credentials.Username).Msg("account lookup failed")
		}
		return false, fromStore(err)
	}

	ok, err := s.hasher.Verify(ctx, credentials.Password, account.PasswordHash)
	if err != nil {
		log.Err(err).Int64("id", account.ID).Msg("stored password hash could not be verified")
		return false, fmt.Errorf("%w: %w", ErrHashingFailure, err)
	}

	return ok, nil
}

// ChangePassword replaces the password of username.
//
// The old password is authenticated before anything about the new password
// is inspected. The final write only succeeds if the stored hash is still the
// one read in the lookup step; otherwise ErrConcurrentUpdate is returned and
// the account keeps the hash of whichever writer won.
func (s *credentialService) ChangePassword(ctx context.Context, username string, change models.PasswordChange) (models.Account, error) {
	log := logger.FromContext(ctx).With().Str("username", username).Logger()

	// lookup
	account, err := s.accounts.FindByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Err(err).Msg("account lookup failed")
		}
		return models.Account{}, fromStore(err)
	}

	// authenticate
	ok, err := s.hasher.Verify(ctx, change.OldPassword, account.PasswordHash)
	if err != nil {
		log.Err(err).Int64("id", account.ID).Msg("stored password hash could not be verified")
		return models.Account{}, fmt.Errorf("%w: %w", ErrHashingFailure, err)
	}
	if !ok {
		log.Warn().Msg("password change rejected: wrong old password")
		return models.Account{}, ErrInvalidCredentials
	}

	// confirm
	if change.NewPassword != change.NewPasswordCheck {
		return models.Account{}, ErrPasswordMismatch
	}
	if err = s.validator.Validate(ctx, change, validators.FieldNewPassword); err != nil {
		return models.Account{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	// commit
	newHash, err := s.hasher.Hash(ctx, change.NewPassword)
	if err != nil {
		log.Err(err).Msg("hashing new password failed")
		return models.Account{}, fmt.Errorf("%w: %w", ErrHashingFailure, err)
	}

	updated, err := s.accounts.UpdatePasswordHash(ctx, username, account.PasswordHash, newHash)
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			log.Warn().Msg("password change lost a concurrent update")
		} else {
			log.Err(err).Msg("password hash update failed")
		}
		return models.Account{}, fromStore(err)
	}

	log.Info().Int64("id", updated.ID).Msg("password changed")
	return updated, nil
}

func (s *credentialService) ListAccounts(ctx context.Context) ([]models.Account, error) {
	accounts, err := s.accounts.List(ctx)
	if err != nil {
		logger.FromContext(ctx).Err(err).Msg("listing accounts failed")
		return nil, fromStore(err)
	}

	return accounts, nil
}

func (s *credentialService) GetAccount(ctx context.Context, id int64) (models.Account, error) {
	account, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			logger.FromContext(ctx).Err(err).Int64("id", id).Msg("account lookup failed")
		}
		return models.Account{}, fromStore(err)
	}

	return account, nil
}
