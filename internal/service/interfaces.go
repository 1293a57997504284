package service

import (
	"context"

	"github.com/MKhiriev/go-bank-registry/models"
)

// CredentialService manages accounts and their passwords.
type CredentialService interface {
	// CreateAccount hashes the password with a fresh salt and persists a new
	// active account.
	CreateAccount(ctx context.Context, account models.NewAccount) (models.Account, error)

	// VerifyCredentials reports whether the password matches the stored hash.
	// A mismatch is (false, nil); an unknown username is ErrNotFound.
	VerifyCredentials(ctx context.Context, credentials models.Credentials) (bool, error)

	// ChangePassword runs the lookup, authenticate, confirm and commit steps
	// in that order. Each step is terminal on failure.
	ChangePassword(ctx context.Context, username string, change models.PasswordChange) (models.Account, error)

	ListAccounts(ctx context.Context) ([]models.Account, error)
	GetAccount(ctx context.Context, id int64) (models.Account, error)
}

// BankService manages banks.
type BankService interface {
	ListBanks(ctx context.Context) ([]models.Bank, error)
	GetBank(ctx context.Context, id int64) (models.Bank, error)
	CreateBank(ctx context.Context, input models.BankInput) (models.Bank, error)
	UpdateBank(ctx context.Context, id int64, input models.BankInput) (models.Bank, error)
	DeleteBank(ctx context.Context, id int64) error
}

// AgencyService manages the agencies of a bank. Every call is scoped to
// bankID; an agency of another bank is reported as not found.
type AgencyService interface {
	ListAgencies(ctx context.Context, bankID int64) ([]models.Agency, error)
	GetAgency(ctx context.Context, bankID, id int64) (models.Agency, error)
	CreateAgency(ctx context.Context, bankID int64, input models.AgencyInput) (models.Agency, error)
	UpdateAgency(ctx context.Context, bankID, id int64, input models.AgencyInput) (models.Agency, error)
	DeleteAgency(ctx context.Context, bankID, id int64) error
}

// AppInfoService exposes build and health information.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	Health(ctx context.Context) (models.Health, error)
}

// CredentialServiceWrapper defines middleware composition for CredentialService.
// Implementations wrap an existing CredentialService to add behavior such as
// validating.
type CredentialServiceWrapper interface {
	Wrap(CredentialService) CredentialService
}

// BankServiceWrapper defines middleware composition for BankService.
type BankServiceWrapper interface {
	Wrap(BankService) BankService
}

// AgencyServiceWrapper defines middleware composition for AgencyService.
type AgencyServiceWrapper interface {
	Wrap(AgencyService) AgencyService
}
