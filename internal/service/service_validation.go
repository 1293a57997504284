package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-bank-registry/internal/validators"
	"github.com/MKhiriev/go-bank-registry/models"
)

// CredentialValidationService checks request payloads before they reach the
// wrapped CredentialService.
type CredentialValidationService struct {
	inner     CredentialService
	validator validators.Validator
}

func NewCredentialValidationService() CredentialServiceWrapper {
	return &CredentialValidationService{
		validator: validators.NewCredentialValidator(),
	}
}

func (v *CredentialValidationService) CreateAccount(ctx context.Context, account models.NewAccount) (models.Account, error) {
	if err := v.validator.Validate(ctx, account); err != nil {
		return models.Account{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.CreateAccount(ctx, account)
}

func (v *CredentialValidationService) VerifyCredentials(ctx context.Context, credentials models.Credentials) (bool, error) {
	if err := v.validator.Validate(ctx, credentials); err != nil {
		return false, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.VerifyCredentials(ctx, credentials)
}

// ChangePassword only checks the username and the old password here; the
// new password is checked by the inner service after authentication.
func (v *CredentialValidationService) ChangePassword(ctx context.Context, username string, change models.PasswordChange) (models.Account, error) {
	if err := v.validator.Validate(ctx, username); err != nil {
		return models.Account{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	if err := v.validator.Validate(ctx, change, validators.FieldOldPassword); err != nil {
		return models.Account{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.ChangePassword(ctx, username, change)
}

func (v *CredentialValidationService) ListAccounts(ctx context.Context) ([]models.Account, error) {
	return v.inner.ListAccounts(ctx)
}

func (v *CredentialValidationService) GetAccount(ctx context.Context, id int64) (models.Account, error) {
	if err := validators.ValidateID(id); err != nil {
		return models.Account{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.GetAccount(ctx, id)
}

func (v *CredentialValidationService) Wrap(wrapped CredentialService) CredentialService {
	v.inner = wrapped
	return v
}

// BankValidationService checks ids and payloads before they reach the
// wrapped BankService.
type BankValidationService struct {
	inner     BankService
	validator validators.Validator
}

func NewBankValidationService() BankServiceWrapper {
	return &BankValidationService{
		validator: validators.NewRegistryValidator(),
	}
}

func (v *BankValidationService) ListBanks(ctx context.Context) ([]models.Bank, error) {
	return v.inner.ListBanks(ctx)
}

func (v *BankValidationService) GetBank(ctx context.Context, id int64) (models.Bank, error) {
	if err := validIDs(id); err != nil {
		return models.Bank{}, err
	}

	return v.inner.GetBank(ctx, id)
}

func (v *BankValidationService) CreateBank(ctx context.Context, input models.BankInput) (models.Bank, error) {
	if err := v.validator.Validate(ctx, input); err != nil {
		return models.Bank{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.CreateBank(ctx, input)
}

func (v *BankValidationService) UpdateBank(ctx context.Context, id int64, input models.BankInput) (models.Bank, error) {
	if err := validIDs(id); err != nil {
		return models.Bank{}, err
	}
	if err := v.validator.Validate(ctx, input); err != nil {
		return models.Bank{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.UpdateBank(ctx, id, input)
}

func (v *BankValidationService) DeleteBank(ctx context.Context, id int64) error {
	if err := validIDs(id); err != nil {
		return err
	}

	return v.inner.DeleteBank(ctx, id)
}

func (v *BankValidationService) Wrap(wrapped BankService) BankService {
	v.inner = wrapped
	return v
}

// AgencyValidationService checks ids and payloads before they reach the
// wrapped AgencyService.
type AgencyValidationService struct {
	inner     AgencyService
	validator validators.Validator
}

func NewAgencyValidationService() AgencyServiceWrapper {
	return &AgencyValidationService{
		validator: validators.NewRegistryValidator(),
	}
}

func (v *AgencyValidationService) ListAgencies(ctx context.Context, bankID int64) ([]models.Agency, error) {
	if err := validIDs(bankID); err != nil {
		return nil, err
	}

	return v.inner.ListAgencies(ctx, bankID)
}

func (v *AgencyValidationService) GetAgency(ctx context.Context, bankID, id int64) (models.Agency, error) {
	if err := validIDs(bankID, id); err != nil {
		return models.Agency{}, err
	}

	return v.inner.GetAgency(ctx, bankID, id)
}

func (v *AgencyValidationService) CreateAgency(ctx context.Context, bankID int64, input models.AgencyInput) (models.Agency, error) {
	if err := validIDs(bankID); err != nil {
		return models.Agency{}, err
	}
	if err := v.validator.Validate(ctx, input); err != nil {
		return models.Agency{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.CreateAgency(ctx, bankID, input)
}

func (v *AgencyValidationService) UpdateAgency(ctx context.Context, bankID, id int64, input models.AgencyInput) (models.Agency, error) {
	if err := validIDs(bankID, id); err != nil {
		return models.Agency{}, err
	}
	if err := v.validator.Validate(ctx, input); err != nil {
		return models.Agency{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.UpdateAgency(ctx, bankID, id, input)
}

func (v *AgencyValidationService) DeleteAgency(ctx context.Context, bankID, id int64) error {
	if err := validIDs(bankID, id); err != nil {
		return err
	}

	return v.inner.DeleteAgency(ctx, bankID, id)
}

func (v *AgencyValidationService) Wrap(wrapped AgencyService) AgencyService {
	v.inner = wrapped
	return v
}

func validIDs(ids ...int64) error {
	for _, id := range ids {
		if err := validators.ValidateID(id); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
		}
	}
	return nil
}
