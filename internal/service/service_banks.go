package service

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-bank-registry/internal/logger"
	"github.com/MKhiriev/go-bank-registry/internal/store"
	"github.com/MKhiriev/go-bank-registry/models"
)

type bankService struct {
	banks store.Repository[models.Bank]

	logger *logger.Logger
}

func NewBankService(banks store.Repository[models.Bank], logger *logger.Logger) BankService {
	return &bankService{
		banks:  banks,
		logger: logger,
	}
}

func (s *bankService) ListBanks(ctx context.Context) ([]models.Bank, error) {
	banks, err := s.banks.List(ctx, store.Scope{})
	return banks, fromStore(err)
}

func (s *bankService) GetBank(ctx context.Context, id int64) (models.Bank, error) {
	bank, err := s.banks.Get(ctx, store.Scope{}, id)
	return bank, fromStore(err)
}

func (s *bankService) CreateBank(ctx context.Context, input models.BankInput) (models.Bank, error) {
	bank, err := s.banks.Create(ctx, store.Scope{}, input.ToBank())
	if err != nil {
		return models.Bank{}, fromStore(err)
	}

	logger.FromContext(ctx).Info().Int64("id", bank.ID).Str("code", bank.Code).Msg("bank created")
	return bank, nil
}

func (s *bankService) UpdateBank(ctx context.Context, id int64, input models.BankInput) (models.Bank, error) {
	bank, err := s.banks.Update(ctx, store.Scope{}, id, input.ToBank())
	return bank, fromStore(err)
}

// DeleteBank removes the bank together with its agencies.
func (s *bankService) DeleteBank(ctx context.Context, id int64) error {
	if err := s.banks.Delete(ctx, store.Scope{}, id); err != nil {
		return fromStore(err)
	}

	logger.FromContext(ctx).Info().Int64("id", id).Msg("bank deleted")
	return nil
}

type agencyService struct {
	agencies store.Repository[models.Agency]
	banks    store.Repository[models.Bank]

	logger *logger.Logger
}

// NewAgencyService constructs an AgencyService. banks is used to tell an
// empty agency list apart from a missing bank.
func NewAgencyService(agencies store.Repository[models.Agency], banks store.Repository[models.Bank], logger *logger.Logger) AgencyService {
	return &agencyService{
		agencies: agencies,
		banks:    banks,
		logger:   logger,
	}
}

func (s *agencyService) ListAgencies(ctx context.Context, bankID int64) ([]models.Agency, error) {
	if _, err := s.banks.Get(ctx, store.Scope{}, bankID); err != nil {
		return nil, fromStore(err)
	}

	agencies, err := s.agencies.List(ctx, store.InParent(bankID))
	return agencies, fromStore(err)
}

func (s *agencyService) GetAgency(ctx context.Context, bankID, id int64) (models.Agency, error) {
	agency, err := s.agencies.Get(ctx, store.InParent(bankID), id)
	return agency, fromStore(err)
}

func (s *agencyService) CreateAgency(ctx context.Context, bankID int64, input models.AgencyInput) (models.Agency, error) {
	agency, err := s.agencies.Create(ctx, store.InParent(bankID), input.ToAgency(bankID))
	if err != nil {
		if errors.Is(err, store.ErrParentNotFound) {
			logger.FromContext(ctx).Debug().Int64("bank_id", bankID).Msg("agency references a missing bank")
		}
		return models.Agency{}, fromStore(err)
	}

	logger.FromContext(ctx).Info().Int64("id", agency.ID).Int64("bank_id", bankID).Msg("agency created")
	return agency, nil
}

func (s *agencyService) UpdateAgency(ctx context.Context, bankID, id int64, input models.AgencyInput) (models.Agency, error) {
	agency, err := s.agencies.Update(ctx, store.InParent(bankID), id, input.ToAgency(bankID))
	return agency, fromStore(err)
}

func (s *agencyService) DeleteAgency(ctx context.Context, bankID, id int64) error {
	return fromStore(s.agencies.Delete(ctx, store.InParent(bankID), id))
}
