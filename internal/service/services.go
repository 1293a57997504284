package service

import (
	"github.com/MKhiriev/go-bank-registry/internal/config"
	"github.com/MKhiriev/go-bank-registry/internal/crypto"
	"github.com/MKhiriev/go-bank-registry/internal/logger"
	"github.com/MKhiriev/go-bank-registry/internal/store"
)

type Services struct {
	CredentialService CredentialService
	BankService       BankService
	AgencyService     AgencyService
	AppInfoService    AppInfoService
}

// NewServices builds every service over storages. The registry and
// credential services are wrapped with their validation decorators.
func NewServices(storages *store.Storages, hasher crypto.PasswordHasher, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg.App, storages.Health, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		CredentialService: NewCredentialValidationService().Wrap(NewCredentialService(storages.Accounts, hasher, logger)),
		BankService:       NewBankValidationService().Wrap(NewBankService(storages.Banks, logger)),
		AgencyService:     NewAgencyValidationService().Wrap(NewAgencyService(storages.Agencies, storages.Banks, logger)),
		AppInfoService:    appInfo,
	}, nil
}
