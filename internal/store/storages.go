package store

import "github.com/MKhiriev/go-bank-registry/models"

// Storages groups every repository the service layer depends on.
type Storages struct {
	Accounts AccountRepository
	Banks    Repository[models.Bank]
	Agencies Repository[models.Agency]
	Health   HealthChecker
}

// NewStorages wires the SQL repositories onto db.
func NewStorages(db *DB) *Storages {
	db.logger.Debug().Str("dialect", string(db.dialect)).Msg("creating sql storages")

	return &Storages{
		Accounts: NewAccountRepository(db),
		Banks:    NewRepository(db, BankTable),
		Agencies: NewRepository(db, AgencyTable),
		Health:   db,
	}
}
