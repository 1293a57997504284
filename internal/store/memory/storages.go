package memory

import (
	"context"

	"github.com/MKhiriev/go-bank-registry/internal/store"
)

// NewStorages wires in-memory repositories with the same referential rules
// as the SQL schema: agencies need an existing bank and are removed with it.
func NewStorages() *store.Storages {
	banks := NewRepository(BankSchema)
	agencies := NewRepository(AgencySchema)

	agencies.parentExists = banks.exists
	banks.onDelete = agencies.deleteChildren

	return &store.Storages{
		Accounts: NewAccountRepository(),
		Banks:    banks,
		Agencies: agencies,
		Health:   healthy{},
	}
}

type healthy struct{}

func (healthy) Ping(ctx context.Context) error {
	return alive(ctx)
}
