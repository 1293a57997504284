package memory

import (
	"time"

	"github.com/MKhiriev/go-bank-registry/models"
)

// BankSchema describes [models.Bank].
var BankSchema = Schema[models.Bank]{
	ID:        func(b models.Bank) int64 { return b.ID },
	SetID:     func(b *models.Bank, id int64) { b.ID = id },
	CreatedAt: func(b models.Bank) time.Time { return b.CreatedAt },
	Stamp: func(b *models.Bank, createdAt, updatedAt time.Time) {
		b.CreatedAt, b.UpdatedAt = createdAt, updatedAt
	},
	Parent:    func(models.Bank) int64 { return 0 },
	SetParent: func(*models.Bank, int64) {},
}

// AgencySchema describes [models.Agency], scoped by its bank.
var AgencySchema = Schema[models.Agency]{
	ID:        func(a models.Agency) int64 { return a.ID },
	SetID:     func(a *models.Agency, id int64) { a.ID = id },
	Parent:    func(a models.Agency) int64 { return a.BankID },
	SetParent: func(a *models.Agency, bankID int64) { a.BankID = bankID },
	CreatedAt: func(a models.Agency) time.Time { return a.CreatedAt },
	Stamp: func(a *models.Agency, createdAt, updatedAt time.Time) {
		a.CreatedAt, a.UpdatedAt = createdAt, updatedAt
	},
	HasParent:  true,
	ParentName: "bank",
}
