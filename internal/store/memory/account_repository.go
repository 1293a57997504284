package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/MKhiriev/go-bank-registry/internal/store"
	"github.com/MKhiriev/go-bank-registry/models"
)

// AccountRepository is the in-memory implementation of
// [store.AccountRepository]. The password swap is a compare-and-swap under
// the repository mutex.
type AccountRepository struct {
	mu         sync.RWMutex
	byID       map[int64]models.Account
	byUsername map[string]int64
	nextID     int64
}

// NewAccountRepository constructs an empty [AccountRepository].
func NewAccountRepository() *AccountRepository {
	return &AccountRepository{
		byID:       make(map[int64]models.Account),
		byUsername: make(map[string]int64),
	}
}

func (r *AccountRepository) List(ctx context.Context) ([]models.Account, error) {
	if err := alive(ctx); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	accounts := make([]models.Account, 0, len(r.byID))
	for _, a := range r.byID {
		accounts = append(accounts, a)
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].ID < accounts[j].ID })

	return accounts, nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id int64) (models.Account, error) {
	if err := alive(ctx); err != nil {
		return models.Account{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return models.Account{}, store.ErrNotFound
	}

	return a, nil
}

func (r *AccountRepository) FindByUsername(ctx context.Context, username string) (models.Account, error) {
	if err := alive(ctx); err != nil {
		return models.Account{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byUsername[username]
	if !ok {
		return models.Account{}, store.ErrNotFound
	}

	return r.byID[id], nil
}

func (r *AccountRepository) Insert(ctx context.Context, account models.Account) (models.Account, error) {
	if err := alive(ctx); err != nil {
		return models.Account{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byUsername[account.Username]; taken {
		return models.Account{}, store.ErrAlreadyExists
	}

	r.nextID++
	ts := time.Now().UTC()
	account.ID = r.nextID
	account.CreatedAt, account.UpdatedAt = ts, ts

	r.byID[account.ID] = account
	r.byUsername[account.Username] = account.ID

	return account, nil
}

func (r *AccountRepository) UpdatePasswordHash(ctx context.Context, username, expectedOldHash, newHash string) (models.Account, error) {
	if err := alive(ctx); err != nil {
		return models.Account{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.byUsername[username]
	if !ok {
		return models.Account{}, store.ErrNotFound
	}

	account := r.byID[id]
	if account.PasswordHash != expectedOldHash {
		return models.Account{}, store.ErrConflict
	}

	account.PasswordHash = newHash
	account.UpdatedAt = time.Now().UTC()
	r.byID[id] = account

	return account, nil
}
