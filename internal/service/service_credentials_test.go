// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-bank-registry/internal/config"
	"github.com/MKhiriev/go-bank-registry/internal/crypto"
	"github.com/MKhiriev/go-bank-registry/internal/logger"
	"github.com/MKhiriev/go-bank-registry/internal/mock"
	"github.com/MKhiriev/go-bank-registry/internal/store"
	"github.com/MKhiriev/go-bank-registry/internal/store/memory"
	"github.com/MKhiriev/go-bank-registry/models"
)

// cheap argon2id parameters keep the tests fast
var testArgon2 = config.Argon2{Memory: 64, Iterations: 1, Parallelism: 1}

// newTestCredentialSvc: credentialService over gomock collaborators
func newTestCredentialSvc(t *testing.T, ctrl *gomock.Controller) (CredentialService, *mock.MockAccountRepository, *mock.MockPasswordHasher) {
	t.Helper()
	accounts := mock.NewMockAccountRepository(ctrl)
	hasher := mock.NewMockPasswordHasher(ctrl)

	return NewCredentialService(accounts, hasher, logger.Nop()), accounts, hasher
}

// newRealCredentialSvc: credentialService over the in-memory store and a real hasher
func newRealCredentialSvc(hasher crypto.PasswordHasher) (CredentialService, store.AccountRepository) {
	accounts := memory.NewAccountRepository()
	svc := NewCredentialValidationService().Wrap(NewCredentialService(accounts, hasher, logger.Nop()))
	return svc, accounts
}

func aliceAccount() models.Account {
	return models.Account{ID: 1, Username: "alice", PasswordHash: "old-hash", IsActive: true}
}

// ── CreateAccount ────────────────────────────────────────────────────────────

func TestCredentialService_CreateAccount_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, accounts, hasher := newTestCredentialSvc(t, ctrl)
	ctx := context.Background()

	gomock.InOrder(
		hasher.EXPECT().Hash(gomock.Any(), "secret1").Return("hash-1", nil),
		accounts.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, a models.Account) (models.Account, error) {
				assert.Equal(t, "alice", a.Username)
				assert.Equal(t, "hash-1", a.PasswordHash)
				assert.True(t, a.IsActive)
				assert.False(t, a.IsAdmin)
				a.ID = 7
				return a, nil
			},
		),
	)

	created, err := svc.CreateAccount(ctx, models.NewAccount{Username: "alice", Password: "secret1"})

	require.NoError(t, err)
	assert.Equal(t, int64(7), created.ID)
}

func TestCredentialService_CreateAccount_Duplicate(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, accounts, hasher := newTestCredentialSvc(t, ctrl)

	hasher.EXPECT().Hash(gomock.Any(), gomock.Any()).Return("hash", nil)
	accounts.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(models.Account{}, store.ErrAlreadyExists)

	_, err := svc.CreateAccount(context.Background(), models.NewAccount{Username: "alice", Password: "x"})

	require.ErrorIs(t, err, ErrDuplicateUsername)
}

func TestCredentialService_CreateAccount_HashFailure_NoInsert(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, hasher := newTestCredentialSvc(t, ctrl)

	hasher.EXPECT().Hash(gomock.Any(), gomock.Any()).Return("", errors.New("entropy exhausted"))

	_, err := svc.CreateAccount(context.Background(), models.NewAccount{Username: "alice", Password: "x"})

	require.ErrorIs(t, err, ErrHashingFailure)
}

func TestCredentialService_CreateAccount_StoreDown(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, accounts, hasher := newTestCredentialSvc(t, ctrl)

	hasher.EXPECT().Hash(gomock.Any(), gomock.Any()).Return("hash", nil)
	accounts.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(models.Account{}, store.ErrStoreUnavailable)

	_, err := svc.CreateAccount(context.Background(), models.NewAccount{Username: "alice", Password: "x"})

	require.ErrorIs(t, err, ErrStoreUnavailable)
}

// ── VerifyCredentials ────────────────────────────────────────────────────────

func TestCredentialService_VerifyCredentials(t *testing.T) {
	tests := []struct {
		name      string
		findErr   error
		verifyOK  bool
		verifyErr error
		want      bool
		wantErr   error
	}{
		{name: "match", verifyOK: true, want: true},
		{name: "mismatch", verifyOK: false, want: false},
		{name: "unknown user", findErr: store.ErrNotFound, wantErr: ErrNotFound},
		{name: "store down", findErr: store.ErrStoreUnavailable, wantErr: ErrStoreUnavailable},
		{name: "malformed hash", verifyErr: crypto.ErrMalformedHash, wantErr: ErrHashingFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc, accounts, hasher := newTestCredentialSvc(t, ctrl)

			accounts.EXPECT().FindByUsername(gomock.Any(), "alice").Return(aliceAccount(), tt.findErr)
			if tt.findErr == nil {
				hasher.EXPECT().Verify(gomock.Any(), "pw", "old-hash").Return(tt.verifyOK, tt.verifyErr)
			}

			got, err := svc.VerifyCredentials(context.Background(), models.Credentials{Username: "alice", Password: "pw"})

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.False(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// ── ChangePassword ───────────────────────────────────────────────────────────

func TestCredentialService_ChangePassword_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, accounts, hasher := newTestCredentialSvc(t, ctrl)

	updated := aliceAccount()
	updated.PasswordHash = "new-hash"

	gomock.InOrder(
		accounts.EXPECT().FindByUsername(gomock.Any(), "alice").Return(aliceAccount(), nil),
		hasher.EXPECT().Verify(gomock.Any(), "secret1", "old-hash").Return(true, nil),
		hasher.EXPECT().Hash(gomock.Any(), "secret2").Return("new-hash", nil),
		accounts.EXPECT().UpdatePasswordHash(gomock.Any(), "alice", "old-hash", "new-hash").Return(updated, nil),
	)

	got, err := svc.ChangePassword(context.Background(), "alice", models.PasswordChange{
		OldPassword: "secret1", NewPassword: "secret2", NewPasswordCheck: "secret2",
	})

	require.NoError(t, err)
	assert.Equal(t, "new-hash", got.PasswordHash)
}

func TestCredentialService_ChangePassword_UnknownUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, accounts, _ := newTestCredentialSvc(t, ctrl)

	accounts.EXPECT().FindByUsername(gomock.Any(), "ghost").Return(models.Account{}, store.ErrNotFound)

	_, err := svc.ChangePassword(context.Background(), "ghost", models.PasswordChange{
		OldPassword: "a", NewPassword: "b", NewPasswordCheck: "b",
	})

	require.ErrorIs(t, err, ErrNotFound)
}

func TestCredentialService_ChangePassword_WrongOldPasswordCheckedBeforeMismatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, accounts, hasher := newTestCredentialSvc(t, ctrl)

	accounts.EXPECT().FindByUsername(gomock.Any(), "alice").Return(aliceAccount(), nil)
	hasher.EXPECT().Verify(gomock.Any(), "wrong", "old-hash").Return(false, nil)

	_, err := svc.ChangePassword(context.Background(), "alice", models.PasswordChange{
		OldPassword: "wrong", NewPassword: "x", NewPasswordCheck: "y",
	})

	require.ErrorIs(t, err, ErrInvalidCredentials)
	assert.NotErrorIs(t, err, ErrPasswordMismatch)
}

func TestCredentialService_ChangePassword_Mismatch_NoWrite(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, accounts, hasher := newTestCredentialSvc(t, ctrl)

	accounts.EXPECT().FindByUsername(gomock.Any(), "alice").Return(aliceAccount(), nil)
	hasher.EXPECT().Verify(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)

	_, err := svc.ChangePassword(context.Background(), "alice", models.PasswordChange{
		OldPassword: "secret1", NewPassword: "secret2", NewPasswordCheck: "secret3",
	})

	require.ErrorIs(t, err, ErrPasswordMismatch)
}

func TestCredentialService_ChangePassword_EmptyNewPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, accounts, hasher := newTestCredentialSvc(t, ctrl)

	accounts.EXPECT().FindByUsername(gomock.Any(), "alice").Return(aliceAccount(), nil)
	hasher.EXPECT().Verify(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)

	_, err := svc.ChangePassword(context.Background(), "alice", models.PasswordChange{OldPassword: "secret1"})

	require.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestCredentialService_ChangePassword_CommitErrors(t *testing.T) {
	tests := []struct {
		name     string
		storeErr error
		wantErr  error
	}{
		{name: "lost race", storeErr: store.ErrConflict, wantErr: ErrConcurrentUpdate},
		{name: "deleted meanwhile", storeErr: store.ErrNotFound, wantErr: ErrNotFound},
		{name: "store down", storeErr: fmt.Errorf("%w: timeout", store.ErrStoreUnavailable), wantErr: ErrStoreUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc, accounts, hasher := newTestCredentialSvc(t, ctrl)

			accounts.EXPECT().FindByUsername(gomock.Any(), "alice").Return(aliceAccount(), nil)
			hasher.EXPECT().Verify(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
			hasher.EXPECT().Hash(gomock.Any(), gomock.Any()).Return("new-hash", nil)
			accounts.EXPECT().UpdatePasswordHash(gomock.Any(), "alice", "old-hash", "new-hash").Return(models.Account{}, tt.storeErr)

			_, err := svc.ChangePassword(context.Background(), "alice", models.PasswordChange{
				OldPassword: "a", NewPassword: "b", NewPasswordCheck: "b",
			})

			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCredentialService_ChangePassword_HashFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, accounts, hasher := newTestCredentialSvc(t, ctrl)

	accounts.EXPECT().FindByUsername(gomock.Any(), "alice").Return(aliceAccount(), nil)
	hasher.EXPECT().Verify(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, crypto.ErrIncompatibleHash)

	_, err := svc.ChangePassword(context.Background(), "alice", models.PasswordChange{
		OldPassword: "a", NewPassword: "b", NewPasswordCheck: "b",
	})

	require.ErrorIs(t, err, ErrHashingFailure)
}

// ── GetAccount / ListAccounts ────────────────────────────────────────────────

func TestCredentialService_GetAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, accounts, _ := newTestCredentialSvc(t, ctrl)

	accounts.EXPECT().GetByID(gomock.Any(), int64(1)).Return(aliceAccount(), nil)
	accounts.EXPECT().GetByID(gomock.Any(), int64(2)).Return(models.Account{}, store.ErrNotFound)

	got, err := svc.GetAccount(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)

	_, err = svc.GetAccount(context.Background(), 2)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCredentialService_ListAccounts(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, accounts, _ := newTestCredentialSvc(t, ctrl)

	accounts.EXPECT().List(gomock.Any()).Return([]models.Account{aliceAccount()}, nil)

	got, err := svc.ListAccounts(context.Background())

	require.NoError(t, err)
	assert.Len(t, got, 1)
}

// ── end to end over the in-memory store ──────────────────────────────────────

func TestCredentialService_Scenario(t *testing.T) {
	svc, _ := newRealCredentialSvc(crypto.NewPasswordHasher(testArgon2))
	ctx := context.Background()

	_, err := svc.CreateAccount(ctx, models.NewAccount{Username: "alice", Password: "secret1"})
	require.NoError(t, err)

	verify := func(password string) bool {
		t.Helper()
		ok, err := svc.VerifyCredentials(ctx, models.Credentials{Username: "alice", Password: password})
		require.NoError(t, err)
		return ok
	}

	assert.True(t, verify("secret1"))
	assert.False(t, verify("wrong"))

	_, err = svc.ChangePassword(ctx, "alice", models.PasswordChange{
		OldPassword: "wrongold", NewPassword: "secret2", NewPasswordCheck: "secret2",
	})
	require.ErrorIs(t, err, ErrInvalidCredentials)
	assert.True(t, verify("secret1"), "failed change must not touch the hash")

	_, err = svc.ChangePassword(ctx, "alice", models.PasswordChange{
		OldPassword: "secret1", NewPassword: "secret2", NewPasswordCheck: "other",
	})
	require.ErrorIs(t, err, ErrPasswordMismatch)
	assert.True(t, verify("secret1"))

	updated, err := svc.ChangePassword(ctx, "alice", models.PasswordChange{
		OldPassword: "secret1", NewPassword: "secret2", NewPasswordCheck: "secret2",
	})
	require.NoError(t, err)
	assert.False(t, updated.UpdatedAt.Before(updated.CreatedAt))

	assert.False(t, verify("secret1"))
	assert.True(t, verify("secret2"))

	_, err = svc.CreateAccount(ctx, models.NewAccount{Username: "alice", Password: "again"})
	require.ErrorIs(t, err, ErrDuplicateUsername)
}

func TestCredentialService_SaltUniqueness(t *testing.T) {
	svc, accounts := newRealCredentialSvc(crypto.NewPasswordHasher(testArgon2))
	ctx := context.Background()

	_, err := svc.CreateAccount(ctx, models.NewAccount{Username: "alice", Password: "same"})
	require.NoError(t, err)
	_, err = svc.CreateAccount(ctx, models.NewAccount{Username: "bob", Password: "same"})
	require.NoError(t, err)

	alice, err := accounts.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	bob, err := accounts.FindByUsername(ctx, "bob")
	require.NoError(t, err)

	assert.NotEqual(t, alice.PasswordHash, bob.PasswordHash)
	assert.NotContains(t, alice.PasswordHash, "same")
}

// barrierHasher holds every Hash call until n callers arrived, so that
// concurrent password changes all read the account before any commits.
type barrierHasher struct {
	crypto.PasswordHasher
	arrived sync.WaitGroup
}

func (b *barrierHasher) Hash(ctx context.Context, plaintext string) (string, error) {
	b.arrived.Done()
	b.arrived.Wait()
	return b.PasswordHasher.Hash(ctx, plaintext)
}

func TestCredentialService_ConcurrentChange_ExactlyOneWins(t *testing.T) {
	hasher := crypto.NewPasswordHasher(testArgon2)
	svc, accounts := newRealCredentialSvc(hasher)
	ctx := context.Background()

	_, err := svc.CreateAccount(ctx, models.NewAccount{Username: "alice", Password: "secret1"})
	require.NoError(t, err)

	barrier := &barrierHasher{PasswordHasher: hasher}
	barrier.arrived.Add(2)
	racing := NewCredentialService(accounts, barrier, logger.Nop())

	newPasswords := []string{"left", "right"}
	errs := make([]error, len(newPasswords))

	var wg sync.WaitGroup
	for i, pw := range newPasswords {
		i, pw := i, pw
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = racing.ChangePassword(ctx, "alice", models.PasswordChange{
				OldPassword: "secret1", NewPassword: pw, NewPasswordCheck: pw,
			})
		}()
	}
	wg.Wait()

	var winner string
	for i, err := range errs {
		if err == nil {
			require.Empty(t, winner, "only one change may win")
			winner = newPasswords[i]
			continue
		}
		require.ErrorIs(t, err, ErrConcurrentUpdate)
	}
	require.NotEmpty(t, winner)

	ok, err := svc.VerifyCredentials(ctx, models.Credentials{Username: "alice", Password: winner})
	require.NoError(t, err)
	assert.True(t, ok)
}
