// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Account represents a registered user of the registry.
//
// PasswordHash holds the PHC-encoded argon2id hash of the user's password.
// It is never serialized and must never contain plaintext.
type Account struct {
	// ID is assigned by the store on creation and never changes.
	ID int64 `json:"id"`

	// Username is the unique, immutable login of the account.
	// It is the lookup key for all password operations.
	Username string `json:"username"`

	// PasswordHash encodes algorithm, parameters, salt and digest.
	PasswordHash string `json:"-"`

	// IsAdmin is set at creation and not mutated by credential operations.
	IsAdmin bool `json:"is_admin"`

	// IsActive defaults to true when an account is created.
	IsActive bool `json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt is refreshed on every mutation, including password changes.
	UpdatedAt time.Time `json:"updated_at"`
}

// View returns the public representation of the account.
func (a Account) View() AccountView {
	return AccountView{
		ID:       a.ID,
		Username: a.Username,
		IsActive: a.IsActive,
	}
}

// TableName returns the name of the database table
// associated with the Account model.
func (a Account) TableName() string {
	return "users"
}

// AccountView is the only account shape returned to API callers.
type AccountView struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	IsActive bool   `json:"is_active"`
}

// NewAccount is the registration payload.
type NewAccount struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Credentials is a username/password pair submitted for verification.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// PasswordChange is the payload of a password change request.
// NewPasswordCheck must equal NewPassword exactly.
type PasswordChange struct {
	OldPassword      string `json:"old_password"`
	NewPassword      string `json:"new_password"`
	NewPasswordCheck string `json:"new_password_check"`
}
