// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/go-bank-registry/models"
)

// Field names understood by [CredentialValidator].
const (
	// FieldUsername targets the login of an account.
	FieldUsername = "username"

	// FieldPassword targets the plaintext password of a registration or
	// verification request.
	FieldPassword = "password"

	// FieldOldPassword targets the current password of a password change.
	FieldOldPassword = "old_password"

	// FieldNewPassword targets the replacement password of a password
	// change. It must only be checked after the old password has been
	// authenticated, so it is never part of the default field set.
	FieldNewPassword = "new_password"
)

const (
	maxUsernameLength = 64
	maxPasswordLength = 1024
)

// CredentialValidator validates account and password payloads.
type CredentialValidator struct{}

// NewCredentialValidator returns a Validator for models.NewAccount,
// models.Credentials and models.PasswordChange.
func NewCredentialValidator() Validator {
	return &CredentialValidator{}
}

// Validate dispatches on the dynamic type of obj.
//
// Default fields:
//   - NewAccount, Credentials: username, password
//   - PasswordChange: old_password
//
// A bare string is validated as a username.
func (v *CredentialValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case string:
		return validateUsername(value)

	case models.NewAccount:
		return v.validatePair(value.Username, value.Password, fields...)
	case *models.NewAccount:
		return v.validatePair(value.Username, value.Password, fields...)

	case models.Credentials:
		return v.validatePair(value.Username, value.Password, fields...)
	case *models.Credentials:
		return v.validatePair(value.Username, value.Password, fields...)

	case models.PasswordChange:
		return v.validatePasswordChange(value, fields...)
	case *models.PasswordChange:
		return v.validatePasswordChange(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *CredentialValidator) validatePair(username, password string, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUsername, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldUsername:
			if err := validateUsername(username); err != nil {
				return err
			}
		case FieldPassword:
			if err := validatePassword(password); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *CredentialValidator) validatePasswordChange(change models.PasswordChange, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldOldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldOldPassword:
			if err := validatePassword(change.OldPassword); err != nil {
				return err
			}
		case FieldNewPassword:
			if err := validatePassword(change.NewPassword); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func validateUsername(username string) error {
	if username == "" {
		return ErrEmptyUsername
	}
	if strings.TrimSpace(username) != username {
		return ErrUsernameSpaces
	}
	if utf8.RuneCountInString(username) > maxUsernameLength {
		return ErrUsernameTooLong
	}
	return nil
}

// passwords are not trimmed, whitespace is significant
func validatePassword(password string) error {
	if password == "" {
		return ErrEmptyPassword
	}
	if len(password) > maxPasswordLength {
		return ErrPasswordTooLong
	}
	return nil
}
