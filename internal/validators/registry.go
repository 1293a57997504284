package validators

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/go-bank-registry/models"
)

// Field names understood by [RegistryValidator].
const (
	FieldCode = "code"
	FieldName = "name"
)

const (
	maxCodeLength = 32
	maxNameLength = 255
)

// RegistryValidator validates bank and agency payloads.
type RegistryValidator struct{}

// NewRegistryValidator returns a Validator for models.BankInput and
// models.AgencyInput.
func NewRegistryValidator() Validator {
	return &RegistryValidator{}
}

// Validate checks code and name of a bank or agency input. Without fields
// both are validated.
func (v *RegistryValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.BankInput:
		return v.validateCodeName(value.Code, value.Name, fields...)
	case *models.BankInput:
		return v.validateCodeName(value.Code, value.Name, fields...)

	case models.AgencyInput:
		return v.validateCodeName(value.Code, value.Name, fields...)
	case *models.AgencyInput:
		return v.validateCodeName(value.Code, value.Name, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *RegistryValidator) validateCodeName(code, name string, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldCode, FieldName}
	}

	for _, f := range fields {
		switch f {
		case FieldCode:
			if strings.TrimSpace(code) == "" {
				return ErrEmptyCode
			}
			if utf8.RuneCountInString(code) > maxCodeLength {
				return ErrCodeTooLong
			}
		case FieldName:
			if strings.TrimSpace(name) == "" {
				return ErrEmptyName
			}
			if utf8.RuneCountInString(name) > maxNameLength {
				return ErrNameTooLong
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// ValidateID reports whether id can address a stored record.
func ValidateID(id int64) error {
	if id <= 0 {
		return ErrInvalidIdentifier
	}
	return nil
}
