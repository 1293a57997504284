package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyUsername     = errors.New("username is required")
	ErrUsernameSpaces    = errors.New("username must not start or end with whitespace")
	ErrUsernameTooLong   = errors.New("username is too long")
	ErrEmptyPassword     = errors.New("password is required")
	ErrPasswordTooLong   = errors.New("password is too long")
	ErrEmptyCode         = errors.New("code is required")
	ErrCodeTooLong       = errors.New("code is too long")
	ErrEmptyName         = errors.New("name is required")
	ErrNameTooLong       = errors.New("name is too long")
	ErrInvalidIdentifier = errors.New("identifier must be a positive number")
)
