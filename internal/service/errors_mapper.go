package service

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-bank-registry/internal/store"
)

// fromStore converts a store error into the service taxonomy while keeping
// the original error in the chain for logging.
func fromStore(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, store.ErrParentNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, store.ErrAlreadyExists):
		return fmt.Errorf("%w: %w", ErrDuplicateUsername, err)
	case errors.Is(err, store.ErrConflict):
		return fmt.Errorf("%w: %w", ErrConcurrentUpdate, err)
	default:
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
}
