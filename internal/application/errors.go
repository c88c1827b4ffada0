package application

import (
	"errors"

	"github.com/oksasatya/rupaykg-biomass/internal/domain/entity"
	"github.com/oksasatya/rupaykg-biomass/pkg/helpers"
)

var (
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrInvalidOrExpiredToken = helpers.ErrInvalidOrExpiredToken
	ErrRoleNotPermitted      = errors.New("role not permitted")
	ErrInvalidInput          = errors.New("invalid input")
)

// InputError rejects a request whose values are well-formed JSON but cannot
// be stored, such as a quantity whose derived value overflows.
type InputError struct {
	Field   string
	Message string
}

func (e *InputError) Error() string { return e.Field + " " + e.Message }
func (e *InputError) Unwrap() error { return ErrInvalidInput }

// AuthzError is returned when an authenticated caller's role is outside the
// operation's policy. Message is safe to show to the caller.
type AuthzError struct {
	Role    entity.Role
	Message string
}

func (e *AuthzError) Error() string { return e.Message }
func (e *AuthzError) Unwrap() error { return ErrRoleNotPermitted }

// StorageError wraps any failure of the underlying store. It is never retried.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *StorageError) Unwrap() error { return e.Err }

func storageErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}
