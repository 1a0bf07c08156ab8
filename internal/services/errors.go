package services

import (
	"errors"

	"github.com/jackc/pgx/v5"
)

var (
	// ErrNotFound covers both missing rows and rows owned by another
	// family; callers cannot tell the two apart.
	ErrNotFound = errors.New("not found")

	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrLastAdmin rejects removing or deactivating a family's only
	// remaining active admin.
	ErrLastAdmin = errors.New("family must retain at least one active admin")

	ErrInvalidToken = errors.New("invalid or expired reset token")

	ErrBuyerNameRequired = errors.New("buyer name is required")
)

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
