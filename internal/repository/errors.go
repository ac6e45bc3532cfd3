package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	// ErrDuplicateKey is the storage-agnostic unique-violation signal.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrChallengeSpent means a consume CAS found the row already
	// consumed (or gone).
	ErrChallengeSpent = errors.New("challenge already consumed")
)

func translateDuplicate(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicateKey
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateKey
	}
	// modernc sqlite driver surfaces constraint errors as plain strings
	if strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "constraint failed") {
		return ErrDuplicateKey
	}
	return err
}
