package persistence

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopledger/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// translateError maps storage-level failures onto domain errors so handlers
// can derive status codes without knowing the driver.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return shared.ErrAlreadyExists
		case "53300", "57P01", "57P02", "57P03", "08000", "08003", "08006":
			return shared.ErrStorageUnavailable
		}
		return err
	}

	// sqlite (test driver) reports constraint failures as plain strings
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return shared.ErrAlreadyExists
	}

	return err
}

// forUpdate adds a FOR UPDATE row lock on dialects that support it. The
// sqlite test driver serializes writes on its own, so the clause is skipped
// there.
func forUpdate(db *gorm.DB) *gorm.DB {
	if db.Dialector.Name() == "postgres" {
		return db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return db
}
