package db

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

// Postgres SQLSTATE codes the API maps to client errors.
const (
	pgNumericValueOutOfRange    = "22003"
	pgInvalidTextRepresentation = "22P02"
	pgNotNullViolation          = "23502"
	pgForeignKeyViolation       = "23503"
	pgUniqueViolation           = "23505"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	return ""
}

func sqliteCode(err error) sqlite3.ErrNoExtended {
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode
	}

	return 0
}

// IsInvalidInput reports a value the database could not convert to the
// column type, e.g. text where an integer id was expected.
func IsInvalidInput(err error) bool {
	return pgCode(err) == pgInvalidTextRepresentation
}

// IsOutOfRange reports a result too large for its column, e.g. votes
// pushed past the INT range.
func IsOutOfRange(err error) bool {
	return pgCode(err) == pgNumericValueOutOfRange
}

func IsUniqueViolation(err error) bool {
	if pgCode(err) == pgUniqueViolation {
		return true
	}

	code := sqliteCode(err)

	return code == sqlite3.ErrConstraintUnique || code == sqlite3.ErrConstraintPrimaryKey
}

func IsForeignKeyViolation(err error) bool {
	return pgCode(err) == pgForeignKeyViolation || sqliteCode(err) == sqlite3.ErrConstraintForeignKey
}

func IsNotNullViolation(err error) bool {
	return pgCode(err) == pgNotNullViolation || sqliteCode(err) == sqlite3.ErrConstraintNotNull
}
