package pgconv

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"
)

// TextPtr maps an empty string onto SQL NULL for nullable text columns.
func TextPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func TextValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// IsNoRows checks if the error is a "no rows" error from either sql or pgx
func IsNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows)
}
