package postgresql

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
	checkViolation      = "23514"
)

func pgErrorCode(err error) (code, constraint string) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr.ConstraintName
	}
	return "", ""
}

func isUniqueViolation(err error) bool {
	code, _ := pgErrorCode(err)
	return code == uniqueViolation
}

// foreignKeyConstraint returns the violated constraint name, or "" when err is not a
// foreign key violation.
func foreignKeyConstraint(err error) string {
	code, constraint := pgErrorCode(err)
	if code != foreignKeyViolation {
		return ""
	}
	return constraint
}
