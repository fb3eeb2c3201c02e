package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// código SQLSTATE de Postgres para unique_violation.
const uniqueViolationCode = "23505"

// isUniqueViolation detecta un choque de constraint único. Si el error no es
// un *pgconn.PgError (por ejemplo, viene envuelto por un pool intermedio),
// se recurre al texto.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolationCode
	}
	return strings.Contains(err.Error(), uniqueViolationCode)
}
