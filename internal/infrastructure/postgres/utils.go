package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// Códigos SQLSTATE relevantes.
const (
	sqlStateForeignKeyViolation = "23503"
	sqlStateUniqueViolation     = "23505"
	sqlStateCheckViolation      = "23514"
)

// ErrCorruptRow fila leída con un valor fuera de los conjuntos cerrados del dominio.
var ErrCorruptRow = errors.New("fila con datos inválidos")

// wrapPgError envuelve err con la operación y, si es una violación de constraint, su nombre.
func wrapPgError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case sqlStateCheckViolation, sqlStateForeignKeyViolation, sqlStateUniqueViolation:
			return fmt.Errorf("%s: constraint %s (%s): %w", op, pgErr.ConstraintName, pgErr.Code, err)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
