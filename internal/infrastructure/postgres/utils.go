package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return hasCode(err, "23505")
}

// isForeignKeyViolation verifica si un error es una violación de FK (23503).
func isForeignKeyViolation(err error) bool {
	return hasCode(err, "23503")
}

// isInvalidTextRepresentation verifica si un valor no pudo convertirse al tipo de la
// columna (22P02), p. ej. un ID que no es UUID.
func isInvalidTextRepresentation(err error) bool {
	return hasCode(err, "22P02")
}

// isNoRows trata un ID mal formado igual que una fila inexistente.
func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) || isInvalidTextRepresentation(err)
}

func hasCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return strings.Contains(err.Error(), code)
}
