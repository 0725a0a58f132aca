package errors

import (
	stderrs "errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// pgCodes maps the SQLSTATEs the result store can hit
var pgCodes = map[string]ErrorCode{
	"23505": ErrorCodeConflict,        // unique_violation
	"23502": ErrorCodeValidation,      // not_null_violation
	"23514": ErrorCodeValidation,      // check_violation
	"22P02": ErrorCodeInvalidArgument, // invalid_text_representation
	"25006": ErrorCodeUnavailable,     // read_only_sql_transaction
	"57P03": ErrorCodeUnavailable,     // cannot_connect_now
}

// dbCode classifies a pgx error. Anything that is neither ErrNoRows nor a
// *pgconn.PgError is ErrorCodeDB
func dbCode(err error) ErrorCode {
	if stderrs.Is(err, pgx.ErrNoRows) {
		return ErrorCodeNotFound
	}
	var pgErr *pgconn.PgError
	if stderrs.As(err, &pgErr) {
		if c, ok := pgCodes[pgErr.Code]; ok {
			return c
		}
	}
	return ErrorCodeDB
}

// FromPostgres wraps a pgx error under its mapped code. nil stays nil
func FromPostgres(err error, msg string) error {
	if err == nil {
		return nil
	}
	return Wrap(err, dbCode(err), msg)
}

// FromPostgresf is FromPostgres with a format string
func FromPostgresf(err error, format string, a ...any) error {
	if err == nil {
		return nil
	}
	return FromPostgres(err, fmt.Sprintf(format, a...))
}
