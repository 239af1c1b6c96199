package store

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already exists")
	ErrDuplicatePin   = errors.New("secret pin already in use")
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"

	emailConstraint = "users_email_key"
	pinConstraint   = "users_secret_pin_key"
)

// translate 將 pgx/PostgreSQL 錯誤轉成 store 的哨兵錯誤，其餘原樣回傳
func translate(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			switch pgErr.ConstraintName {
			case emailConstraint:
				return ErrDuplicateEmail
			case pinConstraint:
				return ErrDuplicatePin
			}
		case foreignKeyViolation:
			return ErrNotFound
		}
	}
	return err
}

type scanner interface {
	Scan(dest ...any) error
}
