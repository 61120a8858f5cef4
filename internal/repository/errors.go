package repository

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Errors translated from driver-level failures.
var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEmail = errors.New("application with this email already exists for the course")
	ErrDuplicatePhone = errors.New("application with this phone already exists for the course")
	ErrUnknownCourse  = errors.New("referenced course does not exist")
)

// Constraint names declared in migrations/000001_init.up.sql.
const (
	constraintApplicationEmail  = "uq_course_applications_course_email"
	constraintApplicationPhone  = "uq_course_applications_course_phone"
	constraintApplicationCourse = "fk_course_applications_course"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// notFound maps pgx.ErrNoRows to ErrNotFound and passes anything else through.
func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// translateApplicationInsert maps constraint violations of course_applications.
func translateApplicationInsert(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgUniqueViolation:
		switch pgErr.ConstraintName {
		case constraintApplicationEmail:
			return ErrDuplicateEmail
		case constraintApplicationPhone:
			return ErrDuplicatePhone
		}
	case pgForeignKeyViolation:
		if pgErr.ConstraintName == constraintApplicationCourse {
			return ErrUnknownCourse
		}
	}
	return err
}
