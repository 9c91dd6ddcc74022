package db

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"strings"

	mysqldrv "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/yungbote/flashcards-backend/internal/domain/flashcards"
)

// Classify gives a short, driver independent label for storage failures.
func Classify(err error) string {
	if err == nil {
		return ""
	}
	switch {
	case errors.Is(err, ErrNoDatabase):
		return "no_database"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, driver.ErrBadConn), errors.Is(err, sql.ErrConnDone):
		return "connection"
	case errors.Is(err, gorm.ErrRecordNotFound):
		return "not_found"
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch strings.TrimSpace(pgErr.Code) {
		case "23505":
			return "unique_violation"
		case "23502", "23514":
			return "constraint_violation"
		case "40001", "40P01", "55P03":
			return "deadlock"
		}
		if strings.HasPrefix(pgErr.Code, "08") {
			return "connection"
		}
		return "pg_" + pgErr.Code
	}

	var myErr *mysqldrv.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case 1062:
			return "unique_violation"
		case 1048, 1364, 3819:
			return "constraint_violation"
		case 1205, 1213:
			return "deadlock"
		case 1040, 1045, 1049:
			return "connection"
		}
		return "mysql_error"
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "connection refused"),
		strings.Contains(msg, "database is closed"),
		strings.Contains(msg, "broken pipe"):
		return "connection"
	case strings.Contains(msg, "duplicate"), strings.Contains(msg, "unique constraint"):
		return "unique_violation"
	case strings.Contains(msg, "deadlock"), strings.Contains(msg, "database is locked"):
		return "deadlock"
	default:
		return "error"
	}
}

// MapError tags a storage failure as a persistence error.
func MapError(op string, err error) error {
	if err == nil {
		return nil
	}
	return flashcards.Wrap(flashcards.CodePersistence, op, err)
}
