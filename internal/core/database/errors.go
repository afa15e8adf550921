package database

import (
	"database/sql"
	"database/sql/driver"
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

const (
	pgUniqueViolation   = "23505"
	mysqlDuplicateEntry = 1062
)

// gorm sentinels that mean the store rejected or could not run a statement.
// ErrRecordNotFound is deliberately absent: repositories turn it into a nil row.
var storeSentinels = []error{
	gorm.ErrDuplicatedKey,
	gorm.ErrForeignKeyViolated,
	gorm.ErrCheckConstraintViolated,
	gorm.ErrInvalidTransaction,
	gorm.ErrInvalidDB,
	gorm.ErrInvalidField,
	gorm.ErrInvalidValue,
	gorm.ErrInvalidData,
	gorm.ErrMissingWhereClause,
	gorm.ErrPrimaryKeyRequired,
	gorm.ErrModelValueRequired,
	gorm.ErrUnsupportedRelation,
	gorm.ErrUnsupportedDriver,
	gorm.ErrNotImplemented,
	gorm.ErrDryRunModeUnsupported,
	gorm.ErrRegistered,
	gorm.ErrEmptySlice,
	gorm.ErrPreloadNotAllowed,
	driver.ErrBadConn,
	sql.ErrConnDone,
	sql.ErrTxDone,
}

// IsStoreError reports whether err was raised by the relational store or its
// driver, as opposed to a generic runtime fault.
func IsStoreError(err error) bool {
	if err == nil {
		return false
	}
	var (
		pgErr   *pgconn.PgError
		myErr   *mysql.MySQLError
		liteErr sqlite3.Error
	)
	if errors.As(err, &pgErr) || errors.As(err, &myErr) || errors.As(err, &liteErr) {
		return true
	}
	for _, s := range storeSentinels {
		if errors.Is(err, s) {
			return true
		}
	}
	return false
}

// IsUniqueViolation reports whether err is a unique constraint violation,
// translated by gorm or raw from the driver.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlDuplicateEntry
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			liteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
