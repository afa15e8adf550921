package database

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/gblsmlo/lemind/internal/domain"
)

func openMemory(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := NewGorm(Opts{
		Driver:       "sqlite",
		DSN:          fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
		MaxOpenConns: 1,
		LogLevel:     "silent",
	})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	return db
}

func TestIsStoreError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"generic", errors.New("Database connection failed"), false},
		{"context", context.DeadlineExceeded, false},
		{"record not found", gorm.ErrRecordNotFound, false},
		{"postgres", &pgconn.PgError{Code: "57P01", Message: "terminating connection"}, true},
		{"mysql", &mysql.MySQLError{Number: 1146, Message: "table missing"}, true},
		{"sqlite", sqlite3.Error{Code: sqlite3.ErrBusy}, true},
		{"wrapped sentinel", fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey), true},
		{"bad conn", driver.ErrBadConn, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsStoreError(tc.err))
		})
	}
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(gorm.ErrDuplicatedKey))
	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, IsUniqueViolation(&mysql.MySQLError{Number: 1062}))
	assert.True(t, IsUniqueViolation(sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("duplicate")))
}

func TestSqliteUniqueIndexIsTranslated(t *testing.T) {
	db := openMemory(t)
	ctx := context.Background()

	s := &domain.Space{OwnerID: uuid.NewString(), Name: "Acme", Slug: "acme"}
	s.EnsureID()
	require.NoError(t, db.WithContext(ctx).Create(s).Error)

	dup := &domain.Space{OwnerID: uuid.NewString(), Name: "Other", Slug: "acme"}
	dup.EnsureID()
	err := db.WithContext(ctx).Create(dup).Error
	require.Error(t, err)
	assert.True(t, IsStoreError(err))
	assert.True(t, IsUniqueViolation(err))
}

func TestUnsupportedDriver(t *testing.T) {
	_, err := NewGorm(Opts{Driver: "oracle"})
	assert.ErrorIs(t, err, ErrUnsupportedDriver)
}

func TestNormalizeMySQLDSN(t *testing.T) {
	got := normalizeMySQLDSN("jdbc:mysql://db:3306/crm?useSSL=false&serverTimezone=UTC", "app", "secret")
	assert.Equal(t, "app:secret@tcp(db:3306)/crm?charset=utf8mb4&loc=UTC&parseTime=true&tls=false", got)

	raw := "app:secret@tcp(db:3306)/crm?parseTime=true"
	assert.Equal(t, raw, normalizeMySQLDSN(raw, "", ""))
	assert.Equal(t, "app:****@tcp(db:3306)/crm?parseTime=true", maskDSN(raw))
}
