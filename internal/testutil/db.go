// Package testutil holds helpers shared by package tests.
package testutil

import (
	"context"
	"testing"

	"ClubHub/internal/model"
	"ClubHub/internal/repository/mysql"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB returns a fresh in-memory SQLite database with the full schema and
// foreign keys enforced. A single connection keeps the memory database alive.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Discard,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, mysql.Migrate(db))
	return db
}

// CreateUser inserts a user whose password is "password123".
func CreateUser(t *testing.T, db *gorm.DB, username, role string) *model.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	u := &model.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hash),
		Role:         role,
	}
	require.NoError(t, db.WithContext(context.Background()).Create(u).Error)
	return u
}

// Count returns the number of rows in table matching the optional condition.
func Count(t *testing.T, db *gorm.DB, table string, cond ...any) int64 {
	t.Helper()

	var n int64
	q := db.Table(table)
	if len(cond) > 0 {
		q = q.Where(cond[0], cond[1:]...)
	}
	require.NoError(t, q.Count(&n).Error)
	return n
}
