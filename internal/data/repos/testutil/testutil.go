package testutil

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/yungbote/flashcards-backend/internal/data/db"
	"github.com/yungbote/flashcards-backend/internal/platform/logger"
)

var (
	logOnce sync.Once
	logg    *logger.Logger
	logErr  error

	dbSeq atomic.Int64
)

func Logger(tb testing.TB) *logger.Logger {
	tb.Helper()
	logOnce.Do(func() {
		logg, logErr = logger.New("test")
	})
	if logErr != nil {
		tb.Fatalf("failed to init logger: %v", logErr)
	}
	return logg
}

// DB opens an isolated, migrated database. Each call gets its own SQLite
// in-memory database unless TEST_POSTGRES_DSN points at a Postgres server.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	var dialector gorm.Dialector
	if dsn := strings.TrimSpace(os.Getenv("TEST_POSTGRES_DSN")); dsn != "" {
		dialector = postgres.Open(dsn)
	} else {
		name := fmt.Sprintf("file:testdb_%d?mode=memory&cache=shared", dbSeq.Add(1))
		dialector = sqlite.Open(name)
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		tb.Fatalf("failed to open test db: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		tb.Fatalf("failed to access test pool: %v", err)
	}
	// Keeps the shared in-memory database alive for the whole test.
	sqlDB.SetMaxOpenConns(1)
	tb.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrateAll(gdb); err != nil {
		tb.Fatalf("failed to migrate test db: %v", err)
	}
	if strings.TrimSpace(os.Getenv("TEST_POSTGRES_DSN")) != "" {
		if err := gdb.Exec("DELETE FROM flashcards").Error; err != nil {
			tb.Fatalf("failed to reset flashcards: %v", err)
		}
	}
	return gdb
}

func Tx(tb testing.TB, gdb *gorm.DB) *gorm.DB {
	tb.Helper()
	tx := gdb.Begin()
	if tx.Error != nil {
		tb.Fatalf("begin tx: %v", tx.Error)
	}
	tb.Cleanup(func() {
		_ = tx.Rollback().Error
	})
	return tx
}
