package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"github.com/nguyentantai21042004/audio-report/internal/domain"
	"github.com/nguyentantai21042004/audio-report/internal/logger"
)

// MemoryPath opens a private in-memory database, used by tests.
const MemoryPath = ":memory:"

// InitDB opens the SQLite database at path through the pure-Go driver and
// migrates the schema.
func InitDB(path string, log logger.Logger) (*gorm.DB, error) {
	dsn, err := buildDSN(path)
	if err != nil {
		return nil, err
	}

	newLogger := gormlogger.New(
		gormWriter{log: log},
		gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(sqlite.New(sqlite.Config{
		DriverName: "sqlite",
		DSN:        dsn,
	}), &gorm.Config{Logger: newLogger})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("configure connections: %w", err)
	}
	// One connection serializes writers; SQLite allows a single writer anyway
	// and an in-memory database only lives as long as its connection.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&domain.Job{}); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	return db, nil
}

// Open initializes the database at path and returns a Store on it.
func Open(path string, log logger.Logger) (Store, error) {
	db, err := InitDB(path, log)
	if err != nil {
		return nil, err
	}
	return NewStore(db), nil
}

func buildDSN(path string) (string, error) {
	const pragmas = "_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)&_time_format=sqlite"

	if path == MemoryPath {
		return "file::memory:?" + pragmas, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("create database dir: %w", err)
	}
	return fmt.Sprintf("file:%s?%s&_pragma=journal_mode(WAL)", path, pragmas), nil
}

type gormWriter struct {
	log logger.Logger
}

func (w gormWriter) Printf(format string, args ...interface{}) {
	w.log.Warn(context.Background(), "[gorm] "+format, args...)
}
