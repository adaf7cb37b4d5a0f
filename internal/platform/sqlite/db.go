package sqlite

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// slogWriter adapts slog to the gorm logger.Writer interface.
type slogWriter struct {
	logger *slog.Logger
}

// Printf implements gormlogger.Writer.
func (w slogWriter) Printf(format string, v ...interface{}) {
	w.logger.Warn(fmt.Sprintf(format, v...))
}

// Open opens the SQLite database at path and migrates the task schema.
// Use ":memory:" for a throwaway database.
func Open(path string, logger *slog.Logger) (*gorm.DB, error) {
	if logger == nil {
		logger = slog.Default()
	}

	gormLog := gormlogger.New(
		slogWriter{logger: logger.With(slog.String("component", "gorm"))},
		gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		},
	)

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: gormLog})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access sqlite connection pool: %w", err)
	}
	// SQLite serialises writers, and every ":memory:" connection is its own database.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&taskRecord{}); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to migrate sqlite schema: %w", err)
	}

	return db, nil
}
