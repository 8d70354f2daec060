package repository

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/okian/battle/internal/domain/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// collectionRecord is the row layout shared with the SQLite schema.
type collectionRecord struct {
	Key       string    `gorm:"column:key;primaryKey"`
	Value     string    `gorm:"column:value;type:text;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

func (collectionRecord) TableName() string { return "collections" }

// PostgresStore persists collections through GORM.
type PostgresStore struct {
	db     *gorm.DB
	closed atomic.Bool
}

// OpenPostgres connects with dsn and migrates the collections table.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres: %w", ErrMissingTarget)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres db: %w", err)
	}
	if err := db.WithContext(ctx).AutoMigrate(&collectionRecord{}); err != nil {
		closeGorm(db)
		return nil, fmt.Errorf("migrate postgres db: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

// Load implements Store.
func (s *PostgresStore) Load(ctx context.Context, key string) ([]model.ScoreEntry, bool, error) {
	defer observe(DriverPostgres, "load", time.Now())

	if s.closed.Load() {
		return nil, false, ErrClosed
	}
	var rec collectionRecord
	err := s.db.WithContext(ctx).Where("key = ?", key).Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load %q: %w", key, err)
	}
	entries, err := model.DecodeScores([]byte(rec.Value))
	if err != nil {
		return nil, false, fmt.Errorf("load %q: %w", key, err)
	}
	return entries, true, nil
}

// Save implements Store.
func (s *PostgresStore) Save(ctx context.Context, key string, entries []model.ScoreEntry) error {
	defer observe(DriverPostgres, "save", time.Now())

	if key == "" {
		return ErrEmptyKey
	}
	if s.closed.Load() {
		return ErrClosed
	}
	raw, err := model.EncodeScores(entries)
	if err != nil {
		return err
	}
	rec := collectionRecord{Key: key, Value: string(raw), UpdatedAt: time.Now().UTC()}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&rec).Error
	if err != nil {
		return fmt.Errorf("save %q: %w", key, err)
	}
	return nil
}

// Close implements Store.
func (s *PostgresStore) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func closeGorm(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
