package store

import (
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// DefaultRecentLimit bounds Recent when the caller passes no limit.
const DefaultRecentLimit = 20

// JobRecord is the persisted summary of one processing job. Only aggregates
// are stored, never document contents.
type JobRecord struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	Operation   string    `json:"operation"`
	InputCount  int       `json:"input_count"`
	InputBytes  int64     `json:"input_bytes"`
	OutputBytes int64     `json:"output_bytes"`
	Outcome     string    `json:"outcome"`
	Attempts    int       `json:"attempts"`
	DurationMS  int64     `json:"duration_ms"`
	CreatedAt   time.Time `json:"created_at"`
}

// Store persists job records in a SQLite database.
type Store struct {
	db *gorm.DB
}

// Open opens or creates the database at path and migrates the schema.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open job store: %w", err)
	}
	if err := db.AutoMigrate(&JobRecord{}); err != nil {
		return nil, fmt.Errorf("migrate job store: %w", err)
	}
	return &Store{db: db}, nil
}

// Save inserts one job record.
func (s *Store) Save(rec *JobRecord) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	if err := s.db.Create(rec).Error; err != nil {
		return fmt.Errorf("save job record: %w", err)
	}
	return nil
}

// Recent returns up to limit records, newest first.
func (s *Store) Recent(limit int) ([]JobRecord, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	var recs []JobRecord
	if err := s.db.Order("created_at DESC").Limit(limit).Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("list job records: %w", err)
	}
	return recs, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	db, err := s.db.DB()
	if err != nil {
		return err
	}
	return db.Close()
}
