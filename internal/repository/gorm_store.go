package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// pgDiskFull is the Postgres SQLSTATE for disk_full
const pgDiskFull = "53100"

// StoredCollection is one collection document in Postgres
type StoredCollection struct {
	Key       string         `gorm:"column:collection_key;type:varchar(64);primaryKey" json:"key"`
	Payload   datatypes.JSON `gorm:"type:jsonb;not null" json:"payload"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
}

// TableName returns the table name for StoredCollection
func (StoredCollection) TableName() string {
	return "stored_collections"
}

// GormStore keeps collections in Postgres through GORM
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GormStore
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// AutoMigrate creates the collection table
func (s *GormStore) AutoMigrate() error {
	return s.db.AutoMigrate(&StoredCollection{})
}

func (s *GormStore) Read(ctx context.Context, key string) (json.RawMessage, bool, error) {
	var row StoredCollection
	err := s.db.WithContext(ctx).Where("collection_key = ?", key).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return json.RawMessage(row.Payload), true, nil
}

// Write upserts the collection row
func (s *GormStore) Write(ctx context.Context, key string, payload json.RawMessage) error {
	row := StoredCollection{
		Key:       key,
		Payload:   datatypes.JSON(payload),
		UpdatedAt: time.Now(),
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "collection_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
		}).
		Create(&row).Error
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgDiskFull {
			return fmt.Errorf("%w: %v", ErrStorageFull, err)
		}
		return err
	}
	return nil
}
