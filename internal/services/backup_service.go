package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"promoter-service/internal/events"
	"promoter-service/internal/models"
	"promoter-service/internal/repository"
)

var ErrMalformedBackup = errors.New("backup document is malformed")

// backupFields maps backup document fields to storage keys, in restore order
var backupFields = []struct {
	field string
	key   string
}{
	{"promoters", repository.KeyPromoters},
	{"floors", repository.KeyFloors},
	{"sales", repository.KeySales},
	{"complaints", repository.KeyComplaints},
	{"feedbacks", repository.KeyFeedbacks},
	{"settings", repository.KeySettings},
}

// BackupService exports and restores the whole dataset
type BackupService struct {
	repo      repository.RepositoryInterface
	publisher *events.Publisher
}

// NewBackupService creates a new BackupService
func NewBackupService(repo repository.RepositoryInterface, publisher *events.Publisher) *BackupService {
	return &BackupService{repo: repo, publisher: publisher}
}

// Export reads every collection, seeding defaults as a normal read would
func (s *BackupService) Export(ctx context.Context) (*models.BackupDocument, error) {
	raw := make(map[string]json.RawMessage, len(backupFields))
	for _, f := range backupFields {
		payload, err := s.repo.ExportCollection(ctx, f.key)
		if err != nil {
			return nil, err
		}
		raw[f.field] = payload
	}

	return &models.BackupDocument{
		Promoters:  raw["promoters"],
		Floors:     raw["floors"],
		Sales:      raw["sales"],
		Complaints: raw["complaints"],
		Feedbacks:  raw["feedbacks"],
		Settings:   raw["settings"],
	}, nil
}

// ExportJSON returns the backup document indented by two spaces
func (s *BackupService) ExportJSON(ctx context.Context) ([]byte, error) {
	doc, err := s.Export(ctx)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(doc, "", "  ")
}

// Restore overwrites collections from a backup document.
//
// The document is parsed before anything is written. Fields that are absent
// or null leave their collection untouched. Present fields are written one at
// a time in backup order and there is no rollback: a field that is not an array
// fails the restore after earlier fields have already been written.
// Returns the storage keys that were overwritten.
func (s *BackupService) Restore(ctx context.Context, data []byte) ([]string, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBackup, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: document must be an object", ErrMalformedBackup)
	}

	written := make([]string, 0, len(backupFields))
	for _, f := range backupFields {
		payload, ok := doc[f.field]
		if !ok || isJSONNull(payload) {
			continue
		}
		if !isJSONArray(payload) {
			s.publishRestore(ctx, written)
			return written, fmt.Errorf("%w: %s must be an array", ErrMalformedBackup, f.field)
		}
		var compact bytes.Buffer
		if err := json.Compact(&compact, payload); err != nil {
			s.publishRestore(ctx, written)
			return written, fmt.Errorf("%w: %s: %v", ErrMalformedBackup, f.field, err)
		}
		if err := s.repo.ImportCollection(ctx, f.key, compact.Bytes()); err != nil {
			s.publishRestore(ctx, written)
			return written, err
		}
		written = append(written, f.key)
	}

	s.publishRestore(ctx, written)
	return written, nil
}

func (s *BackupService) publishRestore(ctx context.Context, written []string) {
	if len(written) > 0 {
		s.publisher.PublishDataRestored(ctx, written)
	}
}

// BackupFilename returns the download name for a backup taken at t
func BackupFilename(t time.Time) string {
	return fmt.Sprintf("promoter_pro_backup_%s.json", t.Format("2006-01-02"))
}

func isJSONNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func isJSONArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}
