package repository

import (
	"context"
	"encoding/json"
	"errors"
)

var (
	ErrStorageFull       = errors.New("storage is full")
	ErrDuplicateID       = errors.New("a record with this id already exists")
	ErrCorruptCollection = errors.New("stored collection is not valid JSON")
)

// Collection keys as they appear in the storage medium
const (
	KeyPromoters  = "pp_promoters"
	KeyFloors     = "pp_floors"
	KeySales      = "pp_sales"
	KeyComplaints = "pp_complaints"
	KeyFeedbacks  = "pp_feedbacks"
	KeySettings   = "pp_settings"
)

// CollectionKeys lists every collection key in backup order
var CollectionKeys = []string{KeyPromoters, KeyFloors, KeySales, KeyComplaints, KeyFeedbacks, KeySettings}

// CollectionStore persists whole collections as JSON arrays, one document per key.
// Read reports found=false when nothing has been written under the key yet.
// Write replaces the document; a medium that runs out of space returns ErrStorageFull
// and leaves the previous document in place.
type CollectionStore interface {
	Read(ctx context.Context, key string) (json.RawMessage, bool, error)
	Write(ctx context.Context, key string, payload json.RawMessage) error
}
