package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"promoter-service/internal/models"
	"promoter-service/internal/seeders"
)

// RepositoryInterface is the storage surface used by the services
type RepositoryInterface interface {
	ListPromoters(ctx context.Context) ([]models.Promoter, error)
	GetPromoter(ctx context.Context, id string) (*models.Promoter, error)
	AddPromoter(ctx context.Context, promoter models.Promoter) error
	UpdatePromoter(ctx context.Context, promoter models.Promoter) (bool, error)
	DeletePromoter(ctx context.Context, id string) (bool, error)

	ListFloors(ctx context.Context) ([]models.Floor, error)
	AddFloor(ctx context.Context, floor models.Floor) error
	DeleteFloor(ctx context.Context, id string) (bool, error)

	ListSales(ctx context.Context) ([]models.SaleRecord, error)
	GetSale(ctx context.Context, id string) (*models.SaleRecord, error)
	AddSale(ctx context.Context, sale models.SaleRecord) error
	UpdateSale(ctx context.Context, sale models.SaleRecord) (bool, error)

	ListComplaints(ctx context.Context) ([]models.ComplaintRecord, error)
	GetComplaint(ctx context.Context, id string) (*models.ComplaintRecord, error)
	AddComplaint(ctx context.Context, complaint models.ComplaintRecord) error
	UpdateComplaint(ctx context.Context, complaint models.ComplaintRecord) (bool, error)
	ReplaceComplaints(ctx context.Context, complaints []models.ComplaintRecord) error

	ListFeedbacks(ctx context.Context) ([]models.FeedbackRecord, error)
	AddFeedback(ctx context.Context, feedback models.FeedbackRecord) error

	GetSettings(ctx context.Context) (models.Settings, error)
	SaveSettings(ctx context.Context, settings models.Settings) error

	ExportCollection(ctx context.Context, key string) (json.RawMessage, error)
	ImportCollection(ctx context.Context, key string, payload json.RawMessage) error
}

// Repository groups the typed collections over one store
type Repository struct {
	promoters  *Collection[models.Promoter]
	floors     *Collection[models.Floor]
	sales      *Collection[models.SaleRecord]
	complaints *Collection[models.ComplaintRecord]
	feedbacks  *Collection[models.FeedbackRecord]
	settings   *Collection[models.Settings]
}

var _ RepositoryInterface = (*Repository)(nil)

// NewRepository creates a new Repository. Promoters, floors and settings are
// seeded with defaults the first time they are read.
func NewRepository(store CollectionStore) *Repository {
	return &Repository{
		promoters:  NewCollection(store, KeyPromoters, seeders.DefaultPromoters),
		floors:     NewCollection(store, KeyFloors, seeders.DefaultFloors),
		sales:      NewCollection[models.SaleRecord](store, KeySales, nil),
		complaints: NewCollection[models.ComplaintRecord](store, KeyComplaints, nil),
		feedbacks:  NewCollection[models.FeedbackRecord](store, KeyFeedbacks, nil),
		settings:   NewCollection(store, KeySettings, seeders.DefaultSettings),
	}
}

// --- Promoter Methods ---

func (r *Repository) ListPromoters(ctx context.Context) ([]models.Promoter, error) {
	return r.promoters.List(ctx)
}

func (r *Repository) GetPromoter(ctx context.Context, id string) (*models.Promoter, error) {
	return r.promoters.Get(ctx, id)
}

func (r *Repository) AddPromoter(ctx context.Context, promoter models.Promoter) error {
	return r.promoters.Add(ctx, promoter)
}

func (r *Repository) UpdatePromoter(ctx context.Context, promoter models.Promoter) (bool, error) {
	return r.promoters.Update(ctx, promoter)
}

func (r *Repository) DeletePromoter(ctx context.Context, id string) (bool, error) {
	return r.promoters.Delete(ctx, id)
}

// --- Floor Methods ---

func (r *Repository) ListFloors(ctx context.Context) ([]models.Floor, error) {
	return r.floors.List(ctx)
}

func (r *Repository) AddFloor(ctx context.Context, floor models.Floor) error {
	return r.floors.Add(ctx, floor)
}

func (r *Repository) DeleteFloor(ctx context.Context, id string) (bool, error) {
	return r.floors.Delete(ctx, id)
}

// --- Sale Methods ---

func (r *Repository) ListSales(ctx context.Context) ([]models.SaleRecord, error) {
	return r.sales.List(ctx)
}

func (r *Repository) GetSale(ctx context.Context, id string) (*models.SaleRecord, error) {
	return r.sales.Get(ctx, id)
}

func (r *Repository) AddSale(ctx context.Context, sale models.SaleRecord) error {
	return r.sales.Add(ctx, sale)
}

func (r *Repository) UpdateSale(ctx context.Context, sale models.SaleRecord) (bool, error) {
	return r.sales.Update(ctx, sale)
}

// --- Complaint Methods ---

func (r *Repository) ListComplaints(ctx context.Context) ([]models.ComplaintRecord, error) {
	return r.complaints.List(ctx)
}

func (r *Repository) GetComplaint(ctx context.Context, id string) (*models.ComplaintRecord, error) {
	return r.complaints.Get(ctx, id)
}

func (r *Repository) AddComplaint(ctx context.Context, complaint models.ComplaintRecord) error {
	return r.complaints.Add(ctx, complaint)
}

func (r *Repository) UpdateComplaint(ctx context.Context, complaint models.ComplaintRecord) (bool, error) {
	return r.complaints.Update(ctx, complaint)
}

// ReplaceComplaints writes the whole complaint list in one store write
func (r *Repository) ReplaceComplaints(ctx context.Context, complaints []models.ComplaintRecord) error {
	return r.complaints.ReplaceAll(ctx, complaints)
}

// --- Feedback Methods ---

func (r *Repository) ListFeedbacks(ctx context.Context) ([]models.FeedbackRecord, error) {
	return r.feedbacks.List(ctx)
}

func (r *Repository) AddFeedback(ctx context.Context, feedback models.FeedbackRecord) error {
	return r.feedbacks.Add(ctx, feedback)
}

// --- Settings Methods ---

// GetSettings returns the first settings record
func (r *Repository) GetSettings(ctx context.Context) (models.Settings, error) {
	items, err := r.settings.List(ctx)
	if err != nil {
		return models.Settings{}, err
	}
	if len(items) == 0 {
		return models.Settings{}, nil
	}
	return items[0], nil
}

// SaveSettings replaces the settings array with a single record
func (r *Repository) SaveSettings(ctx context.Context, settings models.Settings) error {
	return r.settings.ReplaceAll(ctx, []models.Settings{settings})
}

// --- Raw Methods ---

// ExportCollection returns the stored document for a key, seeded as on read
func (r *Repository) ExportCollection(ctx context.Context, key string) (json.RawMessage, error) {
	switch key {
	case KeyPromoters:
		return r.promoters.Raw(ctx)
	case KeyFloors:
		return r.floors.Raw(ctx)
	case KeySales:
		return r.sales.Raw(ctx)
	case KeyComplaints:
		return r.complaints.Raw(ctx)
	case KeyFeedbacks:
		return r.feedbacks.Raw(ctx)
	case KeySettings:
		return r.settings.Raw(ctx)
	}
	return nil, fmt.Errorf("unknown collection %q", key)
}

// ImportCollection overwrites the document for a key verbatim
func (r *Repository) ImportCollection(ctx context.Context, key string, payload json.RawMessage) error {
	switch key {
	case KeyPromoters:
		return r.promoters.WriteRaw(ctx, payload)
	case KeyFloors:
		return r.floors.WriteRaw(ctx, payload)
	case KeySales:
		return r.sales.WriteRaw(ctx, payload)
	case KeyComplaints:
		return r.complaints.WriteRaw(ctx, payload)
	case KeyFeedbacks:
		return r.feedbacks.WriteRaw(ctx, payload)
	case KeySettings:
		return r.settings.WriteRaw(ctx, payload)
	}
	return fmt.Errorf("unknown collection %q", key)
}
