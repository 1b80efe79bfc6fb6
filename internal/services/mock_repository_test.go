package services

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"

	"promoter-service/internal/models"
	"promoter-service/internal/repository"
)

// MockRepository is a mock implementation of RepositoryInterface
type MockRepository struct {
	mock.Mock
}

// Ensure MockRepository implements the interface
var _ repository.RepositoryInterface = (*MockRepository)(nil)

func (m *MockRepository) ListPromoters(ctx context.Context) ([]models.Promoter, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Promoter), args.Error(1)
}

func (m *MockRepository) GetPromoter(ctx context.Context, id string) (*models.Promoter, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Promoter), args.Error(1)
}

func (m *MockRepository) AddPromoter(ctx context.Context, promoter models.Promoter) error {
	args := m.Called(ctx, promoter)
	return args.Error(0)
}

func (m *MockRepository) UpdatePromoter(ctx context.Context, promoter models.Promoter) (bool, error) {
	args := m.Called(ctx, promoter)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) DeletePromoter(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) ListFloors(ctx context.Context) ([]models.Floor, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Floor), args.Error(1)
}

func (m *MockRepository) AddFloor(ctx context.Context, floor models.Floor) error {
	args := m.Called(ctx, floor)
	return args.Error(0)
}

func (m *MockRepository) DeleteFloor(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) ListSales(ctx context.Context) ([]models.SaleRecord, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.SaleRecord), args.Error(1)
}

func (m *MockRepository) GetSale(ctx context.Context, id string) (*models.SaleRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SaleRecord), args.Error(1)
}

func (m *MockRepository) AddSale(ctx context.Context, sale models.SaleRecord) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

func (m *MockRepository) UpdateSale(ctx context.Context, sale models.SaleRecord) (bool, error) {
	args := m.Called(ctx, sale)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) ListComplaints(ctx context.Context) ([]models.ComplaintRecord, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.ComplaintRecord), args.Error(1)
}

func (m *MockRepository) GetComplaint(ctx context.Context, id string) (*models.ComplaintRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ComplaintRecord), args.Error(1)
}

func (m *MockRepository) AddComplaint(ctx context.Context, complaint models.ComplaintRecord) error {
	args := m.Called(ctx, complaint)
	return args.Error(0)
}

func (m *MockRepository) UpdateComplaint(ctx context.Context, complaint models.ComplaintRecord) (bool, error) {
	args := m.Called(ctx, complaint)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) ReplaceComplaints(ctx context.Context, complaints []models.ComplaintRecord) error {
	args := m.Called(ctx, complaints)
	return args.Error(0)
}

func (m *MockRepository) ListFeedbacks(ctx context.Context) ([]models.FeedbackRecord, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.FeedbackRecord), args.Error(1)
}

func (m *MockRepository) AddFeedback(ctx context.Context, feedback models.FeedbackRecord) error {
	args := m.Called(ctx, feedback)
	return args.Error(0)
}

func (m *MockRepository) GetSettings(ctx context.Context) (models.Settings, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.Settings), args.Error(1)
}

func (m *MockRepository) SaveSettings(ctx context.Context, settings models.Settings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

func (m *MockRepository) ExportCollection(ctx context.Context, key string) (json.RawMessage, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

func (m *MockRepository) ImportCollection(ctx context.Context, key string, payload json.RawMessage) error {
	args := m.Called(ctx, key, payload)
	return args.Error(0)
}

// newMemoryRepository returns a repository over a fresh in-memory store
func newMemoryRepository() *repository.Repository {
	return repository.NewRepository(repository.NewMemoryStore(0))
}
