package services

import (
	"context"
	"fmt"
	"strings"

	"promoter-service/internal/models"
	"promoter-service/internal/repository"
)

// FloorService manages sales floors. Floors are referenced by name and deleting
// one leaves promoter assignments and past sales untouched.
type FloorService struct {
	repo repository.RepositoryInterface
}

// NewFloorService creates a new FloorService
func NewFloorService(repo repository.RepositoryInterface) *FloorService {
	return &FloorService{repo: repo}
}

// CreateFloorInput represents input for adding a floor
type CreateFloorInput struct {
	Name string `json:"name" binding:"required"`
}

// ListFloors returns every floor
func (s *FloorService) ListFloors(ctx context.Context) ([]models.Floor, error) {
	return s.repo.ListFloors(ctx)
}

// CreateFloor adds a floor
func (s *FloorService) CreateFloor(ctx context.Context, input CreateFloorInput) (*models.Floor, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	floor := models.Floor{ID: newID(), Name: name}
	if err := s.repo.AddFloor(ctx, floor); err != nil {
		return nil, err
	}
	return &floor, nil
}

// DeleteFloor removes a floor. Unknown ids are ignored.
func (s *FloorService) DeleteFloor(ctx context.Context, id string) error {
	_, err := s.repo.DeleteFloor(ctx, id)
	return err
}
