package services

import (
	"context"
	"fmt"
	"strings"

	"promoter-service/internal/models"
	"promoter-service/internal/repository"
)

// SettingsService reads and writes the single settings record
type SettingsService struct {
	repo repository.RepositoryInterface
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(repo repository.RepositoryInterface) *SettingsService {
	return &SettingsService{repo: repo}
}

// SaveLogoInput carries the logo as a URL or data URL
type SaveLogoInput struct {
	LogoURL string `json:"logoUrl" binding:"required"`
}

// GetLogo returns the logo URL, empty when none was saved
func (s *SettingsService) GetLogo(ctx context.Context) (string, error) {
	settings, err := s.repo.GetSettings(ctx)
	if err != nil {
		return "", err
	}
	return settings.LogoURL, nil
}

// SaveLogo replaces the settings record with the new logo
func (s *SettingsService) SaveLogo(ctx context.Context, input SaveLogoInput) error {
	url := strings.TrimSpace(input.LogoURL)
	if url == "" {
		return fmt.Errorf("%w: logoUrl is required", ErrValidation)
	}
	return s.repo.SaveSettings(ctx, models.Settings{LogoURL: url})
}
