package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"promoter-service/internal/models"
	"promoter-service/internal/repository"
)

var (
	ErrPromoterNotFound   = errors.New("promoter not found")
	ErrPasswordAlreadySet = errors.New("password has already been created")
	ErrPasswordNotSet     = errors.New("password has not been created yet")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrInvalidPassword    = errors.New("incorrect password")
	ErrInvalidAdminSecret = errors.New("incorrect admin password")
)

// PromoterService handles the promoter roster and promoter passwords
type PromoterService struct {
	repo        repository.RepositoryInterface
	adminSecret string
	bcryptCost  int
}

// NewPromoterService creates a new PromoterService. adminSecret authorizes password resets.
func NewPromoterService(repo repository.RepositoryInterface, adminSecret string) *PromoterService {
	return &PromoterService{
		repo:        repo,
		adminSecret: adminSecret,
		bcryptCost:  bcrypt.DefaultCost,
	}
}

// CreatePromoterInput represents input for adding a promoter
type CreatePromoterInput struct {
	Name           string   `json:"name" binding:"required"`
	AssignedFloors []string `json:"assignedFloors"`
}

// RenamePromoterInput represents input for renaming a promoter
type RenamePromoterInput struct {
	Name string `json:"name" binding:"required"`
}

// SetFloorsInput replaces a promoter's floor assignment
type SetFloorsInput struct {
	Floors []string `json:"floors"`
}

// ToggleFloorInput adds or removes one floor
type ToggleFloorInput struct {
	Floor string `json:"floor" binding:"required"`
}

// SetPasswordInput represents a promoter creating their password
type SetPasswordInput struct {
	Password        string `json:"password" binding:"required,min=4"`
	ConfirmPassword string `json:"confirmPassword" binding:"required,eqfield=Password"`
}

// LoginInput represents a promoter login attempt
type LoginInput struct {
	Password string `json:"password" binding:"required"`
}

// ResetPasswordInput carries the shared admin secret
type ResetPasswordInput struct {
	AdminPassword string `json:"adminPassword" binding:"required"`
}

// ListPromoters returns every promoter in roster order
func (s *PromoterService) ListPromoters(ctx context.Context) ([]models.Promoter, error) {
	return s.repo.ListPromoters(ctx)
}

// ListProfiles returns every promoter without password material
func (s *PromoterService) ListProfiles(ctx context.Context) ([]models.PromoterProfile, error) {
	promoters, err := s.repo.ListPromoters(ctx)
	if err != nil {
		return nil, err
	}
	profiles := make([]models.PromoterProfile, 0, len(promoters))
	for _, p := range promoters {
		profiles = append(profiles, p.Profile())
	}
	return profiles, nil
}

// GetPromoter returns a promoter or ErrPromoterNotFound
func (s *PromoterService) GetPromoter(ctx context.Context, id string) (*models.Promoter, error) {
	promoter, err := s.repo.GetPromoter(ctx, id)
	if err != nil {
		return nil, err
	}
	if promoter == nil {
		return nil, ErrPromoterNotFound
	}
	return promoter, nil
}

// CreatePromoter adds a promoter with no password
func (s *PromoterService) CreatePromoter(ctx context.Context, input CreatePromoterInput) (*models.Promoter, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}

	promoter := models.Promoter{
		ID:             newID(),
		Name:           name,
		AssignedFloors: uniqueFloors(input.AssignedFloors),
	}
	if err := s.repo.AddPromoter(ctx, promoter); err != nil {
		return nil, err
	}
	return &promoter, nil
}

// RenamePromoter changes a promoter's display name. Sales and feedback keep
// the name they were submitted under.
func (s *PromoterService) RenamePromoter(ctx context.Context, id string, input RenamePromoterInput) (*models.Promoter, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	return s.mutate(ctx, id, func(p *models.Promoter) error {
		p.Name = name
		return nil
	})
}

// SetFloors replaces the promoter's floor assignment
func (s *PromoterService) SetFloors(ctx context.Context, id string, input SetFloorsInput) (*models.Promoter, error) {
	return s.mutate(ctx, id, func(p *models.Promoter) error {
		p.AssignedFloors = uniqueFloors(input.Floors)
		return nil
	})
}

// ToggleFloor assigns the floor if absent and unassigns it if present
func (s *PromoterService) ToggleFloor(ctx context.Context, id string, input ToggleFloorInput) (*models.Promoter, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	return s.mutate(ctx, id, func(p *models.Promoter) error {
		if p.HasFloor(input.Floor) {
			kept := make([]string, 0, len(p.AssignedFloors))
			for _, f := range p.AssignedFloors {
				if f != input.Floor {
					kept = append(kept, f)
				}
			}
			p.AssignedFloors = kept
			return nil
		}
		p.AssignedFloors = append(p.AssignedFloors, input.Floor)
		return nil
	})
}

// DeletePromoter removes a promoter. Unknown ids are ignored.
func (s *PromoterService) DeletePromoter(ctx context.Context, id string) error {
	_, err := s.repo.DeletePromoter(ctx, id)
	return err
}

// SetPassword creates the promoter's password. It can only be set while unset.
func (s *PromoterService) SetPassword(ctx context.Context, id string, input SetPasswordInput) error {
	if input.Password != input.ConfirmPassword {
		return ErrPasswordMismatch
	}
	if err := validateInput(input); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	_, err = s.mutate(ctx, id, func(p *models.Promoter) error {
		if p.HasPassword() {
			return ErrPasswordAlreadySet
		}
		p.Password = string(hash)
		return nil
	})
	return err
}

// Login checks a promoter's password and returns the promoter
func (s *PromoterService) Login(ctx context.Context, id string, password string) (*models.Promoter, error) {
	promoter, err := s.GetPromoter(ctx, id)
	if err != nil {
		return nil, err
	}
	if !promoter.HasPassword() {
		return nil, ErrPasswordNotSet
	}
	if !checkPassword(promoter.Password, password) {
		return nil, ErrInvalidPassword
	}
	return promoter, nil
}

// ResetPassword clears the promoter's password so it can be created again
func (s *PromoterService) ResetPassword(ctx context.Context, id string, input ResetPasswordInput) error {
	if subtle.ConstantTimeCompare([]byte(input.AdminPassword), []byte(s.adminSecret)) != 1 {
		return ErrInvalidAdminSecret
	}
	_, err := s.mutate(ctx, id, func(p *models.Promoter) error {
		p.Password = ""
		return nil
	})
	return err
}

// mutate loads a promoter, applies fn and writes it back
func (s *PromoterService) mutate(ctx context.Context, id string, fn func(p *models.Promoter) error) (*models.Promoter, error) {
	promoter, err := s.GetPromoter(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(promoter); err != nil {
		return nil, err
	}
	updated, err := s.repo.UpdatePromoter(ctx, *promoter)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, ErrPromoterNotFound
	}
	return promoter, nil
}

// checkPassword compares against a bcrypt hash, or a plain value restored from an older backup
func checkPassword(stored, given string) bool {
	if isBcryptHash(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(given)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(given)) == 1
}

func isBcryptHash(s string) bool {
	return len(s) == 60 && (strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$"))
}

// uniqueFloors drops blanks and repeats while keeping order
func uniqueFloors(floors []string) []string {
	out := make([]string, 0, len(floors))
	seen := make(map[string]bool, len(floors))
	for _, f := range floors {
		f = strings.TrimSpace(f)
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}
