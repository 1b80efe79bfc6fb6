package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"promoter-service/internal/events"
	"promoter-service/internal/models"
	"promoter-service/internal/repository"
)

var (
	ErrResolutionNotesRequired  = errors.New("resolution notes are required")
	ErrComplaintAlreadyResolved = errors.New("complaint has already been resolved")
	ErrComplaintNotResolved     = errors.New("only resolved complaints can be archived")
)

// Internal complaints raised by the lead use these placeholders
const (
	internalCustomerName   = "Internal / Team Lead"
	internalCustomerMobile = "N/A"
)

// ComplaintService handles complaint intake, resolution and archival
type ComplaintService struct {
	repo      repository.RepositoryInterface
	publisher *events.Publisher
	now       func() time.Time
}

// NewComplaintService creates a new ComplaintService
func NewComplaintService(repo repository.RepositoryInterface, publisher *events.Publisher) *ComplaintService {
	return &ComplaintService{
		repo:      repo,
		publisher: publisher,
		now:       time.Now,
	}
}

// SubmitComplaintInput represents a complaint logged by customer service
type SubmitComplaintInput struct {
	CustomerName   string `json:"customerName" binding:"required"`
	CustomerMobile string `json:"customerMobile" binding:"required"`
	Description    string `json:"description" binding:"required"`
	Priority       string `json:"priority" binding:"omitempty,oneof=Low Medium High"`
	AttachmentURL  string `json:"attachmentUrl"`
}

// InternalComplaintInput represents an issue raised by the team lead
type InternalComplaintInput struct {
	Description string `json:"description" binding:"required"`
	Priority    string `json:"priority" binding:"omitempty,oneof=Low Medium High"`
}

// ResolveComplaintInput carries the resolution notes
type ResolveComplaintInput struct {
	Notes string `json:"notes"`
}

// SubmitComplaint logs a customer complaint
func (s *ComplaintService) SubmitComplaint(ctx context.Context, input SubmitComplaintInput) (*models.ComplaintRecord, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, fmt.Errorf("%w: description is required", ErrValidation)
	}
	return s.add(ctx, models.ComplaintRecord{
		CustomerName:   strings.TrimSpace(input.CustomerName),
		CustomerMobile: strings.TrimSpace(input.CustomerMobile),
		Description:    input.Description,
		Priority:       input.Priority,
		SubmittedBy:    models.SubmittedByCustomerService,
		AttachmentURL:  input.AttachmentURL,
	})
}

// SubmitInternalComplaint logs an issue raised by the team lead
func (s *ComplaintService) SubmitInternalComplaint(ctx context.Context, input InternalComplaintInput) (*models.ComplaintRecord, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, fmt.Errorf("%w: description is required", ErrValidation)
	}
	return s.add(ctx, models.ComplaintRecord{
		CustomerName:   internalCustomerName,
		CustomerMobile: internalCustomerMobile,
		Description:    input.Description,
		Priority:       input.Priority,
		SubmittedBy:    models.SubmittedByTeamLead,
	})
}

func (s *ComplaintService) add(ctx context.Context, complaint models.ComplaintRecord) (*models.ComplaintRecord, error) {
	complaint.ID = newID()
	complaint.Timestamp = nowMillis(s.now)
	complaint.Status = models.ComplaintStatusOpen
	if complaint.Priority == "" {
		complaint.Priority = models.PriorityMedium
	}

	if err := s.repo.AddComplaint(ctx, complaint); err != nil {
		return nil, err
	}
	s.publisher.PublishComplaintSubmitted(ctx, &complaint)
	return &complaint, nil
}

// ListComplaints returns every complaint including archived ones
func (s *ComplaintService) ListComplaints(ctx context.Context) ([]models.ComplaintRecord, error) {
	return s.repo.ListComplaints(ctx)
}

// ListActiveComplaints returns complaints that are not archived
func (s *ComplaintService) ListActiveComplaints(ctx context.Context) ([]models.ComplaintRecord, error) {
	complaints, err := s.repo.ListComplaints(ctx)
	if err != nil {
		return nil, err
	}
	return ActiveComplaints(complaints), nil
}

// ResolveComplaint marks an open or in-progress complaint as resolved.
// An unknown id returns nil, nil and writes nothing.
func (s *ComplaintService) ResolveComplaint(ctx context.Context, id string, input ResolveComplaintInput) (*models.ComplaintRecord, error) {
	notes := strings.TrimSpace(input.Notes)
	if notes == "" {
		return nil, ErrResolutionNotesRequired
	}

	complaint, err := s.repo.GetComplaint(ctx, id)
	if err != nil {
		return nil, err
	}
	if complaint == nil {
		return nil, nil
	}
	if complaint.IsResolved() {
		return nil, ErrComplaintAlreadyResolved
	}

	previous := complaint.Status
	resolvedAt := nowMillis(s.now)
	complaint.Status = models.ComplaintStatusResolved
	complaint.ResolutionNotes = notes
	complaint.ResolvedAt = &resolvedAt

	updated, err := s.repo.UpdateComplaint(ctx, *complaint)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, nil
	}

	s.publisher.PublishComplaintResolved(ctx, complaint, previous)
	return complaint, nil
}

// ArchiveComplaint hides a resolved complaint from the active views.
// An unknown id returns nil, nil and writes nothing.
func (s *ComplaintService) ArchiveComplaint(ctx context.Context, id string) (*models.ComplaintRecord, error) {
	complaint, err := s.repo.GetComplaint(ctx, id)
	if err != nil {
		return nil, err
	}
	if complaint == nil {
		return nil, nil
	}
	if !complaint.IsResolved() {
		return nil, ErrComplaintNotResolved
	}
	if complaint.IsArchived {
		return complaint, nil
	}

	complaint.IsArchived = true
	updated, err := s.repo.UpdateComplaint(ctx, *complaint)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, nil
	}

	s.publisher.PublishComplaintArchived(ctx, complaint)
	return complaint, nil
}

// ArchiveResolved archives every resolved complaint that is still active in
// a single write and returns how many were archived.
func (s *ComplaintService) ArchiveResolved(ctx context.Context) (int, error) {
	complaints, err := s.repo.ListComplaints(ctx)
	if err != nil {
		return 0, err
	}

	var archived []int
	for i := range complaints {
		if complaints[i].IsResolved() && !complaints[i].IsArchived {
			complaints[i].IsArchived = true
			archived = append(archived, i)
		}
	}
	if len(archived) == 0 {
		return 0, nil
	}

	if err := s.repo.ReplaceComplaints(ctx, complaints); err != nil {
		return 0, err
	}
	for _, i := range archived {
		s.publisher.PublishComplaintArchived(ctx, &complaints[i])
	}
	return len(archived), nil
}

// ActiveComplaints filters out archived complaints
func ActiveComplaints(complaints []models.ComplaintRecord) []models.ComplaintRecord {
	active := make([]models.ComplaintRecord, 0, len(complaints))
	for _, c := range complaints {
		if c.IsActive() {
			active = append(active, c)
		}
	}
	return active
}
