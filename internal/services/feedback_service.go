package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"promoter-service/internal/events"
	"promoter-service/internal/models"
	"promoter-service/internal/repository"
)

// FeedbackService records customer ratings collected by promoters
type FeedbackService struct {
	repo      repository.RepositoryInterface
	publisher *events.Publisher
	now       func() time.Time
}

// NewFeedbackService creates a new FeedbackService
func NewFeedbackService(repo repository.RepositoryInterface, publisher *events.Publisher) *FeedbackService {
	return &FeedbackService{
		repo:      repo,
		publisher: publisher,
		now:       time.Now,
	}
}

// SubmitFeedbackInput represents a promoter's feedback entry
type SubmitFeedbackInput struct {
	Customer CustomerInput `json:"customer"`
	Rating   int           `json:"rating" binding:"required,min=1,max=5"`
	Comment  string        `json:"comment"`
}

// SubmitFeedback stores a new feedback record for the promoter
func (s *FeedbackService) SubmitFeedback(ctx context.Context, promoterID string, input SubmitFeedbackInput) (*models.FeedbackRecord, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	customer := input.Customer.toModel()
	if customer.Name == "" || customer.Mobile == "" {
		return nil, fmt.Errorf("%w: customer name and mobile are required", ErrValidation)
	}

	promoter, err := s.repo.GetPromoter(ctx, promoterID)
	if err != nil {
		return nil, err
	}
	if promoter == nil {
		return nil, ErrPromoterNotFound
	}

	feedback := models.FeedbackRecord{
		ID:           newID(),
		PromoterID:   promoter.ID,
		PromoterName: promoter.Name,
		Customer:     customer,
		Rating:       input.Rating,
		Comment:      input.Comment,
		Timestamp:    nowMillis(s.now),
	}
	if err := s.repo.AddFeedback(ctx, feedback); err != nil {
		return nil, err
	}

	s.publisher.PublishFeedbackSubmitted(ctx, &feedback)
	return &feedback, nil
}

// ListFeedbacks returns every feedback record in insertion order
func (s *FeedbackService) ListFeedbacks(ctx context.Context) ([]models.FeedbackRecord, error) {
	return s.repo.ListFeedbacks(ctx)
}

// ListPromoterFeedbacks returns one promoter's feedback, newest first
func (s *FeedbackService) ListPromoterFeedbacks(ctx context.Context, promoterID string) ([]models.FeedbackRecord, error) {
	all, err := s.repo.ListFeedbacks(ctx)
	if err != nil {
		return nil, err
	}
	mine := make([]models.FeedbackRecord, 0)
	for _, f := range all {
		if f.PromoterID == promoterID {
			mine = append(mine, f)
		}
	}
	sort.SliceStable(mine, func(i, j int) bool {
		return mine[i].Timestamp > mine[j].Timestamp
	})
	return mine, nil
}
