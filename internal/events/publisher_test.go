package events

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"promoter-service/internal/models"
)

func newTestPublisher() *Publisher {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewPublisher(logger)
}

func TestPublisher_RecentNewestFirst(t *testing.T) {
	p := newTestPublisher()
	ctx := context.Background()

	sale := &models.SaleRecord{ID: "s1", PromoterName: "Alice Johnson", Status: models.SaleStatusPending, UniqueCode: "AJ-4567"}
	p.PublishSaleSubmitted(ctx, sale)

	sale.Status = models.SaleStatusRejected
	p.PublishSaleDecided(ctx, sale, models.SaleStatusPending)

	recent := p.Recent()
	require.Len(t, recent, 2)
	assert.Equal(t, SaleRejected, recent[0].EventType)
	assert.Equal(t, models.SaleStatusPending, recent[0].PreviousStatus)
	assert.Equal(t, SaleSubmitted, recent[1].EventType)
	assert.Equal(t, "Alice Johnson", recent[1].Actor)
	assert.NotEmpty(t, recent[0].ID)
	assert.NotZero(t, recent[0].OccurredAt)
}

func TestPublisher_ComplaintEvents(t *testing.T) {
	p := newTestPublisher()
	ctx := context.Background()

	complaint := &models.ComplaintRecord{ID: "c1", Status: models.ComplaintStatusOpen, Priority: models.PriorityHigh, SubmittedBy: models.SubmittedByCustomerService}
	p.PublishComplaintSubmitted(ctx, complaint)
	complaint.Status = models.ComplaintStatusResolved
	p.PublishComplaintResolved(ctx, complaint, models.ComplaintStatusOpen)
	p.PublishComplaintArchived(ctx, complaint)

	recent := p.Recent()
	require.Len(t, recent, 3)
	assert.Equal(t, []string{ComplaintArchived, ComplaintResolved, ComplaintSubmitted},
		[]string{recent[0].EventType, recent[1].EventType, recent[2].EventType})
	assert.Equal(t, models.PriorityHigh, recent[2].Detail)
}

func TestPublisher_DataRestoredListsKeys(t *testing.T) {
	p := newTestPublisher()
	p.PublishDataRestored(context.Background(), []string{"pp_promoters", "pp_sales"})

	recent := p.Recent()
	require.Len(t, recent, 1)
	assert.Equal(t, "pp_promoters,pp_sales", recent[0].Detail)
}

func TestPublisher_KeepsOnlyLimit(t *testing.T) {
	p := newTestPublisher()
	ctx := context.Background()

	for i := 0; i < defaultHistoryLimit+5; i++ {
		p.PublishFeedbackSubmitted(ctx, &models.FeedbackRecord{ID: fmt.Sprintf("f%d", i)})
	}

	recent := p.Recent()
	require.Len(t, recent, defaultHistoryLimit)
	assert.Equal(t, fmt.Sprintf("f%d", defaultHistoryLimit+4), recent[0].RecordID)
	assert.Equal(t, "f5", recent[len(recent)-1].RecordID)
}

func TestPublisher_NilIsSafe(t *testing.T) {
	var p *Publisher
	p.PublishDataRestored(context.Background(), []string{"pp_sales"})
	assert.Empty(t, p.Recent())
}
