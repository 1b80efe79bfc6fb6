package events

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"promoter-service/internal/models"
)

// Event types
const (
	SaleSubmitted      = "sale.submitted"
	SaleVerified       = "sale.verified"
	SaleRejected       = "sale.rejected"
	ComplaintSubmitted = "complaint.submitted"
	ComplaintResolved  = "complaint.resolved"
	ComplaintArchived  = "complaint.archived"
	FeedbackSubmitted  = "feedback.submitted"
	DataRestored       = "data.restored"
)

// defaultHistoryLimit is how many events Recent keeps
const defaultHistoryLimit = 100

// Event is a workflow change recorded for the lead's activity feed
type Event struct {
	ID             string `json:"id"`
	EventType      string `json:"eventType"`
	RecordID       string `json:"recordId,omitempty"`
	Status         string `json:"status,omitempty"`
	PreviousStatus string `json:"previousStatus,omitempty"`
	Actor          string `json:"actor,omitempty"`
	Detail         string `json:"detail,omitempty"`
	OccurredAt     int64  `json:"occurredAt"`
}

// Publisher records workflow events in the service log and keeps the most
// recent ones in memory. A nil *Publisher drops events.
type Publisher struct {
	logger *logrus.Entry
	limit  int

	mu     sync.RWMutex
	recent []Event
}

// NewPublisher creates a new workflow events publisher
func NewPublisher(logger *logrus.Logger) *Publisher {
	if logger == nil {
		logger = logrus.New()
		logger.SetLevel(logrus.InfoLevel)
	}

	return &Publisher{
		logger: logger.WithField("component", "workflow-events"),
		limit:  defaultHistoryLimit,
	}
}

// PublishSaleSubmitted publishes a sale.submitted event
func (p *Publisher) PublishSaleSubmitted(ctx context.Context, sale *models.SaleRecord) {
	p.publish(ctx, Event{
		EventType: SaleSubmitted,
		RecordID:  sale.ID,
		Status:    sale.Status,
		Actor:     sale.PromoterName,
		Detail:    sale.UniqueCode,
	})
}

// PublishSaleDecided publishes sale.verified or sale.rejected
func (p *Publisher) PublishSaleDecided(ctx context.Context, sale *models.SaleRecord, previousStatus string) {
	eventType := SaleVerified
	if sale.Status == models.SaleStatusRejected {
		eventType = SaleRejected
	}
	p.publish(ctx, Event{
		EventType:      eventType,
		RecordID:       sale.ID,
		Status:         sale.Status,
		PreviousStatus: previousStatus,
		Detail:         sale.UniqueCode,
	})
}

// PublishComplaintSubmitted publishes a complaint.submitted event
func (p *Publisher) PublishComplaintSubmitted(ctx context.Context, complaint *models.ComplaintRecord) {
	p.publish(ctx, Event{
		EventType: ComplaintSubmitted,
		RecordID:  complaint.ID,
		Status:    complaint.Status,
		Actor:     complaint.SubmittedBy,
		Detail:    complaint.Priority,
	})
}

// PublishComplaintResolved publishes a complaint.resolved event
func (p *Publisher) PublishComplaintResolved(ctx context.Context, complaint *models.ComplaintRecord, previousStatus string) {
	p.publish(ctx, Event{
		EventType:      ComplaintResolved,
		RecordID:       complaint.ID,
		Status:         complaint.Status,
		PreviousStatus: previousStatus,
	})
}

// PublishComplaintArchived publishes a complaint.archived event
func (p *Publisher) PublishComplaintArchived(ctx context.Context, complaint *models.ComplaintRecord) {
	p.publish(ctx, Event{
		EventType: ComplaintArchived,
		RecordID:  complaint.ID,
		Status:    complaint.Status,
	})
}

// PublishFeedbackSubmitted publishes a feedback.submitted event
func (p *Publisher) PublishFeedbackSubmitted(ctx context.Context, feedback *models.FeedbackRecord) {
	p.publish(ctx, Event{
		EventType: FeedbackSubmitted,
		RecordID:  feedback.ID,
		Actor:     feedback.PromoterName,
	})
}

// PublishDataRestored publishes a data.restored event naming the overwritten collections
func (p *Publisher) PublishDataRestored(ctx context.Context, keys []string) {
	p.publish(ctx, Event{
		EventType: DataRestored,
		Detail:    strings.Join(keys, ","),
	})
}

// Recent returns the retained events, newest first
func (p *Publisher) Recent() []Event {
	if p == nil {
		return []Event{}
	}
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]Event, len(p.recent))
	for i, e := range p.recent {
		out[len(p.recent)-1-i] = e
	}
	return out
}

// publish stamps, logs and retains the event
func (p *Publisher) publish(ctx context.Context, event Event) {
	if p == nil {
		return
	}
	event.ID = uuid.New().String()
	event.OccurredAt = time.Now().UnixMilli()

	p.mu.Lock()
	p.recent = append(p.recent, event)
	if len(p.recent) > p.limit {
		p.recent = p.recent[len(p.recent)-p.limit:]
	}
	p.mu.Unlock()

	entry := p.logger.WithFields(logrus.Fields{
		"eventType": event.EventType,
		"recordID":  event.RecordID,
	})
	if event.Status != "" {
		entry = entry.WithField("status", event.Status)
	}
	if ctx.Err() != nil {
		entry = entry.WithField("requestCancelled", true)
	}
	entry.Info("Workflow event recorded")
}
