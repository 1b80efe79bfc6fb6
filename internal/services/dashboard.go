package services

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"promoter-service/internal/models"
	"promoter-service/internal/repository"
)

// Snapshot is one full read of every collection
type Snapshot struct {
	Promoters  []models.Promoter
	Floors     []models.Floor
	Sales      []models.SaleRecord
	Complaints []models.ComplaintRecord
	Feedbacks  []models.FeedbackRecord
	TakenAt    time.Time
}

// LoadSnapshot reads all collections. The reads are not isolated from
// concurrent writes.
func LoadSnapshot(ctx context.Context, repo repository.RepositoryInterface) (*Snapshot, error) {
	promoters, err := repo.ListPromoters(ctx)
	if err != nil {
		return nil, err
	}
	floors, err := repo.ListFloors(ctx)
	if err != nil {
		return nil, err
	}
	sales, err := repo.ListSales(ctx)
	if err != nil {
		return nil, err
	}
	complaints, err := repo.ListComplaints(ctx)
	if err != nil {
		return nil, err
	}
	feedbacks, err := repo.ListFeedbacks(ctx)
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		Promoters:  promoters,
		Floors:     floors,
		Sales:      sales,
		Complaints: complaints,
		Feedbacks:  feedbacks,
		TakenAt:    time.Now(),
	}, nil
}

// DashboardSummary is the lead's dashboard state
type DashboardSummary struct {
	KPIs             []models.KPIStats        `json:"kpis"`
	Promoters        []models.PromoterProfile `json:"promoters"`
	Floors           []models.Floor           `json:"floors"`
	ActiveComplaints []models.ComplaintRecord `json:"activeComplaints"`
	PendingSales     int                      `json:"pendingSales"`
	VerifiedSales    int                      `json:"verifiedSales"`
	RejectedSales    int                      `json:"rejectedSales"`
	OpenComplaints   int                      `json:"openComplaints"`
	ResolvedToday    int                      `json:"resolvedToday"`
	HighPriority     int                      `json:"highPriority"`
	FeedbackCount    int                      `json:"feedbackCount"`
	AverageRating    decimal.Decimal          `json:"averageRating"`
	RefreshedAt      int64                    `json:"refreshedAt"`
}

// BuildDashboard derives the dashboard from a snapshot. "Today" is the
// snapshot's calendar day in loc.
func BuildDashboard(snapshot *Snapshot, loc *time.Location) *DashboardSummary {
	if loc == nil {
		loc = time.Local
	}
	summary := &DashboardSummary{
		KPIs:             AggregateKPIs(snapshot.Promoters, snapshot.Sales),
		Promoters:        make([]models.PromoterProfile, 0, len(snapshot.Promoters)),
		Floors:           snapshot.Floors,
		ActiveComplaints: ActiveComplaints(snapshot.Complaints),
		FeedbackCount:    len(snapshot.Feedbacks),
		AverageRating:    decimal.Zero,
		RefreshedAt:      snapshot.TakenAt.UnixMilli(),
	}
	if summary.Floors == nil {
		summary.Floors = []models.Floor{}
	}
	for _, p := range snapshot.Promoters {
		summary.Promoters = append(summary.Promoters, p.Profile())
	}

	for _, sale := range snapshot.Sales {
		switch sale.Status {
		case models.SaleStatusPending:
			summary.PendingSales++
		case models.SaleStatusVerified:
			summary.VerifiedSales++
		case models.SaleStatusRejected:
			summary.RejectedSales++
		}
	}

	y, m, d := snapshot.TakenAt.In(loc).Date()
	for _, c := range summary.ActiveComplaints {
		switch c.Status {
		case models.ComplaintStatusOpen:
			summary.OpenComplaints++
		case models.ComplaintStatusResolved:
			at := c.Timestamp
			if c.ResolvedAt != nil {
				at = *c.ResolvedAt
			}
			cy, cm, cd := time.UnixMilli(at).In(loc).Date()
			if cy == y && cm == m && cd == d {
				summary.ResolvedToday++
			}
		}
		if c.Priority == models.PriorityHigh {
			summary.HighPriority++
		}
	}

	if len(snapshot.Feedbacks) > 0 {
		var total int64
		for _, f := range snapshot.Feedbacks {
			total += int64(f.Rating)
		}
		summary.AverageRating = decimal.NewFromInt(total).
			Div(decimal.NewFromInt(int64(len(snapshot.Feedbacks)))).
			Round(2)
	}
	return summary
}

// DashboardView holds the latest dashboard. Apply replaces it wholesale.
type DashboardView struct {
	mu      sync.RWMutex
	loc     *time.Location
	current *DashboardSummary
}

// NewDashboardView creates an empty DashboardView
func NewDashboardView(loc *time.Location) *DashboardView {
	return &DashboardView{loc: loc}
}

// Apply rebuilds the dashboard from the snapshot
func (v *DashboardView) Apply(snapshot *Snapshot) {
	summary := BuildDashboard(snapshot, v.loc)

	v.mu.Lock()
	v.current = summary
	v.mu.Unlock()
}

// Current returns the latest dashboard, false before the first Apply
func (v *DashboardView) Current() (*DashboardSummary, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.current, v.current != nil
}
