package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"promoter-service/internal/models"
)

func createTestComplaint(id, status string) *models.ComplaintRecord {
	return &models.ComplaintRecord{
		ID:             id,
		Timestamp:      time.Now().UnixMilli(),
		CustomerName:   "Sam",
		CustomerMobile: "0770000000",
		Description:    "Ride was closed",
		Priority:       models.PriorityHigh,
		Status:         status,
		SubmittedBy:    models.SubmittedByCustomerService,
	}
}

// ===========================================
// Submission
// ===========================================

func TestSubmitComplaint_DefaultsToOpenMedium(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewComplaintService(mockRepo, nil)
	ctx := context.Background()

	mockRepo.On("AddComplaint", ctx, mock.AnythingOfType("models.ComplaintRecord")).Return(nil)

	complaint, err := service.SubmitComplaint(ctx, SubmitComplaintInput{
		CustomerName:   "Sam",
		CustomerMobile: "0770000000",
		Description:    "Lost ticket",
		AttachmentURL:  "data:image/png;base64,AAAA",
	})

	require.NoError(t, err)
	assert.Equal(t, models.ComplaintStatusOpen, complaint.Status)
	assert.Equal(t, models.PriorityMedium, complaint.Priority)
	assert.Equal(t, models.SubmittedByCustomerService, complaint.SubmittedBy)
	assert.Equal(t, "data:image/png;base64,AAAA", complaint.AttachmentURL)
	mockRepo.AssertExpectations(t)
}

func TestSubmitComplaint_InvalidPriority(t *testing.T) {
	service := NewComplaintService(new(MockRepository), nil)

	_, err := service.SubmitComplaint(context.Background(), SubmitComplaintInput{
		CustomerName:   "Sam",
		CustomerMobile: "0770000000",
		Description:    "Lost ticket",
		Priority:       "Urgent",
	})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestSubmitInternalComplaint(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewComplaintService(mockRepo, nil)
	ctx := context.Background()

	mockRepo.On("AddComplaint", ctx, mock.AnythingOfType("models.ComplaintRecord")).Return(nil)

	complaint, err := service.SubmitInternalComplaint(ctx, InternalComplaintInput{
		Description: "Scanner at gate 2 is broken",
		Priority:    models.PriorityHigh,
	})

	require.NoError(t, err)
	assert.Equal(t, "Internal / Team Lead", complaint.CustomerName)
	assert.Equal(t, "N/A", complaint.CustomerMobile)
	assert.Equal(t, models.SubmittedByTeamLead, complaint.SubmittedBy)
}

// ===========================================
// Resolution
// ===========================================

func TestResolveComplaint_RequiresNotes(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewComplaintService(mockRepo, nil)

	_, err := service.ResolveComplaint(context.Background(), "c1", ResolveComplaintInput{Notes: "   "})

	assert.ErrorIs(t, err, ErrResolutionNotesRequired)
	mockRepo.AssertNotCalled(t, "UpdateComplaint", mock.Anything, mock.Anything)
}

func TestResolveComplaint_StampsResolvedAt(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewComplaintService(mockRepo, nil)
	ctx := context.Background()
	fixed := time.Date(2024, 6, 1, 15, 30, 0, 0, time.UTC)
	service.now = func() time.Time { return fixed }

	mockRepo.On("GetComplaint", ctx, "c1").Return(createTestComplaint("c1", models.ComplaintStatusOpen), nil)
	mockRepo.On("UpdateComplaint", ctx, mock.MatchedBy(func(c models.ComplaintRecord) bool {
		return c.Status == models.ComplaintStatusResolved && c.ResolutionNotes == "Refunded"
	})).Return(true, nil)

	complaint, err := service.ResolveComplaint(ctx, "c1", ResolveComplaintInput{Notes: " Refunded "})

	require.NoError(t, err)
	require.NotNil(t, complaint.ResolvedAt)
	assert.Equal(t, fixed.UnixMilli(), *complaint.ResolvedAt)
	mockRepo.AssertExpectations(t)
}

func TestResolveComplaint_FromInProgress(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewComplaintService(mockRepo, nil)
	ctx := context.Background()

	mockRepo.On("GetComplaint", ctx, "c1").Return(createTestComplaint("c1", models.ComplaintStatusInProgress), nil)
	mockRepo.On("UpdateComplaint", ctx, mock.Anything).Return(true, nil)

	complaint, err := service.ResolveComplaint(ctx, "c1", ResolveComplaintInput{Notes: "done"})

	require.NoError(t, err)
	assert.Equal(t, models.ComplaintStatusResolved, complaint.Status)
}

func TestResolveComplaint_AlreadyResolved(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewComplaintService(mockRepo, nil)
	ctx := context.Background()

	mockRepo.On("GetComplaint", ctx, "c1").Return(createTestComplaint("c1", models.ComplaintStatusResolved), nil)

	_, err := service.ResolveComplaint(ctx, "c1", ResolveComplaintInput{Notes: "again"})

	assert.ErrorIs(t, err, ErrComplaintAlreadyResolved)
}

func TestResolveComplaint_UnknownIDIsNoOp(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewComplaintService(mockRepo, nil)
	ctx := context.Background()

	mockRepo.On("GetComplaint", ctx, "missing").Return(nil, nil)

	complaint, err := service.ResolveComplaint(ctx, "missing", ResolveComplaintInput{Notes: "x"})

	assert.NoError(t, err)
	assert.Nil(t, complaint)
}

// ===========================================
// Archival
// ===========================================

func TestArchiveComplaint_RequiresResolved(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewComplaintService(mockRepo, nil)
	ctx := context.Background()

	mockRepo.On("GetComplaint", ctx, "c1").Return(createTestComplaint("c1", models.ComplaintStatusOpen), nil)

	_, err := service.ArchiveComplaint(ctx, "c1")

	assert.ErrorIs(t, err, ErrComplaintNotResolved)
	mockRepo.AssertNotCalled(t, "UpdateComplaint", mock.Anything, mock.Anything)
}

func TestComplaintWorkflow_ResolveThenArchive(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepository()
	service := NewComplaintService(repo, nil)

	complaint, err := service.SubmitComplaint(ctx, SubmitComplaintInput{
		CustomerName:   "Sam",
		CustomerMobile: "0770000000",
		Description:    `He said "hi"`,
		Priority:       models.PriorityLow,
	})
	require.NoError(t, err)

	_, err = service.ResolveComplaint(ctx, complaint.ID, ResolveComplaintInput{})
	assert.ErrorIs(t, err, ErrResolutionNotesRequired)

	stored, _ := repo.GetComplaint(ctx, complaint.ID)
	assert.Equal(t, models.ComplaintStatusOpen, stored.Status)

	_, err = service.ResolveComplaint(ctx, complaint.ID, ResolveComplaintInput{Notes: "Apologised"})
	require.NoError(t, err)

	archived, err := service.ArchiveComplaint(ctx, complaint.ID)
	require.NoError(t, err)
	assert.True(t, archived.IsArchived)
	assert.Equal(t, models.ComplaintStatusResolved, archived.Status)

	active, err := service.ListActiveComplaints(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)

	all, err := service.ListComplaints(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestArchiveResolved_ArchivesOnlyResolved(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepository()
	service := NewComplaintService(repo, nil)

	var ids []string
	for i := 0; i < 3; i++ {
		c, err := service.SubmitInternalComplaint(ctx, InternalComplaintInput{Description: "issue"})
		require.NoError(t, err)
		ids = append(ids, c.ID)
	}
	_, err := service.ResolveComplaint(ctx, ids[0], ResolveComplaintInput{Notes: "fixed"})
	require.NoError(t, err)
	_, err = service.ResolveComplaint(ctx, ids[2], ResolveComplaintInput{Notes: "fixed"})
	require.NoError(t, err)

	count, err := service.ArchiveResolved(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	active, err := service.ListActiveComplaints(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, ids[1], active[0].ID)

	again, err := service.ArchiveResolved(ctx)
	require.NoError(t, err)
	assert.Zero(t, again)
}
