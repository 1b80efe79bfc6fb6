package models

// ComplaintPriority constants
const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
)

// ComplaintStatus constants.
// In Progress is a valid stored value but nothing transitions into it.
const (
	ComplaintStatusOpen       = "Open"
	ComplaintStatusInProgress = "In Progress"
	ComplaintStatusResolved   = "Resolved"
)

// Complaint submitters
const (
	SubmittedByCustomerService = "Customer Service"
	SubmittedByTeamLead        = "Team Lead"
)

// ComplaintRecord is a customer or internal complaint
type ComplaintRecord struct {
	ID              string `json:"id"`
	Timestamp       int64  `json:"timestamp"`
	CustomerName    string `json:"customerName"`
	CustomerMobile  string `json:"customerMobile"`
	Description     string `json:"description"`
	Priority        string `json:"priority"`
	Status          string `json:"status"`
	SubmittedBy     string `json:"submittedBy"`
	ResolutionNotes string `json:"resolutionNotes,omitempty"`
	ResolvedAt      *int64 `json:"resolvedAt,omitempty"`
	AttachmentURL   string `json:"attachmentUrl,omitempty"`
	IsArchived      bool   `json:"isArchived,omitempty"`
}

// GetID returns the complaint id
func (c ComplaintRecord) GetID() string {
	return c.ID
}

// IsResolved returns true if the complaint has been resolved
func (c ComplaintRecord) IsResolved() bool {
	return c.Status == ComplaintStatusResolved
}

// IsActive reports whether the complaint shows on the active views
func (c ComplaintRecord) IsActive() bool {
	return !c.IsArchived
}
