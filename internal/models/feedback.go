package models

// FeedbackRecord is a customer rating collected by a promoter. It is never modified.
type FeedbackRecord struct {
	ID           string       `json:"id"`
	PromoterID   string       `json:"promoterId"`
	PromoterName string       `json:"promoterName"`
	Customer     CustomerData `json:"customer"`
	Rating       int          `json:"rating"`
	Comment      string       `json:"comment"`
	Timestamp    int64        `json:"timestamp"`
}

// GetID returns the feedback id
func (f FeedbackRecord) GetID() string {
	return f.ID
}
