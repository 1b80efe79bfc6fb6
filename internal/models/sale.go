package models

// TicketType is the kind of ticket sold to a customer
type TicketType string

// Ticket types
const (
	TicketKiddo      TicketType = "Kiddo"
	TicketExtreme    TicketType = "Extreme"
	TicketIndividual TicketType = "Individual"
	TicketEntryOnly  TicketType = "Entry Only"
)

// TicketTypes lists every ticket type in report column order
var TicketTypes = []TicketType{TicketKiddo, TicketExtreme, TicketIndividual, TicketEntryOnly}

// IsValid reports whether the ticket type is known
func (t TicketType) IsValid() bool {
	switch t {
	case TicketKiddo, TicketExtreme, TicketIndividual, TicketEntryOnly:
		return true
	}
	return false
}

// SaleStatus constants
const (
	SaleStatusPending  = "Pending"
	SaleStatusVerified = "Verified"
	SaleStatusRejected = "Rejected"
)

// DefaultSaleLocation is used when a sale was entered without a floor
const DefaultSaleLocation = "General"

// CustomerData is the customer captured at sale or feedback time
type CustomerData struct {
	Name     string `json:"name"`
	Mobile   string `json:"mobile"`
	Email    string `json:"email"`
	Location string `json:"location"`
	Age      int    `json:"age"`
}

// HasEmail reports whether a usable email was captured.
// Anything longer than three characters counts.
func (c CustomerData) HasEmail() bool {
	return len([]rune(c.Email)) > 3
}

// SaleRecord is a promoter's ticket sale awaiting or past verification.
// PromoterName is a snapshot taken at submission and is not updated on rename.
type SaleRecord struct {
	ID           string             `json:"id"`
	PromoterID   string             `json:"promoterId"`
	PromoterName string             `json:"promoterName"`
	UniqueCode   string             `json:"uniqueCode,omitempty"`
	Customer     CustomerData       `json:"customer"`
	Items        map[TicketType]int `json:"items"`
	TotalAmount  float64            `json:"totalAmount"`
	Status       string             `json:"status"`
	Timestamp    int64              `json:"timestamp"`
	SaleLocation string             `json:"saleLocation,omitempty"`
}

// GetID returns the sale id
func (s SaleRecord) GetID() string {
	return s.ID
}

// Quantity returns the number of tickets of the given type
func (s SaleRecord) Quantity(t TicketType) int {
	return s.Items[t]
}

// Location returns the sale floor, falling back to the general location
func (s SaleRecord) Location() string {
	if s.SaleLocation == "" {
		return DefaultSaleLocation
	}
	return s.SaleLocation
}

// IsTerminal returns true if the sale has been verified or rejected
func (s SaleRecord) IsTerminal() bool {
	return s.Status == SaleStatusVerified || s.Status == SaleStatusRejected
}
