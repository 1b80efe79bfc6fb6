package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode"

	"promoter-service/internal/events"
	"promoter-service/internal/models"
	"promoter-service/internal/repository"
)

var (
	ErrSaleAlreadyDecided    = errors.New("sale has already been verified or rejected")
	ErrInvalidSaleTransition = errors.New("sales can only be moved to Verified or Rejected")
	ErrNoTickets             = errors.New("at least one ticket is required")
)

// SalesService handles sale submission and the verification workflow
type SalesService struct {
	repo      repository.RepositoryInterface
	publisher *events.Publisher
	now       func() time.Time
}

// NewSalesService creates a new SalesService
func NewSalesService(repo repository.RepositoryInterface, publisher *events.Publisher) *SalesService {
	return &SalesService{
		repo:      repo,
		publisher: publisher,
		now:       time.Now,
	}
}

// CustomerInput is the customer captured by a promoter
type CustomerInput struct {
	Name     string `json:"name" binding:"required"`
	Mobile   string `json:"mobile" binding:"required"`
	Email    string `json:"email"`
	Location string `json:"location"`
	Age      int    `json:"age" binding:"gte=0,lte=150"`
}

func (c CustomerInput) toModel() models.CustomerData {
	return models.CustomerData{
		Name:     strings.TrimSpace(c.Name),
		Mobile:   strings.TrimSpace(c.Mobile),
		Email:    strings.TrimSpace(c.Email),
		Location: strings.TrimSpace(c.Location),
		Age:      c.Age,
	}
}

// SubmitSaleInput represents a promoter's sale entry
type SubmitSaleInput struct {
	Customer     CustomerInput             `json:"customer"`
	Items        map[models.TicketType]int `json:"items"`
	SaleLocation string                    `json:"saleLocation"`
}

// UpdateSaleStatusInput names the verifier's decision
type UpdateSaleStatusInput struct {
	Status string `json:"status" binding:"required"`
}

// BuildUniqueCode derives the short lookup code from a customer's name and mobile.
// Codes are not unique across customers.
func BuildUniqueCode(name, mobile string) string {
	var letters []rune
	for _, r := range name {
		if r < unicode.MaxASCII && unicode.IsLetter(r) {
			letters = append(letters, unicode.ToUpper(r))
			if len(letters) == 4 {
				break
			}
		}
	}

	var digits []rune
	for _, r := range mobile {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
		}
	}
	if len(digits) > 4 {
		digits = digits[len(digits)-4:]
	}
	mobilePart := string(digits)
	if mobilePart == "" {
		mobilePart = "0000"
	}

	return string(letters) + "-" + mobilePart
}

// SubmitSale records a pending sale for the promoter
func (s *SalesService) SubmitSale(ctx context.Context, promoterID string, input SubmitSaleInput) (*models.SaleRecord, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	customer := input.Customer.toModel()
	if customer.Name == "" || customer.Mobile == "" {
		return nil, fmt.Errorf("%w: customer name and mobile are required", ErrValidation)
	}
	items, err := normalizeItems(input.Items)
	if err != nil {
		return nil, err
	}

	promoter, err := s.repo.GetPromoter(ctx, promoterID)
	if err != nil {
		return nil, err
	}
	if promoter == nil {
		return nil, ErrPromoterNotFound
	}

	location := strings.TrimSpace(input.SaleLocation)
	if location == "" {
		location = models.DefaultSaleLocation
	}

	sale := models.SaleRecord{
		ID:           newID(),
		PromoterID:   promoter.ID,
		PromoterName: promoter.Name,
		UniqueCode:   BuildUniqueCode(customer.Name, customer.Mobile),
		Customer:     customer,
		Items:        items,
		TotalAmount:  0,
		Status:       models.SaleStatusPending,
		Timestamp:    nowMillis(s.now),
		SaleLocation: location,
	}
	if err := s.repo.AddSale(ctx, sale); err != nil {
		return nil, err
	}

	s.publisher.PublishSaleSubmitted(ctx, &sale)
	return &sale, nil
}

// ListSales returns sales in insertion order, optionally filtered by status
func (s *SalesService) ListSales(ctx context.Context, status string) ([]models.SaleRecord, error) {
	sales, err := s.repo.ListSales(ctx)
	if err != nil {
		return nil, err
	}
	if status == "" {
		return sales, nil
	}
	filtered := make([]models.SaleRecord, 0, len(sales))
	for _, sale := range sales {
		if sale.Status == status {
			filtered = append(filtered, sale)
		}
	}
	return filtered, nil
}

// ListPendingSales returns the verification queue, newest first
func (s *SalesService) ListPendingSales(ctx context.Context) ([]models.SaleRecord, error) {
	pending, err := s.ListSales(ctx, models.SaleStatusPending)
	if err != nil {
		return nil, err
	}
	sortSalesNewestFirst(pending)
	return pending, nil
}

// ListPromoterSales returns one promoter's sales, newest first
func (s *SalesService) ListPromoterSales(ctx context.Context, promoterID string) ([]models.SaleRecord, error) {
	sales, err := s.repo.ListSales(ctx)
	if err != nil {
		return nil, err
	}
	mine := make([]models.SaleRecord, 0)
	for _, sale := range sales {
		if sale.PromoterID == promoterID {
			mine = append(mine, sale)
		}
	}
	sortSalesNewestFirst(mine)
	return mine, nil
}

// FindPendingByCode returns the pending sales carrying the code. More than one
// can match since codes are not unique.
func (s *SalesService) FindPendingByCode(ctx context.Context, code string) ([]models.SaleRecord, error) {
	code = strings.TrimSpace(code)
	pending, err := s.ListPendingSales(ctx)
	if err != nil {
		return nil, err
	}
	matches := make([]models.SaleRecord, 0)
	if code == "" {
		return matches, nil
	}
	for _, sale := range pending {
		if strings.EqualFold(sale.UniqueCode, code) {
			matches = append(matches, sale)
		}
	}
	return matches, nil
}

// UpdateSaleStatus moves a pending sale to Verified or Rejected.
// An unknown id returns nil, nil and writes nothing.
func (s *SalesService) UpdateSaleStatus(ctx context.Context, id string, target string) (*models.SaleRecord, error) {
	if target != models.SaleStatusVerified && target != models.SaleStatusRejected {
		return nil, ErrInvalidSaleTransition
	}

	sale, err := s.repo.GetSale(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, nil
	}
	if sale.IsTerminal() {
		return nil, ErrSaleAlreadyDecided
	}

	previous := sale.Status
	sale.Status = target
	updated, err := s.repo.UpdateSale(ctx, *sale)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, nil
	}

	s.publisher.PublishSaleDecided(ctx, sale, previous)
	return sale, nil
}

// normalizeItems keeps positive quantities of known ticket types
func normalizeItems(items map[models.TicketType]int) (map[models.TicketType]int, error) {
	out := make(map[models.TicketType]int, len(items))
	for ticket, qty := range items {
		if !ticket.IsValid() {
			return nil, fmt.Errorf("%w: unknown ticket type %q", ErrValidation, ticket)
		}
		if qty < 0 {
			return nil, fmt.Errorf("%w: quantity for %s cannot be negative", ErrValidation, ticket)
		}
		if qty > 0 {
			out[ticket] = qty
		}
	}
	if len(out) == 0 {
		return nil, ErrNoTickets
	}
	return out, nil
}

func sortSalesNewestFirst(sales []models.SaleRecord) {
	sort.SliceStable(sales, func(i, j int) bool {
		return sales[i].Timestamp > sales[j].Timestamp
	})
}
