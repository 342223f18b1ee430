package market

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gkrishna247/lendit-p2p-market/internal/marketerrors"
	"github.com/gkrishna247/lendit-p2p-market/internal/models"
	"github.com/gkrishna247/lendit-p2p-market/internal/repository"
	"github.com/gkrishna247/lendit-p2p-market/utils"
)

const (
	maxTitleLength = 200
	maxDailyPrice  = models.Money(99999999)
)

// MarketService defines the business logic for listing items and managing bookings
type MarketService struct {
	repo repository.MarketDB
	now  func() time.Time
}

// Option configures a MarketService
type Option func(*MarketService)

// WithClock overrides the time source; "today" for booking validation is its UTC calendar day
func WithClock(now func() time.Time) Option {
	return func(s *MarketService) {
		s.now = now
	}
}

// NewMarketService creates a new MarketService instance
func NewMarketService(repo repository.MarketDB, opts ...Option) *MarketService {
	s := &MarketService{
		repo: repo,
		now:  func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MarketService) today() models.Date {
	return models.DateOf(s.now().UTC())
}

// NewItemInput is the owner-supplied part of a listing
type NewItemInput struct {
	Title       string
	Description string
	Category    models.Category
	DailyPrice  models.Money
}

// ItemDetail is an item with whether the viewer may request a booking
type ItemDetail struct {
	Item    models.Item
	CanBook bool
}

// Dashboard summarizes an owner's listings and the bookings received on them
type Dashboard struct {
	Items            []models.Item
	ReceivedBookings []models.Booking
}

// ListAvailableItems returns items open for booking, newest first.
// An empty category returns every category.
func (s *MarketService) ListAvailableItems(ctx context.Context, category string) ([]models.Item, error) {
	filter := repository.ItemFilter{Status: models.ItemAvailable}
	if category != "" {
		c := models.Category(strings.ToLower(category))
		if !c.Valid() {
			return nil, fmt.Errorf("service: %w - %q", marketerrors.ErrInvalidCategory, category)
		}
		filter.Category = c
	}

	items, err := s.repo.ListItems(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list available items: %w", err)
	}
	return items, nil
}

// GetItemDetail returns an item; CanBook is set for a signed-in viewer who does not own it
func (s *MarketService) GetItemDetail(ctx context.Context, viewer *models.Actor, itemID string) (ItemDetail, error) {
	if itemID == "" {
		return ItemDetail{}, fmt.Errorf("service: %w - empty item ID", marketerrors.ErrItemNotFound)
	}

	item, err := s.repo.GetItem(ctx, itemID)
	if err != nil {
		return ItemDetail{}, fmt.Errorf("service: failed to get item %s: %w", itemID, err)
	}

	canBook := viewer != nil && viewer.UserID != "" && viewer.UserID != item.OwnerID
	return ItemDetail{Item: item, CanBook: canBook}, nil
}

// CreateItem validates and lists a new available item owned by actor
func (s *MarketService) CreateItem(ctx context.Context, actor models.Actor, input NewItemInput) (models.Item, error) {
	if actor.UserID == "" {
		return models.Item{}, fmt.Errorf("service: %w - missing actor", marketerrors.ErrUnauthenticated)
	}
	if err := validateItem(&input); err != nil {
		return models.Item{}, err
	}

	now := s.now()
	item := models.Item{
		ItemID:      utils.GenerateID(),
		OwnerID:     actor.UserID,
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		DailyPrice:  input.DailyPrice,
		Status:      models.ItemAvailable,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.CreateItem(ctx, item); err != nil {
		return models.Item{}, fmt.Errorf("service: failed to create item for user %s: %w", actor.UserID, err)
	}
	return item, nil
}

// validateItem trims text fields and applies the listing rules
func validateItem(input *NewItemInput) error {
	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)

	if input.Title == "" {
		return fmt.Errorf("service: %w - title is required", marketerrors.ErrInvalidItem)
	}
	if utf8.RuneCountInString(input.Title) > maxTitleLength {
		return fmt.Errorf("service: %w - title longer than %d characters", marketerrors.ErrInvalidItem, maxTitleLength)
	}
	if input.Description == "" {
		return fmt.Errorf("service: %w - description is required", marketerrors.ErrInvalidItem)
	}

	if input.Category == "" {
		input.Category = models.CategoryOther
	}
	if !input.Category.Valid() {
		return fmt.Errorf("service: %w - %q", marketerrors.ErrInvalidCategory, input.Category)
	}

	if input.DailyPrice <= 0 {
		return fmt.Errorf("service: %w - must be positive", marketerrors.ErrInvalidPrice)
	}
	if input.DailyPrice > maxDailyPrice {
		return fmt.Errorf("service: %w - at most %s", marketerrors.ErrInvalidPrice, maxDailyPrice)
	}
	return nil
}

// DeleteItem removes an item owned by actor together with its bookings
func (s *MarketService) DeleteItem(ctx context.Context, actor models.Actor, itemID string) error {
	item, err := s.repo.GetItem(ctx, itemID)
	if err != nil {
		return fmt.Errorf("service: failed to get item %s: %w", itemID, err)
	}
	if actor.UserID == "" || actor.UserID != item.OwnerID {
		return fmt.Errorf("service: %w - user %s does not own item %s", marketerrors.ErrNotItemOwner, actor.UserID, itemID)
	}

	if err := s.repo.DeleteItem(ctx, itemID); err != nil {
		return fmt.Errorf("service: failed to delete item %s: %w", itemID, err)
	}
	return nil
}

// MyBookings returns the bookings actor has requested, newest first
func (s *MarketService) MyBookings(ctx context.Context, actor models.Actor) ([]models.Booking, error) {
	if actor.UserID == "" {
		return nil, fmt.Errorf("service: %w - missing actor", marketerrors.ErrUnauthenticated)
	}

	bookings, err := s.repo.ListBookings(ctx, repository.BookingFilter{RenterID: actor.UserID})
	if err != nil {
		return nil, fmt.Errorf("service: failed to list bookings for user %s: %w", actor.UserID, err)
	}
	return bookings, nil
}

// Dashboard returns actor's items and the bookings received on them, newest first
func (s *MarketService) Dashboard(ctx context.Context, actor models.Actor) (Dashboard, error) {
	if actor.UserID == "" {
		return Dashboard{}, fmt.Errorf("service: %w - missing actor", marketerrors.ErrUnauthenticated)
	}

	items, err := s.repo.ListItems(ctx, repository.ItemFilter{OwnerID: actor.UserID})
	if err != nil {
		return Dashboard{}, fmt.Errorf("service: failed to list items for user %s: %w", actor.UserID, err)
	}
	received, err := s.repo.ListBookings(ctx, repository.BookingFilter{ItemOwnerID: actor.UserID})
	if err != nil {
		return Dashboard{}, fmt.Errorf("service: failed to list received bookings for user %s: %w", actor.UserID, err)
	}

	return Dashboard{Items: items, ReceivedBookings: received}, nil
}
