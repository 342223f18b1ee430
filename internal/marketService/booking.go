package market

import (
	"context"
	"fmt"

	"github.com/gkrishna247/lendit-p2p-market/internal/marketerrors"
	"github.com/gkrishna247/lendit-p2p-market/internal/models"
	"github.com/gkrishna247/lendit-p2p-market/utils"
)

// BookingInput is a renter's request for an item over [StartDate, EndDate)
type BookingInput struct {
	ItemID    string
	StartDate models.Date
	EndDate   models.Date
}

// Quote is the priced outcome of a valid booking request
type Quote struct {
	NumDays    int
	TotalPrice models.Money
}

// BookingConfirmation is a created booking with its day count
type BookingConfirmation struct {
	Booking models.Booking
	Item    models.Item
	NumDays int
}

// Resolution is the outcome of an owner's decision
type Resolution struct {
	Booking models.Booking
	Item    models.Item
}

// ValidateBookingRequest applies the booking rules in order and prices the request.
// It has no side effects.
func ValidateBookingRequest(item models.Item, renterID string, start, end, today models.Date) (Quote, error) {
	if renterID == item.OwnerID {
		return Quote{}, marketerrors.ErrSelfBooking
	}
	if item.Status != models.ItemAvailable {
		return Quote{}, marketerrors.ErrItemUnavailable
	}
	if !end.After(start) {
		return Quote{}, marketerrors.ErrInvalidRange
	}
	if start.Before(today) {
		return Quote{}, marketerrors.ErrPastDate
	}

	days := start.DaysUntil(end)
	return Quote{
		NumDays:    days,
		TotalPrice: item.DailyPrice.Times(days),
	}, nil
}

// RequestBooking validates and records a pending booking. The item is not reserved.
func (s *MarketService) RequestBooking(ctx context.Context, actor models.Actor, input BookingInput) (BookingConfirmation, error) {
	if actor.UserID == "" {
		return BookingConfirmation{}, fmt.Errorf("service: %w - missing actor", marketerrors.ErrUnauthenticated)
	}

	item, err := s.repo.GetItem(ctx, input.ItemID)
	if err != nil {
		return BookingConfirmation{}, fmt.Errorf("service: failed to load item %s: %w", input.ItemID, err)
	}

	quote, err := ValidateBookingRequest(item, actor.UserID, input.StartDate, input.EndDate, s.today())
	if err != nil {
		return BookingConfirmation{}, fmt.Errorf("service: booking rejected for item %s: %w", item.ItemID, err)
	}

	booking := models.Booking{
		BookingID:  utils.GenerateID(),
		ItemID:     item.ItemID,
		RenterID:   actor.UserID,
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
		TotalPrice: quote.TotalPrice,
		Status:     models.BookingPending,
		CreatedAt:  s.now(),
	}

	if err := s.repo.CreateBooking(ctx, booking); err != nil {
		return BookingConfirmation{}, fmt.Errorf("service: failed to record booking for item %s by user %s: %w", item.ItemID, actor.UserID, err)
	}

	return BookingConfirmation{Booking: booking, Item: item, NumDays: quote.NumDays}, nil
}

// ResolveBooking applies the item owner's decision to a pending booking.
// A booking that is no longer pending is left untouched and reported with ErrAlreadyProcessed.
func (s *MarketService) ResolveBooking(ctx context.Context, actor models.Actor, bookingID string, decision models.Decision) (Resolution, error) {
	booking, err := s.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return Resolution{}, fmt.Errorf("service: failed to load booking %s: %w", bookingID, err)
	}
	item, err := s.repo.GetItem(ctx, booking.ItemID)
	if err != nil {
		return Resolution{}, fmt.Errorf("service: failed to load item %s: %w", booking.ItemID, err)
	}

	if actor.UserID == "" || actor.UserID != item.OwnerID {
		return Resolution{}, fmt.Errorf("service: %w - user %s does not own item %s", marketerrors.ErrNotAuthorized, actor.UserID, item.ItemID)
	}
	if booking.Status != models.BookingPending {
		return Resolution{Booking: booking, Item: item}, fmt.Errorf("service: booking %s is %s: %w", bookingID, booking.Status, marketerrors.ErrAlreadyProcessed)
	}

	switch decision {
	case models.DecisionApprove:
		approved, rented, err := s.repo.ApproveBooking(ctx, bookingID, s.now())
		if err != nil {
			return Resolution{}, fmt.Errorf("service: failed to approve booking %s: %w", bookingID, err)
		}
		return Resolution{Booking: approved, Item: rented}, nil
	case models.DecisionReject:
		rejected, err := s.repo.RejectBooking(ctx, bookingID)
		if err != nil {
			return Resolution{}, fmt.Errorf("service: failed to reject booking %s: %w", bookingID, err)
		}
		return Resolution{Booking: rejected, Item: item}, nil
	default:
		return Resolution{}, fmt.Errorf("service: %w - %q", marketerrors.ErrInvalidAction, decision)
	}
}
