package repository

//go:generate mockgen -source=repository.go -destination=mock_repository.go -package=repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/gkrishna247/lendit-p2p-market/internal/marketerrors"
	model "github.com/gkrishna247/lendit-p2p-market/internal/models"
)

// ItemFilter narrows item listings. Zero fields match everything.
type ItemFilter struct {
	OwnerID  string
	Status   model.ItemStatus
	Category model.Category
}

// BookingFilter narrows booking listings. Zero fields match everything.
type BookingFilter struct {
	ItemID      string
	RenterID    string
	ItemOwnerID string
	Status      model.BookingStatus
}

// MarketDB defines the item and booking storage interface for the marketplace
type MarketDB interface {
	CreateItem(ctx context.Context, item model.Item) error
	GetItem(ctx context.Context, itemID string) (model.Item, error)
	ListItems(ctx context.Context, filter ItemFilter) ([]model.Item, error)
	DeleteItem(ctx context.Context, itemID string) error

	CreateBooking(ctx context.Context, booking model.Booking) error
	GetBooking(ctx context.Context, bookingID string) (model.Booking, error)
	ListBookings(ctx context.Context, filter BookingFilter) ([]model.Booking, error)
	// ApproveBooking marks a pending booking approved and its item rented as one unit,
	// stamping the item's UpdatedAt with at
	ApproveBooking(ctx context.Context, bookingID string, at time.Time) (model.Booking, model.Item, error)
	// RejectBooking marks a pending booking rejected
	RejectBooking(ctx context.Context, bookingID string) (model.Booking, error)
}

// UserStore defines account storage for the auth provider
type UserStore interface {
	CreateUser(ctx context.Context, user model.User) error
	GetUser(ctx context.Context, userID string) (model.User, error)
	GetUserByUsername(ctx context.Context, username string) (model.User, error)
	// DeleteUser removes the user with their items and bookings
	DeleteUser(ctx context.Context, userID string) error
}

// Store is the full persistence surface
type Store interface {
	MarketDB
	UserStore
}

// MemoryRepo is a concurrency-safe in-memory implementation of Store
type MemoryRepo struct {
	mu          sync.RWMutex
	users       map[string]model.User    // key: userID
	usernames   map[string]string        // key: username -> value: userID
	items       map[string]model.Item    // key: itemID
	bookings    map[string]model.Booking // key: bookingID
	itemHistory map[string][]string      // key: itemID -> value: bookingIDs on the item
}

// NewMemoryRepo creates a new in-memory repository instance
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		users:       make(map[string]model.User),
		usernames:   make(map[string]string),
		items:       make(map[string]model.Item),
		bookings:    make(map[string]model.Booking),
		itemHistory: make(map[string][]string),
	}
}

// CreateUser stores a new account; usernames are unique
func (r *MemoryRepo) CreateUser(_ context.Context, user model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.usernames[user.Username]; taken {
		return fmt.Errorf("create user %s: %w", user.Username, marketerrors.ErrUsernameTaken)
	}
	r.users[user.UserID] = user
	r.usernames[user.Username] = user.UserID
	return nil
}

// GetUser returns an account by ID
func (r *MemoryRepo) GetUser(_ context.Context, userID string) (model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[userID]
	if !ok {
		return model.User{}, fmt.Errorf("get user %s: %w", userID, marketerrors.ErrUserNotFound)
	}
	return user, nil
}

// GetUserByUsername returns an account by username
func (r *MemoryRepo) GetUserByUsername(_ context.Context, username string) (model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.usernames[username]
	if !ok {
		return model.User{}, fmt.Errorf("get user by username %s: %w", username, marketerrors.ErrUserNotFound)
	}
	return r.users[id], nil
}

// DeleteUser removes an account, the items it owns and every booking touching either
func (r *MemoryRepo) DeleteUser(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[userID]
	if !ok {
		return fmt.Errorf("delete user %s: %w", userID, marketerrors.ErrUserNotFound)
	}

	for id, item := range r.items {
		if item.OwnerID == userID {
			r.deleteItemLocked(id)
		}
	}
	for id, b := range r.bookings {
		if b.RenterID == userID {
			r.deleteBookingLocked(id)
		}
	}

	delete(r.usernames, user.Username)
	delete(r.users, userID)
	return nil
}

// CreateItem stores a new item for an existing owner
func (r *MemoryRepo) CreateItem(_ context.Context, item model.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[item.OwnerID]; !ok {
		return fmt.Errorf("create item for owner %s: %w", item.OwnerID, marketerrors.ErrUserNotFound)
	}
	r.items[item.ItemID] = item
	return nil
}

// GetItem returns an item by ID
func (r *MemoryRepo) GetItem(_ context.Context, itemID string) (model.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[itemID]
	if !ok {
		return model.Item{}, fmt.Errorf("get item %s: %w", itemID, marketerrors.ErrItemNotFound)
	}
	return item, nil
}

// ListItems returns matching items, newest first
func (r *MemoryRepo) ListItems(_ context.Context, filter ItemFilter) ([]model.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]model.Item, 0, len(r.items))
	for _, item := range r.items {
		if filter.OwnerID != "" && item.OwnerID != filter.OwnerID {
			continue
		}
		if filter.Status != "" && item.Status != filter.Status {
			continue
		}
		if filter.Category != "" && item.Category != filter.Category {
			continue
		}
		items = append(items, item)
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ItemID > items[j].ItemID
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

// DeleteItem removes an item and its bookings
func (r *MemoryRepo) DeleteItem(_ context.Context, itemID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[itemID]; !ok {
		return fmt.Errorf("delete item %s: %w", itemID, marketerrors.ErrItemNotFound)
	}
	r.deleteItemLocked(itemID)
	return nil
}

func (r *MemoryRepo) deleteItemLocked(itemID string) {
	for _, bookingID := range r.itemHistory[itemID] {
		delete(r.bookings, bookingID)
	}
	delete(r.itemHistory, itemID)
	delete(r.items, itemID)
}

func (r *MemoryRepo) deleteBookingLocked(bookingID string) {
	b, ok := r.bookings[bookingID]
	if !ok {
		return
	}
	delete(r.bookings, bookingID)

	ids := r.itemHistory[b.ItemID]
	for i, id := range ids {
		if id == bookingID {
			r.itemHistory[b.ItemID] = append(ids[:i:i], ids[i+1:]...)
			break
		}
	}
}

// CreateBooking records a booking against an existing item
func (r *MemoryRepo) CreateBooking(_ context.Context, booking model.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[booking.ItemID]; !ok {
		return fmt.Errorf("create booking for item %s: %w", booking.ItemID, marketerrors.ErrItemNotFound)
	}
	if _, ok := r.users[booking.RenterID]; !ok {
		return fmt.Errorf("create booking for renter %s: %w", booking.RenterID, marketerrors.ErrUserNotFound)
	}

	r.bookings[booking.BookingID] = booking
	r.itemHistory[booking.ItemID] = append(r.itemHistory[booking.ItemID], booking.BookingID)
	return nil
}

// GetBooking returns a booking by ID
func (r *MemoryRepo) GetBooking(_ context.Context, bookingID string) (model.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.bookings[bookingID]
	if !ok {
		return model.Booking{}, fmt.Errorf("get booking %s: %w", bookingID, marketerrors.ErrBookingNotFound)
	}
	return b, nil
}

// ListBookings returns matching bookings, newest first
func (r *MemoryRepo) ListBookings(_ context.Context, filter BookingFilter) ([]model.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bookings := make([]model.Booking, 0)
	for _, b := range r.bookings {
		if filter.ItemID != "" && b.ItemID != filter.ItemID {
			continue
		}
		if filter.RenterID != "" && b.RenterID != filter.RenterID {
			continue
		}
		if filter.ItemOwnerID != "" && r.items[b.ItemID].OwnerID != filter.ItemOwnerID {
			continue
		}
		if filter.Status != "" && b.Status != filter.Status {
			continue
		}
		bookings = append(bookings, b)
	}

	sort.Slice(bookings, func(i, j int) bool {
		if bookings[i].CreatedAt.Equal(bookings[j].CreatedAt) {
			return bookings[i].BookingID > bookings[j].BookingID
		}
		return bookings[i].CreatedAt.After(bookings[j].CreatedAt)
	})
	return bookings, nil
}

// ApproveBooking flips the booking to approved and its item to rented under one lock
func (r *MemoryRepo) ApproveBooking(_ context.Context, bookingID string, at time.Time) (model.Booking, model.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[bookingID]
	if !ok {
		return model.Booking{}, model.Item{}, fmt.Errorf("approve booking %s: %w", bookingID, marketerrors.ErrBookingNotFound)
	}
	if b.Status != model.BookingPending {
		return model.Booking{}, model.Item{}, fmt.Errorf("approve booking %s: %w", bookingID, marketerrors.ErrAlreadyProcessed)
	}
	item, ok := r.items[b.ItemID]
	if !ok {
		return model.Booking{}, model.Item{}, fmt.Errorf("approve booking %s: %w", bookingID, marketerrors.ErrItemNotFound)
	}

	b.Status = model.BookingApproved
	item.Status = model.ItemRented
	item.UpdatedAt = at

	r.bookings[bookingID] = b
	r.items[item.ItemID] = item
	return b, item, nil
}

// RejectBooking flips a pending booking to rejected
func (r *MemoryRepo) RejectBooking(_ context.Context, bookingID string) (model.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[bookingID]
	if !ok {
		return model.Booking{}, fmt.Errorf("reject booking %s: %w", bookingID, marketerrors.ErrBookingNotFound)
	}
	if b.Status != model.BookingPending {
		return model.Booking{}, fmt.Errorf("reject booking %s: %w", bookingID, marketerrors.ErrAlreadyProcessed)
	}

	b.Status = model.BookingRejected
	r.bookings[bookingID] = b
	return b, nil
}
