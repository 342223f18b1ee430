package models

import "time"

// User represents a marketplace account
type User struct {
	UserID       string    `json:"user_id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Actor is the authenticated user a request acts for
type Actor struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

// Item represents a listing offered for rent
type Item struct {
	ItemID      string     `json:"item_id" db:"id"`
	OwnerID     string     `json:"owner_id" db:"owner_id"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description" db:"description"`
	Category    Category   `json:"category" db:"category"`
	DailyPrice  Money      `json:"daily_price" db:"daily_price_cents"`
	Status      ItemStatus `json:"status" db:"status"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// Booking represents a renter's request for an item over a date range
type Booking struct {
	BookingID  string        `json:"booking_id" db:"id"`
	ItemID     string        `json:"item_id" db:"item_id"`
	RenterID   string        `json:"renter_id" db:"renter_id"`
	StartDate  Date          `json:"start_date" db:"start_date"`
	EndDate    Date          `json:"end_date" db:"end_date"`
	TotalPrice Money         `json:"total_price" db:"total_price_cents"`
	Status     BookingStatus `json:"status" db:"status"`
	CreatedAt  time.Time     `json:"created_at" db:"created_at"`
}

// Days returns the number of whole days the booking spans
func (b Booking) Days() int {
	return b.StartDate.DaysUntil(b.EndDate)
}

// Category classifies items for browsing
type Category string

const (
	CategoryElectronics Category = "electronics"
	CategoryTools       Category = "tools"
	CategoryHome        Category = "home"
	CategoryOutdoors    Category = "outdoors"
	CategoryOther       Category = "other"
)

// Categories lists every category in display order
var Categories = []Category{
	CategoryElectronics,
	CategoryTools,
	CategoryHome,
	CategoryOutdoors,
	CategoryOther,
}

func (c Category) Valid() bool {
	switch c {
	case CategoryElectronics, CategoryTools, CategoryHome, CategoryOutdoors, CategoryOther:
		return true
	}
	return false
}

// ItemStatus is the rental availability of an item
type ItemStatus string

const (
	ItemAvailable ItemStatus = "available"
	ItemRented    ItemStatus = "rented"
)

func (s ItemStatus) Valid() bool {
	return s == ItemAvailable || s == ItemRented
}

// BookingStatus is the lifecycle state of a booking.
// Only pending -> approved and pending -> rejected are reachable.
type BookingStatus string

const (
	BookingPending  BookingStatus = "pending"
	BookingApproved BookingStatus = "approved"
	BookingRejected BookingStatus = "rejected"
	BookingReturned BookingStatus = "returned"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingApproved, BookingRejected, BookingReturned:
		return true
	}
	return false
}

// Decision is an owner's resolution of a pending booking
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

func (d Decision) Valid() bool {
	return d == DecisionApprove || d == DecisionReject
}
