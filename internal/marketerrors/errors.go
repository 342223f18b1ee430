package marketerrors

import (
	"errors"
	"fmt"
)

// Repository-level errors
var (
	ErrItemNotFound    = errors.New("item not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrUsernameTaken   = errors.New("username already taken")
)

// booking lifecycle errors
var (
	ErrSelfBooking      = errors.New("cannot book own item")
	ErrItemUnavailable  = errors.New("item not available for booking")
	ErrInvalidRange     = errors.New("end date must be after start date")
	ErrPastDate         = errors.New("start date must be today or later")
	ErrNotAuthorized    = errors.New("not authorized to manage this resource")
	ErrAlreadyProcessed = errors.New("booking already processed")
	ErrInvalidAction    = errors.New("invalid booking action")
)

// ErrNotItemOwner is an ErrNotAuthorized raised when acting on an item the actor does not own
var ErrNotItemOwner = fmt.Errorf("not the item owner: %w", ErrNotAuthorized)

// item validation errors
var (
	ErrInvalidItem     = errors.New("invalid item")
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidPrice    = errors.New("invalid daily price")
)

// auth errors
var (
	ErrUnauthenticated     = errors.New("authentication required")
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrInvalidRegistration = errors.New("invalid registration")
)

// Kind groups errors by how a caller recovers from them
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindAuthorization
	KindConflict
	KindState
	KindNotFound
	KindAuthentication
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthorization:
		return "authorization"
	case KindConflict:
		return "conflict"
	case KindState:
		return "state"
	case KindNotFound:
		return "not_found"
	case KindAuthentication:
		return "authentication"
	default:
		return "unknown"
	}
}

var kinds = []struct {
	err  error
	kind Kind
}{
	{ErrInvalidRange, KindValidation},
	{ErrPastDate, KindValidation},
	{ErrInvalidItem, KindValidation},
	{ErrInvalidCategory, KindValidation},
	{ErrInvalidPrice, KindValidation},
	{ErrInvalidAction, KindValidation},
	{ErrInvalidRegistration, KindValidation},
	{ErrSelfBooking, KindAuthorization},
	{ErrNotAuthorized, KindAuthorization},
	{ErrItemUnavailable, KindConflict},
	{ErrUsernameTaken, KindConflict},
	{ErrAlreadyProcessed, KindState},
	{ErrItemNotFound, KindNotFound},
	{ErrBookingNotFound, KindNotFound},
	{ErrUserNotFound, KindNotFound},
	{ErrUnauthenticated, KindAuthentication},
	{ErrInvalidCredentials, KindAuthentication},
}

// KindOf classifies err by the first known sentinel in its chain
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return KindUnknown
}
