package helpers

import (
	"time"

	model "github.com/gkrishna247/lendit-p2p-market/internal/models"
)

// Request/Response DTOs
type CreateItemRequest struct {
	Title       string         `json:"title" binding:"required"`
	Description string         `json:"description" binding:"required"`
	Category    model.Category `json:"category"`
	DailyPrice  model.Money    `json:"daily_price" binding:"required,gt=0"`
}

type BookingRequest struct {
	StartDate *model.Date `json:"start_date" binding:"required"`
	EndDate   *model.Date `json:"end_date" binding:"required"`
}

type RegisterRequest struct {
	Username        string `json:"username" binding:"required,max=150"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required"`
	PasswordConfirm string `json:"password_confirm" binding:"required"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type ItemResponse struct {
	ItemID      string      `json:"item_id"`
	OwnerID     string      `json:"owner_id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Category    string      `json:"category"`
	DailyPrice  model.Money `json:"daily_price"`
	Status      string      `json:"status"`
	CreatedAt   string      `json:"created_at"`
	UpdatedAt   string      `json:"updated_at"`
}

type ItemDetailResponse struct {
	Item    ItemResponse `json:"item"`
	CanBook bool         `json:"can_book"`
}

type BookingResponse struct {
	BookingID  string      `json:"booking_id"`
	ItemID     string      `json:"item_id"`
	RenterID   string      `json:"renter_id"`
	StartDate  model.Date  `json:"start_date"`
	EndDate    model.Date  `json:"end_date"`
	NumDays    int         `json:"num_days"`
	TotalPrice model.Money `json:"total_price"`
	Status     string      `json:"status"`
	CreatedAt  string      `json:"created_at"`
}

type ResolutionResponse struct {
	Booking BookingResponse `json:"booking"`
	Item    ItemResponse    `json:"item"`
}

type DashboardResponse struct {
	Items            []ItemResponse    `json:"items"`
	ReceivedBookings []BookingResponse `json:"received_bookings"`
}

type UserResponse struct {
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

type SessionResponse struct {
	Token     string       `json:"token"`
	TokenType string       `json:"token_type"`
	ExpiresAt string       `json:"expires_at"`
	User      UserResponse `json:"user"`
}

func NewItemResponse(item model.Item) ItemResponse {
	return ItemResponse{
		ItemID:      item.ItemID,
		OwnerID:     item.OwnerID,
		Title:       item.Title,
		Description: item.Description,
		Category:    string(item.Category),
		DailyPrice:  item.DailyPrice,
		Status:      string(item.Status),
		CreatedAt:   item.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   item.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func NewBookingResponse(b model.Booking) BookingResponse {
	return BookingResponse{
		BookingID:  b.BookingID,
		ItemID:     b.ItemID,
		RenterID:   b.RenterID,
		StartDate:  b.StartDate,
		EndDate:    b.EndDate,
		NumDays:    b.Days(),
		TotalPrice: b.TotalPrice,
		Status:     string(b.Status),
		CreatedAt:  b.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func NewUserResponse(u model.User) UserResponse {
	return UserResponse{
		UserID:    u.UserID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// NewItemResponses never returns nil so empty lists encode as []
func NewItemResponses(items []model.Item) []ItemResponse {
	out := make([]ItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, NewItemResponse(item))
	}
	return out
}

func NewBookingResponses(bookings []model.Booking) []BookingResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, NewBookingResponse(b))
	}
	return out
}
