package helpers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gkrishna247/lendit-p2p-market/internal/marketerrors"
	model "github.com/gkrishna247/lendit-p2p-market/internal/models"
	"github.com/gkrishna247/lendit-p2p-market/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantMsg    string
		wantLevel  utils.Level
	}{
		{marketerrors.ErrInvalidRange, http.StatusBadRequest, "End date must be after start date.", utils.LevelError},
		{marketerrors.ErrPastDate, http.StatusBadRequest, "Start date must be today or later.", utils.LevelError},
		{marketerrors.ErrInvalidItem, http.StatusBadRequest, "invalid item details", utils.LevelError},
		{marketerrors.ErrInvalidCategory, http.StatusBadRequest, "unknown category", utils.LevelError},
		{marketerrors.ErrInvalidPrice, http.StatusBadRequest, "daily price must be between 0.01 and 999999.99", utils.LevelError},
		{marketerrors.ErrInvalidAction, http.StatusBadRequest, "Invalid action.", utils.LevelError},
		{marketerrors.ErrInvalidRegistration, http.StatusBadRequest, "invalid registration details", utils.LevelError},
		{marketerrors.ErrSelfBooking, http.StatusForbidden, "You cannot book your own item.", utils.LevelError},
		{marketerrors.ErrNotAuthorized, http.StatusForbidden, "You are not authorized to manage this booking.", utils.LevelError},
		{marketerrors.ErrNotItemOwner, http.StatusForbidden, "You are not authorized to manage this item.", utils.LevelError},
		{marketerrors.ErrItemUnavailable, http.StatusConflict, "This item is not available for booking.", utils.LevelError},
		{marketerrors.ErrUsernameTaken, http.StatusConflict, "A user with that username already exists.", utils.LevelError},
		{marketerrors.ErrAlreadyProcessed, http.StatusOK, "This booking has already been processed.", utils.LevelWarning},
		{marketerrors.ErrItemNotFound, http.StatusNotFound, "item not found", utils.LevelError},
		{marketerrors.ErrBookingNotFound, http.StatusNotFound, "booking not found", utils.LevelError},
		{marketerrors.ErrUserNotFound, http.StatusNotFound, "user not found", utils.LevelError},
		{marketerrors.ErrUnauthenticated, http.StatusUnauthorized, "authentication required", utils.LevelError},
		{marketerrors.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid username or password.", utils.LevelError},
		{errors.New("connection refused"), http.StatusInternalServerError, "internal server error", utils.LevelError},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.err.Error(), func(t *testing.T) {
			t.Parallel()

			wrapped := fmt.Errorf("service: outer context: %w", tc.err)
			status, msg, level := MapErrorToHTTP(wrapped)
			require.Equal(t, tc.wantStatus, status)
			require.Equal(t, tc.wantMsg, msg)
			require.Equal(t, tc.wantLevel, level)
		})
	}
}

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	RespondError(c, "TestHandler", "failed", fmt.Errorf("wrap: %w", marketerrors.ErrAlreadyProcessed), nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "warning", resp["level"])
	require.Equal(t, "This booking has already been processed.", resp["message"])
	require.Contains(t, resp["error"], "booking already processed")
}

func TestBookingRequestBinding(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "valid", body: `{"start_date":"2024-06-01","end_date":"2024-06-04"}`},
		{name: "missing_end", body: `{"start_date":"2024-06-01"}`, wantErr: true},
		{name: "bad_date", body: `{"start_date":"06/01/2024","end_date":"2024-06-04"}`, wantErr: true},
		{name: "empty", body: `{}`, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body))
			c.Request.Header.Set("Content-Type", "application/json")

			var req BookingRequest
			err := c.ShouldBindJSON(&req)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, model.MustDate("2024-06-01"), *req.StartDate)
			require.Equal(t, model.MustDate("2024-06-04"), *req.EndDate)
		})
	}
}

func TestNewBookingResponse(t *testing.T) {
	created := time.Date(2024, time.May, 20, 8, 30, 0, 0, time.FixedZone("X", 3600))
	resp := NewBookingResponse(model.Booking{
		BookingID:  "b1",
		ItemID:     "i1",
		RenterID:   "u1",
		StartDate:  model.MustDate("2024-06-01"),
		EndDate:    model.MustDate("2024-06-04"),
		TotalPrice: model.MustMoney("75.00"),
		Status:     model.BookingPending,
		CreatedAt:  created,
	})

	require.Equal(t, 3, resp.NumDays)
	require.Equal(t, "2024-05-20T07:30:00Z", resp.CreatedAt)

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	require.Contains(t, string(raw), `"total_price":"75.00"`)
	require.Contains(t, string(raw), `"start_date":"2024-06-01"`)
}

func TestNewItemResponses_Empty(t *testing.T) {
	raw, err := json.Marshal(NewItemResponses(nil))
	require.NoError(t, err)
	require.Equal(t, "[]", string(raw))
}
