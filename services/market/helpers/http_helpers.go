package helpers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gkrishna247/lendit-p2p-market/internal/marketerrors"
	"github.com/gkrishna247/lendit-p2p-market/utils"

	"github.com/gin-gonic/gin"
)

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	wrappedErr := fmt.Errorf("invalid request payload: %w", err)
	utils.JSONError(c, http.StatusBadRequest, wrappedErr, "invalid request payload")
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

var messages = []struct {
	err     error
	message string
}{
	{marketerrors.ErrSelfBooking, "You cannot book your own item."},
	{marketerrors.ErrItemUnavailable, "This item is not available for booking."},
	{marketerrors.ErrInvalidRange, "End date must be after start date."},
	{marketerrors.ErrPastDate, "Start date must be today or later."},
	{marketerrors.ErrNotItemOwner, "You are not authorized to manage this item."},
	{marketerrors.ErrNotAuthorized, "You are not authorized to manage this booking."},
	{marketerrors.ErrAlreadyProcessed, "This booking has already been processed."},
	{marketerrors.ErrInvalidAction, "Invalid action."},
	{marketerrors.ErrInvalidItem, "invalid item details"},
	{marketerrors.ErrInvalidCategory, "unknown category"},
	{marketerrors.ErrInvalidPrice, "daily price must be between 0.01 and 999999.99"},
	{marketerrors.ErrItemNotFound, "item not found"},
	{marketerrors.ErrBookingNotFound, "booking not found"},
	{marketerrors.ErrUserNotFound, "user not found"},
	{marketerrors.ErrUsernameTaken, "A user with that username already exists."},
	{marketerrors.ErrInvalidRegistration, "invalid registration details"},
	{marketerrors.ErrInvalidCredentials, "Invalid username or password."},
	{marketerrors.ErrUnauthenticated, "authentication required"},
}

// MapErrorToHTTP maps domain/service errors to HTTP status code, message and level
func MapErrorToHTTP(err error) (int, string, utils.Level) {
	message := "internal server error"
	for _, m := range messages {
		if errors.Is(err, m.err) {
			message = m.message
			break
		}
	}

	switch marketerrors.KindOf(err) {
	case marketerrors.KindValidation:
		return http.StatusBadRequest, message, utils.LevelError
	case marketerrors.KindAuthorization:
		return http.StatusForbidden, message, utils.LevelError
	case marketerrors.KindConflict:
		return http.StatusConflict, message, utils.LevelError
	case marketerrors.KindState:
		return http.StatusOK, message, utils.LevelWarning
	case marketerrors.KindNotFound:
		return http.StatusNotFound, message, utils.LevelError
	case marketerrors.KindAuthentication:
		return http.StatusUnauthorized, message, utils.LevelError
	default:
		return http.StatusInternalServerError, "internal server error", utils.LevelError
	}
}

// RespondError writes the mapped error response and logs it at a level matching the status
func RespondError(c *gin.Context, handlerName, logMessage string, err error, fields map[string]any) {
	status, message, level := MapErrorToHTTP(err)
	utils.JSONLevelError(c, status, level, fmt.Errorf("%s: %w", message, err), message)

	if fields == nil {
		fields = map[string]any{}
	}
	fields["handler"] = handlerName
	fields["status"] = status
	fields["error"] = err.Error()

	if status >= http.StatusInternalServerError {
		utils.Error(handlerName+": "+logMessage, fields)
		return
	}
	utils.Warn(handlerName+": "+logMessage, fields)
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}
