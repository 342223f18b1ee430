package handler

import (
	"context"
	"fmt"
	"net/http"

	market "github.com/gkrishna247/lendit-p2p-market/internal/marketService"
	model "github.com/gkrishna247/lendit-p2p-market/internal/models"
	"github.com/gkrishna247/lendit-p2p-market/services/market/helpers"
	"github.com/gkrishna247/lendit-p2p-market/utils"

	"github.com/gin-gonic/gin"
)

//go:generate mockgen -source=market_handler.go -destination=mock_market_handler.go -package=handler

type MarketServiceInterface interface {
	ListAvailableItems(ctx context.Context, category string) ([]model.Item, error)
	GetItemDetail(ctx context.Context, viewer *model.Actor, itemID string) (market.ItemDetail, error)
	CreateItem(ctx context.Context, actor model.Actor, input market.NewItemInput) (model.Item, error)
	DeleteItem(ctx context.Context, actor model.Actor, itemID string) error
	RequestBooking(ctx context.Context, actor model.Actor, input market.BookingInput) (market.BookingConfirmation, error)
	ResolveBooking(ctx context.Context, actor model.Actor, bookingID string, decision model.Decision) (market.Resolution, error)
	MyBookings(ctx context.Context, actor model.Actor) ([]model.Booking, error)
	Dashboard(ctx context.Context, actor model.Actor) (market.Dashboard, error)
}

type MarketHandler struct {
	service MarketServiceInterface
}

func NewMarketHandler(service MarketServiceInterface) *MarketHandler {
	return &MarketHandler{service: service}
}

// ListItemsHandler handles GET / and GET /items
func (h *MarketHandler) ListItemsHandler(c *gin.Context) {
	category := c.Query("category")
	items, err := h.service.ListAvailableItems(c.Request.Context(), category)
	if err != nil {
		helpers.RespondError(c, "ListItemsHandler", "error listing items", err, map[string]any{"category": category})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.NewItemResponses(items), "items retrieved successfully")
	helpers.LogSuccess("ListItemsHandler", "items retrieved successfully", map[string]any{
		"category": category,
		"count":    len(items),
	})
}

// GetItemHandler handles GET /items/:item_id
func (h *MarketHandler) GetItemHandler(c *gin.Context) {
	itemID := c.Param("item_id")

	var viewer *model.Actor
	if actor, ok := helpers.ActorFrom(c); ok {
		viewer = &actor
	}

	detail, err := h.service.GetItemDetail(c.Request.Context(), viewer, itemID)
	if err != nil {
		helpers.RespondError(c, "GetItemHandler", "error retrieving item", err, map[string]any{"item_id": itemID})
		return
	}

	resp := helpers.ItemDetailResponse{
		Item:    helpers.NewItemResponse(detail.Item),
		CanBook: detail.CanBook,
	}
	utils.JSONResponse(c, http.StatusOK, resp, "item retrieved successfully")
	helpers.LogSuccess("GetItemHandler", "item retrieved successfully", map[string]any{
		"item_id":  itemID,
		"can_book": detail.CanBook,
	})
}

// CreateItemHandler handles POST /items
func (h *MarketHandler) CreateItemHandler(c *gin.Context) {
	var req helpers.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateItemHandler", err)
		return
	}

	actor, _ := helpers.ActorFrom(c)
	item, err := h.service.CreateItem(c.Request.Context(), actor, market.NewItemInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		DailyPrice:  req.DailyPrice,
	})
	if err != nil {
		helpers.RespondError(c, "CreateItemHandler", "failed to create item", err, map[string]any{"user_id": actor.UserID})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.NewItemResponse(item), "Item listed successfully!")
	helpers.LogSuccess("CreateItemHandler", "item listed successfully", map[string]any{
		"item_id":     item.ItemID,
		"owner_id":    item.OwnerID,
		"daily_price": item.DailyPrice.String(),
	})
}

// DeleteItemHandler handles DELETE /items/:item_id
func (h *MarketHandler) DeleteItemHandler(c *gin.Context) {
	itemID := c.Param("item_id")
	actor, _ := helpers.ActorFrom(c)

	if err := h.service.DeleteItem(c.Request.Context(), actor, itemID); err != nil {
		helpers.RespondError(c, "DeleteItemHandler", "failed to delete item", err, map[string]any{
			"item_id": itemID,
			"user_id": actor.UserID,
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, gin.H{"item_id": itemID}, "Item deleted.")
	helpers.LogSuccess("DeleteItemHandler", "item deleted", map[string]any{"item_id": itemID, "user_id": actor.UserID})
}

// RequestBookingHandler handles POST /items/:item_id/bookings
func (h *MarketHandler) RequestBookingHandler(c *gin.Context) {
	itemID := c.Param("item_id")

	var req helpers.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "RequestBookingHandler", err)
		return
	}

	actor, _ := helpers.ActorFrom(c)
	conf, err := h.service.RequestBooking(c.Request.Context(), actor, market.BookingInput{
		ItemID:    itemID,
		StartDate: *req.StartDate,
		EndDate:   *req.EndDate,
	})
	if err != nil {
		helpers.RespondError(c, "RequestBookingHandler", "failed to request booking", err, map[string]any{
			"item_id":    itemID,
			"user_id":    actor.UserID,
			"start_date": req.StartDate.String(),
			"end_date":   req.EndDate.String(),
		})
		return
	}

	message := fmt.Sprintf("Booking request sent! Total: $%s for %d day(s).", conf.Booking.TotalPrice, conf.NumDays)
	utils.JSONResponse(c, http.StatusCreated, helpers.NewBookingResponse(conf.Booking), message)
	helpers.LogSuccess("RequestBookingHandler", "booking requested", map[string]any{
		"booking_id":  conf.Booking.BookingID,
		"item_id":     itemID,
		"user_id":     actor.UserID,
		"num_days":    conf.NumDays,
		"total_price": conf.Booking.TotalPrice.String(),
	})
}

// ResolveBookingHandler handles POST /bookings/:booking_id/:action
func (h *MarketHandler) ResolveBookingHandler(c *gin.Context) {
	bookingID := c.Param("booking_id")
	decision := model.Decision(c.Param("action"))
	actor, _ := helpers.ActorFrom(c)

	res, err := h.service.ResolveBooking(c.Request.Context(), actor, bookingID, decision)
	if err != nil {
		helpers.RespondError(c, "ResolveBookingHandler", "booking not resolved", err, map[string]any{
			"booking_id": bookingID,
			"action":     string(decision),
			"user_id":    actor.UserID,
		})
		return
	}

	resp := helpers.ResolutionResponse{
		Booking: helpers.NewBookingResponse(res.Booking),
		Item:    helpers.NewItemResponse(res.Item),
	}
	if decision == model.DecisionApprove {
		utils.JSONResponse(c, http.StatusOK, resp, fmt.Sprintf("Booking for '%s' approved!", res.Item.Title))
	} else {
		utils.JSONLevelResponse(c, http.StatusOK, utils.LevelInfo, resp, fmt.Sprintf("Booking for '%s' rejected.", res.Item.Title))
	}
	helpers.LogSuccess("ResolveBookingHandler", "booking resolved", map[string]any{
		"booking_id": bookingID,
		"item_id":    res.Item.ItemID,
		"status":     string(res.Booking.Status),
	})
}

// MyBookingsHandler handles GET /my-bookings
func (h *MarketHandler) MyBookingsHandler(c *gin.Context) {
	actor, _ := helpers.ActorFrom(c)
	bookings, err := h.service.MyBookings(c.Request.Context(), actor)
	if err != nil {
		helpers.RespondError(c, "MyBookingsHandler", "error retrieving bookings", err, map[string]any{"user_id": actor.UserID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.NewBookingResponses(bookings), "bookings retrieved successfully")
	helpers.LogSuccess("MyBookingsHandler", "bookings retrieved successfully", map[string]any{
		"user_id": actor.UserID,
		"count":   len(bookings),
	})
}

// DashboardHandler handles GET /dashboard
func (h *MarketHandler) DashboardHandler(c *gin.Context) {
	actor, _ := helpers.ActorFrom(c)
	dash, err := h.service.Dashboard(c.Request.Context(), actor)
	if err != nil {
		helpers.RespondError(c, "DashboardHandler", "error retrieving dashboard", err, map[string]any{"user_id": actor.UserID})
		return
	}

	resp := helpers.DashboardResponse{
		Items:            helpers.NewItemResponses(dash.Items),
		ReceivedBookings: helpers.NewBookingResponses(dash.ReceivedBookings),
	}
	utils.JSONResponse(c, http.StatusOK, resp, "dashboard retrieved successfully")
	helpers.LogSuccess("DashboardHandler", "dashboard retrieved successfully", map[string]any{
		"user_id":           actor.UserID,
		"items_count":       len(resp.Items),
		"received_bookings": len(resp.ReceivedBookings),
	})
}
