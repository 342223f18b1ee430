package market

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/gkrishna247/lendit-p2p-market/internal/marketerrors"
	"github.com/gkrishna247/lendit-p2p-market/internal/models"
	"github.com/gkrishna247/lendit-p2p-market/internal/repository"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

// newMemoryService returns a service over a memory repo holding the three test users
func newMemoryService(t *testing.T, today string) (*MarketService, *repository.MemoryRepo) {
	t.Helper()

	repo := repository.NewMemoryRepo()
	for _, a := range []models.Actor{owner, renter, other} {
		require.NoError(t, repo.CreateUser(context.Background(), models.User{UserID: a.UserID, Username: a.Username}))
	}
	return NewMarketService(repo, WithClock(fixedClock(today))), repo
}

func listDrill(t *testing.T, s *MarketService) models.Item {
	t.Helper()
	item, err := s.CreateItem(context.Background(), owner, NewItemInput{
		Title:       "Cordless drill",
		Description: "18V with two batteries",
		Category:    models.CategoryTools,
		DailyPrice:  models.MustMoney("25.00"),
	})
	require.NoError(t, err)
	return item
}

func TestMarketService_BookingLifecycleScenario(t *testing.T) {
	ctx := context.Background()
	s, repo := newMemoryService(t, "2024-05-20")
	item := listDrill(t, s)

	conf, err := s.RequestBooking(ctx, renter, BookingInput{
		ItemID:    item.ItemID,
		StartDate: models.MustDate("2024-06-01"),
		EndDate:   models.MustDate("2024-06-04"),
	})
	require.NoError(t, err)
	require.Equal(t, models.MustMoney("75.00"), conf.Booking.TotalPrice)
	require.Equal(t, models.BookingPending, conf.Booking.Status)
	require.Equal(t, 3, conf.NumDays)

	stored, err := repo.GetItem(ctx, item.ItemID)
	require.NoError(t, err)
	require.Equal(t, models.ItemAvailable, stored.Status, "requesting must not reserve the item")

	res, err := s.ResolveBooking(ctx, owner, conf.Booking.BookingID, models.DecisionApprove)
	require.NoError(t, err)
	require.Equal(t, models.BookingApproved, res.Booking.Status)
	require.Equal(t, models.ItemRented, res.Item.Status)

	storedBooking, err := repo.GetBooking(ctx, conf.Booking.BookingID)
	require.NoError(t, err)
	require.Equal(t, models.BookingApproved, storedBooking.Status)
	stored, err = repo.GetItem(ctx, item.ItemID)
	require.NoError(t, err)
	require.Equal(t, models.ItemRented, stored.Status)
	require.True(t, stored.UpdatedAt.Equal(fixedClock("2024-05-20")()), "approval is stamped with the service clock, got %v", stored.UpdatedAt)

	_, err = s.RequestBooking(ctx, other, BookingInput{
		ItemID:    item.ItemID,
		StartDate: models.MustDate("2024-07-01"),
		EndDate:   models.MustDate("2024-07-02"),
	})
	require.True(t, errors.Is(err, marketerrors.ErrItemUnavailable), "got %v", err)

	available, err := s.ListAvailableItems(ctx, "")
	require.NoError(t, err)
	require.Empty(t, available)
}

func TestMarketService_SecondResolutionIsNoop(t *testing.T) {
	ctx := context.Background()

	for _, first := range []models.Decision{models.DecisionApprove, models.DecisionReject} {
		for _, second := range []models.Decision{models.DecisionApprove, models.DecisionReject} {
			first, second := first, second
			t.Run(string(first)+"_then_"+string(second), func(t *testing.T) {
				t.Parallel()

				s, repo := newMemoryService(t, "2024-05-20")
				item := listDrill(t, s)
				conf, err := s.RequestBooking(ctx, renter, BookingInput{ItemID: item.ItemID, StartDate: models.MustDate("2024-06-01"), EndDate: models.MustDate("2024-06-02")})
				require.NoError(t, err)

				firstRes, err := s.ResolveBooking(ctx, owner, conf.Booking.BookingID, first)
				require.NoError(t, err)
				itemAfterFirst, err := repo.GetItem(ctx, item.ItemID)
				require.NoError(t, err)

				res, err := s.ResolveBooking(ctx, owner, conf.Booking.BookingID, second)
				require.True(t, errors.Is(err, marketerrors.ErrAlreadyProcessed), "got %v", err)
				require.Equal(t, firstRes.Booking.Status, res.Booking.Status)

				b, err := repo.GetBooking(ctx, conf.Booking.BookingID)
				require.NoError(t, err)
				require.Equal(t, firstRes.Booking.Status, b.Status)
				itemAfterSecond, err := repo.GetItem(ctx, item.ItemID)
				require.NoError(t, err)
				require.Equal(t, itemAfterFirst.Status, itemAfterSecond.Status)
			})
		}
	}
}

func TestMarketService_OnlyOwnerResolves(t *testing.T) {
	ctx := context.Background()
	s, repo := newMemoryService(t, "2024-05-20")
	item := listDrill(t, s)
	conf, err := s.RequestBooking(ctx, renter, BookingInput{ItemID: item.ItemID, StartDate: models.MustDate("2024-06-01"), EndDate: models.MustDate("2024-06-02")})
	require.NoError(t, err)

	for _, actor := range []models.Actor{renter, other, {}} {
		for _, d := range []models.Decision{models.DecisionApprove, models.DecisionReject} {
			_, err := s.ResolveBooking(ctx, actor, conf.Booking.BookingID, d)
			require.True(t, errors.Is(err, marketerrors.ErrNotAuthorized), "actor %q: got %v", actor.UserID, err)
		}
	}

	b, err := repo.GetBooking(ctx, conf.Booking.BookingID)
	require.NoError(t, err)
	require.Equal(t, models.BookingPending, b.Status)
	stored, err := repo.GetItem(ctx, item.ItemID)
	require.NoError(t, err)
	require.Equal(t, models.ItemAvailable, stored.Status)
}

func TestMarketService_PendingBookingsCoexist(t *testing.T) {
	ctx := context.Background()
	s, _ := newMemoryService(t, "2024-05-20")
	item := listDrill(t, s)

	input := BookingInput{ItemID: item.ItemID, StartDate: models.MustDate("2024-06-01"), EndDate: models.MustDate("2024-06-05")}
	first, err := s.RequestBooking(ctx, renter, input)
	require.NoError(t, err)
	second, err := s.RequestBooking(ctx, other, input)
	require.NoError(t, err)
	require.NotEqual(t, first.Booking.BookingID, second.Booking.BookingID)

	dash, err := s.Dashboard(ctx, owner)
	require.NoError(t, err)
	require.Len(t, dash.ReceivedBookings, 2)

	// approving one leaves the other pending and still approvable
	_, err = s.ResolveBooking(ctx, owner, first.Booking.BookingID, models.DecisionApprove)
	require.NoError(t, err)
	res, err := s.ResolveBooking(ctx, owner, second.Booking.BookingID, models.DecisionApprove)
	require.NoError(t, err)
	require.Equal(t, models.BookingApproved, res.Booking.Status)
	require.Equal(t, models.ItemRented, res.Item.Status)
}

func TestMarketService_PastDateBoundary(t *testing.T) {
	ctx := context.Background()
	s, _ := newMemoryService(t, "2024-05-20")
	item := listDrill(t, s)

	_, err := s.RequestBooking(ctx, renter, BookingInput{ItemID: item.ItemID, StartDate: models.MustDate("2024-05-19"), EndDate: models.MustDate("2024-05-21")})
	require.True(t, errors.Is(err, marketerrors.ErrPastDate), "got %v", err)

	conf, err := s.RequestBooking(ctx, renter, BookingInput{ItemID: item.ItemID, StartDate: models.MustDate("2024-05-20"), EndDate: models.MustDate("2024-05-21")})
	require.NoError(t, err)
	require.Equal(t, 1, conf.NumDays)
}

func TestMarketService_TodayFollowsUTC(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepo()
	require.NoError(t, repo.CreateUser(ctx, models.User{UserID: owner.UserID, Username: owner.Username}))
	require.NoError(t, repo.CreateUser(ctx, models.User{UserID: renter.UserID, Username: renter.Username}))

	// 2024-05-20 23:30 in UTC-5 is already 2024-05-21 in UTC
	loc := time.FixedZone("UTC-5", -5*60*60)
	s := NewMarketService(repo, WithClock(func() time.Time { return time.Date(2024, time.May, 20, 23, 30, 0, 0, loc) }))
	item := listDrill(t, s)

	_, err := s.RequestBooking(ctx, renter, BookingInput{ItemID: item.ItemID, StartDate: models.MustDate("2024-05-20"), EndDate: models.MustDate("2024-05-22")})
	require.True(t, errors.Is(err, marketerrors.ErrPastDate), "got %v", err)
}

func TestMarketService_CreateItem(t *testing.T) {
	tests := []struct {
		name         string
		input        NewItemInput
		wantErr      error
		wantCategory models.Category
	}{
		{name: "valid", input: NewItemInput{Title: "Tent", Description: "4 person", Category: models.CategoryOutdoors, DailyPrice: 1500}, wantCategory: models.CategoryOutdoors},
		{name: "category_defaults_to_other", input: NewItemInput{Title: "Tent", Description: "4 person", DailyPrice: 1500}, wantCategory: models.CategoryOther},
		{name: "title_trimmed_empty", input: NewItemInput{Title: "   ", Description: "4 person", DailyPrice: 1500}, wantErr: marketerrors.ErrInvalidItem},
		{name: "title_too_long", input: NewItemInput{Title: strings.Repeat("t", 201), Description: "x", DailyPrice: 1500}, wantErr: marketerrors.ErrInvalidItem},
		{name: "missing_description", input: NewItemInput{Title: "Tent", DailyPrice: 1500}, wantErr: marketerrors.ErrInvalidItem},
		{name: "unknown_category", input: NewItemInput{Title: "Tent", Description: "x", Category: "vehicles", DailyPrice: 1500}, wantErr: marketerrors.ErrInvalidCategory},
		{name: "zero_price", input: NewItemInput{Title: "Tent", Description: "x", DailyPrice: 0}, wantErr: marketerrors.ErrInvalidPrice},
		{name: "negative_price", input: NewItemInput{Title: "Tent", Description: "x", DailyPrice: -100}, wantErr: marketerrors.ErrInvalidPrice},
		{name: "price_above_max", input: NewItemInput{Title: "Tent", Description: "x", DailyPrice: 100000000}, wantErr: marketerrors.ErrInvalidPrice},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			s, _ := newMemoryService(t, "2024-05-20")

			item, err := s.CreateItem(context.Background(), owner, tc.input)
			if tc.wantErr != nil {
				require.True(t, errors.Is(err, tc.wantErr), "expected error: %v, got: %v", tc.wantErr, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, owner.UserID, item.OwnerID)
			require.Equal(t, models.ItemAvailable, item.Status)
			require.Equal(t, tc.wantCategory, item.Category)
			require.NotEmpty(t, item.ItemID)
		})
	}
}

func TestMarketService_ListAvailableItems(t *testing.T) {
	ctx := context.Background()
	s, _ := newMemoryService(t, "2024-05-20")
	drill := listDrill(t, s)

	_, err := s.ListAvailableItems(ctx, "spaceships")
	require.True(t, errors.Is(err, marketerrors.ErrInvalidCategory))

	tools, err := s.ListAvailableItems(ctx, "TOOLS")
	require.NoError(t, err)
	require.Len(t, tools, 1)
	require.Equal(t, drill.ItemID, tools[0].ItemID)

	home, err := s.ListAvailableItems(ctx, "home")
	require.NoError(t, err)
	require.Empty(t, home)
}

func TestMarketService_GetItemDetail(t *testing.T) {
	ctx := context.Background()
	s, _ := newMemoryService(t, "2024-05-20")
	drill := listDrill(t, s)

	anon, err := s.GetItemDetail(ctx, nil, drill.ItemID)
	require.NoError(t, err)
	require.False(t, anon.CanBook)

	own, err := s.GetItemDetail(ctx, &owner, drill.ItemID)
	require.NoError(t, err)
	require.False(t, own.CanBook)

	visitor, err := s.GetItemDetail(ctx, &renter, drill.ItemID)
	require.NoError(t, err)
	require.True(t, visitor.CanBook)
	require.Equal(t, drill.Title, visitor.Item.Title)

	_, err = s.GetItemDetail(ctx, &renter, "missing")
	require.True(t, errors.Is(err, marketerrors.ErrItemNotFound))
}

func TestMarketService_DeleteItem(t *testing.T) {
	ctx := context.Background()
	s, repo := newMemoryService(t, "2024-05-20")
	drill := listDrill(t, s)
	conf, err := s.RequestBooking(ctx, renter, BookingInput{ItemID: drill.ItemID, StartDate: models.MustDate("2024-06-01"), EndDate: models.MustDate("2024-06-02")})
	require.NoError(t, err)

	err = s.DeleteItem(ctx, renter, drill.ItemID)
	require.True(t, errors.Is(err, marketerrors.ErrNotItemOwner), "got %v", err)
	require.True(t, errors.Is(err, marketerrors.ErrNotAuthorized))

	require.NoError(t, s.DeleteItem(ctx, owner, drill.ItemID))
	_, err = repo.GetBooking(ctx, conf.Booking.BookingID)
	require.True(t, errors.Is(err, marketerrors.ErrBookingNotFound))

	mine, err := s.MyBookings(ctx, renter)
	require.NoError(t, err)
	require.Empty(t, mine)
}

func TestMarketService_DashboardAndMyBookings(t *testing.T) {
	ctx := context.Background()
	s, _ := newMemoryService(t, "2024-05-20")
	drill := listDrill(t, s)

	tent, err := s.CreateItem(ctx, other, NewItemInput{Title: "Tent", Description: "4 person", Category: models.CategoryOutdoors, DailyPrice: 1500})
	require.NoError(t, err)

	onDrill, err := s.RequestBooking(ctx, renter, BookingInput{ItemID: drill.ItemID, StartDate: models.MustDate("2024-06-01"), EndDate: models.MustDate("2024-06-02")})
	require.NoError(t, err)
	onTent, err := s.RequestBooking(ctx, renter, BookingInput{ItemID: tent.ItemID, StartDate: models.MustDate("2024-06-01"), EndDate: models.MustDate("2024-06-03")})
	require.NoError(t, err)

	dash, err := s.Dashboard(ctx, owner)
	require.NoError(t, err)
	require.Len(t, dash.Items, 1)
	require.Equal(t, drill.ItemID, dash.Items[0].ItemID)
	require.Len(t, dash.ReceivedBookings, 1)
	require.Equal(t, onDrill.Booking.BookingID, dash.ReceivedBookings[0].BookingID)

	mine, err := s.MyBookings(ctx, renter)
	require.NoError(t, err)
	ids := []string{mine[0].BookingID, mine[1].BookingID}
	require.ElementsMatch(t, []string{onDrill.Booking.BookingID, onTent.Booking.BookingID}, ids)

	_, err = s.Dashboard(ctx, models.Actor{})
	require.True(t, errors.Is(err, marketerrors.ErrUnauthenticated))
}

func TestMarketService_DashboardRepoFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := repository.NewMockMarketDB(ctrl)
	s := NewMarketService(mockRepo)

	mockRepo.EXPECT().ListItems(gomock.Any(), repository.ItemFilter{OwnerID: owner.UserID}).Return([]models.Item{}, nil)
	mockRepo.EXPECT().ListBookings(gomock.Any(), repository.BookingFilter{ItemOwnerID: owner.UserID}).Return(nil, errors.New("db down"))

	_, err := s.Dashboard(context.Background(), owner)
	require.Error(t, err)
	require.Equal(t, marketerrors.KindUnknown, marketerrors.KindOf(err))
}
