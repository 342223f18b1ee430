package perftests

import (
	"context"
	"fmt"
	"testing"
	"time"

	market "github.com/gkrishna247/lendit-p2p-market/internal/marketService"
	model "github.com/gkrishna247/lendit-p2p-market/internal/models"
	"github.com/gkrishna247/lendit-p2p-market/internal/repository"
)

var (
	benchToday = time.Date(2024, time.May, 20, 9, 0, 0, 0, time.UTC)
	benchOwner = model.Actor{UserID: "owner_0", Username: "owner_0"}
	benchStart = model.MustDate("2024-06-01")
	benchEnd   = model.MustDate("2024-06-04")
)

// fixture is a seeded in-memory marketplace
type fixture struct {
	repo    *repository.MemoryRepo
	svc     *market.MarketService
	renters []model.Actor
	itemIDs []string
}

// setupMarket seeds one owner with numItems listings and numRenters renters
func setupMarket(tb testing.TB, numItems, numRenters int) *fixture {
	tb.Helper()
	ctx := context.Background()

	repo := repository.NewMemoryRepo()
	svc := market.NewMarketService(repo, market.WithClock(func() time.Time { return benchToday }))
	f := &fixture{repo: repo, svc: svc}

	if err := repo.CreateUser(ctx, model.User{UserID: benchOwner.UserID, Username: benchOwner.Username}); err != nil {
		tb.Fatalf("failed to seed owner: %v", err)
	}
	for i := 0; i < numRenters; i++ {
		r := model.Actor{UserID: fmt.Sprintf("renter_%d", i), Username: fmt.Sprintf("renter_%d", i)}
		if err := repo.CreateUser(ctx, model.User{UserID: r.UserID, Username: r.Username}); err != nil {
			tb.Fatalf("failed to seed renter: %v", err)
		}
		f.renters = append(f.renters, r)
	}

	categories := model.Categories
	for i := 0; i < numItems; i++ {
		item, err := svc.CreateItem(ctx, benchOwner, market.NewItemInput{
			Title:       fmt.Sprintf("Item %d", i),
			Description: "Benchmark listing",
			Category:    categories[i%len(categories)],
			DailyPrice:  model.MustMoney("12.50"),
		})
		if err != nil {
			tb.Fatalf("failed to seed item: %v", err)
		}
		f.itemIDs = append(f.itemIDs, item.ItemID)
	}
	return f
}

func (f *fixture) request(renter model.Actor, itemID string) (market.BookingConfirmation, error) {
	return f.svc.RequestBooking(context.Background(), renter, market.BookingInput{
		ItemID:    itemID,
		StartDate: benchStart,
		EndDate:   benchEnd,
	})
}
