package perftests

import (
	"context"
	"errors"
	"math/rand"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gkrishna247/lendit-p2p-market/internal/marketerrors"
	model "github.com/gkrishna247/lendit-p2p-market/internal/models"
)

// Benchmark 1: RequestBooking - Isolated Items (Low Contention - Micro Benchmark)
func Benchmark_RequestBooking_Isolated(b *testing.B) {
	f := setupMarket(b, b.N, 1)
	renter := f.renters[0]

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := f.request(renter, f.itemIDs[i]); err != nil {
			b.Fatalf("failed to request booking: %v", err)
		}
	}
}

// Benchmark 2: RequestBooking - Shared Item (High Contention)
// Pending requests do not reserve the item, so every request succeeds.
func Benchmark_RequestBooking_ConcurrentSharedItem(b *testing.B) {
	f := setupMarket(b, 1, 64)
	itemID := f.itemIDs[0]

	b.ReportAllocs()
	b.ResetTimer()

	var failed int64
	b.RunParallel(func(pb *testing.PB) {
		rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
		for pb.Next() {
			renter := f.renters[rnd.Intn(len(f.renters))]
			if _, err := f.request(renter, itemID); err != nil {
				atomic.AddInt64(&failed, 1)
			}
		}
	})

	if failed > 0 {
		b.Fatalf("%d requests failed on an available item", failed)
	}
}

// Benchmark 3: ListAvailableItems - Concurrent Readers
func Benchmark_ListAvailableItems_Concurrent(b *testing.B) {
	f := setupMarket(b, 200, 1)
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			if _, err := f.svc.ListAvailableItems(ctx, "tools"); err != nil {
				b.Errorf("failed to list items: %v", err)
				return
			}
		}
	})
}

// Benchmark 4: ResolveBooking - Racing Approvals
// Owners race to approve pending requests on the same item; only the first wins.
func Benchmark_ResolveBooking_RacingApprovals(b *testing.B) {
	f := setupMarket(b, 1, 8)
	ctx := context.Background()

	bookingIDs := make([]string, 0, b.N)
	for i := 0; i < b.N; i++ {
		conf, err := f.request(f.renters[i%len(f.renters)], f.itemIDs[0])
		if err != nil {
			b.Fatalf("failed to seed booking: %v", err)
		}
		bookingIDs = append(bookingIDs, conf.Booking.BookingID)
	}

	b.ReportAllocs()
	b.ResetTimer()

	var next, approved, processed int64
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			id := bookingIDs[int(atomic.AddInt64(&next, 1)-1)%len(bookingIDs)]
			_, err := f.svc.ResolveBooking(ctx, benchOwner, id, model.DecisionApprove)
			switch {
			case err == nil:
				atomic.AddInt64(&approved, 1)
			case errors.Is(err, marketerrors.ErrAlreadyProcessed):
				atomic.AddInt64(&processed, 1)
			default:
				b.Errorf("unexpected resolve error: %v", err)
				return
			}
		}
	})

	b.ReportMetric(float64(approved), "approvals")
	b.ReportMetric(float64(processed), "noops")
}

// Benchmark 5: Mixed Workload (Browsing + Booking concurrently)
func Benchmark_MixedWorkload_SharedCatalog(b *testing.B) {
	f := setupMarket(b, 50, 32)
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()

	var counter int64

	// Ratio: 70% detail views, 30% booking requests
	b.RunParallel(func(pb *testing.PB) {
		rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
		for pb.Next() {
			itemID := f.itemIDs[rnd.Intn(len(f.itemIDs))]
			renter := f.renters[rnd.Intn(len(f.renters))]
			if rnd.Intn(10) < 3 {
				_, _ = f.request(renter, itemID)
			} else {
				_, _ = f.svc.GetItemDetail(ctx, &renter, itemID)
			}
			atomic.AddInt64(&counter, 1)
		}
	})
}
