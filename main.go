package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gkrishna247/lendit-p2p-market/internal/auth"
	"github.com/gkrishna247/lendit-p2p-market/internal/config"
	market "github.com/gkrishna247/lendit-p2p-market/internal/marketService"
	model "github.com/gkrishna247/lendit-p2p-market/internal/models"
	"github.com/gkrishna247/lendit-p2p-market/internal/repository"
	"github.com/gkrishna247/lendit-p2p-market/internal/server"
	"github.com/gkrishna247/lendit-p2p-market/utils"

	"github.com/go-redis/redis/v8"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		utils.Fatal("failed to load config", map[string]any{"error": err.Error()})
	}
	if err := utils.SetLevel(cfg.LogLevel); err != nil {
		utils.Warn("unknown LOG_LEVEL, keeping info", map[string]any{"level": cfg.LogLevel})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore := openStore(ctx, cfg)
	defer closeStore()

	revocations, closeRevocations := openRevocations(ctx, cfg)
	defer closeRevocations()

	tokens, err := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		utils.Fatal("failed to create token issuer", map[string]any{"error": err.Error()})
	}

	authSvc := auth.NewService(store, tokens, revocations)
	marketSvc := market.NewMarketService(store)

	if cfg.SeedDemoData {
		prepopulateItems(ctx, authSvc, marketSvc)
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           server.SetupRouter(marketSvc, authSvc, authSvc),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		utils.Info("starting marketplace server", map[string]any{
			"addr":            srv.Addr,
			"store":           cfg.StoreDriver,
			"session_backend": cfg.SessionBackend,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.Fatal("failed to start server", map[string]any{"error": err.Error()})
		}
	}()

	<-ctx.Done()
	utils.Info("shutting down server", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.Error("graceful shutdown failed", map[string]any{"error": err.Error()})
	}
}

// openStore returns the configured repository and its cleanup
func openStore(ctx context.Context, cfg *config.Config) (repository.Store, func()) {
	if cfg.StoreDriver != config.StorePostgres {
		return repository.NewMemoryRepo(), func() {}
	}

	db, err := repository.OpenDB(ctx, cfg.DB.DSN())
	if err != nil {
		utils.Fatal("failed to connect to postgres", map[string]any{"host": cfg.DB.Host, "error": err.Error()})
	}
	if err := repository.Migrate(ctx, db); err != nil {
		utils.Fatal("failed to apply schema", map[string]any{"error": err.Error()})
	}

	repo := repository.NewPostgresRepo(db)
	return repo, func() {
		if err := repo.Close(); err != nil {
			utils.Warn("failed to close database", map[string]any{"error": err.Error()})
		}
	}
}

// openRevocations returns the configured token revocation list and its cleanup
func openRevocations(ctx context.Context, cfg *config.Config) (auth.RevocationStore, func()) {
	if cfg.SessionBackend != config.SessionRedis {
		return auth.NewMemoryRevocations(), func() {}
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := client.Ping(ctx).Err(); err != nil {
		utils.Fatal("could not connect to redis", map[string]any{"addr": cfg.RedisAddr, "error": err.Error()})
	}
	return auth.NewRedisRevocations(client), func() {
		if err := client.Close(); err != nil {
			utils.Warn("failed to close redis client", map[string]any{"error": err.Error()})
		}
	}
}

// prepopulateItems registers demo accounts and lists sample items
func prepopulateItems(ctx context.Context, authSvc *auth.Service, marketSvc *market.MarketService) {
	const demoPassword = "lendit-demo-pass"

	owners := map[string]model.Actor{}
	for _, username := range []string{"demo_owner", "demo_renter"} {
		user, err := authSvc.Register(ctx, auth.RegisterInput{
			Username:        username,
			Email:           username + "@example.com",
			Password:        demoPassword,
			PasswordConfirm: demoPassword,
		})
		if err != nil {
			utils.Warn("skipping demo user", map[string]any{"username": username, "error": err.Error()})
			continue
		}
		owners[username] = model.Actor{UserID: user.UserID, Username: user.Username}
	}

	owner, ok := owners["demo_owner"]
	if !ok {
		return
	}

	items := []market.NewItemInput{
		{Title: "Canon EOS R5 Camera", Description: "Full-frame mirrorless body with two batteries.", Category: model.CategoryElectronics, DailyPrice: model.MustMoney("45.00")},
		{Title: "Cordless Drill", Description: "18V drill with a full bit set.", Category: model.CategoryTools, DailyPrice: model.MustMoney("12.50")},
		{Title: "4-Person Tent", Description: "Waterproof dome tent, sets up in ten minutes.", Category: model.CategoryOutdoors, DailyPrice: model.MustMoney("20.00")},
	}
	for _, input := range items {
		item, err := marketSvc.CreateItem(ctx, owner, input)
		if err != nil {
			utils.Warn("skipping demo item", map[string]any{"title": input.Title, "error": err.Error()})
			continue
		}
		utils.Debug("demo item listed", map[string]any{"item_id": item.ItemID, "title": item.Title})
	}
	utils.Info("demo data seeded", map[string]any{"users": len(owners), "items": len(items)})
}
