package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ishoep/pixelpage-backend/api/routes"
	authsvc "github.com/ishoep/pixelpage-backend/internal/auth"
	chatssvc "github.com/ishoep/pixelpage-backend/internal/chats"
	citiessvc "github.com/ishoep/pixelpage-backend/internal/cities"
	favoritessvc "github.com/ishoep/pixelpage-backend/internal/favorites"
	ledgersvc "github.com/ishoep/pixelpage-backend/internal/ledger"
	listingssvc "github.com/ishoep/pixelpage-backend/internal/listings"
	mediasvc "github.com/ishoep/pixelpage-backend/internal/media"
	shopssvc "github.com/ishoep/pixelpage-backend/internal/shops"
	taskssvc "github.com/ishoep/pixelpage-backend/internal/tasks"
	userssvc "github.com/ishoep/pixelpage-backend/internal/users"
	"github.com/ishoep/pixelpage-backend/pkg/auth/session"
	"github.com/ishoep/pixelpage-backend/pkg/config"
	"github.com/ishoep/pixelpage-backend/pkg/db"
	"github.com/ishoep/pixelpage-backend/pkg/imghost"
	"github.com/ishoep/pixelpage-backend/pkg/logger"
	"github.com/ishoep/pixelpage-backend/pkg/metrics"
	"github.com/ishoep/pixelpage-backend/pkg/migrate"
	"github.com/ishoep/pixelpage-backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, cfg.FeatureFlags, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	imageHost, err := imghost.NewClient(cfg.ImgBB)
	if err != nil {
		logg.Error(context.Background(), "failed to create image host client", err)
		os.Exit(1)
	}

	usersRepo := userssvc.NewRepository(dbClient.DB())
	shopsRepo := shopssvc.NewRepository(dbClient.DB())
	listingsRepo := listingssvc.NewRepository(dbClient.DB())
	favoritesRepo := favoritessvc.NewRepository(dbClient.DB())
	chatsRepo := chatssvc.NewRepository(dbClient.DB())
	ledgerRepo := ledgersvc.NewRepository(dbClient.DB())
	tasksRepo := taskssvc.NewRepository(dbClient.DB())

	authService, err := authsvc.NewService(authsvc.ServiceParams{
		Users:    usersRepo,
		Sessions: sessionManager,
		JWT:      cfg.JWT,
		Password: cfg.Password,
		Logger:   logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	usersService, err := userssvc.NewService(userssvc.ServiceParams{
		Store:  usersRepo,
		Logger: logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create users service", err)
		os.Exit(1)
	}

	shopsService, err := shopssvc.NewService(shopssvc.ServiceParams{
		Repo:        shopsRepo,
		ListingRepo: listingsRepo,
		Logger:      logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create shops service", err)
		os.Exit(1)
	}

	listingsService, err := listingssvc.NewService(listingssvc.ServiceParams{
		Repo:     listingsRepo,
		ShopRepo: shopsRepo,
		Logger:   logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create listings service", err)
		os.Exit(1)
	}

	favoritesService, err := favoritessvc.NewService(favoritessvc.ServiceParams{
		Repo:        favoritesRepo,
		ListingRepo: listingsRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create favorites service", err)
		os.Exit(1)
	}

	chatsService, err := chatssvc.NewService(chatssvc.ServiceParams{
		Repo:        chatsRepo,
		ListingRepo: listingsRepo,
		ShopRepo:    shopsRepo,
		Logger:      logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create chats service", err)
		os.Exit(1)
	}

	ledgerService, err := ledgersvc.NewService(ledgersvc.ServiceParams{
		Repo:     ledgerRepo,
		ShopRepo: shopsRepo,
		Logger:   logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create ledger service", err)
		os.Exit(1)
	}

	tasksService, err := taskssvc.NewService(taskssvc.ServiceParams{
		Repo:     tasksRepo,
		ShopRepo: shopsRepo,
		Logger:   logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create tasks service", err)
		os.Exit(1)
	}

	mediaService, err := mediasvc.NewService(mediasvc.ServiceParams{
		Uploader: imageHost,
		Logger:   logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create media service", err)
		os.Exit(1)
	}

	citiesService, err := citiessvc.NewService(citiessvc.ServiceParams{
		Store:  redisClient,
		Logger: logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cities service", err)
		os.Exit(1)
	}

	httpMetrics := metrics.NewHTTPMetrics()

	router := routes.NewRouter(routes.RouterParams{
		Config:      cfg,
		Logger:      logg,
		DB:          dbClient,
		Redis:       redisClient,
		Sessions:    sessionManager,
		HTTPMetrics: httpMetrics,

		Auth:      authService,
		Users:     usersService,
		Shops:     shopsService,
		Listings:  listingsService,
		Favorites: favoritesService,
		Chats:     chatsService,
		Ledger:    ledgerService,
		Tasks:     tasksService,
		Media:     mediaService,
		Cities:    citiesService,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-stopCtx.Done():
		logg.Info(ctx, "shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}
}
