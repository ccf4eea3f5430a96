package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ishoep/pixelpage-backend/api/controllers"
	"github.com/ishoep/pixelpage-backend/api/middleware"
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
	"github.com/ishoep/pixelpage-backend/pkg/logger"
	"github.com/ishoep/pixelpage-backend/pkg/metrics"
	"github.com/ishoep/pixelpage-backend/pkg/redis"
)

type RouterParams struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          controllers.Pinger
	Redis       *redis.Client
	Sessions    session.AccessSessionChecker
	HTTPMetrics *metrics.HTTPMetrics

	Auth      authsvc.Service
	Users     userssvc.Service
	Shops     shopssvc.Service
	Listings  listingssvc.Service
	Favorites favoritessvc.Service
	Chats     chatssvc.Service
	Ledger    ledgersvc.Service
	Tasks     taskssvc.Service
	Media     mediasvc.Service
	Cities    citiessvc.Service
}

func NewRouter(p RouterParams) http.Handler {
	cfg := p.Config
	logg := p.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)
	if p.HTTPMetrics != nil {
		r.Use(p.HTTPMetrics.Middleware)
	}

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, p.DB, p.Redis, logg))
	})

	if p.HTTPMetrics != nil {
		r.Handle("/metrics", p.HTTPMetrics.Handler())
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(registerPolicy, p.Redis, logg)).Post("/register", controllers.Register(p.Auth, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, p.Redis, logg)).Post("/login", controllers.Login(p.Auth, logg))
		r.Post("/refresh", controllers.Refresh(p.Auth, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/cities", controllers.ListCities(p.Cities))
		r.Get("/listings/search", controllers.SearchListings(p.Listings, logg))
		r.Get("/listings/{listingID}", controllers.GetListing(p.Listings, logg))
		r.Get("/shops/{shopID}", controllers.GetShop(p.Shops, p.Listings, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, p.Sessions, logg))

			r.Post("/auth/logout", controllers.Logout(p.Auth, logg))

			r.Route("/profile", func(r chi.Router) {
				r.Get("/", controllers.GetProfile(p.Users, logg))
				r.Put("/", controllers.UpdateProfile(p.Users, logg))
				r.Get("/city", controllers.GetCityPreference(p.Cities, logg))
				r.Put("/city", controllers.SetCityPreference(p.Cities, logg))
			})

			r.Route("/shops", func(r chi.Router) {
				r.Put("/me", controllers.UpsertShop(p.Shops, logg))
				r.Get("/me", controllers.GetOwnShop(p.Shops, logg))
			})

			r.Route("/listings", func(r chi.Router) {
				r.Post("/", controllers.CreateListing(p.Listings, logg))
				r.Get("/warehouse", controllers.Warehouse(p.Listings, logg))
				r.Put("/{listingID}", controllers.UpdateListing(p.Listings, logg))
				r.Delete("/{listingID}", controllers.DeleteListing(p.Listings, logg))
			})

			r.Route("/favorites", func(r chi.Router) {
				r.Get("/", controllers.ListFavorites(p.Favorites, logg))
				r.Put("/{listingID}", controllers.AddFavorite(p.Favorites, logg))
				r.Delete("/{listingID}", controllers.RemoveFavorite(p.Favorites, logg))
				r.Get("/{listingID}", controllers.IsFavorite(p.Favorites, logg))
			})

			r.Route("/chats", func(r chi.Router) {
				r.Post("/", controllers.OpenChat(p.Chats, logg))
				r.Get("/", controllers.ListChats(p.Chats, logg))
				r.Get("/{chatID}/messages", controllers.GetChatMessages(p.Chats, logg))
				r.Post("/{chatID}/messages", controllers.SendChatMessage(p.Chats, logg))
			})

			r.Route("/ledger", func(r chi.Router) {
				r.Post("/transactions", controllers.CreateTransaction(p.Ledger, logg))
				r.Get("/transactions", controllers.ListTransactions(p.Ledger, logg))
				r.Delete("/transactions/{transactionID}", controllers.DeleteTransaction(p.Ledger, logg))
				r.Get("/summary", controllers.LedgerSummary(p.Ledger, logg))
				r.Get("/categories", controllers.LedgerCategories())
			})

			r.Route("/tasks", func(r chi.Router) {
				r.Post("/", controllers.CreateTask(p.Tasks, logg))
				r.Get("/", controllers.ListTasks(p.Tasks, logg))
				r.Patch("/{taskID}/completed", controllers.UpdateTaskCompleted(p.Tasks, logg))
				r.Delete("/{taskID}", controllers.DeleteTask(p.Tasks, logg))
			})

			r.Post("/media/images", controllers.UploadImage(p.Media, logg))
		})
	})

	return r
}
