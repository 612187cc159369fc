package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kasmetics/storefront/api/controllers"
	"github.com/kasmetics/storefront/api/middleware"
	"github.com/kasmetics/storefront/internal/analytics"
	"github.com/kasmetics/storefront/internal/auth"
	"github.com/kasmetics/storefront/internal/contacts"
	"github.com/kasmetics/storefront/internal/products"
	"github.com/kasmetics/storefront/internal/users"
	"github.com/kasmetics/storefront/pkg/auth/session"
	"github.com/kasmetics/storefront/pkg/config"
	"github.com/kasmetics/storefront/pkg/enums"
	"github.com/kasmetics/storefront/pkg/logger"
	"github.com/kasmetics/storefront/pkg/metrics"
	"github.com/kasmetics/storefront/pkg/redis"
)

// Deps bundles everything the router needs.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	Redis       *redis.Client
	Sessions    session.AccessSessionChecker
	HTTPMetrics *metrics.HTTPMetrics

	DBPinger    controllers.Pinger
	RedisPinger controllers.Pinger

	AuthService      auth.Service
	ProductService   products.Service
	UsersService     users.Service
	ContactsService  contacts.Service
	AnalyticsService analytics.Service
}

// NewRouter assembles the storefront API.
func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.CORS(cfg.CORS),
	)

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
		r.Get("/ready", controllers.HealthReady(cfg, logg, map[string]controllers.Pinger{
			"database": deps.DBPinger,
			"redis":    deps.RedisPinger,
		}))
	})

	if deps.HTTPMetrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.HTTPMetrics.Handler())
	}

	// A nil *redis.Client boxed into the middleware's store interface
	// would not compare equal to nil, so resolve it here.
	rateLimit := func(policy middleware.AuthRateLimitPolicy) func(http.Handler) http.Handler {
		if deps.Redis == nil {
			return func(next http.Handler) http.Handler { return next }
		}
		return middleware.AuthRateLimit(policy, deps.Redis, logg)
	}

	r.Route("/auth", func(r chi.Router) {
		r.With(rateLimit(registerPolicy)).
			Post("/register", controllers.AuthRegister(deps.AuthService, logg))
		r.With(rateLimit(loginPolicy)).
			Post("/login", controllers.AuthLogin(deps.AuthService, logg))
		r.With(rateLimit(loginPolicy)).
			Post("/admin-login", controllers.AdminAuthLogin(deps.AuthService, logg))
		r.Post("/logout", controllers.AuthLogout(deps.AuthService, cfg.JWT, logg))
	})

	r.Route("/products", func(r chi.Router) {
		r.Get("/", controllers.ListProducts(deps.ProductService, logg))
		r.Get("/{productID}", controllers.GetProduct(deps.ProductService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))
			r.Use(middleware.RequireRole(string(enums.UserRoleAdmin), logg))
			r.Post("/", controllers.CreateProduct(deps.ProductService, logg))
			r.Put("/{productID}", controllers.UpdateProduct(deps.ProductService, logg))
			r.Delete("/{productID}", controllers.DeleteProduct(deps.ProductService, logg))
		})
	})

	r.Route("/contact", func(r chi.Router) {
		r.Post("/", controllers.SubmitContact(deps.ContactsService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))
			r.Use(middleware.RequireRole(string(enums.UserRoleAdmin), logg))
			r.Get("/", controllers.AdminListContacts(deps.ContactsService, logg))
		})
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))
		r.Use(middleware.RequireRole(string(enums.UserRoleAdmin), logg))

		r.Route("/users", func(r chi.Router) {
			r.Get("/", controllers.AdminListUsers(deps.UsersService, logg))
			r.Post("/", controllers.AdminCreateUser(deps.UsersService, logg))
			r.Delete("/{userID}", controllers.AdminDeleteUser(deps.UsersService, logg))
		})

		r.Get("/analytics", controllers.AdminAnalytics(deps.AnalyticsService, logg))
	})

	return r
}
