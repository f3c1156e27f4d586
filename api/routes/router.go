package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/hra-tradeshow-backend/api/controllers"
	"github.com/angelmondragon/hra-tradeshow-backend/api/middleware"
	"github.com/angelmondragon/hra-tradeshow-backend/internal/auth"
	"github.com/angelmondragon/hra-tradeshow-backend/internal/deals"
	"github.com/angelmondragon/hra-tradeshow-backend/internal/groups"
	"github.com/angelmondragon/hra-tradeshow-backend/internal/reports"
	"github.com/angelmondragon/hra-tradeshow-backend/pkg/config"
	"github.com/angelmondragon/hra-tradeshow-backend/pkg/enums"
	"github.com/angelmondragon/hra-tradeshow-backend/pkg/logger"
	"github.com/angelmondragon/hra-tradeshow-backend/pkg/qrcode"
	"github.com/angelmondragon/hra-tradeshow-backend/pkg/redis"
)

func passthrough(next http.Handler) http.Handler { return next }

// NewRouter wires every HTTP route. redisClient may be nil, in which case
// login rate limiting and idempotent replay are disabled.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	sessions middleware.SessionLookup,
	readiness map[string]controllers.Pinger,
	redisClient *redis.Client,
	gatherer prometheus.Gatherer,
	authService auth.Service,
	dealService deals.Service,
	groupService groups.Service,
	reportService reports.Service,
	optInEngine controllers.OptInEngine,
	qrGenerator *qrcode.Generator,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID(logg),
		middleware.Recoverer(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	loginLimit := passthrough
	idempotentOptIn := passthrough
	idempotentAdmin := passthrough
	if redisClient != nil {
		loginLimit = middleware.LoginRateLimit(middleware.NewLoginRateLimitPolicy(cfg.AuthRateLimit), redisClient, logg)
		idempotentOptIn = middleware.Idempotency(redisClient, middleware.OptInIdempotencyTTL, logg)
		idempotentAdmin = middleware.Idempotency(redisClient, middleware.AdminIdempotencyTTL, logg)
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readiness))
	})
	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Get("/test-users", controllers.AuthTestUsers(authService, logg))
		r.With(loginLimit).Post("/login", controllers.AuthLogin(authService, logg))
		r.Post("/refresh", controllers.AuthRefresh(authService, logg))
		r.Post("/logout", controllers.AuthLogout(authService, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessions, logg))

		r.Get("/me", controllers.Me(logg))
		r.Get("/vendors", controllers.VendorList(logg))
		r.Get("/vendors/{vendorId}/qr", controllers.VendorQRCode(qrGenerator, logg))
		r.Get("/deals", controllers.DealList(dealService, logg))
		r.Get("/deals/{dealId}", controllers.DealDetail(dealService, logg))
		r.Post("/qr/scan", controllers.QRScan(dealService, qrGenerator, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(logg, enums.UserRoleMember, enums.UserRoleGuest))
			r.Get("/opt-ins/group-selection", controllers.OptInGroupSelection(optInEngine, logg))
			r.With(idempotentOptIn).Post("/deals/{dealId}/opt-ins", controllers.DealOptIn(optInEngine, logg))
			r.With(idempotentOptIn).Post("/vendors/{vendorId}/opt-ins", controllers.VendorOptIn(optInEngine, logg))
		})

		r.Route("/vendor", func(r chi.Router) {
			r.Use(middleware.RequireRole(logg, enums.UserRoleVendor))
			r.Get("/deals", controllers.VendorDeals(dealService, logg))
			r.Get("/deals/{dealId}/signups.csv", controllers.VendorDealSignupsCSV(dealService, reportService, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessions, logg))
		r.Use(middleware.RequireRole(logg, enums.UserRoleAdmin))

		r.Get("/analytics", controllers.AdminAnalytics(reportService, logg))
		r.Get("/reports", controllers.AdminReports(reportService, logg))
		r.Get("/reports.csv", controllers.AdminReportsCSV(reportService, logg))

		r.Get("/stores", controllers.AdminStoreSearch(groupService, logg))
		r.Route("/store-groups", func(r chi.Router) {
			r.Get("/", controllers.AdminStoreGroupList(groupService, logg))
			r.With(idempotentAdmin).Post("/", controllers.AdminStoreGroupCreate(groupService, logg))
			r.Put("/{groupId}", controllers.AdminStoreGroupUpdate(groupService, logg))
			r.Delete("/{groupId}", controllers.AdminStoreGroupDelete(groupService, logg))
		})

		r.Get("/guests", controllers.AdminGuests(logg))
		r.Route("/deals", func(r chi.Router) {
			r.Get("/", controllers.AdminDealList(logg))
			r.With(idempotentAdmin).Post("/", controllers.AdminDealCreate(dealService, logg))
			r.Put("/{dealId}", controllers.AdminDealUpdate(dealService, logg))
		})
	})

	return r
}
