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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/angelmondragon/hra-tradeshow-backend/api"
	"github.com/angelmondragon/hra-tradeshow-backend/api/controllers"
	"github.com/angelmondragon/hra-tradeshow-backend/api/routes"
	"github.com/angelmondragon/hra-tradeshow-backend/internal/auth"
	"github.com/angelmondragon/hra-tradeshow-backend/internal/catalog"
	"github.com/angelmondragon/hra-tradeshow-backend/internal/cron"
	"github.com/angelmondragon/hra-tradeshow-backend/internal/deals"
	"github.com/angelmondragon/hra-tradeshow-backend/internal/groups"
	"github.com/angelmondragon/hra-tradeshow-backend/internal/optins"
	"github.com/angelmondragon/hra-tradeshow-backend/internal/reports"
	"github.com/angelmondragon/hra-tradeshow-backend/internal/workspace"
	"github.com/angelmondragon/hra-tradeshow-backend/pkg/auth/session"
	"github.com/angelmondragon/hra-tradeshow-backend/pkg/config"
	"github.com/angelmondragon/hra-tradeshow-backend/pkg/db"
	"github.com/angelmondragon/hra-tradeshow-backend/pkg/logger"
	"github.com/angelmondragon/hra-tradeshow-backend/pkg/metrics"
	"github.com/angelmondragon/hra-tradeshow-backend/pkg/migrate"
	"github.com/angelmondragon/hra-tradeshow-backend/pkg/qrcode"
	"github.com/angelmondragon/hra-tradeshow-backend/pkg/redis"
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
		ServiceName: cfg.App.ServiceName,
		Level:       logger.ParseLevel(cfg.Log.Level),
		WarnStack:   cfg.Log.WarnStack,
		Format:      cfg.Log.Format,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logg); err != nil {
		logg.Error(context.Background(), "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logg *logger.Logger) (err error) {
	readiness := map[string]controllers.Pinger{}

	var dbClient *db.Client
	if cfg.DB.DSN != "" {
		dbClient, err = db.New(ctx, cfg.DB, logg)
		if err != nil {
			return err
		}
		defer func() { err = multierr.Append(err, dbClient.Close()) }()
		readiness["database"] = dbClient

		if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient, catalog.Models()...); err != nil {
			return err
		}
	}

	var loader catalog.Loader
	if dbClient != nil {
		repo := catalog.NewRepository(dbClient.DB())
		if err := seedCatalog(ctx, cfg, logg, repo); err != nil {
			return err
		}
		loader = repo
	}
	provider, err := catalog.NewProvider(ctx, cfg.Catalog, loader, logg)
	if err != nil {
		return err
	}

	var (
		redisClient *redis.Client
		sessions    *session.Manager
	)
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return err
		}
		defer func() { err = multierr.Append(err, redisClient.Close()) }()
		readiness["redis"] = redisClient
		sessions, err = session.NewManager(redisClient, cfg.JWT)
	} else {
		logg.Warn(ctx, "redis disabled; refresh tokens kept in memory, login rate limit and idempotency off")
		sessions, err = session.NewMemoryManager(cfg.JWT)
	}
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	portalMetrics := metrics.NewPortalMetrics(reg)
	registry := workspace.NewRegistry()

	authService, err := auth.NewService(auth.ServiceParams{
		Logger:         logg,
		Catalog:        provider,
		Registry:       registry,
		SessionManager: sessions,
		Metrics:        portalMetrics,
		JWTConfig:      cfg.JWT,
		LoginDelay:     cfg.Session.LoginDelay,
	})
	if err != nil {
		return err
	}
	loc := cfg.Reports.Location()
	dealService, err := deals.NewService(logg, loc)
	if err != nil {
		return err
	}
	groupService, err := groups.NewService(logg)
	if err != nil {
		return err
	}
	reportService, err := reports.NewService(logg, reports.NewAggregator(loc))
	if err != nil {
		return err
	}
	engine, err := optins.NewEngine(logg, portalMetrics)
	if err != nil {
		return err
	}

	sweeper, err := newSessionSweeper(cfg, logg, reg, registry, sessions, portalMetrics)
	if err != nil {
		return err
	}

	handler := routes.NewRouter(
		cfg,
		logg,
		registry,
		readiness,
		redisClient,
		reg,
		authService,
		dealService,
		groupService,
		reportService,
		engine,
		qrcode.NewGenerator(cfg.QRCode, cfg.App.PublicBaseURL),
	)
	server := api.NewServer(cfg, handler)

	runCtx := logg.WithFields(ctx, map[string]any{
		"env":            cfg.App.Env,
		"addr":           server.Addr,
		"catalog_source": provider.Source(),
	})

	go func() {
		if err := sweeper.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logg.Error(runCtx, "session sweeper stopped", err)
		}
	}()

	serveErr := make(chan error, 1)
	go func() {
		logg.Info(runCtx, "starting api server")
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logg.Info(runCtx, "api server shutting down gracefully")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// seedCatalog fills an empty catalog database with the built-in trade show
// data. Only used in dev, where sqlite tables come from AutoMigrate unseeded.
func seedCatalog(ctx context.Context, cfg *config.Config, logg *logger.Logger, repo *catalog.Repository) error {
	if !cfg.App.IsDev() || !cfg.Catalog.FromDatabase() {
		return nil
	}
	empty, err := repo.Empty(ctx)
	if err != nil {
		return err
	}
	if !empty {
		return nil
	}
	logg.Info(ctx, "seeding empty catalog database")
	return repo.Save(ctx, catalog.Builtin(), catalog.BuiltinTestUsers())
}

func newSessionSweeper(
	cfg *config.Config,
	logg *logger.Logger,
	reg prometheus.Registerer,
	registry *workspace.Registry,
	sessions *session.Manager,
	gauge *metrics.PortalMetrics,
) (*cron.Service, error) {
	job, err := cron.NewSessionExpiryJob(cron.SessionExpiryJobParams{
		Logger:   logg,
		Sessions: registry,
		Refresh:  sessions,
		Gauge:    gauge,
		IdleTTL:  cfg.Session.IdleTTL,
	})
	if err != nil {
		return nil, err
	}
	return cron.NewService(cron.ServiceParams{
		Logger:   logg,
		Registry: cron.NewRegistry(job),
		Lock:     cron.NewLocalLock(),
		Metrics:  metrics.NewCronJobMetrics(reg),
		Interval: cfg.Session.SweepInterval,
	})
}
