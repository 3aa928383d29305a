package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"bookwell/backend/internal/cache"
	"bookwell/backend/internal/config"
	"bookwell/backend/internal/service/appointments"
	"bookwell/backend/internal/service/billing"
	"bookwell/backend/internal/service/directory"
	"bookwell/backend/internal/store/postgres"
	transport "bookwell/backend/internal/transport/http"
	"bookwell/backend/migrations"
)

func main() {
	seed := flag.Bool("seed", false, "load development fixtures after migrating")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	log, err := buildLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting",
		zap.String("addr", fmt.Sprintf("%s:%d", cfg.HTTPHost, cfg.HTTPPort)),
		zap.String("log_level", cfg.LogLevel),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	log.Info("connecting to database", zap.String("database", redactDSN(cfg.DatabaseURL)))
	db, err := postgres.Open(ctx, cfg.DatabaseURL, postgres.PoolConfig{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
		ConnMaxIdleTime: cfg.DBConnMaxIdleTime,
	})
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err), zap.String("database", redactDSN(cfg.DatabaseURL)))
	}
	defer func() {
		if err := postgres.Close(db); err != nil {
			log.Warn("database close failed", zap.Error(err))
		}
	}()

	if err := migrations.Apply(ctx, db); err != nil {
		log.Fatal("migrations failed", zap.Error(err))
	}
	if *seed {
		if err := migrations.Seed(ctx, db); err != nil {
			log.Fatal("seed failed", zap.Error(err))
		}
		log.Info("development fixtures loaded")
	}

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatal("redis connection failed", zap.Error(err), zap.String("addr", cfg.RedisAddr))
		}
		defer func() { _ = redisClient.Close() }()
	}
	scheduleCache := cache.NewScheduleCache(redisClient, cfg.ScheduleCacheTTL)

	apptRepo := postgres.NewAppointmentRepo(db)
	clientRepo := postgres.NewClientRepo(db)
	staffRepo := postgres.NewStaffRepo(db)
	serviceRepo := postgres.NewServiceRepo(db)
	invoiceRepo := postgres.NewInvoiceRepo(db)

	apptSvc := appointments.NewService(apptRepo, scheduleCache, time.Local)
	dirSvc := directory.NewService(clientRepo, staffRepo, serviceRepo)
	billSvc := billing.NewService(invoiceRepo)

	router := transport.NewRouter(
		transport.NewAppointmentHandler(apptSvc, log),
		transport.NewDirectoryHandler(dirSvc, log),
		transport.NewBillingHandler(billSvc, log),
		log,
		transport.RouterConfig{
			RateLimitPerMin: cfg.RateLimitPerMin,
			CORSOrigins:     cfg.CORSOrigins,
		},
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.HTTPHost, cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: cfg.RequestTimeout,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()
	log.Info("listening", zap.String("addr", srv.Addr))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
		return
	}
	log.Info("stopped")
}

func buildLogger(cfg config.Config) (*zap.Logger, error) {
	var zcfg zap.Config
	if cfg.IsProduction() {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
	}
	level, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	zcfg.Level = level
	return zcfg.Build(zap.Fields(zap.String("service", "bookwell-server")))
}

// redactDSN strips credentials before the DSN reaches a log line.
func redactDSN(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil {
		return "invalid-dsn"
	}
	if u.User != nil {
		u.User = url.User(u.User.Username())
	}
	return u.Redacted()
}
