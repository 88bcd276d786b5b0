package main // Entry point package

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/iliyamo/court-reservation/internal/config"
	"github.com/iliyamo/court-reservation/internal/database"
	"github.com/iliyamo/court-reservation/internal/handler"
	"github.com/iliyamo/court-reservation/internal/jobs"
	"github.com/iliyamo/court-reservation/internal/logger"
	"github.com/iliyamo/court-reservation/internal/middleware"
	"github.com/iliyamo/court-reservation/internal/queue"
	"github.com/iliyamo/court-reservation/internal/repository"
	"github.com/iliyamo/court-reservation/internal/router"
	"github.com/iliyamo/court-reservation/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional outside development
	cfg := config.Load()

	log, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("server stopped with error", zap.Error(err))
	}
	log.Info("server stopped")
}

func run(cfg config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg.DSN())
	if err != nil {
		return err
	}
	defer db.Close()
	if cfg.DBMigrate {
		if err := database.Migrate(ctx, db); err != nil {
			return err
		}
		log.Info("schema migrated")
	}

	bookings := repository.NewBookingRepo(db)
	courts := repository.NewCourtRepo(db)

	var events service.EventPublisher
	if cfg.Broker.Enabled {
		pub := queue.NewPublisher(cfg.Broker.URL, cfg.Broker.BookingExchange, log)
		defer pub.Close()
		events = pub
	} else {
		log.Warn("broker disabled, booking events are not published")
	}

	scheduler := service.NewScheduler(bookings, courts, events, log, service.Options{
		Rules: service.Rules{
			Location:       cfg.Booking.Location,
			MinLead:        cfg.Booking.MinLead,
			MaxAdvanceDays: cfg.Booking.MaxAdvanceDays,
			SlotMinutes:    cfg.Booking.SlotMinutes,
		},
		OverdueCutoff: cfg.Booking.OverdueCutoff,
	})

	rdb, err := config.NewRedisClient(config.LoadRedisConfig())
	if err != nil {
		log.Warn("redis unavailable, rate limiting and caching disabled", zap.Error(err))
	} else {
		defer rdb.Close()
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.Use(echomw.Recover())
	e.Use(echomw.RequestLoggerWithConfig(requestLogger(log)))

	bh := handler.NewBookingHandler(scheduler, log)
	ch := handler.NewCourtHandler(scheduler, log)
	guards := router.Guards{
		JWTSecret: cfg.JWTSecret,
		RateLimit: middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb, log),
		Cache:     middleware.NewRedisCache(config.LoadCacheConfig(), rdb, log),
	}
	router.RegisterRoutes(e, db)
	router.RegisterPublic(e, ch, guards)
	router.RegisterBookings(e, bh, ch, guards)
	router.RegisterOwner(e, bh, ch, guards)

	g, gctx := errgroup.WithContext(ctx)

	if cfg.Broker.Enabled {
		eventLog := queue.NewConsumer(cfg.Broker.URL, queue.Binding{
			Exchange: cfg.Broker.BookingExchange,
			Queue:    cfg.Broker.EventLogQueue,
			Keys:     []string{queue.RKAllBookings},
		}, queue.NewEventLog(cfg.Broker.EventLogPath).Handle, log)

		payments := queue.NewPaymentHandler(scheduler, bookings, repository.NewProcessedEventRepo(db), log)
		paid := queue.NewConsumer(cfg.Broker.URL, queue.Binding{
			Exchange: cfg.Broker.PaymentExchange,
			Queue:    cfg.Broker.PaymentQueue,
			Keys:     []string{queue.RKPaymentPaid},
			Prefetch: 10,
		}, payments.Handle, log)

		g.Go(func() error { return ignoreCanceled(eventLog.Run(gctx)) })
		g.Go(func() error { return ignoreCanceled(paid.Run(gctx)) })
	}

	if spec := cfg.Booking.OverdueReportSpec; spec != "" {
		reporter, err := jobs.NewOverdueReporter(spec, scheduler, log)
		if err != nil {
			return err
		}
		reporter.Start()
		g.Go(func() error {
			<-gctx.Done()
			sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			reporter.Stop(sctx)
			return nil
		})
	}

	addr := ":" + cfg.Port
	g.Go(func() error {
		log.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(sctx)
	})

	return g.Wait()
}

// requestLogger writes one access log line per request through zap.
func requestLogger(log *zap.Logger) echomw.RequestLoggerConfig {
	access := log.Named("access")
	return echomw.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("remote_ip", v.RemoteIP),
			}
			if p, ok := middleware.PrincipalFrom(c); ok {
				fields = append(fields, zap.Uint64("user_id", p.UserID))
			}
			if v.Error != nil {
				access.Warn("request", append(fields, zap.Error(v.Error))...)
				return nil
			}
			access.Info("request", fields...)
			return nil
		},
	}
}

func ignoreCanceled(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
