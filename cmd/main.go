package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/mindscan/internal/adapters/coach"
	"github.com/okian/mindscan/internal/adapters/http/api"
	"github.com/okian/mindscan/internal/adapters/http/site"
	"github.com/okian/mindscan/internal/adapters/http/swagger"
	"github.com/okian/mindscan/internal/adapters/repository"
	service "github.com/okian/mindscan/internal/app"
	"github.com/okian/mindscan/internal/config"
	"github.com/okian/mindscan/pkg/logger"
	"github.com/okian/mindscan/pkg/metrics"
	"golang.org/x/sync/errgroup"
)

// HTTP server timeout constants.
const (
	readTimeout               = 10 * time.Second
	writeTimeout              = 30 * time.Second // covers the coach timeout
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	shutdownTimeout           = 30 * time.Second
	nanosecondsPerMillisecond = 1e6
)

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		// Use stderr since the logger may not be available yet
		os.Stderr.WriteString("mindscan: " + err.Error() + "\n")
		stop()
		os.Exit(1)
	}
}

// run loads configuration, starts the service and serves HTTP until ctx is
// cancelled or the listener fails.
func run(ctx context.Context) error {
	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := logger.Init(logger.WithFormat(cfg.LogFormat)); err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	log := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	svc, err := newService(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer svc.Stop()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newMux(ctx, svc, log),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info(gctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		startSystemMetricsUpdater(gctx, metrics.RefreshInterval())
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info(context.Background(), "shutting down server...")

		// Graceful shutdown with timeout
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	err = g.Wait()
	log.Info(context.Background(), "server stopped")
	return err
}

// newService opens the configured store and starts a service on it.
func newService(ctx context.Context, cfg *config.Config, log logger.Logger) (*service.Service, error) {
	kv, err := repository.Open(ctx, repository.Backend{
		Driver:        cfg.StoreDriver,
		SQLitePath:    cfg.SQLitePath,
		RedisAddr:     cfg.RedisAddr,
		RedisPassword: cfg.RedisPassword,
		RedisDB:       cfg.RedisDB,
	})
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	store := repository.NewStore(kv, repository.WithPrefix(cfg.KeyPrefix), repository.WithLogger(log))

	var client coach.Client
	if cfg.CoachURL != "" {
		client = coach.NewHTTPClient(cfg.CoachURL, cfg.CoachTimeout())
	}

	svc := service.New(
		service.WithLogger(log),
		service.WithStore(store),
		service.WithStrategy(cfg.ScoringStrategy),
		service.WithCoach(coach.NewSession(client, coach.WithSessionLogger(log))),
		service.WithDedupeSize(cfg.DedupeSize),
		service.WithReminderDelay(cfg.ReminderDelay()),
		service.WithReminderHook(func(text string) {
			log.Info(context.Background(), "reminder", logger.String("text", text))
		}),
	)
	if err := svc.Start(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("start service: %w", err)
	}

	log.Info(ctx, "store opened",
		logger.String("driver", cfg.StoreDriver),
		logger.String("prefix", cfg.KeyPrefix),
		logger.Bool("coach", client != nil))
	return svc, nil
}

// newMux registers the API, the OpenAPI document and the operator pages.
func newMux(ctx context.Context, svc *service.Service, log logger.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	api.NewServer(svc, api.WithLogger(log)).Register(ctx, mux)
	swagger.Register(ctx, mux)
	site.Register(ctx, mux)
	return mux
}

// startSystemMetricsUpdater samples runtime statistics every interval until
// ctx is cancelled.
func startSystemMetricsUpdater(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	updateSystemMetrics()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	var avgPauseMs float64
	if m.NumGC > 0 {
		avgPauseMs = float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
	}
	metrics.UpdateSystem(m.Alloc, runtime.NumGoroutine(), avgPauseMs)
}
