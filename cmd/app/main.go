package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lawvriksh-onboarding/internal/config"
	"lawvriksh-onboarding/internal/domain/model"
	"lawvriksh-onboarding/internal/domain/ports/adapter"
	"lawvriksh-onboarding/internal/domain/ports/repository"
	authAdapters "lawvriksh-onboarding/internal/infra/adapters/auth"
	intentAdapters "lawvriksh-onboarding/internal/infra/adapters/intent"
	"lawvriksh-onboarding/internal/infra/api"
	"lawvriksh-onboarding/internal/infra/api/apiv1"
	pg "lawvriksh-onboarding/internal/infra/db/postgres"
	"lawvriksh-onboarding/internal/infra/logging"
	"lawvriksh-onboarding/internal/infra/memory"
	"lawvriksh-onboarding/internal/infra/metrics"
	red "lawvriksh-onboarding/internal/infra/redis"
	"lawvriksh-onboarding/internal/infra/sched"
	"lawvriksh-onboarding/internal/infra/security"
	"lawvriksh-onboarding/internal/infra/worker"
	"lawvriksh-onboarding/internal/usecase"
	"lawvriksh-onboarding/internal/wizard"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (dev tools, console logs, unredacted emails)")
	flag.Parse()

	// optional .env; real environment variables win
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Warn().Msg("[DEV MODE] Enabled")
	}

	metrics.MustRegister()
	metrics.SetBuildInfo(version, commit)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error().Err(err).Msg("exiting")
		os.Exit(1)
	}
}

type job struct {
	name string
	run  func(ctx context.Context) error
}

func run(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) error {
	dev := cfg.Runtime.Dev

	var (
		states  repository.WizardStateRepository
		locker  repository.Locker
		limiter repository.RateLimiter
		sink    adapter.IntentPublisher
		jobs    []job
	)
	if cfg.Redis.URL != "" {
		rc, err := red.NewClient(ctx, cfg.Redis)
		if err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		defer rc.Close()
		states = red.NewWizardStateRepo(rc, cfg.Wizard.SessionTTL)
		locker = red.NewLocker(rc)
		limiter = red.NewRateLimiter(rc)
		sink = red.NewIntentPublisher(rc, cfg.Intents.Channel)
		logger.Info().Str("addr", cfg.Redis.URL).Msg("session store: redis")
	} else {
		store := memory.NewStateStore(cfg.Wizard.SessionTTL)
		states = store
		locker = memory.NewLocker()
		limiter = memory.NewRateLimiter()
		sink = intentAdapters.NewLogPublisher(logger, dev)
		jobs = append(jobs, job{"session_sweeper", sched.NewSessionSweeper(cfg.Wizard.SweepInterval, store, logger).Run})
		logger.Warn().Msg("session store: in-process memory (single instance only)")
	}

	r := chi.NewRouter()
	api.RegisterHealth(r)
	r.Handle("/metrics", promhttp.Handler())

	var auth adapter.Authenticator
	if cfg.Database.URL != "" {
		pool, err := pg.Connect(ctx, cfg.Database.URL)
		if err != nil {
			return fmt.Errorf("postgres: %w", err)
		}
		defer pool.Close()
		loginUC := usecase.NewLoginUseCase(pg.NewCredentialRepo(pool), pg.NewTxManager(pool), logger, dev)
		api.NewServer(loginUC, logger).Register(r)
		auth = authAdapters.NewLocalAuthenticator(loginUC)
		jobs = append(jobs, job{"db_pool_stats", sched.NewPeriodic("db_pool_stats", 15*time.Second, pg.ReportPoolStats(pool), logger).Run})
		logger.Info().Msg("login backend mounted at /api/login")
	}
	if cfg.Auth.BackendURL != "" {
		remote, err := authAdapters.NewHTTPAuthenticator(cfg.Auth.BackendURL, cfg.Auth.Timeout)
		if err != nil {
			return fmt.Errorf("auth backend: %w", err)
		}
		auth = remote
		logger.Info().Str("url", cfg.Auth.BackendURL).Msg("credential checks: remote backend")
	}
	if auth == nil {
		logger.Warn().Msg("no authentication backend configured; logins complete without a credential check")
	}

	issuer, err := security.NewSessionIssuer(cfg.Session)
	if err != nil {
		return fmt.Errorf("session issuer: %w", err)
	}

	// intent delivery outlives the request context so Stop can drain the queue
	workers := worker.NewPool(cfg.Intents.Workers, cfg.Intents.Queue, logger)
	workers.Start(context.WithoutCancel(ctx))
	defer workers.Stop()

	flow, err := model.ParseFlow(cfg.Wizard.Flow)
	if err != nil {
		return err
	}
	wizUC := usecase.NewWizardUseCase(
		states,
		locker,
		auth,
		intentAdapters.NewAsyncPublisher(sink, workers, 5*time.Second),
		issuer,
		usecase.WizardOptions{
			Flow: flow,
			Policy: wizard.Policy{
				RequireProfessionSelection: *cfg.Wizard.RequireProfessionSelection,
				Professions:                cfg.Wizard.Professions,
				Interests:                  cfg.Wizard.Interests,
			},
			LockTTL:        cfg.Wizard.LockTTL,
			PendingTimeout: cfg.Wizard.PendingTimeout,
			Dev:            dev,
		},
		logger,
	)

	apiSrv := apiv1.NewServer(wizUC, issuer, logger).
		WithRateLimit(limiter, cfg.RateLimit.Actions, cfg.RateLimit.Window)
	if dev {
		apiSrv.WithDevTools(usecase.NewDevNavigator(wizUC, cfg.Wizard.Interests, logger))
		logger.Warn().Msg("dev tools mounted under /api/v1/dev")
	}
	apiv1.RegisterAPIV1(r, apiSrv)

	server := &http.Server{
		Addr: cfg.Server.Addr,
		Handler: api.Chain(r,
			api.Recover(logger),
			api.TraceID(),
			api.RequestLog(logger),
			api.Timeout(cfg.Server.RequestTimeout),
		),
		ReadHeaderTimeout: 10 * time.Second,
	}

	for _, j := range jobs {
		go func(j job) {
			if err := j.run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error().Err(err).Str("job", j.name).Msg("background job stopped")
			}
		}(j)
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", server.Addr).Str("flow", string(flow)).Msg("http listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info().Msg("shutdown requested")
	case err := <-errc:
		return fmt.Errorf("http server: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
