package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ayursync/web/internal/backend"
	"github.com/ayursync/web/internal/config"
	appointmentHandler "github.com/ayursync/web/internal/handler/appointment"
	authHandler "github.com/ayursync/web/internal/handler/auth"
	dashboardHandler "github.com/ayursync/web/internal/handler/dashboard"
	diseaseHandler "github.com/ayursync/web/internal/handler/disease"
	doctorsHandler "github.com/ayursync/web/internal/handler/doctors"
	landingHandler "github.com/ayursync/web/internal/handler/landing"
	symptomHandler "github.com/ayursync/web/internal/handler/symptom"
	"github.com/ayursync/web/internal/middleware"
	"github.com/ayursync/web/internal/repository"
	memoryRepo "github.com/ayursync/web/internal/repository/memory"
	postgresRepo "github.com/ayursync/web/internal/repository/postgres"
	"github.com/ayursync/web/internal/router"
	"github.com/ayursync/web/internal/service/account"
	"github.com/ayursync/web/internal/service/booking"
	"github.com/ayursync/web/internal/service/dashboard"
	"github.com/ayursync/web/internal/service/directory"
	"github.com/ayursync/web/internal/service/triage"
	"github.com/ayursync/web/internal/session"
	"github.com/ayursync/web/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:   cfg.Log.Level,
		Console: cfg.Log.Console,
		Output:  os.Stderr,
	})

	// Per-user portal state: postgres when a DSN is configured, otherwise
	// process memory (state then lives only as long as the process).
	var state repository.StateRepository
	if cfg.State.PostgresDSN != "" {
		db, err := postgresRepo.NewDB(cfg.State.PostgresDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to postgres")
		}
		defer db.Close()
		if err := postgresRepo.EnsureSchema(db); err != nil {
			log.Fatal().Err(err).Msg("failed to ensure state schema")
		}
		state = postgresRepo.NewStateRepository(db)
		log.Info().Msg("using postgres state store")
	} else {
		state = memoryRepo.NewStateRepository()
		log.Warn().Msg("no postgres DSN configured, state is in-memory only")
	}

	// Sessions: redis when configured, otherwise in-process.
	var sessionStore session.Store
	if cfg.Redis.URL != "" {
		rs, err := session.NewRedisStore(cfg.Redis.URL, cfg.Session.TTL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		sessionStore = rs
		log.Info().Msg("using redis session store")
	} else {
		sessionStore = session.NewMemoryStore(cfg.Session.TTL)
	}
	sessions := session.NewManager(sessionStore, cfg.Session)

	api := backend.New(cfg.Backend, log)

	accountSvc := account.NewService(api, state, log)
	dashboardSvc := dashboard.NewService(api, state, log)
	directorySvc := directory.NewService(api, state, log)
	bookingSvc := booking.NewService(api, cfg.SMTP, log)
	triageSvc := triage.NewService(api)

	guard := middleware.NewRouteGuard(sessions)

	r := router.New(
		guard,
		landingHandler.NewHandler(),
		authHandler.NewHandler(accountSvc, sessions),
		dashboardHandler.NewHandler(dashboardSvc, sessions, log),
		diseaseHandler.NewHandler(triageSvc, dashboardSvc, log),
		symptomHandler.NewHandler(triageSvc, dashboardSvc, log),
		doctorsHandler.NewHandler(directorySvc, dashboardSvc, log),
		appointmentHandler.NewHandler(bookingSvc, sessions, dashboardSvc, log),
		log,
		router.Config{
			RateRPS:       cfg.Server.RateRPS,
			RateBurst:     cfg.Server.RateBurst,
			MetricsPrefix: "ayursync_web",
			TemplateGlob:  "web/templates/*.html",
			StaticDir:     "web/static",
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
