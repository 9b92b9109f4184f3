package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/atendeai/dashboard-server-go/internal/config"
	"github.com/atendeai/dashboard-server-go/internal/database"
	"github.com/atendeai/dashboard-server-go/internal/handler"
	"github.com/atendeai/dashboard-server-go/internal/httputil"
	"github.com/atendeai/dashboard-server-go/internal/middleware"
	"github.com/atendeai/dashboard-server-go/internal/redis"
	"github.com/atendeai/dashboard-server-go/internal/repository"
	"github.com/atendeai/dashboard-server-go/internal/service"
	"github.com/atendeai/dashboard-server-go/internal/util"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	setLogLevel(cfg.LogLevel)

	isProduction := os.Getenv("FLY_APP_NAME") != ""
	if err := cfg.Validate(isProduction); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	// The store client connects lazily: with no DATABASE_URL the server
	// still starts and serves reads as empty results.
	db := database.NewClient(cfg.DatabaseURL)
	defer db.Close()

	if cfg.DatabaseURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := db.Ping(ctx); err != nil {
			log.Warn().Err(err).Msg("database not reachable at startup, continuing in degraded mode")
		} else {
			log.Info().Msg("database connected")
		}
		cancel()
	}

	redisClient, err := redis.NewClient(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("redis connected")

	secrets, err := util.NewSecretBox(cfg.EncryptionKey)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid encryption key")
	}

	userRepo := repository.NewUserRepository(db, cfg.OwnerOpenID)
	convRepo := repository.NewConversationRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	apptRepo := repository.NewAppointmentRepository(db)
	orgRepo := repository.NewOrganizationRepository(db)

	authService := service.NewAuthService(cfg, userRepo, redisClient)
	convService := service.NewConversationService(convRepo, messageRepo)
	metricsService := service.NewMetricsService(messageRepo)
	apptService := service.NewAppointmentService(apptRepo)
	orgService := service.NewOrganizationService(orgRepo, secrets)

	sessionMiddleware := middleware.NewSessionMiddleware(userRepo, cfg.SessionSecret)
	rateLimitMiddleware := middleware.NewRedisRateLimitMiddleware(redisClient.Client)
	csrfMiddleware := middleware.NewCSRFMiddleware(isProduction)
	securityHeadersMiddleware := middleware.NewSecurityHeadersMiddleware(isProduction)

	authHandler := handler.NewAuthHandler(authService, cfg.SessionSecret, cfg.AppBaseURL)
	convHandler := handler.NewConversationHandler(convService)
	metricsHandler := handler.NewMetricsHandler(metricsService)
	apptHandler := handler.NewAppointmentHandler(apptService)
	orgHandler := handler.NewOrganizationHandler(orgService)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(config.ServerRequestTimeout))
	r.Use(middleware.BodyLimit(0))
	r.Use(securityHeadersMiddleware.Handler)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"status":    "ok",
			"timestamp": time.Now().UnixMilli(),
		})
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(sessionMiddleware.Handler)
		r.Use(rateLimitMiddleware.Handler)
		r.Use(csrfMiddleware.Handler)

		r.Mount("/auth", authHandler.AuthRoutes())
		r.Mount("/oauth", authHandler.OAuthRoutes())

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireUser)

			r.Mount("/conversations", convHandler.Routes())
			r.Mount("/metrics", metricsHandler.Routes())
			r.Mount("/appointments", apptHandler.Routes())
			r.Mount("/organizations", orgHandler.Routes())
		})
	})

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), config.ServerShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

func setLogLevel(level string) {
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
