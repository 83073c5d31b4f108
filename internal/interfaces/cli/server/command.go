package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	adminUC "zelador/internal/application/admin/usecases"
	assistanceUC "zelador/internal/application/assistance/usecases"
	catalogUC "zelador/internal/application/catalog/usecases"
	"zelador/internal/application/notification"
	"zelador/internal/infrastructure/auth"
	"zelador/internal/infrastructure/config"
	"zelador/internal/infrastructure/database"
	"zelador/internal/infrastructure/email"
	"zelador/internal/infrastructure/persistence/migrations"
	"zelador/internal/infrastructure/ratelimit"
	"zelador/internal/infrastructure/repository"
	"zelador/internal/infrastructure/storage"
	"zelador/internal/infrastructure/token"
	assistanceHandlers "zelador/internal/interfaces/http/handlers/assistance"
	authHandlers "zelador/internal/interfaces/http/handlers/auth"
	catalogHandlers "zelador/internal/interfaces/http/handlers/catalog"
	"zelador/internal/interfaces/http/middleware"
	"zelador/internal/interfaces/http/routes"
	"zelador/internal/shared/db"
	"zelador/internal/shared/logger"
)

var (
	env         string
	autoMigrate bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the Zelador HTTP server with the specified configuration.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Run pending database migrations on startup (not recommended for production)")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Server.Mode = mapEnvToGinMode(env)

	if err := logger.Init(&cfg.Logger, cfg.Server.Mode == gin.DebugMode); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	log := logger.NewLogger()
	log.Infow("starting server", "environment", env, "auto_migrate", autoMigrate)

	gin.SetMode(cfg.Server.Mode)
	gin.DefaultWriter = io.Discard

	if err := database.Init(&cfg.Database); err != nil {
		log.Fatalw("failed to initialize database", "error", err)
	}
	defer database.Close()

	if autoMigrate {
		if env == "production" {
			log.Warnw("auto-migration is enabled in production - this is not recommended")
		}
		sqlDB, err := database.Get().DB()
		if err != nil {
			log.Fatalw("failed to get sql.DB for migrations", "error", err)
		}
		if err := migrations.Up(sqlDB); err != nil {
			log.Fatalw("auto-migration failed", "error", err)
		}
		log.Infow("auto-migration completed")
	}

	engine := buildEngine(cfg, log)

	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "address", cfg.Server.GetAddr(), "mode", cfg.Server.Mode)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("failed to start server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
		return err
	}

	log.Infow("server exited gracefully")
	return nil
}

// buildEngine wires repositories, use cases, handlers and routes onto a gin
// engine. All dependencies share one database connection and one logger.
func buildEngine(cfg *config.Config, log logger.Interface) *gin.Engine {
	gormDB := database.Get()

	assistanceRepo := repository.NewAssistanceRepository(gormDB)
	activityRepo := repository.NewActivityLogRepository(gormDB)
	emailLogRepo := repository.NewEmailLogRepository(gormDB)
	buildingRepo := repository.NewBuildingRepository(gormDB)
	supplierRepo := repository.NewSupplierRepository(gormDB)
	typeRepo := repository.NewInterventionTypeRepository(gormDB)
	adminRepo := repository.NewAdminUserRepository(gormDB)

	txManager := db.NewTransactionManager(gormDB)
	tokenGen := token.NewGenerator()
	photoStorage := storage.NewLocalPhotoStorage(&cfg.Storage, log)
	jwtManager := auth.NewJWTManager(&cfg.Auth.JWT)

	mailer := email.NewSMTPMailer(&cfg.Email, log)
	notifier := notification.NewService(
		mailer,
		supplierRepo,
		buildingRepo,
		adminRepo,
		emailLogRepo,
		cfg.Email.BaseURL,
		cfg.Email.AdminEmails,
		log,
	)

	gate := assistanceUC.NewTokenGate(assistanceRepo, log)

	assistanceHandler := assistanceHandlers.NewAssistanceHandler(
		assistanceUC.NewCreateAssistanceUseCase(assistanceRepo, buildingRepo, supplierRepo, typeRepo, activityRepo, tokenGen, txManager, notifier, log),
		assistanceUC.NewGetAssistanceUseCase(assistanceRepo, log),
		assistanceUC.NewListAssistancesUseCase(assistanceRepo, log),
		assistanceUC.NewUpdateAssistanceUseCase(assistanceRepo, activityRepo, txManager, log),
		assistanceUC.NewChangeStatusUseCase(assistanceRepo, activityRepo, txManager, log),
		assistanceUC.NewCancelAssistanceUseCase(assistanceRepo, activityRepo, txManager, notifier, log),
		assistanceUC.NewReassignAssistanceUseCase(assistanceRepo, supplierRepo, activityRepo, tokenGen, txManager, notifier, log),
		assistanceUC.NewDeleteAssistanceUseCase(assistanceRepo, log),
		assistanceUC.NewRegenerateTokenUseCase(assistanceRepo, activityRepo, tokenGen, txManager, log),
		assistanceUC.NewGetAssistanceStatsUseCase(assistanceRepo, log),
		assistanceUC.NewListActivityLogUseCase(assistanceRepo, activityRepo, log),
	)

	tokenHandler := assistanceHandlers.NewTokenHandler(
		assistanceUC.NewResolveTokenUseCase(gate, log),
		assistanceUC.NewAcceptAssistanceUseCase(gate, assistanceRepo, activityRepo, tokenGen, txManager, notifier, log),
		assistanceUC.NewRejectAssistanceUseCase(gate, assistanceRepo, activityRepo, txManager, notifier, log),
		assistanceUC.NewScheduleAssistanceUseCase(gate, assistanceRepo, activityRepo, tokenGen, txManager, notifier, log),
		assistanceUC.NewCompleteAssistanceUseCase(gate, assistanceRepo, activityRepo, photoStorage, txManager, notifier, log),
	)

	buildingHandler := catalogHandlers.NewBuildingHandler(
		catalogUC.NewCreateBuildingUseCase(buildingRepo, log),
		catalogUC.NewGetBuildingUseCase(buildingRepo, log),
		catalogUC.NewListBuildingsUseCase(buildingRepo, log),
		catalogUC.NewUpdateBuildingUseCase(buildingRepo, log),
		catalogUC.NewDeleteBuildingUseCase(buildingRepo, log),
	)

	supplierHandler := catalogHandlers.NewSupplierHandler(
		catalogUC.NewCreateSupplierUseCase(supplierRepo, log),
		catalogUC.NewGetSupplierUseCase(supplierRepo, log),
		catalogUC.NewListSuppliersUseCase(supplierRepo, log),
		catalogUC.NewUpdateSupplierUseCase(supplierRepo, log),
		catalogUC.NewDeleteSupplierUseCase(supplierRepo, log),
	)

	typeHandler := catalogHandlers.NewInterventionTypeHandler(
		catalogUC.NewCreateInterventionTypeUseCase(typeRepo, log),
		catalogUC.NewGetInterventionTypeUseCase(typeRepo, log),
		catalogUC.NewListInterventionTypesUseCase(typeRepo, log),
		catalogUC.NewUpdateInterventionTypeUseCase(typeRepo, log),
		catalogUC.NewDeleteInterventionTypeUseCase(typeRepo, log),
	)

	authHandler := authHandlers.NewAuthHandler(
		adminUC.NewLoginUseCase(adminRepo, jwtManager, log),
	)

	authMiddleware := middleware.NewAuthMiddleware(jwtManager, log)

	engine := gin.New()
	engine.Use(middleware.Recovery())
	engine.Use(middleware.Logger(log))
	engine.Use(middleware.SecurityHeaders())
	if len(cfg.Server.AllowedOrigins) > 0 {
		engine.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	}

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.SetupAuthRoutes(engine, &routes.AuthRouteConfig{
		AuthHandler: authHandler,
	})
	routes.SetupAssistanceRoutes(engine, &routes.AssistanceRouteConfig{
		AssistanceHandler: assistanceHandler,
		AuthMiddleware:    authMiddleware,
	})
	routes.SetupCatalogRoutes(engine, &routes.CatalogRouteConfig{
		BuildingHandler:         buildingHandler,
		SupplierHandler:         supplierHandler,
		InterventionTypeHandler: typeHandler,
		AuthMiddleware:          authMiddleware,
	})
	routes.SetupTokenRoutes(engine, &routes.TokenRouteConfig{
		TokenHandler: tokenHandler,
		RateLimit:    tokenRateLimit(cfg, log),
	})

	return engine
}

// tokenRateLimit builds the throttle for the public token surface. Returns nil
// when rate limiting is disabled, which leaves the routes unthrottled.
func tokenRateLimit(cfg *config.Config, log logger.Interface) gin.HandlerFunc {
	if !cfg.RateLimit.Enabled {
		return nil
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Warnw("redis unavailable, token rate limiting disabled", "error", err)
		return nil
	}
	log.Infow("redis connection established", "address", cfg.Redis.GetAddr())

	limiter := ratelimit.NewRedisLimiter(redisClient, cfg.RateLimit.TokenPerMinute)
	return middleware.TokenRateLimit(limiter, log)
}

func mapEnvToGinMode(environment string) string {
	switch environment {
	case "production", "prod", "release":
		return gin.ReleaseMode
	case "test", "testing":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}
