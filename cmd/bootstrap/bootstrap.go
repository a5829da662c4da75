package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"docscript/config"
	deliveryHttp "docscript/internal/delivery/http"
	"docscript/internal/delivery/http/handler"
	"docscript/internal/delivery/http/middleware"
	"docscript/internal/infrastructure/cache"
	"docscript/internal/infrastructure/database"
	"docscript/internal/repository"
	"docscript/internal/usecase"
	"docscript/pkg/jwt"
	"docscript/pkg/validator"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	ClinicID    uuid.UUID
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New(ctx context.Context) (*App, error) {
	app, err := newBaseApp()
	if err != nil {
		return nil, err
	}

	// Apply schema migrations
	if err := database.MigrateUp(app.Config.DB); err != nil {
		app.Close()
		return nil, err
	}

	// Initialize Redis (optional)
	redisClient, err := cache.NewRedisClient(app.Config.Redis)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient

	// Resolve the clinic every patient operation is scoped to
	clinicID, err := usecase.ResolveClinic(ctx, logrus.StandardLogger(), repository.NewClinicRepository(app.DB), app.Config.Clinic.ID)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.ClinicID = clinicID

	app.Server = initializeServer(app.Config, app.DB, redisClient, clinicID)

	return app, nil
}

// newBaseApp loads configuration and opens the database, enough for admin commands.
func newBaseApp() (*App, error) {
	setupLogger()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	logrus.Info("Configuration loaded successfully")
	if cfg.UsesDefaultSecret() {
		logrus.Warn("JWT_SECRET is not set, using the insecure default secret")
	}

	db, err := database.NewPostgresConnection(cfg.DB, !cfg.IsProduction())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &App{Config: cfg, DB: db}, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, clinicID uuid.UUID) *http.Server {
	jwtService := jwt.NewJWTService(cfg.JWT)
	customValidator := validator.NewValidator()
	denylist := cache.NewTokenDenylist(redisClient)
	log := logrus.StandardLogger()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	patientRepo := repository.NewPatientRepository(db)
	clinicRepo := repository.NewClinicRepository(db)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(log, userRepo, jwtService, denylist, clinicID, cfg.Clinic.InitAdminEmail)
	userUsecase := usecase.NewUserUsecase(log, userRepo, jwtService, clinicID)
	patientUsecase := usecase.NewPatientUsecase(log, patientRepo, clinicID)
	clinicUsecase := usecase.NewClinicUsecase(log, clinicRepo, clinicID)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator)
	userHandler := handler.NewUserHandler(userUsecase, customValidator)
	patientHandler := handler.NewPatientHandler(patientUsecase, customValidator)
	clinicHandler := handler.NewClinicHandler(clinicUsecase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, denylist)
	corsMiddleware := middleware.NewCORSMiddleware()
	loggingMiddleware := middleware.NewLoggingMiddleware(log)

	router := deliveryHttp.NewRouter(authHandler, userHandler, patientHandler, clinicHandler, authMiddleware, corsMiddleware, loggingMiddleware)

	return &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.App.Port),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() error {
	errCh := make(chan error, 1)
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		logrus.Infof("Active clinic: %s", app.ClinicID)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case <-quit:
	case runErr = <-errCh:
		logrus.Errorf("Failed to start server: %v", runErr)
	}

	app.shutdown()
	return runErr
}

func (app *App) shutdown() {
	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
