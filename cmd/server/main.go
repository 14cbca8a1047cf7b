package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/code2cash/backend/internal/portal/auth"
	"github.com/code2cash/backend/internal/portal/config"
	"github.com/code2cash/backend/internal/portal/controller"
	"github.com/code2cash/backend/internal/portal/db"
	"github.com/code2cash/backend/internal/portal/handlers"
	"github.com/code2cash/backend/internal/portal/resume"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// .env is a development convenience; absence is fine.
	_ = godotenv.Load()

	logger := initLogger()
	defer func(logger *zap.Logger) {
		err := logger.Sync()
		if err != nil {
			logger.Error("failed to sync logger", zap.Error(err))
		}
	}(logger)

	cfg, err := config.Load(configPath())
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}
	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	repo, err := db.NewRepository(&db.Config{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
		SSLMode:  cfg.DBSSLMode,
	})
	if err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}
	defer func() {
		if err := repo.Close(); err != nil {
			logger.Error("failed to close database", zap.Error(err))
		}
	}()

	store := resume.NewStorage(resume.ParseMode(cfg.UploadMode), cfg.UploadDir)

	authSvc := controller.NewAuthService(repo, nil, cfg.JWTSecret, logger)
	if err := authSvc.EnsureDefaultAdmin(context.Background(), cfg.AdminPassword); err != nil {
		logger.Fatal("failed to ensure admin account", zap.Error(err))
	}

	api := &handlers.API{
		Applications: controller.NewApplicationService(repo, store, logger),
		Jobs:         controller.NewJobService(repo, logger),
		Careers:      controller.NewCareerService(repo, store, logger),
		Meetings:     controller.NewMeetingService(repo, logger),
		Contacts:     controller.NewContactService(repo, logger),
		Auth:         authSvc,
		Dashboard:    controller.NewDashboardService(repo, logger),
		Guard:        auth.NewGuard(cfg.JWTSecret, repo),
		Logger:       logger,
		Development:  !cfg.Production(),
	}

	server := handlers.NewServer(cfg.Port, api.Router(cfg.CORSOrigins), logger)
	go func() {
		if err := server.Start(); err != nil {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	waitForShutdown(server, logger)
}

// initLogger initializes a Zap production logger.
func initLogger() *zap.Logger {
	logger, _ := zap.NewProduction()
	return logger
}

func configPath() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return filepath.Join("internal", "portal", "config", "config.yaml")
}

// waitForShutdown blocks until an interrupt or SIGTERM is received, then shuts
// the server down.
func waitForShutdown(server *handlers.Server, logger *zap.Logger) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	server.Stop()
	logger.Info("Server stopped properly")
}
