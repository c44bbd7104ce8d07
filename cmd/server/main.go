package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/dashboard-api/internal/config"
	"github.com/yukikurage/dashboard-api/internal/database"
	"github.com/yukikurage/dashboard-api/internal/logger"
	"github.com/yukikurage/dashboard-api/internal/repository"
	"github.com/yukikurage/dashboard-api/internal/server"
	"github.com/yukikurage/dashboard-api/internal/services"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg := config.MustLoad()

	log := logger.New("dashboard-api", logger.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	defer log.Sync()

	gin.SetMode(cfg.GinMode)

	db, err := database.Connect(cfg, log)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := database.Migrate(db, log); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(db)
	teamRepo := repository.NewTeamMemberRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	eventRepo := repository.NewEventRepository(db)

	// AI generation is optional; without a key the generate route answers 503.
	var generator services.TaskGenerator
	if cfg.OpenAIAPIKey != "" {
		generator = services.NewAIService(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	} else {
		log.Warn("OPENAI_API_KEY not set, AI task generation disabled")
	}

	router := server.NewRouter(&server.RouterDependencies{
		Logger:           log,
		AllowedOrigins:   []string{cfg.ClientURL},
		UserRepo:         userRepo,
		TokenService:     services.NewTokenService(cfg.JWT.Secret, cfg.JWT.TTL),
		AuthService:      services.NewAuthService(userRepo),
		UserService:      services.NewUserService(userRepo),
		TeamService:      services.NewTeamService(teamRepo, userRepo),
		TaskService:      services.NewTaskService(taskRepo, generator),
		EventService:     services.NewEventService(eventRepo),
		DashboardService: services.NewDashboardService(taskRepo, eventRepo, teamRepo),
	})

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", httpServer.Addr), zap.String("env", cfg.AppEnv))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Error("Failed to stop HTTP server", zap.Error(err))
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
		log.Info("Database connection closed")
	}
}
