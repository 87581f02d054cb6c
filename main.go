// File: maitred/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"maitred/config"
	"maitred/cron"
	"maitred/database"
	aiLogRepo "maitred/database/repository/ailog"
	emailQueueRepo "maitred/database/repository/emailqueue"
	inventoryRepo "maitred/database/repository/inventory"
	reservationRepo "maitred/database/repository/reservation"
	tableRepo "maitred/database/repository/table"
	"maitred/middleware"
	"maitred/routes"
	"maitred/services/agent"
	"maitred/services/booking"
	"maitred/services/cleanup"
	"maitred/services/linking"
	"maitred/services/mailer"
	"maitred/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitAgentCtxCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	resRepo := reservationRepo.NewMongoReservationRepo()
	emailRepo := emailQueueRepo.NewMongoEmailQueueRepo()
	diningRepo := tableRepo.NewMongoTableRepo()
	stockRepo := inventoryRepo.NewMongoInventoryRepo()
	actionLogRepo := aiLogRepo.NewMongoAIActionLogRepo()

	// services.
	taskClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskQueueDB,
	})
	defer taskClient.Close()

	mailSvc := &mailer.DefaultMailerService{
		Queue:  emailRepo,
		Tasks:  taskClient,
		Sender: mailer.LogSender{},
	}

	bookingSvc := &booking.DefaultBookingService{
		Reservations: resRepo,
		Tables:       diningRepo,
		Mailer:       mailSvc,
	}

	cleanupSvc := &cleanup.DefaultCleanupService{
		Reservations: resRepo,
		EmailQueue:   emailRepo,
	}

	linkingSvc := &linking.DefaultLinkingService{
		Repo:  resRepo,
		Flags: linking.NewRedisSessionFlagStore(utils.GetCacheClient(), 12*time.Hour),
	}

	generator, err := agent.NewGeminiClient(config.AppConfig.GeminiAPIKey)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize language backend: %v", err)
	}
	ctxStore := agent.NewRedisContextStore(utils.GetAgentCtxCacheClient(), 30*time.Minute)
	agentSvc := agent.NewDefaultAgentService(generator, ctxStore, agent.DefaultAgentService{
		Inventory: stockRepo,
		ActionLog: actionLogRepo,
	})

	// Background worker: email dispatch plus the scheduled retention sweep.
	cron.InitWorker(mailSvc, cleanupSvc)

	// Register routes with the assembled service bundle.
	routes.RegisterRoutes(router, &routes.ServiceBundle{
		Agent:     agentSvc,
		Booking:   bookingSvc,
		Cleanup:   cleanupSvc,
		Linking:   linkingSvc,
		Mailer:    mailSvc,
		Inventory: stockRepo,
		Tables:    diningRepo,
		ActionLog: actionLogRepo,
	})

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
