package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bcart01v/beheardqueue-server/config"
	"github.com/bcart01v/beheardqueue-server/cron"
	"github.com/bcart01v/beheardqueue-server/database"
	appointmentRepo "github.com/bcart01v/beheardqueue-server/database/repository/appointment"
	stallRepo "github.com/bcart01v/beheardqueue-server/database/repository/stall"
	subjectRepo "github.com/bcart01v/beheardqueue-server/database/repository/subject"
	trailerRepo "github.com/bcart01v/beheardqueue-server/database/repository/trailer"
	"github.com/bcart01v/beheardqueue-server/handlers"
	"github.com/bcart01v/beheardqueue-server/middleware"
	"github.com/bcart01v/beheardqueue-server/routes"
	"github.com/bcart01v/beheardqueue-server/services/notification"
	"github.com/bcart01v/beheardqueue-server/services/scheduling"
	"github.com/bcart01v/beheardqueue-server/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.FirebaseInit()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	apptRepo := appointmentRepo.NewMongoAppointmentRepo()
	if err := apptRepo.EnsureIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure appointment indexes: %v", err)
	}
	stalls := stallRepo.NewMongoStallRepo()
	trailers := trailerRepo.NewMongoTrailerRepo()
	subjects := subjectRepo.NewMongoSubjectRepo()

	// services.
	notifier, err := notification.NewFCMNotificationService(subjects)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize notification service: %v", err)
	}

	engine := &scheduling.DefaultSchedulingService{
		Appointments: apptRepo,
		Stalls:       stalls,
		Trailers:     trailers,
		Subjects:     subjects,
		Notifier:     notifier,
	}

	schedulingHandler := handlers.NewSchedulingHandler(engine, utils.GetCacheClient(), logger)
	routes.RegisterRoutes(router, schedulingHandler)

	utils.StartHealthMonitor(utils.GetCacheClient(), database.MongoClient)
	stopSweep := cron.StartSweepWorker(engine)

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

	stopSweep()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
