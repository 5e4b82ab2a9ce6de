package main

import (
	"context"
	"log"
	"medilab-service/internal/app/config"
	"medilab-service/internal/app/contracts"
	"medilab-service/internal/app/delivery/http/middlewares"
	"medilab-service/internal/app/delivery/http/routers"
	"medilab-service/internal/app/drivers/database"
	"medilab-service/internal/app/drivers/logger"
	"medilab-service/internal/app/drivers/messaging"
	"medilab-service/internal/app/drivers/storage"
	"medilab-service/internal/app/services/labtests"
	"medilab-service/internal/app/services/shared/alerts"
	"medilab-service/internal/app/services/shared/archive"
	"medilab-service/internal/app/services/shared/capacity"
	sharedRedis "medilab-service/internal/app/services/shared/redis"
	"medilab-service/internal/app/services/worklists"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/minio/minio-go/v7"
	"github.com/sirupsen/logrus"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	mongoDB := database.NewMongoDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitMQ := messaging.NewRabbitMQ(driverConfig)
	minioClient := storage.NewMinioClient(driverConfig)
	chiRouter := chi.NewRouter()

	bootstrap := config.Bootstrap{
		Router:         chiRouter,
		MongoDB:        mongoDB,
		Redis:          redisClient,
		RabbitMQ:       rabbitMQ,
		Logger:         zapLogger,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}
	bootstrapingTheApp(&bootstrap, minioClient)

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	logrus.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeout),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		log.Fatalf("Failed to close drivers cleanly: %v", err)
	}

	log.Println("Server exiting")
}

func bootstrapingTheApp(bootstrap *config.Bootstrap, minioClient *minio.Client) {
	// Redis
	redisRepository := sharedRedis.NewRedisRepository(bootstrap.Redis)

	// Middlewares
	httpMiddlewares := middlewares.New(bootstrap.Logger, redisRepository, bootstrap.InternalConfig)

	// Shared lab services
	capacityTracker := capacity.NewCapacityTracker(
		int64(bootstrap.InternalConfig.Lab.DailyCapacityMaximum),
		redisRepository,
		bootstrap.Logger,
	)
	alertDispatcher, err := alerts.NewCriticalAlertService(
		bootstrap.RabbitMQ,
		bootstrap.InternalConfig.Lab.AlertQueue,
		bootstrap.InternalConfig.Lab.AlertsPerSecond,
	)
	if err != nil {
		log.Fatalf("Failed to initialize critical alert publisher: %v", err)
	}
	reportArchiver := archive.NewReportArchiveService(minioClient, bootstrap.DriverConfig.Minio.BucketName)

	// Lab tests
	labTestMongoRepository := labtests.NewLabTestMongoRepository(
		bootstrap.MongoDB.Database(bootstrap.DriverConfig.MongoDB.DbName),
	)
	labTestUsecase := labtests.NewLabTestUsecase(
		labTestMongoRepository,
		capacityTracker,
		alertDispatcher,
		reportArchiver,
		bootstrap.InternalConfig,
		bootstrap.Logger,
	)
	labTestController := labtests.NewLabTestController(labTestUsecase, bootstrap.Logger)

	// Worklist
	worklistUsecase := worklists.NewWorklistUsecase(
		labTestMongoRepository,
		capacityTracker,
		redisRepository,
		bootstrap.InternalConfig,
		bootstrap.Logger,
	)
	worklistController := worklists.NewWorklistController(worklistUsecase, bootstrap.Logger)

	bootstrap.WorkerStop = startCapacityRollover(capacityTracker)

	routers.SetupRoutes(bootstrap.Router, bootstrap.InternalConfig, httpMiddlewares, labTestController, worklistController)
}

// startCapacityRollover resets the daily capacity gauge shortly after
// every local midnight. Returns a stop function for graceful shutdown.
func startCapacityRollover(tracker contracts.CapacityTracker) func() {
	stop := make(chan struct{})
	ticker := time.NewTicker(time.Minute)

	tracker.Rollover(time.Now().Format("2006-01-02"))

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case now := <-ticker.C:
				tracker.Rollover(now.Format("2006-01-02"))
			}
		}
	}()

	return func() { close(stop) }
}
