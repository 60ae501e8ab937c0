package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"campusrate/internal/app/campus/config"
	"campusrate/internal/app/campus/entity"
	"campusrate/internal/app/campus/handler"
	"campusrate/internal/app/campus/repository"
	"campusrate/internal/app/campus/service"
	"campusrate/internal/app/campus/util"
	"campusrate/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logger.Init("campus-api", logLevel)

	db, err := connectDB(cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	logger.Info().
		Str("host", cfg.Database.Host).
		Str("database", cfg.Database.DBName).
		Msg("Connected to PostgreSQL")

	// Миграция создаёт таблицы и уникальные индексы,
	// на которые опираются toggle-операции
	if err := db.AutoMigrate(
		&entity.College{},
		&entity.Review{},
		&entity.ReviewLike{},
		&entity.SavedCollege{},
	); err != nil {
		logger.Fatal().Err(err).Msg("Failed to migrate database")
	}

	kafkaProducer := util.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	defer kafkaProducer.Close()
	logger.Info().
		Str("topic", cfg.Kafka.Topic).
		Msg("Initialized Kafka producer")

	collegeRepo := repository.NewCollegeRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	likeRepo := repository.NewReviewLikeRepository(db)
	savedRepo := repository.NewSavedCollegeRepository(db)

	collegeService := service.NewCollegeService(collegeRepo, savedRepo)
	reviewService := service.NewReviewService(
		reviewRepo,
		likeRepo,
		collegeRepo,
		savedRepo,
		kafkaProducer,
	)

	authMiddleware := handler.NewAuthMiddleware(cfg.JWT.Secret)
	collegeHandler := handler.NewCollegeHandler(collegeService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	profileHandler := handler.NewProfileHandler(reviewService, collegeService)
	router := handler.SetupRoutes(collegeHandler, reviewHandler, profileHandler, authMiddleware)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("Starting Campus API")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down Campus API...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Campus API stopped gracefully")
}

func connectDB(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	}

	var db *gorm.DB
	var err error

	for i := 0; i < 10; i++ {
		db, err = gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
		if err == nil {
			sqlDB, sqlErr := db.DB()
			if sqlErr != nil {
				err = sqlErr
			} else {
				pingErr := sqlDB.Ping()
				if pingErr != nil {
					err = pingErr
				} else {
					sqlDB.SetMaxOpenConns(25)
					sqlDB.SetMaxIdleConns(5)
					sqlDB.SetConnMaxLifetime(5 * time.Minute)
					sqlDB.SetConnMaxIdleTime(1 * time.Minute)
					return db, nil
				}
			}
		}
		logger.Warn().
			Int("attempt", i+1).
			Err(err).
			Msg("Failed to connect to database, retrying...")
		time.Sleep(3 * time.Second)
	}

	return nil, fmt.Errorf("failed to connect after 10 attempts: %w", err)
}
