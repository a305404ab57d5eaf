package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/drivetrade/vehicle-store-api/internal/config"
	"github.com/drivetrade/vehicle-store-api/internal/handler"
	"github.com/drivetrade/vehicle-store-api/internal/middleware"
	"github.com/drivetrade/vehicle-store-api/internal/repository"
	"github.com/drivetrade/vehicle-store-api/internal/service"
	"github.com/drivetrade/vehicle-store-api/internal/token"
	"github.com/drivetrade/vehicle-store-api/internal/worker"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		log.Error("load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// PostgreSQL; pool sizing rides in the DSN.
	dbPool, err := pgxpool.New(ctx, cfg.DB.DSN())
	if err != nil {
		log.Error("connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	if err := dbPool.Ping(ctx); err != nil {
		log.Error("ping database", "error", err)
		os.Exit(1)
	}
	log.Info("connected to PostgreSQL")

	// Redis
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Error("connect to Redis", "error", err)
		os.Exit(1)
	}
	log.Info("connected to Redis")

	// RabbitMQ
	amqpConn, err := amqp.Dial(cfg.RabbitMQ.URL)
	if err != nil {
		log.Error("connect to RabbitMQ", "error", err)
		os.Exit(1)
	}
	defer amqpConn.Close()

	amqpCh, err := amqpConn.Channel()
	if err != nil {
		log.Error("open RabbitMQ channel", "error", err)
		os.Exit(1)
	}
	defer amqpCh.Close()

	if err := worker.SetupRabbitMQ(amqpCh); err != nil {
		log.Error("setup RabbitMQ", "error", err)
		os.Exit(1)
	}
	log.Info("connected to RabbitMQ")

	// Repositories
	userRepo := repository.NewUserRepository(dbPool)
	vehicleRepo := repository.NewVehicleRepository(dbPool)
	orderRepo := repository.NewOrderRepository(dbPool)

	// Services
	tokens := token.NewManager(cfg.JWT.Secret, cfg.JWT.Expiration)
	authSvc := service.NewAuthService(userRepo, tokens)
	vehicleSvc := service.NewVehicleService(vehicleRepo, redisClient)
	orderSvc := service.NewOrderService(orderRepo, vehicleRepo, amqpCh)

	// Handlers
	authH := handler.NewAuthHandler(authSvc)
	vehicleH := handler.NewVehicleHandler(vehicleSvc)
	orderH := handler.NewOrderHandler(orderSvc)
	healthH := handler.NewHealthHandler(dbPool, redisClient, amqpConn)

	// Worker
	orderWorker := worker.NewOrderWorker(amqpCh, redisClient, log)

	// Router
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOriginFunc:  func(origin string) bool { return true },
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH", "HEAD"},
		AllowHeaders:     []string{"*"},
		ExposeHeaders:    []string{"Authorization"},
		AllowCredentials: true,
		MaxAge:           time.Hour,
	}))

	router.GET("/healthz", healthH.Healthz)
	router.GET("/readyz", healthH.Readyz)

	api := router.Group("/api", middleware.Authenticate(tokens, userRepo))
	{
		auth := api.Group("/auth")
		auth.POST("/signup", authH.Signup)
		auth.POST("/login", authH.Login)

		vehicles := api.Group("/vehicles")
		vehicles.GET("", vehicleH.List)
		vehicles.GET("/:id", vehicleH.GetByID)

		orders := api.Group("/orders", middleware.RequireAuth())
		orders.POST("", orderH.Create)
		orders.GET("", orderH.List)
	}

	if err := orderWorker.Start(ctx); err != nil {
		log.Error("start order worker", "error", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info("starting HTTP server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown", "error", err)
	}

	orderWorker.Stop()
	time.Sleep(500 * time.Millisecond)
	cancel()
	log.Info("server stopped")
}
