package main

import (
	"context"
	"fmt"
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

	"github.com/peacockstore/peacock-api/internal/cart"
	"github.com/peacockstore/peacock-api/internal/checkout"
	"github.com/peacockstore/peacock-api/internal/config"
	"github.com/peacockstore/peacock-api/internal/handler"
	"github.com/peacockstore/peacock-api/internal/middleware"
	"github.com/peacockstore/peacock-api/internal/payment"
	"github.com/peacockstore/peacock-api/internal/repository"
	"github.com/peacockstore/peacock-api/internal/service"
	"github.com/peacockstore/peacock-api/internal/worker"
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

	gate := service.NewOfflineGate()

	// PostgreSQL. A failed initial probe flips the whole process into
	// offline mode: reads come from the sample catalog and every
	// mutation is rejected until a restart reaches the database.
	var dbPool *pgxpool.Pool
	if pool, err := connectDB(ctx, cfg); err != nil {
		log.Warn("database unreachable, entering offline mode", "error", err)
		gate.SetOffline()
	} else {
		dbPool = pool
		defer dbPool.Close()
		log.Info("connected to PostgreSQL")
	}

	var redisClient *redis.Client
	var amqpConn *amqp.Connection
	var amqpCh *amqp.Channel

	if !gate.Offline() {
		// Redis
		redisClient = redis.NewClient(&redis.Options{
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
		amqpConn, err = amqp.Dial(cfg.RabbitMQ.URL)
		if err != nil {
			log.Error("connect to RabbitMQ", "error", err)
			os.Exit(1)
		}
		defer amqpConn.Close()

		amqpCh, err = amqpConn.Channel()
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
	}

	// Repositories
	userRepo := repository.NewUserRepository(dbPool)
	productRepo := repository.NewProductRepository(dbPool)
	reviewRepo := repository.NewReviewRepository(dbPool)
	orderRepo := repository.NewOrderRepository(dbPool)

	// Session state
	carts := cart.NewStore()
	sessions := checkout.NewStore()

	// Payment providers
	cardGateway := payment.NewCardGateway(cfg.Payment.CardDelay)
	hostedProvider := payment.NewHostedProvider(cfg.Payment.ProviderBaseURL, cfg.Payment.ProviderTimeout)

	// Services
	authSvc := service.NewAuthService(userRepo, gate, cfg.JWT.Secret, cfg.JWT.Expiration)
	catalogSvc := service.NewCatalogService(productRepo, reviewRepo, redisClient, gate)
	orderSvc := service.NewOrderService(orderRepo, amqpCh, gate)
	checkoutSvc := service.NewCheckoutService(sessions, carts, orderSvc, cardGateway, hostedProvider, gate)

	// Idle carts and abandoned checkout sessions are evicted periodically.
	go func() {
		ticker := time.NewTicker(cfg.Session.SweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := carts.Sweep(cfg.Session.CartTTL); n > 0 {
					log.Info("evicted idle carts", "count", n)
				}
				if n := sessions.Sweep(cfg.Session.CheckoutTTL); n > 0 {
					log.Info("evicted idle checkout sessions", "count", n)
				}
			}
		}
	}()

	// Handlers
	authH := handler.NewAuthHandler(authSvc)
	productH := handler.NewProductHandler(catalogSvc)
	reviewH := handler.NewReviewHandler(catalogSvc)
	cartH := handler.NewCartHandler(carts, catalogSvc)
	checkoutH := handler.NewCheckoutHandler(checkoutSvc)
	orderH := handler.NewOrderHandler(orderSvc)
	healthH := handler.NewHealthHandler(dbPool, redisClient, amqpConn, gate)

	// Router
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/healthz", healthH.Healthz)
	router.GET("/readyz", healthH.Readyz)

	api := router.Group("/api")
	{
		api.POST("/signup", authH.Signup)
		api.POST("/login", authH.Login)

		users := api.Group("/users", middleware.AuthMiddleware(cfg.JWT.Secret))
		users.PUT("/:email", authH.UpdateUser)

		api.GET("/products", productH.List)
		api.GET("/products/:id", productH.GetByID)
		sellers := api.Group("/products", middleware.AuthMiddleware(cfg.JWT.Secret), middleware.SellerOnly())
		sellers.POST("", productH.Create)
		sellers.PUT("/:id", productH.Update)
		sellers.DELETE("/:id", productH.Delete)

		api.GET("/reviews", reviewH.List)
		api.POST("/reviews", reviewH.Create)

		cartRoutes := api.Group("/cart")
		cartRoutes.POST("", cartH.Create)
		cartRoutes.GET("/:id", cartH.Get)
		cartRoutes.POST("/:id/items", cartH.AddItem)
		cartRoutes.DELETE("/:id/items", cartH.RemoveItem)

		co := api.Group("/checkout")
		co.POST("", checkoutH.Start)
		co.GET("/:id", checkoutH.Get)
		co.POST("/:id/shipping", checkoutH.SubmitShipping)
		co.POST("/:id/payment", checkoutH.Pay)
		co.DELETE("/:id", checkoutH.Finish)

		api.POST("/orders", orderH.CreateOrder)
		api.GET("/orders/:email", orderH.ListOrders)
	}

	// Worker
	var fulfillment *worker.FulfillmentWorker
	if !gate.Offline() {
		fulfillment = worker.NewFulfillmentWorker(amqpCh, orderRepo, redisClient, log)
		if err := fulfillment.Start(ctx); err != nil {
			log.Error("start fulfillment worker", "error", err)
			os.Exit(1)
		}
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info("starting HTTP server", "port", cfg.Server.Port, "offline", gate.Offline())
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

	if fulfillment != nil {
		fulfillment.Stop()
		time.Sleep(500 * time.Millisecond)
	}
	cancel()
	log.Info("server stopped")
}

func connectDB(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DB.DSN())
	if err != nil {
		return nil, fmt.Errorf("parse db config: %w", err)
	}
	poolCfg.MaxConns = cfg.DB.MaxConns

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	if err := repository.Migrate(cfg.DB.MigrateDSN()); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return pool, nil
}
