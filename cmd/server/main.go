package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"qfifat.backend/internal/config"
	"qfifat.backend/internal/infrastructure/jobs"
	"qfifat.backend/internal/infrastructure/notify"
	"qfifat.backend/internal/infrastructure/repositories"
	"qfifat.backend/internal/interfaces/http/handlers"
	"qfifat.backend/internal/interfaces/http/middleware"
	"qfifat.backend/internal/usecases"
	"qfifat.backend/pkg/jwt"
	"qfifat.backend/pkg/logger"
	"qfifat.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	// Load .env file
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := loadCfg()

	// Initialize Logger
	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	// Initialize Redis
	if err := initRedis(cfg.Redis.URL, cfg.Redis.PASSWORD); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	// Set Gin mode
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database using GORM
	dsn := cfg.Database.URL()
	db, err := openDB(dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("⚠️ Database not available: %v (endpoints will return errors)", err)
	} else {
		log.Println("✅ Connected to PostgreSQL via GORM")
	}

	// Initialize JWT service
	jwtService := jwt.NewJWTService(
		cfg.JWT.Secret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	merchantRepo := repositories.NewMerchantRepository(db)
	productRepo := repositories.NewProductRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	orderItemRepo := repositories.NewOrderItemRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)
	couponRepo := repositories.NewCouponRepository(db)
	earningRepo := repositories.NewEarningRepository(db)
	withdrawalRepo := repositories.NewWithdrawalRepository(db)
	trackingRepo := repositories.NewTrackingRepository(db)
	uow := repositories.NewUnitOfWork(db)

	// Initialize usecases
	authUsecase := usecases.NewAuthUsecase(userRepo, jwtService)
	productUsecase := usecases.NewProductUsecase(productRepo, merchantRepo)
	couponUsecase := usecases.NewCouponUsecase(couponRepo)
	merchantUsecase := usecases.NewMerchantUsecase(merchantRepo, userRepo, uow)
	checkoutUsecase := usecases.NewCheckoutUsecase(productRepo, orderRepo, paymentRepo, couponRepo, merchantRepo, earningRepo, uow, usecases.CheckoutConfig{
		ShippingCost:      cfg.Commerce.ShippingCost,
		CommissionRate:    cfg.Commerce.CommissionRate,
		OrderNumberPrefix: cfg.Commerce.OrderNumberPrefix,
	})
	orderUsecase := usecases.NewOrderUsecase(orderRepo, orderItemRepo, paymentRepo, productRepo, earningRepo, uow)
	paymentUsecase := usecases.NewPaymentUsecase(paymentRepo, orderRepo, orderItemRepo, productRepo, merchantRepo, earningRepo, uow, cfg.Commerce.CommissionRate)
	withdrawalUsecase := usecases.NewWithdrawalUsecase(withdrawalRepo, earningRepo, merchantRepo, uow, cfg.Commerce.MinimumWithdrawal)
	trackingUsecase := usecases.NewTrackingUsecase(trackingRepo, orderRepo, uow, notify.NewRedisTrackingPublisher())

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authUsecase)
	productHandler := handlers.NewProductHandler(productUsecase)
	orderHandler := handlers.NewOrderHandler(checkoutUsecase, orderUsecase, merchantUsecase)
	paymentHandler := handlers.NewPaymentHandler(paymentUsecase)
	couponHandler := handlers.NewCouponHandler(couponUsecase)
	merchantHandler := handlers.NewMerchantHandler(merchantUsecase)
	withdrawalHandler := handlers.NewWithdrawalHandler(withdrawalUsecase)
	trackingHandler := handlers.NewTrackingHandler(trackingUsecase, orderUsecase)

	authMiddleware := middleware.AuthMiddleware(jwtService)

	// Start background jobs
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	expiryJob := jobs.NewCouponExpiryJob(couponRepo, cfg.Commerce.CouponSweepEvery)
	go expiryJob.Start(ctx)

	// Initialize router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerAPIV1Routes(r, routeDeps{
		authHandler:       authHandler,
		productHandler:    productHandler,
		orderHandler:      orderHandler,
		paymentHandler:    paymentHandler,
		couponHandler:     couponHandler,
		merchantHandler:   merchantHandler,
		withdrawalHandler: withdrawalHandler,
		trackingHandler:   trackingHandler,
		authMiddleware:    authMiddleware,
		idempotencyTTL:    cfg.Commerce.IdempotencyKeyTTL,
	})

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("🛑 Shutting down server...")
		expiryJob.Stop()
		cancel()
	}()

	// Start server
	log.Printf("🚀 Qfifat Backend starting on port %s", cfg.Server.Port)
	log.Printf("📚 API: http://localhost:%s/api/v1", cfg.Server.Port)
	log.Printf("❤️ Health: http://localhost:%s/health", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
