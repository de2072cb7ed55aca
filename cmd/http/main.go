package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/fekuna/omnipos-dealer-service/config"
	"github.com/fekuna/omnipos-dealer-service/internal/auth"
	"github.com/fekuna/omnipos-dealer-service/internal/catalogcache"
	"github.com/fekuna/omnipos-dealer-service/internal/pricing"
	"github.com/fekuna/omnipos-dealer-service/internal/server"
	"github.com/fekuna/omnipos-dealer-service/internal/visibility"
	"github.com/fekuna/omnipos-dealer-service/pkg/broker"
	"github.com/fekuna/omnipos-dealer-service/pkg/cache"
	"github.com/fekuna/omnipos-dealer-service/pkg/i18n"
	"github.com/fekuna/omnipos-dealer-service/pkg/logger"
	"github.com/fekuna/omnipos-dealer-service/pkg/mailer"
	"github.com/fekuna/omnipos-dealer-service/pkg/postgres"
	"github.com/fekuna/omnipos-dealer-service/pkg/search"
	"github.com/fekuna/omnipos-dealer-service/pkg/storage"

	cartH "github.com/fekuna/omnipos-dealer-service/internal/cart/handler"
	cartRepoPkg "github.com/fekuna/omnipos-dealer-service/internal/cart/repository"
	cartUCPkg "github.com/fekuna/omnipos-dealer-service/internal/cart/usecase"

	catH "github.com/fekuna/omnipos-dealer-service/internal/category/handler"
	catRepoPkg "github.com/fekuna/omnipos-dealer-service/internal/category/repository"
	catUCPkg "github.com/fekuna/omnipos-dealer-service/internal/category/usecase"

	dealerH "github.com/fekuna/omnipos-dealer-service/internal/dealer/handler"
	dealerRepoPkg "github.com/fekuna/omnipos-dealer-service/internal/dealer/repository"
	dealerUCPkg "github.com/fekuna/omnipos-dealer-service/internal/dealer/usecase"

	discH "github.com/fekuna/omnipos-dealer-service/internal/discount/handler"
	discRepoPkg "github.com/fekuna/omnipos-dealer-service/internal/discount/repository"
	discUCPkg "github.com/fekuna/omnipos-dealer-service/internal/discount/usecase"

	notifyListenerPkg "github.com/fekuna/omnipos-dealer-service/internal/notification/listener"

	orderH "github.com/fekuna/omnipos-dealer-service/internal/order/handler"
	orderRepoPkg "github.com/fekuna/omnipos-dealer-service/internal/order/repository"
	orderUCPkg "github.com/fekuna/omnipos-dealer-service/internal/order/usecase"

	prodH "github.com/fekuna/omnipos-dealer-service/internal/product/handler"
	prodRepoPkg "github.com/fekuna/omnipos-dealer-service/internal/product/repository"
	prodUCPkg "github.com/fekuna/omnipos-dealer-service/internal/product/usecase"

	sessH "github.com/fekuna/omnipos-dealer-service/internal/session/handler"
	sessRepoPkg "github.com/fekuna/omnipos-dealer-service/internal/session/repository"
	sessUCPkg "github.com/fekuna/omnipos-dealer-service/internal/session/usecase"

	visH "github.com/fekuna/omnipos-dealer-service/internal/visibility/handler"
	visRepoPkg "github.com/fekuna/omnipos-dealer-service/internal/visibility/repository"
	visUCPkg "github.com/fekuna/omnipos-dealer-service/internal/visibility/usecase"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load()
	cfg := config.LoadEnv()

	i18n.Init()

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          "json",
		Level:             "info",
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	if cfg.Server.IsDevelopment() {
		logConfig.IsDevelopment = true
		logConfig.Encoding = cfg.Logger.Encoding
		logConfig.Level = cfg.Logger.Level
	}

	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	if err := cfg.Validate(); err != nil {
		appLogger.Fatal("Invalid configuration", zap.String("app_env", cfg.Server.AppEnv), zap.Error(err))
	}

	// 3. Connect to Database
	db, err := postgres.NewPostgres(&postgres.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

	// 4. Optional backends. Each one that fails to start is left nil and its feature degrades.
	var redisClient *cache.RedisClient
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedisClient(&cache.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			appLogger.Warn("Could not connect to Redis, catalog cache disabled", zap.Error(err))
			redisClient = nil
		} else {
			defer redisClient.Close()
			appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))
		}
	}

	var searchIndex prodUCPkg.SearchIndex
	if cfg.Elastic.Enabled {
		esClient, err := search.NewClient(&search.Config{
			Addresses: cfg.Elastic.Addresses,
			Username:  cfg.Elastic.Username,
			Password:  cfg.Elastic.Password,
		})
		if err != nil {
			appLogger.Warn("Could not connect to Elasticsearch, quick search uses PostgreSQL", zap.Error(err))
		} else {
			searchIndex = esClient
			appLogger.Info("Connected to Elasticsearch", zap.Strings("addresses", cfg.Elastic.Addresses))
		}
	}

	var images prodUCPkg.ImageUploader
	if cfg.Storage.Bucket != "" {
		store, err := storage.NewImageStore(context.Background(), &storage.Config{
			Bucket:          cfg.Storage.Bucket,
			CredentialsFile: cfg.Storage.CredentialsFile,
			PublicBaseURL:   cfg.Storage.PublicBaseURL,
		})
		if err != nil {
			appLogger.Warn("Could not initialize GCS, image uploads disabled", zap.Error(err))
		} else {
			defer store.Close()
			images = store
			appLogger.Info("Image uploads enabled", zap.String("bucket", cfg.Storage.Bucket))
		}
	}

	var events orderUCPkg.EventPublisher
	var consumer *broker.KafkaConsumer
	if cfg.Kafka.Enabled {
		producer := broker.NewProducer(&broker.Config{Brokers: cfg.Kafka.Brokers, Topic: cfg.Kafka.Topic})
		defer producer.Close()
		events = producer
		appLogger.Info("Kafka producer ready", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))

		if cfg.SendGrid.APIKey != "" {
			consumer = broker.NewConsumer(&broker.Config{
				Brokers: cfg.Kafka.Brokers,
				Topic:   cfg.Kafka.Topic,
				GroupID: cfg.Kafka.GroupID,
			})
			defer consumer.Close()
		}
	}

	// 5. Initialize Repositories
	sessRepo := sessRepoPkg.NewPGRepository(db)
	dealerRepo := dealerRepoPkg.NewPGRepository(db)
	catRepo := catRepoPkg.NewPGRepository(db)
	prodRepo := prodRepoPkg.NewPGRepository(db)
	discRepo := discRepoPkg.NewPGRepository(db)
	visRepo := visRepoPkg.NewPGRepository(db)
	cartRepo := cartRepoPkg.NewPGRepository(db)
	orderRepo := orderRepoPkg.NewPGRepository(db)

	// 6. Shared domain services
	tokens := auth.NewTokenManager(cfg.JWT.SecretKey, cfg.JWT.TTL)
	catalogCache := catalogcache.New(redisClient, cfg.Redis.CacheTTL, appLogger)
	resolver := pricing.NewResolver(discRepo, cfg.Pricing.FailOpen, appLogger)
	filter := visibility.NewFilter(visRepo)

	// 7. Initialize UseCases
	sessUC := sessUCPkg.NewSessionUseCase(sessRepo, dealerRepo, tokens, appLogger)
	dealerUC := dealerUCPkg.NewDealerUseCase(dealerRepo, appLogger)
	catUC := catUCPkg.NewCategoryUseCase(catRepo, catalogCache, appLogger)
	prodUC := prodUCPkg.NewProductUseCase(prodUCPkg.Deps{
		Repo:       prodRepo,
		Categories: catRepo,
		Prices:     resolver,
		Visibility: filter,
		Cache:      catalogCache,
		Images:     images,
		Search:     searchIndex,
	}, appLogger)
	discUC := discUCPkg.NewDiscountUseCase(discRepo, dealerRepo, catRepo, catalogCache, appLogger)
	visUC := visUCPkg.NewVisibilityUseCase(visRepo, dealerRepo, catRepo, prodRepo, catalogCache, appLogger)
	cartUC := cartUCPkg.NewCartUseCase(cartRepo, prodRepo, resolver, filter, appLogger)
	orderUC := orderUCPkg.NewOrderUseCase(orderUCPkg.Deps{
		Repo:       orderRepo,
		Carts:      cartRepo,
		Products:   prodRepo,
		Prices:     resolver,
		Visibility: filter,
		Events:     events,
	}, appLogger)

	bootCtx, bootCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := sessUC.EnsureAdmin(bootCtx, cfg.Admin.Email, cfg.Admin.Password); err != nil {
		appLogger.Error("Could not bootstrap admin user", zap.Error(err))
	}
	bootCancel()

	// 8. Start Listener
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if consumer != nil {
		mail := mailer.NewSendGridClient(cfg.SendGrid.APIKey, cfg.SendGrid.FromAddress)
		go notifyListenerPkg.NewOrderListener(consumer, dealerRepo, mail, appLogger).Start(ctx)
	}

	// 9. Initialize Handlers
	router := server.NewRouter(server.Handlers{
		Session:    sessH.NewSessionHandler(sessUC, tokens, cfg.Server.CookieSecure, appLogger),
		Dealer:     dealerH.NewDealerHandler(dealerUC, appLogger),
		Category:   catH.NewCategoryHandler(catUC, appLogger),
		Product:    prodH.NewProductHandler(prodUC, appLogger),
		Discount:   discH.NewDiscountHandler(discUC, appLogger),
		Visibility: visH.NewVisibilityHandler(visUC, appLogger),
		Cart:       cartH.NewCartHandler(cartUC, appLogger),
		Order:      orderH.NewOrderHandler(orderUC, appLogger),
	}, server.Options{
		CORSOrigins: cfg.Server.CORSOrigins,
		Auth:        auth.NewMiddleware(tokens, appLogger),
		Dealers:     dealerRepo,
		Logger:      appLogger,
	})

	// 10. Start HTTP and gRPC health servers
	httpServer := &http.Server{
		Addr:         withColon(cfg.Server.HTTPPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		appLogger.Info("Starting HTTP server", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("failed to serve http", zap.Error(err))
		}
	}()

	grpcPort := withColon(cfg.Server.GRPCPort)
	lis, err := net.Listen("tcp", grpcPort)
	if err != nil {
		appLogger.Fatal("failed to listen", zap.String("port", grpcPort), zap.Error(err))
	}
	grpcServer := grpc.NewServer()
	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	reflection.Register(grpcServer)
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	go func() {
		appLogger.Info("Starting gRPC health server", zap.String("port", grpcPort))
		if err := grpcServer.Serve(lis); err != nil {
			appLogger.Fatal("failed to serve grpc", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	healthServer.Shutdown()
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("HTTP server shutdown failed", zap.Error(err))
	}
	grpcServer.GracefulStop()
	appLogger.Info("Server stopped")
}

func withColon(port string) string {
	if !strings.HasPrefix(port, ":") && !strings.Contains(port, ":") {
		return ":" + port
	}
	return port
}
