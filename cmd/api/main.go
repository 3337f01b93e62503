package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"edufleex-go/internal/api/dto"
	"edufleex-go/internal/api/handler"
	"edufleex-go/internal/api/middleware"
	"edufleex-go/internal/api/router"
	"edufleex-go/internal/config"
	"edufleex-go/internal/infra/database"
	infraES "edufleex-go/internal/infra/elasticsearch"
	infraKafka "edufleex-go/internal/infra/kafka"
	infraMinio "edufleex-go/internal/infra/minio"
	infraRedis "edufleex-go/internal/infra/redis"
	"edufleex-go/internal/repository"
	"edufleex-go/internal/service"
	"edufleex-go/pkg/logger"

	_ "edufleex-go/api/openapi"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// @title EduFleex API
// @version 1.0
// @description 教育视频目录 API 服务：视频列表、收藏、浏览页与搜索
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@edufleex.dev

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host 127.0.0.1:8000
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description 输入格式: Bearer {token}

func main() {
	configPath := "configs/config.yaml"
	if p := os.Getenv("EDUFLEEX_CONFIG"); p != "" {
		configPath = p
	}

	// 加载配置文件
	cfg, err := config.Load(configPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 初始化日志系统
	if err := logger.Init(logger.Options{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		FilePath:   cfg.Log.FilePath,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	}); err != nil {
		panic(fmt.Sprintf("Failed to init logger: %v", err))
	}
	defer logger.Sync()

	// 初始化数据库
	if err := database.Init(&cfg.Database); err != nil {
		logger.Fatal("Failed to init database", zap.Error(err))
	}
	defer database.Close()

	if err := database.AutoMigrate(database.Get()); err != nil {
		logger.Fatal("Failed to auto migrate", zap.Error(err))
	}

	if err := dto.RegisterValidators(); err != nil {
		logger.Fatal("Failed to register validators", zap.Error(err))
	}

	checkers := map[string]handler.Checker{"database": database.Ping}

	// 可选依赖：未启用时传入 nil 接口，服务自动降级
	var cache service.Cache
	if cfg.Redis.Enabled {
		if err := infraRedis.Init(&cfg.Redis); err != nil {
			logger.Fatal("Failed to init redis", zap.Error(err))
		}
		defer infraRedis.Close()
		cache = infraRedis.NewCache(infraRedis.Get(), "edufleex:")
		checkers["redis"] = infraRedis.Ping
	}

	var thumbnails service.ThumbnailStore
	if cfg.MinIO.Enabled {
		if err := infraMinio.Init(&cfg.MinIO); err != nil {
			logger.Fatal("Failed to init minio", zap.Error(err))
		}
		thumbnails = infraMinio.NewThumbnailStore(&cfg.MinIO)
	}

	var publisher service.ViewPublisher
	if cfg.Kafka.Enabled {
		if err := infraKafka.InitProducer(&cfg.Kafka); err != nil {
			logger.Fatal("Failed to init kafka producer", zap.Error(err))
		}
		defer infraKafka.CloseProducer()
		publisher = infraKafka.NewViewPublisher(cfg.Kafka.Topics["video_viewed"])
	}

	// Elasticsearch 失败不致命，搜索降级到数据库
	var index service.SearchIndex
	if cfg.Elasticsearch.Enabled {
		if err := infraES.Init(&cfg.Elasticsearch); err != nil {
			logger.Warn("Elasticsearch init failed, search will fallback to DB", zap.Error(err))
		} else {
			defer infraES.Close()
			if err := infraES.InitIndexes(); err != nil {
				logger.Warn("Elasticsearch index init failed", zap.Error(err))
			}
			index = infraES.NewVideoIndex()
		}
	}

	// 初始化依赖（Repository -> Service -> Handler）
	db := database.Get()
	videoRepo := repository.NewVideoRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)

	catalogService := service.NewCatalogService(videoRepo, categoryRepo, cache, cfg.Cache.CategoryTTLDuration())
	videoService := service.NewVideoService(videoRepo, categoryRepo, publisher, thumbnails, index)
	favoriteService := service.NewFavoriteService(favoriteRepo, videoRepo)
	searchService := service.NewSearchService(videoRepo, index)
	browseService := service.NewBrowseService(catalogService, videoService, favoriteService, cfg.Browse)

	videoHandler := handler.NewVideoHandler(catalogService, videoService)
	categoryHandler := handler.NewCategoryHandler(catalogService)
	favoriteHandler := handler.NewFavoriteHandler(favoriteService)
	browseHandler := handler.NewBrowseHandler(browseService)
	searchHandler := handler.NewSearchHandler(searchService)
	healthHandler := handler.NewHealthHandler(cfg.App.Name, cfg.App.Version, checkers)

	favoriteLimiter := middleware.NewRateLimiter(cfg.HTTP.FavoriteRateLimit, time.Minute)
	defer favoriteLimiter.Stop()

	// 设置Gin模式
	gin.SetMode(cfg.App.Mode)

	// 创建Gin路由器（不使用默认中间件）
	r := gin.New()

	// 使用自定义中间件
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())

	// 注册基础路由
	r.GET("/healthz", healthHandler.Health)
	r.GET("/", healthHandler.Root)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger 文档路由
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 业务路由需要识别调用方身份
	r.Use(middleware.Identity(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.Browse.DefaultUserID))
	router.Setup(r, videoHandler, categoryHandler, favoriteHandler, browseHandler, searchHandler,
		middleware.RateLimit(favoriteLimiter))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.HTTP.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", middleware.HeaderRequestID},
		ExposedHeaders:   []string{middleware.HeaderRequestID, "Retry-After"},
		AllowCredentials: true,
		MaxAge:           600,
	}).Handler(r)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           corsHandler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Starting application",
		zap.String("name", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("mode", cfg.App.Mode),
		zap.String("addr", addr),
	)
	logger.Info("Configuration loaded",
		zap.String("database", fmt.Sprintf("%s@%s:%d/%s", cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)),
		zap.Bool("redis", cfg.Redis.Enabled),
		zap.Bool("minio", cfg.MinIO.Enabled),
		zap.Bool("kafka", cfg.Kafka.Enabled),
		zap.Bool("elasticsearch", index != nil),
	)

	// 启动HTTP服务器
	go func() {
		logger.Info("Server listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// 监听系统信号，优雅退出
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("Received signal, shutting down", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownDuration())
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}
	logger.Info("Server exited")
}
