package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"edufleex-go/internal/config"
	"edufleex-go/internal/infra/database"
	infraES "edufleex-go/internal/infra/elasticsearch"
	infraKafka "edufleex-go/internal/infra/kafka"
	"edufleex-go/internal/repository"
	"edufleex-go/internal/service"
	"edufleex-go/pkg/logger"

	"go.uber.org/zap"
)

// 播放计数 worker：消费 video_viewed 事件并累加 view_count
func main() {
	configPath := "configs/config.yaml"
	if p := os.Getenv("EDUFLEEX_CONFIG"); p != "" {
		configPath = p
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

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

	if !cfg.Kafka.Enabled {
		logger.Fatal("Kafka is disabled, view worker has nothing to consume")
	}

	if err := database.Init(&cfg.Database); err != nil {
		logger.Fatal("Failed to init database", zap.Error(err))
	}
	defer database.Close()

	// 播放量变化同步到搜索索引（可选）
	var index service.SearchIndex
	if cfg.Elasticsearch.Enabled {
		if err := infraES.Init(&cfg.Elasticsearch); err != nil {
			logger.Warn("Elasticsearch init failed, view counts will not be reindexed", zap.Error(err))
		} else {
			defer infraES.Close()
			index = infraES.NewVideoIndex()
		}
	}

	db := database.Get()
	videoService := service.NewVideoService(
		repository.NewVideoRepository(db),
		repository.NewCategoryRepository(db),
		nil, nil, index,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 监听系统信号，优雅退出
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Info("Received signal, shutting down", zap.String("signal", sig.String()))
		cancel()
	}()

	topic := cfg.Kafka.Topics["video_viewed"]
	logger.Info("View worker started",
		zap.String("topic", topic),
		zap.String("group", cfg.Kafka.GroupID),
		zap.Strings("brokers", cfg.Kafka.Brokers),
	)

	infraKafka.StartViewEventConsumer(ctx, cfg.Kafka.Brokers, topic, cfg.Kafka.GroupID, videoService.HandleViewEvent)
}
