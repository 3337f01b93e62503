package kafka

import (
	"context"
	"time"

	"edufleex-go/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ViewHandler 处理播放事件的回调函数
type ViewHandler func(ctx context.Context, ev *ViewEvent) error

// StartViewEventConsumer 启动播放事件消费者（阻塞，需在 goroutine 中运行）
// ctx 取消后会自动停止
func StartViewEventConsumer(ctx context.Context, brokers []string, topic, groupID string, handler ViewHandler) {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       1,
		MaxBytes:       10e6,
		CommitInterval: time.Second,
		StartOffset:    kafka.LastOffset,
	})

	defer func() {
		if err := reader.Close(); err != nil {
			logger.Error("Failed to close kafka consumer", zap.Error(err))
		}
		logger.Info("Kafka view event consumer stopped")
	}()

	logger.Info("Kafka view event consumer started",
		zap.String("topic", topic),
		zap.String("group", groupID),
	)

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Error("Failed to read kafka message", zap.Error(err))
			time.Sleep(time.Second)
			continue
		}

		ev, err := DecodeViewEvent(msg.Value)
		if err != nil {
			logger.Error("Dropping malformed view event",
				zap.Error(err),
				zap.ByteString("value", msg.Value),
			)
			continue
		}

		// 播放计数允许丢失，处理失败只记录日志
		if err := handler(ctx, ev); err != nil {
			logger.Warn("Failed to handle view event",
				zap.Int64("video_id", ev.VideoID),
				zap.Error(err),
			)
		}
	}
}
