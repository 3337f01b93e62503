package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"edufleex-go/internal/config"
	"edufleex-go/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

var producer *kafka.Writer

// ViewEvent 视频播放事件消息体
type ViewEvent struct {
	VideoID  int64     `json:"videoId"`
	VideoRef string    `json:"videoRef"`
	UserID   string    `json:"userId,omitempty"`
	ViewedAt time.Time `json:"viewedAt"`
}

// InitProducer 初始化 Kafka 生产者
func InitProducer(cfg *config.KafkaConfig) error {
	if len(cfg.Brokers) == 0 {
		return fmt.Errorf("kafka brokers is empty")
	}

	producer = &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Balancer:     &kafka.Hash{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}

	logger.Info("Kafka producer initialized",
		zap.Strings("brokers", cfg.Brokers),
	)

	return nil
}

// Enabled 生产者是否已初始化
func Enabled() bool {
	return producer != nil
}

// EncodeViewEvent 序列化播放事件，key 按视频分区保证同一视频的事件有序
func EncodeViewEvent(topic string, ev *ViewEvent) (kafka.Message, error) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to marshal view event: %w", err)
	}
	return kafka.Message{
		Topic: topic,
		Key:   []byte(fmt.Sprintf("video-%d", ev.VideoID)),
		Value: payload,
	}, nil
}

// DecodeViewEvent 反序列化播放事件
func DecodeViewEvent(value []byte) (*ViewEvent, error) {
	var ev ViewEvent
	if err := json.Unmarshal(value, &ev); err != nil {
		return nil, fmt.Errorf("failed to unmarshal view event: %w", err)
	}
	if ev.VideoID <= 0 {
		return nil, fmt.Errorf("view event without video id")
	}
	return &ev, nil
}

// SendViewEvent 发送播放事件到 Kafka
func SendViewEvent(ctx context.Context, topic string, ev *ViewEvent) error {
	if producer == nil {
		return fmt.Errorf("kafka producer not initialized")
	}

	msg, err := EncodeViewEvent(topic, ev)
	if err != nil {
		return err
	}

	if err := producer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to send view event: %w", err)
	}

	logger.Debug("View event sent",
		zap.Int64("video_id", ev.VideoID),
		zap.String("topic", topic),
	)

	return nil
}

// ViewPublisher 绑定 topic 的播放事件发布器
type ViewPublisher struct {
	topic string
}

func NewViewPublisher(topic string) *ViewPublisher {
	return &ViewPublisher{topic: topic}
}

func (p *ViewPublisher) PublishView(ctx context.Context, ev *ViewEvent) error {
	return SendViewEvent(ctx, p.topic, ev)
}

// CloseProducer 关闭生产者
func CloseProducer() error {
	if producer == nil {
		return nil
	}
	logger.Info("Kafka producer closed")
	err := producer.Close()
	producer = nil
	return err
}
