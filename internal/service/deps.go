package service

import (
	"context"
	"io"
	"time"

	infraKafka "edufleex-go/internal/infra/kafka"
	"edufleex-go/internal/model"
)

// Cache 分类列表等读多写少数据的缓存（Redis 实现），nil 表示不缓存
type Cache interface {
	GetJSON(ctx context.Context, key string, dst interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// ViewPublisher 播放事件发布（Kafka 实现），nil 表示直接写库
type ViewPublisher interface {
	PublishView(ctx context.Context, ev *infraKafka.ViewEvent) error
}

// ThumbnailStore 缩略图对象存储（MinIO 实现），nil 表示不支持上传
type ThumbnailStore interface {
	PutThumbnail(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error)
}

// SearchIndex 视频搜索索引（Elasticsearch 实现），nil 表示只用数据库搜索
type SearchIndex interface {
	Search(ctx context.Context, query map[string]interface{}) ([]int64, int64, error)
	Sync(ctx context.Context, v *model.Video) error
	Remove(ctx context.Context, id int64) error
	BulkSync(ctx context.Context, videos []model.Video) (int, int, error)
}
