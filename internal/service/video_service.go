package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"edufleex-go/internal/api/dto"
	"edufleex-go/internal/apperr"
	infraKafka "edufleex-go/internal/infra/kafka"
	"edufleex-go/internal/metrics"
	"edufleex-go/internal/model"
	"edufleex-go/internal/repository"
	"edufleex-go/pkg/logger"

	"go.uber.org/zap"
)

var allowedThumbnailTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

type VideoService struct {
	videoRepo    *repository.VideoRepository
	categoryRepo *repository.CategoryRepository
	publisher    ViewPublisher
	thumbnails   ThumbnailStore
	index        SearchIndex
}

// NewVideoService publisher、thumbnails、index 均可为 nil
func NewVideoService(videoRepo *repository.VideoRepository, categoryRepo *repository.CategoryRepository,
	publisher ViewPublisher, thumbnails ThumbnailStore, index SearchIndex) *VideoService {
	return &VideoService{
		videoRepo:    videoRepo,
		categoryRepo: categoryRepo,
		publisher:    publisher,
		thumbnails:   thumbnails,
		index:        index,
	}
}

// GetByRef 根据外部视频 ID 获取视频
func (s *VideoService) GetByRef(ctx context.Context, videoRef string) (*model.Video, error) {
	if strings.TrimSpace(videoRef) == "" {
		return nil, apperr.Invalid("videoId is required")
	}
	return s.videoRepo.GetByVideoRef(ctx, videoRef)
}

// Create 创建视频
func (s *VideoService) Create(ctx context.Context, req *dto.VideoCreateRequest) (*dto.VideoInfo, error) {
	if _, err := s.categoryRepo.GetByID(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	taken, err := s.videoRepo.ExistsByVideoRef(ctx, req.VideoID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Conflict("video %q already exists", req.VideoID)
	}

	video, err := s.videoRepo.Create(ctx, &model.Video{
		VideoID:     req.VideoID,
		Title:       req.Title,
		Description: req.Description,
		Thumbnail:   req.Thumbnail,
		Subject:     req.Subject,
		Grade:       req.Grade,
		Duration:    req.Duration,
		ViewCount:   req.Views,
		IsFeatured:  req.IsFeatured,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		return nil, err
	}

	s.syncIndex(ctx, video)

	info := toVideoInfo(video)
	return &info, nil
}

// Update 部分更新视频，只修改请求中出现的字段
func (s *VideoService) Update(ctx context.Context, id int64, req *dto.VideoUpdateRequest) (*dto.VideoInfo, error) {
	updates := make(map[string]interface{})
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Thumbnail != nil {
		updates["thumbnail"] = *req.Thumbnail
	}
	if req.Subject != nil {
		updates["subject"] = *req.Subject
	}
	if req.Grade != nil {
		updates["grade"] = *req.Grade
	}
	if req.Duration != nil {
		updates["duration"] = *req.Duration
	}
	if req.Views != nil {
		updates["view_count"] = *req.Views
	}
	if req.IsFeatured != nil {
		updates["is_featured"] = *req.IsFeatured
	}
	if req.CategoryID != nil {
		if _, err := s.categoryRepo.GetByID(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
		updates["category_id"] = *req.CategoryID
	}

	if len(updates) == 0 {
		return nil, apperr.Invalid("no fields to update")
	}

	video, err := s.videoRepo.Update(ctx, id, updates)
	if err != nil {
		return nil, err
	}

	s.syncIndex(ctx, video)

	info := toVideoInfo(video)
	return &info, nil
}

// Delete 删除视频，相关收藏随之删除
func (s *VideoService) Delete(ctx context.Context, id int64) error {
	if err := s.videoRepo.Delete(ctx, id); err != nil {
		return err
	}

	if s.index != nil {
		if err := s.index.Remove(ctx, id); err != nil {
			logger.Warn("Remove video from search index failed", zap.Int64("video_id", id), zap.Error(err))
		}
	}
	return nil
}

// RecordView 上报一次播放。配置了 Kafka 时异步计数，否则（或发送失败时）直接写库。
// 返回值表示是否走了异步队列。
func (s *VideoService) RecordView(ctx context.Context, videoRef, userID string) (bool, error) {
	video, err := s.GetByRef(ctx, videoRef)
	if err != nil {
		return false, err
	}

	if s.publisher != nil {
		ev := &infraKafka.ViewEvent{
			VideoID:  video.ID,
			VideoRef: video.VideoID,
			UserID:   userID,
			ViewedAt: time.Now().UTC(),
		}
		err := s.publisher.PublishView(ctx, ev)
		if err == nil {
			metrics.ViewEvents.WithLabelValues("kafka").Inc()
			return true, nil
		}
		logger.Warn("Publish view event failed, counting directly",
			zap.String("video_id", videoRef), zap.Error(err))
	}

	if err := s.videoRepo.IncrementViewCount(ctx, video.ID); err != nil {
		metrics.ViewEvents.WithLabelValues("failed").Inc()
		return false, err
	}
	metrics.ViewEvents.WithLabelValues("direct").Inc()
	return false, nil
}

// HandleViewEvent 消费 Kafka 播放事件
func (s *VideoService) HandleViewEvent(ctx context.Context, ev *infraKafka.ViewEvent) error {
	if err := s.videoRepo.IncrementViewCount(ctx, ev.VideoID); err != nil {
		metrics.ViewEvents.WithLabelValues("failed").Inc()
		return err
	}
	metrics.ViewEvents.WithLabelValues("consumed").Inc()

	if s.index != nil {
		if video, err := s.videoRepo.GetByID(ctx, ev.VideoID); err == nil {
			s.syncIndex(ctx, video)
		}
	}
	return nil
}

// UploadThumbnail 上传缩略图到对象存储并更新视频的 thumbnail 字段
func (s *VideoService) UploadThumbnail(ctx context.Context, id int64, reader io.Reader, size int64, contentType string) (*dto.ThumbnailData, error) {
	if s.thumbnails == nil {
		return nil, fmt.Errorf("%w: thumbnail storage is not configured", apperr.ErrStoreUnavailable)
	}

	ext, ok := allowedThumbnailTypes[contentType]
	if !ok {
		return nil, apperr.Invalid("unsupported thumbnail type %q", contentType)
	}

	video, err := s.videoRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	objectName := path.Join(video.VideoID, fmt.Sprintf("%d%s", time.Now().UnixNano(), ext))
	url, err := s.thumbnails.PutThumbnail(ctx, objectName, reader, size, contentType)
	if err != nil {
		logger.Error("Upload thumbnail failed", zap.Int64("video_id", id), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", apperr.ErrStoreUnavailable, err)
	}

	updated, err := s.videoRepo.Update(ctx, id, map[string]interface{}{"thumbnail": url})
	if err != nil {
		return nil, err
	}
	s.syncIndex(ctx, updated)

	return &dto.ThumbnailData{Thumbnail: url}, nil
}

// syncIndex 尽力同步搜索索引，失败只记日志
func (s *VideoService) syncIndex(ctx context.Context, video *model.Video) {
	if s.index == nil {
		return
	}
	if err := s.index.Sync(ctx, video); err != nil {
		logger.Warn("Sync video to search index failed", zap.Int64("video_id", video.ID), zap.Error(err))
	}
}
