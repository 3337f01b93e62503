package service

import (
	"context"
	"strings"

	"edufleex-go/internal/api/dto"
	"edufleex-go/internal/apperr"
	"edufleex-go/internal/metrics"
	"edufleex-go/internal/model"
	"edufleex-go/internal/repository"
	"edufleex-go/pkg/logger"

	"go.uber.org/zap"
)

type FavoriteService struct {
	favoriteRepo *repository.FavoriteRepository
	videoRepo    *repository.VideoRepository
}

func NewFavoriteService(favoriteRepo *repository.FavoriteRepository, videoRepo *repository.VideoRepository) *FavoriteService {
	return &FavoriteService{favoriteRepo: favoriteRepo, videoRepo: videoRepo}
}

func requireIdentity(userID, videoRef string) error {
	if strings.TrimSpace(userID) == "" {
		return apperr.Invalid("userId is required")
	}
	if strings.TrimSpace(videoRef) == "" {
		return apperr.Invalid("videoId is required")
	}
	return nil
}

// ListFavorites 获取用户片单（最近收藏在前），未知用户返回空列表
func (s *FavoriteService) ListFavorites(ctx context.Context, userID string) ([]dto.FavoriteInfo, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, apperr.Invalid("userId is required")
	}

	favorites, err := s.favoriteRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := make([]dto.FavoriteInfo, 0, len(favorites))
	for i := range favorites {
		items = append(items, toFavoriteInfo(&favorites[i], &favorites[i].Video))
	}
	return items, nil
}

// FavoriteVideos 用户收藏的视频（最近收藏在前）
func (s *FavoriteService) FavoriteVideos(ctx context.Context, userID string) ([]model.Video, error) {
	favorites, err := s.favoriteRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	videos := make([]model.Video, 0, len(favorites))
	for i := range favorites {
		videos = append(videos, favorites[i].Video)
	}
	return videos, nil
}

// AddFavorite 收藏视频。幂等：重复收藏返回同一条记录。
func (s *FavoriteService) AddFavorite(ctx context.Context, userID, videoRef string) (*dto.FavoriteInfo, error) {
	if err := requireIdentity(userID, videoRef); err != nil {
		return nil, err
	}

	video, err := s.videoRepo.GetByVideoRef(ctx, videoRef)
	if err != nil {
		metrics.FavoriteMutations.WithLabelValues("add", "error").Inc()
		return nil, err
	}

	fav, err := s.favoriteRepo.Upsert(ctx, userID, video.ID)
	if err != nil {
		metrics.FavoriteMutations.WithLabelValues("add", "error").Inc()
		logger.Warn("Add favorite failed",
			zap.String("user_id", userID),
			zap.String("video_id", videoRef),
			zap.Error(err),
		)
		return nil, err
	}

	metrics.FavoriteMutations.WithLabelValues("add", "ok").Inc()
	info := toFavoriteInfo(fav, video)
	return &info, nil
}

// RemoveFavorite 取消收藏。幂等：未收藏或视频不存在都视为成功，removed=false。
func (s *FavoriteService) RemoveFavorite(ctx context.Context, userID, videoRef string) (bool, error) {
	if err := requireIdentity(userID, videoRef); err != nil {
		return false, err
	}

	ids, err := s.videoRepo.ResolveRefs(ctx, []string{videoRef})
	if err != nil {
		metrics.FavoriteMutations.WithLabelValues("remove", "error").Inc()
		return false, err
	}
	videoID, ok := ids[videoRef]
	if !ok {
		metrics.FavoriteMutations.WithLabelValues("remove", "noop").Inc()
		return false, nil
	}

	removed, err := s.favoriteRepo.Delete(ctx, userID, videoID)
	if err != nil {
		metrics.FavoriteMutations.WithLabelValues("remove", "error").Inc()
		return false, err
	}

	outcome := "ok"
	if !removed {
		outcome = "noop"
	}
	metrics.FavoriteMutations.WithLabelValues("remove", outcome).Inc()
	return removed, nil
}

// IsFavorited 查询收藏状态，视频不存在返回 false
func (s *FavoriteService) IsFavorited(ctx context.Context, userID, videoRef string) (bool, error) {
	if err := requireIdentity(userID, videoRef); err != nil {
		return false, err
	}

	ids, err := s.videoRepo.ResolveRefs(ctx, []string{videoRef})
	if err != nil {
		return false, err
	}
	videoID, ok := ids[videoRef]
	if !ok {
		return false, nil
	}
	return s.favoriteRepo.Exists(ctx, userID, videoID)
}

// BatchStatus 批量查询收藏状态，key 为外部视频 ID
func (s *FavoriteService) BatchStatus(ctx context.Context, userID string, videoRefs []string) (map[string]bool, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, apperr.Invalid("userId is required")
	}

	ids, err := s.videoRepo.ResolveRefs(ctx, videoRefs)
	if err != nil {
		return nil, err
	}

	internal := make([]int64, 0, len(ids))
	for _, id := range ids {
		internal = append(internal, id)
	}

	status, err := s.favoriteRepo.BatchCheckFavorited(ctx, userID, internal)
	if err != nil {
		return nil, err
	}

	result := make(map[string]bool, len(videoRefs))
	for _, ref := range videoRefs {
		id, ok := ids[ref]
		result[ref] = ok && status[id]
	}
	return result, nil
}
