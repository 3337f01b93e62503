package repository

import (
	"context"
	"errors"

	"edufleex-go/internal/apperr"
	"edufleex-go/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// upsertAttempts 写入后读回时记录被并发删除的重试次数
const upsertAttempts = 3

type FavoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// Upsert 收藏：INSERT ... ON CONFLICT (user_id, video_id) DO NOTHING 后读回已存储的记录。
// 重复调用返回同一条记录；不做先查后插。
func (r *FavoriteRepository) Upsert(ctx context.Context, userID string, videoID int64) (*model.Favorite, error) {
	db := r.db.WithContext(ctx)

	for attempt := 0; attempt < upsertAttempts; attempt++ {
		fav := &model.Favorite{UserID: userID, VideoID: videoID}
		err := db.Omit(clause.Associations).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}, {Name: "video_id"}},
				DoNothing: true,
			}).
			Create(fav).Error
		if err != nil {
			return nil, apperr.Store("upsert favorite", err)
		}

		var stored model.Favorite
		err = db.Where("user_id = ? AND video_id = ?", userID, videoID).First(&stored).Error
		if err == nil {
			return &stored, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Store("read favorite", err)
		}
		// 并发的取消收藏在写入和读回之间删除了记录，重新写入
	}

	return nil, apperr.Store("upsert favorite", gorm.ErrRecordNotFound)
}

// Delete 取消收藏：存在则删除，不存在不视为错误。返回是否真的删除了记录。
func (r *FavoriteRepository) Delete(ctx context.Context, userID string, videoID int64) (bool, error) {
	result := r.db.WithContext(ctx).Where("user_id = ? AND video_id = ?", userID, videoID).Delete(&model.Favorite{})
	if result.Error != nil {
		return false, apperr.Store("delete favorite", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *FavoriteRepository) Exists(ctx context.Context, userID string, videoID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Favorite{}).
		Where("user_id = ? AND video_id = ?", userID, videoID).Count(&count).Error
	if err != nil {
		return false, apperr.Store("check favorite", err)
	}
	return count > 0, nil
}

// ListByUser 获取用户的收藏列表（最近收藏在前，含视频和分类）
func (r *FavoriteRepository) ListByUser(ctx context.Context, userID string) ([]model.Favorite, error) {
	favorites := make([]model.Favorite, 0)
	err := r.db.WithContext(ctx).
		Preload("Video.Category").
		Where("user_id = ?", userID).
		Order("created_at DESC").Order("video_id DESC").
		Find(&favorites).Error
	if err != nil {
		return nil, apperr.Store("list favorites", err)
	}
	return favorites, nil
}

// BatchCheckFavorited 批量查询收藏状态
func (r *FavoriteRepository) BatchCheckFavorited(ctx context.Context, userID string, videoIDs []int64) (map[int64]bool, error) {
	if len(videoIDs) == 0 {
		return map[int64]bool{}, nil
	}

	var favVideoIDs []int64
	err := r.db.WithContext(ctx).Model(&model.Favorite{}).
		Where("user_id = ? AND video_id IN ?", userID, videoIDs).
		Pluck("video_id", &favVideoIDs).Error
	if err != nil {
		return nil, apperr.Store("batch check favorites", err)
	}

	favSet := make(map[int64]bool, len(favVideoIDs))
	for _, id := range favVideoIDs {
		favSet[id] = true
	}

	result := make(map[int64]bool, len(videoIDs))
	for _, id := range videoIDs {
		result[id] = favSet[id]
	}
	return result, nil
}
