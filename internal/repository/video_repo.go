package repository

import (
	"context"
	"strings"

	"edufleex-go/internal/apperr"
	"edufleex-go/internal/catalog"
	"edufleex-go/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VideoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

// GetByID 根据内部 ID 获取视频（含分类）
func (r *VideoRepository) GetByID(ctx context.Context, id int64) (*model.Video, error) {
	var video model.Video
	err := r.db.WithContext(ctx).Preload("Category").Where("id = ?", id).First(&video).Error
	if err != nil {
		return nil, apperr.Store("get video", err)
	}
	return &video, nil
}

// GetByVideoRef 根据外部视频 ID 获取视频（含分类）
func (r *VideoRepository) GetByVideoRef(ctx context.Context, ref string) (*model.Video, error) {
	var video model.Video
	err := r.db.WithContext(ctx).Preload("Category").Where("video_id = ?", ref).First(&video).Error
	if err != nil {
		return nil, apperr.Store("get video by ref", err)
	}
	return &video, nil
}

// ResolveRefs 将外部视频 ID 批量转换为内部 ID，不存在的 ID 不出现在结果中
func (r *VideoRepository) ResolveRefs(ctx context.Context, refs []string) (map[string]int64, error) {
	result := make(map[string]int64, len(refs))
	if len(refs) == 0 {
		return result, nil
	}

	var rows []struct {
		ID      int64
		VideoID string
	}
	err := r.db.WithContext(ctx).Model(&model.Video{}).
		Select("id", "video_id").
		Where("video_id IN ?", refs).
		Scan(&rows).Error
	if err != nil {
		return nil, apperr.Store("resolve video refs", err)
	}

	for _, row := range rows {
		result[row.VideoID] = row.ID
	}
	return result, nil
}

// Create 创建视频记录，返回含分类的完整记录
func (r *VideoRepository) Create(ctx context.Context, video *model.Video) (*model.Video, error) {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(video).Error; err != nil {
		return nil, apperr.Store("create video", err)
	}
	return r.GetByID(ctx, video.ID)
}

// Update 更新视频字段
func (r *VideoRepository) Update(ctx context.Context, id int64, updates map[string]interface{}) (*model.Video, error) {
	result := r.db.WithContext(ctx).Model(&model.Video{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, apperr.Store("update video", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperr.NotFound("video %d", id)
	}
	return r.GetByID(ctx, id)
}

// Delete 删除视频，收藏记录由外键级联删除
func (r *VideoRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Video{})
	if result.Error != nil {
		return apperr.Store("delete video", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("video %d", id)
	}
	return nil
}

// ExistsByVideoRef 外部视频 ID 是否已被占用
func (r *VideoRepository) ExistsByVideoRef(ctx context.Context, ref string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Video{}).Where("video_id = ?", ref).Count(&count).Error
	if err != nil {
		return false, apperr.Store("check video ref", err)
	}
	return count > 0, nil
}

// List 按筛选条件和排序方式查询视频，limit 为 nil 时不限制条数
func (r *VideoRepository) List(ctx context.Context, f catalog.Filter, sort catalog.Sort, limit *int) ([]model.Video, error) {
	query := r.db.WithContext(ctx).Model(&model.Video{}).Preload("Category")

	if f.Subject != nil {
		query = query.Where("subject = ?", *f.Subject)
	}
	if f.Grade != nil {
		query = query.Where("grade = ?", *f.Grade)
	}
	if f.IsFeatured != nil {
		query = query.Where("is_featured = ?", *f.IsFeatured)
	}
	if f.ExcludeID != nil {
		query = query.Where("id <> ?", *f.ExcludeID)
	}

	switch sort {
	case catalog.SortPopularity:
		query = query.Order("view_count DESC").Order("created_at DESC").Order("id DESC")
	default:
		query = query.Order("created_at DESC").Order("id DESC")
	}

	if limit != nil {
		query = query.Limit(*limit)
	}

	videos := make([]model.Video, 0)
	if err := query.Find(&videos).Error; err != nil {
		return nil, apperr.Store("list videos", err)
	}
	return videos, nil
}

// Search 数据库关键词搜索（Elasticsearch 不可用时的降级路径）
func (r *VideoRepository) Search(ctx context.Context, keyword string, f catalog.Filter, skip, limit int) ([]model.Video, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Video{})

	if kw := strings.ToLower(strings.TrimSpace(keyword)); kw != "" {
		like := "%" + kw + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(subject) LIKE ?", like, like, like)
	}
	if f.Subject != nil {
		query = query.Where("subject = ?", *f.Subject)
	}
	if f.Grade != nil {
		query = query.Where("grade = ?", *f.Grade)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperr.Store("count search results", err)
	}

	videos := make([]model.Video, 0)
	err := query.Preload("Category").
		Order("view_count DESC").Order("created_at DESC").Order("id DESC").
		Offset(skip).Limit(limit).
		Find(&videos).Error
	if err != nil {
		return nil, 0, apperr.Store("search videos", err)
	}
	return videos, total, nil
}

// GetByIDs 批量获取视频（含分类），结果顺序不保证
func (r *VideoRepository) GetByIDs(ctx context.Context, ids []int64) ([]model.Video, error) {
	videos := make([]model.Video, 0, len(ids))
	if len(ids) == 0 {
		return videos, nil
	}
	if err := r.db.WithContext(ctx).Preload("Category").Where("id IN ?", ids).Find(&videos).Error; err != nil {
		return nil, apperr.Store("get videos by ids", err)
	}
	return videos, nil
}

// IncrementViewCount 播放量 +1，不更新 updated_at
func (r *VideoRepository) IncrementViewCount(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Model(&model.Video{}).Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1"))
	if result.Error != nil {
		return apperr.Store("increment view count", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("video %d", id)
	}
	return nil
}
