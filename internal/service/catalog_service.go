package service

import (
	"context"
	"strings"
	"time"

	"edufleex-go/internal/api/dto"
	"edufleex-go/internal/apperr"
	"edufleex-go/internal/catalog"
	"edufleex-go/internal/metrics"
	"edufleex-go/internal/model"
	"edufleex-go/internal/repository"
	"edufleex-go/pkg/logger"

	"go.uber.org/zap"
)

const categoriesCacheKey = "categories:by-name"

type CatalogService struct {
	videoRepo    *repository.VideoRepository
	categoryRepo *repository.CategoryRepository
	cache        Cache
	categoryTTL  time.Duration
}

// NewCatalogService cache 可以为 nil
func NewCatalogService(videoRepo *repository.VideoRepository, categoryRepo *repository.CategoryRepository, cache Cache, categoryTTL time.Duration) *CatalogService {
	return &CatalogService{
		videoRepo:    videoRepo,
		categoryRepo: categoryRepo,
		cache:        cache,
		categoryTTL:  categoryTTL,
	}
}

// ListVideos 按筛选条件、排序和条数限制查询视频（含分类）。
// 无匹配时返回空切片而不是错误。
func (s *CatalogService) ListVideos(ctx context.Context, filter catalog.Filter, sort catalog.Sort, limit *int) ([]model.Video, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	if err := catalog.ValidateLimit(limit); err != nil {
		return nil, err
	}
	if _, err := catalog.ParseSort(string(sort)); err != nil {
		return nil, err
	}
	if sort == "" {
		sort = catalog.SortRecency
	}
	return s.videoRepo.List(ctx, filter, sort, limit)
}

// ListVideoInfos ListVideos 的 DTO 版本
func (s *CatalogService) ListVideoInfos(ctx context.Context, filter catalog.Filter, sort catalog.Sort, limit *int) ([]dto.VideoInfo, error) {
	videos, err := s.ListVideos(ctx, filter, sort, limit)
	if err != nil {
		return nil, err
	}
	return toVideoInfos(videos), nil
}

// ListCategories 按名称排序的分类列表，优先读缓存
func (s *CatalogService) ListCategories(ctx context.Context) ([]dto.CategoryInfo, error) {
	if s.cache != nil {
		var cached []dto.CategoryInfo
		hit, err := s.cache.GetJSON(ctx, categoriesCacheKey, &cached)
		switch {
		case err != nil:
			metrics.CacheLookups.WithLabelValues("categories", "error").Inc()
			logger.Warn("Category cache read failed", zap.Error(err))
		case hit:
			metrics.CacheLookups.WithLabelValues("categories", "hit").Inc()
			return cached, nil
		default:
			metrics.CacheLookups.WithLabelValues("categories", "miss").Inc()
		}
	}

	categories, err := s.categoryRepo.ListByName(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]dto.CategoryInfo, 0, len(categories))
	for i := range categories {
		items = append(items, toCategoryInfo(&categories[i]))
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, categoriesCacheKey, items, s.categoryTTL); err != nil {
			logger.Warn("Category cache write failed", zap.Error(err))
		}
	}
	return items, nil
}

// CategoryOrder 分类的创建顺序（首页分类行顺序）
func (s *CatalogService) CategoryOrder(ctx context.Context) ([]string, error) {
	categories, err := s.categoryRepo.ListByCreation(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, c.Name)
	}
	return names, nil
}

// CreateCategory 创建分类，名称重复返回 Conflict
func (s *CatalogService) CreateCategory(ctx context.Context, req *dto.CategoryCreateRequest) (*dto.CategoryInfo, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperr.Invalid("category name is required")
	}

	exists, err := s.categoryRepo.ExistsByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Conflict("category %q already exists", name)
	}

	category := &model.Category{Name: name}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	s.invalidateCategories(ctx)

	info := toCategoryInfo(category)
	return &info, nil
}

func (s *CatalogService) invalidateCategories(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, categoriesCacheKey); err != nil {
		logger.Warn("Category cache invalidation failed", zap.Error(err))
	}
}
